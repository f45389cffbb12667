package service

import "fmt"

// MissingParameterError means the template's SQL references a placeholder
// that has no binding in the parameter set. Binding is strict: an absent
// parameter is never silently treated as NULL.
type MissingParameterError struct {
	Param string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing value for parameter :%s", e.Param)
}

// ConnectionError means the environment's database could not be reached or
// authenticated against.
type ConnectionError struct {
	Env string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("[%s] connection failed: %v", e.Env, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// ExecutionError means the database engine rejected or aborted the statement
// (syntax, constraint, type mismatch, timeout).
type ExecutionError struct {
	Env      string
	Template string
	Err      error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("[%s] execution of %q failed: %v", e.Env, e.Template, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
