package service

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"sqlintent/models"
)

var placeholderPattern = regexp.MustCompile(`::?[A-Za-z_][A-Za-z0-9_]*`)

// bindPlaceholders rewrites :name placeholders into the driver's native
// syntax (@name for sqlserver, $n for postgres) and builds the argument
// list. A placeholder with no binding in params is a MissingParameterError;
// nothing is executed in that case.
func bindPlaceholders(sqlText, driver string, params models.Params) (string, []interface{}, error) {
	var args []interface{}
	ordinals := make(map[string]int)
	var bindErr error

	rewritten := placeholderPattern.ReplaceAllStringFunc(sqlText, func(m string) string {
		if strings.HasPrefix(m, "::") {
			return m // postgres cast syntax, not a placeholder
		}
		name := m[1:]

		val, ok := params[name]
		if !ok {
			if bindErr == nil {
				bindErr = &MissingParameterError{Param: name}
			}
			return m
		}

		n, seen := ordinals[name]
		if !seen {
			if driver == "postgres" {
				args = append(args, val)
			} else {
				args = append(args, sql.Named(name, val))
			}
			n = len(args)
			ordinals[name] = n
		}

		if driver == "postgres" {
			return fmt.Sprintf("$%d", n)
		}
		return "@" + name
	})

	if bindErr != nil {
		return "", nil, bindErr
	}
	return rewritten, args, nil
}
