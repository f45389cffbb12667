package service

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/microsoft/go-mssqldb"

	"sqlintent/catalog"
	"sqlintent/config"
	"sqlintent/models"
)

// Executor runs catalog templates against environment-specific databases.
// One pooled *sql.DB is opened lazily per environment and reused for the
// lifetime of the process, so concurrent requests share pools and never
// block each other beyond the pool's own limits.
type Executor struct {
	profiles *config.Profiles
	catalog  *catalog.Catalog
	timeout  time.Duration
	logger   *slog.Logger

	mu    sync.Mutex
	pools map[string]*sql.DB
}

func NewExecutor(profiles *config.Profiles, cat *catalog.Catalog, timeout time.Duration, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		profiles: profiles,
		catalog:  cat,
		timeout:  timeout,
		logger:   logger,
		pools:    make(map[string]*sql.DB),
	}
}

// Execute binds params to the named template and runs it against the named
// environment, materializing the full result eagerly. Failure modes:
// config.ErrEnvironmentNotConfigured, catalog.ErrTemplateNotFound,
// *MissingParameterError, *ConnectionError, *ExecutionError. The connection
// and rows are released on every path.
func (e *Executor) Execute(ctx context.Context, envName, templateName string, params models.Params) (*models.SQLResult, error) {
	profile, err := e.profiles.Lookup(envName)
	if err != nil {
		e.logger.Error("environment lookup failed", "env", envName, "error", err)
		return nil, err
	}

	// The caller normally validates the name via the resolver; this lookup
	// guards direct calls.
	tpl, err := e.catalog.Lookup(templateName)
	if err != nil {
		e.logger.Error("template lookup failed", "env", envName, "template", templateName, "error", err)
		return nil, err
	}

	query, args, err := bindPlaceholders(tpl.SQL, profile.Driver, params)
	if err != nil {
		e.logger.Error("parameter binding failed", "env", envName, "template", templateName, "error", err)
		return nil, err
	}

	pool, err := e.pool(profile)
	if err != nil {
		e.logger.Error("connection failed", "env", envName, "error", err)
		return nil, err
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	e.logger.Info("executing template", "env", envName, "template", templateName, "params", params)

	rows, err := pool.QueryContext(ctx, query, args...)
	if err != nil {
		err = e.classify(profile.Name, templateName, err)
		e.logger.Error("query failed", "env", envName, "template", templateName, "error", err)
		return nil, err
	}
	defer rows.Close()

	result, err := materialize(rows)
	if err != nil {
		err = e.classify(profile.Name, templateName, err)
		e.logger.Error("row scan failed", "env", envName, "template", templateName, "error", err)
		return nil, err
	}

	e.logger.Info("query successful", "env", envName, "template", templateName, "rows", len(result.Rows))
	return result, nil
}

// Ping reports whether the environment's database is reachable.
func (e *Executor) Ping(ctx context.Context, envName string) error {
	profile, err := e.profiles.Lookup(envName)
	if err != nil {
		return err
	}
	pool, err := e.pool(profile)
	if err != nil {
		return err
	}
	if err := pool.PingContext(ctx); err != nil {
		return &ConnectionError{Env: profile.Name, Err: err}
	}
	return nil
}

// Environments returns the configured environment names.
func (e *Executor) Environments() []string {
	return e.profiles.Names()
}

// Close releases every environment pool.
func (e *Executor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var firstErr error
	for name, pool := range e.pools {
		if err := pool.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(e.pools, name)
	}
	return firstErr
}

func (e *Executor) pool(profile config.EnvironmentProfile) (*sql.DB, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if pool, ok := e.pools[profile.Name]; ok {
		return pool, nil
	}

	pool, err := sql.Open(driverName(profile.Driver), buildConnectionString(profile))
	if err != nil {
		return nil, &ConnectionError{Env: profile.Name, Err: err}
	}

	pool.SetMaxOpenConns(25)
	pool.SetMaxIdleConns(5)
	pool.SetConnMaxLifetime(5 * time.Minute)

	e.pools[profile.Name] = pool
	return pool, nil
}

// classify splits backend failures into the reach/authenticate class and the
// statement class. Network-level errors (dial, reset, refused) surface from
// QueryContext as net.Error values rather than driver.ErrBadConn.
func (e *Executor) classify(env, template string, err error) error {
	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.As(err, &netErr) {
		return &ConnectionError{Env: env, Err: err}
	}
	return &ExecutionError{Env: env, Template: template, Err: err}
}

func driverName(driver string) string {
	if driver == "postgres" {
		return "pgx"
	}
	return "sqlserver"
}

func buildConnectionString(profile config.EnvironmentProfile) string {
	if profile.Driver == "postgres" {
		sslmode := "disable"
		if profile.Encrypt {
			sslmode = "require"
		}
		return fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=%s",
			profile.Server, profile.Port, profile.Database, profile.UserID, profile.Password, sslmode)
	}

	connStr := fmt.Sprintf("server=%s;port=%s;database=%s",
		profile.Server, profile.Port, profile.Database)

	if profile.UserID != "" {
		connStr += fmt.Sprintf(";user id=%s;password=%s", profile.UserID, profile.Password)
	} else {
		connStr += ";trusted_connection=true"
	}

	if profile.Encrypt {
		// Use TLS but skip CA verification so self-signed / internal certs work.
		connStr += ";encrypt=true;TrustServerCertificate=true"
	} else {
		connStr += ";encrypt=false"
	}

	return connStr
}

// materialize captures the ordered column names and builds one Row per
// returned row, preserving the database's native row order.
func materialize(rows *sql.Rows) (*models.SQLResult, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &models.SQLResult{Columns: columns, Rows: []models.Row{}}

	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		row := make(models.Row, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		result.Rows = append(result.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
