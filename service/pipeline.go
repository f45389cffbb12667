package service

import (
	"context"
	"errors"
	"log/slog"

	"sqlintent/catalog"
	"sqlintent/db"
	"sqlintent/intent"
	"sqlintent/models"
	"sqlintent/session"
	"sqlintent/validation"
)

// ErrInvalidQuery means the query text failed validation before resolution
// was attempted.
var ErrInvalidQuery = errors.New("invalid query text")

// ErrNoIntentMatched means the query text resolved to no catalog template.
var ErrNoIntentMatched = errors.New("no matching query found")

// QueryRunner is the execution boundary the pipeline drives. *Executor
// implements it; tests substitute a stub backend.
type QueryRunner interface {
	Execute(ctx context.Context, envName, templateName string, params models.Params) (*models.SQLResult, error)
}

// Pipeline is the dispatch sequence shared by every transport: validate,
// resolve, extract, execute, then record session context and history.
// Context and history are only written for fully successful runs.
type Pipeline struct {
	catalog    *catalog.Catalog
	executor   QueryRunner
	sessions   *session.Store
	history    *db.DB // optional; nil disables history persistence
	defaultEnv string
	logger     *slog.Logger
}

func NewPipeline(cat *catalog.Catalog, executor QueryRunner, sessions *session.Store, history *db.DB, defaultEnv string, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		catalog:    cat,
		executor:   executor,
		sessions:   sessions,
		history:    history,
		defaultEnv: defaultEnv,
		logger:     logger,
	}
}

// Run executes the pipeline for one request. Failure modes: ErrInvalidQuery,
// ErrNoIntentMatched, and everything Execute can return.
func (p *Pipeline) Run(ctx context.Context, req models.QueryRequest) (*models.QueryResponse, error) {
	if req.Env == "" {
		req.Env = p.defaultEnv
	}
	if req.SessionID == "" {
		req.SessionID = "anonymous"
	}

	if !validation.IsValidQuery(req.QueryText) {
		p.logger.Info("rejected invalid query text", "session", req.SessionID)
		return nil, ErrInvalidQuery
	}

	match, ok := intent.Resolve(req.QueryText, p.catalog)
	if !ok {
		p.logger.Info("no template matched", "session", req.SessionID, "env", req.Env)
		return nil, ErrNoIntentMatched
	}
	p.logger.Info("resolved intent", "template", match.Template.Name, "env", req.Env)

	params := intent.Extract(req.QueryText, match.Template)

	result, err := p.executor.Execute(ctx, req.Env, match.Template.Name, params)
	if err != nil {
		return nil, err
	}

	p.sessions.Record(req.SessionID, match.Template.Name, params)
	if p.history != nil {
		entry := models.QueryHistory{
			QueryText: req.QueryText,
			Template:  match.Template.Name,
			Env:       req.Env,
			RowCount:  len(result.Rows),
		}
		if err := p.history.StoreQueryHistory(req.SessionID, entry); err != nil {
			p.logger.Warn("failed to store query history", "error", err)
		}
	}

	return &models.QueryResponse{
		Env:             req.Env,
		MatchedTemplate: match.Template.Name,
		Params:          params,
		RecordCount:     len(result.Rows),
		Records:         result.Rows,
	}, nil
}
