package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"sqlintent/models"
	"sqlintent/service"
)

// Server exposes the dispatch pipeline as an MCP tool so agent hosts can
// call it over stdio alongside the HTTP transport.
type Server struct {
	pipeline *service.Pipeline
	logger   *slog.Logger
}

// SQLIntentArgs are the tool arguments for sql_intent.
type SQLIntentArgs struct {
	QueryText string `json:"query_text" jsonschema:"natural language query to resolve and execute"`
	Env       string `json:"env,omitempty" jsonschema:"target environment name"`
	SessionID string `json:"session_id,omitempty" jsonschema:"session id used for context tracking"`
}

func New(pipeline *service.Pipeline, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{pipeline: pipeline, logger: logger}
}

// Run serves the sql_intent tool over stdio until ctx is done or the client
// disconnects. Process logs must go to stderr while this runs, since stdout
// carries the transport.
func (s *Server) Run(ctx context.Context) error {
	srv := mcp.NewServer(&mcp.Implementation{Name: "sql-intent", Version: "1.0"}, nil)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "sql_intent",
		Description: "Executes a stored SQL template based on a natural language query and environment.",
	}, s.handleSQLIntent)

	s.logger.Info("MCP server listening on stdio")
	return srv.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) handleSQLIntent(ctx context.Context, req *mcp.CallToolRequest, args SQLIntentArgs) (*mcp.CallToolResult, models.QueryResponse, error) {
	resp, err := s.pipeline.Run(ctx, models.QueryRequest{
		QueryText: args.QueryText,
		Env:       args.Env,
		SessionID: args.SessionID,
	})
	if err != nil {
		// Client-side failures come back as tool errors the model can read
		// and correct; backend failures propagate as protocol errors.
		if errors.Is(err, service.ErrInvalidQuery) || errors.Is(err, service.ErrNoIntentMatched) {
			return &mcp.CallToolResult{
				IsError: true,
				Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
			}, models.QueryResponse{}, nil
		}
		s.logger.Error("tool execution failed", "error", err)
		return nil, models.QueryResponse{}, err
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return nil, models.QueryResponse{}, fmt.Errorf("failed to encode result: %w", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, *resp, nil
}
