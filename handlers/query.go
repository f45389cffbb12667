package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"sqlintent/catalog"
	"sqlintent/config"
	"sqlintent/models"
	"sqlintent/service"
)

// QueryHandler runs the dispatch pipeline: resolve the text to a template,
// extract parameters, execute against the requested environment, then record
// the outcome as session context.
// @Summary      Execute a natural language query
// @Description  Resolve free text to a stored SQL template, execute it against the named environment and return the rows
// @Tags         Query
// @Accept       json
// @Produce      json
// @Param        request  body      models.QueryRequest  true  "Query request"
// @Success      200      {object}  models.QueryResponse "Execution result"
// @Failure      400      {object}  map[string]string    "Invalid request or no matching template"
// @Failure      500      {object}  map[string]string    "Execution error"
// @Router       /api/query [post]
func (h *Handlers) QueryHandler(c *gin.Context) {
	logger := h.requestLogger(c, "QueryHandler")

	var req models.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: query_text is required"})
		return
	}

	resp, err := h.pipeline.Run(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuery):
			c.JSON(http.StatusBadRequest, gin.H{"error": "The query appears to be invalid or gibberish. Please provide a meaningful query."})
		case errors.Is(err, service.ErrNoIntentMatched):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No matching query found."})
		default:
			h.writeExecutionError(c, logger, err)
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handlers) writeExecutionError(c *gin.Context, logger *slog.Logger, err error) {
	var missing *service.MissingParameterError
	var connErr *service.ConnectionError
	var execErr *service.ExecutionError

	switch {
	case errors.Is(err, config.ErrEnvironmentNotConfigured):
		logger.Error("environment not configured", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Environment not configured", "details": err.Error()})
	case errors.Is(err, catalog.ErrTemplateNotFound):
		logger.Error("template missing from catalog", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Template not found", "details": err.Error()})
	case errors.As(err, &missing):
		logger.Error("parameter binding failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Missing query parameter", "details": err.Error()})
	case errors.As(err, &connErr):
		logger.Error("database unreachable", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed", "details": err.Error()})
	case errors.As(err, &execErr):
		logger.Error("query execution failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Query execution failed", "details": err.Error()})
	default:
		logger.Error("unexpected execution error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error", "details": err.Error()})
	}
}
