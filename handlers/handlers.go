package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sqlintent/catalog"
	"sqlintent/db"
	"sqlintent/models"
	"sqlintent/service"
	"sqlintent/session"
)

// @title           SQL Intent Executor API
// @version         1.0
// @description     Resolve natural language to stored SQL templates and execute them against environment-specific databases

// @host      localhost:9090
// @BasePath  /

// @schemes   http https

// QueryExecutor is the execution engine boundary; it is an interface so
// handler tests can substitute a stub backend.
type QueryExecutor interface {
	Execute(ctx context.Context, envName, templateName string, params models.Params) (*models.SQLResult, error)
	Ping(ctx context.Context, envName string) error
	Environments() []string
}

type Handlers struct {
	catalog  *catalog.Catalog
	executor QueryExecutor
	sessions *session.Store
	history  *db.DB // optional; nil disables history persistence
	pipeline *service.Pipeline
	logger   *slog.Logger
}

func New(cat *catalog.Catalog, executor QueryExecutor, sessions *session.Store, history *db.DB, defaultEnv string, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		catalog:  cat,
		executor: executor,
		sessions: sessions,
		history:  history,
		pipeline: service.NewPipeline(cat, executor, sessions, history, defaultEnv, logger),
		logger:   logger,
	}
}

const requestIDKey = "request_id"

// RequestIDMiddleware assigns each request an id, honoring a caller-supplied
// X-Request-ID so upstream correlation survives.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// RecoveryMiddleware converts an unhandled panic into a structured 500
// response instead of an empty body.
func RecoveryMiddleware(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID, _ := c.Get(requestIDKey)
		logger.Error("unhandled panic", "request_id", requestID, "error", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"details": fmt.Sprint(recovered),
		})
	})
}

func (h *Handlers) requestLogger(c *gin.Context, handler string) *slog.Logger {
	requestID, _ := c.Get(requestIDKey)
	return h.logger.With("request_id", requestID, "handler", handler)
}
