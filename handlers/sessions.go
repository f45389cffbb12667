package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListSessionsHandler lists sessions with recorded history
// @Summary      List sessions
// @Description  Get the ids of all sessions that have recorded query history
// @Tags         Sessions
// @Produce      json
// @Success      200  {object}  map[string][]string  "Session ids"
// @Failure      500  {object}  map[string]string    "Failed to list sessions"
// @Router       /api/sessions [get]
func (h *Handlers) ListSessionsHandler(c *gin.Context) {
	logger := h.requestLogger(c, "ListSessionsHandler")

	if h.history == nil {
		c.JSON(http.StatusOK, gin.H{"sessions": []string{}})
		return
	}

	sessions, err := h.history.Sessions()
	if err != nil {
		logger.Error("failed to list sessions", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sessions"})
		return
	}
	if sessions == nil {
		sessions = []string{}
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// GetSessionContextHandler returns the last resolution for a session
// @Summary      Get session context
// @Description  Get the last successfully resolved template and parameters for a session
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  models.SessionContext  "Session context"
// @Failure      404  {object}  map[string]string      "Unknown session"
// @Router       /api/sessions/{id}/context [get]
func (h *Handlers) GetSessionContextHandler(c *gin.Context) {
	sessionID := c.Param("id")

	ctx, ok := h.sessions.Get(sessionID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No context recorded for session", "session_id": sessionID})
		return
	}

	c.JSON(http.StatusOK, ctx)
}

// GetSessionHistoryHandler returns the persisted query history for a session
// @Summary      Get session query history
// @Description  Get every successful query run recorded for a session, oldest first
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  map[string]interface{}  "Query history"
// @Failure      500  {object}  map[string]string       "Failed to load history"
// @Router       /api/sessions/{id}/history [get]
func (h *Handlers) GetSessionHistoryHandler(c *gin.Context) {
	logger := h.requestLogger(c, "GetSessionHistoryHandler")
	sessionID := c.Param("id")

	if h.history == nil {
		c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "history": []interface{}{}})
		return
	}

	history, err := h.history.GetQueryHistory(sessionID)
	if err != nil {
		logger.Error("failed to load query history", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load query history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "history": history})
}
