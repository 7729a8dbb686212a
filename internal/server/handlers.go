// Package server exposes the learning loop over HTTP as a JSON API.
package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutorloop/tutorloop/internal/decompose"
	"github.com/tutorloop/tutorloop/internal/session"
	"github.com/tutorloop/tutorloop/internal/store"
)

// ServiceVersion is reported by the health endpoint.
const ServiceVersion = "0.1.0"

// Handlers contains the HTTP handlers for the learning API.
type Handlers struct {
	svc *session.Service
}

// NewHandlers creates handlers for the given session service.
func NewHandlers(svc *session.Service) *Handlers {
	return &Handlers{svc: svc}
}

// writeError maps domain errors to HTTP status codes.
func writeError(c *gin.Context, logger *slog.Logger, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL"

	switch {
	case errors.Is(err, decompose.ErrInvalidInput):
		status = http.StatusBadRequest
		code = "INVALID_INPUT"
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
		code = "NOT_FOUND"
	case errors.Is(err, session.ErrPrerequisiteViolation):
		status = http.StatusConflict
		code = "PREREQUISITE_VIOLATION"
	}

	if status == http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
	} else {
		logger.Warn("request rejected", "error", err, "status", status)
	}
	c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
}

// HandleCreateGoal handles POST /goal.
func (h *Handlers) HandleCreateGoal(c *gin.Context) {
	logger := slog.With("handler", "HandleCreateGoal")

	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: "INVALID_REQUEST"})
		return
	}
	if req.UserID == "" {
		req.UserID = DefaultUserID
	}

	res, err := h.svc.CreateGoal(c.Request.Context(), req.UserID, req.Goal)
	if err != nil {
		writeError(c, logger, err)
		return
	}

	logger.Info("goal created", "goal_id", res.GoalID, "concepts", len(res.Concepts))
	c.JSON(http.StatusOK, res)
}

// HandleGetGraph handles GET /graph/:goal_id.
func (h *Handlers) HandleGetGraph(c *gin.Context) {
	logger := slog.With("handler", "HandleGetGraph")

	res, err := h.svc.GetGraph(c.Request.Context(), c.Param("goal_id"))
	if err != nil {
		writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// HandleStartSession handles POST /session/start.
func (h *Handlers) HandleStartSession(c *gin.Context) {
	logger := slog.With("handler", "HandleStartSession")

	var req StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: "INVALID_REQUEST"})
		return
	}
	if req.UserID == "" {
		req.UserID = DefaultUserID
	}

	res, err := h.svc.StartSession(c.Request.Context(), req.GoalID, req.UserID)
	if err != nil {
		writeError(c, logger, err)
		return
	}

	logger.Info("session started", "session_id", res.SessionID, "first_concept", res.FirstConcept)
	c.JSON(http.StatusOK, res)
}

// HandleInteract handles POST /session/interact.
func (h *Handlers) HandleInteract(c *gin.Context) {
	logger := slog.With("handler", "HandleInteract")

	var req InteractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: "INVALID_REQUEST"})
		return
	}

	res, err := h.svc.Interact(c.Request.Context(), req.SessionID, req.Response)
	if err != nil {
		writeError(c, logger, err)
		return
	}

	logger.Info("interaction processed",
		"session_id", req.SessionID,
		"passed", res.Passed,
		"concept_mastered", res.ConceptMastered,
		"completed", res.Completed)
	c.JSON(http.StatusOK, res)
}

// HandleSessionState handles GET /session/state.
func (h *Handlers) HandleSessionState(c *gin.Context) {
	logger := slog.With("handler", "HandleSessionState")

	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "session_id is required", Code: "INVALID_REQUEST"})
		return
	}

	res, err := h.svc.State(c.Request.Context(), sessionID)
	if err != nil {
		writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// HandleProgress handles GET /progress.
func (h *Handlers) HandleProgress(c *gin.Context) {
	logger := slog.With("handler", "HandleProgress")

	goalID := c.Query("goal_id")
	if goalID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "goal_id is required", Code: "INVALID_REQUEST"})
		return
	}
	userID := c.Query("user_id")
	if userID == "" {
		userID = DefaultUserID
	}

	res, err := h.svc.Progress(c.Request.Context(), userID, goalID)
	if err != nil {
		writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// HandleHealth handles GET /healthz.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Version: ServiceVersion})
}
