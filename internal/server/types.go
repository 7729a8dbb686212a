package server

// DefaultUserID is assumed when a request omits user_id. There is no auth
// surface; identity is advisory.
const DefaultUserID = "demo_user"

// GoalRequest is the request body for POST /goal.
type GoalRequest struct {
	Goal   string `json:"goal" binding:"required"`
	UserID string `json:"user_id"`
}

// StartRequest is the request body for POST /session/start.
type StartRequest struct {
	GoalID string `json:"goal_id" binding:"required"`
	UserID string `json:"user_id"`
}

// InteractRequest is the request body for POST /session/interact.
type InteractRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Response  string `json:"response"`
}

// ErrorResponse is the error body for all endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HealthResponse is the response for GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
