package store

import (
	"context"

	"github.com/tutorloop/tutorloop/internal/graph"
	"github.com/tutorloop/tutorloop/internal/mastery"
)

// GoalRepo manages learning goals.
type GoalRepo interface {
	Save(ctx context.Context, g *Goal) error
	Get(ctx context.Context, id string) (*Goal, error)
	ListByUser(ctx context.Context, userID string) ([]*Goal, error)
}

// GraphRepo manages concept graphs. Graphs are immutable once saved.
type GraphRepo interface {
	Save(ctx context.Context, g *graph.Graph) error
	Get(ctx context.Context, id string) (*graph.Graph, error)
}

// SessionRepo manages learning session state.
type SessionRepo interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	ListByGoal(ctx context.Context, goalID string) ([]*Session, error)
}

// MasteryRepo manages per-concept mastery state, keyed by
// (userID, goalID, concept).
type MasteryRepo interface {
	Save(ctx context.Context, st *mastery.State) error
	Get(ctx context.Context, userID, goalID, concept string) (*mastery.State, error)
	ListByGoal(ctx context.Context, userID, goalID string) ([]*mastery.State, error)
}

// EventRepo provides append access to the event log.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// LLMRequests returns the most recent LLM request events, newest first,
	// up to limit (0 = all).
	LLMRequests(ctx context.Context, limit int) ([]*LLMRequestEvent, error)

	// AppendInteraction records one evaluated learner turn.
	AppendInteraction(ctx context.Context, in *Interaction) error

	// RecentInteractions returns up to limit interactions for a session in
	// chronological order, trailing window (0 = all).
	RecentInteractions(ctx context.Context, sessionID string, limit int) ([]*Interaction, error)
}
