package session

import (
	"time"

	"github.com/tutorloop/tutorloop/internal/graph"
	"github.com/tutorloop/tutorloop/internal/orchestrate"
)

// GoalResult is the response to goal creation.
type GoalResult struct {
	GoalID   string       `json:"goal_id"`
	GraphID  string       `json:"graph_id"`
	Graph    *graph.Graph `json:"graph"`
	Concepts []string     `json:"concepts"`
}

// GraphResult pairs a concept graph with its goal text.
type GraphResult struct {
	Graph *graph.Graph `json:"graph"`
	Goal  string       `json:"goal"`
}

// StartResult is the response to starting a session. When every concept is
// already mastered no session is created and Completed is set instead.
type StartResult struct {
	SessionID    string               `json:"session_id,omitempty"`
	FirstConcept string               `json:"first_concept,omitempty"`
	Content      *orchestrate.Content `json:"content,omitempty"`
	Progress     float64              `json:"progress"`
	Completed    bool                 `json:"completed,omitempty"`
	Message      string               `json:"message,omitempty"`
}

// InteractResult is the response to one learner turn. Exactly one of the
// three shapes is populated: a failed or advancing evaluation, a concept
// mastery transition, or goal completion.
type InteractResult struct {
	SessionID string `json:"session_id"`

	Passed             bool                 `json:"passed"`
	Stage              orchestrate.Stage    `json:"stage,omitempty"`
	Feedback           string               `json:"feedback,omitempty"`
	FollowUpQuestion   string               `json:"follow_up_question,omitempty"`
	AdaptationApplied  string               `json:"adaptation_applied,omitempty"`
	NextContent        *orchestrate.Content `json:"next_content,omitempty"`
	ReasoningQuality   float64              `json:"reasoning_quality"`
	Breakdown          map[string]string    `json:"evaluation_breakdown,omitempty"`
	ConceptMastered    bool                 `json:"concept_mastered,omitempty"`
	NewConcept         string               `json:"new_concept,omitempty"`
	ProgressPercentage float64              `json:"progress_percentage"`
	Completed          bool                 `json:"completed,omitempty"`
	Message            string               `json:"message,omitempty"`
}

// StateResult is the response to a session state query.
type StateResult struct {
	SessionID          string               `json:"session_id"`
	CurrentConcept     string               `json:"current_concept"`
	Stage              orchestrate.Stage    `json:"stage"`
	ProgressPercentage float64              `json:"progress_percentage"`
	MasteredConcepts   []string             `json:"mastered_concepts"`
	NextContent        *orchestrate.Content `json:"next_content"`
	Completed          bool                 `json:"completed"`
}

// ConceptDetail is one row of the progress report.
type ConceptDetail struct {
	Concept       string  `json:"concept"`
	Status        string  `json:"status"`
	Confidence    float64 `json:"confidence"`
	Attempts      int     `json:"attempts"`
	Difficulty    float64 `json:"difficulty"`
	EstimatedTime int     `json:"estimated_time"`
}

// ProgressResult is the response to a progress query.
type ProgressResult struct {
	Goal               string              `json:"goal"`
	ProgressPercentage float64             `json:"progress_percentage"`
	MasteredConcepts   []string            `json:"mastered_concepts"`
	AvailableConcepts  []string            `json:"available_concepts"`
	BlockedConcepts    map[string][]string `json:"blocked_concepts"`
	EngagementScore    float64             `json:"engagement_score"`
	ConceptDetails     []ConceptDetail     `json:"concept_details"`
	TotalConcepts      int                 `json:"total_concepts"`
	NextConcept        string              `json:"next_concept"`
	LastUpdated        time.Time           `json:"last_updated"`
}
