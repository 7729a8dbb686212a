package store

import (
	"time"

	"github.com/tutorloop/tutorloop/internal/orchestrate"
)

// Goal is a learning goal a user submitted for decomposition.
type Goal struct {
	ID        string    `json:"goal_id"`
	UserID    string    `json:"user_id"`
	Goal      string    `json:"goal"`
	GraphID   string    `json:"graph_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// GoalStatusActive is the only goal status so far. Archival is a later
// concern.
const GoalStatusActive = "active"

// Session is the persisted state of one learning session.
type Session struct {
	ID                string
	GoalID            string
	UserID            string
	CurrentConcept    string
	Stage             orchestrate.Stage
	Modality          orchestrate.Modality
	ConceptsMastered  []string
	AskedQuestions    map[string][]string // concept -> Socratic question types asked
	StartedAt         time.Time
	LastInteractionAt time.Time
	InteractionCount  int
	Completed         bool
}

// Clone returns a deep copy so callers can mutate without racing readers.
func (s *Session) Clone() *Session {
	cp := *s
	cp.ConceptsMastered = append([]string(nil), s.ConceptsMastered...)
	if s.AskedQuestions != nil {
		cp.AskedQuestions = make(map[string][]string, len(s.AskedQuestions))
		for k, v := range s.AskedQuestions {
			cp.AskedQuestions[k] = append([]string(nil), v...)
		}
	}
	return &cp
}

// Interaction is one evaluated learner turn, append-only.
type Interaction struct {
	ID         string
	SessionID  string
	Concept    string
	Response   string
	LatencyMs  int64
	Score      float64
	Passed     bool
	Adaptation string
	Timestamp  time.Time
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
	CostUSD      float64
}

// LLMRequestEvent is a stored LLM request with its position in the event log.
type LLMRequestEvent struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}
