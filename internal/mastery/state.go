// Package mastery tracks a learner's per-concept mastery records for one
// learning goal. Records are created lazily and mutated only through the
// interaction flow; mastery is monotonic and never reverts.
package mastery

import (
	"sort"
	"time"

	"github.com/tutorloop/tutorloop/internal/graph"
)

// ConfidenceAlpha is the exponential-moving-average weight applied to the
// latest evaluation score.
const ConfidenceAlpha = 0.3

// State is the mastery record for one (user, goal, concept).
type State struct {
	UserID        string              `json:"user_id"`
	GoalID        string              `json:"goal_id"`
	Concept       string              `json:"concept"`
	Status        graph.MasteryStatus `json:"status"`
	Confidence    float64             `json:"confidence"`
	Attempts      int                 `json:"attempts"`
	LastAttemptAt *time.Time          `json:"last_attempt_at,omitempty"`
	MasteredAt    *time.Time          `json:"mastered_at,omitempty"`
}

// NewState creates a not-started record.
func NewState(userID, goalID, concept string) *State {
	return &State{
		UserID:  userID,
		GoalID:  goalID,
		Concept: concept,
		Status:  graph.StatusNotStarted,
	}
}

// RecordEvaluation folds one evaluation score into the record.
// It does not change Status; mastery is granted separately by MarkMastered
// once the transfer stage passes.
func (s *State) RecordEvaluation(score float64, at time.Time) {
	s.Attempts++
	if s.Attempts == 1 {
		s.Confidence = score
	} else {
		s.Confidence = ConfidenceAlpha*score + (1-ConfidenceAlpha)*s.Confidence
	}
	s.LastAttemptAt = &at
}

// MarkMastered transitions the record to mastered. Idempotent; the first
// mastery timestamp is preserved.
func (s *State) MarkMastered(at time.Time) {
	if s.Status == graph.StatusMastered {
		return
	}
	s.Status = graph.StatusMastered
	s.MasteredAt = &at
}

// Mastered reports whether the concept is mastered.
func (s *State) Mastered() bool {
	return s.Status == graph.StatusMastered
}

// MasteredSet reduces a record list to the set the graph engine consumes.
func MasteredSet(states []*State) map[string]bool {
	set := make(map[string]bool, len(states))
	for _, s := range states {
		if s.Mastered() {
			set[s.Concept] = true
		}
	}
	return set
}

// MasteredConcepts returns mastered concept names in the order they were
// mastered. Records without a timestamp sort last; ties break on name.
func MasteredConcepts(states []*State) []string {
	var done []*State
	for _, s := range states {
		if s.Mastered() {
			done = append(done, s)
		}
	}
	sort.Slice(done, func(i, j int) bool {
		a, b := done[i], done[j]
		switch {
		case a.MasteredAt == nil && b.MasteredAt == nil:
			return a.Concept < b.Concept
		case a.MasteredAt == nil:
			return false
		case b.MasteredAt == nil:
			return true
		case a.MasteredAt.Equal(*b.MasteredAt):
			return a.Concept < b.Concept
		default:
			return a.MasteredAt.Before(*b.MasteredAt)
		}
	})
	out := make([]string, len(done))
	for i, s := range done {
		out[i] = s.Concept
	}
	return out
}
