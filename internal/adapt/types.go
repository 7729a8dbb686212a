// Package adapt classifies recent interaction signals and chooses an
// adaptation action. It is a pure classifier over a window of events: it
// never mutates session or mastery state, and its output is advisory.
package adapt

// Action is an automatically chosen intervention altering how content is
// delivered or re-tested.
type Action string

const (
	// ActionForceRetrieval re-asks the current question without new
	// explanation. Triggered by consecutive skips.
	ActionForceRetrieval Action = "force_retrieval"

	// ActionSwitchModality changes the presentation form for the next
	// delivery of the same stage.
	ActionSwitchModality Action = "switch_modality"

	// ActionShortenContent condenses the next content body.
	ActionShortenContent Action = "shorten_content"

	// ActionIntroduceAnalogy connects the concept to a familiar domain.
	ActionIntroduceAnalogy Action = "introduce_analogy"

	// ActionAddScaffolding injects a hint or partial structure.
	ActionAddScaffolding Action = "add_scaffolding"

	// ActionReteach restarts the concept from the explanation stage.
	// No default rule emits it; it exists for explicit intervention.
	ActionReteach Action = "reteach"
)

// Event is the slice of an interaction the classifier needs. The session
// layer converts stored interaction records into these.
type Event struct {
	ResponseLen int
	LatencyMs   int64
	Score       float64
	Passed      bool
}

// Signals are the derived measurements a classification is based on.
// They also feed the engagement score on the progress surface.
type Signals struct {
	Window           int     // events considered
	RollingAccuracy  float64 // pass rate over the window
	MedianLatencyMs  int64
	ConsecutiveSkips int // trailing events with near-empty responses
	NearMisses       int // failed events scoring >= nearMissFloor
}

// Config tunes the classifier thresholds.
type Config struct {
	WindowSize        int     // rolling window length
	SkipLengthChars   int     // responses shorter than this count as skips
	SkipTrigger       int     // consecutive skips before force_retrieval
	LowAccuracy       float64 // below this (over MinAccuracyEvents) → switch_modality
	MinAccuracyEvents int
	MasteryThreshold  float64 // accuracy band ceiling for scaffolding
	SlowFactor        float64 // multiple of expected latency → shorten_content
	NearMissFloor     float64 // failed scores at or above this are near-misses
	NearMissTrigger   int
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		WindowSize:        5,
		SkipLengthChars:   10,
		SkipTrigger:       2,
		LowAccuracy:       0.4,
		MinAccuracyEvents: 3,
		MasteryThreshold:  0.7,
		SlowFactor:        3.0,
		NearMissFloor:     0.5,
		NearMissTrigger:   2,
	}
}
