// Package evaluate scores learner responses through Socratic questioning
// instead of quizzes. Progression stays blocked until reasoning quality
// clears the pass threshold.
package evaluate

import "context"

// PassThreshold is the minimum reasoning quality for a response to pass.
const PassThreshold = 0.7

// Input is one learner response to score.
type Input struct {
	Concept         string
	Response        string
	QuestionHistory []string // Socratic question types already asked this concept
}

// Evaluation is the scoring outcome.
type Evaluation struct {
	Score     float64           `json:"reasoning_quality"`
	Passed    bool              `json:"passed"`
	Feedback  string            `json:"feedback"`
	FollowUp  string            `json:"follow_up_question,omitempty"`
	Breakdown map[string]string `json:"evaluation_breakdown"`
}

// Scorer evaluates reasoning quality of a learner response.
type Scorer interface {
	Evaluate(ctx context.Context, in Input) (Evaluation, error)
}
