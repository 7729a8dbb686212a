package evaluate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/tutorloop/tutorloop/internal/llm"
)

const evaluationSystemPrompt = `You are a Socratic tutor evaluating a learner's explanation of a concept.
Score the reasoning quality from 0.0 to 1.0. Do not reward length alone:
look for causal reasoning, correct use of terminology, and concrete examples.
If the score is below 0.7, pose one follow-up question that probes the
weakest part of the answer. Respond with JSON only.`

// EvaluationSchema constrains the model's scoring output.
var EvaluationSchema = &llm.Schema{
	Name:        "socratic-evaluation",
	Description: "Reasoning quality judgment of a learner's explanation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"reasoning_quality": map[string]any{
				"type":    "number",
				"minimum": 0,
				"maximum": 1,
			},
			"passed":             map[string]any{"type": "boolean"},
			"feedback":           map[string]any{"type": "string"},
			"follow_up_question": map[string]any{"type": "string"},
		},
		"required":             []any{"reasoning_quality", "passed", "feedback"},
		"additionalProperties": false,
	},
}

// LLMScorer asks a provider to judge reasoning quality and falls back to the
// deterministic heuristic on any failure. A successful, well-formed model
// response is trusted verbatim.
type LLMScorer struct {
	provider llm.Provider
	fallback *HeuristicScorer
	timeout  time.Duration
}

// NewLLMScorer wraps provider with a per-call timeout. A zero timeout
// defaults to 15 seconds.
func NewLLMScorer(provider llm.Provider, timeout time.Duration) *LLMScorer {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &LLMScorer{provider: provider, fallback: NewHeuristicScorer(), timeout: timeout}
}

type llmEvaluation struct {
	ReasoningQuality float64 `json:"reasoning_quality"`
	Passed           bool    `json:"passed"`
	Feedback         string  `json:"feedback"`
	FollowUp         string  `json:"follow_up_question"`
}

func (s *LLMScorer) Evaluate(ctx context.Context, in Input) (Evaluation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	ctx = llm.WithPurpose(ctx, "evaluate")

	userMsg := fmt.Sprintf("Concept: %s\n\nLearner's response:\n%s", in.Concept, in.Response)
	resp, err := s.provider.Generate(ctx, llm.Request{
		System: evaluationSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      EvaluationSchema,
		MaxTokens:   512,
		Temperature: 0.2,
	})
	if err != nil {
		slog.Warn("llm evaluation failed, using heuristic", "concept", in.Concept, "error", err)
		return s.fallback.Evaluate(ctx, in)
	}

	var raw llmEvaluation
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		slog.Warn("llm evaluation unparseable, using heuristic", "concept", in.Concept, "error", err)
		return s.fallback.Evaluate(ctx, in)
	}
	if raw.ReasoningQuality < 0 || raw.ReasoningQuality > 1 {
		slog.Warn("llm evaluation out of range, using heuristic", "concept", in.Concept, "score", raw.ReasoningQuality)
		return s.fallback.Evaluate(ctx, in)
	}

	ev := Evaluation{
		Score:     raw.ReasoningQuality,
		Passed:    raw.Passed,
		Feedback:  raw.Feedback,
		FollowUp:  raw.FollowUp,
		Breakdown: Breakdown(in.Response),
	}
	if !ev.Passed && ev.FollowUp == "" {
		ev.FollowUp = FollowUp(in.Concept, ev.Score, in.QuestionHistory)
	}
	return ev, nil
}

var _ Scorer = (*HeuristicScorer)(nil)
var _ Scorer = (*LLMScorer)(nil)
