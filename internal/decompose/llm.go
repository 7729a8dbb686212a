package decompose

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tutorloop/tutorloop/internal/graph"
	"github.com/tutorloop/tutorloop/internal/llm"
)

const decomposeSystemPrompt = `You are a curriculum designer. Decompose the learner's goal into 4-8 atomic
concepts forming a prerequisite DAG. Every prerequisite must name another
concept in your answer, at least one concept must have no prerequisites, and
there must be no cycles. Difficulty scores are in [0, 1] and estimated times
are positive minutes. Include 2-3 common misconceptions, 2-3 concrete
examples, and 1-2 transfer challenges per concept.`

// GraphSchema constrains LLM decomposition output.
var GraphSchema = &llm.Schema{
	Name:        "concept-graph",
	Description: "Concept dependency graph for a learning goal",
	Definition: map[string]any{
		"type":     "object",
		"required": []string{"concepts"},
		"properties": map[string]any{
			"concepts": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type":     "object",
					"required": []string{"concept", "prerequisites", "difficulty_score", "estimated_time_minutes"},
					"properties": map[string]any{
						"concept":                map[string]any{"type": "string", "minLength": 1},
						"prerequisites":          map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"difficulty_score":       map[string]any{"type": "number", "minimum": 0, "maximum": 1},
						"estimated_time_minutes": map[string]any{"type": "integer", "minimum": 1},
						"misconceptions":         map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"examples":               map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"transfer_tests":         map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					},
					"additionalProperties": false,
				},
			},
		},
		"additionalProperties": false,
	},
}

// LLMBuilder asks a model provider to decompose a goal. The provider's
// output is schema-validated here and structurally validated by graph.New
// in the caller; any failure makes the Decomposer fall back to the registry.
type LLMBuilder struct {
	provider llm.Provider
	timeout  time.Duration
}

// NewLLMBuilder creates a builder over the given provider. A zero timeout
// defaults to 30 seconds.
func NewLLMBuilder(provider llm.Provider, timeout time.Duration) *LLMBuilder {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &LLMBuilder{provider: provider, timeout: timeout}
}

var _ GraphBuilder = (*LLMBuilder)(nil)

type graphOutput struct {
	Concepts []graph.Node `json:"concepts"`
}

// BuildNodes implements GraphBuilder.
func (b *LLMBuilder) BuildNodes(ctx context.Context, goal string) ([]graph.Node, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()
	ctx = llm.WithPurpose(ctx, "decompose")

	resp, err := b.provider.Generate(ctx, llm.Request{
		System: decomposeSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: fmt.Sprintf("Learning goal: %s", goal)},
		},
		Schema:    GraphSchema,
		MaxTokens: 4096,
	})
	if err != nil {
		return nil, fmt.Errorf("goal decomposition: %w", err)
	}

	var out graphOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse decomposition response: %w", err)
	}
	if len(out.Concepts) == 0 {
		return nil, fmt.Errorf("decomposition returned no concepts")
	}
	return out.Concepts, nil
}
