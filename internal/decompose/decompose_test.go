package decompose

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/tutorloop/tutorloop/internal/graph"
	"github.com/tutorloop/tutorloop/internal/llm"
)

func TestDecompose_EmptyGoal(t *testing.T) {
	d := New()
	for _, goal := range []string{"", "   ", "\n\t"} {
		if _, err := d.Decompose(context.Background(), goal); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("goal %q: got %v, want ErrInvalidInput", goal, err)
		}
	}
}

func TestDecompose_ReinforcementLearning(t *testing.T) {
	d := New()
	g, err := d.Decompose(context.Background(), "Learn reinforcement learning well enough to build agents")
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}

	mdp, err := g.Node("Markov Decision Process")
	if err != nil {
		t.Fatalf("expected MDP concept: %v", err)
	}
	if len(mdp.Prerequisites) != 0 {
		t.Errorf("MDP prerequisites: got %v, want none", mdp.Prerequisites)
	}

	dqn, err := g.Node("Deep Q-Networks")
	if err != nil {
		t.Fatalf("expected DQN concept: %v", err)
	}
	if len(dqn.Prerequisites) != 2 {
		t.Errorf("DQN prerequisites: got %v, want [Q-Learning, Neural Networks]", dqn.Prerequisites)
	}

	if err := g.Validate(); err != nil {
		t.Errorf("generated graph invalid: %v", err)
	}
}

func TestDecompose_FreshIdentityPerCall(t *testing.T) {
	d := New()
	g1, err := d.Decompose(context.Background(), "machine learning")
	if err != nil {
		t.Fatalf("first Decompose: %v", err)
	}
	g2, err := d.Decompose(context.Background(), "machine learning")
	if err != nil {
		t.Fatalf("second Decompose: %v", err)
	}
	if g1.ID == g2.ID {
		t.Error("expected distinct graph IDs for repeated decomposition")
	}
	if len(g1.Nodes) != len(g2.Nodes) {
		t.Errorf("topologies differ: %d vs %d nodes", len(g1.Nodes), len(g2.Nodes))
	}
}

func TestDecompose_GenericFallback(t *testing.T) {
	d := New()
	g, err := d.Decompose(context.Background(), "watercolor painting")
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	if len(g.Nodes) != 5 {
		t.Errorf("fallback graph: got %d nodes, want 5", len(g.Nodes))
	}
	if _, err := g.Node("Fundamentals of watercolor painting"); err != nil {
		t.Errorf("missing fallback root: %v", err)
	}
	if len(g.Roots()) != 1 {
		t.Errorf("fallback graph roots: got %v, want exactly one", g.Roots())
	}
}

func TestRegistry_FirstMatchWins(t *testing.T) {
	r := DefaultRegistry()
	// Mentions both RL and neural networks; RL is registered first.
	if got := r.Match("reinforcement learning with neural network function approximation"); got != "reinforcement-learning" {
		t.Errorf("got topic %q, want reinforcement-learning", got)
	}
}

func TestRegistry_ShortKeywordWordBoundary(t *testing.T) {
	r := DefaultRegistry()
	if got := r.Match("intro to ml"); got != "machine-learning" {
		t.Errorf("got topic %q, want machine-learning", got)
	}
	if got := r.Match("learn html basics"); got == "machine-learning" {
		t.Error(`"html" should not match the "ml" keyword`)
	}
}

func TestAllBuiltinTopics_ProduceValidGraphs(t *testing.T) {
	d := New()
	goals := []string{
		"reinforcement learning",
		"deep learning",
		"machine learning",
		"algorithm design",
	}
	for _, goal := range goals {
		g, err := d.Decompose(context.Background(), goal)
		if err != nil {
			t.Errorf("goal %q: %v", goal, err)
			continue
		}
		if len(g.Roots()) == 0 {
			t.Errorf("goal %q: no root concepts", goal)
		}
	}
}

func TestDecompose_LLMBuilderUsed(t *testing.T) {
	content, _ := json.Marshal(map[string]any{
		"concepts": []map[string]any{
			{
				"concept":                "Sourdough Starter",
				"prerequisites":          []string{},
				"difficulty_score":       0.2,
				"estimated_time_minutes": 15,
			},
			{
				"concept":                "Bulk Fermentation",
				"prerequisites":          []string{"Sourdough Starter"},
				"difficulty_score":       0.5,
				"estimated_time_minutes": 30,
			},
		},
	})
	mock := llm.NewMockProvider(llm.MockResponse{Content: content})
	d := New().WithBuilder(NewLLMBuilder(mock, 0))

	g, err := d.Decompose(context.Background(), "bake sourdough bread")
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	if len(g.Nodes) != 2 {
		t.Fatalf("got %d nodes, want 2 from the mock builder", len(g.Nodes))
	}
	if mock.CallCount() != 1 {
		t.Errorf("provider calls: got %d, want 1", mock.CallCount())
	}
}

func TestDecompose_LLMFailureFallsBack(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	d := New().WithBuilder(NewLLMBuilder(mock, 0))

	g, err := d.Decompose(context.Background(), "reinforcement learning")
	if err != nil {
		t.Fatalf("Decompose should fall back, got error: %v", err)
	}
	if _, err := g.Node("Markov Decision Process"); err != nil {
		t.Errorf("fallback should use the registry tree: %v", err)
	}
}

func TestDecompose_LLMInvalidGraphFallsBack(t *testing.T) {
	// Cyclic output passes the JSON shape but fails graph validation.
	content, _ := json.Marshal(map[string]any{
		"concepts": []map[string]any{
			{"concept": "A", "prerequisites": []string{"B"}, "difficulty_score": 0.5, "estimated_time_minutes": 10},
			{"concept": "B", "prerequisites": []string{"A"}, "difficulty_score": 0.5, "estimated_time_minutes": 10},
		},
	})
	mock := llm.NewMockProvider(llm.MockResponse{Content: content})
	d := New().WithBuilder(NewLLMBuilder(mock, 0))

	g, err := d.Decompose(context.Background(), "machine learning")
	if err != nil {
		t.Fatalf("Decompose should fall back, got error: %v", err)
	}
	if _, err := g.Node("Supervised Learning"); err != nil {
		t.Errorf("fallback should use the registry tree: %v", err)
	}
}

func TestBuiltinTrees_NonEmpty(t *testing.T) {
	for name, nodes := range map[string][]graph.Node{
		"rl":         rlNodes(),
		"deep":       deepLearningNodes(),
		"ml":         mlNodes(),
		"algorithms": algorithmsNodes(),
	} {
		if len(nodes) == 0 {
			t.Errorf("builtin tree %q is empty", name)
		}
	}
}
