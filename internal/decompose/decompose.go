// Package decompose turns free-text learning goals into concept dependency
// graphs. Goals are matched against an ordered registry of topic builders;
// an optional LLM-backed builder can take precedence, falling back to the
// registry whenever it errors or times out.
package decompose

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/tutorloop/tutorloop/internal/graph"
)

// ErrInvalidInput indicates an empty or whitespace-only goal.
var ErrInvalidInput = errors.New("goal must be non-empty")

// GraphBuilder produces a concept node set for a goal. The LLM-backed
// implementation satisfies this; the keyword registry is the fallback.
type GraphBuilder interface {
	BuildNodes(ctx context.Context, goal string) ([]graph.Node, error)
}

// Decomposer maps goals to concept graphs.
type Decomposer struct {
	registry *Registry
	builder  GraphBuilder // optional; nil means registry only
}

// New creates a Decomposer over the default topic registry.
func New() *Decomposer {
	return &Decomposer{registry: DefaultRegistry()}
}

// WithBuilder returns a Decomposer that consults the given builder first.
func (d *Decomposer) WithBuilder(b GraphBuilder) *Decomposer {
	return &Decomposer{registry: d.registry, builder: b}
}

// Decompose produces a fresh concept graph for the goal. Every call returns
// a graph with a new identity, even for identical goals.
func (d *Decomposer) Decompose(ctx context.Context, goal string) (*graph.Graph, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return nil, ErrInvalidInput
	}

	if d.builder != nil {
		nodes, err := d.builder.BuildNodes(ctx, goal)
		if err == nil {
			g, gerr := graph.New(uuid.NewString(), goal, nodes)
			if gerr == nil {
				return g, nil
			}
			err = gerr
		}
		// Fail open to the keyword registry. The external path is best
		// effort and must never surface a hard failure to the caller.
		slog.Warn("graph builder failed, using topic registry", "goal", goal, "error", err)
	}

	nodes := d.registry.Build(goal)
	return graph.New(uuid.NewString(), goal, nodes)
}
