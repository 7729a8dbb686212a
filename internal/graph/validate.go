package graph

import (
	"fmt"
	"sort"
	"strings"
)

// Validate performs all structural checks on the graph.
// Returns a combined error describing every problem found, or nil if valid.
func (g *Graph) Validate() error {
	var errs []string

	names := make([]string, 0, len(g.Nodes))
	for name := range g.Nodes {
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) == 0 {
		errs = append(errs, "graph has no nodes")
	}

	// Node key must match the node's own concept name.
	for _, name := range names {
		if g.Nodes[name].Concept != name {
			errs = append(errs, fmt.Sprintf("node keyed %q declares concept %q", name, g.Nodes[name].Concept))
		}
	}

	// Dangling prerequisite references.
	for _, name := range names {
		for _, prereq := range g.Nodes[name].Prerequisites {
			if _, ok := g.Nodes[prereq]; !ok {
				errs = append(errs, fmt.Sprintf("concept %q references nonexistent prerequisite %q", name, prereq))
			}
		}
	}

	// Edge endpoints must reference existing nodes.
	for _, e := range g.Edges {
		if _, ok := g.Nodes[e.From]; !ok {
			errs = append(errs, fmt.Sprintf("edge (%q, %q) has unknown prerequisite endpoint", e.From, e.To))
		}
		if _, ok := g.Nodes[e.To]; !ok {
			errs = append(errs, fmt.Sprintf("edge (%q, %q) has unknown dependent endpoint", e.From, e.To))
		}
	}

	// Cycle detection via Kahn's algorithm. Any node left with positive
	// in-degree after the sweep is part of (or downstream of) a cycle.
	inDegree := make(map[string]int, len(g.Nodes))
	adj := make(map[string][]string)
	for _, name := range names {
		inDegree[name] = len(g.Nodes[name].Prerequisites)
		for _, prereq := range g.Nodes[name].Prerequisites {
			adj[prereq] = append(adj[prereq], name)
		}
	}

	var queue []string
	hasRoot := false
	for _, name := range names {
		if inDegree[name] == 0 {
			queue = append(queue, name)
			hasRoot = true
		}
	}

	visited := 0
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		visited++
		for _, dep := range adj[name] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if visited < len(names) {
		var cycleNodes []string
		for _, name := range names {
			if inDegree[name] > 0 {
				cycleNodes = append(cycleNodes, name)
			}
		}
		errs = append(errs, fmt.Sprintf("cycle detected involving concepts: %s", strings.Join(cycleNodes, ", ")))
	}

	if len(names) > 0 && !hasRoot {
		errs = append(errs, "no root concepts found (at least one concept must have no prerequisites)")
	}

	// Metadata range checks.
	for _, name := range names {
		n := g.Nodes[name]
		if n.DifficultyScore < 0 || n.DifficultyScore > 1 {
			errs = append(errs, fmt.Sprintf("concept %q: difficulty score must be in [0, 1], got %g", name, n.DifficultyScore))
		}
		if n.EstimatedTimeMinutes <= 0 {
			errs = append(errs, fmt.Sprintf("concept %q: estimated time must be > 0 minutes, got %d", name, n.EstimatedTimeMinutes))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("concept graph validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
