package graph

import (
	"fmt"
	"slices"
	"sort"
	"time"
)

// Graph is a directed acyclic concept graph generated for one learning goal.
// The node and edge sets are fixed at construction; only the learner's
// mastery map (held elsewhere) changes over a goal's lifetime.
type Graph struct {
	ID        string          `json:"id"`
	Goal      string          `json:"goal"`
	Nodes     map[string]Node `json:"nodes"`
	Edges     []Edge          `json:"edges"`
	CreatedAt time.Time       `json:"created_at"`

	// Precomputed indices, rebuilt by Index().
	topoOrder  []string
	topoIndex  map[string]int
	dependents map[string][]string
	roots      []string
}

// New builds a graph from nodes, deriving edges from each node's
// prerequisite list in node order. It validates structure and computes
// the topological indices.
func New(id, goal string, nodes []Node) (*Graph, error) {
	g := &Graph{
		ID:        id,
		Goal:      goal,
		Nodes:     make(map[string]Node, len(nodes)),
		CreatedAt: time.Now().UTC(),
	}
	for _, n := range nodes {
		g.Nodes[n.Concept] = n
	}
	for _, n := range nodes {
		for _, prereq := range n.Prerequisites {
			g.Edges = append(g.Edges, Edge{From: prereq, To: n.Concept})
		}
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	g.Index()
	return g, nil
}

// Index rebuilds the precomputed indices: topological order (Kahn's
// algorithm, ties broken lexicographically for determinism), reverse
// edges, and roots. Must be called after deserializing a stored graph.
func (g *Graph) Index() {
	g.dependents = make(map[string][]string)
	g.topoIndex = make(map[string]int, len(g.Nodes))
	g.topoOrder = g.topoOrder[:0]
	g.roots = g.roots[:0]

	inDegree := make(map[string]int, len(g.Nodes))
	for name, n := range g.Nodes {
		inDegree[name] = len(n.Prerequisites)
		for _, prereq := range n.Prerequisites {
			g.dependents[prereq] = append(g.dependents[prereq], name)
		}
	}

	var queue []string
	for name, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)
	g.roots = slices.Clone(queue)

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		g.topoIndex[name] = len(g.topoOrder)
		g.topoOrder = append(g.topoOrder, name)

		deps := slices.Clone(g.dependents[name])
		sort.Strings(deps)
		for _, dep := range deps {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}
}

// Node returns the node for a concept name.
func (g *Graph) Node(concept string) (Node, error) {
	n, ok := g.Nodes[concept]
	if !ok {
		return Node{}, fmt.Errorf("concept not found: %q", concept)
	}
	return n, nil
}

// Concepts returns all concept names in topological order.
func (g *Graph) Concepts() []string {
	return slices.Clone(g.topoOrder)
}

// Roots returns concepts with no prerequisites, sorted by name.
func (g *Graph) Roots() []string {
	return slices.Clone(g.roots)
}

// Dependents returns concepts that directly depend on the given concept.
func (g *Graph) Dependents(concept string) []string {
	return slices.Clone(g.dependents[concept])
}

// TopoIndex returns the topological position of a concept, or -1 if the
// concept is unknown.
func (g *Graph) TopoIndex(concept string) int {
	if i, ok := g.topoIndex[concept]; ok {
		return i
	}
	return -1
}
