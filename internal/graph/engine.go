package graph

// The engine functions below are pure over (graph, mastered set): they never
// mutate mastery state. Mastery changes are made by the session flow, which
// then re-derives availability through these functions.

// IsUnlocked reports whether every prerequisite of the concept is mastered.
func (g *Graph) IsUnlocked(concept string, mastered map[string]bool) bool {
	n, ok := g.Nodes[concept]
	if !ok {
		return false
	}
	for _, prereq := range n.Prerequisites {
		if !mastered[prereq] {
			return false
		}
	}
	return true
}

// Availability partitions unmastered concepts into available (all
// prerequisites mastered) and blocked (annotated with unmet prerequisites).
// Both are ordered topologically.
func (g *Graph) Availability(mastered map[string]bool) (available []string, blocked map[string][]string) {
	blocked = make(map[string][]string)
	for _, concept := range g.topoOrder {
		if mastered[concept] {
			continue
		}
		var unmet []string
		for _, prereq := range g.Nodes[concept].Prerequisites {
			if !mastered[prereq] {
				unmet = append(unmet, prereq)
			}
		}
		if len(unmet) == 0 {
			available = append(available, concept)
		} else {
			blocked[concept] = unmet
		}
	}
	return available, blocked
}

// SelectNext picks the concept to teach next: the available concept with the
// lowest difficulty score, ties broken by topological order. Returns "" when
// nothing is available (graph fully mastered, or a data error left every
// remaining concept blocked).
func (g *Graph) SelectNext(mastered map[string]bool) string {
	available, _ := g.Availability(mastered)
	if len(available) == 0 {
		return ""
	}

	best := available[0]
	for _, concept := range available[1:] {
		if g.Nodes[concept].DifficultyScore < g.Nodes[best].DifficultyScore {
			best = concept
		}
		// Equal difficulty keeps the earlier topological position, which
		// Availability already ordered by.
	}
	return best
}

// ProgressPercentage is mastered count over total nodes, as a percentage.
func (g *Graph) ProgressPercentage(mastered map[string]bool) float64 {
	if len(g.Nodes) == 0 {
		return 0
	}
	count := 0
	for concept := range g.Nodes {
		if mastered[concept] {
			count++
		}
	}
	return float64(count) / float64(len(g.Nodes)) * 100
}
