package decompose

import (
	"strings"

	"github.com/tutorloop/tutorloop/internal/graph"
)

// Matcher reports whether a topic applies to a goal. Goals are lowercased
// before matching.
type Matcher func(goal string) bool

// BuildFunc produces the node set for a matched topic.
type BuildFunc func(goal string) []graph.Node

// entry pairs a matcher with its builder. Entries are tried in order;
// first match wins.
type entry struct {
	name  string
	match Matcher
	build BuildFunc
}

// Registry is an ordered table of topic builders with a generic fallback.
// Extending coverage means registering a new entry, not touching the
// decomposition algorithm.
type Registry struct {
	entries  []entry
	fallback BuildFunc
}

// DefaultRegistry returns the built-in topic table.
func DefaultRegistry() *Registry {
	r := &Registry{fallback: genericNodes}
	r.Register("reinforcement-learning", anyKeyword("reinforcement learning", "rl agent"), func(string) []graph.Node { return rlNodes() })
	r.Register("deep-learning", anyKeyword("neural network", "deep learning"), func(string) []graph.Node { return deepLearningNodes() })
	r.Register("machine-learning", anyKeyword("machine learning", "ml"), func(string) []graph.Node { return mlNodes() })
	r.Register("algorithms", anyKeyword("algorithm", "data structure"), func(string) []graph.Node { return algorithmsNodes() })
	return r
}

// Register appends a topic entry. Order of registration is match priority.
func (r *Registry) Register(name string, m Matcher, b BuildFunc) {
	r.entries = append(r.entries, entry{name: name, match: m, build: b})
}

// Match returns the name of the first matching topic, or "" for the fallback.
func (r *Registry) Match(goal string) string {
	lower := strings.ToLower(goal)
	for _, e := range r.entries {
		if e.match(lower) {
			return e.name
		}
	}
	return ""
}

// Build returns the node set for the first matching topic, or the generic
// fallback when nothing matches.
func (r *Registry) Build(goal string) []graph.Node {
	lower := strings.ToLower(goal)
	for _, e := range r.entries {
		if e.match(lower) {
			return e.build(goal)
		}
	}
	return r.fallback(goal)
}

// Topics returns registered topic names in match order.
func (r *Registry) Topics() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.name
	}
	return names
}

// anyKeyword matches when any of the given substrings appears in the
// lowercased goal. Short keywords like "ml" match on word boundaries only.
func anyKeyword(keywords ...string) Matcher {
	return func(goal string) bool {
		for _, kw := range keywords {
			if len(kw) <= 2 {
				if containsWord(goal, kw) {
					return true
				}
				continue
			}
			if strings.Contains(goal, kw) {
				return true
			}
		}
		return false
	}
}

func containsWord(s, word string) bool {
	for f := range strings.FieldsSeq(s) {
		if strings.Trim(f, ".,!?;:") == word {
			return true
		}
	}
	return false
}
