package graph

import "encoding/json"

// Node is a single concept in a dependency graph.
// Nodes are immutable once their graph is built.
type Node struct {
	Concept              string   `json:"concept"`
	Prerequisites        []string `json:"prerequisites"`
	DifficultyScore      float64  `json:"difficulty_score"`
	EstimatedTimeMinutes int      `json:"estimated_time_minutes"`
	Misconceptions       []string `json:"misconceptions"`
	Examples             []string `json:"examples"`
	TransferChallenges   []string `json:"transfer_tests"`
}

// MasteryStatus is a concept's state relative to the learner.
type MasteryStatus string

const (
	StatusNotStarted MasteryStatus = "not_started"
	StatusAvailable  MasteryStatus = "available" // All prerequisites mastered; concept not yet mastered
	StatusBlocked    MasteryStatus = "blocked"   // One or more prerequisites not yet mastered
	StatusMastered   MasteryStatus = "mastered"  // Recall and transfer evaluation both passed
)

// Edge is a (prerequisite, dependent) pair. It serializes as a two-element
// array to match the wire format ["prerequisite", "dependent"].
type Edge struct {
	From string
	To   string
}

func (e Edge) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{e.From, e.To})
}

func (e *Edge) UnmarshalJSON(data []byte) error {
	var pair [2]string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	e.From, e.To = pair[0], pair[1]
	return nil
}
