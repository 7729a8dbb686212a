package evaluate

import (
	"context"
	"strings"
)

// minResponseChars is the floor below which a response is considered a
// non-answer and scored 0.1 regardless of content.
const minResponseChars = 20

var (
	reasoningIndicators = []string{"because", "therefore", "since", "thus", "which means", "leads to", "results in"}
	exampleIndicators   = []string{"example", "for instance", "such as", "like", "consider"}
	vagueTerms          = []string{"thing", "stuff", "just", "basically", "simply"}
)

// criterion weights. They sum to 1.0: length, terminology, reasoning,
// examples, clarity.
var criterionWeights = [5]float64{0.15, 0.25, 0.25, 0.20, 0.15}

// HeuristicScorer scores responses with deterministic lexical criteria.
// Identical input always yields identical output.
type HeuristicScorer struct{}

// NewHeuristicScorer returns a scorer that never errors.
func NewHeuristicScorer() *HeuristicScorer { return &HeuristicScorer{} }

func (s *HeuristicScorer) Evaluate(_ context.Context, in Input) (Evaluation, error) {
	score := Score(in.Response, in.Concept)
	passed := score >= PassThreshold

	ev := Evaluation{
		Score:     score,
		Passed:    passed,
		Feedback:  feedback(in.Concept, score, passed),
		Breakdown: Breakdown(in.Response),
	}
	if !passed {
		ev.FollowUp = FollowUp(in.Concept, score, in.QuestionHistory)
	}
	return ev, nil
}

// Score computes weighted reasoning quality in [0,1].
func Score(response, concept string) float64 {
	if len(strings.TrimSpace(response)) < minResponseChars {
		return 0.1
	}
	lower := strings.ToLower(response)

	// Length and detail, saturating at 50 words.
	lengthScore := min(1.0, float64(len(strings.Fields(response)))/50)

	// Concept terminology coverage.
	terms := strings.Fields(strings.ToLower(concept))
	hits := 0
	for _, term := range terms {
		if strings.Contains(lower, term) {
			hits++
		}
	}
	terminologyScore := float64(hits) / float64(max(1, len(terms)))

	// Reasoning connectives, saturating at two.
	reasoningScore := min(1.0, float64(countIndicators(lower, reasoningIndicators))/2)

	// Example or application markers, one is enough.
	exampleScore := min(1.0, float64(countIndicators(lower, exampleIndicators)))

	// Vague language penalty, 0.1 per distinct term.
	clarityScore := max(0.0, 1.0-float64(countIndicators(lower, vagueTerms))*0.1)

	scores := [5]float64{lengthScore, terminologyScore, reasoningScore, exampleScore, clarityScore}
	total := 0.0
	for i, s := range scores {
		total += s * criterionWeights[i]
	}
	return total
}

func countIndicators(lower string, indicators []string) int {
	n := 0
	for _, ind := range indicators {
		if strings.Contains(lower, ind) {
			n++
		}
	}
	return n
}

// Breakdown reports which criteria a response met, for interaction metadata.
func Breakdown(response string) map[string]string {
	lower := strings.ToLower(response)

	b := map[string]string{
		"has_reasoning": "no",
		"has_examples":  "no",
		"depth":         "surface",
		"clarity":       "clear",
	}
	if countIndicators(lower, []string{"because", "therefore", "since"}) > 0 {
		b["has_reasoning"] = "yes"
	}
	if countIndicators(lower, []string{"example", "for instance"}) > 0 {
		b["has_examples"] = "yes"
	}
	if len(strings.Fields(response)) >= 30 {
		b["depth"] = "detailed"
	}
	if countIndicators(lower, []string{"thing", "stuff"}) > 0 {
		b["clarity"] = "vague"
	}
	return b
}
