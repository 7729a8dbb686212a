package orchestrate

import (
	"strings"
	"testing"

	"github.com/tutorloop/tutorloop/internal/adapt"
	"github.com/tutorloop/tutorloop/internal/graph"
)

func testNode() graph.Node {
	return graph.Node{
		Concept:              "Q-Learning",
		Prerequisites:        []string{"Value Functions", "Bellman Equations"},
		DifficultyScore:      0.6,
		EstimatedTimeMinutes: 40,
		Misconceptions:       []string{"Q-learning needs a model of the environment", "The Q-table is the policy"},
		Examples:             []string{"Updating a Q-table for a gridworld agent", "Epsilon-greedy action selection"},
		TransferChallenges:   []string{"Adapt Q-learning to a continuous state space", "Explain why off-policy learning matters here"},
	}
}

func TestNextContent_Explain(t *testing.T) {
	c := NextContent(Request{Node: testNode(), Stage: StageExplain})
	if c.Concept != "Q-Learning" || c.Stage != StageExplain || c.Modality != ModalityText {
		t.Fatalf("header fields wrong: %+v", c)
	}
	if !strings.Contains(c.Body, "# Q-Learning") {
		t.Fatalf("body missing heading: %q", c.Body)
	}
	if !strings.Contains(c.Body, "Builds on: Value Functions, Bellman Equations") {
		t.Fatalf("body missing prerequisites: %q", c.Body)
	}
	if !strings.Contains(c.Body, "Updating a Q-table") {
		t.Fatalf("body missing first example: %q", c.Body)
	}
	if strings.Contains(c.Body, "misconception") {
		t.Fatalf("first visit should not surface a misconception: %q", c.Body)
	}
	if c.Question == "" {
		t.Fatal("explain content should carry a recall question")
	}
}

func TestNextContent_MisconceptionOnRetry(t *testing.T) {
	c := NextContent(Request{Node: testNode(), Stage: StageExplain, Attempts: 1})
	if !strings.Contains(c.Body, "needs a model of the environment") {
		t.Fatalf("retry should surface first misconception: %q", c.Body)
	}
	c = NextContent(Request{Node: testNode(), Stage: StageExplain, Attempts: 2})
	if !strings.Contains(c.Body, "Q-table is the policy") {
		t.Fatalf("second retry should cycle to next misconception: %q", c.Body)
	}
}

func TestNextContent_RecallQuestion(t *testing.T) {
	c := NextContent(Request{Node: testNode(), Stage: StageRecall})
	want := "Explain Q-Learning in your own words. Why does it matter?"
	if c.Question != want {
		t.Fatalf("question = %q, want %q", c.Question, want)
	}
}

func TestNextContent_RecallWorkedExampleModality(t *testing.T) {
	c := NextContent(Request{Node: testNode(), Stage: StageRecall, Modality: ModalityWorkedExample})
	if c.Modality != ModalityWorkedExample {
		t.Fatalf("modality not carried: %s", c.Modality)
	}
	if !strings.Contains(c.Body, "Updating a Q-table") {
		t.Fatalf("worked example modality should show an example: %q", c.Body)
	}
}

func TestNextContent_TransferRotation(t *testing.T) {
	n := testNode()
	first := NextContent(Request{Node: n, Stage: StageTransfer, Attempts: 0})
	second := NextContent(Request{Node: n, Stage: StageTransfer, Attempts: 1})
	third := NextContent(Request{Node: n, Stage: StageTransfer, Attempts: 2})
	if !strings.Contains(first.Body, "continuous state space") {
		t.Fatalf("attempt 0: %q", first.Body)
	}
	if !strings.Contains(second.Body, "off-policy") {
		t.Fatalf("attempt 1: %q", second.Body)
	}
	if third.Body != first.Body {
		t.Fatal("rotation should wrap around")
	}
}

func TestNextContent_TransferWithoutChallenges(t *testing.T) {
	n := testNode()
	n.TransferChallenges = nil
	c := NextContent(Request{Node: n, Stage: StageTransfer})
	if !strings.Contains(c.Body, "Challenge") {
		t.Fatalf("fallback transfer body: %q", c.Body)
	}
}

func TestNextContent_Deterministic(t *testing.T) {
	req := Request{Node: testNode(), Stage: StageExplain, Attempts: 1}
	if NextContent(req) != NextContent(req) {
		t.Fatal("identical input should render identical content")
	}
}

func TestNextContent_ShortenKeepsHeading(t *testing.T) {
	full := NextContent(Request{Node: testNode(), Stage: StageExplain})
	short := NextContent(Request{Node: testNode(), Stage: StageExplain, Action: adapt.ActionShortenContent})
	if len(short.Body) >= len(full.Body) {
		t.Fatalf("shortened body not shorter: %d vs %d", len(short.Body), len(full.Body))
	}
	if !strings.Contains(short.Body, "# Q-Learning") {
		t.Fatalf("shortened body lost heading: %q", short.Body)
	}
}

func TestNextContent_ForceRetrievalRecall(t *testing.T) {
	c := NextContent(Request{Node: testNode(), Stage: StageRecall, Action: adapt.ActionForceRetrieval})
	if !strings.Contains(c.Body, "No new material") {
		t.Fatalf("force retrieval body: %q", c.Body)
	}
}

func TestNextContent_ScaffoldingHint(t *testing.T) {
	c := NextContent(Request{Node: testNode(), Stage: StageExplain, Action: adapt.ActionAddScaffolding})
	if !strings.Contains(c.Body, "Hint") {
		t.Fatalf("scaffolding should add a hint: %q", c.Body)
	}
}
