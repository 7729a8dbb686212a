package orchestrate

import (
	"fmt"
	"strings"

	"github.com/tutorloop/tutorloop/internal/adapt"
	"github.com/tutorloop/tutorloop/internal/graph"
)

// Content is one unit of learning material. It is ephemeral: recomputed per
// orchestration call, never persisted.
type Content struct {
	Concept  string   `json:"concept"`
	Stage    Stage    `json:"stage"`
	Modality Modality `json:"modality"`
	Body     string   `json:"body"`
	Question string   `json:"question,omitempty"`
}

// Request carries everything content generation depends on.
type Request struct {
	Node     graph.Node
	Stage    Stage
	Modality Modality
	Attempts int          // evaluation attempts on this concept so far
	Action   adapt.Action // advisory adaptation for this delivery, may be empty
}

// NextContent renders the material for the requested stage. Generation is
// deterministic for identical input.
func NextContent(req Request) Content {
	modality := req.Modality
	if modality == "" {
		modality = ModalityText
	}

	c := Content{
		Concept:  req.Node.Concept,
		Stage:    req.Stage,
		Modality: modality,
	}

	switch req.Stage {
	case StageExample:
		c.Body = exampleBody(req.Node)
		c.Question = "Walk through this example. What is happening at each step?"
	case StageRecall:
		c.Body = recallBody(req.Node, req)
		c.Question = recallQuestion(req.Node)
	case StageTransfer:
		c.Body = transferBody(req.Node, req.Attempts)
		c.Question = "Solve this step by step. Explain your reasoning."
	default:
		c.Body = explainBody(req.Node, req)
		c.Question = recallQuestion(req.Node)
	}

	if req.Action == adapt.ActionShortenContent {
		c.Body = shorten(c.Body)
	}
	return c
}

func explainBody(n graph.Node, req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", n.Concept)

	if len(n.Prerequisites) > 0 {
		fmt.Fprintf(&b, "Builds on: %s.\n\n", strings.Join(n.Prerequisites, ", "))
	}

	fmt.Fprintf(&b, "Work through the core idea of %s before answering. ", n.Concept)
	fmt.Fprintf(&b, "Plan for roughly %d minutes.\n", n.EstimatedTimeMinutes)

	// Surface a misconception on retries, cycling through the list.
	if req.Attempts > 0 && len(n.Misconceptions) > 0 {
		m := n.Misconceptions[(req.Attempts-1)%len(n.Misconceptions)]
		fmt.Fprintf(&b, "\n**Common misconception:** %s\n", m)
	}

	if len(n.Examples) > 0 {
		fmt.Fprintf(&b, "\n**Example:** %s\n", n.Examples[0])
	}

	if req.Action == adapt.ActionAddScaffolding || req.Action == adapt.ActionIntroduceAnalogy {
		fmt.Fprintf(&b, "\n**Hint:** Relate %s to something you already know well, then map each part across.\n", n.Concept)
	}
	return b.String()
}

func exampleBody(n graph.Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Worked example: %s\n\n", n.Concept)
	if len(n.Examples) > 0 {
		for _, ex := range n.Examples {
			fmt.Fprintf(&b, "- %s\n", ex)
		}
	} else {
		fmt.Fprintf(&b, "Consider a concrete case of %s and trace it end to end.\n", n.Concept)
	}
	return b.String()
}

func recallBody(n graph.Node, req Request) string {
	if req.Modality == ModalityWorkedExample && len(n.Examples) > 0 {
		return fmt.Sprintf("Look again at this example of %s: %s\n\nNow answer in your own words.", n.Concept, n.Examples[0])
	}
	if req.Action == adapt.ActionForceRetrieval {
		return fmt.Sprintf("No new material this time. Answer from what you remember about %s.", n.Concept)
	}
	return fmt.Sprintf("Time to check your understanding of %s.", n.Concept)
}

func recallQuestion(n graph.Node) string {
	return fmt.Sprintf("Explain %s in your own words. Why does it matter?", n.Concept)
}

func transferBody(n graph.Node, attempts int) string {
	if len(n.TransferChallenges) == 0 {
		return fmt.Sprintf("**Challenge:** Apply %s to solve a novel problem.", n.Concept)
	}
	// Deterministic rotation through challenges across attempts.
	ch := n.TransferChallenges[attempts%len(n.TransferChallenges)]
	return fmt.Sprintf("**Challenge:** %s", ch)
}

// shorten keeps the heading and the first substantive paragraph.
func shorten(body string) string {
	parts := strings.Split(body, "\n\n")
	if len(parts) <= 2 {
		return body
	}
	return strings.Join(parts[:2], "\n\n")
}
