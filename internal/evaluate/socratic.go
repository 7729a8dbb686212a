package evaluate

import (
	"fmt"
	"slices"
)

// Socratic question types in the order they are introduced.
const (
	QuestionExplanation = "explanation"
	QuestionWhy         = "why"
	QuestionExample     = "example"
	QuestionWhatIf      = "what_if"
	QuestionTransfer    = "transfer"
)

// FollowUp picks the next Socratic question for a failed response. The
// progression moves from restating to challenging, skipping types already
// asked, with extra probes for very weak answers.
func FollowUp(concept string, score float64, history []string) string {
	asked := func(t string) bool { return slices.Contains(history, t) }

	if !asked(QuestionExplanation) {
		return fmt.Sprintf("Explain %s in your own words, as if teaching someone unfamiliar with it.", concept)
	}
	if score < 0.3 {
		return fmt.Sprintf("What is the single most important idea behind %s?", concept)
	}
	if !asked(QuestionWhy) {
		return fmt.Sprintf("Why is %s important? What problem does it solve?", concept)
	}
	if score < 0.5 {
		return fmt.Sprintf("Give a concrete example of %s in action.", concept)
	}
	if !asked(QuestionWhatIf) {
		return fmt.Sprintf("What if we removed a key component from %s? What would break?", concept)
	}
	if !asked(QuestionTransfer) {
		return fmt.Sprintf("How would you apply %s to a completely different domain?", concept)
	}
	return fmt.Sprintf("What's a common misconception about %s, and why is it wrong?", concept)
}

// FollowUpType classifies a follow-up the same way FollowUp chooses it, so
// the session can record which question types have been asked.
func FollowUpType(score float64, history []string) string {
	asked := func(t string) bool { return slices.Contains(history, t) }

	switch {
	case !asked(QuestionExplanation):
		return QuestionExplanation
	case score < 0.3:
		return QuestionExplanation
	case !asked(QuestionWhy):
		return QuestionWhy
	case score < 0.5:
		return QuestionExample
	case !asked(QuestionWhatIf):
		return QuestionWhatIf
	case !asked(QuestionTransfer):
		return QuestionTransfer
	default:
		return QuestionWhy
	}
}

// ChallengeQuestion renders a standalone probe of the requested type.
func ChallengeQuestion(concept, challengeType string) string {
	switch challengeType {
	case QuestionWhy:
		return fmt.Sprintf("Why does %s matter? What would be different without it?", concept)
	case QuestionWhatIf:
		return fmt.Sprintf("What happens if you modify a core assumption in %s?", concept)
	case QuestionTransfer:
		return fmt.Sprintf("Apply %s to design a system you've never built before.", concept)
	default:
		return fmt.Sprintf("Explain %s as if teaching a bright 12-year-old.", concept)
	}
}

func feedback(concept string, score float64, passed bool) string {
	switch {
	case passed:
		return fmt.Sprintf("Strong explanation of %s. You've demonstrated clear understanding of the core principles and their application.", concept)
	case score < 0.3:
		return fmt.Sprintf("Your response is too brief or vague. Try to explain the core mechanism of %s in more detail.", concept)
	case score < 0.5:
		return fmt.Sprintf("You're on the right track, but need more depth. Explain WHY %s works the way it does.", concept)
	case score < 0.7:
		return fmt.Sprintf("Good start. To strengthen your answer, provide a concrete example showing %s in action.", concept)
	default:
		return "Close! Clarify your reasoning one more time."
	}
}
