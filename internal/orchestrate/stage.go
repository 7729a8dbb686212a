// Package orchestrate produces one unit of learning content per call and
// drives the per-concept stage machine: explain → example → recall question
// → transfer challenge → complete.
package orchestrate

import "github.com/tutorloop/tutorloop/internal/adapt"

// Stage is a concept visit's position in the teaching progression.
type Stage string

const (
	StageExplain  Stage = "explain"
	StageExample  Stage = "example"
	StageRecall   Stage = "recall_question"
	StageTransfer Stage = "transfer_challenge"
	StageComplete Stage = "complete" // signal to mark the concept mastered
)

// Modality is the presentation form of learning content.
type Modality string

const (
	ModalityText          Modality = "text"
	ModalityWorkedExample Modality = "worked_example"
)

// Evaluated reports whether advancing out of this stage requires a passed
// evaluation. Every submission is scored; explanation and example
// deliveries just advance regardless of the result.
func (s Stage) Evaluated() bool {
	return s == StageRecall || s == StageTransfer
}

// Advance returns the stage that follows a successful step. Delivery stages
// advance on acknowledgement; question stages advance only when the
// evaluation passed. A failed question stage re-enters itself unless the
// adaptation explicitly requests a reteach, which restarts at explain.
func Advance(current Stage, passed bool, action adapt.Action) Stage {
	if action == adapt.ActionReteach {
		return StageExplain
	}

	switch current {
	case StageExplain:
		return StageExample
	case StageExample:
		return StageRecall
	case StageRecall:
		if passed {
			return StageTransfer
		}
		return StageRecall
	case StageTransfer:
		if passed {
			return StageComplete
		}
		return StageTransfer
	default:
		return current
	}
}

// NextModality applies an adaptation to the current modality for the next
// delivery of the same stage.
func NextModality(current Modality, action adapt.Action) Modality {
	if current == "" {
		current = ModalityText
	}
	if action == adapt.ActionSwitchModality {
		if current == ModalityText {
			return ModalityWorkedExample
		}
		return ModalityText
	}
	return current
}
