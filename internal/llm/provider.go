// Package llm abstracts the model-inference backends that goal
// decomposition and Socratic evaluation can delegate to. Both callers
// are optional consumers: the service runs entirely on heuristics when
// no provider is configured.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is a single model-inference backend. Implementations wrap a
// vendor SDK and normalize structured output, usage, and errors.
type Provider interface {
	// Generate runs one completion. When the request carries a Schema
	// the provider uses its native structured-output mechanism and the
	// returned Content is JSON validated against that schema; without
	// a Schema, Content is the raw text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID reports the configured model identifier.
	ModelID() string
}

// Request is one completion request. Decomposition and evaluation both
// issue single-turn requests: a system prompt plus one user message.
type Request struct {
	// System sets the tutor role and constraints for the model.
	System string

	// Messages is the conversation. In this service it is almost
	// always a single user message carrying the goal or the learner's
	// explanation.
	Messages []Message

	// Schema, when set, constrains the output to a JSON shape, e.g.
	// the concept-list or evaluation schemas.
	Schema *Schema

	// MaxTokens caps the completion length.
	MaxTokens int

	// Temperature in [0,1]. Zero (the default) keeps scoring and
	// decomposition as repeatable as the backend allows.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies the message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON shape the model must produce. The Name doubles as
// the vendor-side identifier (tool name for Anthropic, schema name for
// OpenAI), e.g. "concept-graph" or "socratic-evaluation".
type Schema struct {
	Name        string
	Description string

	// Definition is the JSON Schema document as a map.
	Definition map[string]any
}

// Response is a normalized completion.
type Response struct {
	// Content is schema-validated JSON when the request carried a
	// Schema, raw text otherwise.
	Content json.RawMessage

	// Usage is the token accounting for this request.
	Usage Usage

	// Model is the model that actually served the request, which may
	// differ from the configured one behind aggregators.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage is the token accounting for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
