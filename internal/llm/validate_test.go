package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func evaluationSchema() *Schema {
	return &Schema{
		Name:        "socratic-evaluation",
		Description: "Scored evaluation of a learner response",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"feedback": map[string]any{"type": "string"},
				"score":    map[string]any{"type": "number", "minimum": 0, "maximum": 1},
				"verdict":  map[string]any{"type": "string", "enum": []any{"pass", "near_miss", "fail"}},
			},
			"required": []any{"feedback", "score"},
		},
	}
}

func TestValidateResponse_ValidEvaluation(t *testing.T) {
	raw := json.RawMessage(`{"feedback":"Good use of the Bellman equation.","score":0.81,"verdict":"pass"}`)
	if err := validateResponse(evaluationSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_OptionalFieldOmitted(t *testing.T) {
	raw := json.RawMessage(`{"feedback":"Mentioned states but not transitions.","score":0.55}`)
	if err := validateResponse(evaluationSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_MissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"feedback":"Too short to judge."}`)
	err := validateResponse(evaluationSchema(), raw)
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("got %T (%v), want ErrInvalidResponse", err, err)
	}
}

func TestValidateResponse_WrongType(t *testing.T) {
	raw := json.RawMessage(`{"feedback":"Good.","score":"high"}`)
	err := validateResponse(evaluationSchema(), raw)
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("got %T (%v), want ErrInvalidResponse", err, err)
	}
}

func TestValidateResponse_InvalidEnum(t *testing.T) {
	raw := json.RawMessage(`{"feedback":"Close.","score":0.6,"verdict":"maybe"}`)
	err := validateResponse(evaluationSchema(), raw)
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("got %T (%v), want ErrInvalidResponse", err, err)
	}
}

func TestValidateResponse_MalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{not json}`)
	err := validateResponse(evaluationSchema(), raw)
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("got %T (%v), want ErrInvalidResponse", err, err)
	}
}

func TestValidateResponse_EmptyResponse(t *testing.T) {
	if err := validateResponse(evaluationSchema(), json.RawMessage(``)); err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestValidateResponse_NilSchemaSkipsValidation(t *testing.T) {
	raw := json.RawMessage(`{"anything":"goes"}`)
	if err := validateResponse(nil, raw); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_NestedConceptGraph(t *testing.T) {
	schema := &Schema{
		Name:        "concept-graph",
		Description: "Decomposed learning goal",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"root": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{"type": "string"},
					},
					"required": []any{"name"},
				},
				"depths": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "integer"},
				},
			},
			"required": []any{"root", "depths"},
		},
	}

	valid := json.RawMessage(`{"root":{"name":"Markov Decision Processes"},"depths":[0,1,1,2]}`)
	if err := validateResponse(schema, valid); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	invalid := json.RawMessage(`{"root":{"name":"Markov Decision Processes"},"depths":["zero"]}`)
	if err := validateResponse(schema, invalid); err == nil {
		t.Fatal("expected error for wrong array item type")
	}
}
