package llm

import "context"

type purposeCtxKey struct{}

// WithPurpose tags the context with what the request is for, e.g.
// "decompose" or "evaluate". The logging decorator records the tag so
// the event log can be filtered per concern.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeCtxKey{}, purpose)
}

// PurposeFrom reads the purpose tag, defaulting to "unknown".
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeCtxKey{}).(string); ok {
		return p
	}
	return "unknown"
}
