package llm

import "context"

type contextKey string

const purposeKey contextKey = "llm_purpose"

// Purposes label requests in the event log and in `certprep llm stats`.
const (
	PurposeQuestionGen = "question-gen"
	PurposeUnknown     = "unknown"
)

// WithPurpose attaches a purpose label to the context for event logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context. Requests sent
// without one are logged as PurposeUnknown.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok && v != "" {
		return v
	}
	return PurposeUnknown
}
