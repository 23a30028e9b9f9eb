package llm

import "context"

// ContextMessage is one turn of the history handed to the generator.
type ContextMessage struct {
	Role     string
	Content  string
	ImageURL *string
}

// Generator is the surface the chat logic needs from the LLM provider; it is
// easy to mock in tests.
type Generator interface {
	// GenerateReply produces the assistant's reply for the given history.
	GenerateReply(ctx context.Context, history []ContextMessage) (string, error)
	// GenerateTitle produces a short conversation title from the seed text.
	// Best-effort: any failure yields the fixed fallback, never an error.
	GenerateTitle(ctx context.Context, seed string) string
	// ClassifyIntent maps the text onto the closed intent set; failures and
	// unrecognized outputs map to "other".
	ClassifyIntent(ctx context.Context, text string) string
}
