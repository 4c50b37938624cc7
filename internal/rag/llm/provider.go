package llm

import "context"

// Provider is the opaque text generator. Generate answers a question grounded
// in retrieved context snippets; Summarize condenses one segment's text;
// Complete runs an already-framed prompt under the given system instruction,
// used for document-overview answers.
type Provider interface {
	Generate(ctx context.Context, query string, matches []string) (string, error)
	Summarize(ctx context.Context, text string) (string, error)
	Complete(ctx context.Context, instruction string, prompt string) (string, error)
}
