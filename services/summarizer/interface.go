package summarizer

import "context"

// Client turns a transcript into model-generated summary text.
// Constructors fail with a validation error when the backend
// credential is absent, before any network use.
type Client interface {
	Summarize(ctx context.Context, text string) (string, error)
}
