package ai

import "context"

// Request is one call to a hosted model. When JSONOutput is set the model
// is instructed to return a single JSON object; callers decode and validate
// the result themselves.
type Request struct {
	Model       string
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
	JSONOutput  bool
}

type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}
