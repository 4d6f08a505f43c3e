package llm

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string
	Content string
}

type CompletionRequest struct {
	System      string
	Messages    []Message
	Model       string
	Temperature float64
	MaxTokens   int
}

// Client produces a single completion for a prepared prompt.
type Client interface {
	Complete(ctx context.Context, req *CompletionRequest) (string, error)
}
