package driven

import "context"

// LLMService turns an assembled prompt into an answer.
type LLMService interface {
	// Complete returns the model's reply to messages, unmodified.
	Complete(ctx context.Context, messages []ChatMessage, opts CompletionOptions) (string, error)

	ModelName() string

	// Ping checks credentials and reachability without generating text.
	Ping(ctx context.Context) error

	Close() error
}

// Message roles understood by chat completion APIs.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// ChatMessage is one turn of the conversation sent to the model.
type ChatMessage struct {
	Role    string
	Content string
}

// CompletionOptions tune a single completion. Zero values leave the
// provider's defaults in place.
type CompletionOptions struct {
	MaxTokens   int
	Temperature float64
}
