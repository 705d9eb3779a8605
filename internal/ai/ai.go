package ai

import "context"

// Role values used in chat histories. They match the wire format of every
// OpenAI-compatible backend we talk to.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single entry in a chat history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer sends a chat history to a backend and returns the completion text.
type Completer interface {
	Name() string
	Complete(ctx context.Context, history []Message) (string, error)
}

// LastContent returns the content of the last message in history, or fallback
// when the history is empty.
func LastContent(history []Message, fallback string) string {
	if len(history) == 0 {
		return fallback
	}
	return history[len(history)-1].Content
}
