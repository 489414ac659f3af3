//go:generate go run go.uber.org/mock/mockgen -source=completion.go -destination=../mocks/mock_completer.go -package=mocks
package ai

import (
	"context"
	"fmt"
)

type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest carries everything sent to the completion service for one prompt.
type CompletionRequest struct {
	Model            string
	Messages         []Message
	MaxTokens        int
	Temperature      float64
	PresencePenalty  float64
	FrequencyPenalty float64
}

// SystemMessage returns the content of the first system message, if any.
func (r CompletionRequest) SystemMessage() string {
	for _, m := range r.Messages {
		if m.Role == RoleSystem {
			return m.Content
		}
	}
	return ""
}

type Completion struct {
	Content     string
	TotalTokens *int
}

// Completer is a hosted text-completion service.
// Implementations must honour ctx cancellation and must not retry.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (Completion, error)
}

// StatusError is returned when the service answers with a non-2xx status.
// Body is kept for server logs and must never reach a client.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("completion service returned status %d", e.StatusCode)
}
