package model

import (
	"context"
	"errors"
)

// Message represents a single message in a completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrEmptyReply reports a completion that came back blank. Callers treat it
// like any other model invocation failure.
var ErrEmptyReply = errors.New("model returned an empty reply")

// Client is an abstract, model-agnostic interface for chat completions.
type Client interface {
	// Chat sends the conversation and returns the reply as plain text.
	Chat(ctx context.Context, messages []Message) (string, error)
}
