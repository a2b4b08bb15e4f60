// Package memory implements the bounded sliding-window conversation memory.
// The backing log is append-only and never trimmed; only the window read for
// prompt assembly is bounded.
package memory

import "sync"

// Role labels who authored a conversation turn.
type Role string

const (
	RoleSystem Role = "system"
	RoleHuman  Role = "human"
	RoleAI     Role = "ai"
)

// Turn is a single message in a conversation. Turns are ordered and
// append-only within a session.
type Turn struct {
	Role    Role
	Content string
}

// Conversation is an ordered, append-only log of turns with a sliding read
// window of the most recent turns.
type Conversation struct {
	mu     sync.Mutex
	turns  []Turn
	window int
}

// NewConversation creates an empty Conversation whose Window returns at most
// window turns.
func NewConversation(window int) *Conversation {
	if window <= 0 {
		window = 1
	}
	return &Conversation{window: window}
}

// Append adds a turn to the end of the log. Existing turns are never
// reordered or dropped.
func (c *Conversation) Append(t Turn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns = append(c.turns, t)
}

// Window returns a copy of the most recent turns, in original order. When the
// log holds fewer turns than the window size, all of them are returned.
func (c *Conversation) Window() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := len(c.turns) - c.window
	if start < 0 {
		start = 0
	}
	out := make([]Turn, len(c.turns)-start)
	copy(out, c.turns[start:])
	return out
}

// Len returns the total number of stored turns, not just the window.
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.turns)
}
