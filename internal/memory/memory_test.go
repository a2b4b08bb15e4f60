package memory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowReturnsAllTurnsWhenUnderLimit(t *testing.T) {
	c := NewConversation(6)
	c.Append(Turn{Role: RoleSystem, Content: "intro"})
	c.Append(Turn{Role: RoleAI, Content: "greeting"})
	c.Append(Turn{Role: RoleHuman, Content: "hello"})

	window := c.Window()
	require.Len(t, window, 3)
	assert.Equal(t, "intro", window[0].Content)
	assert.Equal(t, "greeting", window[1].Content)
	assert.Equal(t, "hello", window[2].Content)
}

func TestWindowReturnsLastSixInOrder(t *testing.T) {
	c := NewConversation(6)
	for i := 0; i < 10; i++ {
		c.Append(Turn{Role: RoleHuman, Content: fmt.Sprintf("turn-%d", i)})
	}

	window := c.Window()
	require.Len(t, window, 6)
	for i, turn := range window {
		assert.Equal(t, fmt.Sprintf("turn-%d", i+4), turn.Content)
	}
}

func TestWindowIsViewNotTruncation(t *testing.T) {
	c := NewConversation(2)
	for i := 0; i < 5; i++ {
		c.Append(Turn{Role: RoleAI, Content: fmt.Sprintf("turn-%d", i)})
	}

	_ = c.Window()
	_ = c.Window()

	// Reading the window never drops turns from the backing log.
	assert.Equal(t, 5, c.Len())
	window := c.Window()
	require.Len(t, window, 2)
	assert.Equal(t, "turn-3", window[0].Content)
	assert.Equal(t, "turn-4", window[1].Content)
}

func TestWindowCopyDoesNotAliasLog(t *testing.T) {
	c := NewConversation(6)
	c.Append(Turn{Role: RoleHuman, Content: "original"})

	window := c.Window()
	window[0].Content = "mutated"

	assert.Equal(t, "original", c.Window()[0].Content)
}

func TestEmptyConversation(t *testing.T) {
	c := NewConversation(6)
	assert.Empty(t, c.Window())
	assert.Zero(t, c.Len())
}
