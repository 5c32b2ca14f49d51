package message_test

import (
	"testing"
	"time"

	"github.com/XXpE3/goose/pkg/chats/content"
	"github.com/XXpE3/goose/pkg/chats/message"
	"github.com/XXpE3/goose/pkg/chats/role"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_StampsCreated(t *testing.T) {
	before := time.Now().UTC().Truncate(time.Second)
	m := message.NewText(role.User, "hi")
	after := time.Now().UTC()

	assert.Equal(t, role.User, m.Role)
	assert.False(t, m.Created.Before(before))
	assert.False(t, m.Created.After(after))
	assert.Zero(t, m.Created.Nanosecond())
	assert.Equal(t, time.UTC, m.Created.Location())
}

func TestTextContent_ConcatenatesTextParts(t *testing.T) {
	m := message.New(role.Assistant,
		content.Text{Text: "Hello, "},
		content.Image{URL: "https://example.com/a.png"},
		content.Text{Text: "world"},
	)

	assert.Equal(t, "Hello, world", m.TextContent())
}

func TestTextContent_Empty(t *testing.T) {
	m := message.New(role.Assistant)
	assert.Empty(t, m.TextContent())
}

func TestToolCallsAndResults(t *testing.T) {
	m := message.New(role.Assistant,
		content.Text{Text: "calling"},
		content.ToolCall{ID: "1", Name: "search", Arguments: `{"q":"go"}`},
		content.ToolCall{ID: "2", Name: "read"},
	)

	calls := m.ToolCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, "search", calls[0].Name)

	res := message.New(role.Tool, content.ToolResult{ToolCallID: "1", Content: "ok"})
	results := res.ToolResults()
	require.Len(t, results, 1)
	assert.Equal(t, "1", results[0].ToolCallID)
}
