package content_test

import (
	"testing"

	"github.com/XXpE3/goose/pkg/chats/content"
	"github.com/stretchr/testify/assert"
)

func TestPartKinds(t *testing.T) {
	parts := []content.Part{
		content.Text{Text: "hi"},
		content.Image{URL: "https://example.com/img.png", MediaType: "image/png"},
		content.ToolCall{ID: "1", Name: "search", Arguments: `{"q":"go"}`},
		content.ToolResult{ToolCallID: "1", Content: "result"},
	}

	expected := []string{"text", "image", "tool_call", "tool_result"}
	for i, p := range parts {
		assert.Equal(t, expected[i], p.PartKind())
	}
}
