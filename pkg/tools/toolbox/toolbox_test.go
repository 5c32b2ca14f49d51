package toolbox_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/XXpE3/goose/pkg/chats/content"
	"github.com/XXpE3/goose/pkg/tools/toolbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoTool() toolbox.Tool {
	return toolbox.Tool{
		Name:        "echo",
		Description: "echoes its input",
		InputSchema: json.RawMessage(`{"type":"object"}`),
		Handler: func(_ context.Context, input json.RawMessage) (string, error) {
			return string(input), nil
		},
	}
}

func TestRegisterAndGet(t *testing.T) {
	tb := toolbox.New()
	tb.Register(echoTool())

	got, ok := tb.Get("echo")
	require.True(t, ok)
	assert.Equal(t, "echo", got.Name)

	_, ok = tb.Get("missing")
	assert.False(t, ok)

	assert.Len(t, tb.Tools(), 1)
}

func TestCall(t *testing.T) {
	tb := toolbox.New()
	tb.Register(echoTool())

	res := tb.Call(context.Background(), content.ToolCall{
		ID:        "1",
		Name:      "echo",
		Arguments: `{"msg":"hi"}`,
	})

	assert.False(t, res.IsError)
	assert.Equal(t, "1", res.ToolCallID)
	assert.Equal(t, `{"msg":"hi"}`, res.Content)
}

func TestCall_NotFound(t *testing.T) {
	tb := toolbox.New()

	res := tb.Call(context.Background(), content.ToolCall{ID: "1", Name: "nope"})

	assert.True(t, res.IsError)
	assert.Contains(t, res.Content, "tool not found")
}

func TestCall_HandlerError(t *testing.T) {
	tb := toolbox.New()
	tb.Register(toolbox.Tool{
		Name: "boom",
		Handler: func(_ context.Context, _ json.RawMessage) (string, error) {
			return "", errors.New("kaput")
		},
	})

	res := tb.Call(context.Background(), content.ToolCall{ID: "2", Name: "boom"})

	assert.True(t, res.IsError)
	assert.Equal(t, "kaput", res.Content)
}
