package openaicompat

import (
	"context"
	"errors"
	"log/slog"

	"github.com/XXpE3/goose/pkg/chats/message"
	"github.com/XXpE3/goose/pkg/modeladapter"
	"github.com/XXpE3/goose/pkg/modeladapter/usage"
	"github.com/XXpE3/goose/pkg/tools/toolbox"
)

// Complete runs one chat completions round trip through the given adapter:
// serialize the conversation, POST it, and reconstruct the reply and usage
// record. Adapters for OpenAI-compatible backends delegate here so the
// translation exists once.
//
// A *UsageError is deliberately downgraded: it is logged at warning level
// under the provider id and replaced with an empty usage record, so a
// missing or malformed usage object never discards the completion itself.
// The resolved model in the returned ProviderUsage falls back to the
// requested model name when the response omits one.
func Complete(ctx context.Context, a *modeladapter.ModelAdapter, provider, system string, msgs []message.Message, tools []toolbox.Tool) (message.Message, usage.ProviderUsage, error) {
	payload := NewRequest(a.Model, system, msgs, tools)

	var resp Response
	if err := a.PostJSON(ctx, CompletionsPath, payload, &resp); err != nil {
		return message.Message{}, usage.ProviderUsage{}, err
	}

	msg, err := ResponseMessage(resp)
	if err != nil {
		return message.Message{}, usage.ProviderUsage{}, err
	}

	u, err := ResponseUsage(resp)
	if err != nil {
		var usageErr *modeladapter.UsageError
		if !errors.As(err, &usageErr) {
			return message.Message{}, usage.ProviderUsage{}, err
		}

		slog.Warn("failed to get usage data", "provider", provider, "reason", usageErr.Reason)
		u = usage.Usage{}
	}

	a.Usage.Add(u.TokenCount())

	return msg, usage.New(ResponseModel(resp, a.Name), u), nil
}
