// Package anthropic provides a Provider implementation for the Anthropic
// Messages API. Anthropic does not speak the OpenAI-compatible schema, so
// this adapter carries its own wire shapes: the system prompt is a
// top-level field, auth uses the x-api-key header, and usage counters are
// named input_tokens/output_tokens.
package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/XXpE3/goose/pkg/chats/content"
	"github.com/XXpE3/goose/pkg/chats/message"
	"github.com/XXpE3/goose/pkg/chats/role"
	"github.com/XXpE3/goose/pkg/config"
	"github.com/XXpE3/goose/pkg/modeladapter"
	"github.com/XXpE3/goose/pkg/modeladapter/usage"
	"github.com/XXpE3/goose/pkg/providers/model"
	"github.com/XXpE3/goose/pkg/tools/toolbox"
)

const (
	// DefaultBaseURL is the Anthropic API base URL (no trailing slash).
	DefaultBaseURL = "https://api.anthropic.com"
	// DefaultModel is targeted when no model name is configured.
	DefaultModel = "claude-3-5-sonnet-latest"
	// APIKeyName is the configuration key holding the API token.
	APIKeyName = "ANTHROPIC_API_KEY"

	docURL       = "https://docs.anthropic.com/en/api/messages"
	messagesPath = "/v1/messages"

	// Anthropic requires max_tokens on every request.
	defaultMaxTokens = 4096
)

var knownModels = []string{
	"claude-3-5-sonnet-latest",
	"claude-3-5-haiku-latest",
	"claude-3-opus-latest",
}

var _ modeladapter.Provider = (*Adapter)(nil)

// Adapter implements modeladapter.Provider for the Anthropic Messages API.
type Adapter struct {
	modeladapter.ModelAdapter
}

// Metadata returns the static descriptor for this adapter.
func Metadata() modeladapter.Metadata {
	return modeladapter.Metadata{
		ID:           "anthropic",
		Name:         "Anthropic",
		Description:  "Claude models from Anthropic",
		DefaultModel: DefaultModel,
		KnownModels:  append([]string(nil), knownModels...),
		DocURL:       docURL,
		ConfigKeys: []modeladapter.ConfigKey{
			{Name: APIKeyName, Required: true, Secret: true},
		},
	}
}

// New creates an Adapter for the given base URL, API key, and model.
func New(baseURL, apiKey string, m model.Model) *Adapter {
	if m.Name == "" {
		m.Name = DefaultModel
	}
	if m.MaxTokens == 0 {
		m.MaxTokens = defaultMaxTokens
	}

	a := &Adapter{
		ModelAdapter: modeladapter.New(baseURL, modeladapter.Auth{
			Key:    apiKey,
			Header: "x-api-key",
		}, m, nil),
	}
	a.ModelAdapter.Headers = map[string]string{
		"anthropic-version": "2023-06-01",
	}

	return a
}

// FromEnv builds an Adapter with the API key resolved from the global
// configuration under APIKeyName.
func FromEnv(m model.Model) (*Adapter, error) {
	key, err := config.Global().GetSecret(APIKeyName)
	if err != nil {
		return nil, fmt.Errorf("anthropic: %w", err)
	}

	return New(DefaultBaseURL, key, m), nil
}

// MustDefault builds an Adapter bound to DefaultModel, panicking when the
// API key is not configured.
func MustDefault() *Adapter {
	a, err := FromEnv(model.New(DefaultModel))
	if err != nil {
		panic(err)
	}
	return a
}

// Metadata implements modeladapter.Provider.
func (a *Adapter) Metadata() modeladapter.Metadata { return Metadata() }

// Complete sends the conversation to the Anthropic Messages API and returns
// the assistant's reply plus a usage record.
func (a *Adapter) Complete(ctx context.Context, system string, msgs []message.Message, tools []toolbox.Tool) (message.Message, usage.ProviderUsage, error) {
	payload := a.buildRequest(system, msgs, tools)

	var resp apiResponse
	if err := a.PostJSON(ctx, messagesPath, payload, &resp); err != nil {
		return message.Message{}, usage.ProviderUsage{}, fmt.Errorf("anthropic: %w", err)
	}

	msg, err := parseResponse(resp)
	if err != nil {
		return message.Message{}, usage.ProviderUsage{}, fmt.Errorf("anthropic: %w", err)
	}

	u, err := responseUsage(resp)
	if err != nil {
		var usageErr *modeladapter.UsageError
		if !errors.As(err, &usageErr) {
			return message.Message{}, usage.ProviderUsage{}, fmt.Errorf("anthropic: %w", err)
		}

		slog.Warn("failed to get usage data", "provider", "anthropic", "reason", usageErr.Reason)
		u = usage.Usage{}
	}

	a.Usage.Add(u.TokenCount())

	respModel := resp.Model
	if respModel == "" {
		respModel = a.Name
	}

	return msg, usage.New(respModel, u), nil
}

// --- request types ---

type apiRequest struct {
	Model       string       `json:"model"`
	MaxTokens   int          `json:"max_tokens"`
	System      string       `json:"system,omitempty"`
	Messages    []apiMessage `json:"messages"`
	Temperature *float64     `json:"temperature,omitempty"`
	Tools       []apiToolDef `json:"tools,omitempty"`
}

type apiMessage struct {
	Role    string       `json:"role"`
	Content []apiContent `json:"content"`
}

type apiContent struct {
	Type      string          `json:"type"`
	Text      string          `json:"text,omitempty"`
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name,omitempty"`
	Input     json.RawMessage `json:"input,omitempty"`
	ToolUseID string          `json:"tool_use_id,omitempty"`
	Content   string          `json:"content,omitempty"`
}

type apiToolDef struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	InputSchema json.RawMessage `json:"input_schema"`
}

// --- response types ---

type apiResponse struct {
	Model      string       `json:"model"`
	Content    []apiContent `json:"content"`
	StopReason string       `json:"stop_reason"`
	Usage      *apiUsage    `json:"usage"`
}

type apiUsage struct {
	InputTokens  *int `json:"input_tokens"`
	OutputTokens *int `json:"output_tokens"`
}

// --- conversion helpers ---

func (a *Adapter) buildRequest(system string, msgs []message.Message, tools []toolbox.Tool) apiRequest {
	req := apiRequest{
		Model:     a.Name,
		MaxTokens: a.MaxTokens,
		System:    system,
	}

	if a.Temperature != 0 {
		t := a.Temperature
		req.Temperature = &t
	}

	for _, t := range tools {
		schema := t.InputSchema
		if schema == nil {
			schema = json.RawMessage(`{"type":"object"}`)
		}
		req.Tools = append(req.Tools, apiToolDef{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: schema,
		})
	}

	for _, m := range msgs {
		if am, ok := convertMessage(m); ok {
			req.Messages = append(req.Messages, am)
		}
	}

	return req
}

// convertMessage maps one agnostic message to the Messages API shape.
// Tool results ride as user messages per the Anthropic schema. Image parts
// are dropped, same policy as the OpenAI-compatible family.
func convertMessage(m message.Message) (apiMessage, bool) {
	var (
		wireRole string
		parts    []apiContent
	)

	switch m.Role {
	case role.User:
		wireRole = "user"
		for _, p := range m.Parts {
			if t, ok := p.(content.Text); ok {
				parts = append(parts, apiContent{Type: "text", Text: t.Text})
			}
		}

	case role.Assistant:
		wireRole = "assistant"
		for _, p := range m.Parts {
			switch v := p.(type) {
			case content.Text:
				parts = append(parts, apiContent{Type: "text", Text: v.Text})
			case content.ToolCall:
				args := json.RawMessage(v.Arguments)
				if len(args) == 0 {
					args = json.RawMessage(`{}`)
				}
				parts = append(parts, apiContent{
					Type:  "tool_use",
					ID:    v.ID,
					Name:  v.Name,
					Input: args,
				})
			}
		}

	case role.Tool:
		wireRole = "user"
		for _, p := range m.Parts {
			if tr, ok := p.(content.ToolResult); ok {
				parts = append(parts, apiContent{
					Type:      "tool_result",
					ToolUseID: tr.ToolCallID,
					Content:   tr.Content,
				})
			}
		}

	default:
		return apiMessage{}, false
	}

	if len(parts) == 0 {
		return apiMessage{}, false
	}

	return apiMessage{Role: wireRole, Content: parts}, true
}

func parseResponse(resp apiResponse) (message.Message, error) {
	if len(resp.Content) == 0 {
		return message.Message{}, &modeladapter.ExecutionError{Reason: "empty content in response"}
	}

	var parts []content.Part
	for _, c := range resp.Content {
		switch c.Type {
		case "text":
			parts = append(parts, content.Text{Text: c.Text})
		case "tool_use":
			parts = append(parts, content.ToolCall{
				ID:        c.ID,
				Name:      c.Name,
				Arguments: string(c.Input),
			})
		}
	}

	return message.New(role.Assistant, parts...), nil
}

func responseUsage(resp apiResponse) (usage.Usage, error) {
	if resp.Usage == nil {
		return usage.Usage{}, &modeladapter.UsageError{Reason: "response has no usage object"}
	}

	return usage.Usage{
		InputTokens:  resp.Usage.InputTokens,
		OutputTokens: resp.Usage.OutputTokens,
	}, nil
}
