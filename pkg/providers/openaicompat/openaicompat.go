// Package openaicompat implements the OpenAI-compatible chat completions
// wire format. Several backends speak this schema with different base URLs
// and credentials; their adapters share this one translation instead of
// hand-rolling the JSON shapes locally.
package openaicompat

import (
	"encoding/json"

	"github.com/XXpE3/goose/pkg/chats/content"
	"github.com/XXpE3/goose/pkg/chats/message"
	"github.com/XXpE3/goose/pkg/chats/role"
	"github.com/XXpE3/goose/pkg/modeladapter"
	"github.com/XXpE3/goose/pkg/modeladapter/usage"
	"github.com/XXpE3/goose/pkg/providers/model"
	"github.com/XXpE3/goose/pkg/tools/toolbox"
)

// CompletionsPath is the endpoint path relative to a provider's base URL.
const CompletionsPath = "/chat/completions"

// --- request types ---

// Request is the JSON body of a chat completions call.
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature *float64  `json:"temperature,omitempty"`
	Tools       []ToolDef `json:"tools,omitempty"`
}

// Message is one entry of the wire-format message list.
type Message struct {
	Role       string     `json:"role"`
	Content    *string    `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ToolCall is an assistant tool invocation in wire format.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function ToolFunction `json:"function"`
}

// ToolFunction carries the function name and raw JSON arguments of a tool call.
type ToolFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolDef declares an available tool in wire format.
type ToolDef struct {
	Type     string      `json:"type"`
	Function ToolDefFunc `json:"function"`
}

// ToolDefFunc is the function block of a tool declaration.
type ToolDefFunc struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters"`
}

// --- response types ---

// Response is the JSON body of a successful chat completions reply.
// Usage is a pointer because backends may omit it entirely.
type Response struct {
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   *Usage   `json:"usage"`
}

// Choice is one completion alternative; adapters only read the first.
type Choice struct {
	Message      RespMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// RespMessage is the assistant message inside a choice.
type RespMessage struct {
	Role      string     `json:"role"`
	Content   *string    `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// Usage mirrors the wire-format usage object. Pointer fields preserve
// absence: a counter the backend did not send stays nil.
type Usage struct {
	PromptTokens     *int `json:"prompt_tokens"`
	CompletionTokens *int `json:"completion_tokens"`
	TotalTokens      *int `json:"total_tokens"`
}

// --- translation ---

// NewRequest translates an agnostic conversation into the wire format.
// A non-empty system prompt becomes the leading system message. Each Text
// part is carried byte-for-byte; assistant ToolCall parts become tool_calls
// and ToolResult parts become role "tool" entries. Other part kinds
// (images) are silently dropped, not treated as an error.
func NewRequest(m model.Model, system string, msgs []message.Message, tools []toolbox.Tool) Request {
	req := Request{
		Model:     m.Name,
		MaxTokens: m.MaxTokens,
	}

	if m.Temperature != 0 {
		t := m.Temperature
		req.Temperature = &t
	}

	if system != "" {
		s := system
		req.Messages = append(req.Messages, Message{Role: "system", Content: &s})
	}

	for _, msg := range msgs {
		appendMessages(&req.Messages, msg)
	}

	if len(tools) > 0 {
		req.Tools = make([]ToolDef, len(tools))
		for i, t := range tools {
			schema := t.InputSchema
			if schema == nil {
				schema = json.RawMessage(`{"type":"object"}`)
			}
			req.Tools[i] = ToolDef{
				Type: "function",
				Function: ToolDefFunc{
					Name:        t.Name,
					Description: t.Description,
					Parameters:  schema,
				},
			}
		}
	}

	return req
}

func appendMessages(msgs *[]Message, m message.Message) {
	switch m.Role {
	case role.User, role.System:
		for _, p := range m.Parts {
			if t, ok := p.(content.Text); ok {
				text := t.Text
				*msgs = append(*msgs, Message{Role: m.Role.String(), Content: &text})
			}
		}

	case role.Assistant:
		var toolCalls []ToolCall

		for _, p := range m.Parts {
			switch v := p.(type) {
			case content.Text:
				text := v.Text
				*msgs = append(*msgs, Message{Role: "assistant", Content: &text})
			case content.ToolCall:
				toolCalls = append(toolCalls, ToolCall{
					ID:   v.ID,
					Type: "function",
					Function: ToolFunction{
						Name:      v.Name,
						Arguments: v.Arguments,
					},
				})
			}
		}

		if len(toolCalls) > 0 {
			*msgs = append(*msgs, Message{Role: "assistant", ToolCalls: toolCalls})
		}

	case role.Tool:
		for _, p := range m.Parts {
			if tr, ok := p.(content.ToolResult); ok {
				text := tr.Content
				*msgs = append(*msgs, Message{
					Role:       "tool",
					Content:    &text,
					ToolCallID: tr.ToolCallID,
				})
			}
		}
	}
}

// ResponseMessage reconstructs the assistant reply from a response. The
// message is stamped with the current time and always carries the
// Assistant role. A response without choices is an *ExecutionError.
func ResponseMessage(resp Response) (message.Message, error) {
	if len(resp.Choices) == 0 {
		return message.Message{}, &modeladapter.ExecutionError{Reason: "empty choices in response"}
	}

	respMsg := resp.Choices[0].Message

	var parts []content.Part
	if respMsg.Content != nil {
		parts = append(parts, content.Text{Text: *respMsg.Content})
	}

	for _, tc := range respMsg.ToolCalls {
		parts = append(parts, content.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}

	return message.New(role.Assistant, parts...), nil
}

// ResponseUsage extracts token counters from a response. A missing usage
// object is a *UsageError so callers can downgrade it; present counters
// are carried over as-is, preserving absent fields.
func ResponseUsage(resp Response) (usage.Usage, error) {
	if resp.Usage == nil {
		return usage.Usage{}, &modeladapter.UsageError{Reason: "response has no usage object"}
	}

	return usage.Usage{
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
		TotalTokens:  resp.Usage.TotalTokens,
	}, nil
}

// ResponseModel returns the model name the backend reported, falling back
// to the requested name so the resolved model is never empty.
func ResponseModel(resp Response, fallback string) string {
	if resp.Model != "" {
		return resp.Model
	}
	return fallback
}
