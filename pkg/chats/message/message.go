// Package message defines the Message type used in LLM conversations.
package message

import (
	"strings"
	"time"

	"github.com/XXpE3/goose/pkg/chats/content"
	"github.com/XXpE3/goose/pkg/chats/role"
)

// Message represents a single message in a conversation.
// It is a value type that copies cheaply; adapters never mutate
// caller-supplied messages.
type Message struct {
	Role    role.Role
	Created time.Time
	Parts   []content.Part
}

// New creates a message with the given role and content parts,
// stamped with the current UTC time at second precision.
func New(r role.Role, parts ...content.Part) Message {
	return Message{
		Role:    r,
		Created: Now(),
		Parts:   parts,
	}
}

// NewText creates a message with a single Text content part.
func NewText(r role.Role, text string) Message {
	return New(r, content.Text{Text: text})
}

// Now returns the current wall-clock time in UTC truncated to seconds,
// the precision messages are stamped with.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// TextContent concatenates the text of all Text parts in the message.
func (m Message) TextContent() string {
	var b strings.Builder
	for _, p := range m.Parts {
		if t, ok := p.(content.Text); ok {
			b.WriteString(t.Text)
		}
	}
	return b.String()
}

// ToolCalls returns all ToolCall parts in the message.
func (m Message) ToolCalls() []content.ToolCall {
	var calls []content.ToolCall
	for _, p := range m.Parts {
		if tc, ok := p.(content.ToolCall); ok {
			calls = append(calls, tc)
		}
	}
	return calls
}

// ToolResults returns all ToolResult parts in the message.
func (m Message) ToolResults() []content.ToolResult {
	var results []content.ToolResult
	for _, p := range m.Parts {
		if tr, ok := p.(content.ToolResult); ok {
			results = append(results, tr)
		}
	}
	return results
}
