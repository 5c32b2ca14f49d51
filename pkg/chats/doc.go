// Package chats provides a provider-agnostic data model for LLM chat interactions.
//
// It is organized into sub-packages:
//   - [github.com/XXpE3/goose/pkg/chats/role]: conversation roles (system, user, assistant, tool)
//   - [github.com/XXpE3/goose/pkg/chats/content]: content parts (text, image, tool call/result)
//   - [github.com/XXpE3/goose/pkg/chats/message]: messages composed of a role, creation time, and content parts
//
// No provider or API code is included. chats is a foundation layer
// that wire adapters build on.
package chats
