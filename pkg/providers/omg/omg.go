// Package omg provides a Provider implementation for the OhMyGPT API,
// an OpenAI-compatible chat completions backend.
package omg

import (
	"context"
	"fmt"

	"github.com/XXpE3/goose/pkg/chats/message"
	"github.com/XXpE3/goose/pkg/config"
	"github.com/XXpE3/goose/pkg/modeladapter"
	"github.com/XXpE3/goose/pkg/modeladapter/usage"
	"github.com/XXpE3/goose/pkg/providers/model"
	"github.com/XXpE3/goose/pkg/providers/openaicompat"
	"github.com/XXpE3/goose/pkg/tools/toolbox"
)

const (
	// DefaultBaseURL is the OhMyGPT API base URL (no trailing slash).
	DefaultBaseURL = "https://api.ohmygpt.com/v1"
	// DefaultModel is targeted when no model name is configured.
	DefaultModel = "gpt-4o"
	// APIKeyName is the configuration key holding the API token.
	APIKeyName = "OMG_API_KEY"

	docURL = "https://docs.ohmygpt.com"
)

var knownModels = []string{"gpt-4o", "claude-3-5-sonnet"}

var _ modeladapter.Provider = (*Adapter)(nil)

// Adapter implements modeladapter.Provider for the OhMyGPT API.
type Adapter struct {
	modeladapter.ModelAdapter
}

// Metadata returns the static descriptor for this adapter. It is callable
// without an instance so configuration layers can discover the required
// secret before construction.
func Metadata() modeladapter.Metadata {
	return modeladapter.Metadata{
		ID:           "omg",
		Name:         "Omg",
		Description:  "Access GPT models through the OhMyGPT API",
		DefaultModel: DefaultModel,
		KnownModels:  append([]string(nil), knownModels...),
		DocURL:       docURL,
		ConfigKeys: []modeladapter.ConfigKey{
			{Name: APIKeyName, Required: true, Secret: true},
		},
	}
}

// New creates an Adapter for the given base URL, API key, and model.
// An empty model name falls back to DefaultModel.
func New(baseURL, apiKey string, m model.Model) *Adapter {
	if m.Name == "" {
		m.Name = DefaultModel
	}

	return &Adapter{
		ModelAdapter: modeladapter.New(baseURL, modeladapter.Auth{Key: apiKey}, m, nil),
	}
}

// FromEnv builds an Adapter with the API key resolved from the global
// configuration under APIKeyName. It fails when the key is absent.
func FromEnv(m model.Model) (*Adapter, error) {
	key, err := config.Global().GetSecret(APIKeyName)
	if err != nil {
		return nil, fmt.Errorf("omg: %w", err)
	}

	return New(DefaultBaseURL, key, m), nil
}

// MustDefault builds an Adapter bound to DefaultModel, panicking when the
// API key is not configured. It is meant for startup paths where the
// secret is already known to be present; untrusted paths should use
// FromEnv instead.
func MustDefault() *Adapter {
	a, err := FromEnv(model.New(DefaultModel))
	if err != nil {
		panic(err)
	}
	return a
}

// Metadata implements modeladapter.Provider.
func (a *Adapter) Metadata() modeladapter.Metadata { return Metadata() }

// Complete sends the conversation to the OhMyGPT chat completions endpoint
// and returns the assistant's reply plus a usage record.
func (a *Adapter) Complete(ctx context.Context, system string, msgs []message.Message, tools []toolbox.Tool) (message.Message, usage.ProviderUsage, error) {
	msg, pu, err := openaicompat.Complete(ctx, &a.ModelAdapter, "omg", system, msgs, tools)
	if err != nil {
		return message.Message{}, usage.ProviderUsage{}, fmt.Errorf("omg: %w", err)
	}

	return msg, pu, nil
}
