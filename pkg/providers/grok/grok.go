// Package grok provides a Provider implementation for xAI's Grok models,
// served over the OpenAI-compatible chat completions API.
package grok

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
	// DefaultBaseURL is the xAI API base URL (no trailing slash).
	DefaultBaseURL = "https://api.x.ai/v1"
	// DefaultModel is targeted when no model name is configured.
	DefaultModel = "grok-2-latest"
	// APIKeyName is the configuration key holding the API token.
	APIKeyName = "XAI_API_KEY"

	docURL = "https://docs.x.ai"
)

var knownModels = []string{"grok-2-latest", "grok-2", "grok-beta"}

var _ modeladapter.Provider = (*Adapter)(nil)

// Adapter implements modeladapter.Provider for the xAI API.
type Adapter struct {
	modeladapter.ModelAdapter
}

// Metadata returns the static descriptor for this adapter.
func Metadata() modeladapter.Metadata {
	return modeladapter.Metadata{
		ID:           "grok",
		Name:         "Grok",
		Description:  "Grok models from xAI",
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

	return &Adapter{
		ModelAdapter: modeladapter.New(baseURL, modeladapter.Auth{Key: apiKey}, m, nil),
	}
}

// FromEnv builds an Adapter with the API key resolved from the global
// configuration under APIKeyName.
func FromEnv(m model.Model) (*Adapter, error) {
	key, err := config.Global().GetSecret(APIKeyName)
	if err != nil {
		return nil, fmt.Errorf("grok: %w", err)
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

// Complete sends the conversation to the xAI chat completions endpoint and
// returns the assistant's reply plus a usage record.
func (a *Adapter) Complete(ctx context.Context, system string, msgs []message.Message, tools []toolbox.Tool) (message.Message, usage.ProviderUsage, error) {
	msg, pu, err := openaicompat.Complete(ctx, &a.ModelAdapter, "grok", system, msgs, tools)
	if err != nil {
		return message.Message{}, usage.ProviderUsage{}, fmt.Errorf("grok: %w", err)
	}

	return msg, pu, nil
}
