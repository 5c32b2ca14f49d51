package providers_test

import (
	"context"
	"testing"

	"github.com/XXpE3/goose/pkg/chats/message"
	"github.com/XXpE3/goose/pkg/modeladapter"
	"github.com/XXpE3/goose/pkg/modeladapter/usage"
	"github.com/XXpE3/goose/pkg/providers"
	"github.com/XXpE3/goose/pkg/providers/model"
	"github.com/XXpE3/goose/pkg/tools/toolbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_BuiltIns(t *testing.T) {
	for _, id := range []string{"omg", "openai", "grok", "anthropic"} {
		md, ok := providers.Lookup(id)
		require.True(t, ok, "expected %q to be registered", id)
		assert.Equal(t, id, md.ID)
		assert.NotEmpty(t, md.DefaultModel)
		assert.NotEmpty(t, md.DocURL)
	}

	_, ok := providers.Lookup("nope")
	assert.False(t, ok)
}

func TestNew_ResolvesSecretFromEnv(t *testing.T) {
	t.Setenv("OMG_API_KEY", "sk-test")

	p, err := providers.New("omg", model.New("gpt-4o"))
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", p.ModelConfig().Name)
}

func TestNew_DefaultsModelFromMetadata(t *testing.T) {
	t.Setenv("OMG_API_KEY", "sk-test")

	p, err := providers.New("omg", model.Model{})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", p.ModelConfig().Name)
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := providers.New("nope", model.Model{})
	assert.ErrorContains(t, err, "unknown provider")
}

func TestAll_SortedByID(t *testing.T) {
	all := providers.All()
	require.GreaterOrEqual(t, len(all), 4)

	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}
}

type stubProvider struct{ m model.Model }

func (s *stubProvider) Metadata() modeladapter.Metadata { return modeladapter.Metadata{ID: "stub"} }
func (s *stubProvider) ModelConfig() model.Model        { return s.m }
func (s *stubProvider) Complete(_ context.Context, _ string, _ []message.Message, _ []toolbox.Tool) (message.Message, usage.ProviderUsage, error) {
	return message.Message{}, usage.ProviderUsage{}, nil
}

func TestRegister_CustomProvider(t *testing.T) {
	providers.Register(modeladapter.Metadata{ID: "stub", DefaultModel: "stub-1"}, func(m model.Model) (modeladapter.Provider, error) {
		return &stubProvider{m: m}, nil
	})

	p, err := providers.New("stub", model.Model{})
	require.NoError(t, err)
	assert.Equal(t, "stub-1", p.ModelConfig().Name)
}
