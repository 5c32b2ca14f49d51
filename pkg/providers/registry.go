package providers

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/XXpE3/goose/pkg/modeladapter"
	"github.com/XXpE3/goose/pkg/providers/anthropic"
	"github.com/XXpE3/goose/pkg/providers/grok"
	"github.com/XXpE3/goose/pkg/providers/model"
	"github.com/XXpE3/goose/pkg/providers/omg"
	"github.com/XXpE3/goose/pkg/providers/openai"
)

// Factory creates a Provider bound to the given model, resolving
// credentials from the global configuration.
type Factory func(m model.Model) (modeladapter.Provider, error)

type entry struct {
	metadata modeladapter.Metadata
	factory  Factory
}

var (
	registryMu  sync.RWMutex
	registry    = map[string]entry{}
	defaultsReg sync.Once
)

func ensureDefaults() {
	defaultsReg.Do(func() {
		registry["omg"] = entry{omg.Metadata(), func(m model.Model) (modeladapter.Provider, error) { return omg.FromEnv(m) }}
		registry["openai"] = entry{openai.Metadata(), func(m model.Model) (modeladapter.Provider, error) { return openai.FromEnv(m) }}
		registry["grok"] = entry{grok.Metadata(), func(m model.Model) (modeladapter.Provider, error) { return grok.FromEnv(m) }}
		registry["anthropic"] = entry{anthropic.Metadata(), func(m model.Model) (modeladapter.Provider, error) { return anthropic.FromEnv(m) }}
	})
}

// Register adds a custom provider under its metadata ID. It can be called
// before New to extend the registry with additional backends.
func Register(md modeladapter.Metadata, f Factory) {
	ensureDefaults()

	registryMu.Lock()
	defer registryMu.Unlock()

	registry[md.ID] = entry{md, f}
}

// New builds the provider registered under id, bound to m. An empty model
// name falls back to the provider's default model.
func New(id string, m model.Model) (modeladapter.Provider, error) {
	ensureDefaults()

	registryMu.RLock()
	e, ok := registry[id]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("providers: unknown provider %q", id)
	}

	if m.Name == "" {
		m.Name = e.metadata.DefaultModel
	}

	return e.factory(m)
}

// Lookup returns the metadata registered under id without constructing an
// adapter or touching any configuration.
func Lookup(id string) (modeladapter.Metadata, bool) {
	ensureDefaults()

	registryMu.RLock()
	defer registryMu.RUnlock()

	e, ok := registry[id]
	return e.metadata, ok
}

// All returns the metadata of every registered provider, sorted by ID.
func All() []modeladapter.Metadata {
	ensureDefaults()

	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]modeladapter.Metadata, 0, len(registry))
	for _, e := range registry {
		out = append(out, e.metadata)
	}

	slices.SortFunc(out, func(a, b modeladapter.Metadata) int {
		return strings.Compare(a.ID, b.ID)
	})

	return out
}
