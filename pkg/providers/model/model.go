// Package model holds provider-agnostic model configuration.
package model

// Model identifies which backend model a provider targets, plus optional
// sampling settings. Zero fields mean "use provider default". A Model is
// bound to an adapter at construction and read-only for its lifetime.
type Model struct {
	Name         string
	ContextLimit int
	Temperature  float64
	MaxTokens    int
}

// New returns a Model targeting the given model name.
func New(name string) Model {
	return Model{Name: name}
}
