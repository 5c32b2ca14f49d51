// Package modeladapter defines the contract and shared machinery for LLM
// completion adapters.
//
// It contains:
//   - [Provider]: the capability interface every backend adapter implements
//   - [ModelAdapter]: embeddable base struct with HTTP helpers, auth, and custom headers
//   - [Metadata] and [ConfigKey]: static adapter descriptors
//   - the typed error taxonomy ([ExecutionError], [RequestFailedError], [UsageError])
//   - [github.com/XXpE3/goose/pkg/modeladapter/usage]: per-call usage records and a thread-safe tracker
//
// This package contains no provider-specific code. Concrete adapters live
// in separate packages under pkg/providers that import modeladapter.
package modeladapter
