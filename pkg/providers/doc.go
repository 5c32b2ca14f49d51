// Package providers hosts the concrete completion adapters and a registry
// that maps stable provider ids to their metadata and constructors.
//
// Each vendor lives in its own sub-package implementing
// [github.com/XXpE3/goose/pkg/modeladapter.Provider], so one backend's
// wire-format quirks never leak into another. Hosts select an adapter by
// configuration (a provider id) rather than branching on a vendor enum.
package providers
