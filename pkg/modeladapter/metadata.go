package modeladapter

// ConfigKey describes one configuration value an adapter reads, so
// configuration and UI layers can prompt for it without constructing an
// adapter.
type ConfigKey struct {
	Name     string // Lookup key, e.g. "OMG_API_KEY".
	Required bool   // Construction fails when a required key is absent.
	Secret   bool   // Secret values are never logged or echoed.
	Default  string // Default value for optional keys.
}

// Metadata is a static, side-effect-free descriptor of an adapter.
// KnownModels feeds UI autocomplete and validation; it is not enforced as
// an allow-list.
type Metadata struct {
	ID           string
	Name         string
	Description  string
	DefaultModel string
	KnownModels  []string
	DocURL       string
	ConfigKeys   []ConfigKey
}
