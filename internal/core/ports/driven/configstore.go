package driven

// ConfigStore persists flat configuration values addressed by dot keys
// ("index.name"). Values are stored as given; typed interpretation and
// defaults belong to the settings service.
type ConfigStore interface {
	// Get returns the raw value and whether the key is present.
	Get(key string) (any, bool)

	// Set stores a value. File-backed stores persist immediately.
	Set(key string, value any) error

	// Save persists the current values.
	Save() error

	// Load replaces the current values with the persisted ones.
	Load() error

	// Path returns where values are persisted, or "" when they are not.
	Path() string
}
