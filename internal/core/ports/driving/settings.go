package driving

import "github.com/custodia-labs/resumechat/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, defaults and environment applied.
	Get() (*domain.AppSettings, error)

	// Set stores a single configuration key after validating it.
	Set(key, value string) error

	// Keys returns every recognised configuration key.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Path returns where settings are persisted.
	Path() string
}
