package driving

import "github.com/custodia-labs/aikcal/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetOracleProvider configures the oracle provider.
	SetOracleProvider(provider domain.AIProvider, model, apiKey string) error

	// Validate checks that current settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ValidateOracleConfig validates the current oracle configuration by pinging the provider.
	ValidateOracleConfig() error
}
