package services

import (
	"fmt"
	"os"

	"github.com/custodia-labs/aikcal/internal/core/domain"
	"github.com/custodia-labs/aikcal/internal/core/ports/driven"
	"github.com/custodia-labs/aikcal/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyOracleProvider    = "oracle.provider"
	keyOracleModel       = "oracle.model"
	keyOracleBaseURL     = "oracle.base_url"
	keyOracleAPIKey      = "oracle.api_key"
	keyOracleTimeout     = "oracle.timeout_seconds"
	keyOracleRate        = "oracle.requests_per_second"
	keyOracleBurst       = "oracle.burst"
	keyMaxConcurrentLrn  = "resolver.max_concurrent_learning"
	keyServerAddress     = "server.address"
	keyServerOrigins     = "server.allowed_origins"
	keyOpenFoodFactsBase = "openfoodfacts.base_url"
)

// EnvOracleAPIKey overrides the configured oracle API key.
//
//nolint:gosec // G101: environment variable name, not a credential.
const EnvOracleAPIKey = "AIKCAL_ORACLE_API_KEY"

// providerKeyEnv lists the conventional per-provider key variables, consulted
// after EnvOracleAPIKey.
var providerKeyEnv = map[domain.AIProvider]string{
	domain.AIProviderGemini:    "GEMINI_API_KEY",
	domain.AIProviderOpenAI:    "OPENAI_API_KEY",
	domain.AIProviderAnthropic: "ANTHROPIC_API_KEY",
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore     driven.ConfigStore
	oracleValidator driven.OracleValidator
	getenv          func(string) string
}

// NewSettingsService creates a new settings service.
// The oracleValidator is optional (can be nil).
func NewSettingsService(configStore driven.ConfigStore, oracleValidator driven.OracleValidator) *SettingsService {
	return &SettingsService{
		configStore:     configStore,
		oracleValidator: oracleValidator,
		getenv:          os.Getenv,
	}
}

// Get retrieves current application settings. Environment variables take
// precedence over the stored API key.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	provider := s.getProvider(keyOracleProvider, defaults.Oracle.Provider)
	settings := &domain.AppSettings{
		Oracle: domain.OracleSettings{
			Provider:          provider,
			Model:             s.getString(keyOracleModel, domain.DefaultOracleModels()[provider]),
			BaseURL:           s.configStore.GetString(keyOracleBaseURL), // empty means provider default
			APIKey:            s.apiKey(provider),
			TimeoutSeconds:    s.getInt(keyOracleTimeout, defaults.Oracle.TimeoutSeconds),
			RequestsPerSecond: s.getFloat(keyOracleRate, defaults.Oracle.RequestsPerSecond),
			Burst:             s.getInt(keyOracleBurst, defaults.Oracle.Burst),
		},
		Resolver: domain.ResolverSettings{
			MaxConcurrentLearning: s.getInt(keyMaxConcurrentLrn, defaults.Resolver.MaxConcurrentLearning),
		},
		Server: domain.ServerSettings{
			Address:        s.getString(keyServerAddress, defaults.Server.Address),
			AllowedOrigins: s.getStringSlice(keyServerOrigins, defaults.Server.AllowedOrigins),
		},
		OpenFoodFacts: domain.OpenFoodFactsSettings{
			BaseURL: s.getString(keyOpenFoodFactsBase, defaults.OpenFoodFacts.BaseURL),
		},
	}

	return settings, nil
}

func (s *SettingsService) apiKey(provider domain.AIProvider) string {
	if key := s.getenv(EnvOracleAPIKey); key != "" {
		return key
	}
	if env, ok := providerKeyEnv[provider]; ok {
		if key := s.getenv(env); key != "" {
			return key
		}
	}
	return s.configStore.GetString(keyOracleAPIKey)
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyOracleProvider, settings.Oracle.Provider.String()},
		{keyOracleModel, settings.Oracle.Model},
		{keyOracleBaseURL, settings.Oracle.BaseURL},
		{keyOracleTimeout, settings.Oracle.TimeoutSeconds},
		{keyOracleRate, settings.Oracle.RequestsPerSecond},
		{keyOracleBurst, settings.Oracle.Burst},
		{keyMaxConcurrentLrn, settings.Resolver.MaxConcurrentLearning},
		{keyServerAddress, settings.Server.Address},
		{keyServerOrigins, settings.Server.AllowedOrigins},
		{keyOpenFoodFactsBase, settings.OpenFoodFacts.BaseURL},
	}
	if settings.Oracle.APIKey != "" {
		values = append(values, struct {
			key   string
			value any
		}{keyOracleAPIKey, settings.Oracle.APIKey})
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	if err := s.configStore.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// SetOracleProvider configures the oracle provider.
func (s *SettingsService) SetOracleProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid oracle provider: %s", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Oracle.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.Oracle.Model = model
	} else {
		settings.Oracle.Model = domain.DefaultOracleModels()[provider]
	}

	// Local providers need a base URL, cloud providers use their default
	if provider.IsLocal() {
		if settings.Oracle.BaseURL == "" {
			settings.Oracle.BaseURL = "http://localhost:11434"
		}
	} else {
		settings.Oracle.BaseURL = ""
	}

	settings.Oracle.APIKey = apiKey

	return s.Save(settings)
}

// Validate checks that current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Oracle.IsConfigured() {
		return fmt.Errorf("oracle provider is not configured (run: aikcal settings oracle)")
	}
	if settings.Oracle.RequestsPerSecond <= 0 || settings.Oracle.Burst <= 0 {
		return fmt.Errorf("oracle rate limit must be positive")
	}
	if settings.Resolver.MaxConcurrentLearning <= 0 {
		return fmt.Errorf("resolver.max_concurrent_learning must be positive")
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateOracleConfig validates the current oracle configuration by pinging the provider.
func (s *SettingsService) ValidateOracleConfig() error {
	if s.oracleValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.oracleValidator.ValidateOracle(&settings.Oracle)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	val := s.configStore.GetStringSlice(key)
	if len(val) == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
