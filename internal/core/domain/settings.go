package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies a generative model provider used as the oracle.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderGemini is Google Gemini cloud API.
	AIProviderGemini AIProvider = "gemini"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic, AIProviderGemini:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic || p == AIProviderGemini
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderGemini:
		return "Gemini (cloud)"
	default:
		return unknownDescription
	}
}

// OracleSettings holds AI oracle configuration.
type OracleSettings struct {
	// Provider is the model provider.
	Provider AIProvider

	// Model is the model name.
	Model string

	// BaseURL is the API endpoint (empty means provider default).
	BaseURL string

	// APIKey is the API key for cloud providers.
	APIKey string

	// TimeoutSeconds bounds every single oracle call.
	TimeoutSeconds int

	// RequestsPerSecond is the sustained call rate.
	RequestsPerSecond float64

	// Burst is the maximum burst of calls.
	Burst int
}

// IsConfigured returns true if the oracle provider is set up.
func (o OracleSettings) IsConfigured() bool {
	if !o.Provider.IsValid() {
		return false
	}
	if o.Provider.RequiresAPIKey() && o.APIKey == "" {
		return false
	}
	return true
}

// Timeout returns the per-call timeout as a duration.
func (o OracleSettings) Timeout() time.Duration {
	if o.TimeoutSeconds <= 0 {
		return time.Duration(DefaultOracleTimeoutSeconds) * time.Second
	}
	return time.Duration(o.TimeoutSeconds) * time.Second
}

// ResolverSettings tunes the nutrition resolver.
type ResolverSettings struct {
	// MaxConcurrentLearning bounds parallel ingredient sub-learning calls.
	MaxConcurrentLearning int
}

// ServerSettings holds HTTP API configuration.
type ServerSettings struct {
	// Address is the listen address, e.g. ":8080".
	Address string

	// AllowedOrigins lists CORS origins.
	AllowedOrigins []string
}

// OpenFoodFactsSettings holds barcode lookup configuration.
type OpenFoodFactsSettings struct {
	// BaseURL is the Open Food Facts API root.
	BaseURL string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Oracle holds AI provider settings.
	Oracle OracleSettings

	// Resolver holds resolver tuning.
	Resolver ResolverSettings

	// Server holds HTTP API settings.
	Server ServerSettings

	// OpenFoodFacts holds barcode lookup settings.
	OpenFoodFacts OpenFoodFactsSettings
}

// Default setting values.
const (
	DefaultOracleTimeoutSeconds    = 30
	DefaultOracleRequestsPerSecond = 2.0
	DefaultOracleBurst             = 4
	DefaultMaxConcurrentLearning   = 4
	DefaultServerAddress           = ":8080"
	DefaultOpenFoodFactsBaseURL    = "https://world.openfoodfacts.org/api/v2"
)

// DefaultAppSettings returns settings with sensible defaults.
// The oracle is left unconfigured by default.
// Users must explicitly configure it via settings oracle.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Oracle: OracleSettings{
			TimeoutSeconds:    DefaultOracleTimeoutSeconds,
			RequestsPerSecond: DefaultOracleRequestsPerSecond,
			Burst:             DefaultOracleBurst,
		},
		Resolver: ResolverSettings{
			MaxConcurrentLearning: DefaultMaxConcurrentLearning,
		},
		Server: ServerSettings{
			Address:        DefaultServerAddress,
			AllowedOrigins: []string{"*"},
		},
		OpenFoodFacts: OpenFoodFactsSettings{
			BaseURL: DefaultOpenFoodFactsBaseURL,
		},
	}
}

// AllOracleProviders returns providers usable as the oracle.
func AllOracleProviders() []AIProvider {
	return []AIProvider{
		AIProviderGemini,
		AIProviderOpenAI,
		AIProviderAnthropic,
		AIProviderOllama,
	}
}

// DefaultOracleModels returns default models for each provider.
// All defaults accept image input.
func DefaultOracleModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llava",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
		AIProviderGemini:    "gemini-1.5-flash-latest",
	}
}
