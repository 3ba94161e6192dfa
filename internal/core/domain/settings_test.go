package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAIProvider_IsValid(t *testing.T) {
	for _, p := range AllOracleProviders() {
		assert.True(t, p.IsValid(), p)
		assert.NotEqual(t, unknownDescription, p.Description())
	}
	assert.False(t, AIProvider("").IsValid())
	assert.False(t, AIProvider("mistral").IsValid())
	assert.Equal(t, unknownDescription, AIProvider("mistral").Description())
}

func TestAIProvider_RequiresAPIKey(t *testing.T) {
	assert.False(t, AIProviderOllama.RequiresAPIKey())
	assert.True(t, AIProviderOllama.IsLocal())
	assert.True(t, AIProviderOpenAI.RequiresAPIKey())
	assert.True(t, AIProviderAnthropic.RequiresAPIKey())
	assert.True(t, AIProviderGemini.RequiresAPIKey())
}

func TestOracleSettings_IsConfigured(t *testing.T) {
	assert.False(t, OracleSettings{}.IsConfigured())
	assert.True(t, OracleSettings{Provider: AIProviderOllama}.IsConfigured())
	assert.False(t, OracleSettings{Provider: AIProviderGemini}.IsConfigured())
	assert.True(t, OracleSettings{Provider: AIProviderGemini, APIKey: "k"}.IsConfigured())
}

func TestOracleSettings_Timeout(t *testing.T) {
	assert.Equal(t, 30*time.Second, OracleSettings{}.Timeout())
	assert.Equal(t, 5*time.Second, OracleSettings{TimeoutSeconds: 5}.Timeout())
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.False(t, s.Oracle.IsConfigured())
	assert.Equal(t, DefaultMaxConcurrentLearning, s.Resolver.MaxConcurrentLearning)
	assert.Equal(t, DefaultServerAddress, s.Server.Address)
	assert.Equal(t, DefaultOpenFoodFactsBaseURL, s.OpenFoodFacts.BaseURL)
}

func TestDefaultOracleModels(t *testing.T) {
	models := DefaultOracleModels()
	for _, p := range AllOracleProviders() {
		assert.NotEmpty(t, models[p], p)
	}
}
