// Package oracle builds AI oracle adapters from settings.
package oracle

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/aikcal/internal/adapters/driven/oracle/anthropic"
	"github.com/custodia-labs/aikcal/internal/adapters/driven/oracle/gemini"
	"github.com/custodia-labs/aikcal/internal/adapters/driven/oracle/ollama"
	"github.com/custodia-labs/aikcal/internal/adapters/driven/oracle/openai"
	"github.com/custodia-labs/aikcal/internal/core/domain"
	"github.com/custodia-labs/aikcal/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for connectivity validation.
const pingTimeout = 5 * time.Second

// CreateOracle creates the provider adapter named by settings, wrapped in a
// rate limiter. Returns nil if the oracle is not configured.
func CreateOracle(settings *domain.OracleSettings) (driven.Oracle, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	base, err := createProvider(settings)
	if err != nil {
		return nil, err
	}
	return NewLimited(base, LimitConfig{
		RequestsPerSecond: settings.RequestsPerSecond,
		Burst:             settings.Burst,
		CallTimeout:       settings.Timeout(),
	}), nil
}

// CreateAndValidateOracle creates an oracle and validates connectivity.
// Returns the oracle if successful, or an error with guidance.
func CreateAndValidateOracle(settings *domain.OracleSettings) (driven.Oracle, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	o, err := CreateOracle(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'aikcal settings oracle' to fix",
			domain.ErrOracleUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := o.Ping(ctx); err != nil {
		o.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'aikcal settings oracle' to fix",
			domain.ErrOracleUnavailable, err)
	}

	return o, nil
}

// ValidateOracleConfig creates an oracle for settings and pings it.
// This is intended for the settings command to check credentials on entry.
func ValidateOracleConfig(settings *domain.OracleSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return nil
	}

	o, err := createProvider(settings)
	if err != nil {
		return err
	}
	defer o.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return o.Ping(ctx)
}

func createProvider(settings *domain.OracleSettings) (driven.Oracle, error) {
	timeout := settings.Timeout()

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollama.NewOracle(ollama.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: timeout,
		}), nil

	case domain.AIProviderOpenAI:
		return openai.NewOracle(openai.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: timeout,
		})

	case domain.AIProviderAnthropic:
		return anthropic.NewOracle(anthropic.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: timeout,
		})

	case domain.AIProviderGemini:
		return gemini.NewOracle(gemini.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: timeout,
		})

	default:
		return nil, fmt.Errorf("%w: oracle provider %q", domain.ErrUnsupportedType, settings.Provider)
	}
}
