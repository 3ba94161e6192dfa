package driven

import (
	"context"

	"github.com/custodia-labs/aikcal/internal/core/domain"
)

// Oracle asks a generative model a question and returns its raw text answer.
// Answers are expected to carry JSON, possibly inside a ```json fence.
//
// Implementations may include:
//   - Gemini
//   - OpenAI
//   - Anthropic (Claude)
//   - Ollama (local models)
type Oracle interface {
	// Infer sends prompt, with an optional image, and returns the answer text.
	// Any transport, status or timeout failure wraps domain.ErrOracleUnavailable.
	Infer(ctx context.Context, prompt string, image *domain.Image) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// OracleValidator validates oracle configurations by testing connectivity.
type OracleValidator interface {
	// ValidateOracle pings the configured provider.
	// Returns nil if the configuration is valid or not configured.
	ValidateOracle(config *domain.OracleSettings) error
}
