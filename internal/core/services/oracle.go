package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/aikcal/internal/core/domain"
	"github.com/custodia-labs/aikcal/internal/core/ports/driven"
)

var errOracleNotConfigured = fmt.Errorf("%w: no oracle configured", domain.ErrOracleUnavailable)

// fencePattern matches a fenced code block, with or without a language tag.
var fencePattern = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*(.*?)\\s*```")

// stripFence returns the contents of the first fenced block in text, or the
// trimmed text when there is no fence.
func stripFence(text string) string {
	if m := fencePattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(text)
}

// renderPrompt loads a template and fills in its placeholders.
func renderPrompt(prompts driven.PromptStore, name string, args ...any) (string, error) {
	if prompts == nil {
		return "", fmt.Errorf("prompt %s: no prompt store", name)
	}
	tmpl, err := prompts.Load(name)
	if err != nil {
		return "", fmt.Errorf("prompt %s: %w", name, err)
	}
	if len(args) == 0 {
		return tmpl, nil
	}
	return fmt.Sprintf(tmpl, args...), nil
}

// askJSON sends prompt to the oracle and decodes the JSON answer into v.
// Transport failures and empty answers wrap domain.ErrOracleUnavailable,
// undecodable answers wrap domain.ErrMalformedOracleResponse.
func askJSON(ctx context.Context, oracle driven.Oracle, prompt string, image *domain.Image, v any) error {
	if oracle == nil {
		return errOracleNotConfigured
	}
	answer, err := oracle.Infer(ctx, prompt, image)
	if err != nil {
		if errors.Is(err, domain.ErrOracleUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %w", domain.ErrOracleUnavailable, err)
	}
	payload := stripFence(answer)
	if payload == "" {
		return fmt.Errorf("%w: empty answer", domain.ErrOracleUnavailable)
	}
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrMalformedOracleResponse, err)
	}
	return nil
}
