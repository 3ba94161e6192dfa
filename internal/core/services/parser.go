package services

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/aikcal/internal/core/domain"
	"github.com/custodia-labs/aikcal/internal/core/ports/driven"
	"github.com/custodia-labs/aikcal/internal/core/units"
	"github.com/custodia-labs/aikcal/internal/logger"
)

// Defaults used when a photo cannot be analysed.
const (
	photoDefaultName     = "item from photo"
	photoDefaultQuantity = 100.0
	photoDefaultUnit     = "g"
)

// Defaults used when text carries no leading quantity.
const (
	textDefaultQuantity = 1.0
	textDefaultUnit     = "piece"
)

// quantityPattern splits "<number><unit> <rest>", e.g. "200g ryż" or "1,5 talerza zupy".
var quantityPattern = regexp.MustCompile(`^\s*(\d+[.,]?\d*)\s*([\p{L}.]+)\s*(.*)$`)

// photoAnswer is the oracle's reading of a meal photo.
type photoAnswer struct {
	Name     *string  `json:"name"`
	Quantity *float64 `json:"quantity"`
	Unit     *string  `json:"unit"`
}

// QueryParser turns raw text and photos into structured queries.
type QueryParser struct {
	oracle  driven.Oracle
	prompts driven.PromptStore
}

// NewQueryParser creates a parser. The oracle may be nil, in which case
// photos always resolve to the photo defaults.
func NewQueryParser(oracle driven.Oracle, prompts driven.PromptStore) *QueryParser {
	return &QueryParser{oracle: oracle, prompts: prompts}
}

// Parse extracts (name, quantity, unit) from a request.
// Returns false when the request carries neither text nor image.
func (p *QueryParser) Parse(ctx context.Context, req domain.AnalysisRequest) (domain.ParsedQuery, bool) {
	if req.IsEmpty() {
		return domain.ParsedQuery{}, false
	}
	text := strings.TrimSpace(req.Text)

	var q domain.ParsedQuery
	if req.Image != nil && len(req.Image.Data) > 0 {
		q = p.parsePhoto(ctx, req.Image)
		if text != "" {
			q.Name = text
		}
	} else {
		q = domain.ParsedQuery{Name: text, Quantity: textDefaultQuantity, Unit: textDefaultUnit}
	}

	if text != "" {
		if quantity, unit, rest, ok := splitQuantity(text); ok {
			q.Quantity, q.Unit, q.Name = quantity, unit, rest
		}
	}

	q.OriginalText = q.Name
	q.Name = units.NormalizeName(q.Name)
	if q.Name == "" {
		return domain.ParsedQuery{}, false
	}
	logger.Debug("Parsed query: name=%q quantity=%v unit=%q", q.Name, q.Quantity, q.Unit)
	return q, true
}

// parsePhoto asks the oracle to read a photo. Any failure yields the defaults.
func (p *QueryParser) parsePhoto(ctx context.Context, image *domain.Image) domain.ParsedQuery {
	fallback := domain.ParsedQuery{Name: photoDefaultName, Quantity: photoDefaultQuantity, Unit: photoDefaultUnit}

	prompt, err := renderPrompt(p.prompts, driven.PromptPhotoParse)
	if err != nil {
		logger.Warn("Photo analysis skipped: %v", err)
		return fallback
	}
	var answer photoAnswer
	if err := askJSON(ctx, p.oracle, prompt, image, &answer); err != nil {
		logger.Warn("Photo analysis failed, using defaults: %v", err)
		return fallback
	}
	if answer.Name == nil || strings.TrimSpace(*answer.Name) == "" ||
		answer.Quantity == nil || *answer.Quantity <= 0 ||
		answer.Unit == nil || strings.TrimSpace(*answer.Unit) == "" {
		logger.Warn("Photo analysis incomplete, using defaults")
		return fallback
	}
	return domain.ParsedQuery{
		Name:     strings.TrimSpace(*answer.Name),
		Quantity: *answer.Quantity,
		Unit:     strings.TrimSpace(*answer.Unit),
	}
}

// splitQuantity parses a leading quantity and unit. A bare "<number><unit>"
// uses the unit as the name, so "2 jabłka" asks for two apples.
func splitQuantity(text string) (float64, string, string, bool) {
	m := quantityPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, "", "", false
	}
	quantity, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
	if err != nil {
		return 0, "", "", false
	}
	unit, rest := m[2], strings.TrimSpace(m[3])
	if rest == "" {
		rest = unit
	}
	return quantity, unit, rest, true
}
