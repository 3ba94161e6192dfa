package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/aikcal/internal/core/domain"
)

// NutritionService resolves meal descriptions into nutrient totals.
type NutritionService interface {
	// Resolve analyses a text and/or photo meal description.
	// Errors wrap domain.ErrInvalidInput, domain.ErrUnrecognizedUnit or
	// domain.ErrAnalysisFailed (plus domain.ErrOracleUnavailable when the
	// oracle could not be reached).
	Resolve(ctx context.Context, req domain.AnalysisRequest) (*domain.ResolvedMeal, error)
}

// CatalogService manages the food knowledge base directly.
type CatalogService interface {
	// Import loads a JSON seed file, skipping names that already exist.
	Import(ctx context.Context, r io.Reader) (*domain.ImportReport, error)

	// Lookup returns the dish or product stored under the normalized name.
	Lookup(ctx context.Context, name string) (*domain.FoodEntity, error)
}

// BarcodeService looks up packaged products.
type BarcodeService interface {
	// Lookup returns domain.ErrNotFound for unknown barcodes.
	Lookup(ctx context.Context, barcode string) (*domain.BarcodeProduct, error)
}

// WorkoutService estimates energy spent on physical activity.
type WorkoutService interface {
	// Estimate never fails on oracle problems; it reports them through the
	// estimate name with zero calories instead.
	Estimate(ctx context.Context, description string, weightKg float64) (*domain.WorkoutEstimate, error)
}

// GoalService suggests daily calorie and macro targets.
type GoalService interface {
	Suggest(req domain.GoalRequest) (*domain.GoalSuggestion, error)
}
