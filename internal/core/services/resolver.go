package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/aikcal/internal/core/domain"
	"github.com/custodia-labs/aikcal/internal/core/ports/driven"
	"github.com/custodia-labs/aikcal/internal/core/ports/driving"
	"github.com/custodia-labs/aikcal/internal/core/units"
	"github.com/custodia-labs/aikcal/internal/logger"
)

// Ensure NutritionService implements the interface.
var _ driving.NutritionService = (*NutritionService)(nil)

// NutritionService resolves meals cache-first: stored dishes, then stored
// products, then learning from the oracle.
type NutritionService struct {
	store   driven.FoodStore
	parser  *QueryParser
	learner *Learner
}

// NewNutritionService creates a new nutrition service.
// The oracle may be nil; requests that need it then fail with
// domain.ErrOracleUnavailable.
func NewNutritionService(
	store driven.FoodStore,
	oracle driven.Oracle,
	prompts driven.PromptStore,
	settings domain.ResolverSettings,
) *NutritionService {
	return &NutritionService{
		store:   store,
		parser:  NewQueryParser(oracle, prompts),
		learner: NewLearner(oracle, prompts, settings.MaxConcurrentLearning),
	}
}

// Resolve analyses a meal description.
func (s *NutritionService) Resolve(ctx context.Context, req domain.AnalysisRequest) (*domain.ResolvedMeal, error) {
	logger.Section("Meal Analysis")

	query, ok := s.parser.Parse(ctx, req)
	if !ok {
		return nil, fmt.Errorf("%w: nothing to analyze", domain.ErrAnalysisFailed)
	}

	session, err := s.store.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire food session: %w", err)
	}
	defer session.Release()

	dish, err := session.FindDishByName(ctx, query.Name)
	switch {
	case err == nil:
		logger.Info("Cache hit (dish): %q", dish.Name)
		return scaleDish(dish, query)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("find dish %q: %w", query.Name, err)
	}

	product, err := session.FindProductByName(ctx, query.Name)
	switch {
	case err == nil:
		logger.Info("Cache hit (product): %q", product.Name)
		meal, _, err := scaleProduct(product, query, product.Name, domain.MealSourceProduct)
		return meal, err
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("find product %q: %w", query.Name, err)
	}

	logger.Info("Cache miss: learning %q", query.Name)
	return s.learner.Learn(ctx, session, query)
}

// scaleDish scales a dish recipe to the requested portion. The portion is
// standardized against the dish's liquid-dominance state; a recipe with no
// weight scales to zero.
func scaleDish(dish *domain.Dish, query domain.ParsedQuery) (*domain.ResolvedMeal, error) {
	state := dish.State()
	grams, _, err := units.Standardize(query.Quantity, query.Unit, state, 0)
	if err != nil {
		return nil, err
	}

	var factor float64
	if base := dish.BaseWeightG(); base > 0 {
		factor = grams / base
	}
	logger.Debug("Dish %q: state=%s portion=%.1f factor=%.4f", dish.Name, state, grams, factor)

	meal := &domain.ResolvedMeal{
		Name:                dish.Name,
		QuantityGrams:       domain.RoundInt(grams),
		DisplayQuantityText: query.DisplayQuantity(),
		Breakdown:           breakdown(dish, factor),
		Source:              domain.MealSourceDish,
	}
	meal.SetNutrients(dish.RecipeNutrients().Scale(factor))
	return meal, nil
}

// scaleProduct scales per-100 nutrients to the requested portion and also
// returns the unrounded portion size.
func scaleProduct(product *domain.Product, query domain.ParsedQuery, displayName string, source domain.MealSource) (*domain.ResolvedMeal, float64, error) {
	grams, _, err := units.Standardize(query.Quantity, query.Unit, product.State, product.AverageWeightG)
	if err != nil {
		return nil, 0, err
	}

	meal := &domain.ResolvedMeal{
		Name:                fmt.Sprintf("%s (%s)", displayName, query.DisplayQuantity()),
		QuantityGrams:       domain.RoundInt(grams),
		DisplayQuantityText: query.DisplayQuantity(),
		Breakdown:           []domain.IngredientBreakdown{},
		Source:              source,
	}
	meal.SetNutrients(product.Nutrients.Scale(grams / 100.0))
	return meal, grams, nil
}

// breakdown lists each ingredient scaled by factor.
func breakdown(dish *domain.Dish, factor float64) []domain.IngredientBreakdown {
	items := make([]domain.IngredientBreakdown, 0, len(dish.Ingredients))
	for _, ing := range dish.Ingredients {
		grams := ing.WeightG * factor
		items = append(items, domain.IngredientBreakdown{
			Name:          ing.Product.Name,
			QuantityGrams: domain.RoundInt(grams),
			Calories:      domain.RoundInt(ing.Product.Nutrients.Calories * grams / 100.0),
		})
	}
	return items
}
