package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/aikcal/internal/core/domain"
	"github.com/custodia-labs/aikcal/internal/core/ports/driven"
	"github.com/custodia-labs/aikcal/internal/core/units"
	"github.com/custodia-labs/aikcal/internal/logger"
)

// aggregateAnswer is the oracle's estimate for a whole food. Pointer fields
// are mandatory.
type aggregateAnswer struct {
	IsComplex *bool    `json:"is_complex"`
	Name      *string  `json:"name"`
	Quantity  float64  `json:"quantity"`
	Unit      string   `json:"unit"`
	Calories  *float64 `json:"calories"`
	Protein   float64  `json:"protein"`
	Fat       float64  `json:"fat"`
	Carbs     float64  `json:"carbs"`
	State     string   `json:"state,omitempty"`
}

// productAnswer is the oracle's profile of a single ingredient.
type productAnswer struct {
	State          string            `json:"state"`
	AverageWeightG float64           `json:"average_weight_g"`
	Nutrients      *domain.Nutrients `json:"nutrients"`
}

// Learner teaches the food store about foods it has never seen.
type Learner struct {
	oracle        driven.Oracle
	prompts       driven.PromptStore
	maxConcurrent int
}

// NewLearner creates a learner. maxConcurrent bounds parallel ingredient
// lookups; values below 1 use the default.
func NewLearner(oracle driven.Oracle, prompts driven.PromptStore, maxConcurrent int) *Learner {
	if maxConcurrent < 1 {
		maxConcurrent = domain.DefaultMaxConcurrentLearning
	}
	return &Learner{oracle: oracle, prompts: prompts, maxConcurrent: maxConcurrent}
}

// Learn asks the oracle about query, persists what it learns and returns the
// requested portion. Only a failed aggregate estimate is fatal.
func (l *Learner) Learn(ctx context.Context, session driven.FoodSession, query domain.ParsedQuery) (*domain.ResolvedMeal, error) {
	logger.Section("Learning")

	agg, err := l.learnAggregate(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: learn %q: %w", domain.ErrAnalysisFailed, query.Name, err)
	}
	isComplex := *agg.IsComplex
	logger.Info("Learned %q as %q (complex=%t)", query.Name, *agg.Name, isComplex)

	var recipe []domain.IngredientSpec
	if isComplex {
		recipe, err = l.decompose(ctx, agg)
		if err != nil {
			logger.Warn("Decomposition of %q failed, continuing without recipe: %v", *agg.Name, err)
			recipe = nil
		}
		l.learnIngredients(ctx, session, recipe)
	}

	product, err := createOrFindProduct(ctx, session, agg.toProduct(query.Name))
	if err != nil {
		return nil, fmt.Errorf("persist learned product %q: %w", query.Name, err)
	}

	var dish *domain.Dish
	if len(recipe) > 0 {
		dish, err = createOrFindDish(ctx, session, domain.Dish{Name: query.Name, Aliases: product.Aliases}, recipe)
		if err != nil {
			return nil, fmt.Errorf("persist learned dish %q: %w", query.Name, err)
		}
	}

	meal, grams, err := scaleProduct(product, query, *agg.Name, domain.MealSourceLearned)
	if err != nil {
		return nil, err
	}
	if dish != nil {
		var factor float64
		if base := dish.BaseWeightG(); base > 0 {
			factor = grams / base
		}
		meal.Breakdown = breakdown(dish, factor)
	}
	return meal, nil
}

// learnAggregate runs the primary estimate and checks the mandatory fields.
func (l *Learner) learnAggregate(ctx context.Context, query domain.ParsedQuery) (*aggregateAnswer, error) {
	prompt, err := renderPrompt(l.prompts, driven.PromptLearnAggregate, query.Name, query.DisplayQuantity())
	if err != nil {
		return nil, err
	}
	var agg aggregateAnswer
	if err := askJSON(ctx, l.oracle, prompt, nil, &agg); err != nil {
		return nil, err
	}

	var missing []string
	if agg.Name == nil || strings.TrimSpace(*agg.Name) == "" {
		missing = append(missing, "name")
	}
	if agg.Calories == nil {
		missing = append(missing, "calories")
	}
	if agg.IsComplex == nil {
		missing = append(missing, "is_complex")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", domain.ErrMalformedOracleResponse, strings.Join(missing, ", "))
	}
	name := strings.TrimSpace(*agg.Name)
	agg.Name = &name

	n := domain.Nutrients{Calories: *agg.Calories, Protein: agg.Protein, Fat: agg.Fat, Carbs: agg.Carbs}
	if err := n.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedOracleResponse, err)
	}
	if agg.Quantity < 0 {
		agg.Quantity = 0
	}
	return &agg, nil
}

// toProduct converts the estimate into a per-100 product stored under key.
// The estimate describes a serving of Quantity grams; without a serving size
// the values are taken as per-100.
func (a *aggregateAnswer) toProduct(key string) domain.Product {
	n := domain.Nutrients{Calories: *a.Calories, Protein: a.Protein, Fat: a.Fat, Carbs: a.Carbs}
	if a.Quantity > 0 {
		n = n.Scale(100.0 / a.Quantity)
	}

	state := domain.ParseProductState(a.State)
	if a.State == "" && looksLiquid(*a.Name) {
		state = domain.StateLiquid
	}

	p := domain.Product{
		Name:      key,
		Nutrients: n,
		State:     state,
	}
	if !*a.IsComplex {
		p.AverageWeightG = a.Quantity
	}
	if alias := units.NormalizeName(*a.Name); alias != key {
		p.Aliases = []string{alias}
	}
	return p
}

// looksLiquid guesses the state of foods the oracle did not classify.
func looksLiquid(name string) bool {
	name = strings.ToLower(name)
	for _, marker := range []string{"zupa", "soup", "krem z", "barszcz", "rosół", "żurek"} {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}

// decompose asks for the base recipe. Entries without a name or a positive
// weight are dropped.
func (l *Learner) decompose(ctx context.Context, agg *aggregateAnswer) ([]domain.IngredientSpec, error) {
	serving := domain.FormatQuantity(agg.Quantity, "g")
	prompt, err := renderPrompt(l.prompts, driven.PromptLearnDecomposition, *agg.Name, serving)
	if err != nil {
		return nil, err
	}
	var raw []domain.IngredientSpec
	if err := askJSON(ctx, l.oracle, prompt, nil, &raw); err != nil {
		return nil, err
	}

	recipe := make([]domain.IngredientSpec, 0, len(raw))
	for _, spec := range raw {
		spec.ProductName = units.NormalizeName(spec.ProductName)
		if err := spec.Validate(); err != nil {
			logger.Debug("Dropping recipe entry: %v", err)
			continue
		}
		recipe = append(recipe, spec)
	}
	if len(recipe) == 0 {
		return nil, fmt.Errorf("%w: empty recipe", domain.ErrMalformedOracleResponse)
	}
	logger.Debug("Recipe for %q: %d ingredients", *agg.Name, len(recipe))
	return recipe, nil
}

// learnIngredients learns every recipe ingredient missing from the store.
// Oracle calls run concurrently and each failure only affects its own
// ingredient, which then becomes a placeholder.
func (l *Learner) learnIngredients(ctx context.Context, session driven.FoodSession, recipe []domain.IngredientSpec) {
	var unknown []string
	seen := make(map[string]bool, len(recipe))
	for _, spec := range recipe {
		if seen[spec.ProductName] {
			continue
		}
		seen[spec.ProductName] = true
		_, err := session.FindProductByName(ctx, spec.ProductName)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			unknown = append(unknown, spec.ProductName)
		case err != nil:
			logger.Warn("Lookup of ingredient %q failed: %v", spec.ProductName, err)
		}
	}
	if len(unknown) == 0 {
		return
	}
	logger.Debug("Learning %d unknown ingredients (max %d in flight)", len(unknown), l.maxConcurrent)

	learned := make([]*domain.Product, len(unknown))
	sem := make(chan struct{}, l.maxConcurrent)
	var wg sync.WaitGroup
	for i, name := range unknown {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					logger.Warn("Learning ingredient %q panicked: %v", name, r)
				}
			}()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			product, err := l.learnProduct(ctx, name)
			if err != nil {
				logger.Warn("Learning ingredient %q failed: %v", name, err)
				return
			}
			learned[i] = product
		}()
	}
	wg.Wait()

	for _, product := range learned {
		if product == nil {
			continue
		}
		if _, err := createOrFindProduct(ctx, session, *product); err != nil {
			logger.Warn("Saving ingredient %q failed: %v", product.Name, err)
		}
	}
}

// learnProduct asks for the per-100 profile of one ingredient.
func (l *Learner) learnProduct(ctx context.Context, name string) (*domain.Product, error) {
	prompt, err := renderPrompt(l.prompts, driven.PromptLearnProduct, name)
	if err != nil {
		return nil, err
	}
	var answer productAnswer
	if err := askJSON(ctx, l.oracle, prompt, nil, &answer); err != nil {
		return nil, err
	}
	if answer.Nutrients == nil {
		return nil, fmt.Errorf("%w: missing nutrients", domain.ErrMalformedOracleResponse)
	}
	product := &domain.Product{
		Name:           name,
		Nutrients:      *answer.Nutrients,
		State:          domain.ParseProductState(answer.State),
		AverageWeightG: max(answer.AverageWeightG, 0),
	}
	if err := product.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedOracleResponse, err)
	}
	logger.Debug("Learned ingredient %q", name)
	return product, nil
}

// createOrFindProduct persists p, falling back to the stored product when a
// concurrent request saved the same name first.
func createOrFindProduct(ctx context.Context, session driven.FoodSession, p domain.Product) (*domain.Product, error) {
	created, err := session.CreateProduct(ctx, p)
	if err == nil {
		logger.Info("Cache write (product): %q", created.Name)
		return created, nil
	}
	if !errors.Is(err, domain.ErrAlreadyExists) {
		return nil, err
	}
	logger.Debug("Product %q already stored, reading it back", p.Name)
	return session.FindProductByName(ctx, p.Name)
}

// createOrFindDish mirrors createOrFindProduct for dishes.
func createOrFindDish(ctx context.Context, session driven.FoodSession, d domain.Dish, recipe []domain.IngredientSpec) (*domain.Dish, error) {
	created, err := session.CreateDishWithIngredients(ctx, d, recipe)
	if err == nil {
		logger.Info("Cache write (dish): %q with %d ingredients", created.Name, len(created.Ingredients))
		return created, nil
	}
	if !errors.Is(err, domain.ErrAlreadyExists) {
		return nil, err
	}
	logger.Debug("Dish %q already stored, reading it back", d.Name)
	return session.FindDishByName(ctx, d.Name)
}
