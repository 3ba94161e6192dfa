package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/aikcal/internal/core/domain"
	"github.com/custodia-labs/aikcal/internal/core/ports/driven"
	"github.com/custodia-labs/aikcal/internal/core/ports/driving"
	"github.com/custodia-labs/aikcal/internal/core/units"
	"github.com/custodia-labs/aikcal/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService imports and inspects the food knowledge base.
type CatalogService struct {
	store driven.FoodStore
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store driven.FoodStore) *CatalogService {
	return &CatalogService{store: store}
}

// Import loads a JSON array of seed items. Products are written before dishes
// so recipes link to real products instead of placeholders. Existing names
// are skipped.
func (s *CatalogService) Import(ctx context.Context, r io.Reader) (*domain.ImportReport, error) {
	logger.Section("Seed Import")

	var items []domain.SeedItem
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: seed file: %w", domain.ErrInvalidInput, err)
	}

	report := &domain.ImportReport{}
	var products, dishes []domain.FoodEntity
	for _, item := range items {
		entity, err := seedEntity(item)
		if err != nil {
			logger.Warn("Skipping seed item %q: %v", item.Name, err)
			report.Failed = append(report.Failed, item.Name)
			continue
		}
		if entity.Kind == domain.FoodKindDish {
			dishes = append(dishes, entity)
		} else {
			products = append(products, entity)
		}
	}
	logger.Info("Seed file: %d products, %d dishes", len(products), len(dishes))

	session, err := s.store.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire food session: %w", err)
	}
	defer session.Release()

	for _, e := range products {
		_, err := session.CreateProduct(ctx, *e.Product)
		if err := tally(report, e, err); err != nil {
			return report, err
		}
	}
	for _, e := range dishes {
		_, err := session.CreateDishWithIngredients(ctx, *e.Dish, recipeOf(e.Dish))
		if err := tally(report, e, err); err != nil {
			return report, err
		}
	}

	logger.Info("Imported %d products and %d dishes (%d skipped, %d failed)",
		report.ProductsCreated, report.DishesCreated, report.Skipped, len(report.Failed))
	return report, nil
}

// tally records the outcome of one write. Only store failures are returned.
func tally(report *domain.ImportReport, e domain.FoodEntity, err error) error {
	switch {
	case err == nil:
		if e.Kind == domain.FoodKindDish {
			report.DishesCreated++
		} else {
			report.ProductsCreated++
		}
	case errors.Is(err, domain.ErrAlreadyExists):
		report.Skipped++
	case errors.Is(err, domain.ErrInvalidInput):
		logger.Warn("Rejected seed item %q: %v", e.Name(), err)
		report.Failed = append(report.Failed, e.Name())
	default:
		return fmt.Errorf("import %q: %w", e.Name(), err)
	}
	return nil
}

// seedEntity decides once whether a seed item is a dish or a product.
func seedEntity(item domain.SeedItem) (domain.FoodEntity, error) {
	name := units.NormalizeName(item.Name)
	if name == "" {
		return domain.FoodEntity{}, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	aliases := normalizeAliases(name, item.Aliases)

	if item.IsDish() {
		dish := &domain.Dish{Name: name, Category: item.Category, Aliases: aliases}
		for _, spec := range item.Deconstruction {
			spec.ProductName = units.NormalizeName(spec.ProductName)
			if err := spec.Validate(); err != nil {
				return domain.FoodEntity{}, err
			}
			dish.Ingredients = append(dish.Ingredients, domain.Ingredient{
				Product: domain.Product{Name: spec.ProductName},
				WeightG: spec.WeightG,
			})
		}
		return domain.DishEntity(dish), nil
	}

	nutrients := item.Nutrients()
	if nutrients == nil {
		return domain.FoodEntity{}, fmt.Errorf("%w: no nutrients_per_100g or nutrients_per_100ml", domain.ErrInvalidInput)
	}
	state := domain.ParseProductState(item.State)
	if item.State == "" && item.NutrientsPer100g == nil {
		state = domain.StateLiquid
	}
	product := &domain.Product{
		Name:           name,
		Aliases:        aliases,
		Nutrients:      *nutrients,
		State:          state,
		AverageWeightG: item.AverageWeightG,
	}
	if err := product.Validate(); err != nil {
		return domain.FoodEntity{}, err
	}
	return domain.ProductEntity(product), nil
}

func normalizeAliases(name string, raw []string) []string {
	var aliases []string
	seen := map[string]bool{name: true}
	for _, a := range raw {
		a = units.NormalizeName(a)
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		aliases = append(aliases, a)
	}
	return aliases
}

func recipeOf(d *domain.Dish) []domain.IngredientSpec {
	recipe := make([]domain.IngredientSpec, 0, len(d.Ingredients))
	for _, ing := range d.Ingredients {
		recipe = append(recipe, domain.IngredientSpec{ProductName: ing.Product.Name, WeightG: ing.WeightG})
	}
	return recipe
}

// Lookup returns what a resolution for name would hit first.
func (s *CatalogService) Lookup(ctx context.Context, name string) (*domain.FoodEntity, error) {
	key := units.NormalizeName(name)
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	session, err := s.store.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire food session: %w", err)
	}
	defer session.Release()

	dish, err := session.FindDishByName(ctx, key)
	if err == nil {
		entity := domain.DishEntity(dish)
		return &entity, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	product, err := session.FindProductByName(ctx, key)
	if err != nil {
		return nil, err
	}
	entity := domain.ProductEntity(product)
	return &entity, nil
}
