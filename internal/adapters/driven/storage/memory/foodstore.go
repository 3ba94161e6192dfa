package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/aikcal/internal/core/domain"
	"github.com/custodia-labs/aikcal/internal/core/ports/driven"
)

// Ensure FoodStore implements the interfaces.
var (
	_ driven.FoodStore   = (*FoodStore)(nil)
	_ driven.FoodSession = (*foodSession)(nil)
)

var errSessionReleased = errors.New("food session released")

// storedIngredient references a product by ID so that later product
// updates are visible through the dish.
type storedIngredient struct {
	id        string
	productID string
	weightG   float64
}

type storedDish struct {
	dish        domain.Dish
	ingredients []storedIngredient
}

// FoodStore is an in-memory implementation of driven.FoodStore.
// Products and dishes keep insertion order so alias lookups are deterministic.
type FoodStore struct {
	mu       sync.RWMutex
	products []domain.Product
	dishes   []storedDish
}

// NewFoodStore creates a new in-memory food store.
func NewFoodStore() *FoodStore {
	return &FoodStore{}
}

// Acquire opens a session.
func (s *FoodStore) Acquire(ctx context.Context) (driven.FoodSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &foodSession{store: s}, nil
}

// Close is a no-op.
func (s *FoodStore) Close() error {
	return nil
}

// ProductCount returns the number of stored products.
func (s *FoodStore) ProductCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// DishCount returns the number of stored dishes.
func (s *FoodStore) DishCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.dishes)
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func matches(key, name string, aliases []string) bool {
	if nameKey(name) == key {
		return true
	}
	return slices.ContainsFunc(aliases, func(a string) bool { return nameKey(a) == key })
}

// findProduct returns the index of the product called key. Canonical names
// win over aliases. Callers must hold mu.
func (s *FoodStore) findProduct(key string) int {
	if i := slices.IndexFunc(s.products, func(p domain.Product) bool { return nameKey(p.Name) == key }); i >= 0 {
		return i
	}
	return slices.IndexFunc(s.products, func(p domain.Product) bool { return matches(key, p.Name, p.Aliases) })
}

// findDish mirrors findProduct for dishes. Callers must hold mu.
func (s *FoodStore) findDish(key string) int {
	if i := slices.IndexFunc(s.dishes, func(d storedDish) bool { return nameKey(d.dish.Name) == key }); i >= 0 {
		return i
	}
	return slices.IndexFunc(s.dishes, func(d storedDish) bool { return matches(key, d.dish.Name, d.dish.Aliases) })
}

// hasProductName reports whether a canonical product name is taken.
// Aliases do not reserve names. Callers must hold mu.
func (s *FoodStore) hasProductName(key string) bool {
	return slices.ContainsFunc(s.products, func(p domain.Product) bool { return nameKey(p.Name) == key })
}

func (s *FoodStore) productByID(id string) (domain.Product, bool) {
	i := slices.IndexFunc(s.products, func(p domain.Product) bool { return p.ID == id })
	if i < 0 {
		return domain.Product{}, false
	}
	return s.products[i], true
}

// insertProduct stores p under a fresh ID. Callers must hold mu for writing.
func (s *FoodStore) insertProduct(p domain.Product) domain.Product {
	p.ID = uuid.NewString()
	p.Aliases = slices.Clone(p.Aliases)
	s.products = append(s.products, p)
	return p
}

// foodSession is a view of the store. The memory store has no transactions,
// so a session only tracks whether it was released.
type foodSession struct {
	store    *FoodStore
	released bool
}

func (f *foodSession) check(ctx context.Context) error {
	if f.released {
		return errSessionReleased
	}
	return ctx.Err()
}

// FindProductByName retrieves a product by name or alias.
func (f *foodSession) FindProductByName(ctx context.Context, name string) (*domain.Product, error) {
	if err := f.check(ctx); err != nil {
		return nil, err
	}
	s := f.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.findProduct(nameKey(name))
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	p := s.products[i]
	p.Aliases = slices.Clone(p.Aliases)
	return &p, nil
}

// FindDishByName retrieves a dish with its resolved recipe.
func (f *foodSession) FindDishByName(ctx context.Context, name string) (*domain.Dish, error) {
	if err := f.check(ctx); err != nil {
		return nil, err
	}
	s := f.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.findDish(nameKey(name))
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	stored := s.dishes[i]
	dish := stored.dish
	dish.Aliases = slices.Clone(dish.Aliases)
	dish.Ingredients = make([]domain.Ingredient, 0, len(stored.ingredients))
	for _, ing := range stored.ingredients {
		product, ok := s.productByID(ing.productID)
		if !ok {
			return nil, fmt.Errorf("dish %q references missing product %s", dish.Name, ing.productID)
		}
		dish.Ingredients = append(dish.Ingredients, domain.Ingredient{
			ID:      ing.id,
			DishID:  dish.ID,
			Product: product,
			WeightG: ing.weightG,
		})
	}
	return &dish, nil
}

// CreateProduct stores a new product.
func (f *foodSession) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	if err := f.check(ctx); err != nil {
		return nil, err
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	s := f.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasProductName(nameKey(product.Name)) {
		return nil, fmt.Errorf("product %q: %w", product.Name, domain.ErrAlreadyExists)
	}
	created := s.insertProduct(product)
	return &created, nil
}

// CreateDishWithIngredients stores a dish and its recipe in one step.
func (f *foodSession) CreateDishWithIngredients(ctx context.Context, dish domain.Dish, specs []domain.IngredientSpec) (*domain.Dish, error) {
	if err := f.check(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(dish.Name) == "" {
		return nil, fmt.Errorf("%w: dish name is required", domain.ErrInvalidInput)
	}
	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, err
		}
	}

	s := f.store
	s.mu.Lock()
	if slices.ContainsFunc(s.dishes, func(d storedDish) bool { return nameKey(d.dish.Name) == nameKey(dish.Name) }) {
		s.mu.Unlock()
		return nil, fmt.Errorf("dish %q: %w", dish.Name, domain.ErrAlreadyExists)
	}

	stored := storedDish{dish: dish}
	stored.dish.ID = uuid.NewString()
	stored.dish.Aliases = slices.Clone(dish.Aliases)
	stored.dish.Ingredients = nil
	for _, spec := range specs {
		var productID string
		if i := s.findProduct(nameKey(spec.ProductName)); i >= 0 {
			productID = s.products[i].ID
		} else {
			productID = s.insertProduct(domain.PlaceholderProduct(strings.TrimSpace(spec.ProductName))).ID
		}
		stored.ingredients = append(stored.ingredients, storedIngredient{
			id:        uuid.NewString(),
			productID: productID,
			weightG:   spec.WeightG,
		})
	}
	s.dishes = append(s.dishes, stored)
	s.mu.Unlock()

	return f.FindDishByName(ctx, stored.dish.Name)
}

// Release ends the session.
func (f *foodSession) Release() {
	f.released = true
}
