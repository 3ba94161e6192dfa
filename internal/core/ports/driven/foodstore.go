package driven

import (
	"context"

	"github.com/custodia-labs/aikcal/internal/core/domain"
)

// FoodStore is the food knowledge base. Work happens inside explicit sessions
// so that every resolution holds exactly one unit of work.
type FoodStore interface {
	// Acquire opens a session. Callers must Release it on every path.
	Acquire(ctx context.Context) (FoodSession, error)

	// Close releases the underlying resources.
	Close() error
}

// FoodSession is a scoped unit of work against the food store.
// Name lookups are exact matches after case folding, against canonical
// names and aliases.
type FoodSession interface {
	// FindProductByName returns domain.ErrNotFound when absent.
	FindProductByName(ctx context.Context, name string) (*domain.Product, error)

	// FindDishByName returns the dish with its ingredients and their products,
	// or domain.ErrNotFound when absent.
	FindDishByName(ctx context.Context, name string) (*domain.Dish, error)

	// CreateProduct persists a product and returns it with its assigned ID.
	// Returns domain.ErrAlreadyExists if the name is taken.
	CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)

	// CreateDishWithIngredients atomically persists a dish and its recipe.
	// Ingredient names without a stored product get a zero-nutrient solid
	// placeholder product. Returns domain.ErrAlreadyExists if the dish name
	// is taken.
	CreateDishWithIngredients(ctx context.Context, dish domain.Dish, ingredients []domain.IngredientSpec) (*domain.Dish, error)

	// Release ends the session. Safe to call more than once.
	Release()
}
