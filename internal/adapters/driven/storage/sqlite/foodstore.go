package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/custodia-labs/aikcal/internal/core/domain"
	"github.com/custodia-labs/aikcal/internal/core/ports/driven"
)

// queryer is satisfied by both a pinned connection and a transaction on it.
type queryer interface {
	sqlx.QueryerContext
	sqlx.ExecerContext
}

// productRow maps the products table.
type productRow struct {
	ID             string  `db:"id"`
	Name           string  `db:"name"`
	Calories       float64 `db:"calories"`
	Protein        float64 `db:"protein"`
	Fat            float64 `db:"fat"`
	Carbs          float64 `db:"carbs"`
	State          string  `db:"state"`
	AverageWeightG float64 `db:"average_weight_g"`
}

func (r productRow) toDomain() domain.Product {
	return domain.Product{
		ID:   r.ID,
		Name: r.Name,
		Nutrients: domain.Nutrients{
			Calories: r.Calories,
			Protein:  r.Protein,
			Fat:      r.Fat,
			Carbs:    r.Carbs,
		},
		State:          domain.ProductState(r.State),
		AverageWeightG: r.AverageWeightG,
	}
}

type dishRow struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Category string `db:"category"`
}

// ingredientRow is a dish_ingredients row joined with its product.
type ingredientRow struct {
	IngredientID string  `db:"ingredient_id"`
	WeightG      float64 `db:"weight_g"`
	productRow
}

const productColumns = `p.id, p.name, p.calories, p.protein, p.fat, p.carbs, p.state, p.average_weight_g`

// nameKey is the case-folded lookup key. SQLite's lower() only folds ASCII,
// so keys are computed here.
func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// foodSession is a unit of work pinned to one connection.
type foodSession struct {
	conn *sqlx.Conn
}

var _ driven.FoodSession = (*foodSession)(nil)

// FindProductByName matches the canonical name first, then aliases.
func (f *foodSession) FindProductByName(ctx context.Context, name string) (*domain.Product, error) {
	row, err := findProduct(ctx, f.conn, nameKey(name))
	if err != nil {
		return nil, err
	}
	product := row.toDomain()
	if err := sqlx.SelectContext(ctx, f.conn, &product.Aliases,
		`SELECT alias FROM product_aliases WHERE product_id = ? ORDER BY rowid`, product.ID); err != nil {
		return nil, fmt.Errorf("loading product aliases: %w", err)
	}
	return &product, nil
}

func findProduct(ctx context.Context, q queryer, key string) (*productRow, error) {
	var row productRow
	err := sqlx.GetContext(ctx, q, &row,
		`SELECT `+productColumns+` FROM products p WHERE p.name_key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		err = sqlx.GetContext(ctx, q, &row, `
			SELECT `+productColumns+`
			FROM products p JOIN product_aliases a ON a.product_id = p.id
			WHERE a.alias_key = ?
			ORDER BY p.rowid LIMIT 1
		`, key)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %q: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("finding product: %w", err)
	}
	return &row, nil
}

// FindDishByName matches the canonical name first, then aliases, and loads
// the recipe in insertion order.
func (f *foodSession) FindDishByName(ctx context.Context, name string) (*domain.Dish, error) {
	key := nameKey(name)
	var row dishRow
	err := f.conn.GetContext(ctx, &row, `SELECT id, name, category FROM dishes WHERE name_key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		err = f.conn.GetContext(ctx, &row, `
			SELECT d.id, d.name, d.category
			FROM dishes d JOIN dish_aliases a ON a.dish_id = d.id
			WHERE a.alias_key = ?
			ORDER BY d.rowid LIMIT 1
		`, key)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("dish %q: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("finding dish: %w", err)
	}

	dish := &domain.Dish{ID: row.ID, Name: row.Name, Category: row.Category}
	if err := f.conn.SelectContext(ctx, &dish.Aliases,
		`SELECT alias FROM dish_aliases WHERE dish_id = ? ORDER BY rowid`, row.ID); err != nil {
		return nil, fmt.Errorf("loading dish aliases: %w", err)
	}

	var ingredients []ingredientRow
	if err := f.conn.SelectContext(ctx, &ingredients, `
		SELECT i.id AS ingredient_id, i.weight_g, `+productColumns+`
		FROM dish_ingredients i JOIN products p ON p.id = i.product_id
		WHERE i.dish_id = ?
		ORDER BY i.position
	`, row.ID); err != nil {
		return nil, fmt.Errorf("loading recipe: %w", err)
	}
	for _, ing := range ingredients {
		dish.Ingredients = append(dish.Ingredients, domain.Ingredient{
			ID:      ing.IngredientID,
			DishID:  dish.ID,
			Product: ing.productRow.toDomain(),
			WeightG: ing.WeightG,
		})
	}
	return dish, nil
}

// CreateProduct stores a new product and its aliases.
func (f *foodSession) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}

	tx, err := f.conn.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := insertProduct(ctx, tx, product); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return f.FindProductByName(ctx, product.Name)
}

func insertProduct(ctx context.Context, q queryer, product domain.Product) (string, error) {
	name := strings.TrimSpace(product.Name)
	id := uuid.NewString()
	_, err := q.ExecContext(ctx, `
		INSERT INTO products (id, name, name_key, calories, protein, fat, carbs, state, average_weight_g)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, name, nameKey(name), product.Nutrients.Calories, product.Nutrients.Protein,
		product.Nutrients.Fat, product.Nutrients.Carbs, string(product.State), product.AverageWeightG)
	if err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("product %q: %w", name, domain.ErrAlreadyExists)
		}
		return "", fmt.Errorf("inserting product: %w", err)
	}

	for _, alias := range product.Aliases {
		if err := insertAlias(ctx, q, "product_aliases", "product_id", id, name, alias); err != nil {
			return "", err
		}
	}
	return id, nil
}

// insertAlias skips blanks and aliases equal to the canonical name.
func insertAlias(ctx context.Context, q queryer, table, ownerColumn, ownerID, name, alias string) error {
	alias = strings.TrimSpace(alias)
	if alias == "" || nameKey(alias) == nameKey(name) {
		return nil
	}
	query := fmt.Sprintf(`INSERT OR IGNORE INTO %s (%s, alias, alias_key) VALUES (?, ?, ?)`, table, ownerColumn)
	if _, err := q.ExecContext(ctx, query, ownerID, alias, nameKey(alias)); err != nil {
		return fmt.Errorf("inserting alias %q: %w", alias, err)
	}
	return nil
}

// CreateDishWithIngredients stores a dish and its recipe in one transaction.
// Ingredients the store does not know become placeholder products.
func (f *foodSession) CreateDishWithIngredients(ctx context.Context, dish domain.Dish, specs []domain.IngredientSpec) (*domain.Dish, error) {
	name := strings.TrimSpace(dish.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: dish name is required", domain.ErrInvalidInput)
	}
	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, err
		}
	}

	tx, err := f.conn.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	dishID := uuid.NewString()
	_, err = tx.ExecContext(ctx, `INSERT INTO dishes (id, name, name_key, category) VALUES (?, ?, ?, ?)`,
		dishID, name, nameKey(name), dish.Category)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("dish %q: %w", name, domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("inserting dish: %w", err)
	}
	for _, alias := range dish.Aliases {
		if err := insertAlias(ctx, tx, "dish_aliases", "dish_id", dishID, name, alias); err != nil {
			return nil, err
		}
	}

	for i, spec := range specs {
		productID, err := productIDFor(ctx, tx, spec.ProductName)
		if err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO dish_ingredients (id, dish_id, product_id, weight_g, position)
			VALUES (?, ?, ?, ?, ?)
		`, uuid.NewString(), dishID, productID, spec.WeightG, i); err != nil {
			return nil, fmt.Errorf("inserting ingredient %q: %w", spec.ProductName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return f.FindDishByName(ctx, name)
}

// productIDFor resolves an ingredient name, creating a placeholder if needed.
func productIDFor(ctx context.Context, q queryer, name string) (string, error) {
	row, err := findProduct(ctx, q, nameKey(name))
	if err == nil {
		return row.ID, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}
	return insertProduct(ctx, q, domain.PlaceholderProduct(strings.TrimSpace(name)))
}

// Release returns the pinned connection to the pool.
func (f *foodSession) Release() {
	f.conn.Close()
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
