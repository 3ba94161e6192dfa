package domain

import (
	"fmt"
	"math"
	"strings"
)

// ProductState is the state of matter used for unit conversion.
type ProductState string

// Available product states.
const (
	// StateSolid converts kitchen units to grams.
	StateSolid ProductState = "solid"

	// StateLiquid converts kitchen units to millilitres.
	StateLiquid ProductState = "liquid"
)

// IsValid returns true if the state is recognised.
func (s ProductState) IsValid() bool {
	return s == StateSolid || s == StateLiquid
}

// String returns the string representation.
func (s ProductState) String() string {
	return string(s)
}

// ParseProductState converts a free-form state string into a ProductState.
// Anything other than "liquid" is treated as solid.
func ParseProductState(s string) ProductState {
	if strings.EqualFold(strings.TrimSpace(s), string(StateLiquid)) {
		return StateLiquid
	}
	return StateSolid
}

// Nutrients is a nutrient profile. Stored products hold values per 100 g/ml.
type Nutrients struct {
	// Calories in kcal.
	Calories float64 `json:"calories"`

	// Protein in grams.
	Protein float64 `json:"protein"`

	// Fat in grams.
	Fat float64 `json:"fat"`

	// Carbs in grams.
	Carbs float64 `json:"carbs"`
}

// Scale returns the profile multiplied by factor.
func (n Nutrients) Scale(factor float64) Nutrients {
	return Nutrients{
		Calories: n.Calories * factor,
		Protein:  n.Protein * factor,
		Fat:      n.Fat * factor,
		Carbs:    n.Carbs * factor,
	}
}

// Add returns the element-wise sum of two profiles.
func (n Nutrients) Add(o Nutrients) Nutrients {
	return Nutrients{
		Calories: n.Calories + o.Calories,
		Protein:  n.Protein + o.Protein,
		Fat:      n.Fat + o.Fat,
		Carbs:    n.Carbs + o.Carbs,
	}
}

// Validate rejects negative or non-finite values.
func (n Nutrients) Validate() error {
	values := map[string]float64{
		"calories": n.Calories,
		"protein":  n.Protein,
		"fat":      n.Fat,
		"carbs":    n.Carbs,
	}
	for key, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", ErrInvalidInput, key)
		}
	}
	return nil
}

// Product is a canonical base foodstuff.
type Product struct {
	// ID is the unique identifier.
	ID string `json:"id"`

	// Name is the canonical name, unique under case folding.
	Name string `json:"name"`

	// Aliases are alternative spellings and display names.
	Aliases []string `json:"aliases,omitempty"`

	// Nutrients holds values per 100 g (solid) or 100 ml (liquid).
	Nutrients Nutrients `json:"nutrients"`

	// State drives unit conversion.
	State ProductState `json:"state"`

	// AverageWeightG is the weight of one discrete piece, 0 if not countable.
	AverageWeightG float64 `json:"average_weight_g"`
}

// Validate checks the product invariants.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}
	if !p.State.IsValid() {
		return fmt.Errorf("%w: product state %q", ErrInvalidInput, p.State)
	}
	if p.AverageWeightG < 0 {
		return fmt.Errorf("%w: average weight must not be negative", ErrInvalidInput)
	}
	return p.Nutrients.Validate()
}

// PlaceholderProduct returns a zero-nutrient solid product used when a
// recipe references an ingredient the store knows nothing about.
func PlaceholderProduct(name string) Product {
	return Product{
		Name:  name,
		State: StateSolid,
	}
}

// Ingredient links a dish to a product with its base recipe weight.
type Ingredient struct {
	// ID is the unique identifier.
	ID string `json:"id"`

	// DishID references the owning dish.
	DishID string `json:"dish_id"`

	// Product is the resolved ingredient product.
	Product Product `json:"product"`

	// WeightG is the weight in the dish's base recipe portion. Always > 0.
	WeightG float64 `json:"weight_g"`
}

// IngredientSpec names an ingredient for dish creation.
// The store resolves ProductName to a Product, creating a placeholder if needed.
type IngredientSpec struct {
	ProductName string  `json:"ingredient_name"`
	WeightG     float64 `json:"weight_g"`
}

// Validate checks the ingredient spec invariants.
func (s IngredientSpec) Validate() error {
	if strings.TrimSpace(s.ProductName) == "" {
		return fmt.Errorf("%w: ingredient name is required", ErrInvalidInput)
	}
	if !(s.WeightG > 0) || math.IsInf(s.WeightG, 0) {
		return fmt.Errorf("%w: ingredient %q weight must be positive", ErrInvalidInput, s.ProductName)
	}
	return nil
}

// Dish is a canonical composite meal.
type Dish struct {
	// ID is the unique identifier.
	ID string `json:"id"`

	// Name is the canonical name, unique under case folding.
	Name string `json:"name"`

	// Category is a free-form tag such as "soup".
	Category string `json:"category,omitempty"`

	// Aliases are alternative spellings and display names.
	Aliases []string `json:"aliases,omitempty"`

	// Ingredients is the fixed base recipe.
	Ingredients []Ingredient `json:"ingredients"`
}

// BaseWeightG sums the base recipe weight of all ingredients.
func (d *Dish) BaseWeightG() float64 {
	var total float64
	for i := range d.Ingredients {
		total += d.Ingredients[i].WeightG
	}
	return total
}

// State classifies the dish by liquid dominance: liquid when strictly more
// than half of the base weight comes from liquid ingredients.
func (d *Dish) State() ProductState {
	total := d.BaseWeightG()
	if total <= 0 {
		return StateSolid
	}
	var liquid float64
	for i := range d.Ingredients {
		if d.Ingredients[i].Product.State == StateLiquid {
			liquid += d.Ingredients[i].WeightG
		}
	}
	if liquid/total > 0.5 {
		return StateLiquid
	}
	return StateSolid
}

// RecipeNutrients sums the nutrients of the base recipe.
func (d *Dish) RecipeNutrients() Nutrients {
	var total Nutrients
	for i := range d.Ingredients {
		ing := d.Ingredients[i]
		total = total.Add(ing.Product.Nutrients.Scale(ing.WeightG / 100.0))
	}
	return total
}

// FoodKind tags the variant held by a FoodEntity.
type FoodKind string

// Available food kinds.
const (
	FoodKindProduct FoodKind = "product"
	FoodKindDish    FoodKind = "dish"
)

// FoodEntity is either a Product or a Dish. The kind is decided once when the
// entity is ingested and carried from there on.
type FoodEntity struct {
	Kind    FoodKind `json:"kind"`
	Product *Product `json:"product,omitempty"`
	Dish    *Dish    `json:"dish,omitempty"`
}

// ProductEntity wraps a product.
func ProductEntity(p *Product) FoodEntity {
	return FoodEntity{Kind: FoodKindProduct, Product: p}
}

// DishEntity wraps a dish.
func DishEntity(d *Dish) FoodEntity {
	return FoodEntity{Kind: FoodKindDish, Dish: d}
}

// Name returns the canonical name of the wrapped entity.
func (e FoodEntity) Name() string {
	switch e.Kind {
	case FoodKindDish:
		if e.Dish != nil {
			return e.Dish.Name
		}
	case FoodKindProduct:
		if e.Product != nil {
			return e.Product.Name
		}
	}
	return ""
}
