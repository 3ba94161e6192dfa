package domain

// SeedItem is one entry of a seed file. Items with a Deconstruction are
// ingested as dishes, all others as products.
type SeedItem struct {
	Name              string           `json:"name"`
	Category          string           `json:"category,omitempty"`
	Aliases           []string         `json:"aliases,omitempty"`
	State             string           `json:"state,omitempty"`
	AverageWeightG    float64          `json:"average_weight_g,omitempty"`
	NutrientsPer100g  *Nutrients       `json:"nutrients_per_100g,omitempty"`
	NutrientsPer100ml *Nutrients       `json:"nutrients_per_100ml,omitempty"`
	Deconstruction    []IngredientSpec `json:"deconstruction,omitempty"`
}

// IsDish returns true if the item carries a recipe.
func (s SeedItem) IsDish() bool {
	return s.Deconstruction != nil
}

// Nutrients returns the per-100 profile, preferring grams over millilitres.
func (s SeedItem) Nutrients() *Nutrients {
	if s.NutrientsPer100g != nil {
		return s.NutrientsPer100g
	}
	return s.NutrientsPer100ml
}

// ImportReport summarises a seed import.
type ImportReport struct {
	ProductsCreated int      `json:"products_created"`
	DishesCreated   int      `json:"dishes_created"`
	Skipped         int      `json:"skipped"`
	Failed          []string `json:"failed,omitempty"`
}
