// Package domain defines the core business entities for aikcal.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Product: A canonical base foodstuff with a per-100 nutrient profile
//   - Dish: A composite meal with a fixed base recipe of Ingredients
//   - FoodEntity: A Product or a Dish, decided once at ingestion
//   - ResolvedMeal: The scaled nutrient result of one analysis request
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
