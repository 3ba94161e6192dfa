package mcp

import (
	"github.com/custodia-labs/aikcal/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Nutrition resolves meal descriptions.
	Nutrition driving.NutritionService

	// Catalog reads the food knowledge base.
	Catalog driving.CatalogService

	// Barcode looks up packaged products.
	Barcode driving.BarcodeService

	// Workout estimates calories burned.
	Workout driving.WorkoutService

	// Goals suggests daily targets.
	Goals driving.GoalService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Nutrition == nil {
		return ErrMissingNutritionService
	}
	return nil
}
