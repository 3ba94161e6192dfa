package mcp

import (
	"context"
	"io"

	"github.com/custodia-labs/aikcal/internal/core/domain"
)

// mockNutritionService is a mock implementation of driving.NutritionService.
type mockNutritionService struct {
	meal    *domain.ResolvedMeal
	err     error
	lastReq domain.AnalysisRequest
}

func (m *mockNutritionService) Resolve(_ context.Context, req domain.AnalysisRequest) (*domain.ResolvedMeal, error) {
	m.lastReq = req
	return m.meal, m.err
}

// mockCatalogService is a mock implementation of driving.CatalogService.
type mockCatalogService struct {
	entities map[string]*domain.FoodEntity
}

func (m *mockCatalogService) Import(_ context.Context, _ io.Reader) (*domain.ImportReport, error) {
	return &domain.ImportReport{}, nil
}

func (m *mockCatalogService) Lookup(_ context.Context, name string) (*domain.FoodEntity, error) {
	if e, ok := m.entities[name]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

// mockBarcodeService is a mock implementation of driving.BarcodeService.
type mockBarcodeService struct {
	product *domain.BarcodeProduct
	err     error
}

func (m *mockBarcodeService) Lookup(_ context.Context, _ string) (*domain.BarcodeProduct, error) {
	return m.product, m.err
}

// mockWorkoutService is a mock implementation of driving.WorkoutService.
type mockWorkoutService struct {
	estimate *domain.WorkoutEstimate
}

func (m *mockWorkoutService) Estimate(_ context.Context, _ string, _ float64) (*domain.WorkoutEstimate, error) {
	return m.estimate, nil
}

// mockGoalService is a mock implementation of driving.GoalService.
type mockGoalService struct {
	lastReq domain.GoalRequest
}

func (m *mockGoalService) Suggest(req domain.GoalRequest) (*domain.GoalSuggestion, error) {
	m.lastReq = req
	return &domain.GoalSuggestion{CalorieGoal: 2000, ProteinGoal: 125, FatGoal: 67, CarbGoal: 225}, nil
}
