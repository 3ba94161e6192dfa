package httpapi

import (
	"context"
	"io"

	"github.com/custodia-labs/aikcal/internal/core/domain"
)

type mockNutritionService struct {
	meal    *domain.ResolvedMeal
	err     error
	lastReq domain.AnalysisRequest
}

func (m *mockNutritionService) Resolve(_ context.Context, req domain.AnalysisRequest) (*domain.ResolvedMeal, error) {
	m.lastReq = req
	return m.meal, m.err
}

type mockCatalogService struct {
	entity *domain.FoodEntity
	err    error
	name   string
}

func (m *mockCatalogService) Import(_ context.Context, _ io.Reader) (*domain.ImportReport, error) {
	return &domain.ImportReport{}, nil
}

func (m *mockCatalogService) Lookup(_ context.Context, name string) (*domain.FoodEntity, error) {
	m.name = name
	return m.entity, m.err
}

type mockBarcodeService struct {
	product *domain.BarcodeProduct
	err     error
}

func (m *mockBarcodeService) Lookup(_ context.Context, _ string) (*domain.BarcodeProduct, error) {
	return m.product, m.err
}

type mockWorkoutService struct {
	text   string
	weight float64
}

func (m *mockWorkoutService) Estimate(_ context.Context, text string, weightKg float64) (*domain.WorkoutEstimate, error) {
	m.text, m.weight = text, weightKg
	return &domain.WorkoutEstimate{Name: "Bieganie", CaloriesBurned: 350}, nil
}

type mockGoalService struct {
	lastReq domain.GoalRequest
	err     error
}

func (m *mockGoalService) Suggest(req domain.GoalRequest) (*domain.GoalSuggestion, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &domain.GoalSuggestion{CalorieGoal: 2136, ProteinGoal: 134, FatGoal: 71, CarbGoal: 240}, nil
}
