package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/custodia-labs/aikcal/internal/core/domain"
)

type mockNutritionService struct {
	lastReq domain.AnalysisRequest
	err     error
}

func (m *mockNutritionService) Resolve(_ context.Context, req domain.AnalysisRequest) (*domain.ResolvedMeal, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &domain.ResolvedMeal{
		Name:                "rosół",
		QuantityGrams:       500,
		DisplayQuantityText: "1 talerz",
		Calories:            180,
		Protein:             9.5,
		Fat:                 6.2,
		Carbs:               21,
		Breakdown: []domain.IngredientBreakdown{
			{Name: "bulion", QuantityGrams: 430, Calories: 22},
			{Name: "makaron nitki", QuantityGrams: 70, Calories: 158},
		},
		Source: domain.MealSourceDish,
	}, nil
}

type mockCatalogService struct {
	imported string
}

func (m *mockCatalogService) Import(_ context.Context, r io.Reader) (*domain.ImportReport, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m.imported = string(data)
	return &domain.ImportReport{ProductsCreated: 2, DishesCreated: 1, Skipped: 3, Failed: []string{"mystery"}}, nil
}

func (m *mockCatalogService) Lookup(_ context.Context, name string) (*domain.FoodEntity, error) {
	switch strings.ToLower(name) {
	case "mleko":
		return &domain.FoodEntity{Kind: domain.FoodKindProduct, Product: &domain.Product{
			Name:      "mleko",
			Aliases:   []string{"milk"},
			State:     domain.StateLiquid,
			Nutrients: domain.Nutrients{Calories: 64, Protein: 3.3, Fat: 3.2, Carbs: 4.8},
		}}, nil
	case "rosół":
		dish := &domain.Dish{Name: "rosół", Category: "soup"}
		dish.Ingredients = []domain.Ingredient{
			{Product: domain.Product{Name: "bulion", State: domain.StateLiquid, Nutrients: domain.Nutrients{Calories: 5}}, WeightG: 300},
			{Product: domain.Product{Name: "makaron nitki", State: domain.StateSolid}, WeightG: 50},
		}
		return &domain.FoodEntity{Kind: domain.FoodKindDish, Dish: dish}, nil
	}
	return nil, domain.ErrNotFound
}

type mockBarcodeService struct{}

func (m *mockBarcodeService) Lookup(_ context.Context, code string) (*domain.BarcodeProduct, error) {
	if code != "5900259127761" {
		return nil, domain.ErrNotFound
	}
	return &domain.BarcodeProduct{
		Barcode:   code,
		Name:      "Serek wiejski",
		Nutrients: domain.Nutrients{Calories: 97, Protein: 11, Fat: 5, Carbs: 2},
		Source:    "Open Food Facts",
	}, nil
}

type mockWorkoutService struct {
	weight float64
}

func (m *mockWorkoutService) Estimate(_ context.Context, _ string, weightKg float64) (*domain.WorkoutEstimate, error) {
	m.weight = weightKg
	return &domain.WorkoutEstimate{Name: "Bieganie", CaloriesBurned: 350}, nil
}

type mockGoalService struct {
	lastReq domain.GoalRequest
}

func (m *mockGoalService) Suggest(req domain.GoalRequest) (*domain.GoalSuggestion, error) {
	m.lastReq = req
	return &domain.GoalSuggestion{CalorieGoal: 2136, ProteinGoal: 134, FatGoal: 71, CarbGoal: 240}, nil
}

type mockSettingsService struct {
	settings    domain.AppSettings
	validateErr error
	pingErr     error
	provider    domain.AIProvider
	model       string
	apiKey      string
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(s *domain.AppSettings) error {
	m.settings = *s
	return nil
}

func (m *mockSettingsService) SetOracleProvider(provider domain.AIProvider, model, apiKey string) error {
	m.provider, m.model, m.apiKey = provider, model, apiKey
	return nil
}

func (m *mockSettingsService) Validate() error { return m.validateErr }

func (m *mockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

func (m *mockSettingsService) ValidateOracleConfig() error { return m.pingErr }

// testServices exposes the mocks installed by setupTestServices.
type testServices struct {
	nutrition *mockNutritionService
	catalog   *mockCatalogService
	workout   *mockWorkoutService
	goals     *mockGoalService
	settings  *mockSettingsService
}

// setupTestServices installs mock services and resets flag state shared
// between command executions.
func setupTestServices() (*testServices, func()) {
	ts := &testServices{
		nutrition: &mockNutritionService{},
		catalog:   &mockCatalogService{},
		workout:   &mockWorkoutService{},
		goals:     &mockGoalService{},
		settings:  &mockSettingsService{settings: domain.DefaultAppSettings()},
	}
	SetServices(&Services{
		Nutrition: ts.nutrition,
		Catalog:   ts.catalog,
		Barcode:   &mockBarcodeService{},
		Workout:   ts.workout,
		Goals:     ts.goals,
		Settings:  ts.settings,
	})

	analyzeImage, analyzeJSON = "", false
	foodJSON, barcodeJSON = false, false
	workoutWeight = 0
	goalsGender, goalsBirth = string(domain.GenderMale), ""
	goalsWeight, goalsHeight, goalsWeekly = 0, 0, 0
	goalsActivity, goalsDiet = string(domain.ActivitySedentary), string(domain.DietBalanced)
	serveAddr = ""

	return ts, func() {
		SetServices(&Services{})
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func decodeJSONOutput(t *testing.T, out string, v any) error {
	t.Helper()
	return json.Unmarshal([]byte(out), v)
}
