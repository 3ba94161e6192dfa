package mcp

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/aikcal/internal/core/domain"
)

func TestServer_handleAnalyzeMeal(t *testing.T) {
	ctx := context.Background()

	t.Run("returns resolved meal", func(t *testing.T) {
		nutrition := &mockNutritionService{meal: &domain.ResolvedMeal{
			Name:          "ryż biały",
			QuantityGrams: 200,
			Calories:      260,
			Source:        domain.MealSourceProduct,
		}}
		server, err := NewServer(&Ports{Nutrition: nutrition})
		require.NoError(t, err)

		_, output, err := server.handleAnalyzeMeal(ctx, nil, AnalyzeMealInput{Text: "200g ryżu"})
		require.NoError(t, err)
		assert.Equal(t, "ryż biały", output.Name)
		assert.Equal(t, 260, output.Calories)
		assert.Equal(t, "200g ryżu", nutrition.lastReq.Text)
		assert.Nil(t, nutrition.lastReq.Image)
	})

	t.Run("decodes image", func(t *testing.T) {
		nutrition := &mockNutritionService{meal: &domain.ResolvedMeal{Name: "pizza"}}
		server, err := NewServer(&Ports{Nutrition: nutrition})
		require.NoError(t, err)

		encoded := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("fake png"))
		_, _, err = server.handleAnalyzeMeal(ctx, nil, AnalyzeMealInput{ImageBase64: encoded})
		require.NoError(t, err)
		require.NotNil(t, nutrition.lastReq.Image)
		assert.Equal(t, "image/png", nutrition.lastReq.Image.MIMEType)
		assert.Equal(t, []byte("fake png"), nutrition.lastReq.Image.Data)
	})

	t.Run("rejects invalid image", func(t *testing.T) {
		server, err := NewServer(&Ports{Nutrition: &mockNutritionService{}})
		require.NoError(t, err)

		_, _, err = server.handleAnalyzeMeal(ctx, nil, AnalyzeMealInput{ImageBase64: "%%%"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("propagates analysis failure", func(t *testing.T) {
		server, err := NewServer(&Ports{Nutrition: &mockNutritionService{err: domain.ErrAnalysisFailed}})
		require.NoError(t, err)

		_, _, err = server.handleAnalyzeMeal(ctx, nil, AnalyzeMealInput{Text: "coś"})
		assert.ErrorIs(t, err, domain.ErrAnalysisFailed)
	})
}

func TestServer_handleLookupBarcode(t *testing.T) {
	ctx := context.Background()

	t.Run("returns product", func(t *testing.T) {
		barcode := &mockBarcodeService{product: &domain.BarcodeProduct{
			Barcode: "5900259127761",
			Name:    "Serek wiejski",
			Source:  "Open Food Facts",
		}}
		server, err := NewServer(&Ports{Nutrition: &mockNutritionService{}, Barcode: barcode})
		require.NoError(t, err)

		_, output, err := server.handleLookupBarcode(ctx, nil, LookupBarcodeInput{Barcode: "5900259127761"})
		require.NoError(t, err)
		assert.Equal(t, "Serek wiejski", output.Name)
	})

	t.Run("not found", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Nutrition: &mockNutritionService{},
			Barcode:   &mockBarcodeService{err: domain.ErrNotFound},
		})
		require.NoError(t, err)

		_, _, err = server.handleLookupBarcode(ctx, nil, LookupBarcodeInput{Barcode: "12345678"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("service not wired", func(t *testing.T) {
		server, err := NewServer(&Ports{Nutrition: &mockNutritionService{}})
		require.NoError(t, err)

		_, _, err = server.handleLookupBarcode(ctx, nil, LookupBarcodeInput{Barcode: "12345678"})
		assert.ErrorIs(t, err, errToolUnavailable)
	})
}

func TestServer_handleSuggestGoals(t *testing.T) {
	goals := &mockGoalService{}
	server, err := NewServer(&Ports{Nutrition: &mockNutritionService{}, Goals: goals})
	require.NoError(t, err)

	_, output, err := server.handleSuggestGoals(context.Background(), nil, SuggestGoalsInput{
		Gender:        "Male",
		DateOfBirth:   "1990-05-17",
		WeightKg:      80,
		HeightCm:      180,
		ActivityLevel: "moderate",
		DietStyle:     "keto",
	})
	require.NoError(t, err)
	assert.Equal(t, 2000, output.CalorieGoal)
	assert.Equal(t, domain.GenderMale, goals.lastReq.Gender)
	assert.Equal(t, time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC), goals.lastReq.DateOfBirth)
	assert.Equal(t, domain.ActivityModerate, goals.lastReq.ActivityLevel)
	assert.Equal(t, domain.DietKeto, goals.lastReq.DietStyle)

	_, _, err = server.handleSuggestGoals(context.Background(), nil, SuggestGoalsInput{DateOfBirth: "17.05.1990"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestServer_handleEstimateWorkout(t *testing.T) {
	workout := &mockWorkoutService{estimate: &domain.WorkoutEstimate{Name: "Bieganie", CaloriesBurned: 350}}
	server, err := NewServer(&Ports{Nutrition: &mockNutritionService{}, Workout: workout})
	require.NoError(t, err)

	_, output, err := server.handleEstimateWorkout(context.Background(), nil, EstimateWorkoutInput{Text: "bieganie 30 minut", WeightKg: 70})
	require.NoError(t, err)
	assert.Equal(t, 350, output.CaloriesBurned)
}
