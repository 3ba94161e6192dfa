package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/aikcal/internal/core/domain"
)

// AnalyzeMealInput is the input schema for the analyze_meal tool.
type AnalyzeMealInput struct {
	Text        string `json:"text,omitempty" jsonschema:"free-text meal description, e.g. 200g ryżu"`
	ImageBase64 string `json:"image_base64,omitempty" jsonschema:"base64 meal photo, optionally as a data URL"`
}

// LookupBarcodeInput is the input schema for the lookup_barcode tool.
type LookupBarcodeInput struct {
	Barcode string `json:"barcode" jsonschema:"EAN or UPC code of a packaged product"`
}

// SuggestGoalsInput is the input schema for the suggest_goals tool.
type SuggestGoalsInput struct {
	Gender        string  `json:"gender" jsonschema:"male or female"`
	DateOfBirth   string  `json:"date_of_birth" jsonschema:"birth date as YYYY-MM-DD"`
	WeightKg      float64 `json:"weight" jsonschema:"body weight in kilograms"`
	HeightCm      float64 `json:"height" jsonschema:"height in centimetres"`
	ActivityLevel string  `json:"activity_level,omitempty" jsonschema:"bmr, sedentary, light, moderate, active or very_active"`
	WeeklyGoalKg  float64 `json:"weekly_goal_kg,omitempty" jsonschema:"desired weekly weight change in kg, negative to lose"`
	DietStyle     string  `json:"diet_style,omitempty" jsonschema:"balanced, keto, vegetarian, low_carb or high_protein"`
}

// EstimateWorkoutInput is the input schema for the estimate_workout tool.
type EstimateWorkoutInput struct {
	Text     string  `json:"text" jsonschema:"activity description, e.g. bieganie 30 minut"`
	WeightKg float64 `json:"weight" jsonschema:"body weight in kilograms"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_meal",
		Description: "Estimate calories and macros of a meal from a text description and/or photo",
	}, s.handleAnalyzeMeal)

	if s.ports.Barcode != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "lookup_barcode",
			Description: "Look up per-100g nutrients of a packaged product by barcode",
		}, s.handleLookupBarcode)
	}

	if s.ports.Goals != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "suggest_goals",
			Description: "Suggest a daily calorie and macro target from body metrics",
		}, s.handleSuggestGoals)
	}

	if s.ports.Workout != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "estimate_workout",
			Description: "Estimate calories burned by a described physical activity",
		}, s.handleEstimateWorkout)
	}
}

// handleAnalyzeMeal handles the analyze_meal tool invocation.
func (s *Server) handleAnalyzeMeal(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeMealInput,
) (*mcp.CallToolResult, domain.ResolvedMeal, error) {
	image, err := domain.ParseImageBase64(input.ImageBase64)
	if err != nil {
		return nil, domain.ResolvedMeal{}, err
	}

	meal, err := s.ports.Nutrition.Resolve(ctx, domain.AnalysisRequest{Text: input.Text, Image: image})
	if err != nil {
		return nil, domain.ResolvedMeal{}, err
	}
	return nil, *meal, nil
}

// handleLookupBarcode handles the lookup_barcode tool invocation.
func (s *Server) handleLookupBarcode(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LookupBarcodeInput,
) (*mcp.CallToolResult, domain.BarcodeProduct, error) {
	if s.ports.Barcode == nil {
		return nil, domain.BarcodeProduct{}, errToolUnavailable
	}
	product, err := s.ports.Barcode.Lookup(ctx, input.Barcode)
	if err != nil {
		return nil, domain.BarcodeProduct{}, err
	}
	return nil, *product, nil
}

// handleSuggestGoals handles the suggest_goals tool invocation.
func (s *Server) handleSuggestGoals(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SuggestGoalsInput,
) (*mcp.CallToolResult, domain.GoalSuggestion, error) {
	if s.ports.Goals == nil {
		return nil, domain.GoalSuggestion{}, errToolUnavailable
	}
	dob, err := time.Parse(time.DateOnly, strings.TrimSpace(input.DateOfBirth))
	if err != nil {
		return nil, domain.GoalSuggestion{}, fmt.Errorf("%w: date_of_birth must be YYYY-MM-DD", domain.ErrInvalidInput)
	}

	suggestion, err := s.ports.Goals.Suggest(domain.GoalRequest{
		Gender:        domain.Gender(strings.ToLower(input.Gender)),
		DateOfBirth:   dob,
		WeightKg:      input.WeightKg,
		HeightCm:      input.HeightCm,
		ActivityLevel: domain.ActivityLevel(input.ActivityLevel),
		WeeklyGoalKg:  input.WeeklyGoalKg,
		DietStyle:     domain.DietStyle(input.DietStyle),
	})
	if err != nil {
		return nil, domain.GoalSuggestion{}, err
	}
	return nil, *suggestion, nil
}

// handleEstimateWorkout handles the estimate_workout tool invocation.
func (s *Server) handleEstimateWorkout(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input EstimateWorkoutInput,
) (*mcp.CallToolResult, domain.WorkoutEstimate, error) {
	if s.ports.Workout == nil {
		return nil, domain.WorkoutEstimate{}, errToolUnavailable
	}
	estimate, err := s.ports.Workout.Estimate(ctx, input.Text, input.WeightKg)
	if err != nil {
		return nil, domain.WorkoutEstimate{}, err
	}
	return nil, *estimate, nil
}
