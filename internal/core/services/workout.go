package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/aikcal/internal/core/domain"
	"github.com/custodia-labs/aikcal/internal/core/ports/driven"
	"github.com/custodia-labs/aikcal/internal/core/ports/driving"
	"github.com/custodia-labs/aikcal/internal/logger"
)

// Ensure WorkoutService implements the interface.
var _ driving.WorkoutService = (*WorkoutService)(nil)

type workoutAnswer struct {
	Name           *string  `json:"name"`
	CaloriesBurned *float64 `json:"calories_burned"`
}

// WorkoutService estimates calories burned with the oracle.
type WorkoutService struct {
	oracle  driven.Oracle
	prompts driven.PromptStore
}

// NewWorkoutService creates a new workout service.
func NewWorkoutService(oracle driven.Oracle, prompts driven.PromptStore) *WorkoutService {
	return &WorkoutService{oracle: oracle, prompts: prompts}
}

// Estimate asks the oracle about an activity. Oracle problems degrade to a
// zero-calorie estimate named domain.WorkoutFailed.
func (s *WorkoutService) Estimate(ctx context.Context, description string, weightKg float64) (*domain.WorkoutEstimate, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("%w: workout description is required", domain.ErrInvalidInput)
	}
	if !(weightKg > 0) {
		return nil, fmt.Errorf("%w: body weight must be positive", domain.ErrInvalidInput)
	}

	failed := &domain.WorkoutEstimate{Name: domain.WorkoutFailed}
	prompt, err := renderPrompt(s.prompts, driven.PromptWorkoutEstimate, description, strconv.FormatFloat(weightKg, 'f', -1, 64))
	if err != nil {
		logger.Warn("Workout estimate skipped: %v", err)
		return failed, nil
	}

	var answer workoutAnswer
	if err := askJSON(ctx, s.oracle, prompt, nil, &answer); err != nil {
		logger.Warn("Workout estimate failed: %v", err)
		return failed, nil
	}
	if answer.Name == nil || strings.TrimSpace(*answer.Name) == "" || answer.CaloriesBurned == nil || *answer.CaloriesBurned < 0 {
		logger.Warn("Workout estimate incomplete")
		return failed, nil
	}

	estimate := &domain.WorkoutEstimate{
		Name:           strings.TrimSpace(*answer.Name),
		CaloriesBurned: domain.RoundInt(*answer.CaloriesBurned),
	}
	if estimate.CaloriesBurned == 0 {
		estimate.Name = domain.WorkoutUnrecognized
	}
	return estimate, nil
}
