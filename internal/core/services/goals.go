package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/aikcal/internal/core/domain"
	"github.com/custodia-labs/aikcal/internal/core/ports/driving"
)

// Ensure GoalService implements the interface.
var _ driving.GoalService = (*GoalService)(nil)

// kcalPerWeeklyKg converts a weekly weight change into a daily calorie offset.
const kcalPerWeeklyKg = 1100

// GoalService suggests daily targets from body metrics using the
// Mifflin-St Jeor equation.
type GoalService struct {
	now func() time.Time
}

// NewGoalService creates a goal service using the wall clock.
func NewGoalService() *GoalService {
	return &GoalService{now: time.Now}
}

// Suggest computes calorie and macro goals.
func (s *GoalService) Suggest(req domain.GoalRequest) (*domain.GoalSuggestion, error) {
	if !(req.WeightKg > 0) || !(req.HeightCm > 0) {
		return nil, fmt.Errorf("%w: weight and height must be positive", domain.ErrInvalidInput)
	}
	if req.Gender != domain.GenderMale && req.Gender != domain.GenderFemale {
		return nil, fmt.Errorf("%w: gender %q", domain.ErrInvalidInput, req.Gender)
	}
	now := s.now()
	if req.DateOfBirth.IsZero() || req.DateOfBirth.After(now) {
		return nil, fmt.Errorf("%w: date of birth", domain.ErrInvalidInput)
	}

	age := now.Sub(req.DateOfBirth).Hours() / 24 / 365.25
	bmr := 10*req.WeightKg + 6.25*req.HeightCm - 5*age
	if req.Gender == domain.GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}

	calories := bmr*req.ActivityLevel.Multiplier() + req.WeeklyGoalKg*kcalPerWeeklyKg
	ratios := req.DietStyle.Ratios()
	return &domain.GoalSuggestion{
		CalorieGoal: domain.RoundInt(calories),
		ProteinGoal: domain.RoundInt(calories * ratios.Protein / 4),
		FatGoal:     domain.RoundInt(calories * ratios.Fat / 9),
		CarbGoal:    domain.RoundInt(calories * ratios.Carbs / 4),
	}, nil
}
