package domain

import "time"

// Gender selects the BMR formula constant.
type Gender string

// Available genders.
const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ActivityLevel scales BMR into daily energy expenditure.
type ActivityLevel string

// Available activity levels.
const (
	ActivityBMR        ActivityLevel = "bmr"
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// Multiplier returns the TDEE multiplier, defaulting to sedentary.
func (a ActivityLevel) Multiplier() float64 {
	switch a {
	case ActivityBMR:
		return 1.0
	case ActivityLight:
		return 1.375
	case ActivityModerate:
		return 1.55
	case ActivityActive:
		return 1.725
	case ActivityVeryActive:
		return 1.9
	default:
		return 1.2
	}
}

// DietStyle selects the macro split.
type DietStyle string

// Available diet styles.
const (
	DietBalanced    DietStyle = "balanced"
	DietKeto        DietStyle = "keto"
	DietVegetarian  DietStyle = "vegetarian"
	DietLowCarb     DietStyle = "low_carb"
	DietHighProtein DietStyle = "high_protein"
)

// MacroRatios is the share of calories from each macronutrient.
type MacroRatios struct {
	Protein float64
	Fat     float64
	Carbs   float64
}

// Ratios returns the macro split, defaulting to balanced.
func (d DietStyle) Ratios() MacroRatios {
	switch d {
	case DietKeto:
		return MacroRatios{Protein: 0.25, Fat: 0.70, Carbs: 0.05}
	case DietVegetarian:
		return MacroRatios{Protein: 0.20, Fat: 0.30, Carbs: 0.50}
	case DietLowCarb:
		return MacroRatios{Protein: 0.35, Fat: 0.45, Carbs: 0.20}
	case DietHighProtein:
		return MacroRatios{Protein: 0.40, Fat: 0.30, Carbs: 0.30}
	default:
		return MacroRatios{Protein: 0.25, Fat: 0.30, Carbs: 0.45}
	}
}

// GoalRequest holds the body metrics used to suggest daily goals.
type GoalRequest struct {
	Gender        Gender        `json:"gender"`
	DateOfBirth   time.Time     `json:"date_of_birth"`
	WeightKg      float64       `json:"weight"`
	HeightCm      float64       `json:"height"`
	ActivityLevel ActivityLevel `json:"activity_level"`
	// WeeklyGoalKg is the desired weekly weight change; negative to lose weight.
	WeeklyGoalKg float64   `json:"weekly_goal_kg"`
	DietStyle    DietStyle `json:"diet_style"`
}

// GoalSuggestion is a daily calorie and macro target.
type GoalSuggestion struct {
	CalorieGoal int `json:"calorie_goal"`
	ProteinGoal int `json:"protein_goal"`
	FatGoal     int `json:"fat_goal"`
	CarbGoal    int `json:"carb_goal"`
}

// WorkoutEstimate is the oracle's estimate for a described activity.
type WorkoutEstimate struct {
	Name           string `json:"name"`
	CaloriesBurned int    `json:"calories_burned"`
}

// Fallback workout names.
const (
	WorkoutUnrecognized = "Unrecognized activity"
	WorkoutFailed       = "Workout analysis failed"
)

// BarcodeProduct is a packaged product found by barcode.
type BarcodeProduct struct {
	Barcode   string    `json:"barcode"`
	Name      string    `json:"name"`
	Nutrients Nutrients `json:"nutrients_per_100g"`
	Source    string    `json:"source"`
}
