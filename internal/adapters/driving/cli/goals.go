package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/aikcal/internal/core/domain"
)

var (
	goalsGender   string
	goalsBirth    string
	goalsWeight   float64
	goalsHeight   float64
	goalsActivity string
	goalsWeekly   float64
	goalsDiet     string
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Suggest daily calorie and macro goals",
	Long: `Suggest a daily calorie target from the Mifflin-St Jeor BMR, an activity
multiplier and a weekly weight goal, split into macros by diet style.

Activity levels: bmr, sedentary, light, moderate, active, very_active
Diet styles:     balanced, keto, vegetarian, low_carb, high_protein

Example:
  aikcal goals --gender female --born 1995-03-01 --weight 62 --height 168 --weekly -0.5`,
	Args: cobra.NoArgs,
	RunE: runGoals,
}

func init() {
	goalsCmd.Flags().StringVar(&goalsGender, "gender", string(domain.GenderMale), "male or female")
	goalsCmd.Flags().StringVar(&goalsBirth, "born", "", "date of birth (YYYY-MM-DD)")
	goalsCmd.Flags().Float64Var(&goalsWeight, "weight", 0, "body weight in kg")
	goalsCmd.Flags().Float64Var(&goalsHeight, "height", 0, "height in cm")
	goalsCmd.Flags().StringVar(&goalsActivity, "activity", string(domain.ActivitySedentary), "activity level")
	goalsCmd.Flags().Float64Var(&goalsWeekly, "weekly", 0, "weekly weight change in kg (negative to lose)")
	goalsCmd.Flags().StringVar(&goalsDiet, "diet", string(domain.DietBalanced), "diet style")
	rootCmd.AddCommand(goalsCmd)
}

func runGoals(cmd *cobra.Command, _ []string) error {
	if goalService == nil {
		return errors.New("goal service not configured")
	}

	born, err := time.Parse(time.DateOnly, goalsBirth)
	if err != nil {
		return errors.New("--born must be a date in YYYY-MM-DD format")
	}

	suggestion, err := goalService.Suggest(domain.GoalRequest{
		Gender:        domain.Gender(strings.ToLower(goalsGender)),
		DateOfBirth:   born,
		WeightKg:      goalsWeight,
		HeightCm:      goalsHeight,
		ActivityLevel: domain.ActivityLevel(goalsActivity),
		WeeklyGoalKg:  goalsWeekly,
		DietStyle:     domain.DietStyle(goalsDiet),
	})
	if err != nil {
		return fmt.Errorf("goal suggestion failed: %w", err)
	}

	cmd.Println("Daily goals")
	cmd.Printf("  Calories: %d kcal\n", suggestion.CalorieGoal)
	cmd.Printf("  Protein:  %d g\n", suggestion.ProteinGoal)
	cmd.Printf("  Fat:      %d g\n", suggestion.FatGoal)
	cmd.Printf("  Carbs:    %d g\n", suggestion.CarbGoal)
	return nil
}
