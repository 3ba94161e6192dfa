package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var workoutWeight float64

var workoutCmd = &cobra.Command{
	Use:   "workout [description]",
	Short: "Estimate calories burned by an activity",
	Long: `Estimate calories burned by a described activity for a given body weight.

Example:
  aikcal workout "bieganie 30 minut" --weight 70`,
	Args: cobra.ExactArgs(1),
	RunE: runWorkout,
}

func init() {
	workoutCmd.Flags().Float64VarP(&workoutWeight, "weight", "w", 0, "body weight in kg")
	rootCmd.AddCommand(workoutCmd)
}

func runWorkout(cmd *cobra.Command, args []string) error {
	if workoutService == nil {
		return errors.New("workout service not configured")
	}
	if workoutWeight <= 0 {
		return errors.New("--weight is required")
	}

	estimate, err := workoutService.Estimate(cmd.Context(), args[0], workoutWeight)
	if err != nil {
		return fmt.Errorf("workout estimate failed: %w", err)
	}

	cmd.Printf("%s: %d kcal\n", estimate.Name, estimate.CaloriesBurned)
	return nil
}
