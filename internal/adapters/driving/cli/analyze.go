package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/aikcal/internal/core/domain"
)

var (
	analyzeImage string
	analyzeJSON  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [description]",
	Short: "Estimate calories and macros of a meal",
	Long: `Analyse a meal from a text description, a photo, or both.

Examples:
  aikcal analyze "200g ryżu"
  aikcal analyze "talerz rosołu"
  aikcal analyze --image lunch.jpg`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeImage, "image", "i", "", "path to a meal photo")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output result as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if nutritionService == nil {
		return errors.New("nutrition service not configured")
	}

	req := domain.AnalysisRequest{}
	if len(args) > 0 {
		req.Text = args[0]
	}
	if analyzeImage != "" {
		data, err := os.ReadFile(analyzeImage)
		if err != nil {
			return fmt.Errorf("reading image: %w", err)
		}
		req.Image = domain.NewImage(data)
	}
	if req.IsEmpty() {
		return errors.New("provide a meal description or --image")
	}

	meal, err := nutritionService.Resolve(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeJSON {
		return printJSON(cmd, meal)
	}
	printMeal(cmd, meal)
	return nil
}

func printMeal(cmd *cobra.Command, meal *domain.ResolvedMeal) {
	cmd.Println(meal.Name)
	cmd.Printf("  Portion:  %s (%d g)\n", meal.DisplayQuantityText, meal.QuantityGrams)
	cmd.Printf("  Calories: %d kcal\n", meal.Calories)
	cmd.Printf("  Protein:  %.1f g\n", meal.Protein)
	cmd.Printf("  Fat:      %.1f g\n", meal.Fat)
	cmd.Printf("  Carbs:    %.1f g\n", meal.Carbs)
	cmd.Printf("  Source:   %s\n", meal.Source)

	if len(meal.Breakdown) == 0 {
		return
	}
	cmd.Println()
	cmd.Println("  Ingredients:")
	for _, ing := range meal.Breakdown {
		cmd.Printf("    - %s: %d g, %d kcal\n", ing.Name, ing.QuantityGrams, ing.Calories)
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
