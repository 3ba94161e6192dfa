// Package cli provides the aikcal command line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/aikcal/internal/core/ports/driving"
	"github.com/custodia-labs/aikcal/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "aikcal",
	Short: "Estimate calories and macros of meals",
	Long: `aikcal turns meal descriptions and photos into calorie and macro totals.

Known dishes and products are answered from the local food knowledge base.
Unknown foods are learned once from the configured AI oracle and stored, so
every later request for the same food is served locally.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// PromptWatcher reloads prompt templates when their files change.
type PromptWatcher interface {
	Watch(ctx context.Context) error
}

// Services holds the driving ports used by commands.
type Services struct {
	Nutrition driving.NutritionService
	Catalog   driving.CatalogService
	Barcode   driving.BarcodeService
	Workout   driving.WorkoutService
	Goals     driving.GoalService
	Settings  driving.SettingsService
	Prompts   PromptWatcher
}

var (
	nutritionService driving.NutritionService
	catalogService   driving.CatalogService
	barcodeService   driving.BarcodeService
	workoutService   driving.WorkoutService
	goalService      driving.GoalService
	settingsService  driving.SettingsService
	promptWatcher    PromptWatcher
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace the analysis pipeline on stderr")
}

// SetServices injects the services used by commands.
func SetServices(s *Services) {
	nutritionService = s.Nutrition
	catalogService = s.Catalog
	barcodeService = s.Barcode
	workoutService = s.Workout
	goalService = s.Goals
	settingsService = s.Settings
	promptWatcher = s.Prompts
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
