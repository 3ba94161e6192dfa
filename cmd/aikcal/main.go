// Command aikcal estimates calories and macros of meals.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/aikcal/internal/adapters/driven/config/file"
	"github.com/custodia-labs/aikcal/internal/adapters/driven/openfoodfacts"
	"github.com/custodia-labs/aikcal/internal/adapters/driven/oracle"
	"github.com/custodia-labs/aikcal/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/aikcal/internal/adapters/driving/cli"
	"github.com/custodia-labs/aikcal/internal/core/services"
	"github.com/custodia-labs/aikcal/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal; keys may come from the real environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("failed to load .env: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return err
	}
	settingsService := services.NewSettingsService(configStore, oracle.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read settings: %v\n", err)
		return err
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open food database: %v\n", err)
		return err
	}
	defer store.Close()

	prompts, err := file.NewPromptStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open prompt store: %v\n", err)
		return err
	}

	// Commands that need the oracle report ErrOracleUnavailable when it is
	// missing; the rest of the CLI keeps working.
	ai, err := oracle.CreateOracle(&settings.Oracle)
	if err != nil {
		logger.Warn("oracle disabled: %v", err)
		ai = nil
	}
	if ai != nil {
		defer ai.Close()
	}

	catalog := openfoodfacts.NewClient(openfoodfacts.Config{BaseURL: settings.OpenFoodFacts.BaseURL})

	cli.SetVersion(version)
	cli.SetServices(&cli.Services{
		Nutrition: services.NewNutritionService(store, ai, prompts, settings.Resolver),
		Catalog:   services.NewCatalogService(store),
		Barcode:   services.NewBarcodeService(catalog),
		Workout:   services.NewWorkoutService(ai, prompts),
		Goals:     services.NewGoalService(),
		Settings:  settingsService,
		Prompts:   prompts,
	})

	return cli.Execute(ctx)
}
