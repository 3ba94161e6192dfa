package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/aikcal/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/aikcal/internal/core/domain"
	"github.com/custodia-labs/aikcal/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the JSON HTTP API.

Routes:
  GET  /health
  POST /api/analysis/meal
  POST /api/analysis/workout
  POST /api/goals/suggest
  GET  /api/products/barcode/{code}
  GET  /api/foods/{name}

Prompt templates in ~/.aikcal/prompts are reloaded when edited.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (default from settings)")
	rootCmd.AddCommand(serveCmd)
}

func serverConfig() (httpapi.Config, error) {
	settings := domain.DefaultAppSettings()
	if settingsService != nil {
		current, err := settingsService.Get()
		if err != nil {
			return httpapi.Config{}, fmt.Errorf("failed to get settings: %w", err)
		}
		settings = *current
	}

	cfg := httpapi.Config{
		Address:        settings.Server.Address,
		AllowedOrigins: settings.Server.AllowedOrigins,
		RequestTimeout: 4 * settings.Oracle.Timeout(),
		Version:        version,
	}
	if serveAddr != "" {
		cfg.Address = serveAddr
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	if nutritionService == nil {
		return errors.New("nutrition service not configured")
	}

	cfg, err := serverConfig()
	if err != nil {
		return err
	}

	server, err := httpapi.NewServer(&httpapi.Services{
		Nutrition: nutritionService,
		Catalog:   catalogService,
		Barcode:   barcodeService,
		Workout:   workoutService,
		Goals:     goalService,
	}, cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if promptWatcher != nil {
		go func() {
			if err := promptWatcher.Watch(ctx); err != nil {
				logger.Warn("prompt hot reload disabled: %v", err)
			}
		}()
	}

	cmd.Printf("HTTP API listening on %s\n", cfg.Address)
	return server.Run(ctx)
}
