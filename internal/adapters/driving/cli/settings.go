package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/aikcal/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the AI oracle, the resolver and the HTTP server.

Settings are stored in ~/.aikcal/config.toml. API keys may also be supplied
through AIKCAL_ORACLE_API_KEY or the provider's own environment variable.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsOracleCmd = &cobra.Command{
	Use:   "oracle",
	Short: "Configure the AI oracle",
	Long: `Configure the AI provider used to read meal photos and learn unknown foods.
The selected model must accept image input for photo analysis.`,
	RunE: runSettingsOracle,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsOracleCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	oracle := settings.Oracle
	cmd.Println("[Oracle]")
	cmd.Printf("  Provider: %s\n", oracle.Provider.Description())
	cmd.Printf("  Model: %s\n", oracle.Model)
	if oracle.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", oracle.BaseURL)
	}
	if oracle.Provider.RequiresAPIKey() {
		if oracle.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(oracle.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	cmd.Printf("  Timeout: %s\n", oracle.Timeout())
	cmd.Printf("  Rate limit: %g/s (burst %d)\n", oracle.RequestsPerSecond, oracle.Burst)
	status := "configured"
	if !oracle.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Resolver]")
	cmd.Printf("  Max concurrent learning: %d\n", settings.Resolver.MaxConcurrentLearning)
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Address)
	cmd.Printf("  Allowed origins: %s\n", joinOrNone(settings.Server.AllowedOrigins))
	cmd.Println()

	cmd.Println("[Open Food Facts]")
	cmd.Printf("  Base URL: %s\n", settings.OpenFoodFacts.BaseURL)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'aikcal settings oracle' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsOracle(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Select Oracle Provider")
	providers := domain.AllOracleProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	selectedProvider := providers[idx-1]

	defaultModel := domain.DefaultOracleModels()[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if selectedProvider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readPassword(cmd.InOrStdin(), reader)
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	if err := settingsService.SetOracleProvider(selectedProvider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure oracle: %w", err)
	}

	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateOracleConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("oracle configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("Oracle configured: %s (%s)\n", selectedProvider.Description(), model)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo when in is a terminal, otherwise falls
// back to a plain line read.
func readPassword(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
