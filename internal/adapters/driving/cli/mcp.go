package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/aikcal/internal/adapters/driving/mcp"
	"github.com/custodia-labs/aikcal/internal/core/domain"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose meal analysis to AI assistants",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server exposes the analyze_meal, lookup_barcode, suggest_goals and
estimate_workout tools, plus stored foods as aikcal://foods/{name} resources.

By default, the server communicates over stdio using JSON-RPC.
Use --port to serve over streamable HTTP instead.

Examples:
  # Stdio mode (default)
  aikcal mcp serve

  # HTTP mode
  aikcal mcp serve --port 8090

Desktop assistant configuration:
  {
    "mcpServers": {
      "aikcal": {
        "command": "/path/to/aikcal",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func mcpPorts() *mcp.Ports {
	return &mcp.Ports{
		Nutrition: nutritionService,
		Catalog:   catalogService,
		Barcode:   barcodeService,
		Workout:   workoutService,
		Goals:     goalService,
	}
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if port < 0 || port > 65535 {
		return fmt.Errorf("%w: port %d out of range", domain.ErrInvalidInput, port)
	}
	if nutritionService == nil {
		return fmt.Errorf("meal analysis is not configured: %w", mcp.ErrMissingNutritionService)
	}

	server, err := mcp.NewServer(mcpPorts(), mcp.WithVersion(version))
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		cmd.Printf("MCP endpoint: http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
