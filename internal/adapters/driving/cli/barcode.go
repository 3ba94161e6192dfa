package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/aikcal/internal/core/domain"
)

var barcodeJSON bool

var barcodeCmd = &cobra.Command{
	Use:   "barcode [code]",
	Short: "Look up a packaged product by barcode",
	Long:  `Look up per-100 g nutrients of a packaged product in Open Food Facts.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runBarcode,
}

func init() {
	barcodeCmd.Flags().BoolVar(&barcodeJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(barcodeCmd)
}

func runBarcode(cmd *cobra.Command, args []string) error {
	if barcodeService == nil {
		return errors.New("barcode service not configured")
	}

	product, err := barcodeService.Lookup(cmd.Context(), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		cmd.Printf("No product found for barcode %s.\n", args[0])
		return nil
	}
	if err != nil {
		return fmt.Errorf("barcode lookup failed: %w", err)
	}

	if barcodeJSON {
		return printJSON(cmd, product)
	}

	n := product.Nutrients
	cmd.Printf("%s (%s)\n", product.Name, product.Barcode)
	cmd.Printf("  Per 100 g: %g kcal, P %g g, F %g g, C %g g\n", n.Calories, n.Protein, n.Fat, n.Carbs)
	cmd.Printf("  Source: %s\n", product.Source)
	return nil
}
