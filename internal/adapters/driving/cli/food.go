package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/aikcal/internal/core/domain"
)

var foodJSON bool

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Inspect the food knowledge base",
}

var foodShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a stored product or dish",
	Long: `Show the product or dish stored under a name or alias, with its
nutrients per 100 g/ml and, for dishes, the base recipe.`,
	Args: cobra.ExactArgs(1),
	RunE: runFoodShow,
}

var seedCmd = &cobra.Command{
	Use:   "seed [file]",
	Short: "Import products and dishes from a JSON seed file",
	Long: `Import a JSON array of foods into the knowledge base.

Items with a "deconstruction" recipe become dishes; all others become products
with "nutrients_per_100g" or "nutrients_per_100ml". Names already stored are
skipped, so a seed file can be imported repeatedly.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func init() {
	foodShowCmd.Flags().BoolVar(&foodJSON, "json", false, "output as JSON")
	foodCmd.AddCommand(foodShowCmd)
	rootCmd.AddCommand(foodCmd)
	rootCmd.AddCommand(seedCmd)
}

func runFoodShow(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	entity, err := catalogService.Lookup(cmd.Context(), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		cmd.Printf("No food named %q is stored.\n", args[0])
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	if foodJSON {
		return printJSON(cmd, entity)
	}

	switch entity.Kind {
	case domain.FoodKindProduct:
		printProduct(cmd, entity.Product)
	case domain.FoodKindDish:
		printDish(cmd, entity.Dish)
	}
	return nil
}

func printProduct(cmd *cobra.Command, p *domain.Product) {
	per := "100 g"
	if p.State == domain.StateLiquid {
		per = "100 ml"
	}
	cmd.Printf("Product: %s\n", p.Name)
	cmd.Printf("  Aliases: %s\n", joinOrNone(p.Aliases))
	cmd.Printf("  State: %s\n", p.State)
	if p.AverageWeightG > 0 {
		cmd.Printf("  Piece weight: %g g\n", p.AverageWeightG)
	}
	cmd.Printf("  Per %s: %g kcal, P %g g, F %g g, C %g g\n",
		per, p.Nutrients.Calories, p.Nutrients.Protein, p.Nutrients.Fat, p.Nutrients.Carbs)
}

func printDish(cmd *cobra.Command, d *domain.Dish) {
	cmd.Printf("Dish: %s\n", d.Name)
	if d.Category != "" {
		cmd.Printf("  Category: %s\n", d.Category)
	}
	cmd.Printf("  Aliases: %s\n", joinOrNone(d.Aliases))
	cmd.Printf("  State: %s\n", d.State())
	cmd.Printf("  Base recipe (%g g):\n", d.BaseWeightG())
	for _, ing := range d.Ingredients {
		cmd.Printf("    - %s: %g g\n", ing.Product.Name, ing.WeightG)
	}
	n := d.RecipeNutrients()
	cmd.Printf("  Recipe total: %d kcal, P %.1f g, F %.1f g, C %.1f g\n",
		domain.RoundInt(n.Calories), n.Protein, n.Fat, n.Carbs)
}

func runSeed(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening seed file: %w", err)
	}
	defer f.Close()

	report, err := catalogService.Import(cmd.Context(), f)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("Imported %d products and %d dishes (%d skipped).\n",
		report.ProductsCreated, report.DishesCreated, report.Skipped)
	if len(report.Failed) > 0 {
		cmd.Printf("Failed: %s\n", joinOrNone(report.Failed))
	}
	return nil
}
