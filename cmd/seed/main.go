package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/doorhan-crimea/doorhan-backend/config"
	"github.com/doorhan-crimea/doorhan-backend/internal/db"
	"github.com/doorhan-crimea/doorhan-backend/internal/importer"
	"github.com/doorhan-crimea/doorhan-backend/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	replace   bool
	assumeYes bool
	migrate   bool
)

var rootCmd = &cobra.Command{
	Use:   "seed <xlsx_file_path>",
	Short: "Import the product catalog from an XLSX workbook",
	Long: `Import categories, products and their specification tables from an XLSX workbook.

The workbook needs a "categories" sheet (id, name, slug, description, image, category)
and a "products" sheet (id, category_id, name, slug, title, description, short_description,
content, image, sku, price). An optional "specs" sheet (product_id, name, value, unit,
sort_order) fills the specification tables.

Examples:
  seed catalog.xlsx               # add what is missing, skip existing slugs
  seed catalog.xlsx --replace -y  # wipe the catalog and import from scratch`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(args[0])
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().BoolVar(&replace, "replace", false, "Delete every category and product before importing")
	rootCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
	rootCmd.Flags().BoolVar(&migrate, "migrate", true, "Run database migrations before importing")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runImport(path string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Initialize(logger.Config{
		Level:       "info",
		Format:      "console",
		Output:      os.Stderr,
		EnableColor: true,
	})

	fmt.Printf("Reading XLSX file: %s\n", path)
	catalog, err := importer.ReadWorkbook(path)
	if err != nil {
		return err
	}
	fmt.Printf("Categories: %d, products: %d\n", len(catalog.Categories), len(catalog.Products))

	if !assumeYes && !confirm(replace) {
		fmt.Println("Import cancelled.")
		return nil
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if migrate {
		if err := db.Migrate(); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	result, err := importer.Import(db.GetDB(), catalog, importer.Options{Replace: replace})
	if err != nil {
		return err
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("  Categories created: %d (existing: %d)\n", result.CategoriesCreated, result.CategoriesSkipped)
	fmt.Printf("  Products created:   %d (skipped: %d)\n", result.ProductsCreated, result.ProductsSkipped)
	return nil
}

func confirm(replace bool) bool {
	prompt := "Do you want to proceed with the import? (yes/no): "
	if replace {
		prompt = "This deletes the current catalog. Proceed? (yes/no): "
	}
	fmt.Print(prompt)

	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "yes" || answer == "y"
}
