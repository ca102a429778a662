package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all persisted categories and products",
	Long: `Reset wipes both tables. This is an administrative operation,
not part of crawling; the next crawl starts from an empty catalog.`,
	RunE: runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	// Products reference categories, so they go first.
	if err := store.DeleteAllProducts(); err != nil {
		return err
	}
	if err := store.DeleteAllCategories(); err != nil {
		return err
	}

	fmt.Println("Catalog reset: all categories and products deleted.")
	return nil
}
