package cmd

import (
	"github.com/spf13/cobra"
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Run a catalog crawl to completion",
	Long: `Crawl fetches the site's landing page, persists the main-menu
categories, expands the category tree breadth-first and finally scrapes
product summaries from every leaf category page.`,
	RunE: runCrawl,
}

func init() {
	crawlCmd.Flags().IntP("roots", "n", 0, "Expand only the first N root categories (0=all)")
	crawlCmd.Flags().Bool("show-config", false, "Display current configuration in YAML format and exit")
	rootCmd.AddCommand(crawlCmd)
}

func runCrawl(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if show, _ := cmd.Flags().GetBool("show-config"); show {
		return showCurrentConfig(cfg)
	}

	rootLimit, err := cmd.Flags().GetInt("roots")
	if err != nil {
		return err
	}
	if rootLimit == 0 {
		rootLimit = cfg.RootLimit
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	run := newRunner(cfg, store)
	return run(cmd.Context(), rootLimit)
}
