// Package cmd provides the command-line interface for catacrawl.
// It handles command parsing, configuration loading and wiring of the
// crawl pipeline.
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"catacrawl/internal/config"
	"catacrawl/internal/logging"
)

var (
	cfgFile   string
	version   string
	buildTime string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "catacrawl",
	Short: "An e-commerce catalog crawler",
	Long: `Catacrawl walks an e-commerce catalog site breadth-first:
it discovers the category hierarchy from the landing-page menu, scrapes
product summaries from leaf category pages, and persists both into SQLite.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets version information for the CLI
func SetVersionInfo(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./catacrawl.yml)")

	// Shared crawl configuration flags
	rootCmd.PersistentFlags().StringP("site", "s", "https://tiki.vn", "Base URL of the catalog site")
	rootCmd.PersistentFlags().DurationP("delay", "r", 1*time.Second, "Fixed delay between requests")
	rootCmd.PersistentFlags().DurationP("timeout", "t", 30*time.Second, "HTTP request timeout")
	rootCmd.PersistentFlags().StringP("user-agent", "u", "catacrawl/1.0", "HTTP User-Agent header")
	rootCmd.PersistentFlags().StringP("database", "d", "./catalog.db", "Path to SQLite database file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-file", "", "Optional log file path (rotated by size)")

	bindFlags := []struct {
		viperKey string
		flagName string
	}{
		{"site_url", "site"},
		{"request_delay", "delay"},
		{"request_timeout", "timeout"},
		{"user_agent", "user-agent"},
		{"database_path", "database"},
		{"log_level", "log-level"},
		{"log_file", "log-file"},
	}

	for _, bind := range bindFlags {
		if err := viper.BindPFlag(bind.viperKey, rootCmd.PersistentFlags().Lookup(bind.flagName)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to bind flag %s: %v\n", bind.flagName, err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("catacrawl")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("CATA")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig merges defaults, config file, environment and flags into a
// validated Config, and installs the configured logger.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := logging.Setup(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	return cfg, nil
}

func showCurrentConfig(cfg *config.Config) error {
	yamlData, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration to YAML: %w", err)
	}

	fmt.Printf("# Current catacrawl configuration\n")
	fmt.Printf("# Config file search path: ./catacrawl.yml, env prefix: CATA_\n\n")
	fmt.Print(string(yamlData))
	return nil
}
