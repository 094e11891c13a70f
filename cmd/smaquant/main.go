package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smaquant/smaquant/internal/collector"
	"github.com/smaquant/smaquant/internal/collector/csvfile"
	"github.com/smaquant/smaquant/internal/collector/yahoo"
	"github.com/smaquant/smaquant/internal/config"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "smaquant",
	Short: "smaquant - SMA crossover backtesting engine",
	Long: `smaquant backtests a dual SMA crossover strategy against daily
close prices and compares it with a buy-and-hold benchmark.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

// loadConfig reads the configured file or falls back to defaults.
func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Defaults(), nil
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// buildProvider selects the price provider from configuration.
func buildProvider(cfg *config.Config) (collector.Provider, error) {
	reg := collector.NewRegistry()
	reg.Register(yahoo.New())
	if cfg.Provider.CSVPath != "" {
		reg.Register(csvfile.New(cfg.Provider.CSVPath))
	}

	p, ok := reg.Get(cfg.Provider.Name)
	if !ok {
		if cfg.Provider.Name == "csv" {
			return nil, fmt.Errorf("csv provider requires a file path")
		}
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider.Name)
	}
	return p, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
