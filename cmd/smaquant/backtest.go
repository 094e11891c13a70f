package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smaquant/smaquant/internal/backtest"
	"github.com/smaquant/smaquant/internal/config"
	"github.com/smaquant/smaquant/internal/logger"
	"github.com/smaquant/smaquant/internal/narrative/factory"
	"github.com/smaquant/smaquant/internal/storage/archive"
)

var (
	backtestSymbol   string
	backtestFrom     string
	backtestTo       string
	backtestShort    int
	backtestLong     int
	backtestProvider string
	backtestCSV      string
	backtestArchive  bool
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run an SMA crossover backtest",
	Long:  "Fetch daily closes for a symbol, run the dual SMA crossover strategy and print performance reports",
	RunE:  runBacktest,
}

func init() {
	backtestCmd.Flags().StringVar(&backtestSymbol, "symbol", "", "Symbol to backtest (required)")
	backtestCmd.Flags().StringVar(&backtestFrom, "from", "", "Start date YYYY-MM-DD (required)")
	backtestCmd.Flags().StringVar(&backtestTo, "to", "", "End date YYYY-MM-DD (required)")
	backtestCmd.Flags().IntVar(&backtestShort, "short", 0, "Short SMA window (default from config)")
	backtestCmd.Flags().IntVar(&backtestLong, "long", 0, "Long SMA window (default from config)")
	backtestCmd.Flags().StringVar(&backtestProvider, "provider", "", "Price provider: yahoo or csv (default from config)")
	backtestCmd.Flags().StringVar(&backtestCSV, "csv", "", "CSV file path for the csv provider")
	backtestCmd.Flags().BoolVar(&backtestArchive, "archive", false, "Archive the result after the run")

	backtestCmd.MarkFlagRequired("symbol")
	backtestCmd.MarkFlagRequired("from")
	backtestCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(backtestCmd)
}

func runBacktest(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Flags override the configured provider and windows
	if backtestProvider != "" {
		cfg.Provider.Name = backtestProvider
	}
	if backtestCSV != "" {
		cfg.Provider.CSVPath = backtestCSV
	}

	fromDate, err := time.Parse("2006-01-02", backtestFrom)
	if err != nil {
		return fmt.Errorf("invalid from date format (expected YYYY-MM-DD): %w", err)
	}
	toDate, err := time.Parse("2006-01-02", backtestTo)
	if err != nil {
		return fmt.Errorf("invalid to date format (expected YYYY-MM-DD): %w", err)
	}

	req := backtest.Request{
		Symbol:      backtestSymbol,
		Start:       fromDate,
		End:         toDate,
		ShortWindow: backtestShort,
		LongWindow:  backtestLong,
	}
	if req.ShortWindow == 0 && req.LongWindow == 0 {
		req.ShortWindow = cfg.Backtest.ShortWindow
		req.LongWindow = cfg.Backtest.LongWindow
	}

	provider, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	bt := backtest.New(provider, log)
	result, err := bt.Run(cmd.Context(), req)
	if err != nil {
		return err
	}

	fmt.Println(result.BuyHold.String())
	fmt.Println()
	fmt.Println(result.Strategy.String())

	if len(result.Markers) > 0 {
		fmt.Println()
		fmt.Println("Crossover events:")
		for _, m := range result.Markers {
			rec := result.Records[m.Index]
			fmt.Printf("  %s  %-4s @ %.2f\n",
				rec.Date.Format("2006-01-02"), m.Action, rec.Close)
		}
	}

	gen, err := factory.New(cfg.Narrative)
	if err != nil {
		return err
	}
	summary, err := gen.Summarize(cmd.Context(), result)
	if err != nil {
		log.Warn("narrative generation failed", zap.Error(err))
	} else {
		fmt.Println()
		fmt.Println(summary)
	}

	if backtestArchive {
		path, err := archiveResult(cmd.Context(), cfg, result)
		if err != nil {
			return fmt.Errorf("archiving result: %w", err)
		}
		fmt.Printf("\nResult archived to %s\n", path)
	}

	return nil
}

// archiveResult stores the result on the configured archive backend.
func archiveResult(ctx context.Context, cfg *config.Config, result *backtest.Result) (string, error) {
	var store archive.Storage
	var err error

	switch cfg.Archive.Type {
	case "s3":
		store, err = archive.NewS3(archive.S3Config{
			Bucket:    cfg.Archive.S3.Bucket,
			Endpoint:  cfg.Archive.S3.Endpoint,
			Region:    cfg.Archive.S3.Region,
			AccessKey: cfg.Archive.S3.AccessKey,
			SecretKey: cfg.Archive.S3.SecretKey,
			Prefix:    cfg.Archive.S3.Prefix,
		})
	default:
		store, err = archive.NewLocalFS(cfg.Archive.Path)
	}
	if err != nil {
		return "", err
	}

	return archive.NewResults(store).SaveResult(ctx, result)
}
