package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smaquant/smaquant/internal/api"
	"github.com/smaquant/smaquant/internal/api/handler"
	"github.com/smaquant/smaquant/internal/api/job"
	"github.com/smaquant/smaquant/internal/backtest"
	"github.com/smaquant/smaquant/internal/logger"
	"github.com/smaquant/smaquant/internal/metrics"
	"github.com/smaquant/smaquant/internal/narrative/factory"
	"github.com/smaquant/smaquant/internal/storage/archive"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the backtest API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfgFile == "" {
		log.Warn("no config file specified, using defaults")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	provider, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	bt := backtest.New(provider, log)
	jobStore := job.NewStore(cfg.Server.MaxJobs, time.Duration(cfg.Server.JobTTLHours)*time.Hour)

	gen, err := factory.New(cfg.Narrative)
	if err != nil {
		return fmt.Errorf("creating narrative generator: %w", err)
	}

	opts := []handler.Option{handler.WithNarrator(gen)}

	var reg *metrics.Registry
	if cfg.Metrics.Enabled {
		reg = metrics.NewRegistry()
		opts = append(opts, handler.WithMetrics(reg))
	}

	if cfg.Archive.Enabled {
		var store archive.Storage
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
			return fmt.Errorf("creating archive backend: %w", err)
		}
		opts = append(opts, handler.WithArchiver(archive.NewResults(store)))
	}

	h := handler.NewBacktestHandler(jobStore, bt,
		handler.WindowDefaults{Short: cfg.Backtest.ShortWindow, Long: cfg.Backtest.LongWindow},
		log, opts...)

	log.Info("starting smaquant server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("provider", provider.Name()),
	)

	server, err := api.NewServer(api.Config{
		Host:        cfg.Server.Host,
		Port:        cfg.Server.Port,
		APIKey:      cfg.Server.APIKey,
		MetricsPath: cfg.Metrics.Path,
	}, api.Dependencies{
		Backtest: h,
		Metrics:  reg,
	}, log)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	go func() {
		if err := server.Start(); err != nil {
			log.Error("server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down smaquant server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}
