package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/storage"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"

	"github.com/thiagorir/sinistros-transitos-br/internal/config"
	"github.com/thiagorir/sinistros-transitos-br/internal/ingest"
	"github.com/thiagorir/sinistros-transitos-br/internal/ledger"
	"github.com/thiagorir/sinistros-transitos-br/internal/logging"
	"github.com/thiagorir/sinistros-transitos-br/internal/stage"
	"github.com/thiagorir/sinistros-transitos-br/internal/warehouse"
)

func main() {
	dir := flag.String("dir", "", "directory containing the CSV files to ingest")
	flag.Parse()

	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	if *dir == "" {
		slog.Error("missing required -dir flag")
		flag.Usage()
		os.Exit(2)
	}
	if info, err := os.Stat(*dir); err != nil || !info.IsDir() {
		slog.Error("source path is not a directory", "dir", *dir)
		os.Exit(2)
	}

	// A hung collaborator call blocks the run; SIGINT/SIGTERM at least
	// cancels the in-flight API call.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var opts []option.ClientOption
	if cfg.GCP.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.GCP.CredentialsFile))
	}

	storageClient, err := storage.NewClient(ctx, opts...)
	if err != nil {
		slog.Error("failed to create storage client", "error", err)
		os.Exit(1)
	}
	defer storageClient.Close()

	bqClient, err := bigquery.NewClient(ctx, cfg.GCP.ProjectID, opts...)
	if err != nil {
		slog.Error("failed to create bigquery client", "error", err)
		os.Exit(1)
	}
	defer bqClient.Close()

	slog.Info("connected to GCP", "project", cfg.GCP.ProjectID)

	wh := warehouse.NewClient(bqClient, cfg.BigQuery.Location)
	deps := ingest.Deps{
		Catalog: wh,
		Loader:  wh,
		Store:   stage.NewGCSStore(storageClient, cfg.Stage.Bucket, cfg.Stage.Prefix),
	}

	if cfg.Ledger.DatabaseURL != "" {
		led, err := ledger.Open(ctx, cfg.Ledger.DatabaseURL)
		if err != nil {
			slog.Error("failed to open ingest ledger", "error", err)
			os.Exit(1)
		}
		defer led.Close()
		deps.History = led
		slog.Info("ingest ledger enabled")
	}

	pipeline := ingest.New(cfg.BigQuery.DatasetID, cfg.Infer.SampleRows, deps)

	sum, err := pipeline.ProcessDirectory(ctx, *dir)
	if err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}

	slog.Info("processing summary",
		"attempted", sum.Attempted,
		"loaded", sum.Loaded,
		"skipped", sum.Skipped,
		"failed", sum.Failed,
	)
	if sum.Failed > 0 {
		os.Exit(1)
	}
}
