package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/hshore29/FacebookActivityGrapher/internal/charts"
	"github.com/hshore29/FacebookActivityGrapher/internal/config"
	"github.com/hshore29/FacebookActivityGrapher/internal/export"
	"github.com/hshore29/FacebookActivityGrapher/internal/logger"
	"github.com/hshore29/FacebookActivityGrapher/internal/storage"
	"github.com/hshore29/FacebookActivityGrapher/internal/telegram"
	"github.com/hshore29/FacebookActivityGrapher/internal/titles"
)

var (
	configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")
	reset      = flag.Bool("reset", false, "Clear stored activity records before ingesting")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Setup logging with level support
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("Configuration loaded from %s", *configPath)

	runID := uuid.NewString()
	startTime := time.Now()
	logger.Info("Starting ingest run %s (export: %s)", runID, cfg.Export.Root)

	// Initialize title resolution and storage
	resolver := titles.New(cfg.Export.SelfName)
	store, err := storage.Open(cfg.Storage.DBPath, resolver)
	if err != nil {
		logger.Fatal("Failed to open storage: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close storage: %v", err)
		}
	}()

	if *reset {
		if err := store.Clear(); err != nil {
			logger.Fatal("Failed to clear storage: %v", err)
		}
		logger.Info("Cleared stored activity records")
	}

	// Inserts are not idempotent; a partially loaded store must be cleared
	// before re-running, never appended to.
	count, err := store.Count()
	if err != nil {
		logger.Fatal("Failed to check storage: %v", err)
	}
	if count > 0 {
		logger.Fatal("Storage already holds %d activity records; re-run with -reset to start from an empty store", count)
	}

	// Stage 1: walk the export and bulk-insert normalized records
	walker := export.NewWalker(cfg.Export.Root, cfg.Export.SelfName)
	inserted, err := store.BulkInsert(walker.Walk)
	if err != nil {
		logger.Fatal("Ingest failed: %v", err)
	}
	logger.Info("Inserted %d activity records", inserted)

	// Stage 2: backfill estimated friendship-start events
	estimated, err := store.DeriveEstimatedFriendships()
	if err != nil {
		logger.Fatal("Failed to derive estimated friendships: %v", err)
	}
	logger.Info("Derived %d estimated friendship records", estimated)

	// Stage 3: sync the friend table
	newFriends, err := store.SyncFriendTable()
	if err != nil {
		logger.Fatal("Failed to sync friend table: %v", err)
	}
	logger.Info("Added %d new friends", newFriends)

	// Classify any friends without a cohort
	if cfg.Cohorts.Prompt {
		if err := promptCohorts(store); err != nil {
			logger.Fatal("Cohort classification failed: %v", err)
		}
	}

	// Stage 4: materialize display dates, including for derived records
	if err := store.MaterializeDates(); err != nil {
		logger.Fatal("Failed to materialize dates: %v", err)
	}

	if cfg.Charts.Enabled {
		if err := renderCharts(store, cfg.Charts.OutDir); err != nil {
			logger.Fatal("Chart rendering failed: %v", err)
		}
		logger.Info("Charts written to %s", cfg.Charts.OutDir)
	}

	duration := time.Since(startTime)
	logger.Info("Run %s completed in %v", runID, duration)

	if cfg.Telegram.Enabled {
		client, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID,
			cfg.Telegram.MaxRetries, cfg.Telegram.RetryDelayBase)
		if err != nil {
			logger.Error("Failed to initialize Telegram client: %v", err)
			return
		}
		summary := telegram.Summary{
			RunID:            runID,
			Inserted:         inserted,
			EstimatedFriends: estimated,
			NewFriends:       newFriends,
			Duration:         duration,
		}
		if err := client.SendSummary(summary); err != nil {
			logger.Error("Failed to send Telegram summary: %v", err)
		} else {
			logger.Info("Sent Telegram run summary")
		}
	}
}

// promptCohorts asks for a free-text cohort label for every unclassified
// friend and stores the answer verbatim. EOF ends classification early;
// remaining friends stay unclassified until a later run.
func promptCohorts(store *storage.Storage) error {
	people, err := store.BlankCohorts()
	if err != nil {
		return err
	}
	if len(people) == 0 {
		return nil
	}

	fmt.Printf("Classify %d friends by cohort (Ctrl-D to stop):\n", len(people))
	scanner := bufio.NewScanner(os.Stdin)
	for _, person := range people {
		fmt.Printf("%s: ", person)
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		if err := store.SetCohort(person, scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// renderCharts runs the two aggregate queries and draws the standard charts.
func renderCharts(store *storage.Storage, outDir string) error {
	actions, err := store.ActionCounts()
	if err != nil {
		return err
	}
	deltas, err := store.FriendCohortDeltas()
	if err != nil {
		return err
	}
	renderer, err := charts.NewRenderer(outDir)
	if err != nil {
		return err
	}
	return renderer.RenderAll(actions, deltas)
}
