package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"clip-catalog/core/config"
	"clip-catalog/core/database"
	"clip-catalog/core/logger"
	"clip-catalog/core/storage"
	"clip-catalog/feature/clips"
	"clip-catalog/feature/library"
	"clip-catalog/feature/library/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the sync command
	syncRoot  string
	syncApply bool
	syncYes   bool
)

// syncCmd reconciles the media folder against the catalog.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile the media folder against the clip catalog",
	Long: `Scan the media root folder, diff it against the catalog, and report
every file as new, missing, matched or error.

With --apply, the full diff is executed: new files are cataloged and
missing entries removed. Individual failures never abort the batch.

Examples:
  # Report only
  clip-catalog sync --root /media/videos

  # Apply the full diff (with interactive confirmation)
  clip-catalog sync --root /media/videos --apply

  # Apply non-interactively
  clip-catalog sync --apply --yes`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncRoot, "root", "", "Media root folder (defaults to the configured library root)")
	syncCmd.Flags().BoolVar(&syncApply, "apply", false, "Apply the full diff (add all new, remove all missing)")
	syncCmd.Flags().BoolVar(&syncYes, "yes", false, "Auto-confirm destructive actions (non-interactive)")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	store := clips.NewStore(db)
	if err := store.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	svc := library.NewFeature(store, client, cfg.Storage.Bucket, l, cfg.Library).Service()

	// Step 1: Preview (always runs)
	l.Info("Scanning media library", zap.String("root", syncRoot))
	preview, err := svc.Preview(ctx, syncRoot)
	if err != nil {
		return fmt.Errorf("failed to preview reconciliation: %w", err)
	}

	printPreviewReport(l, preview)

	if !syncApply {
		l.Info("No actions requested. Use --apply to sync the full diff.")
		return nil
	}

	if preview.NewFilesCount == 0 && preview.MissingFilesCount == 0 {
		l.Info("Catalog is already in sync.")
		return nil
	}

	if !confirmSync() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	// Step 2: Apply the full diff
	l.Info("Applying sync...")
	result, err := svc.ApplyAll(ctx, syncRoot)
	if err != nil {
		return fmt.Errorf("failed to apply sync: %w", err)
	}

	l.Info("Sync completed",
		zap.Int("total_scanned", result.TotalScanned),
		zap.Int("added", result.TotalAdded),
		zap.Int("removed", result.TotalRemoved),
		zap.Int("errors", len(result.Errors)),
	)
	for _, failure := range result.Errors {
		l.Warn("Sync item failed",
			zap.String("path", failure.FilePath),
			zap.Uint("clip_id", failure.ClipID),
			zap.String("error", failure.ErrorMessage),
		)
	}

	return nil
}

// printPreviewReport prints a formatted reconciliation report using logger.
func printPreviewReport(l *zap.Logger, preview *library.PreviewResponse) {
	l.Info("Reconciliation report",
		zap.String("root", preview.RootFolderPath),
		zap.Int("total_scanned", preview.TotalScanned),
		zap.Int("new", preview.NewFilesCount),
		zap.Int("missing", preview.MissingFilesCount),
		zap.Int("matched", preview.MatchedFilesCount),
		zap.Int("errors", preview.ErrorCount),
	)

	for _, warning := range preview.Warnings {
		l.Warn("Scan warning", zap.String("warning", warning))
	}

	// Show a sample of actionable items (max 5 for logger)
	maxShow := 5
	shown := 0
	for _, item := range preview.Items {
		if item.Status == reconcile.StatusMatched {
			continue
		}
		if shown == maxShow {
			l.Info("Additional items not shown",
				zap.Int("count", preview.NewFilesCount+preview.MissingFilesCount+preview.ErrorCount-maxShow))
			break
		}
		l.Info("Sample item",
			zap.String("status", string(item.Status)),
			zap.String("path", item.FilePath),
			zap.String("error", item.ErrorMessage),
		)
		shown++
	}
}

// confirmSync prompts the user for confirmation or uses the --yes flag.
func confirmSync() bool {
	if syncYes {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to apply the diff: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
