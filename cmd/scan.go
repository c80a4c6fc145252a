package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tiags/rfd-radar/internal/notifier"
	"github.com/tiags/rfd-radar/internal/processor"
	"github.com/tiags/rfd-radar/internal/scraper"
	"github.com/tiags/rfd-radar/internal/storage"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run one fetch-evaluate-notify cycle",
	RunE:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	closeLog := setupLogger(cfg.LogPath)
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to open deals database", "path", cfg.DBPath, "error", err)
		return err
	}
	defer store.Close()

	s := scraper.New(cfg.TrendingURL, cfg.HTTPTimeout, scraper.LoadConfig())
	p := processor.New(store, notifier.NewDesktop(), s, cfg)

	if err := p.Run(ctx); err != nil {
		// A failed fetch is logged and the process exits cleanly; the next
		// scheduled invocation is the retry.
		var netErr *scraper.NetworkError
		if errors.As(err, &netErr) {
			slog.Error("Fetch failed, run aborted", "error", err)
			return nil
		}
		slog.Error("Run failed", "error", err)
		return err
	}
	return nil
}
