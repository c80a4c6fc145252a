package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tiags/rfd-radar/internal/config"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "rfd-radar",
	Short: "Watch the RFD trending listing and alert on high-engagement deals",
	Long: `rfd-radar inspects the RedFlagDeals trending listing, scores each
thread by its upvote/reply ratio, and raises a desktop notification for
newly seen threads above the configured threshold. It is meant to run once
per scheduler tick (cron); durable state in a local SQLite file keeps
repeated runs idempotent.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// loadConfig pulls in a .env file if present, then reads the environment.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()
	return config.Load()
}

// setupLogger installs the process-wide slog logger. Output goes to the
// configured log file, falling back to stderr when the file can't be opened
// or no path is configured.
func setupLogger(logPath string) func() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	if logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err == nil {
			if f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
				w = f
				closer = func() { f.Close() }
			} else {
				fmt.Fprintf(os.Stderr, "cannot open log file %s, logging to stderr: %v\n", logPath, err)
			}
		}
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return closer
}
