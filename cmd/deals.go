package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tiags/rfd-radar/internal/models"
	"github.com/tiags/rfd-radar/internal/storage"
)

var dealsCmd = &cobra.Command{
	Use:   "deals",
	Short: "Print stored deals ordered by descending ratio",
	RunE:  runDeals,
}

func init() {
	rootCmd.AddCommand(dealsCmd)
}

func runDeals(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening deals database %s: %w", cfg.DBPath, err)
	}
	defer store.Close()

	deals, err := store.DealsByRatio(context.Background())
	if err != nil {
		return err
	}
	if len(deals) == 0 {
		fmt.Println("No deals stored.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tRATIO\tUPVOTES\tREPLIES\tTITLE\tLINK")
	for i, d := range deals {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\t%s\n",
			i+1, models.FormatRatio(d.Ratio), d.Upvotes, d.Replies, d.Title, d.URL)
	}
	return w.Flush()
}
