package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/caserun/internal/history"
)

// NewHistoryCommand creates the history command, which lists recorded runs
// from the opt-in history database.
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "history",
		Short:        "Show recorded run summaries",
		Args:         noPositionalArgs,
		RunE:         showHistory,
		SilenceUsage: true,
	}

	cmd.Flags().String("config", "", "Path to config file (default: caserun.yaml)")
	cmd.Flags().Int("limit", 10, "Maximum number of runs to show")

	return cmd
}

// showHistory implements the history command.
func showHistory(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	if limit < 1 {
		return NewUsageErrorf("--limit must be a positive integer, got %d", limit)
	}

	if _, err := os.Stat(cfg.History.DBPath); os.IsNotExist(err) {
		return fmt.Errorf("no run history recorded yet (expected database at %s)", cfg.History.DBPath)
	}

	store, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.RecentRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
		return nil
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Last %d run(s):\n", len(records))
	for _, r := range records {
		failed := r.Total - r.Passed
		fmt.Fprintf(w, "  %s  %s  total=%d passed=%d failed=%d skipped=%d  (%s)\n",
			r.Started.Local().Format(time.DateTime), r.ID,
			r.Total, r.Passed, failed, r.Skipped,
			r.Duration.Round(time.Millisecond))
	}

	return nil
}
