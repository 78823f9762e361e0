package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for caserun.
// Running the root command itself performs the full parallel path:
// discovery, planning, bounded execution, and summary.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "caserun",
		Short: "Bounded-concurrency runner for simulation case suites",
		Long: `Caserun discovers every case entry script under a suite root (excluding
the reserved template case), runs each case as an isolated external process
from its own directory, and reports a deterministic pass/fail summary.

Cases are opaque to the harness: it only observes their exit codes. Worker
count comes from --jobs, the config file, or host parallelism detection, and
is always clamped to the number of discovered cases.`,
		Version: Version,
		Args:    noPositionalArgs,
		RunE:    runParallel,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	addCommonFlags(cmd)
	cmd.Flags().IntP("jobs", "j", 0, "Number of concurrent workers (default: host parallelism, clamped to case count)")

	// Flag parse failures are usage errors (exit 2), inherited by subcommands.
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	// Add subcommands
	cmd.AddCommand(NewSeqCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}

// addCommonFlags registers the flags shared by the parallel and sequential
// commands.
func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("list", "l", false, "List discovered cases and exit")
	cmd.Flags().BoolP("dry-run", "n", false, "Show the commands that would run without executing them")
	cmd.Flags().StringP("root", "r", "", "Suite root directory (overrides config)")
	cmd.Flags().String("config", "", "Path to config file (default: caserun.yaml)")
	cmd.Flags().BoolP("verbose", "v", false, "Show case titles and descriptor details")
}

// noPositionalArgs rejects stray positional arguments as usage errors so
// they exit 2 like bad flags do.
func noPositionalArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return NewUsageErrorf("unexpected argument: %s", args[0])
	}
	return nil
}
