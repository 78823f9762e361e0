package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harrison/caserun/internal/config"
	"github.com/harrison/caserun/internal/discovery"
	"github.com/harrison/caserun/internal/filelock"
	"github.com/harrison/caserun/internal/history"
	"github.com/harrison/caserun/internal/logger"
	"github.com/harrison/caserun/internal/models"
	"github.com/harrison/caserun/internal/plan"
	"github.com/harrison/caserun/internal/runner"
)

// resolveConfig loads the config file, merges CLI flag overrides, and
// validates the result. jobsFlag handling lives here so a bad --jobs is
// rejected with a usage error before any discovery happens.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.DefaultConfigFile
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var rootPtr *string
	if cmd.Flags().Changed("root") {
		rootFlag, _ := cmd.Flags().GetString("root")
		rootPtr = &rootFlag
	}

	var jobsPtr *int
	if cmd.Flags().Lookup("jobs") != nil && cmd.Flags().Changed("jobs") {
		jobsFlag, _ := cmd.Flags().GetInt("jobs")
		if jobsFlag < 1 {
			return nil, NewUsageErrorf("--jobs must be a positive integer, got %d", jobsFlag)
		}
		jobsPtr = &jobsFlag
	}

	cfg.MergeWithFlags(rootPtr, jobsPtr)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// discoverCases runs discovery with the resolved configuration and returns
// all cases (including disabled ones, for verbose listings).
func discoverCases(cfg *config.Config) ([]models.Case, error) {
	return discovery.Discover(cfg.Root, cfg.Entrypoint, cfg.Template)
}

// printList writes the discovered case listing. Verbose mode appends each
// case's title (descriptor name or README heading) and marks disabled cases.
func printList(w io.Writer, cases []models.Case, verbose bool) {
	fmt.Fprintf(w, "Discovered %d case(s):\n", len(cases))
	for _, c := range cases {
		line := fmt.Sprintf("  - %s", c.ID)
		if verbose {
			if title, ok := discovery.Title(c.Dir, c.Descriptor.Name); ok {
				line += fmt.Sprintf(" (%s)", title)
			}
			if c.Descriptor.Disabled {
				line += " [disabled]"
			}
		}
		fmt.Fprintln(w, line)
	}
}

// printDryRun writes the resolved plan with the literal command per case.
func printDryRun(w io.Writer, p models.Plan, mode string) {
	fmt.Fprintf(w, "[DRY-RUN] %d case(s) would run with %s:\n", len(p.Cases), mode)
	for _, c := range p.Cases {
		fmt.Fprintf(w, "  - %s (%s)\n", c.ID, c.CommandLine())
	}
}

// runParallel implements the root command: full discovery, planning, bounded
// parallel execution, and summary.
func runParallel(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	listFlag, _ := cmd.Flags().GetBool("list")
	dryRunFlag, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")

	all, err := discoverCases(cfg)
	if err != nil {
		return err
	}

	if listFlag {
		printList(cmd.OutOrStdout(), all, verbose)
		return nil
	}

	cases := discovery.Runnable(all)
	if len(cases) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "[WARN] No runnable case scripts were discovered under %s\n", cfg.Root)
		return nil
	}

	p := plan.Build(cases, cfg.Jobs)

	if dryRunFlag {
		printDryRun(cmd.OutOrStdout(), p, fmt.Sprintf("%d worker(s)", p.Jobs))
		return nil
	}

	absRoot, err := filepath.Abs(cfg.Root)
	if err != nil {
		return fmt.Errorf("failed to resolve suite root %s: %w", cfg.Root, err)
	}
	guard := filelock.NewGuard(absRoot)
	if err := guard.Acquire(); err != nil {
		return err
	}
	defer guard.Release()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.NewConsoleLogger(cmd.OutOrStdout(), cmd.ErrOrStderr())
	runID := uuid.NewString()
	log.Infof("Running %d case(s) with %d worker(s) (run %s)", len(p.Cases), p.Jobs, runID)

	pool := runner.NewPool(runner.NewInvoker(), log)
	collector := pool.Run(ctx, p, runID)
	summary := collector.Summary()

	log.Summary(summary)

	if cfg.History.Enabled {
		recordHistory(cmd, cfg, log, summary, collector.Outcomes())
	}

	if ctx.Err() != nil {
		// Propagate the interrupt as the conventional interrupted status
		// instead of a normal summary exit.
		return &ExitCodeError{Code: ExitInterrupted, Err: errors.New("run interrupted")}
	}

	if summary.ExitCode() != ExitOK {
		return &ExitCodeError{
			Code: ExitFailures,
			Err:  fmt.Errorf("%d of %d case(s) did not pass", len(summary.NonSuccess), summary.Total),
		}
	}

	return nil
}

// recordHistory persists the run to the history database. Failures are
// warnings: a broken history store must never turn a passing run into a
// failing one.
func recordHistory(cmd *cobra.Command, cfg *config.Config, log *logger.ConsoleLogger, summary models.Summary, outcomes []models.Outcome) {
	store, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		log.Warnf("history disabled for this run: %v", err)
		return
	}
	defer store.Close()

	if err := store.RecordRun(cmd.Context(), summary, outcomes); err != nil {
		log.Warnf("failed to record run history: %v", err)
	}
}
