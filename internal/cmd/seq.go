package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harrison/caserun/internal/discovery"
	"github.com/harrison/caserun/internal/filelock"
	"github.com/harrison/caserun/internal/logger"
	"github.com/harrison/caserun/internal/models"
	"github.com/harrison/caserun/internal/runner"
)

// NewSeqCommand creates the sequential variant. It runs cases one at a time
// in discovery order and halts on the first failure, exiting with that
// case's own exit code.
func NewSeqCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seq",
		Short: "Run cases one at a time, halting on the first failure",
		Long: `Seq runs every discovered case sequentially in discovery order.

The first case whose process exits non-zero halts the run immediately;
subsequent cases are never started and the harness exits with that case's
exit code. Use the default parallel mode when a complete pass/fail summary
across all cases is wanted.`,
		Args:         noPositionalArgs,
		RunE:         runSequential,
		SilenceUsage: true,
	}

	addCommonFlags(cmd)

	return cmd
}

// runSequential implements the seq command.
func runSequential(cmd *cobra.Command, args []string) error {
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

	if dryRunFlag {
		printDryRun(cmd.OutOrStdout(), models.Plan{Jobs: 1, Cases: cases}, "sequential execution")
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
	log.Infof("Running %d case(s) sequentially", len(cases))

	err = runner.RunSequential(ctx, runner.NewInvoker(), cases, log)

	var failed *runner.CaseFailedError
	switch {
	case err == nil:
		log.Infof("All %d case(s) completed successfully", len(cases))
		return nil
	case errors.As(err, &failed):
		// Surface the failing case's own exit code as the program's.
		return &ExitCodeError{Code: failed.ExitCode, Err: failed}
	case errors.Is(err, ctx.Err()) && ctx.Err() != nil:
		return &ExitCodeError{Code: ExitInterrupted, Err: errors.New("run interrupted")}
	default:
		return err
	}
}
