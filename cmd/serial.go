package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-bench/internal/bench"
)

var serialCmd = &cobra.Command{
	Use:   "serial [dataset-dir]",
	Short: "Run the serial baseline only",
	Long: `Process the dataset one image at a time on a single goroutine.
Useful as a standalone baseline measurement.`,
	Args: cobra.ExactArgs(1),
	RunE: runSerial,
}

func init() {
	rootCmd.AddCommand(serialCmd)
	addBenchFlags(serialCmd)
}

func runSerial(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	run, err := setupRun(ctx, cmd, args[0])
	if err != nil {
		return err
	}

	report, err := run.runner.RunSerial(ctx, run.dataset)
	if err != nil {
		return fmt.Errorf("serial run failed: %w", err)
	}

	fmt.Print(bench.FormatReport(report))
	return nil
}
