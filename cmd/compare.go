package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-bench/internal/bench"
)

var compareCmd = &cobra.Command{
	Use:   "compare [dataset-dir]",
	Short: "Run serial and parallel back to back and report the speedup",
	Long: `Run the serial baseline and the parallel recognizer over the same
dataset and reference set, then report speedup (serial time / parallel time)
and efficiency (speedup / workers used).`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
	addBenchFlags(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	run, err := setupRun(ctx, cmd, args[0])
	if err != nil {
		return err
	}

	fmt.Println("Serial baseline:")
	serial, err := run.runner.RunSerial(ctx, run.dataset)
	if err != nil {
		return fmt.Errorf("serial run failed: %w", err)
	}

	fmt.Println("\nParallel run:")
	parallel, err := run.runner.RunParallel(ctx, run.dataset)
	if err != nil {
		return fmt.Errorf("parallel run failed: %w", err)
	}

	bench.Compare(serial, parallel)

	fmt.Print(bench.FormatReport(serial))
	fmt.Println()
	fmt.Print(bench.FormatReport(parallel))
	fmt.Println()
	fmt.Print(bench.FormatComparison(serial, parallel))
	return nil
}
