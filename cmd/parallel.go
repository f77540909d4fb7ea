package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-bench/internal/bench"
)

var parallelCmd = &cobra.Command{
	Use:   "parallel [dataset-dir]",
	Short: "Run the work-stealing parallel recognizer only",
	Long: `Process the dataset with a dynamically sized worker pool. The worker
count is chosen from the dataset size and available cores, the initial chunks
are balanced, and idle workers steal from the busiest queue.`,
	Args: cobra.ExactArgs(1),
	RunE: runParallel,
}

func init() {
	rootCmd.AddCommand(parallelCmd)
	addBenchFlags(parallelCmd)
}

func runParallel(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	run, err := setupRun(ctx, cmd, args[0])
	if err != nil {
		return err
	}

	report, err := run.runner.RunParallel(ctx, run.dataset)
	if err != nil {
		return fmt.Errorf("parallel run failed: %w", err)
	}

	fmt.Print(bench.FormatReport(report))
	return nil
}
