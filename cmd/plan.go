package cmd

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-bench/internal/bench"
	"github.com/kozaktomas/face-bench/internal/config"
)

// Default demonstration sizes, one per allocation tier.
var planDefaultSizes = []int{5, 25, 100, 500, 2000}

var planCmd = &cobra.Command{
	Use:   "plan [size...]",
	Short: "Show how workers would be allocated for given dataset sizes",
	Long: `Print the worker allocation table without running anything. With no
arguments a demonstration range of dataset sizes is used; otherwise each
argument is treated as a dataset size.`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().Int("cores", 0, "Assume this many CPU cores (0 = detect)")
	planCmd.Flags().Int("min-items", 0, "Minimum images per worker (0 = no floor)")
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	cores := mustGetInt(cmd, "cores")
	if cores <= 0 {
		cores = runtime.NumCPU()
	}
	minItems := mustGetInt(cmd, "min-items")
	if minItems <= 0 {
		minItems = cfg.Bench.MinItemsPerWorker
	}

	sizes := planDefaultSizes
	if len(args) > 0 {
		sizes = make([]int, 0, len(args))
		for _, arg := range args {
			size, err := strconv.Atoi(arg)
			if err != nil || size < 0 {
				return fmt.Errorf("invalid dataset size: %s", arg)
			}
			sizes = append(sizes, size)
		}
	}

	fmt.Printf("Available CPU cores: %d\n\n", cores)
	fmt.Printf("%-14s %-9s %-12s %s\n", "dataset size", "workers", "chunk size", "strategy")

	for _, size := range sizes {
		alloc, err := bench.SelectWorkers(size, cores, cfg.Strategies, bench.AllocOptions{
			MinItemsPerWorker: minItems,
		})
		if err != nil {
			return err
		}
		fmt.Printf("%-14d %-9d %-12d %s\n", size, alloc.Workers, alloc.ChunkSize, alloc.Strategy)
	}

	return nil
}
