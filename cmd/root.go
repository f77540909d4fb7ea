package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "face-bench",
	Short: "Benchmark serial vs parallel face recognition",
	Long: `Face Bench runs face-recognition matching over an image dataset both
serially and with a dynamically sized work-stealing worker pool, and reports
the speedup and per-worker efficiency of the parallel run.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
