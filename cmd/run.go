package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-bench/internal/bench"
	"github.com/kozaktomas/face-bench/internal/config"
	"github.com/kozaktomas/face-bench/internal/dataset"
	"github.com/kozaktomas/face-bench/internal/recognizer"
	"github.com/kozaktomas/face-bench/internal/refset"
)

// addBenchFlags registers the flags shared by the serial, parallel and
// compare commands. Zero values defer to the environment configuration.
func addBenchFlags(c *cobra.Command) {
	c.Flags().String("reference", "", "Directory of known-face images (defaults to FACEBENCH_REFERENCE_DIR)")
	c.Flags().Int("workers", 0, "Override the worker count (0 = select from dataset size)")
	c.Flags().Int("min-items", 0, "Minimum images per worker (0 = no floor)")
	c.Flags().Float64("steal-fraction", 0, "Share of a donor queue moved per steal (0 = default 0.5)")
	c.Flags().Float64("tolerance", 0, "Face match distance threshold (0 = default 0.6)")
	c.Flags().Bool("no-progress", false, "Disable the progress bar")
}

// benchRun bundles everything a run command needs after setup.
type benchRun struct {
	dataset []string
	refs    *refset.Set
	runner  *bench.Runner
}

// setupRun validates the dataset, loads the reference set and builds the
// runner from flags and environment configuration.
func setupRun(ctx context.Context, cmd *cobra.Command, dir string) (*benchRun, error) {
	cfg := config.Load()

	referenceDir := mustGetString(cmd, "reference")
	if referenceDir == "" {
		referenceDir = cfg.Reference.Dir
	}
	if referenceDir == "" {
		return nil, errors.New("reference directory is required (--reference or FACEBENCH_REFERENCE_DIR)")
	}

	scanStart := time.Now()
	files, err := dataset.Scan(dir)
	if err != nil {
		return nil, err
	}
	scanTime := time.Since(scanStart)
	if len(files) == 0 {
		return nil, fmt.Errorf("no images found in %s", dir)
	}

	client := recognizer.NewClient(cfg.Recognizer.URL, cfg.Recognizer.MaxImageSize)

	fmt.Printf("Loading reference faces from %s...\n", referenceDir)
	refStart := time.Now()
	refs, err := refset.Load(ctx, referenceDir, client)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference set: %w", err)
	}
	refLoad := time.Since(refStart)
	fmt.Printf("Loaded %d identities (%s) in %.3fs\n",
		refs.Size(), strings.Join(refs.Names(), ", "), refLoad.Seconds())
	fmt.Printf("Dataset: %d images in %s (scanned in %.3fs)\n\n", len(files), dir, scanTime.Seconds())

	tolerance := mustGetFloat64(cmd, "tolerance")
	if tolerance <= 0 {
		tolerance = cfg.Bench.Tolerance
	}
	minItems := mustGetInt(cmd, "min-items")
	if minItems <= 0 {
		minItems = cfg.Bench.MinItemsPerWorker
	}
	stealFraction := mustGetFloat64(cmd, "steal-fraction")
	if stealFraction <= 0 {
		stealFraction = cfg.Bench.StealFraction
	}

	runner := bench.New(client, refs, bench.Options{
		Workers:           mustGetInt(cmd, "workers"),
		MinItemsPerWorker: minItems,
		StealFraction:     stealFraction,
		Tolerance:         tolerance,
		Tiers:             cfg.Strategies,
		ShowProgress:      !mustGetBool(cmd, "no-progress"),
		ScanTime:          scanTime,
		ReferenceLoadTime: refLoad,
	})

	return &benchRun{dataset: files, refs: refs, runner: runner}, nil
}

// signalContext returns a context cancelled by Ctrl+C or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal...")
		cancel()
	}()

	return ctx, cancel
}
