package bench

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
)

// Encoder is the face-encoding half of the recognition collaborator.
type Encoder interface {
	Encode(ctx context.Context, path string) ([]float32, error)
}

// Identifier resolves a face encoding to a known identity. ok is false when
// no reference face lies within the tolerance.
type Identifier interface {
	Identify(vec []float32, tolerance float64) (identity string, distance float64, ok bool)
}

// Options tunes a Runner. The zero value picks sane defaults: all detected
// cores, half-queue steals and the face_recognition tolerance of 0.6.
type Options struct {
	Workers           int           // override; 0 selects from the tier table
	Cores             int           // 0 detects via runtime.NumCPU
	MinItemsPerWorker int           // floor on work per worker; 0 disables
	StealFraction     float64       // share of the donor queue to move; 0 means 0.5
	Tolerance         float64       // match distance threshold; 0 means 0.6
	Tiers             []Tier        // allocation strategy table
	ShowProgress      bool          // render a progress bar during processing
	ScanTime          time.Duration // reported, measured by the caller
	ReferenceLoadTime time.Duration // reported, measured by the caller
}

const defaultTolerance = 0.6

// Runner orchestrates serial and parallel benchmark runs over a dataset.
type Runner struct {
	encoder    Encoder
	identifier Identifier
	opts       Options
}

// New creates a Runner around the recognition collaborator and reference set.
func New(enc Encoder, ids Identifier, opts Options) *Runner {
	return &Runner{encoder: enc, identifier: ids, opts: opts}
}

func (r *Runner) tolerance() float64 {
	if r.opts.Tolerance > 0 {
		return r.opts.Tolerance
	}
	return defaultTolerance
}

func (r *Runner) cores() int {
	if r.opts.Cores > 0 {
		return r.opts.Cores
	}
	return runtime.NumCPU()
}

// RunParallel processes the dataset with a work-stealing pool and returns the
// run report. It fails with ErrInvalidConfiguration before any worker starts,
// with ErrRunCancelled when the context is cancelled mid-run, and with
// ErrIncompleteRun when the collected records do not cover the dataset
// exactly once.
func (r *Runner) RunParallel(ctx context.Context, dataset []string) (*RunReport, error) {
	alloc, err := SelectWorkers(len(dataset), r.cores(), r.opts.Tiers, AllocOptions{
		Override:          r.opts.Workers,
		MinItemsPerWorker: r.opts.MinItemsPerWorker,
	})
	if err != nil {
		return nil, err
	}

	chunks, err := Plan(len(dataset), alloc.Workers)
	if err != nil {
		return nil, err
	}

	items := make([]workItem, len(dataset))
	for i, path := range dataset {
		items[i] = workItem{index: i, path: path}
	}

	bar := r.progressBar(len(dataset), fmt.Sprintf("Matching faces (%d workers)", alloc.Workers))
	onDone := func() {
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	start := time.Now()
	records, timings, steals := r.runPool(ctx, items, chunks, alloc.Workers, onDone)
	total := time.Since(start)
	if bar != nil {
		fmt.Println()
	}

	if ctx.Err() != nil {
		return nil, ErrRunCancelled
	}
	if err := verifyComplete(records, dataset); err != nil {
		return nil, err
	}

	report := r.newReport("parallel", dataset, records, total)
	report.Workers = alloc.Workers
	report.ChunkSize = alloc.ChunkSize
	report.Strategy = alloc.Strategy
	report.Steals = steals
	report.WorkerTimings = timings
	return report, nil
}

// RunSerial processes the dataset in order on a single goroutine. It is the
// baseline the parallel run is compared against.
func (r *Runner) RunSerial(ctx context.Context, dataset []string) (*RunReport, error) {
	bar := r.progressBar(len(dataset), "Matching faces (serial)")

	records := make([]ResultRecord, 0, len(dataset))
	start := time.Now()
	for _, path := range dataset {
		if ctx.Err() != nil {
			return nil, ErrRunCancelled
		}
		itemStart := time.Now()
		identity := r.resolve(ctx, path)
		records = append(records, ResultRecord{
			Image:    path,
			Identity: identity,
			Duration: time.Since(itemStart),
		})
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	total := time.Since(start)
	if bar != nil {
		fmt.Println()
	}

	report := r.newReport("serial", dataset, records, total)
	report.Workers = 1
	report.Strategy = "serial baseline"
	return report, nil
}

// Compare fills in speedup and efficiency on the parallel report from the
// serial baseline timing.
func Compare(serial, parallel *RunReport) {
	if serial == nil || parallel == nil || parallel.TotalTime <= 0 {
		return
	}
	parallel.Speedup = serial.TotalTime.Seconds() / parallel.TotalTime.Seconds()
	if parallel.Workers > 0 {
		parallel.Efficiency = parallel.Speedup / float64(parallel.Workers)
	}
}

func (r *Runner) newReport(mode string, dataset []string, records []ResultRecord, total time.Duration) *RunReport {
	report := &RunReport{
		RunID:             uuid.NewString(),
		Mode:              mode,
		DatasetSize:       len(dataset),
		Identities:        make(map[string]int),
		ScanTime:          r.opts.ScanTime,
		ReferenceLoadTime: r.opts.ReferenceLoadTime,
		ProcessingTime:    total,
		TotalTime:         total,
		Records:           records,
	}
	for _, rec := range records {
		if rec.Identity == UnknownIdentity {
			report.Unknowns++
			continue
		}
		report.Matches++
		report.Identities[rec.Identity]++
	}
	return report
}

// verifyComplete enforces the exactly-once invariant: one record per dataset
// item, no duplicates. A violation here is a balancer bug.
func verifyComplete(records []ResultRecord, dataset []string) error {
	if len(records) != len(dataset) {
		return fmt.Errorf("%w: collected %d records for %d images", ErrIncompleteRun, len(records), len(dataset))
	}
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		if seen[rec.Image] {
			return fmt.Errorf("%w: image processed twice: %s", ErrIncompleteRun, rec.Image)
		}
		seen[rec.Image] = true
	}
	return nil
}

func (r *Runner) progressBar(total int, description string) *progressbar.ProgressBar {
	if !r.opts.ShowProgress {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("images"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
