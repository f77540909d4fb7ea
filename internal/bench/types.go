// Package bench implements the parallel face-matching benchmark core:
// chunk planning, dynamic worker allocation, a work-stealing pool and the
// orchestrator that compares parallel runs against a serial baseline.
package bench

import (
	"errors"
	"time"
)

var (
	// ErrInvalidConfiguration means the run was misconfigured (bad worker
	// count, negative dataset size) and no workers were started.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrIncompleteRun means the collected results do not cover the dataset
	// exactly once. It indicates a balancer bug, not a bad input.
	ErrIncompleteRun = errors.New("incomplete run")

	// ErrRunCancelled means the run was aborted before all items were
	// processed and no report is available.
	ErrRunCancelled = errors.New("run cancelled")
)

// UnknownIdentity is recorded for items where no face was found or the
// recognizer failed; per-item failures never abort a run.
const UnknownIdentity = "unknown"

// Chunk is a contiguous half-open range [Start, End) of dataset indices
// assigned to one worker at startup.
type Chunk struct {
	Start int
	End   int
}

// Size returns the number of items in the chunk.
func (c Chunk) Size() int {
	return c.End - c.Start
}

// ResultRecord is produced exactly once per dataset item.
type ResultRecord struct {
	Image    string        // dataset path
	Identity string        // matched identity or UnknownIdentity
	Duration time.Duration // time spent on this item
	Worker   int           // id of the worker that processed it
}

// WorkerTiming is the per-worker telemetry collected during a parallel run.
type WorkerTiming struct {
	ID        int
	Processed int
	BusyTime  time.Duration
	Steals    int // successful steals initiated by this worker
}

// RunReport summarizes one run. Speedup and Efficiency are filled in by
// Compare when a serial baseline is available.
type RunReport struct {
	RunID       string
	Mode        string // "serial" or "parallel"
	DatasetSize int

	Matches    int
	Unknowns   int
	Identities map[string]int // per-identity match counts

	Workers   int
	ChunkSize int
	Strategy  string
	Steals    int

	ScanTime          time.Duration
	ReferenceLoadTime time.Duration
	ProcessingTime    time.Duration
	TotalTime         time.Duration

	WorkerTimings []WorkerTiming
	Records       []ResultRecord

	Speedup    float64
	Efficiency float64
}

// Throughput returns processed images per second of wall time.
func (r *RunReport) Throughput() float64 {
	if r.TotalTime <= 0 {
		return 0
	}
	return float64(r.DatasetSize) / r.TotalTime.Seconds()
}
