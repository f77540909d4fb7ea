package bench

import (
	"strings"
	"testing"
	"time"
)

func sampleParallelReport() *RunReport {
	return &RunReport{
		RunID:          "11111111-2222-3333-4444-555555555555",
		Mode:           "parallel",
		DatasetSize:    10,
		Matches:        8,
		Unknowns:       2,
		Identities:     map[string]int{"ana": 5, "petr": 3},
		Workers:        4,
		ChunkSize:      2,
		Strategy:       "small dataset (proportional scaling)",
		Steals:         3,
		ScanTime:       5 * time.Millisecond,
		TotalTime:      2 * time.Second,
		ProcessingTime: 2 * time.Second,
		WorkerTimings: []WorkerTiming{
			{ID: 0, Processed: 3, BusyTime: time.Second, Steals: 1},
			{ID: 1, Processed: 7, BusyTime: 2 * time.Second, Steals: 2},
		},
	}
}

func TestFormatReport_ParallelSections(t *testing.T) {
	out := FormatReport(sampleParallelReport())

	for _, want := range []string{
		"images processed:      10",
		"matches found:         8",
		"unknown:               2",
		"match rate:            80.0%",
		"ana",
		"petr",
		"strategy:            small dataset (proportional scaling)",
		"workers used:        4",
		"chunk size:          2",
		"work steals:         3",
		"per-worker breakdown:",
		"dataset scan:        0.005s",
		"throughput:          5.00 images/sec",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestFormatReport_SerialOmitsWorkerSections(t *testing.T) {
	report := &RunReport{
		RunID:       "run",
		Mode:        "serial",
		DatasetSize: 5,
		Matches:     5,
		TotalTime:   time.Second,
	}

	out := FormatReport(report)
	if strings.Contains(out, "worker configuration") {
		t.Errorf("serial report should not contain worker configuration:\n%s", out)
	}
}

func TestFormatComparison(t *testing.T) {
	serial := &RunReport{TotalTime: 8 * time.Second}
	parallel := &RunReport{TotalTime: 2 * time.Second, Workers: 4}
	Compare(serial, parallel)

	out := FormatComparison(serial, parallel)

	for _, want := range []string{
		"serial time:           8.000s",
		"parallel time:         2.000s",
		"speedup:               4.00x",
		"parallel efficiency:   100.0%",
		"time saved:            6.000s",
		"efficiency rating:     excellent",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("comparison missing %q:\n%s", want, out)
		}
	}
}

func TestEfficiencyRating(t *testing.T) {
	cases := []struct {
		efficiency float64
		rating     string
	}{
		{0.95, "excellent"},
		{0.7, "good"},
		{0.5, "fair"},
		{0.1, "poor - consider fewer workers"},
	}

	for _, c := range cases {
		if got := efficiencyRating(c.efficiency); got != c.rating {
			t.Errorf("efficiencyRating(%f): expected %q, got %q", c.efficiency, c.rating, got)
		}
	}
}
