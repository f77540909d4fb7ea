package bench

import (
	"fmt"
	"sort"
	"strings"
)

const reportRule = "----------------------------------------------------------------------"

// FormatReport renders a run report as the textual performance breakdown
// printed after every run.
func FormatReport(r *RunReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", reportRule)
	fmt.Fprintf(&b, "run %s (%s)\n", r.RunID, r.Mode)
	fmt.Fprintf(&b, "%s\n", reportRule)
	fmt.Fprintf(&b, "images processed:      %d\n", r.DatasetSize)
	fmt.Fprintf(&b, "matches found:         %d\n", r.Matches)
	fmt.Fprintf(&b, "unknown:               %d\n", r.Unknowns)
	if r.DatasetSize > 0 {
		fmt.Fprintf(&b, "match rate:            %.1f%%\n", float64(r.Matches)/float64(r.DatasetSize)*100)
	}

	if len(r.Identities) > 0 {
		fmt.Fprintf(&b, "\nmatched identities:\n")
		names := make([]string, 0, len(r.Identities))
		for name := range r.Identities {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "  %-20s %d\n", name, r.Identities[name])
		}
	}

	fmt.Fprintf(&b, "\ntiming:\n")
	if r.ScanTime > 0 {
		fmt.Fprintf(&b, "  dataset scan:        %.3fs\n", r.ScanTime.Seconds())
	}
	if r.ReferenceLoadTime > 0 {
		fmt.Fprintf(&b, "  reference loading:   %.3fs\n", r.ReferenceLoadTime.Seconds())
	}
	fmt.Fprintf(&b, "  processing:          %.3fs\n", r.ProcessingTime.Seconds())
	fmt.Fprintf(&b, "  total:               %.3fs\n", r.TotalTime.Seconds())
	if r.DatasetSize > 0 && r.TotalTime > 0 {
		fmt.Fprintf(&b, "  avg per image:       %.3fs\n", r.TotalTime.Seconds()/float64(r.DatasetSize))
		fmt.Fprintf(&b, "  throughput:          %.2f images/sec\n", r.Throughput())
	}

	if r.Mode == "parallel" {
		fmt.Fprintf(&b, "\nworker configuration:\n")
		fmt.Fprintf(&b, "  strategy:            %s\n", r.Strategy)
		fmt.Fprintf(&b, "  workers used:        %d\n", r.Workers)
		fmt.Fprintf(&b, "  chunk size:          %d\n", r.ChunkSize)
		fmt.Fprintf(&b, "  work steals:         %d\n", r.Steals)

		if len(r.WorkerTimings) > 0 {
			fmt.Fprintf(&b, "\nper-worker breakdown:\n")
			for _, w := range r.WorkerTimings {
				fmt.Fprintf(&b, "  worker %2d: %4d images, busy %.3fs, %d steals\n",
					w.ID, w.Processed, w.BusyTime.Seconds(), w.Steals)
			}
		}
	}

	return b.String()
}

// FormatComparison renders the speedup analysis between a serial baseline
// and a parallel run. Compare must have been called on the parallel report.
func FormatComparison(serial, parallel *RunReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", reportRule)
	fmt.Fprintf(&b, "speedup analysis\n")
	fmt.Fprintf(&b, "%s\n", reportRule)
	fmt.Fprintf(&b, "serial time:           %.3fs\n", serial.TotalTime.Seconds())
	fmt.Fprintf(&b, "parallel time:         %.3fs\n", parallel.TotalTime.Seconds())
	fmt.Fprintf(&b, "speedup:               %.2fx\n", parallel.Speedup)
	fmt.Fprintf(&b, "parallel efficiency:   %.1f%%\n", parallel.Efficiency*100)
	fmt.Fprintf(&b, "time saved:            %.3fs\n", serial.TotalTime.Seconds()-parallel.TotalTime.Seconds())
	fmt.Fprintf(&b, "efficiency rating:     %s\n", efficiencyRating(parallel.Efficiency))

	return b.String()
}

func efficiencyRating(efficiency float64) string {
	switch {
	case efficiency >= 0.8:
		return "excellent"
	case efficiency >= 0.6:
		return "good"
	case efficiency >= 0.4:
		return "fair"
	default:
		return "poor - consider fewer workers"
	}
}
