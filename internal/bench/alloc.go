package bench

import "fmt"

// Tier describes one worker-allocation strategy for a dataset size band.
// Tiers are data, not code; the default table ships as an embedded YAML file
// in the config package.
type Tier struct {
	Name string `yaml:"name"`
	// MaxImages is the upper bound of the band (inclusive); 0 means unbounded
	// and must only appear on the last tier.
	MaxImages int `yaml:"max_images"`
	// ImagesPerWorker is the divisor for the proportional worker count
	// (one worker per N images); 0 means use all available cores.
	ImagesPerWorker int `yaml:"images_per_worker"`
	// CoreFraction caps the worker count at this fraction of available cores.
	CoreFraction float64 `yaml:"core_fraction"`
	MinWorkers   int     `yaml:"min_workers"`
	// MaxWorkers caps the worker count; 0 means no cap beyond the cores.
	MaxWorkers int `yaml:"max_workers"`
	// ChunkFactor sizes chunks as datasetSize / (workers * ChunkFactor);
	// 0 means a fixed chunk of MinChunk items.
	ChunkFactor int `yaml:"chunk_factor"`
	MinChunk    int `yaml:"min_chunk"`
}

// Allocation is the outcome of worker-count selection for one dataset.
type Allocation struct {
	Workers   int
	ChunkSize int
	Strategy  string
}

// AllocOptions tunes SelectWorkers without making it stateful.
type AllocOptions struct {
	// Override forces the worker count, bypassing the tier table. The result
	// is still clamped to the dataset size.
	Override int
	// MinItemsPerWorker is a floor on work per worker; more workers than
	// datasetSize/MinItemsPerWorker are never allocated. 0 disables the floor.
	MinItemsPerWorker int
}

// SelectWorkers picks a worker count and chunk size for a dataset. It is a
// pure function of the inputs so the allocation logic is testable without a
// live pool. Cores that cannot be determined (cores <= 0) fall back to 1.
func SelectWorkers(datasetSize, cores int, tiers []Tier, opts AllocOptions) (Allocation, error) {
	if datasetSize < 0 {
		return Allocation{}, fmt.Errorf("%w: dataset size must not be negative, got %d", ErrInvalidConfiguration, datasetSize)
	}
	if len(tiers) == 0 && opts.Override <= 0 {
		return Allocation{}, fmt.Errorf("%w: no allocation tiers configured", ErrInvalidConfiguration)
	}
	if cores <= 0 {
		cores = 1
	}

	if opts.Override > 0 {
		workers := clamp(opts.Override, 1, max(datasetSize, 1))
		return Allocation{
			Workers:   workers,
			ChunkSize: chunkFor(datasetSize, workers, 0, 1),
			Strategy:  "manual override",
		}, nil
	}

	tier := tiers[len(tiers)-1]
	for _, t := range tiers {
		if t.MaxImages > 0 && datasetSize <= t.MaxImages {
			tier = t
			break
		}
	}

	workers := cores
	if tier.ImagesPerWorker > 0 {
		workers = datasetSize / tier.ImagesPerWorker
	}
	if tier.CoreFraction > 0 {
		coreCap := int(float64(cores) * tier.CoreFraction)
		workers = min(workers, max(coreCap, 1))
	}
	if tier.MinWorkers > 0 {
		workers = max(workers, tier.MinWorkers)
	}
	if tier.MaxWorkers > 0 {
		workers = min(workers, tier.MaxWorkers)
	}
	if opts.MinItemsPerWorker > 0 && datasetSize > 0 {
		workers = min(workers, ceilDiv(datasetSize, opts.MinItemsPerWorker))
	}

	// Never more workers than images, never more than cores, never below 1.
	workers = clamp(workers, 1, cores)
	if datasetSize > 0 {
		workers = min(workers, datasetSize)
	}

	return Allocation{
		Workers:   workers,
		ChunkSize: chunkFor(datasetSize, workers, tier.ChunkFactor, tier.MinChunk),
		Strategy:  tier.Name,
	}, nil
}

func chunkFor(datasetSize, workers, factor, minChunk int) int {
	if minChunk < 1 {
		minChunk = 1
	}
	if factor <= 0 || workers <= 0 {
		return minChunk
	}
	return max(minChunk, datasetSize/(workers*factor))
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
