package bench

import "fmt"

// Plan splits a dataset of datasetSize items into at most workerCount
// contiguous chunks. Chunk sizes differ by at most one, larger chunks first,
// so the initial split is as balanced as a static split can be before the
// work-stealing balancer kicks in. When datasetSize < workerCount the plan
// has one single-item chunk per dataset item and the extra workers idle.
func Plan(datasetSize, workerCount int) ([]Chunk, error) {
	if workerCount <= 0 {
		return nil, fmt.Errorf("%w: worker count must be positive, got %d", ErrInvalidConfiguration, workerCount)
	}
	if datasetSize < 0 {
		return nil, fmt.Errorf("%w: dataset size must not be negative, got %d", ErrInvalidConfiguration, datasetSize)
	}

	chunkCount := workerCount
	if datasetSize < chunkCount {
		chunkCount = datasetSize
	}

	chunks := make([]Chunk, 0, chunkCount)
	base := 0
	if chunkCount > 0 {
		base = datasetSize / chunkCount
	}
	remainder := 0
	if chunkCount > 0 {
		remainder = datasetSize % chunkCount
	}

	start := 0
	for i := 0; i < chunkCount; i++ {
		size := base
		if i < remainder {
			size++
		}
		chunks = append(chunks, Chunk{Start: start, End: start + size})
		start += size
	}

	return chunks, nil
}
