package bench

import "sync"

// balancer owns the shared view of all worker queues and performs the
// work-stealing handoff. All queue transfers go through the balancer mutex,
// so at most one transfer is in flight at a time and the per-pair handoff is
// atomic: an item is never in two queues and never lost.
type balancer struct {
	mu       sync.Mutex
	queues   []*workQueue
	steals   []int // successful steals per thief
	fraction float64
}

func newBalancer(queues []*workQueue, fraction float64) *balancer {
	if fraction <= 0 || fraction > 1 {
		fraction = 0.5
	}
	return &balancer{
		queues:   queues,
		steals:   make([]int, len(queues)),
		fraction: fraction,
	}
}

// steal is called by a worker whose local queue ran dry; the request itself
// is the idleness signal. It picks the donor with the largest remaining queue
// (tie-break: lowest worker id) and moves up to fraction of the donor's
// items, at least one, into the caller's queue. The donor keeps at least one
// item and queues of length <= 1 never donate. Returns the number of items
// moved; zero means no work is left anywhere and the caller should terminate.
func (b *balancer) steal(thief int) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	donor := -1
	longest := 0
	for i, q := range b.queues {
		if i == thief {
			continue
		}
		if n := q.len(); n > longest {
			longest = n
			donor = i
		}
	}

	// A donor holding a single item finishes it faster than a handoff would.
	if donor < 0 || longest <= 1 {
		return 0
	}

	n := int(float64(longest) * b.fraction)
	if n < 1 {
		n = 1
	}

	moved := b.queues[donor].stealTail(b.queues[thief], n)
	if moved > 0 {
		b.steals[thief]++
	}
	return moved
}

// stealCount returns how many successful steals the worker initiated.
func (b *balancer) stealCount(worker int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.steals[worker]
}

// totalSteals returns the number of successful transfers across the run.
func (b *balancer) totalSteals() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	total := 0
	for _, n := range b.steals {
		total += n
	}
	return total
}
