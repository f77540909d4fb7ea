package bench

import "sync"

// workItem is one pending image. Index is the dataset position, kept so
// results can be verified against the dataset exactly once.
type workItem struct {
	index int
	path  string
}

// workQueue is a worker's local deque. The owner pops from the head; the
// balancer steals from the tail so stolen items are the ones the owner would
// have reached last.
type workQueue struct {
	mu    sync.Mutex
	items []workItem
}

func newWorkQueue(items []workItem) *workQueue {
	q := &workQueue{items: make([]workItem, len(items))}
	copy(q.items, items)
	return q
}

// popHead removes and returns the first item, or ok=false when empty.
func (q *workQueue) popHead() (workItem, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return workItem{}, false
	}
	item := q.items[0]
	q.items = q.items[1:]
	return item, true
}

// len returns the current queue length.
func (q *workQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// stealTail moves up to n items from the tail of this queue to the head of
// dst. The donor always keeps at least one item; queues holding one item or
// fewer donate nothing. Both locks are held for the duration of the move so
// an item is never visible in two queues and never dropped. Lock order is
// the caller's responsibility (see balancer.steal).
func (q *workQueue) stealTail(dst *workQueue, n int) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	dst.mu.Lock()
	defer dst.mu.Unlock()

	if len(q.items) <= 1 || n <= 0 {
		return 0
	}
	if n > len(q.items)-1 {
		n = len(q.items) - 1
	}

	cut := len(q.items) - n
	moved := make([]workItem, n, n+len(dst.items))
	copy(moved, q.items[cut:])
	q.items = q.items[:cut]
	dst.items = append(moved, dst.items...)
	return n
}
