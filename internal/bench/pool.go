package bench

import (
	"context"
	"sync"
	"time"
)

// runWorker drains the worker's local queue, then turns to the balancer for
// stolen work, and terminates once no queue holds stealable items. Results
// are streamed to the shared channel; per-worker telemetry is written only
// to the worker's own slot and read after the pool joins.
func (r *Runner) runWorker(ctx context.Context, id int, queue *workQueue, b *balancer, results chan<- ResultRecord, timing *WorkerTiming, onDone func()) {
	for {
		if ctx.Err() != nil {
			return
		}

		item, ok := queue.popHead()
		if !ok {
			if b.steal(id) == 0 {
				return
			}
			continue
		}

		start := time.Now()
		identity := r.resolve(ctx, item.path)
		elapsed := time.Since(start)

		timing.Processed++
		timing.BusyTime += elapsed
		results <- ResultRecord{
			Image:    item.path,
			Identity: identity,
			Duration: elapsed,
			Worker:   id,
		}
		if onDone != nil {
			onDone()
		}
	}
}

// resolve runs the encode + identify pipeline for one image. Any recognizer
// failure, including ErrNoFaceFound, degrades to UnknownIdentity so a single
// bad image never takes the pool down.
func (r *Runner) resolve(ctx context.Context, path string) string {
	vec, err := r.encoder.Encode(ctx, path)
	if err != nil {
		return UnknownIdentity
	}
	identity, _, ok := r.identifier.Identify(vec, r.tolerance())
	if !ok {
		return UnknownIdentity
	}
	return identity
}

// runPool seeds one queue per worker from the chunk plan, starts the workers
// and blocks until all of them terminate. Workers without a chunk start with
// an empty queue and go straight to the balancer.
func (r *Runner) runPool(ctx context.Context, items []workItem, chunks []Chunk, workers int, onDone func()) ([]ResultRecord, []WorkerTiming, int) {
	queues := make([]*workQueue, workers)
	for i := range queues {
		if i < len(chunks) {
			queues[i] = newWorkQueue(items[chunks[i].Start:chunks[i].End])
		} else {
			queues[i] = newWorkQueue(nil)
		}
	}

	b := newBalancer(queues, r.opts.StealFraction)
	results := make(chan ResultRecord, len(items))
	timings := make([]WorkerTiming, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		timings[i].ID = i
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			r.runWorker(ctx, id, queues[id], b, results, &timings[id], onDone)
		}(i)
	}
	wg.Wait()
	close(results)

	records := make([]ResultRecord, 0, len(items))
	for rec := range results {
		records = append(records, rec)
	}
	for i := range timings {
		timings[i].Steals = b.stealCount(i)
	}

	return records, timings, b.totalSteals()
}
