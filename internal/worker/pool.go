// Package worker provides the bounded fan-out used for provider calls.
package worker

import (
	"context"
	"sync"
)

// Job is a unit of work executed by the pool.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of one job.
type Result interface {
	Err() error
}

// Pool executes jobs on a fixed number of workers. A failed or
// cancelled job never blocks the others; the caller drains everything
// with Wait.
type Pool struct {
	workers int
	jobs    chan Job
	results chan Result
	wg      sync.WaitGroup
}

// NewPool creates a pool with the given worker count. queue is the
// number of jobs the caller intends to submit before draining; both
// channels are sized for it so Submit never blocks behind a full
// results buffer.
func NewPool(workers, queue int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queue < workers*2 {
		queue = workers * 2
	}
	return &Pool{
		workers: workers,
		jobs:    make(chan Job, queue),
		results: make(chan Result, queue),
	}
}

// Start launches the workers. ctx cancellation makes them drop queued
// work and exit.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			result := job.Execute(ctx)
			select {
			case p.results <- result:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job. Must not be called after Wait.
func (p *Pool) Submit(ctx context.Context, job Job) {
	select {
	case <-ctx.Done():
	case p.jobs <- job:
	}
}

// Wait closes the queue, waits for the workers, and returns whatever
// results were produced. Under cancellation fewer results than
// submitted jobs may come back.
func (p *Pool) Wait() []Result {
	close(p.jobs)

	go func() {
		p.wg.Wait()
		close(p.results)
	}()

	var results []Result
	for r := range p.results {
		results = append(results, r)
	}
	return results
}
