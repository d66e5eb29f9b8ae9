package worker

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testJob struct {
	id   int
	err  error
	wait time.Duration
}

type testResult struct {
	id  int
	err error
}

func (r *testResult) Err() error { return r.err }

func (j *testJob) Execute(ctx context.Context) Result {
	if j.wait > 0 {
		select {
		case <-ctx.Done():
			return &testResult{id: j.id, err: ctx.Err()}
		case <-time.After(j.wait):
		}
	}
	return &testResult{id: j.id, err: j.err}
}

func TestPool_DrainsAllJobs(t *testing.T) {
	pool := NewPool(3, 10)
	pool.Start(context.Background())

	for i := 0; i < 10; i++ {
		pool.Submit(context.Background(), &testJob{id: i})
	}

	results := pool.Wait()
	if len(results) != 10 {
		t.Fatalf("Expected 10 results, got %d", len(results))
	}

	seen := make(map[int]bool)
	for _, r := range results {
		tr := r.(*testResult)
		if seen[tr.id] {
			t.Errorf("Duplicate result for job %d", tr.id)
		}
		seen[tr.id] = true
	}
}

func TestPool_LargeBatchSubmitsWithoutBlocking(t *testing.T) {
	pool := NewPool(2, 50)
	pool.Start(context.Background())

	for i := 0; i < 50; i++ {
		pool.Submit(context.Background(), &testJob{id: i})
	}

	if got := len(pool.Wait()); got != 50 {
		t.Fatalf("Expected 50 results, got %d", got)
	}
}

func TestPool_FailedJobDoesNotBlockOthers(t *testing.T) {
	pool := NewPool(2, 2)
	pool.Start(context.Background())

	pool.Submit(context.Background(), &testJob{id: 0, err: errors.New("boom")})
	pool.Submit(context.Background(), &testJob{id: 1})

	results := pool.Wait()
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	failures := 0
	for _, r := range results {
		if r.Err() != nil {
			failures++
		}
	}
	if failures != 1 {
		t.Errorf("Expected exactly 1 failure, got %d", failures)
	}
}

func TestPool_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	pool := NewPool(1, 1)
	pool.Start(ctx)

	pool.Submit(ctx, &testJob{id: 0, wait: 5 * time.Second})
	cancel()

	done := make(chan struct{})
	go func() {
		pool.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Pool did not drain after cancellation")
	}
}

func TestLimiter_AllowsWithinBudget(t *testing.T) {
	l := NewLimiter(100, 5)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := 0; i < 5; i++ {
		if err := l.Wait(ctx, "https://example.com/page"); err != nil {
			t.Fatalf("Unexpected limiter error: %v", err)
		}
	}
}

func TestLimiter_BadURL(t *testing.T) {
	l := NewLimiter(1, 1)
	if err := l.Wait(context.Background(), "://bad"); err == nil {
		t.Error("Expected error for unparseable URL")
	}
}
