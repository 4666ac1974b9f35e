// ABOUTME: Tests for the worker pool submit-and-wait behavior
// ABOUTME: Verifies task completion, worker sizing, and clean shutdown

package pool

import (
	"runtime"
	"sync/atomic"
	"testing"
)

func TestSubmitAndWait(t *testing.T) {
	p := NewWorkerPool(4, 16)
	defer p.Close()

	var counter int64
	for range 100 {
		p.Submit(func() {
			atomic.AddInt64(&counter, 1)
		})
	}

	p.Wait()

	if got := atomic.LoadInt64(&counter); got != 100 {
		t.Errorf("Expected 100 completed tasks, got %d", got)
	}
}

func TestWorkerSizing(t *testing.T) {
	p := NewWorkerPool(3, 1)
	defer p.Close()

	if p.Workers() != 3 {
		t.Errorf("Expected 3 workers, got %d", p.Workers())
	}
}

func TestWorkerSizingDefault(t *testing.T) {
	p := NewWorkerPool(0, 1)
	defer p.Close()

	if p.Workers() != runtime.NumCPU() {
		t.Errorf("Expected %d workers, got %d", runtime.NumCPU(), p.Workers())
	}
}

func TestWaitReusable(t *testing.T) {
	p := NewWorkerPool(2, 4)
	defer p.Close()

	var counter int64
	p.Submit(func() { atomic.AddInt64(&counter, 1) })
	p.Wait()

	p.Submit(func() { atomic.AddInt64(&counter, 1) })
	p.Wait()

	if got := atomic.LoadInt64(&counter); got != 2 {
		t.Errorf("Expected 2 completed tasks across batches, got %d", got)
	}
}
