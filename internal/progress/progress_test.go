package progress

import (
	"context"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu      sync.Mutex
	updates []int
}

func (r *recorder) record(p int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, p)
}

func (r *recorder) snapshot() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, len(r.updates))
	copy(out, r.updates)
	return out
}

func TestEstimatorCapsBelowCompletion(t *testing.T) {
	rec := &recorder{}
	e := NewEstimator(rec.record)
	e.interval = time.Millisecond

	e.Start(context.Background())
	time.Sleep(100 * time.Millisecond)
	e.Done()

	updates := rec.snapshot()
	if len(updates) == 0 {
		t.Fatal("no updates emitted")
	}
	for _, p := range updates[:len(updates)-1] {
		if p > 95 {
			t.Errorf("progress %d exceeded cap before completion", p)
		}
	}
	if updates[len(updates)-1] != 100 {
		t.Errorf("final update = %d, want 100", updates[len(updates)-1])
	}
}

func TestEstimatorMonotoneUntilDone(t *testing.T) {
	rec := &recorder{}
	e := NewEstimator(rec.record)
	e.interval = time.Millisecond

	e.Start(context.Background())
	time.Sleep(50 * time.Millisecond)
	e.Done()

	updates := rec.snapshot()
	for i := 1; i < len(updates); i++ {
		if updates[i] < updates[i-1] {
			t.Errorf("progress decreased: %v", updates)
			break
		}
	}
}

func TestEstimatorFailResetsToZero(t *testing.T) {
	rec := &recorder{}
	e := NewEstimator(rec.record)
	e.interval = time.Millisecond

	e.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	e.Fail()

	if got := e.Percent(); got != 0 {
		t.Errorf("Percent() after Fail = %d, want 0", got)
	}
	updates := rec.snapshot()
	if updates[len(updates)-1] != 0 {
		t.Errorf("final update = %d, want 0", updates[len(updates)-1])
	}
}

func TestEstimatorContextCancellationStopsTicker(t *testing.T) {
	rec := &recorder{}
	e := NewEstimator(rec.record)
	e.interval = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	e.Start(ctx)
	time.Sleep(20 * time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)

	before := len(rec.snapshot())
	time.Sleep(20 * time.Millisecond)
	after := len(rec.snapshot())

	if before != after {
		t.Errorf("ticker kept emitting after cancellation: %d -> %d", before, after)
	}
}

func TestEstimatorDoneWithoutStart(t *testing.T) {
	rec := &recorder{}
	e := NewEstimator(rec.record)

	e.Done()

	if got := e.Percent(); got != 100 {
		t.Errorf("Percent() = %d, want 100", got)
	}
}
