package progress

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

const (
	// synthetic progress never reaches completion before the real result
	ceilingPercent  = 95
	defaultInterval = 200 * time.Millisecond
	maxStep         = 4
)

// Estimator emits a cosmetic, monotonically increasing percentage for an
// operation of unknown duration. It carries no information about real
// progress; callers must never use it for correctness or cancellation.
type Estimator struct {
	interval time.Duration
	onUpdate func(percent int)

	mu      sync.Mutex
	percent int
	started bool
	cancel  context.CancelFunc
	stopped chan struct{}
}

func NewEstimator(onUpdate func(percent int)) *Estimator {
	return &Estimator{
		interval: defaultInterval,
		onUpdate: onUpdate,
	}
}

// Start begins ticking at 0%. The ticker stops when Done or Fail is called,
// or when ctx is cancelled; all three paths tear it down.
func (e *Estimator) Start(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	e.percent = 0

	ctx, e.cancel = context.WithCancel(ctx)
	e.stopped = make(chan struct{})
	e.emit(0)

	go e.run(ctx)
}

func (e *Estimator) run(ctx context.Context) {
	defer close(e.stopped)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.mu.Lock()
			next := e.percent + 1 + rand.Intn(maxStep)
			if next > ceilingPercent {
				next = ceilingPercent
			}
			changed := next != e.percent
			e.percent = next
			if changed {
				e.emit(next)
			}
			e.mu.Unlock()
		}
	}
}

// Done stops the ticker and jumps to 100%.
func (e *Estimator) Done() {
	e.stop()
	e.mu.Lock()
	e.percent = 100
	e.emit(100)
	e.mu.Unlock()
}

// Fail stops the ticker and resets to 0%.
func (e *Estimator) Fail() {
	e.stop()
	e.mu.Lock()
	e.percent = 0
	e.emit(0)
	e.mu.Unlock()
}

// Percent reports the current synthetic percentage.
func (e *Estimator) Percent() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.percent
}

func (e *Estimator) stop() {
	e.mu.Lock()
	cancel := e.cancel
	stopped := e.stopped
	e.cancel = nil
	e.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if stopped != nil {
		<-stopped
	}
}

func (e *Estimator) emit(percent int) {
	if e.onUpdate != nil {
		e.onUpdate(percent)
	}
}
