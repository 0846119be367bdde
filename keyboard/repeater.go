package keyboard

import (
	"sync"
	"time"

	"go.uber.org/atomic"
)

const (
	DefaultRepeatDelay  = 200 * time.Millisecond
	DefaultRepeatPeriod = 40 * time.Millisecond
)

// Repeater fires a callback while a key is held: once after the delay, then
// every period until Stop.
type Repeater struct {
	delay  time.Duration
	period time.Duration

	generation atomic.Uint64
	active     atomic.Bool
	fired      atomic.Int64

	mu    sync.Mutex
	timer *time.Timer
}

func NewRepeater(delay, period time.Duration) *Repeater {
	if delay <= 0 {
		delay = DefaultRepeatDelay
	}
	if period <= 0 {
		period = DefaultRepeatPeriod
	}
	return &Repeater{delay: delay, period: period}
}

// Start cancels any running repeat and schedules fire for a new one. fire
// runs with the repeater locked, so it must not block or call back into r.
func (r *Repeater) Start(fire func()) {
	gen := r.generation.Inc()
	r.active.Store(true)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.delay, func() { r.tick(gen, fire) })
}

func (r *Repeater) tick(gen uint64, fire func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Stop and Start bump the generation before taking mu.
	if r.generation.Load() != gen {
		return
	}

	fire()
	r.fired.Inc()
	r.timer = time.AfterFunc(r.period, func() { r.tick(gen, fire) })
}

// Stop cancels the repeat. Once it returns fire is not called again.
func (r *Repeater) Stop() {
	r.generation.Inc()
	r.active.Store(false)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func (r *Repeater) Active() bool {
	return r.active.Load()
}

// Fired counts callbacks run since the repeater was created.
func (r *Repeater) Fired() int64 {
	return r.fired.Load()
}
