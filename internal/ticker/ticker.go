// Package ticker simulates market price movement on a timer.
package ticker

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/domain"
)

const (
	DefaultPeriod       = 3 * time.Second
	DefaultPriceJitter  = 0.01 // price *= 1 + U(-0.01, 0.01)
	DefaultChangeJitter = 1.0  // change += U(-1, 1)

	// Epsilon is the floor for a perturbed price
	Epsilon = 1e-8
)

// Simulator applies bounded random perturbations to item quotes.
// Not safe for concurrent use; call it from the goroutine that owns the items.
type Simulator struct {
	priceJitter  float64
	changeJitter float64
	rng          *rand.Rand
}

// NewSimulator creates a simulator with the given amplitudes.
// Non-positive amplitudes select the defaults.
func NewSimulator(priceJitter, changeJitter float64) *Simulator {
	return NewSeededSimulator(priceJitter, changeJitter, rand.Uint64(), rand.Uint64())
}

// NewSeededSimulator creates a simulator with a deterministic random source
func NewSeededSimulator(priceJitter, changeJitter float64, seed1, seed2 uint64) *Simulator {
	if priceJitter <= 0 {
		priceJitter = DefaultPriceJitter
	}
	if changeJitter <= 0 {
		changeJitter = DefaultChangeJitter
	}
	return &Simulator{
		priceJitter:  priceJitter,
		changeJitter: changeJitter,
		rng:          rand.New(rand.NewPCG(seed1, seed2)),
	}
}

// Perturb moves the quote of every item that has one. Identity and display
// fields are left alone. Returns the number of quotes updated.
func (s *Simulator) Perturb(items []*domain.Item) int {
	n := 0
	for _, item := range items {
		if item == nil || item.Quote == nil {
			continue
		}
		q := item.Quote
		q.Price *= 1 + s.uniform(s.priceJitter)
		if !(q.Price >= Epsilon) { // also catches NaN
			q.Price = Epsilon
		}
		q.ChangePct += s.uniform(s.changeJitter)
		n++
	}
	return n
}

// uniform draws from U(-amp, amp)
func (s *Simulator) uniform(amp float64) float64 {
	return (s.rng.Float64()*2 - 1) * amp
}

// Handle controls a running periodic task
type Handle struct {
	c    chan time.Time
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// Start runs fn every period on its own goroutine until the handle is stopped.
// fn may be nil when only C is consumed. A non-positive period uses DefaultPeriod.
func Start(period time.Duration, fn func(time.Time)) *Handle {
	if period <= 0 {
		period = DefaultPeriod
	}
	h := &Handle{
		c:    make(chan time.Time, 1),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go h.run(period, fn)
	return h
}

func (h *Handle) run(period time.Duration, fn func(time.Time)) {
	defer close(h.done)
	defer close(h.c)

	t := time.NewTicker(period)
	defer t.Stop()

	for {
		select {
		case <-h.stop:
			return
		case now := <-t.C:
			if fn != nil {
				fn(now)
			}
			// Non-blocking: a slow consumer sees the latest tick only
			select {
			case h.c <- now:
			default:
			}
		}
	}
}

// C delivers tick times. Closed once the handle stops.
func (h *Handle) C() <-chan time.Time {
	return h.c
}

// Stop cancels all future ticks and waits for the task to exit.
// Safe to call more than once and on a nil handle.
func (h *Handle) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	<-h.done
}

// Stopped reports whether the task has exited
func (h *Handle) Stopped() bool {
	if h == nil {
		return true
	}
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}
