package ticker

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/domain"
)

func TestPerturb_NeverBelowEpsilon(t *testing.T) {
	items := []*domain.Item{
		{ID: "pepe", Quote: &domain.Quote{Price: 0.00000812}},
		{ID: "dust", Quote: &domain.Quote{Price: Epsilon}},
		{ID: "btc", Quote: &domain.Quote{Price: 67420.15}},
	}
	// An amplitude past 100% forces draws that would cross zero
	sim := NewSeededSimulator(1.5, 1, 1, 2)

	for range 10000 {
		sim.Perturb(items)
		for _, item := range items {
			require.GreaterOrEqual(t, item.Quote.Price, Epsilon, item.ID)
		}
	}
}

func TestPerturb_Bounded(t *testing.T) {
	sim := NewSeededSimulator(0, 0, 7, 11)
	for range 1000 {
		item := &domain.Item{Quote: &domain.Quote{Price: 100, ChangePct: 0}}
		sim.Perturb([]*domain.Item{item})

		assert.InDelta(t, 100, item.Quote.Price, 100*DefaultPriceJitter)
		assert.InDelta(t, 0, item.Quote.ChangePct, DefaultChangeJitter)
	}
}

func TestPerturb_OnlyQuotes(t *testing.T) {
	anime := &domain.Item{ID: "a", Title: "Naruto", Score: domain.Float64(8)}
	coin := &domain.Item{ID: "m", Title: "Bitcoin", NativeTitle: "BTC", Quote: &domain.Quote{Price: 10}}

	n := NewSimulator(0, 0).Perturb([]*domain.Item{anime, nil, coin})

	assert.Equal(t, 1, n)
	assert.Nil(t, anime.Quote)
	assert.Equal(t, 8.0, *anime.Score)
	assert.Equal(t, "m", coin.ID)
	assert.Equal(t, "BTC", coin.NativeTitle)
}

func TestStart_Ticks(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	var calls atomic.Int32
	h := Start(5*time.Millisecond, func(time.Time) { calls.Add(1) })

	select {
	case _, ok := <-h.C():
		require.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("no tick delivered")
	}
	h.Stop()

	assert.GreaterOrEqual(t, calls.Load(), int32(1))
	assert.True(t, h.Stopped())
}

func TestStop_IdempotentAndFinal(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	var calls atomic.Int32
	h := Start(time.Millisecond, func(time.Time) { calls.Add(1) })
	time.Sleep(10 * time.Millisecond)

	h.Stop()
	h.Stop()

	after := calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, calls.Load(), "no ticks after Stop")

	// C is closed once stopped
	for range h.C() {
	}
}

func TestStop_NilHandle(t *testing.T) {
	var h *Handle
	assert.NotPanics(t, h.Stop)
	assert.True(t, h.Stopped())
}
