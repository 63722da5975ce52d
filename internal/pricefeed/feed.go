// Package pricefeed simulates a live gold spot price. There is no real
// market source; each tick perturbs the previous price within a small band
// and records a Price Update activity, which is what the dashboard renders.
package pricefeed

import (
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"goldpulse/internal/telemetry"
)

// Per-tick move stays within ±0.3% so the simulated series looks like a
// calm trading day rather than noise.
const maxTickDelta = 0.003

type randSource interface {
	Float64() float64
}

// Feed owns the current simulated price and advances it on a fixed
// schedule.
type Feed struct {
	cron  *cron.Cron
	store *telemetry.Store
	rng   randSource

	mu    sync.Mutex
	price float64
}

// New builds a feed starting from startPrice. Ticks are logged to the
// given store under a synthetic system identity.
func New(store *telemetry.Store, startPrice float64, rng randSource) *Feed {
	return &Feed{
		cron:  cron.New(cron.WithSeconds()),
		store: store,
		rng:   rng,
		price: startPrice,
	}
}

// Start schedules a tick every intervalSeconds seconds.
func (f *Feed) Start(intervalSeconds int) error {
	if intervalSeconds <= 0 {
		return fmt.Errorf("invalid feed interval: %d", intervalSeconds)
	}
	spec := fmt.Sprintf("@every %ds", intervalSeconds)
	if _, err := f.cron.AddFunc(spec, f.Tick); err != nil {
		return fmt.Errorf("schedule price tick: %w", err)
	}
	f.cron.Start()
	log.Printf("price feed started, ticking every %ds", intervalSeconds)
	return nil
}

// Stop halts the schedule. Already-running ticks complete.
func (f *Feed) Stop() {
	ctx := f.cron.Stop()
	<-ctx.Done()
	log.Printf("price feed stopped")
}

// Tick advances the simulated price one step and logs the move. Exposed so
// the schedule and the transition are testable apart from cron timing.
func (f *Feed) Tick() {
	f.mu.Lock()
	prev := f.price
	delta := (f.rng.Float64()*2 - 1) * maxTickDelta
	next := prev * (1 + delta)
	f.price = next
	f.mu.Unlock()

	trend := telemetry.PredictionSnapshot{
		CurrentPrice:   prev,
		PredictedPrice: next,
		Trend:          "up",
	}
	if next < prev {
		trend.Trend = "down"
	}
	f.store.LogActivity(
		"system", "system@goldpulse", "Price Feed",
		telemetry.ActionPriceUpdate,
		fmt.Sprintf("Spot price moved from NPR %.2f to NPR %.2f", prev, next),
		&trend,
	)
}

// Price returns the current simulated spot price.
func (f *Feed) Price() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.price
}
