// Package prediction obtains a next-day gold price forecast from an
// external reasoning service and guarantees a usable result: any failure
// on the remote path degrades to a locally synthesized estimate, so
// callers always get a forecast.
package prediction

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"goldpulse/internal/llm"
)

const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"

	TrendUp   = "up"
	TrendDown = "down"
)

// FallbackReasoning marks a synthesized estimate. It is the only way a
// caller can tell a fallback from a real forecast; both paths return the
// same Result shape.
const FallbackReasoning = "Using fallback estimate: live forecast unavailable"

// Fallback delta band. Midpoint sits below zero so synthetic estimates
// lean slightly toward down-moves.
const (
	fallbackMinDelta = -0.012
	fallbackMaxDelta = 0.008
)

const systemPrompt = `You are an AI expert in gold price prediction for the Nepal market. Analyze the current gold price and provide a prediction for tomorrow.

Your analysis should consider:
- Recent price trends in Nepal's gold market
- Global gold market influences
- Nepal's remittance flows impact on gold demand
- Seasonal buying patterns in Nepal
- Currency fluctuation effects (NPR to USD)

Return your prediction in the following JSON format:
{
  "predictedPrice": <number>,
  "confidence": "<high|medium|low>",
  "trend": "<up|down>",
  "reasoning": "<brief explanation>"
}

Be realistic - daily price changes are typically small (0.5% - 2%).`

// Result is the caller-visible forecast, identical for real and fallback
// estimates.
type Result struct {
	PredictedPrice float64 `json:"predictedPrice"`
	Confidence     string  `json:"confidence"`
	Trend          string  `json:"trend"`
	Reasoning      string  `json:"reasoning"`
}

// Predictor issues forecast requests against an llm.Client. A nil client
// means the gateway credential was never configured: real requests are
// prevented, the fallback keeps operating.
type Predictor struct {
	client  llm.Client
	timeout time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// New builds a predictor. Pass a nil client to run fallback-only; the
// missing-credential condition is the caller's to report, once, at start.
func New(client llm.Client, timeout time.Duration) *Predictor {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Predictor{
		client:  client,
		timeout: timeout,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Predict returns a forecast for the next day given the current spot price
// and a short natural-language trend summary. It never fails: transport,
// rate-limit, quota, and parse failures all degrade to a synthetic
// estimate, logged with their distinct reason.
func (p *Predictor) Predict(ctx context.Context, currentPrice float64, historicalSummary string) Result {
	if p.client == nil {
		return p.fallback(currentPrice)
	}
	if historicalSummary == "" {
		historicalSummary = "slight upward trend"
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.Generate(ctx, []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf(
			"Current Nepal gold price: NPR %.2f per tola. Historical trend: %s. Predict tomorrow's price.",
			currentPrice, historicalSummary)},
	})
	if err != nil {
		switch {
		case errors.Is(err, llm.ErrRateLimited):
			log.Printf("prediction request rate limited, using fallback: %v", err)
		case errors.Is(err, llm.ErrQuotaExceeded):
			log.Printf("prediction gateway quota exceeded, using fallback: %v", err)
		default:
			log.Printf("prediction request failed, using fallback: %v", err)
		}
		return p.fallback(currentPrice)
	}

	res, err := parseResult(resp.Content)
	if err != nil {
		log.Printf("failed to parse prediction response, using fallback: %v", err)
		return p.fallback(currentPrice)
	}
	return res
}

// fallback synthesizes an estimate within the typical daily band. The
// reported trend follows the sign of the applied delta.
func (p *Predictor) fallback(currentPrice float64) Result {
	p.mu.Lock()
	delta := fallbackMinDelta + p.rng.Float64()*(fallbackMaxDelta-fallbackMinDelta)
	p.mu.Unlock()

	trend := TrendDown
	if delta > 0 {
		trend = TrendUp
	}
	return Result{
		PredictedPrice: currentPrice * (1 + delta),
		Confidence:     ConfidenceMedium,
		Trend:          trend,
		Reasoning:      FallbackReasoning,
	}
}
