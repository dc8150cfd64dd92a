// Package verify implements the report authenticity heuristic. It emulates an
// ML classifier with a deterministic score derived from the report text, so
// identical inputs always verify identically.
package verify

import (
	"context"
	"strings"
	"time"
)

const (
	imageBoost  = 15
	minScore    = 40
	maxScore    = 100
	threshold   = 55
	defaultWait = 500 * time.Millisecond
)

// Input is the report material the heuristic inspects.
type Input struct {
	Title       string
	Description string
	Image       string // encoded photo payload, empty when absent
	WasteType   string
}

// Result is the heuristic's judgement.
type Result struct {
	Verified   bool
	Confidence int // 0-100
}

// Verifier estimates whether a report is genuine.
type Verifier interface {
	Verify(ctx context.Context, in Input) (Result, error)
}

// Heuristic scores reports with a rolling hash over the concatenated text,
// boosted when a photo is attached. It resolves after a fixed short delay to
// mimic a remote classifier.
type Heuristic struct {
	wait time.Duration
}

// Option configures Heuristic behavior.
type Option func(*Heuristic)

// WithDelay overrides the simulated classification latency.
func WithDelay(d time.Duration) Option {
	return func(h *Heuristic) {
		if d >= 0 {
			h.wait = d
		}
	}
}

// NewHeuristic constructs the default verifier.
func NewHeuristic(opts ...Option) *Heuristic {
	h := &Heuristic{wait: defaultWait}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Verify scores the input. The only failure mode is context cancellation
// while waiting out the simulated delay.
func (h *Heuristic) Verify(ctx context.Context, in Input) (Result, error) {
	res := Score(in)
	if h.wait > 0 {
		timer := time.NewTimer(h.wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-timer.C:
		}
	}
	return res, nil
}

// Score computes the deterministic confidence for an input: a rolling hash of
// the lowercased text modulo 101, +15 when an image is present (capped at
// 100), floored at 40. Verified at confidence >= 55.
func Score(in Input) Result {
	text := strings.ToLower(in.Title + in.Description + in.WasteType)
	score := 0
	for _, ch := range []byte(text) {
		score = (score*31 + int(ch)) % 101
	}
	if in.Image != "" {
		score += imageBoost
		if score > maxScore {
			score = maxScore
		}
	}
	if score < minScore {
		score = minScore
	}
	return Result{Verified: score >= threshold, Confidence: score}
}
