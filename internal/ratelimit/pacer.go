// Package ratelimit paces outbound writes to the Slides API. The API
// enforces a per-presentation write quota of roughly one request per second,
// sustained; exceeding it earns 429s that the retry layer then has to absorb.
// Pacing writes up front keeps well under the quota.
package ratelimit

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"
)

var timeNowFunc = time.Now

// Config holds the pacing policy.
type Config struct {
	// WritesPerMinute is the sustained write rate per presentation
	// (default 60, matching the observed API quota).
	WritesPerMinute float64
	// Burst is how many writes may go out back to back before pacing kicks
	// in (default 6).
	Burst int
	// Logger receives pacing diagnostics. Defaults to slog.Default.
	Logger *slog.Logger
}

// DefaultConfig returns the policy matching the public Slides quota.
func DefaultConfig() Config {
	return Config{
		WritesPerMinute: 60,
		Burst:           6,
		Logger:          slog.Default(),
	}
}

// bucket is a token bucket refilled continuously at refillPerSec.
type bucket struct {
	mu           sync.Mutex
	tokens       float64
	max          float64
	refillPerSec float64
	last         time.Time
}

func newBucket(refillPerSec float64, burst int) *bucket {
	return &bucket{
		tokens:       float64(burst),
		max:          float64(burst),
		refillPerSec: refillPerSec,
		last:         timeNowFunc(),
	}
}

// take consumes one token if available; otherwise it reports how long until
// one will be.
func (b *bucket) take() (ok bool, retryAfter time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := timeNowFunc()
	b.tokens = math.Min(b.max, b.tokens+b.refillPerSec*now.Sub(b.last).Seconds())
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}
	need := 1 - b.tokens
	return false, time.Duration(need/b.refillPerSec*float64(time.Second)) + time.Millisecond
}

// Pacer hands out write slots, one bucket per presentation. Reads are never
// paced; the read quota is an order of magnitude higher and read bursts are
// normal.
type Pacer struct {
	cfg Config

	mu      sync.Mutex
	buckets map[string]*bucket
}

// New returns a Pacer, replacing out-of-range config values with defaults.
func New(cfg Config) *Pacer {
	def := DefaultConfig()
	if cfg.WritesPerMinute <= 0 {
		cfg.WritesPerMinute = def.WritesPerMinute
	}
	if cfg.Burst <= 0 {
		cfg.Burst = def.Burst
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Pacer{cfg: cfg, buckets: make(map[string]*bucket)}
}

func (p *Pacer) bucketFor(presentationID string) *bucket {
	p.mu.Lock()
	defer p.mu.Unlock()
	b, ok := p.buckets[presentationID]
	if !ok {
		b = newBucket(p.cfg.WritesPerMinute/60, p.cfg.Burst)
		p.buckets[presentationID] = b
	}
	return b
}

// Allow consumes a write slot for the presentation if one is available,
// without blocking. When it is not, retryAfter says how long until the next
// slot.
func (p *Pacer) Allow(presentationID string) (ok bool, retryAfter time.Duration) {
	return p.bucketFor(presentationID).take()
}

// Wait blocks until a write slot for the presentation is available or the
// context ends.
func (p *Pacer) Wait(ctx context.Context, presentationID string) error {
	b := p.bucketFor(presentationID)
	for {
		ok, retryAfter := b.take()
		if ok {
			return nil
		}
		p.cfg.Logger.Debug("pacing write",
			slog.String("presentation_id", presentationID),
			slog.Duration("wait", retryAfter),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryAfter):
		}
	}
}
