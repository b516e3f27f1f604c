package cache

import (
	"log/slog"
	"time"

	gslides "github.com/smorand/gslides-go"
)

// PresentationConfig holds presentation cache sizing.
type PresentationConfig struct {
	MaxEntries int
	TTL        time.Duration
	Logger     *slog.Logger
}

// DefaultPresentationConfig returns the sizing used by the client: 100
// decks for 5 minutes.
func DefaultPresentationConfig() PresentationConfig {
	return PresentationConfig{
		MaxEntries: 100,
		TTL:        5 * time.Minute,
		Logger:     slog.Default(),
	}
}

// PresentationCache is a read-through cache for presentations.get, keyed by
// presentation id. It stores the raw response body and decodes per Get, so
// every caller receives an independent tree it may freely mutate. The
// client invalidates an id after each successful write against it.
type PresentationCache struct {
	lru    *LRU[[]byte]
	logger *slog.Logger
}

// NewPresentationCache returns an empty cache.
func NewPresentationCache(cfg PresentationConfig) *PresentationCache {
	if cfg.MaxEntries == 0 {
		cfg.MaxEntries = 100
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Minute
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &PresentationCache{
		lru: New[[]byte](Config{
			MaxEntries: cfg.MaxEntries,
			DefaultTTL: cfg.TTL,
			Logger:     cfg.Logger,
		}),
		logger: cfg.Logger,
	}
}

// Get decodes and returns the cached presentation. A body that no longer
// decodes is dropped and reported as a miss.
func (c *PresentationCache) Get(presentationID string) (*gslides.Presentation, bool) {
	body, ok := c.lru.Get(presentationID)
	if !ok {
		return nil, false
	}
	p, err := gslides.DecodePresentation(body)
	if err != nil {
		c.lru.Delete(presentationID)
		c.logger.Warn("dropping undecodable cached presentation",
			slog.String("presentation_id", presentationID),
			slog.String("error", err.Error()),
		)
		return nil, false
	}
	return p, true
}

// Put stores the raw presentations.get body under presentationID.
func (c *PresentationCache) Put(presentationID string, body []byte) {
	c.lru.Set(presentationID, body)
}

// Invalidate drops the cached body for presentationID.
func (c *PresentationCache) Invalidate(presentationID string) {
	c.lru.Delete(presentationID)
}

// Clear drops everything.
func (c *PresentationCache) Clear() { c.lru.Clear() }

// Len returns the number of cached decks.
func (c *PresentationCache) Len() int { return c.lru.Len() }

// Metrics returns the underlying traffic counters.
func (c *PresentationCache) Metrics() Metrics { return c.lru.Metrics() }
