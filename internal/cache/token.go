package cache

import (
	"log/slog"
	"time"

	"golang.org/x/oauth2"
)

// TokenConfig holds token cache sizing.
type TokenConfig struct {
	MaxEntries int
	// TTL caps how long a token stays cached. Entries never outlive the
	// token's own expiry (default 55m; access tokens last an hour).
	TTL    time.Duration
	Logger *slog.Logger
}

// DefaultTokenConfig returns the sizing used by the auth layer.
func DefaultTokenConfig() TokenConfig {
	return TokenConfig{
		MaxEntries: 500,
		TTL:        55 * time.Minute,
		Logger:     slog.Default(),
	}
}

// TokenCache sits in front of a TokenStore so hot keys skip the store
// round-trip (file read, Firestore call) on every request.
type TokenCache struct {
	lru *LRU[*oauth2.Token]
	ttl time.Duration
}

// NewTokenCache returns an empty cache.
func NewTokenCache(cfg TokenConfig) *TokenCache {
	if cfg.MaxEntries == 0 {
		cfg.MaxEntries = 500
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 55 * time.Minute
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &TokenCache{
		lru: New[*oauth2.Token](Config{
			MaxEntries: cfg.MaxEntries,
			DefaultTTL: cfg.TTL,
			Logger:     cfg.Logger,
		}),
		ttl: cfg.TTL,
	}
}

// Get returns the cached token for key if it is still valid.
func (c *TokenCache) Get(key string) (*oauth2.Token, bool) {
	tok, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	if !tok.Valid() {
		c.lru.Delete(key)
		return nil, false
	}
	return tok, true
}

// Put caches the token under key. The entry expires at the configured TTL
// or at the token's own expiry, whichever comes first; tokens that are
// already invalid are not cached. Tokens without an expiry (API keys,
// long-lived service tokens) use the full TTL.
func (c *TokenCache) Put(key string, tok *oauth2.Token) {
	if tok == nil || !tok.Valid() {
		return
	}
	ttl := c.ttl
	if !tok.Expiry.IsZero() {
		if until := time.Until(tok.Expiry); until < ttl {
			ttl = until
		}
	}
	if ttl <= 0 {
		return
	}
	c.lru.SetWithTTL(key, tok, ttl)
}

// Invalidate drops the cached token for key.
func (c *TokenCache) Invalidate(key string) {
	c.lru.Delete(key)
}

// Clear drops everything.
func (c *TokenCache) Clear() { c.lru.Clear() }

// Len returns the number of cached tokens.
func (c *TokenCache) Len() int { return c.lru.Len() }
