package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/smorand/gslides-go/internal/cache"
)

// ErrTokenNotFound reports that a store holds no token under the key.
var ErrTokenNotFound = errors.New("token not found")

// TokenStore persists OAuth2 tokens between runs. Load returns
// ErrTokenNotFound when no token exists under the key.
type TokenStore interface {
	Load(ctx context.Context, key string) (*oauth2.Token, error)
	Save(ctx context.Context, key string, tok *oauth2.Token) error
	Delete(ctx context.Context, key string) error
}

// MemoryStore keeps tokens in process memory. Useful for tests and for
// services that authenticate once at startup.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]*oauth2.Token
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]*oauth2.Token)}
}

func (s *MemoryStore) Load(ctx context.Context, key string) (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tok, ok := s.tokens[key]
	if !ok {
		return nil, ErrTokenNotFound
	}
	dup := *tok
	return &dup, nil
}

func (s *MemoryStore) Save(ctx context.Context, key string, tok *oauth2.Token) error {
	dup := *tok
	s.mu.Lock()
	s.tokens[key] = &dup
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.tokens, key)
	s.mu.Unlock()
	return nil
}

// FileStore keeps one JSON file per key under a directory, created on
// first save. Token files are written with mode 0600. Keys must be plain
// names without path separators.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Load(ctx context.Context, key string) (*oauth2.Token, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read token file: %w", err)
	}

	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("decode token file %s: %w", s.path(key), err)
	}
	return &tok, nil
}

func (s *FileStore) Save(ctx context.Context, key string, tok *oauth2.Token) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	if err := os.WriteFile(s.path(key), data, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// CachedStoreConfig adjusts the in-memory layer of a CachedStore.
type CachedStoreConfig struct {
	MaxEntries int           // default 500
	TTL        time.Duration // default 55 minutes, capped by token expiry
	Logger     *slog.Logger
}

// CachedStore fronts a TokenStore with an in-memory cache so hot keys
// skip the file or Firestore round-trip.
type CachedStore struct {
	store TokenStore
	cache *cache.TokenCache
}

func NewCachedStore(store TokenStore, cfg CachedStoreConfig) *CachedStore {
	return &CachedStore{
		store: store,
		cache: cache.NewTokenCache(cache.TokenConfig{
			MaxEntries: cfg.MaxEntries,
			TTL:        cfg.TTL,
			Logger:     cfg.Logger,
		}),
	}
}

func (s *CachedStore) Load(ctx context.Context, key string) (*oauth2.Token, error) {
	if tok, ok := s.cache.Get(key); ok {
		return tok, nil
	}
	tok, err := s.store.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	s.cache.Put(key, tok)
	return tok, nil
}

func (s *CachedStore) Save(ctx context.Context, key string, tok *oauth2.Token) error {
	if err := s.store.Save(ctx, key, tok); err != nil {
		return err
	}
	s.cache.Put(key, tok)
	return nil
}

func (s *CachedStore) Delete(ctx context.Context, key string) error {
	s.cache.Invalidate(key)
	return s.store.Delete(ctx, key)
}
