// Package permissions answers whether the authenticated principal may read
// or write a presentation, using Drive file capabilities. The client
// consults a Checker before spending a batch update on a presentation the
// caller cannot edit anyway.
package permissions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/smorand/gslides-go/internal/cache"
)

// Level is the access level the principal holds on a file.
type Level int

const (
	LevelNone Level = iota
	LevelRead
	LevelWrite
)

func (l Level) String() string {
	switch l {
	case LevelNone:
		return "none"
	case LevelRead:
		return "read"
	case LevelWrite:
		return "write"
	default:
		return "unknown"
	}
}

var (
	ErrNoWriteAccess = errors.New("no write access to presentation")
	ErrNoReadAccess  = errors.New("no read access to presentation")
	ErrNotFound      = errors.New("presentation not found")
	ErrCheckFailed   = errors.New("permission check failed")
)

// CapabilitySource fetches the capability view of a Drive file.
type CapabilitySource interface {
	FileCapabilities(ctx context.Context, fileID string) (*drive.FileCapabilities, error)
}

// DriveSource reads capabilities through the Drive API.
type DriveSource struct {
	Files *drive.FilesService
}

func (s *DriveSource) FileCapabilities(ctx context.Context, fileID string) (*drive.FileCapabilities, error) {
	f, err := s.Files.Get(fileID).
		Fields("id,capabilities").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	return f.Capabilities, nil
}

// Config holds permission checker configuration.
type Config struct {
	CacheEntries int           // maximum cached levels, default 1000
	CacheTTL     time.Duration // how long a level is trusted, default 5 minutes
	Logger       *slog.Logger
}

// DefaultConfig returns the default checker configuration.
func DefaultConfig() Config {
	return Config{
		CacheEntries: 1000,
		CacheTTL:     5 * time.Minute,
		Logger:       slog.Default(),
	}
}

// Checker resolves and caches per-presentation access levels.
type Checker struct {
	cfg    Config
	source CapabilitySource
	levels *cache.LRU[Level]
}

// New creates a checker over the given capability source.
func New(source CapabilitySource, cfg Config) *Checker {
	def := DefaultConfig()
	if cfg.CacheEntries <= 0 {
		cfg.CacheEntries = def.CacheEntries
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = def.CacheTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = def.Logger
	}

	return &Checker{
		cfg:    cfg,
		source: source,
		levels: cache.New[Level](cache.Config{
			MaxEntries: cfg.CacheEntries,
			DefaultTTL: cfg.CacheTTL,
			Logger:     cfg.Logger,
		}),
	}
}

// CheckRead returns nil when the principal may read the presentation.
func (c *Checker) CheckRead(ctx context.Context, presentationID string) error {
	level, err := c.Level(ctx, presentationID)
	if err != nil {
		return err
	}
	if level < LevelRead {
		return ErrNoReadAccess
	}
	return nil
}

// CheckWrite returns nil when the principal may modify the presentation.
func (c *Checker) CheckWrite(ctx context.Context, presentationID string) error {
	level, err := c.Level(ctx, presentationID)
	if err != nil {
		return err
	}
	if level < LevelWrite {
		return ErrNoWriteAccess
	}
	return nil
}

// Level returns the access level on a presentation, consulting the Drive
// API on cache misses. Lookup failures are never cached.
func (c *Checker) Level(ctx context.Context, presentationID string) (Level, error) {
	if level, ok := c.levels.Get(presentationID); ok {
		c.cfg.Logger.Debug("permission cache hit",
			slog.String("presentation_id", presentationID),
			slog.String("level", level.String()),
		)
		return level, nil
	}

	caps, err := c.source.FileCapabilities(ctx, presentationID)
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == http.StatusNotFound {
			return LevelNone, ErrNotFound
		}
		return LevelNone, fmt.Errorf("%w: %v", ErrCheckFailed, err)
	}

	// Being able to fetch the file at all proves read access; the
	// capability decides whether writes are allowed too.
	level := LevelRead
	if caps != nil && caps.CanEdit {
		level = LevelWrite
	}
	c.levels.Set(presentationID, level)

	c.cfg.Logger.Debug("permission level resolved",
		slog.String("presentation_id", presentationID),
		slog.String("level", level.String()),
	)
	return level, nil
}

// Invalidate drops the cached level for a presentation, forcing the next
// check to consult the Drive API again.
func (c *Checker) Invalidate(presentationID string) {
	c.levels.Delete(presentationID)
}
