// Package client is the production implementation of gslides.Service. It
// speaks to the Slides API over raw JSON for the fidelity-critical calls
// (presentations.get, pages.get, presentations.create, batchUpdate), because
// the generated slides/v1 structs drop unknown fields and explicit zero
// values that the model is contracted to preserve. Everything else, page
// thumbnails and the Drive-side operations, goes through the generated
// services.
//
// Writes are paced per presentation and transient failures (429 and the 5xx
// family) are retried with exponential backoff. Reads can be served from an
// LRU cache that is invalidated after every write.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/slides/v1"
	htransport "google.golang.org/api/transport/http"

	gslides "github.com/smorand/gslides-go"
	"github.com/smorand/gslides-go/auth"
	"github.com/smorand/gslides-go/internal/cache"
	"github.com/smorand/gslides-go/internal/permissions"
	"github.com/smorand/gslides-go/internal/ratelimit"
	"github.com/smorand/gslides-go/internal/retry"
)

// slidesBasePath is the REST endpoint for the raw calls. Overridden by
// option.WithEndpoint, which also moves the generated services.
const slidesBasePath = "https://slides.googleapis.com/"

// Errors surfaced by the optional pre-write permission check.
var (
	// ErrNoWriteAccess reports a write refused because the authenticated
	// principal lacks edit capability on the presentation.
	ErrNoWriteAccess = permissions.ErrNoWriteAccess

	// ErrNotFound reports a presentation the permission check could not see
	// at all.
	ErrNotFound = permissions.ErrNotFound
)

// Config tunes the client. The zero value of every field means "use the
// default"; DefaultConfig spells the defaults out.
type Config struct {
	// Logger receives client diagnostics. Defaults to slog.Default.
	Logger *slog.Logger

	// MaxRetries caps how often a call failing with a retryable status is
	// reissued (default 5).
	MaxRetries int
	// RetryInitialDelay is the backoff before the first retry, doubling up
	// to 16s with jitter (default 1s).
	RetryInitialDelay time.Duration

	// WritesPerMinute paces batchUpdate traffic per presentation
	// (default 60, matching the public quota).
	WritesPerMinute float64
	// WriteBurst is how many writes may go out back to back before pacing
	// kicks in (default 6).
	WriteBurst int

	// CacheEntries bounds the presentations.get read-through cache
	// (default 100 decks).
	CacheEntries int
	// CacheTTL is how long a cached presentation is trusted when no write
	// goes through this client (default 5 minutes).
	CacheTTL time.Duration
	// DisableCache turns the read-through cache off entirely.
	DisableCache bool

	// CheckPermissions verifies Drive edit capability before each write,
	// so a read-only principal fails with ErrNoWriteAccess instead of a
	// rejected batch. Off by default.
	CheckPermissions bool
}

// DefaultConfig returns the configuration used when fields are left zero.
func DefaultConfig() Config {
	return Config{
		Logger:            slog.Default(),
		MaxRetries:        5,
		RetryInitialDelay: time.Second,
		WritesPerMinute:   60,
		WriteBurst:        6,
		CacheEntries:      100,
		CacheTTL:          5 * time.Minute,
	}
}

// Client calls the Slides and Drive APIs on behalf of the typed model.
type Client struct {
	logger *slog.Logger

	hc       *http.Client
	basePath string

	slides *slides.Service
	drive  *drive.Service

	retry   *retry.Retryer
	pacer   *ratelimit.Pacer
	cache   *cache.PresentationCache
	checker *permissions.Checker
}

var _ gslides.Service = (*Client)(nil)

// New builds a client. Authentication comes in through opts, typically
// option.WithTokenSource from the auth package, option.WithCredentialsFile
// for a service account, or nothing for application default credentials.
func New(ctx context.Context, cfg Config, opts ...option.ClientOption) (*Client, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	// Prepend so caller-provided scopes win.
	opts = append([]option.ClientOption{option.WithScopes(auth.DefaultScopes...)}, opts...)

	hc, endpoint, err := htransport.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("build HTTP client: %w", err)
	}
	if endpoint == "" {
		endpoint = slidesBasePath
	}

	slidesSvc, err := slides.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("build slides service: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("build drive service: %w", err)
	}

	c := &Client{
		logger:   cfg.Logger,
		hc:       hc,
		basePath: endpoint,
		slides:   slidesSvc,
		drive:    driveSvc,
		retry: retry.New(retry.Config{
			MaxRetries:   cfg.MaxRetries,
			InitialDelay: cfg.RetryInitialDelay,
			Logger:       cfg.Logger,
		}),
		pacer: ratelimit.New(ratelimit.Config{
			WritesPerMinute: cfg.WritesPerMinute,
			Burst:           cfg.WriteBurst,
			Logger:          cfg.Logger,
		}),
	}
	if !cfg.DisableCache {
		c.cache = cache.NewPresentationCache(cache.PresentationConfig{
			MaxEntries: cfg.CacheEntries,
			TTL:        cfg.CacheTTL,
			Logger:     cfg.Logger,
		})
	}
	if cfg.CheckPermissions {
		c.checker = permissions.New(
			&permissions.DriveSource{Files: driveSvc.Files},
			permissions.Config{Logger: cfg.Logger},
		)
	}
	return c, nil
}

// GetPresentation fetches a presentation, serving it from the cache when a
// fresh copy is there. Every call returns an independent tree.
func (c *Client) GetPresentation(ctx context.Context, presentationID string) (*gslides.Presentation, error) {
	if c.cache != nil {
		if p, ok := c.cache.Get(presentationID); ok {
			c.logger.Debug("presentation served from cache",
				slog.String("presentation_id", presentationID),
			)
			return p, nil
		}
	}

	body, err := c.call(ctx, http.MethodGet, "v1/presentations/"+url.PathEscape(presentationID), nil)
	if err != nil {
		return nil, fmt.Errorf("get presentation %q: %w", presentationID, err)
	}
	p, err := gslides.DecodePresentation(body)
	if err != nil {
		return nil, fmt.Errorf("get presentation %q: %w", presentationID, err)
	}
	if c.cache != nil {
		c.cache.Put(presentationID, body)
	}
	return p, nil
}

// GetPage fetches a single page. Pages are not cached; slide-level reads
// are cheap and usually follow a write that just changed them.
func (c *Client) GetPage(ctx context.Context, presentationID, pageObjectID string) (*gslides.Page, error) {
	path := "v1/presentations/" + url.PathEscape(presentationID) +
		"/pages/" + url.PathEscape(pageObjectID)
	body, err := c.call(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("get page %q of %q: %w", pageObjectID, presentationID, err)
	}
	p, err := gslides.DecodePage(body)
	if err != nil {
		return nil, fmt.Errorf("get page %q of %q: %w", pageObjectID, presentationID, err)
	}
	return p, nil
}

// CreatePresentation creates a presentation. The API honors the title and an
// optional pre-assigned presentationId and ignores any provided content, so
// callers that want slides recreated go through Editor.ClonePresentation.
func (c *Client) CreatePresentation(ctx context.Context, p *gslides.Presentation) (*gslides.Presentation, error) {
	body := map[string]any{}
	if p != nil {
		enc, err := p.Encode()
		if err != nil {
			return nil, fmt.Errorf("create presentation: %w", err)
		}
		body = enc
	}

	data, err := c.call(ctx, http.MethodPost, "v1/presentations", body)
	if err != nil {
		return nil, fmt.Errorf("create presentation: %w", err)
	}
	created, err := gslides.DecodePresentation(data)
	if err != nil {
		return nil, fmt.Errorf("create presentation: %w", err)
	}
	var title string
	if created.Title != nil {
		title = *created.Title
	}
	c.logger.Info("presentation created",
		slog.String("presentation_id", created.PresentationID),
		slog.String("title", title),
	)
	return created, nil
}

// BatchUpdate applies the requests in order against presentationID. An
// empty batch is a no-op and never reaches the API. The call is paced, and
// on any outcome the cached copy of the presentation is dropped: a failed
// batch may still have applied a prefix of its operations.
func (c *Client) BatchUpdate(ctx context.Context, presentationID string, reqs []*gslides.Request) (*gslides.BatchUpdateResponse, error) {
	if len(reqs) == 0 {
		return &gslides.BatchUpdateResponse{PresentationID: presentationID}, nil
	}

	if c.checker != nil {
		if err := c.checker.CheckWrite(ctx, presentationID); err != nil {
			return nil, fmt.Errorf("batch update %q: %w", presentationID, err)
		}
	}

	encoded, err := gslides.EncodeRequests(reqs)
	if err != nil {
		return nil, fmt.Errorf("batch update %q: %w", presentationID, err)
	}

	if err := c.pacer.Wait(ctx, presentationID); err != nil {
		return nil, err
	}

	path := "v1/presentations/" + url.PathEscape(presentationID) + ":batchUpdate"
	data, err := c.call(ctx, http.MethodPost, path, map[string]any{"requests": encoded})
	if c.cache != nil {
		c.cache.Invalidate(presentationID)
	}
	if err != nil {
		return nil, fmt.Errorf("batch update %q: %w", presentationID, err)
	}

	resp, err := gslides.DecodeBatchUpdateResponse(data)
	if err != nil {
		return nil, fmt.Errorf("batch update %q: %w", presentationID, err)
	}
	c.logger.Debug("batch applied",
		slog.String("presentation_id", presentationID),
		slog.Int("requests", len(reqs)),
	)
	return resp, nil
}

// InvalidateCache drops the cached copy of a presentation, for callers that
// know it changed behind this client's back.
func (c *Client) InvalidateCache(presentationID string) {
	if c.cache != nil {
		c.cache.Invalidate(presentationID)
	}
}

// call issues one raw REST request with retries. body is encoded once; each
// attempt resends the same bytes.
func (c *Client) call(ctx context.Context, method, path string, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
	}
	return retry.DoWithResult(ctx, c.retry, func(ctx context.Context) ([]byte, int, error) {
		return c.doRaw(ctx, method, path, payload)
	})
}

// doRaw performs a single HTTP exchange against the raw REST surface.
func (c *Client) doRaw(ctx context.Context, method, path string, payload []byte) ([]byte, int, error) {
	var rdr io.Reader
	if payload != nil {
		rdr = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, googleapi.ResolveRelative(c.basePath, path), rdr)
	if err != nil {
		return nil, 0, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer res.Body.Close()

	if err := googleapi.CheckResponse(res); err != nil {
		return nil, res.StatusCode, err
	}
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, res.StatusCode, fmt.Errorf("read response body: %w", err)
	}
	return data, res.StatusCode, nil
}

// statusOf extracts the HTTP status from a generated-service error so the
// retry policy can classify it. Non-API errors report 0, which no policy
// retries.
func statusOf(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}
