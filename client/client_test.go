package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	gslides "github.com/smorand/gslides-go"
	"github.com/smorand/gslides-go/internal/retry"
)

const presentationBody = `{"presentationId":"pres1","title":"Deck","revisionId":"r1",` +
	`"slides":[{"objectId":"s1","futureField":{"keep":true}}]}`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestClient points a client with fast retries at a fake API server.
func newTestClient(t *testing.T, cfg Config, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	if cfg.Logger == nil {
		cfg.Logger = quietLogger()
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 2
	}
	if cfg.RetryInitialDelay == 0 {
		cfg.RetryInitialDelay = time.Millisecond
	}

	c, err := New(context.Background(), cfg,
		option.WithEndpoint(srv.URL),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return c
}

func apiError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	fmt.Fprintf(w, `{"error":{"code":%d,"message":%q}}`, code, message)
}

func TestGetPresentationDecodesWireJSON(t *testing.T) {
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/presentations/pres1", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(presentationBody))
	})
	c := newTestClient(t, Config{}, mux)

	p, err := c.GetPresentation(context.Background(), "pres1")
	require.NoError(t, err)
	assert.Equal(t, "pres1", p.PresentationID)
	require.NotNil(t, p.Title)
	assert.Equal(t, "Deck", *p.Title)
	require.Len(t, p.Slides, 1)
	assert.Contains(t, p.Slides[0].UnknownFields, "futureField")
	assert.Equal(t, int32(1), hits.Load())
}

func TestGetPresentationServesFromCache(t *testing.T) {
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/presentations/pres1", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(presentationBody))
	})
	c := newTestClient(t, Config{}, mux)

	first, err := c.GetPresentation(context.Background(), "pres1")
	require.NoError(t, err)
	second, err := c.GetPresentation(context.Background(), "pres1")
	require.NoError(t, err)

	assert.Equal(t, int32(1), hits.Load())
	// Each call owns its tree.
	assert.NotSame(t, first, second)

	c.InvalidateCache("pres1")
	_, err = c.GetPresentation(context.Background(), "pres1")
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestGetPresentationCacheDisabled(t *testing.T) {
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/presentations/pres1", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(presentationBody))
	})
	c := newTestClient(t, Config{DisableCache: true}, mux)

	for i := 0; i < 2; i++ {
		_, err := c.GetPresentation(context.Background(), "pres1")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), hits.Load())
}

func TestGetPresentationNotFound(t *testing.T) {
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/presentations/missing", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		apiError(w, http.StatusNotFound, "Requested entity was not found.")
	})
	c := newTestClient(t, Config{}, mux)

	_, err := c.GetPresentation(context.Background(), "missing")
	require.Error(t, err)
	var gerr *googleapi.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, http.StatusNotFound, gerr.Code)
	// 404 is not transient; one attempt only.
	assert.Equal(t, int32(1), hits.Load())
}

func TestGetPresentationRetriesTransientFailures(t *testing.T) {
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/presentations/pres1", func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) <= 2 {
			apiError(w, http.StatusServiceUnavailable, "backend unavailable")
			return
		}
		_, _ = w.Write([]byte(presentationBody))
	})
	c := newTestClient(t, Config{}, mux)

	p, err := c.GetPresentation(context.Background(), "pres1")
	require.NoError(t, err)
	assert.Equal(t, "pres1", p.PresentationID)
	assert.Equal(t, int32(3), hits.Load())
}

func TestGetPresentationRetryExhausted(t *testing.T) {
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/presentations/pres1", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		apiError(w, http.StatusServiceUnavailable, "backend unavailable")
	})
	c := newTestClient(t, Config{}, mux)

	_, err := c.GetPresentation(context.Background(), "pres1")
	require.Error(t, err)
	assert.ErrorIs(t, err, retry.ErrExhausted)
	var serr *retry.StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusServiceUnavailable, serr.StatusCode)
	assert.Equal(t, int32(3), hits.Load())
}

func TestGetPage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/presentations/pres1/pages/s1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`{"objectId":"s1","pageType":"SLIDE","revisionId":"r2"}`))
	})
	c := newTestClient(t, Config{}, mux)

	page, err := c.GetPage(context.Background(), "pres1", "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", page.ObjectID)
	assert.Equal(t, gslides.PageTypeSlide, page.PageType)
}

func TestCreatePresentation(t *testing.T) {
	var gotBody map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/presentations", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"presentationId":"new1","title":"Deck","revisionId":"r0"}`))
	})
	c := newTestClient(t, Config{}, mux)

	created, err := c.CreatePresentation(context.Background(), &gslides.Presentation{Title: gslides.String("Deck")})
	require.NoError(t, err)
	assert.Equal(t, "new1", created.PresentationID)
	assert.Equal(t, map[string]any{"title": "Deck"}, gotBody)
}

func TestCreatePresentationNil(t *testing.T) {
	var gotBody map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/presentations", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"presentationId":"new2"}`))
	})
	c := newTestClient(t, Config{}, mux)

	created, err := c.CreatePresentation(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "new2", created.PresentationID)
	assert.Empty(t, gotBody)
}

func TestBatchUpdateSendsEncodedRequests(t *testing.T) {
	var gotBody map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/presentations/pres1:batchUpdate", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"presentationId":"pres1","replies":[{"createSlide":{"objectId":"new-slide"}}]}`))
	})
	c := newTestClient(t, Config{}, mux)

	resp, err := c.BatchUpdate(context.Background(), "pres1", []*gslides.Request{
		{CreateSlide: &gslides.CreateSlideRequest{ObjectID: "new-slide"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "pres1", resp.PresentationID)
	require.Len(t, resp.Replies, 1)
	assert.Equal(t, "new-slide", resp.Replies[0].ObjectID())

	want := map[string]any{
		"requests": []any{
			map[string]any{"createSlide": map[string]any{"objectId": "new-slide"}},
		},
	}
	assert.Equal(t, want, gotBody)
}

func TestBatchUpdateEmptyBatchSkipsAPI(t *testing.T) {
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { hits.Add(1) })
	c := newTestClient(t, Config{}, mux)

	resp, err := c.BatchUpdate(context.Background(), "pres1", nil)
	require.NoError(t, err)
	assert.Equal(t, "pres1", resp.PresentationID)
	assert.Zero(t, hits.Load())
}

func TestBatchUpdateInvalidatesCache(t *testing.T) {
	var gets atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/presentations/pres1", func(w http.ResponseWriter, r *http.Request) {
		gets.Add(1)
		_, _ = w.Write([]byte(presentationBody))
	})
	mux.HandleFunc("/v1/presentations/pres1:batchUpdate", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"presentationId":"pres1","replies":[{}]}`))
	})
	c := newTestClient(t, Config{}, mux)
	ctx := context.Background()

	_, err := c.GetPresentation(ctx, "pres1")
	require.NoError(t, err)
	_, err = c.GetPresentation(ctx, "pres1")
	require.NoError(t, err)
	assert.Equal(t, int32(1), gets.Load())

	_, err = c.BatchUpdate(ctx, "pres1", []*gslides.Request{
		{DeleteObject: &gslides.DeleteObjectRequest{ObjectID: "s1"}},
	})
	require.NoError(t, err)

	_, err = c.GetPresentation(ctx, "pres1")
	require.NoError(t, err)
	assert.Equal(t, int32(2), gets.Load())
}

func TestBatchUpdatePermissionChecked(t *testing.T) {
	tests := []struct {
		name     string
		canEdit  bool
		wantErr  error
		wantHits int32
	}{
		{name: "writer goes through", canEdit: true, wantHits: 1},
		{name: "reader is refused", canEdit: false, wantErr: ErrNoWriteAccess, wantHits: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var batchHits atomic.Int32
			mux := http.NewServeMux()
			mux.HandleFunc("/files/pres1", func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprintf(w, `{"id":"pres1","capabilities":{"canEdit":%t}}`, tt.canEdit)
			})
			mux.HandleFunc("/v1/presentations/pres1:batchUpdate", func(w http.ResponseWriter, r *http.Request) {
				batchHits.Add(1)
				_, _ = w.Write([]byte(`{"presentationId":"pres1","replies":[{}]}`))
			})
			c := newTestClient(t, Config{CheckPermissions: true}, mux)

			_, err := c.BatchUpdate(context.Background(), "pres1", []*gslides.Request{
				{DeleteObject: &gslides.DeleteObjectRequest{ObjectID: "x"}},
			})
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantHits, batchHits.Load())
		})
	}
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, 0, statusOf(nil))
	assert.Equal(t, 0, statusOf(errors.New("plain")))
	gerr := &googleapi.Error{Code: http.StatusForbidden}
	assert.Equal(t, http.StatusForbidden, statusOf(fmt.Errorf("call: %w", gerr)))
}
