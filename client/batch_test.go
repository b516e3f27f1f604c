package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	gslides "github.com/smorand/gslides-go"
)

// batchRecorder fakes the batchUpdate endpoint, remembering how many
// requests each call carried and optionally failing the n-th call.
type batchRecorder struct {
	mu     sync.Mutex
	sizes  []int
	failOn int // 1-based call number to reject with 400, 0 for never
}

func (rec *batchRecorder) handle(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Requests []json.RawMessage `json:"requests"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	rec.mu.Lock()
	rec.sizes = append(rec.sizes, len(body.Requests))
	call := len(rec.sizes)
	rec.mu.Unlock()

	if rec.failOn != 0 && call == rec.failOn {
		apiError(w, http.StatusBadRequest, fmt.Sprintf("Invalid requests[%d]", call))
		return
	}

	replies := make([]map[string]any, len(body.Requests))
	for i := range replies {
		replies[i] = map[string]any{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"presentationId": "pres1",
		"replies":        replies,
	})
}

func (rec *batchRecorder) calls() []int {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]int(nil), rec.sizes...)
}

func deleteRequests(n int) []*gslides.Request {
	reqs := make([]*gslides.Request, n)
	for i := range reqs {
		reqs[i] = &gslides.Request{DeleteObject: &gslides.DeleteObjectRequest{
			ObjectID: fmt.Sprintf("obj%d", i),
		}}
	}
	return reqs
}

func TestBatchUpdateAllChunksAtFifty(t *testing.T) {
	rec := &batchRecorder{}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/presentations/pres1:batchUpdate", rec.handle)
	c := newTestClient(t, Config{}, mux)

	responses, err := c.BatchUpdateAll(context.Background(), "pres1", deleteRequests(120))
	require.NoError(t, err)
	assert.Equal(t, []int{50, 50, 20}, rec.calls())
	require.Len(t, responses, 3)
	assert.Len(t, Replies(responses), 120)
}

func TestBatchUpdateAllSingleChunk(t *testing.T) {
	rec := &batchRecorder{}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/presentations/pres1:batchUpdate", rec.handle)
	c := newTestClient(t, Config{}, mux)

	responses, err := c.BatchUpdateAll(context.Background(), "pres1", deleteRequests(3))
	require.NoError(t, err)
	assert.Equal(t, []int{3}, rec.calls())
	assert.Len(t, responses, 1)
}

func TestBatchUpdateAllEmpty(t *testing.T) {
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { hits.Add(1) })
	c := newTestClient(t, Config{}, mux)

	responses, err := c.BatchUpdateAll(context.Background(), "pres1", nil)
	require.NoError(t, err)
	assert.Nil(t, responses)
	assert.Zero(t, hits.Load())
}

func TestBatchUpdateAllPartialFailure(t *testing.T) {
	rec := &batchRecorder{failOn: 2}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/presentations/pres1:batchUpdate", rec.handle)
	c := newTestClient(t, Config{}, mux)

	responses, err := c.BatchUpdateAll(context.Background(), "pres1", deleteRequests(120))
	require.Error(t, err)

	var perr *PartialBatchError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "pres1", perr.PresentationID)
	assert.Equal(t, 50, perr.Applied)
	assert.Len(t, perr.Responses, 1)

	var gerr *googleapi.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, http.StatusBadRequest, gerr.Code)

	// The completed chunk's responses come back alongside the error.
	assert.Len(t, responses, 1)
	// The failing chunk was not retried and nothing past it was sent.
	assert.Equal(t, []int{50, 50}, rec.calls())
}

func TestBatchUpdateAllFirstChunkFailureIsPlain(t *testing.T) {
	rec := &batchRecorder{failOn: 1}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/presentations/pres1:batchUpdate", rec.handle)
	c := newTestClient(t, Config{}, mux)

	responses, err := c.BatchUpdateAll(context.Background(), "pres1", deleteRequests(60))
	require.Error(t, err)
	assert.Nil(t, responses)

	var perr *PartialBatchError
	assert.False(t, errors.As(err, &perr), "nothing applied, so no partial error")
	var gerr *googleapi.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, http.StatusBadRequest, gerr.Code)
}

func TestRepliesFlattens(t *testing.T) {
	responses := []*gslides.BatchUpdateResponse{
		{Replies: []*gslides.Reply{{}, {}}},
		{Replies: []*gslides.Reply{{}}},
	}
	assert.Len(t, Replies(responses), 3)
	assert.Empty(t, Replies(nil))
}
