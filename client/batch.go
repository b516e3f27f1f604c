package client

import (
	"context"
	"fmt"

	gslides "github.com/smorand/gslides-go"
)

// maxBatchRequests is the most operations sent in one batchUpdate call.
// The API applies a call's operations in order against one document
// snapshot, so with a split batch the chunk boundaries are the places where
// a failure leaves earlier work applied.
const maxBatchRequests = 50

// PartialBatchError reports a split batch that failed after at least one
// chunk had been applied.
type PartialBatchError struct {
	PresentationID string

	// Applied counts the requests confirmed applied by the completed
	// calls. The failing call may additionally have applied a prefix of
	// its own operations before the server aborted it.
	Applied int

	// Responses holds the completed calls' responses, in order.
	Responses []*gslides.BatchUpdateResponse

	// Err is the failing call's error.
	Err error
}

func (e *PartialBatchError) Error() string {
	return fmt.Sprintf("batch against %q failed after %d applied request(s): %v",
		e.PresentationID, e.Applied, e.Err)
}

func (e *PartialBatchError) Unwrap() error { return e.Err }

// BatchUpdateAll applies reqs in order, splitting them into batchUpdate
// calls of at most 50 operations. When a later chunk fails, the error is a
// *PartialBatchError carrying what the completed chunks applied; a failure
// in the first chunk surfaces unchanged. There is no rollback.
func (c *Client) BatchUpdateAll(ctx context.Context, presentationID string, reqs []*gslides.Request) ([]*gslides.BatchUpdateResponse, error) {
	if len(reqs) == 0 {
		return nil, nil
	}

	var (
		responses []*gslides.BatchUpdateResponse
		applied   int
	)
	for start := 0; start < len(reqs); start += maxBatchRequests {
		end := min(start+maxBatchRequests, len(reqs))
		resp, err := c.BatchUpdate(ctx, presentationID, reqs[start:end])
		if err != nil {
			if applied == 0 {
				return nil, err
			}
			return responses, &PartialBatchError{
				PresentationID: presentationID,
				Applied:        applied,
				Responses:      responses,
				Err:            err,
			}
		}
		responses = append(responses, resp)
		applied = end
	}
	return responses, nil
}

// Replies flattens the responses of a split batch into one reply list
// aligned with the submitted requests.
func Replies(responses []*gslides.BatchUpdateResponse) []*gslides.Reply {
	var out []*gslides.Reply
	for _, resp := range responses {
		out = append(out, resp.Replies...)
	}
	return out
}
