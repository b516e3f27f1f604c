package client

import (
	"context"
	"fmt"

	"google.golang.org/api/slides/v1"

	"github.com/smorand/gslides-go/internal/retry"
)

// Thumbnail is a rendered snapshot of one page. The content URL is served
// by Google and expires after a short time.
type Thumbnail struct {
	ContentURL string
	Width      int64
	Height     int64
}

// Thumbnail renders the page at the large preset (1600px wide).
func (c *Client) Thumbnail(ctx context.Context, presentationID, pageObjectID string) (*Thumbnail, error) {
	th, err := retry.DoWithResult(ctx, c.retry, func(ctx context.Context) (*slides.Thumbnail, int, error) {
		t, err := c.slides.Presentations.Pages.GetThumbnail(presentationID, pageObjectID).
			ThumbnailPropertiesThumbnailSize("LARGE").
			Context(ctx).
			Do()
		return t, statusOf(err), err
	})
	if err != nil {
		return nil, fmt.Errorf("thumbnail of %q page %q: %w", presentationID, pageObjectID, err)
	}
	return &Thumbnail{
		ContentURL: th.ContentUrl,
		Width:      th.Width,
		Height:     th.Height,
	}, nil
}
