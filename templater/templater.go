// Package templater builds and fills slide decks on top of the client: it
// renders Markdown into slides, extracts slide text back out as Markdown,
// and drives a {{placeholder}} template workflow over copy + replaceAllText.
//
// Every write goes through Backend.BatchUpdateAll, so request batches are
// chunked at the API's per-call limit and inherit the client's pacing and
// retry behavior.
package templater

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	gslides "github.com/smorand/gslides-go"
	"github.com/smorand/gslides-go/client"
)

// Sentinel errors for templater operations.
var (
	ErrElementNotFound = errors.New("element not found")
	ErrSlideNotFound   = errors.New("slide not found")
)

// Backend is the slice of the API client the templater drives.
// *client.Client implements it.
type Backend interface {
	GetPresentation(ctx context.Context, presentationID string) (*gslides.Presentation, error)
	CreatePresentation(ctx context.Context, p *gslides.Presentation) (*gslides.Presentation, error)
	BatchUpdateAll(ctx context.Context, presentationID string, reqs []*gslides.Request) ([]*gslides.BatchUpdateResponse, error)
	CopyPresentation(ctx context.Context, sourceID, title, folderID string) (*client.CopyInfo, error)
}

var _ Backend = (*client.Client)(nil)

// Config holds the configuration for the Templater.
type Config struct {
	// Logger receives diagnostics. Defaults to slog.Default.
	Logger *slog.Logger
}

// Templater renders Markdown into presentations and fills templates.
type Templater struct {
	backend Backend
	logger  *slog.Logger
}

// New returns a Templater driving the given backend.
func New(backend Backend, cfg Config) *Templater {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Templater{backend: backend, logger: logger}
}

// SetText replaces the text of a shape with rendered Markdown. The existing
// text is deleted only when present, because deleteText on an empty body
// fails remotely.
func (t *Templater) SetText(ctx context.Context, presentationID, objectID, source string) error {
	pres, err := t.backend.GetPresentation(ctx, presentationID)
	if err != nil {
		return fmt.Errorf("fetch presentation %q: %w", presentationID, err)
	}

	el := findElement(pres, objectID)
	if el == nil {
		return fmt.Errorf("%w: %q in presentation %q", ErrElementNotFound, objectID, presentationID)
	}

	var reqs []*gslides.Request
	if shape, ok := el.Element.(*gslides.Shape); ok && strings.TrimSpace(shape.Text.Text()) != "" {
		reqs = append(reqs, &gslides.Request{DeleteText: &gslides.DeleteTextRequest{
			ObjectID:  objectID,
			TextRange: &gslides.Range{Type: gslides.RangeTypeAll},
		}})
	}
	reqs = append(reqs, markdownProgram(source).requests(objectID)...)
	if len(reqs) == 0 {
		return nil
	}

	if _, err := t.backend.BatchUpdateAll(ctx, presentationID, reqs); err != nil {
		return fmt.Errorf("set text of %q: %w", objectID, err)
	}

	t.logger.Debug("replaced element text",
		slog.String("presentation_id", presentationID),
		slog.String("object_id", objectID),
	)
	return nil
}

// ReplaceImage swaps the picture of an existing image element for the one at
// url, keeping the element's size and position.
func (t *Templater) ReplaceImage(ctx context.Context, presentationID, imageObjectID, url string) error {
	_, err := t.backend.BatchUpdateAll(ctx, presentationID, []*gslides.Request{{
		ReplaceImage: &gslides.ReplaceImageRequest{
			ImageObjectID: imageObjectID,
			URL:           url,
		},
	}})
	if err != nil {
		return fmt.Errorf("replace image %q: %w", imageObjectID, err)
	}
	return nil
}

// TextBoxOptions places a text box on its slide. Coordinates and dimensions
// are in points.
type TextBoxOptions struct {
	X, Y          float64
	Width, Height float64
}

// AddTextBox creates a text box on the named page and fills it with rendered
// Markdown. It returns the new element's object id.
func (t *Templater) AddTextBox(ctx context.Context, presentationID, pageObjectID, source string, opts TextBoxOptions) (string, error) {
	if opts.Width == 0 {
		opts.Width = 400
	}
	if opts.Height == 0 {
		opts.Height = 200
	}

	boxID := gslides.GenerateObjectID("textbox")
	reqs := append(
		[]*gslides.Request{textBoxRequest(boxID, pageObjectID, opts)},
		markdownProgram(source).requests(boxID)...,
	)

	if _, err := t.backend.BatchUpdateAll(ctx, presentationID, reqs); err != nil {
		return "", fmt.Errorf("add text box to %q: %w", pageObjectID, err)
	}
	return boxID, nil
}

func textBoxRequest(objectID, pageObjectID string, opts TextBoxOptions) *gslides.Request {
	return &gslides.Request{CreateShape: &gslides.CreateShapeRequest{
		ObjectID:  objectID,
		ShapeType: gslides.ShapeTextBox,
		ElementProperties: &gslides.PageElementProperties{
			PageObjectID: pageObjectID,
			Size:         sizePT(opts.Width, opts.Height),
			Transform:    translatePT(opts.X, opts.Y),
		},
	}}
}

func sizePT(w, h float64) *gslides.Size {
	return &gslides.Size{
		Width:  &gslides.SizeValue{Dimension: *gslides.Points(w)},
		Height: &gslides.SizeValue{Dimension: *gslides.Points(h)},
	}
}

func translatePT(x, y float64) *gslides.AffineTransform {
	return &gslides.AffineTransform{
		ScaleX:     gslides.Float64(1),
		ScaleY:     gslides.Float64(1),
		TranslateX: gslides.Float64(x),
		TranslateY: gslides.Float64(y),
		Unit:       gslides.UnitPT,
	}
}

// findElement locates an element by id across all slides, descending into
// groups.
func findElement(p *gslides.Presentation, objectID string) *gslides.PageElement {
	for _, slide := range p.Slides {
		if el := slide.ElementByID(objectID); el != nil {
			return el
		}
	}
	return nil
}

// forEachElement visits every element on the page, descending into groups.
func forEachElement(page *gslides.Page, fn func(*gslides.PageElement)) {
	var walk func(els []*gslides.PageElement)
	walk = func(els []*gslides.PageElement) {
		for _, el := range els {
			if el == nil {
				continue
			}
			fn(el)
			if g, ok := el.Element.(*gslides.Group); ok {
				walk(g.Children)
			}
		}
	}
	walk(page.PageElements)
}

// flatReplies flattens chunked batch responses into one reply list aligned
// with the submitted requests.
func flatReplies(responses []*gslides.BatchUpdateResponse) []*gslides.Reply {
	return client.Replies(responses)
}
