package gslides

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// Service is the remote surface the editor drives. The client package
// provides the production implementation; tests substitute their own.
type Service interface {
	// GetPresentation fetches a presentation by id.
	GetPresentation(ctx context.Context, presentationID string) (*Presentation, error)

	// GetPage fetches a single page of a presentation.
	GetPage(ctx context.Context, presentationID, pageObjectID string) (*Page, error)

	// CreatePresentation creates a presentation. The API honors the title
	// and an optional presentationId; it returns the created resource.
	CreatePresentation(ctx context.Context, p *Presentation) (*Presentation, error)

	// BatchUpdate applies the requests in order against presentationID.
	BatchUpdate(ctx context.Context, presentationID string, reqs []*Request) (*BatchUpdateResponse, error)
}

var timeNowFunc = time.Now

var objectIDSeq atomic.Uint64

// GenerateObjectID returns a page element id that is unique within the
// process: prefix, creation time, and a sequence number. Ids appear in
// requests before the server ever sees the element, so they only need to
// avoid colliding with ids already in the presentation.
func GenerateObjectID(prefix string) string {
	return fmt.Sprintf("%s_%d_%d", prefix, timeNowFunc().Unix(), objectIDSeq.Add(1))
}

// EditorConfig carries the editor's dependencies.
type EditorConfig struct {
	// Logger receives diagnostics. Defaults to slog.Default.
	Logger *slog.Logger
}

// Editor composes model-level batches and drives them through a Service.
// It owns the multi-call flows: copying slides across presentations,
// recreating elements, rewriting speaker notes.
type Editor struct {
	svc    Service
	logger *slog.Logger
}

// NewEditor returns an editor backed by svc.
func NewEditor(svc Service, cfg EditorConfig) *Editor {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Editor{svc: svc, logger: logger}
}

// SlideOptions configures CreateBlankSlide. The zero value appends an
// unthemed slide at the end of the presentation.
type SlideOptions struct {
	// ObjectID pre-assigns the new slide's id.
	ObjectID string

	// InsertionIndex places the slide; nil appends.
	InsertionIndex *int64

	// Layout applies a layout, by id or by predefined name.
	Layout *LayoutReference

	// PlaceholderIDMappings pre-assigns ids to placeholders inherited from
	// the layout.
	PlaceholderIDMappings []*LayoutPlaceholderIDMapping
}

// CreateBlankSlide adds a slide and returns its object id.
func (e *Editor) CreateBlankSlide(ctx context.Context, presentationID string, opts *SlideOptions) (string, error) {
	if opts == nil {
		opts = &SlideOptions{}
	}
	if err := opts.Layout.Validate(); err != nil {
		return "", err
	}
	resp, err := e.svc.BatchUpdate(ctx, presentationID, []*Request{{CreateSlide: &CreateSlideRequest{
		ObjectID:              opts.ObjectID,
		InsertionIndex:        opts.InsertionIndex,
		SlideLayoutReference:  opts.Layout,
		PlaceholderIDMappings: opts.PlaceholderIDMappings,
	}}})
	if err != nil {
		return "", fmt.Errorf("create slide: %w", err)
	}
	id := replyObjectID(resp, 0)
	if id == "" {
		return "", fmt.Errorf("%w: createSlide returned no object id", ErrMissingReply)
	}
	return id, nil
}

// DuplicateObject duplicates a slide or page element and returns the new
// object's id. idMap optionally pre-assigns ids to the duplicate and its
// descendants, keyed by the source ids.
func (e *Editor) DuplicateObject(ctx context.Context, presentationID, objectID string, idMap map[string]string) (string, error) {
	resp, err := e.svc.BatchUpdate(ctx, presentationID, []*Request{{DuplicateObject: &DuplicateObjectRequest{
		ObjectID:  objectID,
		ObjectIDs: idMap,
	}}})
	if err != nil {
		return "", fmt.Errorf("duplicate %q: %w", objectID, err)
	}
	id := replyObjectID(resp, 0)
	if id == "" {
		return "", fmt.Errorf("%w: duplicateObject returned no object id", ErrMissingReply)
	}
	return id, nil
}

// DeleteObject removes a slide or page element.
func (e *Editor) DeleteObject(ctx context.Context, presentationID, objectID string) error {
	_, err := e.svc.BatchUpdate(ctx, presentationID, []*Request{{DeleteObject: &DeleteObjectRequest{
		ObjectID: objectID,
	}}})
	if err != nil {
		return fmt.Errorf("delete %q: %w", objectID, err)
	}
	return nil
}

// MoveSlides moves the named slides, preserving their order, so that the
// first lands at insertionIndex in the deck as it was before the move.
func (e *Editor) MoveSlides(ctx context.Context, presentationID string, slideIDs []string, insertionIndex int64) error {
	_, err := e.svc.BatchUpdate(ctx, presentationID, []*Request{{UpdateSlidesPosition: &UpdateSlidesPositionRequest{
		SlideObjectIDs: slideIDs,
		InsertionIndex: Int64(insertionIndex),
	}}})
	if err != nil {
		return fmt.Errorf("move slides: %w", err)
	}
	return nil
}

// GroupElements groups the named elements, which must live on the same page,
// and returns the group's id.
func (e *Editor) GroupElements(ctx context.Context, presentationID string, childIDs []string) (string, error) {
	if len(childIDs) < 2 {
		return "", errors.New("group elements: need at least two children")
	}
	resp, err := e.svc.BatchUpdate(ctx, presentationID, []*Request{{GroupObjects: &GroupObjectsRequest{
		ChildrenObjectIDs: childIDs,
	}}})
	if err != nil {
		return "", fmt.Errorf("group elements: %w", err)
	}
	id := replyObjectID(resp, 0)
	if id == "" {
		return "", fmt.Errorf("%w: groupObjects returned no object id", ErrMissingReply)
	}
	return id, nil
}

// UngroupElements dissolves the named groups. Children keep their ids and
// their visual position.
func (e *Editor) UngroupElements(ctx context.Context, presentationID string, groupIDs ...string) error {
	_, err := e.svc.BatchUpdate(ctx, presentationID, []*Request{{UngroupObjects: &UngroupObjectsRequest{
		ObjectIDs: groupIDs,
	}}})
	if err != nil {
		return fmt.Errorf("ungroup elements: %w", err)
	}
	return nil
}

// ReplaceAllText replaces every match of find with replace across the whole
// presentation and reports how many instances changed.
func (e *Editor) ReplaceAllText(ctx context.Context, presentationID, find, replace string, matchCase bool) (int64, error) {
	resp, err := e.svc.BatchUpdate(ctx, presentationID, []*Request{{ReplaceAllText: &ReplaceAllTextRequest{
		ReplaceText: replace,
		ContainsText: &SubstringMatchCriteria{
			Text:      find,
			MatchCase: Bool(matchCase),
		},
	}}})
	if err != nil {
		return 0, fmt.Errorf("replace all text: %w", err)
	}
	if len(resp.Replies) > 0 && resp.Replies[0] != nil {
		if r := resp.Replies[0].ReplaceAllText; r != nil && r.OccurrencesChanged != nil {
			return *r.OccurrencesChanged, nil
		}
	}
	return 0, nil
}

// CreateElements recreates the given elements on the named page in one
// batch. Elements without an object id get a generated one; the assigned
// ids are returned in input order. The inputs are not modified.
func (e *Editor) CreateElements(ctx context.Context, presentationID, pageID string, elements []*PageElement) ([]string, error) {
	ids := make([]string, len(elements))
	var reqs []*Request
	for i, el := range elements {
		target := el
		if target.ObjectID == "" {
			cp := *el
			cp.ObjectID = GenerateObjectID(string(el.Kind()))
			target = &cp
		}
		ids[i] = target.ObjectID
		r, err := CreateRequests(target, pageID)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		reqs = append(reqs, r...)
	}
	if len(reqs) == 0 {
		return ids, nil
	}
	if _, err := e.svc.BatchUpdate(ctx, presentationID, reqs); err != nil {
		return nil, fmt.Errorf("create elements: %w", err)
	}
	return ids, nil
}

// WriteSlideCopy recreates slide in the presentation named by
// presentationID, which may differ from the one the slide was read from as
// long as both share the layout. The copy starts from a blank slide on the
// source slide's layout; elements inherited from the layout are then matched
// to the source's elements kind by kind, in order, and updated in place,
// while surplus source elements are created fresh.
//
// Page background and color scheme sometimes fail server-side on themed
// decks, so that step is applied in its own batch and only logged on
// failure, leaving the rest of the copy intact.
func (e *Editor) WriteSlideCopy(ctx context.Context, presentationID string, slide *Page, insertionIndex *int64) (*Page, error) {
	if slide.SlideProperties == nil || slide.SlideProperties.LayoutObjectID == "" {
		return nil, errors.New("write slide copy: slide carries no layout reference")
	}

	newID, err := e.CreateBlankSlide(ctx, presentationID, &SlideOptions{
		InsertionIndex: insertionIndex,
		Layout:         &LayoutReference{LayoutID: slide.SlideProperties.LayoutObjectID},
	})
	if err != nil {
		return nil, err
	}

	target, err := e.svc.GetPage(ctx, presentationID, newID)
	if err != nil {
		return nil, fmt.Errorf("fetch created slide %q: %w", newID, err)
	}

	if slide.PageProperties != nil {
		props, fields, err := encodedProperties(slide.PageProperties)
		if err != nil {
			return nil, fmt.Errorf("slide %q: %w", slide.ObjectID, err)
		}
		if len(props) > 0 {
			_, err := e.svc.BatchUpdate(ctx, presentationID, []*Request{{UpdatePageProperties: &UpdatePagePropertiesRequest{
				ObjectID:       newID,
				PageProperties: props,
				Fields:         fields,
			}}})
			if err != nil {
				e.logger.Error("apply page properties", "slide", newID, "error", err)
			}
		}
	}

	reqs, err := slideCopyRequests(slide, target, newID)
	if err != nil {
		return nil, err
	}
	if len(reqs) > 0 {
		if _, err := e.svc.BatchUpdate(ctx, presentationID, reqs); err != nil {
			return nil, fmt.Errorf("write slide copy: %w", err)
		}
	}

	return e.svc.GetPage(ctx, presentationID, newID)
}

// slideCopyRequests builds the second batch of a slide copy: the slide
// properties, then per-kind element writes against the blank slide's
// inherited elements.
func slideCopyRequests(slide, target *Page, newID string) ([]*Request, error) {
	var reqs []*Request

	if slide.SlideProperties != nil {
		props, _, err := encodedProperties(slide.SlideProperties)
		if err != nil {
			return nil, fmt.Errorf("slide %q: %w", slide.ObjectID, err)
		}
		delete(props, "masterObjectId")
		delete(props, "layoutObjectId")
		delete(props, "notesPage")
		if len(props) > 0 {
			reqs = append(reqs, &Request{UpdateSlideProperties: &UpdateSlidePropertiesRequest{
				ObjectID:        newID,
				SlideProperties: props,
				Fields:          FieldMask(props),
			}})
		}
	}

	for _, kind := range ElementKinds {
		want := slide.Elements(kind)
		have := target.Elements(kind)
		for i, el := range want {
			if i < len(have) {
				r, err := updateRequests(el, have[i].ObjectID, true)
				if err != nil {
					return nil, fmt.Errorf("element %q: %w", el.ObjectID, err)
				}
				reqs = append(reqs, r...)
				continue
			}

			cp := *el
			cp.ObjectID = GenerateObjectID(string(kind))
			created, err := CreateRequests(&cp, newID)
			if err != nil {
				return nil, fmt.Errorf("element %q: %w", el.ObjectID, err)
			}
			reqs = append(reqs, created...)
			// Creation already wrote the text, so only the properties and
			// metadata remain.
			updated, err := updateRequests(&cp, cp.ObjectID, false)
			if err != nil {
				return nil, fmt.Errorf("element %q: %w", el.ObjectID, err)
			}
			reqs = append(reqs, updated...)
		}
	}
	return reqs, nil
}

// ClonePresentation creates a new presentation from p's encoded form,
// without its presentationId and revisionId, and returns the created
// presentation freshly fetched.
func (e *Editor) ClonePresentation(ctx context.Context, p *Presentation) (*Presentation, error) {
	cp := *p
	cp.PresentationID = ""
	cp.RevisionID = ""
	created, err := e.svc.CreatePresentation(ctx, &cp)
	if err != nil {
		return nil, fmt.Errorf("clone presentation: %w", err)
	}
	return e.svc.GetPresentation(ctx, created.PresentationID)
}

// SyncFromCloud refetches p and replaces its contents in place, so every
// holder of the pointer observes the server's current state. Local edits
// that were never written are lost.
func (e *Editor) SyncFromCloud(ctx context.Context, p *Presentation) error {
	if p.PresentationID == "" {
		return errors.New("sync from cloud: presentation carries no id")
	}
	fresh, err := e.svc.GetPresentation(ctx, p.PresentationID)
	if err != nil {
		return fmt.Errorf("sync presentation %q: %w", p.PresentationID, err)
	}
	*p = *fresh
	return nil
}

// WriteSpeakerNotes replaces the slide's speaker notes with text. The
// existing notes are deleted only when present, because deleteText on an
// empty body fails remotely.
func (e *Editor) WriteSpeakerNotes(ctx context.Context, presentationID string, slide *Page, text string) error {
	notesID := slide.SpeakerNotesObjectID()
	if notesID == "" {
		return fmt.Errorf("slide %q carries no speaker notes shape", slide.ObjectID)
	}

	var reqs []*Request
	if slide.SpeakerNotes() != "" {
		reqs = append(reqs, &Request{DeleteText: &DeleteTextRequest{
			ObjectID:  notesID,
			TextRange: &Range{Type: RangeTypeAll},
		}})
	}
	if text != "" {
		reqs = append(reqs, &Request{InsertText: &InsertTextRequest{
			ObjectID:       notesID,
			Text:           text,
			InsertionIndex: Int64(0),
		}})
	}
	if len(reqs) == 0 {
		return nil
	}
	if _, err := e.svc.BatchUpdate(ctx, presentationID, reqs); err != nil {
		return fmt.Errorf("write speaker notes: %w", err)
	}
	return nil
}

func replyObjectID(resp *BatchUpdateResponse, i int) string {
	if resp == nil || i >= len(resp.Replies) {
		return ""
	}
	return resp.Replies[i].ObjectID()
}
