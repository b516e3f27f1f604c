package gslides

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf16"
)

// CreateRequests builds the batch that recreates an element on the given
// page. The first request creates the element with its size and transform;
// for shapes, follow-up requests insert the text runs and restore each
// run's style. Elements that the API cannot create directly (groups,
// speaker spotlights) report ErrUnsupportedVariant.
//
// When e.ObjectID is set it is passed through, so the caller controls the
// new element's id. Left empty, the API assigns one; shapes that carry text
// get a generated id regardless, because the text requests must name their
// target.
func CreateRequests(e *PageElement, pageID string) ([]*Request, error) {
	if e.Element == nil {
		return nil, fmt.Errorf("%w: element %q has no variant to create", ErrUnsupportedVariant, e.ObjectID)
	}

	props := &PageElementProperties{
		PageObjectID: pageID,
		Size:         e.Size,
		Transform:    e.Transform,
	}

	switch v := e.Element.(type) {
	case *Shape:
		return createShapeRequests(e, v, props)
	case *Image:
		if v.SourceURL == nil || *v.SourceURL == "" {
			return nil, fmt.Errorf("%w: image %q has no sourceUrl to create from", ErrUnsupportedVariant, e.ObjectID)
		}
		return []*Request{{CreateImage: &CreateImageRequest{
			ObjectID:          e.ObjectID,
			ElementProperties: props,
			URL:               *v.SourceURL,
		}}}, nil
	case *Table:
		if v.Rows == nil || v.Columns == nil || *v.Rows <= 0 || *v.Columns <= 0 {
			return nil, fmt.Errorf("%w: table %q needs positive rows and columns", ErrUnsupportedVariant, e.ObjectID)
		}
		return []*Request{{CreateTable: &CreateTableRequest{
			ObjectID:          e.ObjectID,
			ElementProperties: props,
			Rows:              *v.Rows,
			Columns:           *v.Columns,
		}}}, nil
	case *Video:
		return createVideoRequests(e, v, props)
	case *Line:
		return []*Request{{CreateLine: &CreateLineRequest{
			ObjectID:          e.ObjectID,
			ElementProperties: props,
			LineCategory:      lineCategoryFor(v),
		}}}, nil
	case *WordArt:
		if v.RenderedText == nil || *v.RenderedText == "" {
			return nil, fmt.Errorf("%w: word art %q has no renderedText", ErrUnsupportedVariant, e.ObjectID)
		}
		return []*Request{{CreateWordArt: &CreateWordArtRequest{
			ObjectID:          e.ObjectID,
			ElementProperties: props,
			RenderedText:      *v.RenderedText,
		}}}, nil
	case *SheetsChart:
		if v.SpreadsheetID == "" {
			return nil, fmt.Errorf("%w: sheets chart %q has no spreadsheetId", ErrUnsupportedVariant, e.ObjectID)
		}
		if v.ChartID == nil {
			return nil, fmt.Errorf("%w: sheets chart %q has no chartId", ErrUnsupportedVariant, e.ObjectID)
		}
		return []*Request{{CreateSheetsChart: &CreateSheetsChartRequest{
			ObjectID:          e.ObjectID,
			ElementProperties: props,
			SpreadsheetID:     v.SpreadsheetID,
			ChartID:           v.ChartID,
			LinkingMode:       LinkingModeLinked,
		}}}, nil
	default:
		return nil, fmt.Errorf("%w: cannot create a %s element", ErrUnsupportedVariant, e.Kind())
	}
}

func createShapeRequests(e *PageElement, s *Shape, props *PageElementProperties) ([]*Request, error) {
	if s.ShapeType == "" {
		return nil, fmt.Errorf("%w: shape %q has no shapeType", ErrUnsupportedVariant, e.ObjectID)
	}

	objectID := e.ObjectID
	if objectID == "" && hasInsertableText(s.Text) {
		// The text requests must name their target, so assign an id here
		// instead of letting the API pick one.
		objectID = GenerateObjectID("shape")
	}
	text, err := textRequests(objectID, s.Text)
	if err != nil {
		return nil, err
	}

	reqs := []*Request{{CreateShape: &CreateShapeRequest{
		ObjectID:          objectID,
		ElementProperties: props,
		ShapeType:         s.ShapeType,
	}}}
	return append(reqs, text...), nil
}

func createVideoRequests(e *PageElement, v *Video, props *PageElementProperties) ([]*Request, error) {
	if v.Source == nil || v.Source.Type == "" {
		return nil, fmt.Errorf("%w: video %q has no source type", ErrUnsupportedVariant, e.ObjectID)
	}
	id := v.Source.ID
	if id == "" {
		id = v.ID
	}
	if id == "" {
		return nil, fmt.Errorf("%w: video %q has no source id", ErrUnsupportedVariant, e.ObjectID)
	}
	return []*Request{{CreateVideo: &CreateVideoRequest{
		ObjectID:          e.ObjectID,
		ElementProperties: props,
		Source:            v.Source.Type,
		ID:                id,
	}}}, nil
}

// lineCategoryFor picks the createLine category: the stored category when
// present, otherwise the prefix of the connector type, falling back to
// straight.
func lineCategoryFor(l *Line) LineCategory {
	if l.LineCategory != "" {
		return l.LineCategory
	}
	t := string(l.LineType)
	switch {
	case strings.HasPrefix(t, "BENT"):
		return LineCategoryBent
	case strings.HasPrefix(t, "CURVED"):
		return LineCategoryCurved
	default:
		return LineCategoryStraight
	}
}

// textRequests rebuilds a text body on the named element: one insertText per
// run, each followed by the updateTextStyle that restores the run's style.
// Interleaving keeps every style range valid against the text present at the
// time it applies. Paragraph markers carry no insertable content and are
// skipped; the paragraph structure re-emerges from the newline characters
// inside the runs themselves.
func textRequests(objectID string, t *TextContent) ([]*Request, error) {
	if t == nil {
		return nil, nil
	}

	runs := make([]*TextElement, 0, len(t.TextElements))
	for _, te := range t.TextElements {
		if te != nil && te.TextRun != nil && te.TextRun.Content != nil {
			runs = append(runs, te)
		}
	}
	sort.SliceStable(runs, func(i, j int) bool {
		return startIndex(runs[i]) < startIndex(runs[j])
	})

	var reqs []*Request
	for _, te := range runs {
		content := *te.TextRun.Content
		if content == "" {
			continue
		}
		start := startIndex(te)
		reqs = append(reqs, &Request{InsertText: &InsertTextRequest{
			ObjectID:       objectID,
			Text:           content,
			InsertionIndex: Int64(start),
		}})

		if te.TextRun.Style == nil {
			continue
		}
		styled, err := encodeStruct(te.TextRun.Style)
		if err != nil {
			return nil, fmt.Errorf("encode text style at index %d: %w", start, err)
		}
		if len(styled) == 0 {
			continue
		}
		end := start + int64(len(utf16.Encode([]rune(content))))
		reqs = append(reqs, &Request{UpdateTextStyle: &UpdateTextStyleRequest{
			ObjectID: objectID,
			Style:    te.TextRun.Style,
			TextRange: &Range{
				Type:       RangeTypeFixed,
				StartIndex: Int64(start),
				EndIndex:   Int64(end),
			},
			Fields: FieldMask(styled),
		}})
	}
	return reqs, nil
}

func startIndex(te *TextElement) int64 {
	if te.StartIndex == nil {
		return 0
	}
	return *te.StartIndex
}

func hasInsertableText(t *TextContent) bool {
	if t == nil {
		return false
	}
	for _, te := range t.TextElements {
		if te != nil && te.TextRun != nil && te.TextRun.Content != nil && *te.TextRun.Content != "" {
			return true
		}
	}
	return false
}
