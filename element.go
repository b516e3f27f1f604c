package gslides

import (
	"fmt"
	"strings"
)

// ElementKind names a PageElement variant using its wire key.
type ElementKind string

const (
	KindShape            ElementKind = "shape"
	KindTable            ElementKind = "table"
	KindImage            ElementKind = "image"
	KindVideo            ElementKind = "video"
	KindLine             ElementKind = "line"
	KindWordArt          ElementKind = "wordArt"
	KindSheetsChart      ElementKind = "sheetsChart"
	KindGroup            ElementKind = "elementGroup"
	KindSpeakerSpotlight ElementKind = "speakerSpotlight"
)

// ElementKinds lists every variant in the order the builders traverse them.
var ElementKinds = []ElementKind{
	KindShape,
	KindTable,
	KindImage,
	KindVideo,
	KindLine,
	KindWordArt,
	KindSheetsChart,
	KindGroup,
	KindSpeakerSpotlight,
}

// Element is the populated variant of a PageElement. Exactly one variant is
// present on any element the API returns; decode rejects payloads carrying
// more than one.
type Element interface {
	elementKind() ElementKind
}

// PageElement is one visual object on a page. Size and transform are always
// present on the wire; ObjectID may be empty on elements built locally that
// have not been sent to the server yet.
type PageElement struct {
	ObjectID    string
	Size        *Size
	Transform   *AffineTransform
	Title       *string
	Description *string
	Element     Element

	UnknownFields map[string]any
}

// Kind reports the populated variant, or "" when none is set.
func (e *PageElement) Kind() ElementKind {
	if e == nil || e.Element == nil {
		return ""
	}
	return e.Element.elementKind()
}

// pageElementWire is the tag-driven view of the wire object; the union is
// flattened into one optional key per variant.
type pageElementWire struct {
	ObjectID    string           `json:"objectId,omitempty"`
	Size        *Size            `json:"size,omitempty"`
	Transform   *AffineTransform `json:"transform,omitempty"`
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`

	Shape            *Shape            `json:"shape,omitempty"`
	Table            *Table            `json:"table,omitempty"`
	Image            *Image            `json:"image,omitempty"`
	Video            *Video            `json:"video,omitempty"`
	Line             *Line             `json:"line,omitempty"`
	WordArt          *WordArt          `json:"wordArt,omitempty"`
	SheetsChart      *SheetsChart      `json:"sheetsChart,omitempty"`
	ElementGroup     *Group            `json:"elementGroup,omitempty"`
	SpeakerSpotlight *SpeakerSpotlight `json:"speakerSpotlight,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

func (e *PageElement) decodeAPI(raw any) error {
	var w pageElementWire
	if err := decodeStruct(&w, raw); err != nil {
		return err
	}
	if w.Size == nil {
		return fmt.Errorf("%w: page element %q: missing size", ErrSchemaMismatch, w.ObjectID)
	}
	if w.Transform == nil {
		return fmt.Errorf("%w: page element %q: missing transform", ErrSchemaMismatch, w.ObjectID)
	}

	var present []string
	var el Element
	consider := func(key string, v Element, populated bool) {
		if populated {
			present = append(present, key)
			el = v
		}
	}
	consider("shape", w.Shape, w.Shape != nil)
	consider("table", w.Table, w.Table != nil)
	consider("image", w.Image, w.Image != nil)
	consider("video", w.Video, w.Video != nil)
	consider("line", w.Line, w.Line != nil)
	consider("wordArt", w.WordArt, w.WordArt != nil)
	consider("sheetsChart", w.SheetsChart, w.SheetsChart != nil)
	consider("elementGroup", w.ElementGroup, w.ElementGroup != nil)
	consider("speakerSpotlight", w.SpeakerSpotlight, w.SpeakerSpotlight != nil)
	if len(present) > 1 {
		return fmt.Errorf("%w: page element %q carries %s",
			ErrUnsupportedVariant, w.ObjectID, strings.Join(present, " and "))
	}

	e.ObjectID = w.ObjectID
	e.Size = w.Size
	e.Transform = w.Transform
	e.Title = w.Title
	e.Description = w.Description
	e.Element = el
	e.UnknownFields = w.UnknownFields
	return nil
}

func (e *PageElement) encodeAPI() (any, error) {
	w := pageElementWire{
		ObjectID:      e.ObjectID,
		Size:          e.Size,
		Transform:     e.Transform,
		Title:         e.Title,
		Description:   e.Description,
		UnknownFields: e.UnknownFields,
	}
	switch v := e.Element.(type) {
	case nil:
	case *Shape:
		w.Shape = v
	case *Table:
		w.Table = v
	case *Image:
		w.Image = v
	case *Video:
		w.Video = v
	case *Line:
		w.Line = v
	case *WordArt:
		w.WordArt = v
	case *SheetsChart:
		w.SheetsChart = v
	case *Group:
		w.ElementGroup = v
	case *SpeakerSpotlight:
		w.SpeakerSpotlight = v
	default:
		return nil, fmt.Errorf("%w: page element %q carries unknown element type %T",
			ErrUnsupportedVariant, e.ObjectID, e.Element)
	}
	return encodeStruct(&w)
}

// Encode returns the element's wire form.
func (e *PageElement) Encode() (map[string]any, error) {
	v, err := e.encodeAPI()
	if err != nil {
		return nil, err
	}
	return v.(map[string]any), nil
}
