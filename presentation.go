package gslides

import (
	"encoding/json"
	"fmt"
)

// Presentation is the root aggregate: the slide deck plus the layout and
// master pages its slides inherit from.
type Presentation struct {
	PresentationID string  `json:"presentationId,omitempty"`
	PageSize       *Size   `json:"pageSize,omitempty"`
	Slides         []*Page `json:"slides,omitempty"`
	Title          *string `json:"title,omitempty"`
	Masters        []*Page `json:"masters,omitempty"`
	Layouts        []*Page `json:"layouts,omitempty"`
	Locale         *string `json:"locale,omitempty"`
	RevisionID     string  `json:"revisionId,omitempty"`
	NotesMaster    *Page   `json:"notesMaster,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// DecodePresentation parses the JSON body of a presentations.get response
// into the typed model.
func DecodePresentation(data []byte) (*Presentation, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse presentation JSON: %w", err)
	}
	return DecodePresentationMap(m)
}

// DecodePresentationMap decodes an already-unmarshaled presentation object.
func DecodePresentationMap(m map[string]any) (*Presentation, error) {
	var p Presentation
	if err := decodeStruct(&p, m); err != nil {
		return nil, err
	}
	return &p, nil
}

// Encode returns the presentation's wire form. Re-encoding an unmodified
// decoded presentation reproduces the input field for field.
func (p *Presentation) Encode() (map[string]any, error) {
	return encodeStruct(p)
}

// EncodeJSON renders the wire form as JSON with sorted keys.
func (p *Presentation) EncodeJSON() ([]byte, error) {
	m, err := p.Encode()
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

// SlideByID returns the slide with the given object id, or nil.
func (p *Presentation) SlideByID(objectID string) *Page {
	return pageByID(p.Slides, objectID)
}

// LayoutByID returns the layout page with the given object id, or nil.
func (p *Presentation) LayoutByID(objectID string) *Page {
	return pageByID(p.Layouts, objectID)
}

// MasterByID returns the master page with the given object id, or nil.
func (p *Presentation) MasterByID(objectID string) *Page {
	return pageByID(p.Masters, objectID)
}

// SlideIndex returns the position of a slide in the deck, or -1.
func (p *Presentation) SlideIndex(objectID string) int {
	for i, s := range p.Slides {
		if s.ObjectID == objectID {
			return i
		}
	}
	return -1
}

// LayoutOf resolves a slide's layout reference, or nil when the slide names
// no layout.
func (p *Presentation) LayoutOf(slide *Page) *Page {
	if slide == nil || slide.SlideProperties == nil {
		return nil
	}
	return p.LayoutByID(slide.SlideProperties.LayoutObjectID)
}

func pageByID(pages []*Page, objectID string) *Page {
	if objectID == "" {
		return nil
	}
	for _, pg := range pages {
		if pg.ObjectID == objectID {
			return pg
		}
	}
	return nil
}
