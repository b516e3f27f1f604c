package gslides

import (
	"encoding/json"
	"fmt"
)

// Page is the polymorphic container for slides, layouts, masters, and notes
// pages, tagged by PageType. Slides omit the tag on the wire. Exactly the
// properties object matching the tag may be populated.
type Page struct {
	ObjectID         string            `json:"objectId,omitempty"`
	PageType         PageType          `json:"pageType,omitempty"`
	PageElements     []*PageElement    `json:"pageElements,omitempty"`
	RevisionID       string            `json:"revisionId,omitempty"`
	PageProperties   *PageProperties   `json:"pageProperties,omitempty"`
	SlideProperties  *SlideProperties  `json:"slideProperties,omitempty"`
	LayoutProperties *LayoutProperties `json:"layoutProperties,omitempty"`
	NotesProperties  *NotesProperties  `json:"notesProperties,omitempty"`
	MasterProperties *MasterProperties `json:"masterProperties,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// propertiesForPageType lists which properties variants each page type may
// carry. Unknown page types skip the check so future vendor variants still
// decode.
var propertiesForPageType = map[PageType]map[string]bool{
	PageTypeSlide:       {"slideProperties": true},
	PageTypeLayout:      {"layoutProperties": true},
	PageTypeMaster:      {"masterProperties": true},
	PageTypeNotes:       {"notesProperties": true},
	PageTypeNotesMaster: {"notesProperties": true, "masterProperties": true},
}

// DecodePage parses the JSON body of a presentations.pages.get response
// into the typed model.
func DecodePage(data []byte) (*Page, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse page JSON: %w", err)
	}
	var p Page
	if err := p.decodeAPI(m); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Page) decodeAPI(raw any) error {
	if err := decodeStruct(p, raw); err != nil {
		return err
	}
	typ := p.PageType
	if typ == "" {
		typ = PageTypeSlide
	}
	allowed, known := propertiesForPageType[typ]
	if !known {
		return nil
	}
	checks := []struct {
		key     string
		present bool
	}{
		{"slideProperties", p.SlideProperties != nil},
		{"layoutProperties", p.LayoutProperties != nil},
		{"notesProperties", p.NotesProperties != nil},
		{"masterProperties", p.MasterProperties != nil},
	}
	for _, c := range checks {
		if c.present && !allowed[c.key] {
			return fmt.Errorf("%w: page %q of type %s carries %s",
				ErrUnsupportedVariant, p.ObjectID, typ, c.key)
		}
	}
	return nil
}

// Encode returns the page's wire form.
func (p *Page) Encode() (map[string]any, error) {
	return encodeStruct(p)
}

// Elements returns the page's elements of the given kind, in page order.
func (p *Page) Elements(kind ElementKind) []*PageElement {
	if p == nil {
		return nil
	}
	var out []*PageElement
	for _, el := range p.PageElements {
		if el.Kind() == kind {
			out = append(out, el)
		}
	}
	return out
}

// ElementByID finds an element on the page by object id, descending into
// groups.
func (p *Page) ElementByID(objectID string) *PageElement {
	if p == nil {
		return nil
	}
	return findElement(p.PageElements, objectID)
}

func findElement(elements []*PageElement, objectID string) *PageElement {
	for _, el := range elements {
		if el.ObjectID == objectID {
			return el
		}
		if g, ok := el.Element.(*Group); ok {
			if found := findElement(g.Children, objectID); found != nil {
				return found
			}
		}
	}
	return nil
}

// NotesPage returns the slide's notes page, or nil for non-slide pages.
func (p *Page) NotesPage() *Page {
	if p == nil || p.SlideProperties == nil {
		return nil
	}
	return p.SlideProperties.NotesPage
}

// SpeakerNotesObjectID returns the id of the shape that holds the slide's
// speaker notes, resolving through the notes page.
func (p *Page) SpeakerNotesObjectID() string {
	notes := p.NotesPage()
	if notes == nil || notes.NotesProperties == nil {
		return ""
	}
	return notes.NotesProperties.SpeakerNotesObjectID
}

// SpeakerNotes returns the slide's speaker notes as flat text: the content
// of the notes page's body placeholder. On a notes page it reads the
// placeholder directly.
func (p *Page) SpeakerNotes() string {
	if p == nil {
		return ""
	}
	if notes := p.NotesPage(); notes != nil {
		return notes.SpeakerNotes()
	}
	for _, el := range p.PageElements {
		s, ok := el.Element.(*Shape)
		if !ok || s.Placeholder == nil || s.Text == nil {
			continue
		}
		if s.Placeholder.Type == PlaceholderBody {
			return s.Text.Text()
		}
	}
	return ""
}

type PageProperties struct {
	PageBackgroundFill *PageBackgroundFill `json:"pageBackgroundFill,omitempty"`
	ColorScheme        *ColorScheme        `json:"colorScheme,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type PageBackgroundFill struct {
	PropertyState        PropertyState         `json:"propertyState,omitempty"`
	SolidFill            *SolidFill            `json:"solidFill,omitempty"`
	StretchedPictureFill *StretchedPictureFill `json:"stretchedPictureFill,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type StretchedPictureFill struct {
	ContentURL *string `json:"contentUrl,omitempty"`
	Size       *Size   `json:"size,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// SlideProperties carries a slide's layout and master references and its
// notes page. The notes page is an owned subtree on the wire, not a
// reference.
type SlideProperties struct {
	LayoutObjectID string `json:"layoutObjectId,omitempty"`
	MasterObjectID string `json:"masterObjectId,omitempty"`
	NotesPage      *Page  `json:"notesPage,omitempty"`
	IsSkipped      *bool  `json:"isSkipped,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type LayoutProperties struct {
	MasterObjectID string  `json:"masterObjectId,omitempty"`
	Name           *string `json:"name,omitempty"`
	DisplayName    *string `json:"displayName,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type NotesProperties struct {
	SpeakerNotesObjectID string `json:"speakerNotesObjectId,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type MasterProperties struct {
	DisplayName *string `json:"displayName,omitempty"`

	UnknownFields map[string]any `json:"-"`
}
