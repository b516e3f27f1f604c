package gslides

import "strings"

// TextContent is the text body of a shape or table cell: a flat sequence of
// text elements indexed in UTF-16 code units, plus the list definitions its
// bullets reference.
type TextContent struct {
	TextElements []*TextElement   `json:"textElements,omitempty"`
	Lists        map[string]*List `json:"lists,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// TextElement is one span of the flattened text: a paragraph marker opening
// a paragraph, a literal text run, or an auto-substituted spot such as a
// slide number.
type TextElement struct {
	StartIndex      *int64           `json:"startIndex,omitempty"`
	EndIndex        *int64           `json:"endIndex,omitempty"`
	ParagraphMarker *ParagraphMarker `json:"paragraphMarker,omitempty"`
	TextRun         *TextRun         `json:"textRun,omitempty"`
	AutoText        *AutoText        `json:"autoText,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type TextRun struct {
	Content *string    `json:"content,omitempty"`
	Style   *TextStyle `json:"style,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type AutoText struct {
	Type    AutoTextType `json:"type,omitempty"`
	Content *string      `json:"content,omitempty"`
	Style   *TextStyle   `json:"style,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// ParagraphMarker opens a paragraph and carries its style and bullet. It
// spans the paragraph's whole index range but contributes no literal text.
type ParagraphMarker struct {
	Style  *ParagraphStyle `json:"style,omitempty"`
	Bullet *Bullet         `json:"bullet,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// Bullet marks a paragraph as a list item of the referenced list.
type Bullet struct {
	ListID       string     `json:"listId,omitempty"`
	NestingLevel *int64     `json:"nestingLevel,omitempty"`
	Glyph        *string    `json:"glyph,omitempty"`
	BulletStyle  *TextStyle `json:"bulletStyle,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// List holds per-nesting-level bullet styling, keyed by level ("0" to "8").
type List struct {
	ListID       string                   `json:"listId,omitempty"`
	NestingLevel map[string]*NestingLevel `json:"nestingLevel,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type NestingLevel struct {
	BulletStyle *TextStyle `json:"bulletStyle,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// Text returns the flattened literal text: the concatenated content of every
// text run and auto-text span, in order.
func (t *TextContent) Text() string {
	if t == nil {
		return ""
	}
	var b strings.Builder
	for _, te := range t.TextElements {
		if te == nil {
			continue
		}
		if te.TextRun != nil && te.TextRun.Content != nil {
			b.WriteString(*te.TextRun.Content)
		}
		if te.AutoText != nil && te.AutoText.Content != nil {
			b.WriteString(*te.AutoText.Content)
		}
	}
	return b.String()
}
