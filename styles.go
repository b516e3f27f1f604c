package gslides

// TextStyle is the character-level style of a text run. Every field is
// optional; absence means the value is inherited from the placeholder or
// paragraph defaults, never "off".
type TextStyle struct {
	BackgroundColor    *OptionalColor      `json:"backgroundColor,omitempty"`
	ForegroundColor    *OptionalColor      `json:"foregroundColor,omitempty"`
	Bold               *bool               `json:"bold,omitempty"`
	Italic             *bool               `json:"italic,omitempty"`
	FontFamily         *string             `json:"fontFamily,omitempty"`
	FontSize           *Dimension          `json:"fontSize,omitempty"`
	Link               *Link               `json:"link,omitempty"`
	BaselineOffset     BaselineOffset      `json:"baselineOffset,omitempty"`
	SmallCaps          *bool               `json:"smallCaps,omitempty"`
	Strikethrough      *bool               `json:"strikethrough,omitempty"`
	Underline          *bool               `json:"underline,omitempty"`
	WeightedFontFamily *WeightedFontFamily `json:"weightedFontFamily,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type WeightedFontFamily struct {
	FontFamily *string `json:"fontFamily,omitempty"`
	Weight     *int64  `json:"weight,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// Link is a hyperlink target: a URL, a relative slide reference, a page id,
// or a zero-based slide index.
type Link struct {
	URL          *string           `json:"url,omitempty"`
	RelativeLink RelativeSlideLink `json:"relativeLink,omitempty"`
	PageObjectID string            `json:"pageObjectId,omitempty"`
	SlideIndex   *int64            `json:"slideIndex,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// ParagraphStyle is the paragraph-level style attached to a paragraph
// marker.
type ParagraphStyle struct {
	LineSpacing     *float64      `json:"lineSpacing,omitempty"`
	Alignment       Alignment     `json:"alignment,omitempty"`
	IndentStart     *Dimension    `json:"indentStart,omitempty"`
	IndentEnd       *Dimension    `json:"indentEnd,omitempty"`
	SpaceAbove      *Dimension    `json:"spaceAbove,omitempty"`
	SpaceBelow      *Dimension    `json:"spaceBelow,omitempty"`
	IndentFirstLine *Dimension    `json:"indentFirstLine,omitempty"`
	Direction       TextDirection `json:"direction,omitempty"`
	SpacingMode     SpacingMode   `json:"spacingMode,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// Outline is the border drawn around a shape, image, or video.
type Outline struct {
	OutlineFill   *OutlineFill  `json:"outlineFill,omitempty"`
	Weight        *Dimension    `json:"weight,omitempty"`
	DashStyle     DashStyle     `json:"dashStyle,omitempty"`
	PropertyState PropertyState `json:"propertyState,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type OutlineFill struct {
	SolidFill *SolidFill `json:"solidFill,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type Shadow struct {
	Type            ShadowType        `json:"type,omitempty"`
	Transform       *AffineTransform  `json:"transform,omitempty"`
	Alignment       RectanglePosition `json:"alignment,omitempty"`
	BlurRadius      *Dimension        `json:"blurRadius,omitempty"`
	Color           *OpaqueColor      `json:"color,omitempty"`
	Alpha           *float64          `json:"alpha,omitempty"`
	RotateWithShape *bool             `json:"rotateWithShape,omitempty"`
	PropertyState   PropertyState     `json:"propertyState,omitempty"`

	UnknownFields map[string]any `json:"-"`
}
