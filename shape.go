package gslides

// Shape is a generic geometry element, optionally holding text.
type Shape struct {
	ShapeType       ShapeType        `json:"shapeType,omitempty"`
	Text            *TextContent     `json:"text,omitempty"`
	ShapeProperties *ShapeProperties `json:"shapeProperties,omitempty"`
	Placeholder     *Placeholder     `json:"placeholder,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

func (*Shape) elementKind() ElementKind { return KindShape }

// Placeholder links a shape to the layout or master slot it inherits from.
type Placeholder struct {
	Type           PlaceholderType `json:"type,omitempty"`
	Index          *int64          `json:"index,omitempty"`
	ParentObjectID string          `json:"parentObjectId,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type ShapeProperties struct {
	ShapeBackgroundFill *ShapeBackgroundFill `json:"shapeBackgroundFill,omitempty"`
	Outline             *Outline             `json:"outline,omitempty"`
	Shadow              *Shadow              `json:"shadow,omitempty"`
	Link                *Link                `json:"link,omitempty"`
	ContentAlignment    ContentAlignment     `json:"contentAlignment,omitempty"`
	Autofit             *Autofit             `json:"autofit,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type ShapeBackgroundFill struct {
	PropertyState PropertyState `json:"propertyState,omitempty"`
	SolidFill     *SolidFill    `json:"solidFill,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type Autofit struct {
	AutofitType          AutofitType `json:"autofitType,omitempty"`
	FontScale            *float64    `json:"fontScale,omitempty"`
	LineSpacingReduction *float64    `json:"lineSpacingReduction,omitempty"`

	UnknownFields map[string]any `json:"-"`
}
