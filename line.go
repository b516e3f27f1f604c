package gslides

// Line is a line or connector element.
type Line struct {
	LineType       LineType        `json:"lineType,omitempty"`
	LineProperties *LineProperties `json:"lineProperties,omitempty"`
	LineCategory   LineCategory    `json:"lineCategory,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

func (*Line) elementKind() ElementKind { return KindLine }

type LineProperties struct {
	LineFill        *LineFill       `json:"lineFill,omitempty"`
	Weight          *Dimension      `json:"weight,omitempty"`
	DashStyle       DashStyle       `json:"dashStyle,omitempty"`
	StartArrow      ArrowStyle      `json:"startArrow,omitempty"`
	EndArrow        ArrowStyle      `json:"endArrow,omitempty"`
	Link            *Link           `json:"link,omitempty"`
	StartConnection *LineConnection `json:"startConnection,omitempty"`
	EndConnection   *LineConnection `json:"endConnection,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type LineFill struct {
	SolidFill *SolidFill `json:"solidFill,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// LineConnection attaches a connector end to a site on another element.
type LineConnection struct {
	ConnectedObjectID   string `json:"connectedObjectId,omitempty"`
	ConnectionSiteIndex *int64 `json:"connectionSiteIndex,omitempty"`

	UnknownFields map[string]any `json:"-"`
}
