package gslides

// RgbColor is a color in the RGB color space, each channel in [0, 1].
// Channels at zero are omitted on the wire, so they are pointers.
type RgbColor struct {
	Red   *float64 `json:"red,omitempty"`
	Green *float64 `json:"green,omitempty"`
	Blue  *float64 `json:"blue,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// RGB builds an RgbColor from channel values in [0, 1].
func RGB(r, g, b float64) *RgbColor {
	return &RgbColor{Red: &r, Green: &g, Blue: &b}
}

// OpaqueColor is either a concrete RGB value or a reference into the page's
// theme. At most one branch is populated; encoding emits only the populated
// one.
type OpaqueColor struct {
	RgbColor   *RgbColor      `json:"rgbColor,omitempty"`
	ThemeColor ThemeColorType `json:"themeColor,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// OptionalColor wraps an OpaqueColor whose absence means "transparent".
type OptionalColor struct {
	OpaqueColor *OpaqueColor `json:"opaqueColor,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// SolidFill is a single-color fill with an optional alpha.
type SolidFill struct {
	Color *OpaqueColor `json:"color,omitempty"`
	Alpha *float64     `json:"alpha,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type ColorStop struct {
	Color    *OpaqueColor `json:"color,omitempty"`
	Alpha    *float64     `json:"alpha,omitempty"`
	Position *float64     `json:"position,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// Recolor is an image recoloring effect, either a named preset or an
// explicit gradient of stops.
type Recolor struct {
	RecolorStops []*ColorStop `json:"recolorStops,omitempty"`
	Name         RecolorName  `json:"name,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// ThemeColorPair binds one theme slot to its concrete color.
type ThemeColorPair struct {
	Type  ThemeColorType `json:"type,omitempty"`
	Color *RgbColor      `json:"color,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// ColorScheme is the palette a page exposes to theme color references.
type ColorScheme struct {
	Colors []*ThemeColorPair `json:"colors,omitempty"`

	UnknownFields map[string]any `json:"-"`
}
