package gslides

// AffineTransform places an element on its page. The API applies it as the
// matrix [scaleX shearX translateX; shearY scaleY translateY].
type AffineTransform struct {
	ScaleX     *float64 `json:"scaleX,omitempty"`
	ScaleY     *float64 `json:"scaleY,omitempty"`
	ShearX     *float64 `json:"shearX,omitempty"`
	ShearY     *float64 `json:"shearY,omitempty"`
	TranslateX *float64 `json:"translateX,omitempty"`
	TranslateY *float64 `json:"translateY,omitempty"`
	Unit       Unit     `json:"unit,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// Translate returns an unscaled transform that places an element's top-left
// corner at (x, y) EMUs.
func Translate(x, y float64) *AffineTransform {
	return &AffineTransform{
		ScaleX:     Float64(1),
		ScaleY:     Float64(1),
		TranslateX: Float64(x),
		TranslateY: Float64(y),
		Unit:       UnitEMU,
	}
}
