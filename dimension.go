package gslides

import "fmt"

// Lengths are stored in English Metric Units on the wire.
const (
	EMUPerPoint      = 12700
	EMUPerPixel      = 9525
	EMUPerInch       = 914400
	EMUPerCentimeter = 360000
	EMUPerMillimeter = 36000
)

// Dimension is a magnitude with a unit.
type Dimension struct {
	Magnitude *float64 `json:"magnitude,omitempty"`
	Unit      Unit     `json:"unit,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// EMU returns a Dimension of v English Metric Units.
func EMU(v float64) *Dimension {
	return &Dimension{Magnitude: &v, Unit: UnitEMU}
}

// Points returns a Dimension of v typographic points.
func Points(v float64) *Dimension {
	return &Dimension{Magnitude: &v, Unit: UnitPT}
}

// ToEMU converts the dimension's magnitude to English Metric Units. Unknown
// units are returned unchanged.
func (d *Dimension) ToEMU() float64 {
	if d == nil || d.Magnitude == nil {
		return 0
	}
	if d.Unit == UnitPT {
		return *d.Magnitude * EMUPerPoint
	}
	return *d.Magnitude
}

// ConvertUnits converts v between length units, each named by its size in
// English Metric Units: ConvertUnits(72, EMUPerPoint, EMUPerInch) is 1.
func ConvertUnits(v, from, to float64) float64 {
	return v * from / to
}

// SizeValue is the value of a size axis. On the wire it appears either as a
// {magnitude, unit} object or, in a legacy simplified form, as a bare number
// of EMUs. Bare records which literal form was decoded so encoding can
// reproduce it; hand-built values leave it false and encode as objects.
type SizeValue struct {
	Dimension
	Bare bool
}

func (s *SizeValue) decodeAPI(raw any) error {
	switch v := raw.(type) {
	case float64:
		s.Magnitude = &v
		s.Unit = UnitEMU
		s.Bare = true
		return nil
	case map[string]any:
		s.Bare = false
		return decodeStruct(&s.Dimension, raw)
	}
	return fmt.Errorf("%w: size value: want number or object, got %s", ErrSchemaMismatch, jsonTypeName(raw))
}

func (s *SizeValue) encodeAPI() (any, error) {
	if s.Bare && s.Magnitude != nil && len(s.UnknownFields) == 0 {
		return *s.Magnitude, nil
	}
	return encodeStruct(&s.Dimension)
}

// Size is a width/height pair.
type Size struct {
	Width  *SizeValue `json:"width,omitempty"`
	Height *SizeValue `json:"height,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// SizeEMU builds a Size of w by h English Metric Units.
func SizeEMU(w, h float64) *Size {
	return &Size{
		Width:  &SizeValue{Dimension: Dimension{Magnitude: &w, Unit: UnitEMU}},
		Height: &SizeValue{Dimension: Dimension{Magnitude: &h, Unit: UnitEMU}},
	}
}
