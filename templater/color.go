package templater

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	gslides "github.com/smorand/gslides-go"
)

// ErrInvalidColor reports a color string in none of the accepted forms.
var ErrInvalidColor = errors.New("invalid color")

var namedColors = map[string]*gslides.RgbColor{
	"black":   gslides.RGB(0, 0, 0),
	"white":   gslides.RGB(1, 1, 1),
	"red":     gslides.RGB(1, 0, 0),
	"green":   gslides.RGB(0, 1, 0),
	"blue":    gslides.RGB(0, 0, 1),
	"yellow":  gslides.RGB(1, 1, 0),
	"cyan":    gslides.RGB(0, 1, 1),
	"magenta": gslides.RGB(1, 0, 1),
	"gray":    gslides.RGB(0.5, 0.5, 0.5),
	"grey":    gslides.RGB(0.5, 0.5, 0.5),
}

// ParseColor reads a color as #RGB, #RRGGBB, rgb(r, g, b) with 0-255
// channels, or one of a small named set.
func ParseColor(s string) (*gslides.RgbColor, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return nil, fmt.Errorf("%w: empty string", ErrInvalidColor)
	}
	if c, ok := namedColors[s]; ok {
		return gslides.RGB(*c.Red, *c.Green, *c.Blue), nil
	}
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s)
	}
	if strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")") {
		return parseRGBColor(s[len("rgb(") : len(s)-1])
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func parseHexColor(s string) (*gslides.RgbColor, error) {
	hex := s[1:]
	switch len(hex) {
	case 3:
		var expanded strings.Builder
		for _, r := range hex {
			expanded.WriteRune(r)
			expanded.WriteRune(r)
		}
		hex = expanded.String()
	case 6:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	var channels [3]float64
	for i := range channels {
		v, err := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		channels[i] = float64(v) / 255
	}
	return gslides.RGB(channels[0], channels[1], channels[2]), nil
}

func parseRGBColor(body string) (*gslides.RgbColor, error) {
	parts := strings.Split(body, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: rgb(%s)", ErrInvalidColor, body)
	}
	var channels [3]float64
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || v < 0 || v > 255 {
			return nil, fmt.Errorf("%w: rgb(%s)", ErrInvalidColor, body)
		}
		channels[i] = float64(v) / 255
	}
	return gslides.RGB(channels[0], channels[1], channels[2]), nil
}
