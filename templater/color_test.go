package templater

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b float64
	}{
		{"red", 1, 0, 0},
		{"WHITE", 1, 1, 1},
		{" blue ", 0, 0, 1},
		{"grey", 0.5, 0.5, 0.5},
		{"#000000", 0, 0, 0},
		{"#FF0000", 1, 0, 0},
		{"#ff8000", 1, 128.0 / 255, 0},
		{"#f00", 1, 0, 0},
		{"#abc", 170.0 / 255, 187.0 / 255, 204.0 / 255},
		{"rgb(255, 0, 0)", 1, 0, 0},
		{"rgb(0,128,255)", 0, 128.0 / 255, 1},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.r, *c.Red, 1e-9)
			assert.InDelta(t, tt.g, *c.Green, 1e-9)
			assert.InDelta(t, tt.b, *c.Blue, 1e-9)
		})
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, in := range []string{
		"",
		"mauve",
		"#12",
		"#12345",
		"#gggggg",
		"rgb(1,2)",
		"rgb(256, 0, 0)",
		"rgb(-1, 0, 0)",
		"rgb(a, b, c)",
		"255,0,0",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseColor(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidColor)
		})
	}
}

func TestParseColorReturnsFreshValues(t *testing.T) {
	first, err := ParseColor("red")
	require.NoError(t, err)
	*first.Red = 0.25

	second, err := ParseColor("red")
	require.NoError(t, err)
	assert.Equal(t, 1.0, *second.Red)
}
