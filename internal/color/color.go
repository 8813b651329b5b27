package color

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidColor is returned by Parse for text that is neither a hex triplet
// nor a palette name.
var ErrInvalidColor = errors.New("invalid color")

// Color is an RGB triple with every channel in [0, 1].
// Channels outside that range are not clamped; callers own the range.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// RGB builds a color from its red, green and blue channels.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// HSL converts hue, saturation and lightness to RGB.
// The hue wraps modulo 1 (negative hues included); s and l are expected in [0, 1].
func HSL(h, s, l float64) Color {
	h = math.Mod(h, 1.0)
	if h < 0 {
		h += 1.0
	}
	chroma := (1 - math.Abs(2*l-1)) * s
	sh := 6 * h
	x := chroma * (1 - math.Abs(math.Mod(sh, 2)-1))

	var scaled Color
	switch {
	case sh <= 1:
		scaled = Color{chroma, x, 0}
	case sh <= 2:
		scaled = Color{x, chroma, 0}
	case sh <= 3:
		scaled = Color{0, chroma, x}
	case sh <= 4:
		scaled = Color{0, x, chroma}
	case sh <= 5:
		scaled = Color{x, 0, chroma}
	default:
		scaled = Color{chroma, 0, x}
	}

	m := l - chroma/2
	return Color{scaled.R + m, scaled.G + m, scaled.B + m}
}

// Gray returns a gray shade; level 0 is black and 1 is white.
func Gray(level float64) Color {
	return HSL(0, 0, level)
}

// Hex returns the "#rrggbb" form. Each channel is scaled by 255 and truncated.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", int(c.R*255), int(c.G*255), int(c.B*255))
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return fmt.Sprintf("rgb[%g, %g, %g]", c.R, c.G, c.B)
}

// Parse accepts "#rrggbb", "#rgb" or a palette name (case-insensitive).
func Parse(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := Named(s); ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return Color{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
	}, nil
}
