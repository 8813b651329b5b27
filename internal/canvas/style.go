package canvas

import (
	"fmt"

	"github.com/monet-draw/monet/internal/color"
)

// Action selects whether a shape is stroked, filled, or both.
type Action int

const (
	Stroke Action = iota
	Fill
	FillAndStroke
)

func (a Action) String() string {
	switch a {
	case Stroke:
		return "stroke"
	case Fill:
		return "fill"
	case FillAndStroke:
		return "fillAndStroke"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// FontFamily is a generic font family.
type FontFamily int

const (
	Serif FontFamily = iota
	SansSerif
	Monospaced
)

func (f FontFamily) String() string {
	switch f {
	case Serif:
		return "serif"
	case SansSerif:
		return "sans-serif"
	case Monospaced:
		return "monospace"
	}
	return fmt.Sprintf("FontFamily(%d)", int(f))
}

// HorizontalAlignment tells on which side of its anchor point a text lies,
// in canvas terms: HAlignRight puts the text to the right of the point.
type HorizontalAlignment int

const (
	HAlignLeft HorizontalAlignment = iota
	HAlignCenter
	HAlignRight
)

// VerticalAlignment tells where a text lies relative to its anchor point,
// in canvas terms: VAlignTop puts the text above the point.
type VerticalAlignment int

const (
	VAlignTop VerticalAlignment = iota
	VAlignCenter
	VAlignMiddle
	VAlignBottom
)

// Default text alignment.
const (
	DefaultHAlign = HAlignRight
	DefaultVAlign = VAlignTop
)

// Style is the drawing state read by every shape and text call.
type Style struct {
	StrokeColor color.Color
	FillColor   color.Color
	StrokeWidth float64
	FontFamily  FontFamily
	FontSize    float64
	// Transparency goes from 0 (opaque) to 1 (invisible).
	Transparency float64
}

// DefaultStyle is the style of a new canvas: black 1-unit strokes, white
// fills, 12-unit sans-serif text, fully opaque.
func DefaultStyle() Style {
	return Style{
		StrokeColor: color.Black,
		FillColor:   color.White,
		StrokeWidth: 1,
		FontFamily:  SansSerif,
		FontSize:    12,
	}
}
