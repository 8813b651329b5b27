package script

import (
	"fmt"

	"github.com/monet-draw/monet/internal/canvas"
)

// ParseAction maps "stroke", "fill" and "fillAndStroke" to a canvas action.
// The empty string is a stroke.
func ParseAction(s string) (canvas.Action, error) {
	switch s {
	case "", "stroke":
		return canvas.Stroke, nil
	case "fill":
		return canvas.Fill, nil
	case "fillAndStroke":
		return canvas.FillAndStroke, nil
	}
	return 0, fmt.Errorf("%w: action %q", ErrOperand, s)
}

// ParseFontFamily accepts the CSS generic family names.
func ParseFontFamily(s string) (canvas.FontFamily, error) {
	switch s {
	case "serif":
		return canvas.Serif, nil
	case "sans-serif":
		return canvas.SansSerif, nil
	case "monospace":
		return canvas.Monospaced, nil
	}
	return 0, fmt.Errorf("%w: font family %q", ErrOperand, s)
}

func ParseHAlign(s string) (canvas.HorizontalAlignment, error) {
	switch s {
	case "":
		return canvas.DefaultHAlign, nil
	case "left":
		return canvas.HAlignLeft, nil
	case "center":
		return canvas.HAlignCenter, nil
	case "right":
		return canvas.HAlignRight, nil
	}
	return 0, fmt.Errorf("%w: horizontal alignment %q", ErrOperand, s)
}

func ParseVAlign(s string) (canvas.VerticalAlignment, error) {
	switch s {
	case "":
		return canvas.DefaultVAlign, nil
	case "top":
		return canvas.VAlignTop, nil
	case "center":
		return canvas.VAlignCenter, nil
	case "middle":
		return canvas.VAlignMiddle, nil
	case "bottom":
		return canvas.VAlignBottom, nil
	}
	return 0, fmt.Errorf("%w: vertical alignment %q", ErrOperand, s)
}
