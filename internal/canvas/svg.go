package canvas

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/monet-draw/monet/internal/geom"
)

const tabWidth = 2

// svgWriter streams fragments into the sink. Each fragment is handed to the
// sink in a single Write. The first write error is kept and every later
// write is skipped.
type svgWriter struct {
	w     io.Writer
	level int
	err   error
}

func (w *svgWriter) emit(s string) {
	if w.err != nil {
		return
	}
	if _, err := io.WriteString(w.w, s); err != nil {
		w.err = fmt.Errorf("write output: %w", err)
	}
}

// indent returns the indentation of the current level plus extra levels.
func (w *svgWriter) indent(extra int) string {
	return strings.Repeat(" ", tabWidth*(w.level+extra))
}

// num formats a coordinate or length with six significant digits.
func num(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func pair(p geom.Point) string {
	return num(p.X) + "," + num(p.Y)
}

func escape(s string) string {
	var sb strings.Builder
	// strings.Builder never fails.
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}

// transformList renders seq as an SVG transform list, skipping identity
// elements.
func transformList(seq geom.Sequence) string {
	parts := make([]string, 0, len(seq))
	for _, t := range seq {
		switch t := t.(type) {
		case geom.Identity:
		case geom.Translation:
			parts = append(parts, fmt.Sprintf("translate(%s %s)", num(t.Offset.X), num(t.Offset.Y)))
		case geom.Rotation:
			if t.Pivot == (geom.Point{}) {
				parts = append(parts, fmt.Sprintf("rotate(%s)", num(t.Angle)))
			} else {
				parts = append(parts, fmt.Sprintf("rotate(%s %s %s)", num(t.Angle), num(t.Pivot.X), num(t.Pivot.Y)))
			}
		case geom.Scaling:
			parts = append(parts, fmt.Sprintf("scale(%s %s)", num(t.Factor.X), num(t.Factor.Y)))
		default:
			panic(fmt.Sprintf("canvas: unsupported transform %T", t))
		}
	}
	return strings.Join(parts, " ")
}

// paintAttrs returns the fill/stroke attributes a shape drawn with act
// carries, followed by opacity when the style is not opaque.
func paintAttrs(st Style, act Action) string {
	var s string
	switch act {
	case Stroke:
		s = fmt.Sprintf(`fill="none" stroke="%s" stroke-width="%s"`,
			st.StrokeColor.Hex(), num(st.StrokeWidth))
	case Fill:
		s = fmt.Sprintf(`fill="%s" stroke="none"`, st.FillColor.Hex())
	case FillAndStroke:
		s = fmt.Sprintf(`fill="%s" stroke="%s" stroke-width="%s"`,
			st.FillColor.Hex(), st.StrokeColor.Hex(), num(st.StrokeWidth))
	default:
		panic(fmt.Sprintf("canvas: unsupported action %d", int(act)))
	}
	return s + opacityAttr(st)
}

func opacityAttr(st Style) string {
	if st.Transparency > 0 {
		return fmt.Sprintf(` opacity="%s"`, num(1-st.Transparency))
	}
	return ""
}

func textAnchor(h HorizontalAlignment) string {
	switch h {
	case HAlignLeft:
		return "end"
	case HAlignCenter:
		return "middle"
	case HAlignRight:
		return "start"
	}
	panic(fmt.Sprintf("canvas: unsupported horizontal alignment %d", int(h)))
}

func dominantBaseline(v VerticalAlignment) string {
	switch v {
	case VAlignTop:
		return "text-top"
	case VAlignCenter:
		return "central"
	case VAlignMiddle:
		return "middle"
	case VAlignBottom:
		return "text-bottom"
	}
	panic(fmt.Sprintf("canvas: unsupported vertical alignment %d", int(v)))
}

func fontFamilyName(f FontFamily) string {
	switch f {
	case Serif, SansSerif, Monospaced:
		return f.String()
	}
	panic(fmt.Sprintf("canvas: unsupported font family %d", int(f)))
}
