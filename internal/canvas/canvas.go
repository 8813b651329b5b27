// Package canvas is a streaming SVG drawing surface.
//
// A Canvas turns an ordered sequence of drawing calls into an SVG document.
// Shapes, text and group brackets are written to the sink as soon as they
// are called; path segments accumulate in a buffer until StrokePath, FillPath
// or FillAndStrokePath emits them.
//
// Canvas coordinates have their origin in the bottom left corner with Y
// pointing up. The canvas opens an implicit group flipping the Y axis, so
// every coordinate is written as passed.
//
//	c, err := canvas.Create("triangle.svg", 100, 100)
//	if err != nil {
//		return err
//	}
//	c.MoveTo(geom.Pt(0, 0))
//	c.LineTo(geom.Pt(100, 0))
//	c.LineTo(geom.Pt(100, 100))
//	c.ClosePath()
//	c.StrokePath()
//	return c.Close()
//
// Misuse of the group and clip brackets (closing a scope that is not the
// innermost open one, using a clip that was never defined, drawing after
// Close) panics. I/O errors are returned by New, Create and Close.
//
// A Canvas is not safe for concurrent use.
package canvas

import (
	"fmt"
	"io"
	"os"

	"github.com/monet-draw/monet/internal/color"
	"github.com/monet-draw/monet/internal/geom"
	"github.com/monet-draw/monet/internal/typeid"
)

// Version is written in the header comment of every document.
const Version = "0.2.0"

// Canvas is a stateful SVG drawing surface.
type Canvas struct {
	out    svgWriter
	closer io.Closer

	width, height float64
	style         Style
	path          Path

	scopes      []scope
	clipID      string
	pendingClip string
	newClipID   func() string
	closed      bool
}

// Option configures a Canvas during creation.
type Option func(*options)

type options struct {
	unit    string
	clipIDs func() string
}

func defaultOptions() options {
	return options{
		unit:    "mm",
		clipIDs: typeid.NewClipID,
	}
}

// WithUnit sets the unit of the width and height attributes ("mm" by default).
func WithUnit(unit string) Option {
	return func(o *options) {
		o.unit = unit
	}
}

// WithClipIDs sets the generator of clip path ids. Ids must be unique within
// a document and valid XML names.
func WithClipIDs(next func() string) Option {
	return func(o *options) {
		o.clipIDs = next
	}
}

// New writes the document header to w and returns a canvas of the given size.
// The canvas does not close w.
func New(w io.Writer, width, height float64, opts ...Option) (*Canvas, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Canvas{
		out:       svgWriter{w: w},
		width:     width,
		height:    height,
		style:     DefaultStyle(),
		newClipID: o.clipIDs,
	}

	c.out.emit(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<!-- Created with Monet %s -->

<svg
    width="%s%s"
    height="%s%s"
    viewBox="0 0 %s %s"
    version="1.1"
    xmlns="http://www.w3.org/2000/svg">
`, Version, num(width), escape(o.unit), num(height), escape(o.unit), num(width), num(height)))
	c.out.level++

	c.openGroup(ScopeCanvas, geom.Combine(geom.ScaleY(-1), geom.Translate(geom.Pt(0, height))), "canvas")

	if c.out.err != nil {
		return nil, c.out.err
	}
	return c, nil
}

// Create creates (or truncates) the named file and returns a canvas writing
// into it. Close closes the file.
func Create(filename string, width, height float64, opts ...Option) (*Canvas, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}

	c, err := New(f, width, height, opts...)
	if err != nil {
		f.Close()
		return nil, err
	}
	c.closer = f
	return c, nil
}

// Draw creates a canvas on w, calls fn and closes the canvas whatever fn
// returns. The first error among fn and Close is returned.
func Draw(w io.Writer, width, height float64, fn func(*Canvas) error, opts ...Option) (err error) {
	c, err := New(w, width, height, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(c)
}

// Close closes every scope still open, innermost first, writes the document
// terminator and closes the file opened by Create. It returns the first
// write error met during the life of the canvas. Calling Close again returns
// the same error.
func (c *Canvas) Close() error {
	if c.closed {
		return c.out.err
	}

	if open := len(c.scopes) - 1; open > 0 {
		Logger().Warn("closing unbalanced scopes", "open", open, "groups", c.GroupLevel())
	}
	for len(c.scopes) > 0 {
		c.closeScope()
	}

	c.out.level--
	c.out.emit("</svg>\n")
	c.closed = true

	if c.closer != nil {
		if err := c.closer.Close(); err != nil && c.out.err == nil {
			c.out.err = fmt.Errorf("close output: %w", err)
		}
	}
	return c.out.err
}

// Err returns the first write error, if any.
func (c *Canvas) Err() error {
	return c.out.err
}

func (c *Canvas) mustBeOpen() {
	if c.closed {
		panic("canvas: drawing on a closed canvas")
	}
}

// Width returns the width passed at creation.
func (c *Canvas) Width() float64 { return c.width }

// Height returns the height passed at creation.
func (c *Canvas) Height() float64 { return c.height }

// Style returns a snapshot of the current style.
func (c *Canvas) Style() Style { return c.style }

// SetStyle replaces the whole style.
func (c *Canvas) SetStyle(st Style) { c.style = st }

// SetStrokeColor sets the color of lines and outlines drawn from now on.
func (c *Canvas) SetStrokeColor(col color.Color) { c.style.StrokeColor = col }

// StrokeColor returns the current stroke color.
func (c *Canvas) StrokeColor() color.Color { return c.style.StrokeColor }

// SetFillColor sets the color of filled shapes and of text.
func (c *Canvas) SetFillColor(col color.Color) { c.style.FillColor = col }

// FillColor returns the current fill color.
func (c *Canvas) FillColor() color.Color { return c.style.FillColor }

// SetStrokeWidth sets the width of lines and outlines, in user units.
func (c *Canvas) SetStrokeWidth(w float64) { c.style.StrokeWidth = w }

// StrokeWidth returns the current stroke width.
func (c *Canvas) StrokeWidth() float64 { return c.style.StrokeWidth }

// SetFontFamily sets the family of the following texts.
func (c *Canvas) SetFontFamily(f FontFamily) { c.style.FontFamily = f }

// FontFamily returns the current font family.
func (c *Canvas) FontFamily() FontFamily { return c.style.FontFamily }

// SetFontSize sets the size of the following texts, in user units.
func (c *Canvas) SetFontSize(size float64) { c.style.FontSize = size }

// FontSize returns the current font size.
func (c *Canvas) FontSize() float64 { return c.style.FontSize }

// SetTransparency sets the transparency of the following shapes and texts,
// from 0 (opaque, no opacity attribute) to 1 (invisible).
func (c *Canvas) SetTransparency(t float64) { c.style.Transparency = t }

// Transparency returns the current transparency.
func (c *Canvas) Transparency() float64 { return c.style.Transparency }

// MoveTo starts a new subpath in the path buffer.
func (c *Canvas) MoveTo(p geom.Point) { c.path.MoveTo(p) }

// LineTo appends a line to the path buffer.
func (c *Canvas) LineTo(p geom.Point) { c.path.LineTo(p) }

// QuadraticTo appends a quadratic curve to the path buffer.
func (c *Canvas) QuadraticTo(ctrl, end geom.Point) { c.path.QuadraticTo(ctrl, end) }

// CubicTo appends a cubic curve to the path buffer.
func (c *Canvas) CubicTo(c1, c2, end geom.Point) { c.path.CubicTo(c1, c2, end) }

// ClosePath closes the current subpath. The buffer is kept.
func (c *Canvas) ClosePath() { c.path.Close() }

// ClearPath empties the path buffer. Stroking or filling does not clear it,
// so call ClearPath between unrelated paths.
func (c *Canvas) ClearPath() { c.path.Clear() }

// DrawPath appends a polyline through pts: a move to the first point and a
// line to each of the others.
func (c *Canvas) DrawPath(pts []geom.Point) {
	for i, p := range pts {
		if i == 0 {
			c.path.MoveTo(p)
		} else {
			c.path.LineTo(p)
		}
	}
}

// StrokePath draws the outline of the path buffer.
func (c *Canvas) StrokePath() { c.emitPath(Stroke) }

// FillPath fills the interior of the path buffer.
func (c *Canvas) FillPath() { c.emitPath(Fill) }

// FillAndStrokePath fills the path buffer and draws its outline with a
// single element.
func (c *Canvas) FillAndStrokePath() { c.emitPath(FillAndStroke) }

func (c *Canvas) emitPath(act Action) {
	c.mustBeOpen()
	if c.path.Len() == 0 {
		Logger().Debug("painting an empty path", "action", act)
	}
	in := c.out.indent(1)
	c.out.emit(fmt.Sprintf("%s<path\n%sd=\"%s\"\n%s%s/>\n",
		c.out.indent(0), in, c.path.Data(), in, paintAttrs(c.style, act)))
}

// Line draws a segment from p1 to p2 with the stroke style. It does not
// touch the path buffer.
func (c *Canvas) Line(p1, p2 geom.Point) {
	c.mustBeOpen()
	c.out.emit(fmt.Sprintf(`%s<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"%s/>`+"\n",
		c.out.indent(0), num(p1.X), num(p1.Y), num(p2.X), num(p2.Y),
		c.style.StrokeColor.Hex(), num(c.style.StrokeWidth), opacityAttr(c.style)))
}

// Circle draws a circle. The radius is written as given.
func (c *Canvas) Circle(center geom.Point, radius float64, act Action) {
	c.mustBeOpen()
	c.out.emit(fmt.Sprintf(`%s<circle cx="%s" cy="%s" r="%s" %s/>`+"\n",
		c.out.indent(0), num(center.X), num(center.Y), num(radius), paintAttrs(c.style, act)))
}

// Rectangle draws the axis-aligned rectangle with opposite corners p1 and
// p2, in any order.
func (c *Canvas) Rectangle(p1, p2 geom.Point, act Action) {
	c.mustBeOpen()
	x, y := min(p1.X, p2.X), min(p1.Y, p2.Y)
	w, h := max(p1.X, p2.X)-x, max(p1.Y, p2.Y)-y
	in := c.out.indent(1)
	c.out.emit(fmt.Sprintf("%s<rect\n%sx=\"%s\" y=\"%s\"\n%swidth=\"%s\" height=\"%s\"\n%s%s/>\n",
		c.out.indent(0), in, num(x), num(y), in, num(w), num(h), in, paintAttrs(c.style, act)))
}

// Text writes str with its anchor at p. The alignment says where the text
// lies relative to p in canvas terms; it is translated to device terms
// with the transforms open at the time of the call.
func (c *Canvas) Text(p geom.Point, str string, h HorizontalAlignment, v VerticalAlignment) {
	c.mustBeOpen()

	ctm := c.ctm()
	dev := ctm.Apply(p)
	if right := ctm.Apply(p.Add(geom.Pt(1, 0))); right.X < dev.X {
		h = flipHorizontal(h)
	}
	if up := ctm.Apply(p.Add(geom.Pt(0, 1))); up.Y < dev.Y {
		v = flipVertical(v)
	}

	in := c.out.indent(1)
	opacity := ""
	if c.style.Transparency > 0 {
		opacity = fmt.Sprintf("%sopacity=\"%s\"\n", in, num(1-c.style.Transparency))
	}
	// The text sits at the origin of a local Y flip so glyphs come out
	// upright inside the canvas group.
	c.out.emit(fmt.Sprintf("%[1]s<text\n"+
		"%[2]sx=\"0\" y=\"0\"\n"+
		"%[2]stext-anchor=\"%[3]s\"\n"+
		"%[2]sdominant-baseline=\"%[4]s\"\n"+
		"%[2]sfont-family=\"%[5]s\" font-size=\"%[6]s\"\n"+
		"%[2]stransform=\"translate(%[7]s %[8]s) scale(1 -1)\"\n"+
		"%[9]s"+
		"%[2]sfill=\"%[10]s\">\n"+
		"%[11]s\n"+
		"%[1]s</text>\n",
		c.out.indent(0), in, textAnchor(h), dominantBaseline(v),
		fontFamilyName(c.style.FontFamily), num(c.style.FontSize),
		num(p.X), num(p.Y), opacity, c.style.FillColor.Hex(), escape(str)))
}

func flipHorizontal(h HorizontalAlignment) HorizontalAlignment {
	switch h {
	case HAlignLeft:
		return HAlignRight
	case HAlignRight:
		return HAlignLeft
	}
	return h
}

func flipVertical(v VerticalAlignment) VerticalAlignment {
	switch v {
	case VAlignTop:
		return VAlignBottom
	case VAlignBottom:
		return VAlignTop
	}
	return v
}
