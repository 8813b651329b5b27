package script

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/monet-draw/monet/internal/color"
	"github.com/monet-draw/monet/internal/geom"
)

var ErrUnknownSample = errors.New("unknown sample")

var samples = map[string]func() *Document{
	"simple":       simpleSample,
	"complex":      complexSample,
	"spirograph":   spirographSample,
	"curves":       curvesSample,
	"rotated-text": rotatedTextSample,
	"hue-table":    hueTableSample,
	"clip":         clipSample,
	"transparency": transparencySample,
	"color-table":  colorTableSample,
	"fonts":        fontsSample,
}

// Sample returns a fresh copy of the named sample document.
func Sample(name string) (*Document, error) {
	build, ok := samples[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownSample, name)
	}
	doc := build()
	doc.Name = name
	return doc, nil
}

// SampleNames returns the sample names in alphabetical order.
func SampleNames() []string {
	return slices.Sorted(maps.Keys(samples))
}

// builder records commands with the same vocabulary as the canvas.
type builder struct {
	doc *Document
}

func newBuilder(width, height float64) *builder {
	return &builder{doc: &Document{Width: width, Height: height}}
}

func (b *builder) add(cmd Command) *builder {
	b.doc.Commands = append(b.doc.Commands, cmd)
	return b
}

func (b *builder) stroke(c color.Color) *builder {
	return b.add(Command{Op: OpSetStrokeColor, RGB: &c})
}

func (b *builder) fill(c color.Color) *builder {
	return b.add(Command{Op: OpSetFillColor, RGB: &c})
}

func (b *builder) strokeWidth(w float64) *builder {
	return b.add(Command{Op: OpSetStrokeWidth, Value: w})
}

func (b *builder) fontSize(size float64) *builder {
	return b.add(Command{Op: OpSetFontSize, Value: size})
}

func (b *builder) fontFamily(family string) *builder {
	return b.add(Command{Op: OpSetFontFamily, Family: family})
}

func (b *builder) transparency(t float64) *builder {
	return b.add(Command{Op: OpSetTransparency, Value: t})
}

func (b *builder) moveTo(p geom.Point) *builder {
	return b.add(Command{Op: OpMoveTo, Points: []geom.Point{p}})
}

func (b *builder) lineTo(p geom.Point) *builder {
	return b.add(Command{Op: OpLineTo, Points: []geom.Point{p}})
}

func (b *builder) op(op Op) *builder {
	return b.add(Command{Op: op})
}

func (b *builder) line(p1, p2 geom.Point) *builder {
	return b.add(Command{Op: OpLine, Points: []geom.Point{p1, p2}})
}

func (b *builder) circle(center geom.Point, r float64, action string) *builder {
	return b.add(Command{Op: OpCircle, Points: []geom.Point{center}, Radius: r, Action: action})
}

func (b *builder) rectangle(p1, p2 geom.Point, action string) *builder {
	return b.add(Command{Op: OpRectangle, Points: []geom.Point{p1, p2}, Action: action})
}

func (b *builder) text(p geom.Point, s, halign, valign string) *builder {
	return b.add(Command{Op: OpText, Points: []geom.Point{p}, Text: s, HAlign: halign, VAlign: valign})
}

func (b *builder) beginGroup(name string, ts ...Transform) *builder {
	return b.add(Command{Op: OpBeginGroup, Name: name, Transforms: ts})
}

func translate(x, y float64) Transform { return Transform{Type: "translate", X: x, Y: y} }
func rotate(angle float64) Transform   { return Transform{Type: "rotate", Angle: angle} }

func (b *builder) background(c color.Color) *builder {
	return b.fill(c).rectangle(geom.Pt(0, 0), geom.Pt(b.doc.Width, b.doc.Height), "fill")
}

func simpleSample() *Document {
	b := newBuilder(100, 100)
	b.background(color.Gray(0.9))
	b.moveTo(geom.Pt(0, 0)).
		lineTo(geom.Pt(100, 0)).
		lineTo(geom.Pt(100, 100)).
		op(OpClosePath).
		op(OpStrokePath)
	return b.doc
}

func complexSample() *Document {
	b := newBuilder(500, 500)

	b.moveTo(geom.Pt(0, 0)).
		lineTo(geom.Pt(100, 0)).
		lineTo(geom.Pt(100, 100)).
		op(OpClosePath).
		op(OpStrokePath)

	b.fill(color.RGB(0.8, 0.7, 0.3)).
		stroke(color.Brown).
		strokeWidth(3).
		circle(geom.Pt(200, 200), 150, "fillAndStroke")

	b.stroke(color.HSL(0.2, 0.5, 0.4)).
		strokeWidth(8).
		rectangle(geom.Pt(400, 100), geom.Pt(500, 150), "stroke")

	// The red dot marks the anchor of the text.
	b.beginGroup("", translate(300, 250)).
		fontSize(48).
		fontFamily("monospace").
		fill(color.Black).
		text(geom.Pt(0, 0), "Hello, world!", "center", "bottom").
		fill(color.Red).
		circle(geom.Pt(0, 0), 5, "fill").
		op(OpEndGroup)
	return b.doc
}

// spirograph returns the point of a hypotrochoid at parameter t.
func spirograph(smallR, largeR, a, t float64) geom.Point {
	diff := largeR - smallR
	ratio := smallR / largeR
	return geom.Pt(
		diff*math.Cos(ratio*t)+a*math.Cos((1-ratio)*t),
		diff*math.Sin(ratio*t)-a*math.Sin((1-ratio)*t),
	)
}

func spirographSample() *Document {
	const (
		smallR = 42
		largeR = 188
		a      = 75
		tMax   = 1000
		dt     = 0.2
	)

	b := newBuilder(500, 500)
	b.background(color.Gray(0.9))

	center := geom.Pt(250, 250)
	prev := center.Add(spirograph(smallR, largeR, a, 0))
	for i := 1; float64(i)*dt < tMax; i++ {
		t := float64(i) * dt
		next := center.Add(spirograph(smallR, largeR, a, t))
		b.stroke(color.HSL(t/tMax, 1, 0.4)).line(prev, next)
		prev = next
	}
	return b.doc
}

// curveWithControls strokes a curve through pts, then overlays the control
// polygon and dots on every point.
func curveWithControls(b *builder, curve Command, pts []geom.Point) {
	b.strokeWidth(3).stroke(color.Black)
	b.moveTo(pts[0]).add(curve).op(OpStrokePath).op(OpClearPath)

	b.strokeWidth(1).stroke(color.LightRed)
	b.add(Command{Op: OpDrawPath, Points: pts}).op(OpStrokePath).op(OpClearPath)

	b.fill(color.Black)
	for _, p := range pts {
		b.circle(p, 5, "fill")
	}
}

func curvesSample() *Document {
	b := newBuilder(400, 200)
	b.fontSize(10)

	quad := []geom.Point{geom.Pt(10, 10), geom.Pt(200, 70), geom.Pt(300, 10)}
	b.beginGroup("quadratic")
	curveWithControls(b, Command{Op: OpQuadraticTo, Points: quad[1:]}, quad)
	b.text(quad[1].Add(geom.Pt(0, 10)), "Target point", "center", "").
		text(quad[2].Add(geom.Pt(10, 0)), "End point", "right", "center").
		op(OpEndGroup)

	cubic := []geom.Point{geom.Pt(10, 10), geom.Pt(10, 70), geom.Pt(250, 50), geom.Pt(300, 10)}
	b.beginGroup("cubic", translate(0, 100))
	curveWithControls(b, Command{Op: OpCubicTo, Points: cubic[1:]}, cubic)
	b.text(cubic[1].Add(geom.Pt(0, 10)), "Control point #1", "right", "").
		text(cubic[2].Add(geom.Pt(0, 10)), "Control point #2", "center", "").
		text(cubic[3].Add(geom.Pt(10, 0)), "End point", "right", "center").
		op(OpEndGroup)
	return b.doc
}

func rotatedTextSample() *Document {
	b := newBuilder(500, 150)
	pivot := geom.Pt(250, 75)

	for angle := 0.0; angle < 360; angle += 30 {
		b.beginGroup("", rotate(angle), translate(pivot.X, pivot.Y)).
			fill(color.HSL(angle/360, 1, 0.4)).
			text(geom.Pt(0, 0), "Hello, world!", "", "").
			op(OpEndGroup)
	}

	b.fill(color.Black).circle(pivot, 5, "fill")
	return b.doc
}

// hueTable draws three rows of hues at increasing lightness, labelled on
// the right.
func hueTable(b *builder) {
	const (
		width  = 500
		height = 150
		steps  = 10
	)
	left := width * 0.8
	right := width - left
	rowHeight := height / 3.0

	b.fontSize(10)
	for row, lightness := range []float64{0.33, 0.50, 0.67} {
		for step := 0; step < steps; step++ {
			hue := (float64(step) + 0.5) / steps
			p1 := geom.Pt(float64(step)*left/steps, float64(row)*rowHeight)
			p2 := geom.Pt(float64(step+1)*left/steps, float64(row+1)*rowHeight)
			center := p1.Add(p2).Div(2)

			b.fill(color.HSL(hue, 1, lightness)).
				rectangle(p1, p2, "fillAndStroke").
				fill(color.Black).
				text(center, fmt.Sprintf("%.0f%%", hue*100), "center", "center").
				text(geom.Pt(width-right/2, center.Y), fmt.Sprintf("L: %.0f%%", lightness*100), "center", "center")
		}
	}
}

func hueTableSample() *Document {
	b := newBuilder(500, 150)
	hueTable(b)
	return b.doc
}

func clipSample() *Document {
	b := newBuilder(500, 150)

	b.op(OpDefineClip).
		add(Command{Op: OpDrawPath, Points: []geom.Point{
			geom.Pt(100, 30), geom.Pt(250, 110), geom.Pt(330, 135), geom.Pt(260, 30),
		}}).
		op(OpFillPath).
		op(OpEndClip)

	b.op(OpUseClip)
	hueTable(b)
	b.op(OpRemoveClip)
	return b.doc
}

func transparencySample() *Document {
	b := newBuilder(500, 150)

	p1, p2 := geom.Pt(0, 0), geom.Pt(280, 50)
	for i := 0; i < 5; i++ {
		tr := float64(i) * 0.2
		b.transparency(tr).
			fill(color.HSL(tr, 1, 0.5)).
			rectangle(p1, p2, "fill").
			transparency(0).
			fill(color.Black).
			rectangle(p1, p2, "stroke")

		p1 = p1.Add(geom.Pt(50, 20))
		p2 = p2.Add(geom.Pt(50, 20))
	}
	return b.doc
}

func colorTableSample() *Document {
	entries := []struct {
		name string
		text color.Color
	}{
		{"black", color.White}, {"darkred", color.White}, {"darkgreen", color.White},
		{"darkblue", color.White}, {"brown", color.White}, {"darkpurple", color.White},
		{"darkcyan", color.White}, {"red", color.Black}, {"green", color.Black},
		{"blue", color.White}, {"yellow", color.Black}, {"purple", color.Black},
		{"cyan", color.Black}, {"lightred", color.Black}, {"lightgreen", color.Black},
		{"lightblue", color.Black}, {"lightyellow", color.Black}, {"lightpurple", color.Black},
		{"lightcyan", color.Black}, {"white", color.Black},
	}
	const barHeight = 16

	b := newBuilder(300, barHeight*float64(len(entries)))
	b.fontSize(8).fontFamily("monospace").stroke(color.Black)

	for i, e := range entries {
		p1 := geom.Pt(0, barHeight*float64(i))
		p2 := geom.Pt(300, barHeight*float64(i+1))
		b.add(Command{Op: OpSetFillColor, Color: e.name}).
			rectangle(p1, p2, "fillAndStroke").
			fill(e.text).
			text(p1.Add(p2).Div(2), e.name, "center", "center")
	}
	return b.doc
}

func fontsSample() *Document {
	b := newBuilder(500, 90)
	b.fill(color.Black)
	for i, family := range []string{"serif", "sans-serif", "monospace"} {
		b.fontFamily(family).
			text(geom.Pt(250, 75-30*float64(i)), family, "center", "center")
	}
	return b.doc
}
