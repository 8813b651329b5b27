package canvas

import (
	"strings"

	"github.com/monet-draw/monet/internal/geom"
)

// SegmentOp identifies a path segment kind.
type SegmentOp int

const (
	OpMoveTo SegmentOp = iota
	OpLineTo
	OpQuadraticTo
	OpCubicTo
	OpClose
)

// Segment is one element of a path. Points holds the operands in call order:
// one point for MoveTo/LineTo, control + end for QuadraticTo, two controls +
// end for CubicTo, none for Close.
type Segment struct {
	Op     SegmentOp
	Points []geom.Point
}

// Path accumulates segments until Clear. It does not track a current point;
// relative semantics are left to the output format.
type Path struct {
	segs []Segment
}

// MoveTo starts a new subpath at p.
func (p *Path) MoveTo(pt geom.Point) {
	p.segs = append(p.segs, Segment{Op: OpMoveTo, Points: []geom.Point{pt}})
}

// LineTo appends a straight segment. On an empty path it starts the path at
// pt instead, since a line needs a start point.
func (p *Path) LineTo(pt geom.Point) {
	if len(p.segs) == 0 {
		p.MoveTo(pt)
		return
	}
	p.segs = append(p.segs, Segment{Op: OpLineTo, Points: []geom.Point{pt}})
}

// QuadraticTo appends a quadratic Bézier with control point ctrl.
func (p *Path) QuadraticTo(ctrl, end geom.Point) {
	p.segs = append(p.segs, Segment{Op: OpQuadraticTo, Points: []geom.Point{ctrl, end}})
}

// CubicTo appends a cubic Bézier with control points c1 and c2.
func (p *Path) CubicTo(c1, c2, end geom.Point) {
	p.segs = append(p.segs, Segment{Op: OpCubicTo, Points: []geom.Point{c1, c2, end}})
}

// Close closes the current subpath. The segments are kept.
func (p *Path) Close() {
	p.segs = append(p.segs, Segment{Op: OpClose})
}

// Clear drops every segment.
func (p *Path) Clear() {
	p.segs = p.segs[:0]
}

// Len returns the number of segments.
func (p *Path) Len() int {
	return len(p.segs)
}

// Data renders the path as SVG path data, e.g. "M 0,0 100,0 100,100 z".
// Line segments following a move or another line are written as bare
// coordinate pairs; after a curve or a close they carry an explicit "L".
func (p *Path) Data() string {
	var sb strings.Builder
	prev := OpClose
	for i, seg := range p.segs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch seg.Op {
		case OpMoveTo:
			sb.WriteString("M ")
		case OpLineTo:
			if prev != OpMoveTo && prev != OpLineTo {
				sb.WriteString("L ")
			}
		case OpQuadraticTo:
			sb.WriteString("Q ")
		case OpCubicTo:
			sb.WriteString("C ")
		case OpClose:
			sb.WriteByte('z')
		}
		for j, pt := range seg.Points {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(pair(pt))
		}
		prev = seg.Op
	}
	return sb.String()
}
