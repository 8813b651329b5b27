package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/monet-draw/monet/internal/geom"
)

func TestPathData(t *testing.T) {
	tests := []struct {
		name  string
		build func(p *Path)
		want  string
	}{
		{"empty", func(*Path) {}, ""},
		{"line on empty path moves", func(p *Path) { p.LineTo(geom.Pt(3, 4)) }, "M 3,4"},
		{"polyline", func(p *Path) {
			p.MoveTo(geom.Pt(0, 0))
			p.LineTo(geom.Pt(1, 0))
			p.LineTo(geom.Pt(1, 1))
		}, "M 0,0 1,0 1,1"},
		{"quadratic", func(p *Path) {
			p.MoveTo(geom.Pt(0, 0))
			p.QuadraticTo(geom.Pt(5, 10), geom.Pt(10, 0))
		}, "M 0,0 Q 5,10 10,0"},
		{"cubic then line", func(p *Path) {
			p.MoveTo(geom.Pt(0, 0))
			p.CubicTo(geom.Pt(0, 5), geom.Pt(5, 5), geom.Pt(5, 0))
			p.LineTo(geom.Pt(0, 0))
		}, "M 0,0 C 0,5 5,5 5,0 L 0,0"},
		{"line after close", func(p *Path) {
			p.MoveTo(geom.Pt(0, 0))
			p.LineTo(geom.Pt(1, 1))
			p.Close()
			p.LineTo(geom.Pt(2, 2))
		}, "M 0,0 1,1 z L 2,2"},
		{"two subpaths", func(p *Path) {
			p.MoveTo(geom.Pt(0, 0))
			p.LineTo(geom.Pt(1, 0))
			p.Close()
			p.MoveTo(geom.Pt(5, 5))
			p.LineTo(geom.Pt(6, 5))
			p.Close()
		}, "M 0,0 1,0 z M 5,5 6,5 z"},
		{"fractions", func(p *Path) {
			p.MoveTo(geom.Pt(0.125, -1.5))
			p.LineTo(geom.Pt(1.0/3, 1e7))
		}, "M 0.125,-1.5 0.333333,1e+07"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Path
			tt.build(&p)
			assert.Equal(t, tt.want, p.Data())
		})
	}
}

func TestPathClear(t *testing.T) {
	var p Path
	p.MoveTo(geom.Pt(1, 1))
	p.LineTo(geom.Pt(2, 2))
	assert.Equal(t, 2, p.Len())

	p.Clear()
	assert.Zero(t, p.Len())
	assert.Equal(t, "", p.Data())

	p.LineTo(geom.Pt(7, 7))
	assert.Equal(t, "M 7,7", p.Data())
}
