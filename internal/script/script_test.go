package script

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monet-draw/monet/internal/canvas"
	"github.com/monet-draw/monet/internal/geom"
)

func fixedClipIDs() canvas.Option {
	return canvas.WithClipIDs(func() string { return "clip" })
}

func render(t *testing.T, doc *Document) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, doc, fixedClipIDs()))
	return buf.String()
}

func TestSamplesRender(t *testing.T) {
	names := SampleNames()
	require.Len(t, names, len(samples))

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			doc, err := Sample(name)
			require.NoError(t, err)
			assert.Equal(t, name, doc.Name)

			out := render(t, doc)
			assert.Equal(t, strings.Count(out, "<g"), strings.Count(out, "</g>"), "unbalanced groups")
			assert.True(t, strings.HasSuffix(out, "</svg>\n"))
		})
	}
}

func TestSimpleSample(t *testing.T) {
	doc, err := Sample("simple")
	require.NoError(t, err)

	out := render(t, doc)
	assert.Contains(t, out, `d="M 0,0 100,0 100,100 z"`)
	assert.Contains(t, out, `fill="#e5e5e5" stroke="none"`)
}

func TestClipSample(t *testing.T) {
	doc, err := Sample("clip")
	require.NoError(t, err)

	out := render(t, doc)
	assert.Contains(t, out, `<clipPath id="clip">`)
	assert.Contains(t, out, `<g clip-path="url(#clip)">`)
	assert.Equal(t, 30, strings.Count(out, "<rect"))
}

func TestSampleUnknown(t *testing.T) {
	_, err := Sample("nope")
	assert.ErrorIs(t, err, ErrUnknownSample)
}

func TestSampleJSONRoundTrip(t *testing.T) {
	doc, err := Sample("complex")
	require.NoError(t, err)

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	parsed, err := ParseBytes(data)
	require.NoError(t, err)

	assert.Equal(t, render(t, doc), render(t, parsed))
}

func TestParse(t *testing.T) {
	doc, err := ParseBytes([]byte(`{
		"width": 100, "height": 50,
		"commands": [
			{"op": "setStrokeColor", "color": "red"},
			{"op": "moveTo", "points": [{"x": 1, "y": 2}]},
			{"op": "lineTo", "points": [{"x": 3, "y": 4}]},
			{"op": "strokePath"}
		]
	}`))
	require.NoError(t, err)
	assert.Equal(t, 100.0, doc.Width)
	require.Len(t, doc.Commands, 4)
	assert.Equal(t, OpMoveTo, doc.Commands[1].Op)
	assert.Equal(t, []geom.Point{geom.Pt(1, 2)}, doc.Commands[1].Points)

	out := render(t, doc)
	assert.Contains(t, out, `d="M 1,2 3,4"`)
	assert.Contains(t, out, `stroke="#ff0000"`)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not json", `<svg/>`},
		{"unknown field", `{"width": 1, "height": 1, "colour": "red"}`},
		{"wrong type", `{"width": "wide"}`},
		{"second document", `{"width": 1, "height": 1} {}`},
		{"trailing garbage", `{"width": 1, "height": 1} x`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes([]byte(tt.in))
			assert.ErrorIs(t, err, ErrInvalidDocument)
		})
	}

	_, err := ParseBytes([]byte("{\"width\": 1, \"height\": 1}\n\n"))
	assert.NoError(t, err)
}

func TestValidate(t *testing.T) {
	doc := &Document{Width: 10, Height: 10, Commands: make([]Command, 3)}
	assert.NoError(t, doc.Validate(0))
	assert.NoError(t, doc.Validate(3))
	assert.ErrorIs(t, doc.Validate(2), ErrTooManyCommands)

	assert.ErrorIs(t, (&Document{Width: 0, Height: 10}).Validate(0), ErrInvalidDocument)
	assert.ErrorIs(t, Render(&bytes.Buffer{}, &Document{Width: 10, Height: -1}), ErrInvalidDocument)
}

func TestPlayErrors(t *testing.T) {
	pt := []geom.Point{geom.Pt(0, 0)}

	tests := []struct {
		name string
		cmds []Command
		want error
	}{
		{"unknown op", []Command{{Op: "paint"}}, ErrUnknownOp},
		{"missing point", []Command{{Op: OpMoveTo}}, ErrOperand},
		{"too many points", []Command{{Op: OpLine, Points: pt}}, ErrOperand},
		{"empty drawPath", []Command{{Op: OpDrawPath}}, ErrOperand},
		{"bad color", []Command{{Op: OpSetFillColor, Color: "#12"}}, ErrOperand},
		{"bad action", []Command{{Op: OpCircle, Points: pt, Action: "smudge"}}, ErrOperand},
		{"bad family", []Command{{Op: OpSetFontFamily, Family: "comic"}}, ErrOperand},
		{"bad halign", []Command{{Op: OpText, Points: pt, HAlign: "justify"}}, ErrOperand},
		{"bad valign", []Command{{Op: OpText, Points: pt, VAlign: "baseline"}}, ErrOperand},
		{"bad transform", []Command{{Op: OpBeginGroup, Transforms: []Transform{{Type: "skew"}}}}, ErrOperand},
		{"endGroup without group", []Command{{Op: OpEndGroup}}, ErrScope},
		{"endGroup inside clip definition", []Command{
			{Op: OpBeginGroup}, {Op: OpDefineClip}, {Op: OpEndGroup},
		}, ErrScope},
		{"nested defineClip", []Command{{Op: OpDefineClip}, {Op: OpDefineClip}}, ErrScope},
		{"endClip without definition", []Command{{Op: OpEndClip}}, ErrScope},
		{"useClip before definition", []Command{{Op: OpUseClip}}, ErrScope},
		{"removeClip without useClip", []Command{{Op: OpRemoveClip}}, ErrScope},
		{"removeClip inside group", []Command{
			{Op: OpDefineClip}, {Op: OpEndClip}, {Op: OpUseClip}, {Op: OpBeginGroup}, {Op: OpRemoveClip},
		}, ErrScope},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			c, err := canvas.New(&buf, 10, 10, fixedClipIDs())
			require.NoError(t, err)

			err = Play(c, tt.cmds)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "command ")

			require.NoError(t, c.Close())
			out := buf.String()
			assert.Equal(t, strings.Count(out, "<g"), strings.Count(out, "</g>"))
		})
	}
}

func TestPlayReportsCommandIndex(t *testing.T) {
	c, err := canvas.New(&bytes.Buffer{}, 10, 10)
	require.NoError(t, err)

	err = Play(c, []Command{{Op: OpClearPath}, {Op: OpClosePath}, {Op: OpEndGroup}})
	require.ErrorIs(t, err, ErrScope)
	assert.True(t, strings.HasPrefix(err.Error(), "command 2 (endGroup): "), err.Error())
}

type brokenWriter struct{ writes int }

var errBroken = errors.New("broken pipe")

func (w *brokenWriter) Write(p []byte) (int, error) {
	w.writes++
	if w.writes > 2 {
		return 0, errBroken
	}
	return len(p), nil
}

func TestPlayStopsOnWriteError(t *testing.T) {
	c, err := canvas.New(&brokenWriter{}, 10, 10)
	require.NoError(t, err)

	cmds := []Command{
		{Op: OpLine, Points: []geom.Point{geom.Pt(0, 0), geom.Pt(1, 1)}},
		{Op: Op("unknown")},
	}
	err = Play(c, cmds)
	assert.ErrorIs(t, err, errBroken)
	assert.NotErrorIs(t, err, ErrUnknownOp)
}

func TestSequenceAppliesInListedOrder(t *testing.T) {
	seq, err := Sequence([]Transform{
		{Type: "rotate", Angle: 90},
		{Type: "translate", X: 10},
	})
	require.NoError(t, err)

	p := seq.Apply(geom.Pt(1, 0))
	assert.InDelta(t, 10, p.X, 1e-9)
	assert.InDelta(t, 1, p.Y, 1e-9)

	doc := &Document{Width: 10, Height: 10, Commands: []Command{
		{Op: OpBeginGroup, Name: "g", Transforms: []Transform{
			{Type: "rotate", Angle: 90},
			{Type: "translate", X: 10},
		}},
		{Op: OpEndGroup},
	}}
	assert.Contains(t, render(t, doc), `<g name="g" transform="translate(10 0) rotate(90)">`)
}

func TestTransformGeom(t *testing.T) {
	pivot := geom.Pt(1, 2)
	tests := []struct {
		in   Transform
		want geom.Transform
	}{
		{Transform{Type: "identity"}, geom.Identity{}},
		{Transform{Type: "translate", X: 1, Y: 2}, geom.Translate(geom.Pt(1, 2))},
		{Transform{Type: "rotate", Angle: 30}, geom.Rotate(30)},
		{Transform{Type: "rotate", Angle: 30, Pivot: &pivot}, geom.RotateAbout(pivot, 30)},
		{Transform{Type: "scale", X: 2, Y: 3}, geom.Scale(2, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.in.Type, func(t *testing.T) {
			got, err := tt.in.Geom()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScaleFactorDefaults(t *testing.T) {
	tests := []struct {
		in   string
		want geom.Transform
	}{
		{`{"type": "scale"}`, geom.Scale(1, 1)},
		{`{"type": "scale", "x": 2}`, geom.Scale(2, 2)},
		{`{"type": "scale", "y": 3}`, geom.Scale(1, 3)},
		{`{"type": "scale", "x": 0, "y": 3}`, geom.Scale(0, 3)},
		{`{"type": "translate", "x": 2}`, geom.Translate(geom.Pt(2, 0))},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var tr Transform
			require.NoError(t, json.Unmarshal([]byte(tt.in), &tr))
			got, err := tr.Geom()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	var tr Transform
	assert.Error(t, json.Unmarshal([]byte(`{"type": "scale", "z": 1}`), &tr))
}

func TestZeroScaleSurvivesRoundTrip(t *testing.T) {
	data, err := json.Marshal(Transform{Type: "scale", X: 0, Y: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type": "scale", "x": 0, "y": 2}`, string(data))

	var back Transform
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, Transform{Type: "scale", X: 0, Y: 2}, back)

	data, err = json.Marshal(Transform{Type: "translate", X: 0, Y: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type": "translate", "y": 2}`, string(data))
}

func TestTextDefaults(t *testing.T) {
	doc := &Document{Width: 10, Height: 10, Commands: []Command{
		{Op: OpText, Points: []geom.Point{geom.Pt(1, 1)}, Text: "hi"},
	}}
	out := render(t, doc)
	assert.Contains(t, out, `text-anchor="start"`)
	assert.Contains(t, out, `dominant-baseline="text-bottom"`)
}

func TestIsInvalid(t *testing.T) {
	c, err := canvas.New(&bytes.Buffer{}, 10, 10)
	require.NoError(t, err)

	assert.True(t, IsInvalid(Play(c, []Command{{Op: OpEndClip}})))
	assert.True(t, IsInvalid((&Document{}).Validate(0)))
	assert.False(t, IsInvalid(errBroken))
	assert.False(t, IsInvalid(nil))
}
