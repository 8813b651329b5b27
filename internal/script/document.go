// Package script replays JSON drawing scripts onto a canvas.
package script

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/monet-draw/monet/internal/canvas"
	"github.com/monet-draw/monet/internal/color"
	"github.com/monet-draw/monet/internal/geom"
)

var (
	ErrInvalidDocument = errors.New("invalid document")
	ErrUnknownOp       = errors.New("unknown op")
	ErrOperand         = errors.New("invalid operand")
	ErrScope           = errors.New("scope out of order")
	ErrTooManyCommands = errors.New("too many commands")
)

// Document is a canvas size plus the commands drawing on it.
type Document struct {
	Name     string    `json:"name,omitempty"`
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	Commands []Command `json:"commands"`
}

type Op string

const (
	OpSetStrokeColor  Op = "setStrokeColor"
	OpSetFillColor    Op = "setFillColor"
	OpSetStrokeWidth  Op = "setStrokeWidth"
	OpSetFontFamily   Op = "setFontFamily"
	OpSetFontSize     Op = "setFontSize"
	OpSetTransparency Op = "setTransparency"

	OpMoveTo            Op = "moveTo"
	OpLineTo            Op = "lineTo"
	OpQuadraticTo       Op = "quadraticTo"
	OpCubicTo           Op = "cubicTo"
	OpClosePath         Op = "closePath"
	OpClearPath         Op = "clearPath"
	OpDrawPath          Op = "drawPath"
	OpStrokePath        Op = "strokePath"
	OpFillPath          Op = "fillPath"
	OpFillAndStrokePath Op = "fillAndStrokePath"

	OpLine      Op = "line"
	OpCircle    Op = "circle"
	OpRectangle Op = "rectangle"
	OpText      Op = "text"

	OpBeginGroup Op = "beginGroup"
	OpEndGroup   Op = "endGroup"
	OpDefineClip Op = "defineClip"
	OpEndClip    Op = "endClip"
	OpUseClip    Op = "useClip"
	OpRemoveClip Op = "removeClip"
)

// Command is one canvas call. Only the operands of Op are read.
type Command struct {
	Op         Op           `json:"op"`
	Points     []geom.Point `json:"points,omitempty"`     // Positions, control points and corners in call order
	Radius     float64      `json:"radius,omitempty"`     // circle
	Action     string       `json:"action,omitempty"`     // "stroke", "fill" or "fillAndStroke"
	Color      string       `json:"color,omitempty"`      // "#rrggbb", "#rgb" or a palette name
	RGB        *color.Color `json:"rgb,omitempty"`        // Exact channels; wins over Color
	Value      float64      `json:"value,omitempty"`      // Stroke width, font size or transparency
	Text       string       `json:"text,omitempty"`       // text
	HAlign     string       `json:"halign,omitempty"`     // "left", "center" or "right"; defaults to right
	VAlign     string       `json:"valign,omitempty"`     // "top", "center", "middle" or "bottom"; defaults to top
	Family     string       `json:"family,omitempty"`     // "serif", "sans-serif" or "monospace"
	Name       string       `json:"name,omitempty"`       // Group name
	Transforms []Transform  `json:"transforms,omitempty"` // Group transforms, first applied first
}

// Transform is the JSON form of a geom.Transform. Type is "identity",
// "translate" (X, Y), "rotate" (Angle, optional Pivot) or "scale" (X, Y).
// A scale without factors is the identity scale; with only x it is uniform,
// as in an SVG transform list; with only y, x is 1.
type Transform struct {
	Type  string      `json:"type"`
	X     float64     `json:"x,omitempty"`
	Y     float64     `json:"y,omitempty"`
	Angle float64     `json:"angle,omitempty"`
	Pivot *geom.Point `json:"pivot,omitempty"`
}

type plainTransform Transform

func (t *Transform) UnmarshalJSON(data []byte) error {
	var in struct {
		plainTransform
		X *float64 `json:"x"`
		Y *float64 `json:"y"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return err
	}

	*t = Transform(in.plainTransform)
	if in.X != nil {
		t.X = *in.X
	}
	if in.Y != nil {
		t.Y = *in.Y
	}
	if t.Type == "scale" {
		switch {
		case in.X == nil && in.Y == nil:
			t.X, t.Y = 1, 1
		case in.Y == nil:
			t.Y = t.X
		case in.X == nil:
			t.X = 1
		}
	}
	return nil
}

// MarshalJSON always writes both factors of a scale, so a zero factor
// survives a round trip.
func (t Transform) MarshalJSON() ([]byte, error) {
	if t.Type != "scale" {
		return json.Marshal(plainTransform(t))
	}
	return json.Marshal(struct {
		plainTransform
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}{plainTransform(t), t.X, t.Y})
}

// Parse decodes a JSON document. Unknown fields and anything after the
// document are rejected.
func Parse(r io.Reader) (*Document, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("data after the document")
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return &doc, nil
}

// ParseBytes is Parse over a byte slice.
func ParseBytes(data []byte) (*Document, error) {
	return Parse(bytes.NewReader(data))
}

// Validate checks the canvas size and, when maxCommands > 0, the number of
// commands. Commands themselves are checked by Play.
func (d *Document) Validate(maxCommands int) error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: size %gx%g", ErrInvalidDocument, d.Width, d.Height)
	}
	if maxCommands > 0 && len(d.Commands) > maxCommands {
		return fmt.Errorf("%w: %d > %d", ErrTooManyCommands, len(d.Commands), maxCommands)
	}
	return nil
}

// Render draws doc into w as a complete SVG document. The canvas is closed
// even when a command fails, so w always receives a well-formed document.
func Render(w io.Writer, doc *Document, opts ...canvas.Option) error {
	if err := doc.Validate(0); err != nil {
		return err
	}
	return canvas.Draw(w, doc.Width, doc.Height, func(c *canvas.Canvas) error {
		return Play(c, doc.Commands)
	}, opts...)
}

// IsInvalid reports whether err comes from a malformed document or command,
// as opposed to a failure of the output.
func IsInvalid(err error) bool {
	for _, target := range []error{ErrInvalidDocument, ErrUnknownOp, ErrOperand, ErrScope, ErrTooManyCommands} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
