package script

import (
	"fmt"

	"github.com/monet-draw/monet/internal/canvas"
	"github.com/monet-draw/monet/internal/color"
	"github.com/monet-draw/monet/internal/geom"
)

// Play runs cmds on c in order. It stops at the first malformed or
// out-of-order command, and at the first write error of c. Scope ordering is
// checked before calling c, so a bad script never makes the canvas panic.
func Play(c *canvas.Canvas, cmds []Command) error {
	for i, cmd := range cmds {
		if err := Apply(c, cmd); err != nil {
			return fmt.Errorf("command %d (%s): %w", i, cmd.Op, err)
		}
		if err := c.Err(); err != nil {
			return err
		}
	}
	return nil
}

// Apply runs a single command on c.
func Apply(c *canvas.Canvas, cmd Command) error {
	switch cmd.Op {
	case OpSetStrokeColor, OpSetFillColor:
		col, err := cmd.color()
		if err != nil {
			return err
		}
		if cmd.Op == OpSetStrokeColor {
			c.SetStrokeColor(col)
		} else {
			c.SetFillColor(col)
		}
	case OpSetStrokeWidth:
		c.SetStrokeWidth(cmd.Value)
	case OpSetFontSize:
		c.SetFontSize(cmd.Value)
	case OpSetTransparency:
		c.SetTransparency(cmd.Value)
	case OpSetFontFamily:
		f, err := ParseFontFamily(cmd.Family)
		if err != nil {
			return err
		}
		c.SetFontFamily(f)

	case OpMoveTo, OpLineTo:
		if err := cmd.needPoints(1); err != nil {
			return err
		}
		if cmd.Op == OpMoveTo {
			c.MoveTo(cmd.Points[0])
		} else {
			c.LineTo(cmd.Points[0])
		}
	case OpQuadraticTo:
		if err := cmd.needPoints(2); err != nil {
			return err
		}
		c.QuadraticTo(cmd.Points[0], cmd.Points[1])
	case OpCubicTo:
		if err := cmd.needPoints(3); err != nil {
			return err
		}
		c.CubicTo(cmd.Points[0], cmd.Points[1], cmd.Points[2])
	case OpDrawPath:
		if len(cmd.Points) == 0 {
			return fmt.Errorf("%w: drawPath needs at least one point", ErrOperand)
		}
		c.DrawPath(cmd.Points)
	case OpClosePath:
		c.ClosePath()
	case OpClearPath:
		c.ClearPath()
	case OpStrokePath:
		c.StrokePath()
	case OpFillPath:
		c.FillPath()
	case OpFillAndStrokePath:
		c.FillAndStrokePath()

	case OpLine:
		if err := cmd.needPoints(2); err != nil {
			return err
		}
		c.Line(cmd.Points[0], cmd.Points[1])
	case OpCircle:
		if err := cmd.needPoints(1); err != nil {
			return err
		}
		act, err := ParseAction(cmd.Action)
		if err != nil {
			return err
		}
		c.Circle(cmd.Points[0], cmd.Radius, act)
	case OpRectangle:
		if err := cmd.needPoints(2); err != nil {
			return err
		}
		act, err := ParseAction(cmd.Action)
		if err != nil {
			return err
		}
		c.Rectangle(cmd.Points[0], cmd.Points[1], act)
	case OpText:
		if err := cmd.needPoints(1); err != nil {
			return err
		}
		h, err := ParseHAlign(cmd.HAlign)
		if err != nil {
			return err
		}
		v, err := ParseVAlign(cmd.VAlign)
		if err != nil {
			return err
		}
		c.Text(cmd.Points[0], cmd.Text, h, v)

	case OpBeginGroup:
		seq, err := Sequence(cmd.Transforms)
		if err != nil {
			return err
		}
		c.BeginGroup(seq, cmd.Name)
	case OpEndGroup:
		if kind := c.Innermost(); kind != canvas.ScopeGroup {
			return fmt.Errorf("%w: innermost scope is %s", ErrScope, kind)
		}
		c.EndGroup()
	case OpDefineClip:
		if c.InClipDefinition() {
			return fmt.Errorf("%w: already defining a clip", ErrScope)
		}
		c.DefineClip()
	case OpEndClip:
		if kind := c.Innermost(); kind != canvas.ScopeClipDefinition {
			return fmt.Errorf("%w: innermost scope is %s", ErrScope, kind)
		}
		c.EndClip()
	case OpUseClip:
		if !c.HasClip() {
			return fmt.Errorf("%w: no clip defined", ErrScope)
		}
		c.UseClip()
	case OpRemoveClip:
		if kind := c.Innermost(); kind != canvas.ScopeClip {
			return fmt.Errorf("%w: innermost scope is %s", ErrScope, kind)
		}
		c.RemoveClip()

	default:
		return fmt.Errorf("%w %q", ErrUnknownOp, cmd.Op)
	}
	return nil
}

func (cmd Command) needPoints(n int) error {
	if len(cmd.Points) != n {
		return fmt.Errorf("%w: %s needs %d points, got %d", ErrOperand, cmd.Op, n, len(cmd.Points))
	}
	return nil
}

func (cmd Command) color() (color.Color, error) {
	if cmd.RGB != nil {
		return *cmd.RGB, nil
	}
	col, err := color.Parse(cmd.Color)
	if err != nil {
		return color.Color{}, fmt.Errorf("%w: %w", ErrOperand, err)
	}
	return col, nil
}

// Sequence folds ts, listed in application order, into a transform sequence.
func Sequence(ts []Transform) (geom.Sequence, error) {
	seq := geom.Sequence{}
	for i, t := range ts {
		g, err := t.Geom()
		if err != nil {
			return nil, fmt.Errorf("transform %d: %w", i, err)
		}
		seq = seq.Then(g)
	}
	return seq, nil
}

// Geom converts t to a geom.Transform.
func (t Transform) Geom() (geom.Transform, error) {
	switch t.Type {
	case "identity":
		return geom.Identity{}, nil
	case "translate":
		return geom.Translate(geom.Pt(t.X, t.Y)), nil
	case "rotate":
		if t.Pivot != nil {
			return geom.RotateAbout(*t.Pivot, t.Angle), nil
		}
		return geom.Rotate(t.Angle), nil
	case "scale":
		return geom.Scale(t.X, t.Y), nil
	}
	return nil, fmt.Errorf("%w: transform type %q", ErrOperand, t.Type)
}
