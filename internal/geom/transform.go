package geom

// Transform is one of Identity, Translation, Rotation or Scaling.
// The set is closed: only this package can add variants.
type Transform interface {
	// Matrix returns the affine matrix of the transform.
	Matrix() Matrix2D
	isTransform()
}

// Identity leaves points unchanged.
type Identity struct{}

// Translation shifts points by Offset.
type Translation struct {
	Offset Point
}

// Rotation turns points counterclockwise by Angle degrees around Pivot.
type Rotation struct {
	Pivot Point
	Angle float64
}

// Scaling multiplies X and Y by the components of Factor.
type Scaling struct {
	Factor Point
}

func (Identity) Matrix() Matrix2D      { return IdentityMatrix() }
func (t Translation) Matrix() Matrix2D { return TranslateMatrix(t.Offset.X, t.Offset.Y) }
func (t Rotation) Matrix() Matrix2D    { return RotateAboutMatrix(t.Pivot, t.Angle) }
func (t Scaling) Matrix() Matrix2D     { return ScaleMatrix(t.Factor.X, t.Factor.Y) }

func (Identity) isTransform()    {}
func (Translation) isTransform() {}
func (Rotation) isTransform()    {}
func (Scaling) isTransform()     {}

// Translate shifts by p.
func Translate(p Point) Translation {
	return Translation{Offset: p}
}

// Rotate rotates around the origin by angle degrees.
func Rotate(angle float64) Rotation {
	return Rotation{Angle: angle}
}

// RotateAbout rotates around pivot by angle degrees.
func RotateAbout(pivot Point, angle float64) Rotation {
	return Rotation{Pivot: pivot, Angle: angle}
}

// Scale scales the X and Y axes independently.
func Scale(x, y float64) Scaling {
	return Scaling{Factor: Point{x, y}}
}

// ScaleBy scales by the components of factor.
func ScaleBy(factor Point) Scaling {
	return Scale(factor.X, factor.Y)
}

// ScaleUniform scales both axes by f. f = 1 is the identity.
func ScaleUniform(f float64) Scaling {
	return Scale(f, f)
}

// ScaleX scales the X axis only.
func ScaleX(f float64) Scaling {
	return Scale(f, 1)
}

// ScaleY scales the Y axis only.
func ScaleY(f float64) Scaling {
	return Scale(1, f)
}

// Sequence is an ordered list of transforms. Element 0 is the outermost one:
// a point goes through the last element first and through element 0 last.
// This is the order of an SVG transform list, so a Sequence is serialized
// as-is.
type Sequence []Transform

// IdentitySequence is the sequence holding only the identity.
var IdentitySequence = Sequence{Identity{}}

// Combine returns the sequence applying first, then second.
// Reading left to right matches the call site: Combine(Rotate(30), Translate(p))
// rotates, then translates. The result is [second, first].
func Combine(first, second Transform) Sequence {
	return Sequence{second, first}
}

// Then returns a new sequence applying t after every transform in s,
// i.e. t prepended. s is not modified.
func (s Sequence) Then(t Transform) Sequence {
	out := make(Sequence, 0, len(s)+1)
	out = append(out, t)
	return append(out, s...)
}

// Matrix returns the product of the matrices in slice order.
func (s Sequence) Matrix() Matrix2D {
	m := IdentityMatrix()
	for _, t := range s {
		m = m.Multiply(t.Matrix())
	}
	return m
}

// Apply transforms p by applying the elements from last to first.
func (s Sequence) Apply(p Point) Point {
	for i := len(s) - 1; i >= 0; i-- {
		p = s[i].Matrix().Apply(p)
	}
	return p
}

// IsIdentity reports whether every element is the Identity variant.
// An empty sequence is the identity too.
func (s Sequence) IsIdentity() bool {
	for _, t := range s {
		if _, ok := t.(Identity); !ok {
			return false
		}
	}
	return true
}
