package geom

import "math"

// Matrix2D is a 2D affine transformation matrix.
// Layout: [a, b, c, d, e, f] representing:
// | a  c  e |
// | b  d  f |
// | 0  0  1 |
//
// which is the same order SVG uses for matrix(a b c d e f).
type Matrix2D [6]float64

// IdentityMatrix returns the identity matrix.
func IdentityMatrix() Matrix2D {
	return Matrix2D{1, 0, 0, 1, 0, 0}
}

// TranslateMatrix returns a translation matrix.
func TranslateMatrix(tx, ty float64) Matrix2D {
	return Matrix2D{1, 0, 0, 1, tx, ty}
}

// ScaleMatrix returns a scale matrix.
func ScaleMatrix(sx, sy float64) Matrix2D {
	return Matrix2D{sx, 0, 0, sy, 0, 0}
}

// RotateMatrix returns a counterclockwise rotation about the origin
// (angle in degrees, Y axis pointing up).
func RotateMatrix(degrees float64) Matrix2D {
	sin, cos := math.Sincos(degrees * math.Pi / 180.0)
	return Matrix2D{cos, sin, -sin, cos, 0, 0}
}

// RotateAboutMatrix rotates by degrees around pivot:
// Translate(pivot) * Rotate(degrees) * Translate(-pivot).
func RotateAboutMatrix(pivot Point, degrees float64) Matrix2D {
	return TranslateMatrix(pivot.X, pivot.Y).
		Multiply(RotateMatrix(degrees)).
		Multiply(TranslateMatrix(-pivot.X, -pivot.Y))
}

// Multiply multiplies this matrix by another: result = m * other
// This applies 'other' first, then 'm'.
func (m Matrix2D) Multiply(other Matrix2D) Matrix2D {
	return Matrix2D{
		m[0]*other[0] + m[2]*other[1],        // a
		m[1]*other[0] + m[3]*other[1],        // b
		m[0]*other[2] + m[2]*other[3],        // c
		m[1]*other[2] + m[3]*other[3],        // d
		m[0]*other[4] + m[2]*other[5] + m[4], // e
		m[1]*other[4] + m[3]*other[5] + m[5], // f
	}
}

// Apply transforms a point.
func (m Matrix2D) Apply(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}
