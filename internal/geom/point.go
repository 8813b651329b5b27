package geom

import "fmt"

// Point is a 2D point or vector in canvas coordinates: origin at the bottom
// left corner, X growing rightwards and Y growing upwards.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Mul scales both coordinates by f.
func (p Point) Mul(f float64) Point {
	return Point{f * p.X, f * p.Y}
}

// Div divides both coordinates by f. Division by zero is not checked.
func (p Point) Div(f float64) Point {
	return Point{p.X / f, p.Y / f}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}
