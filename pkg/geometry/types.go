// Package geometry provides the planar value types shared by the UV and XY frames.
package geometry

import (
	"math"
)

// Point2D represents a 2D point with floating-point coordinates.
// The same type carries XY and UV coordinates; X holds x or u, Y holds y or v.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint2D creates a new Point2D.
func NewPoint2D(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Distance returns the Euclidean distance to another point.
// Computed as sqrt(dx*dx + dy*dy) rather than math.Hypot, with the products
// rounded before the sum so no platform fuses them into an FMA.
func (p Point2D) Distance(other Point2D) float64 {
	d := p.Sub(other)
	return math.Sqrt(float64(d.X*d.X) + float64(d.Y*d.Y))
}

// Bearing returns the angle in radians of the vector from p to other,
// in (-pi, pi]. Coincident points give 0.
func (p Point2D) Bearing(other Point2D) float64 {
	d := other.Sub(p)
	return math.Atan2(d.Y, d.X)
}

// Equal reports whether both coordinates are exactly equal.
func (p Point2D) Equal(other Point2D) bool {
	return p.X == other.X && p.Y == other.Y
}

// IsFinite reports whether neither coordinate is NaN or infinite.
func (p Point2D) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Add returns the sum of two points.
func (p Point2D) Add(other Point2D) Point2D {
	return Point2D{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the difference of two points.
func (p Point2D) Sub(other Point2D) Point2D {
	return Point2D{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale returns the point scaled by a factor.
func (p Point2D) Scale(factor float64) Point2D {
	return Point2D{X: p.X * factor, Y: p.Y * factor}
}

// Polar returns the point at distance r and angle theta from p.
func (p Point2D) Polar(r, theta float64) Point2D {
	return p.Add(Point2D{X: float64(r * math.Cos(theta)), Y: float64(r * math.Sin(theta))})
}

// AffineTransform represents a 2x3 affine transformation matrix.
// [a b tx]
// [c d ty]
type AffineTransform struct {
	A, B, TX float64
	C, D, TY float64
}

// Translation returns a translation transform.
func Translation(tx, ty float64) AffineTransform {
	return AffineTransform{A: 1, D: 1, TX: tx, TY: ty}
}

// Rotation returns a rotation transform around the origin.
func Rotation(radians float64) AffineTransform {
	cos := math.Cos(radians)
	sin := math.Sin(radians)
	return AffineTransform{A: cos, B: -sin, C: sin, D: cos}
}

// Similarity returns a uniform scale followed by a rotation around the origin.
func Similarity(scale, radians float64) AffineTransform {
	r := Rotation(radians)
	return AffineTransform{A: r.A * scale, B: r.B * scale, C: r.C * scale, D: r.D * scale}
}

// Apply applies the transform to a point.
func (t AffineTransform) Apply(p Point2D) Point2D {
	return Point2D{
		X: t.A*p.X + t.B*p.Y + t.TX,
		Y: t.C*p.X + t.D*p.Y + t.TY,
	}
}

// Compose returns this transform composed with another (this * other).
// Applying the result is equivalent to applying other first, then t.
func (t AffineTransform) Compose(other AffineTransform) AffineTransform {
	return AffineTransform{
		A:  t.A*other.A + t.B*other.C,
		B:  t.A*other.B + t.B*other.D,
		TX: t.A*other.TX + t.B*other.TY + t.TX,
		C:  t.C*other.A + t.D*other.C,
		D:  t.C*other.B + t.D*other.D,
		TY: t.C*other.TX + t.D*other.TY + t.TY,
	}
}

// Inverse returns the inverse transform, if it exists.
// The determinant is judged relative to the size of the linear part, so
// uniformly tiny or huge transforms still invert.
func (t AffineTransform) Inverse() (AffineTransform, bool) {
	det := t.A*t.D - t.B*t.C
	norm := (math.Abs(t.A) + math.Abs(t.B)) * (math.Abs(t.C) + math.Abs(t.D))
	if det == 0 || math.Abs(det) < 1e-12*norm {
		return AffineTransform{}, false
	}

	invDet := 1.0 / det
	return AffineTransform{
		A:  t.D * invDet,
		B:  -t.B * invDet,
		TX: (t.B*t.TY - t.D*t.TX) * invDet,
		C:  -t.C * invDet,
		D:  t.A * invDet,
		TY: (t.C*t.TX - t.A*t.TY) * invDet,
	}, true
}

// RotationAngle returns the rotation component in radians, atan2(c, a).
func (t AffineTransform) RotationAngle() float64 {
	return math.Atan2(t.C, t.A)
}

// ScaleFactor returns the length of the transformed unit x vector.
// For a similarity this is its uniform scale.
func (t AffineTransform) ScaleFactor() float64 {
	return math.Sqrt(t.A*t.A + t.C*t.C)
}

// ToMatrix returns the transform as a [2][3]float64 array.
func (t AffineTransform) ToMatrix() [2][3]float64 {
	return [2][3]float64{
		{t.A, t.B, t.TX},
		{t.C, t.D, t.TY},
	}
}

// FromMatrix creates an AffineTransform from a [2][3]float64 array.
func FromMatrix(m [2][3]float64) AffineTransform {
	return AffineTransform{
		A: m[0][0], B: m[0][1], TX: m[0][2],
		C: m[1][0], D: m[1][1], TY: m[1][2],
	}
}
