// Package microcode maps microcode positions from the UV frame into the XY
// frame using two reference points known in both frames.
//
// The mapping is a similarity (rotation, uniform scale, translation) anchored
// at the first reference point. Transform and ReferencePair.Map reproduce the
// reference calculation exactly, including the C fmod reduction of bearings,
// and let degenerate input surface as NaN or Inf. MapChecked rejects such
// input up front with a *DegenerateReferenceError.
package microcode

import (
	"fmt"
	"math"

	"microcode-transform/pkg/geometry"

	"gonum.org/v1/gonum/mat"
)

// DesignConstant is the expected XY/UV reference distance ratio. It only
// normalizes the reported scale factor.
const DesignConstant = 0.505

const twoPi = 2 * math.Pi

// ReferencePair holds two points known in both frames.
// XY1/UV1 is the first reference point, XY2/UV2 the second.
type ReferencePair struct {
	XY1, XY2 geometry.Point2D
	UV1, UV2 geometry.Point2D
}

// Result is the outcome of mapping one UV target into the XY frame.
type Result struct {
	// Target is the mapped point in the XY frame.
	Target geometry.Point2D
	// ScaleFactor is the XY/UV reference distance ratio divided by DesignConstant.
	ScaleFactor float64
	// TargetRatio is the XY distance of Target from XY1 over the UV distance
	// of the input target from UV1. It does not feed ScaleFactor.
	TargetRatio float64
	// Rotation is the total angle, in radians, used to place Target around XY1.
	Rotation float64
}

// Transform maps (uTarget, vTarget) into the XY frame given the reference
// points (x1, y1)/(u1, v1) and (x2, y2)/(u2, v2). Degenerate input is not
// checked and yields NaN or Inf.
func Transform(x1, y1, x2, y2, u1, v1, u2, v2, uTarget, vTarget float64) (xTarget, yTarget, scaleFactor float64) {
	ref := ReferencePair{
		XY1: geometry.NewPoint2D(x1, y1),
		XY2: geometry.NewPoint2D(x2, y2),
		UV1: geometry.NewPoint2D(u1, v1),
		UV2: geometry.NewPoint2D(u2, v2),
	}
	res := ref.Map(geometry.NewPoint2D(uTarget, vTarget))
	return res.Target.X, res.Target.Y, res.ScaleFactor
}

// Map maps a UV target into the XY frame without validating the input.
func (r ReferencePair) Map(target geometry.Point2D) Result {
	alpha := r.rotation(target)

	uvTarget := target.Distance(r.UV1)
	xyRef := r.XY2.Distance(r.XY1)
	uvRef := r.UV2.Distance(r.UV1)

	ratio := xyRef / uvRef
	mapped := r.XY1.Polar(uvTarget*ratio, alpha)

	return Result{
		Target:      mapped,
		ScaleFactor: ratio / DesignConstant,
		TargetRatio: mapped.Distance(r.XY1) / uvTarget,
		Rotation:    alpha,
	}
}

// rotation returns the angle of the mapped target around XY1. Each bearing is
// reduced with math.Mod, which keeps the sign of the dividend, so negative
// bearings pass through unchanged.
func (r ReferencePair) rotation(target geometry.Point2D) float64 {
	toTarget := r.UV1.Bearing(target)
	uvRef := r.UV1.Bearing(r.UV2)
	theta := math.Mod(toTarget, twoPi) - math.Mod(uvRef, twoPi)

	xyRef := r.XY1.Bearing(r.XY2)
	return theta + math.Mod(xyRef, twoPi)
}

// Ratio returns the XY/UV reference distance ratio.
func (r ReferencePair) Ratio() float64 {
	return r.XY2.Distance(r.XY1) / r.UV2.Distance(r.UV1)
}

// Validate checks the reference pair and target against the transform's
// preconditions.
func (r ReferencePair) Validate(target geometry.Point2D) error {
	for _, p := range []geometry.Point2D{r.XY1, r.XY2, r.UV1, r.UV2, target} {
		if !p.IsFinite() {
			return &DegenerateReferenceError{Kind: NonFinite, Detail: fmt.Sprintf("(%g, %g)", p.X, p.Y)}
		}
	}
	if err := r.validatePair(); err != nil {
		return err
	}
	if target.Equal(r.UV1) {
		return &DegenerateReferenceError{
			Kind:   TargetAtReference,
			Detail: fmt.Sprintf("target (%g, %g) equals first UV reference", target.X, target.Y),
		}
	}
	return nil
}

func (r ReferencePair) validatePair() error {
	if r.UV1.Equal(r.UV2) {
		return &DegenerateReferenceError{
			Kind:   DegenerateUV,
			Detail: fmt.Sprintf("both UV references at (%g, %g)", r.UV1.X, r.UV1.Y),
		}
	}
	if r.XY1.Equal(r.XY2) {
		return &DegenerateReferenceError{
			Kind:   DegenerateXY,
			Detail: fmt.Sprintf("both XY references at (%g, %g)", r.XY1.X, r.XY1.Y),
		}
	}
	return nil
}

// MapChecked validates the input and then maps target exactly as Map does.
func MapChecked(ref ReferencePair, target geometry.Point2D) (Result, error) {
	if err := ref.Validate(target); err != nil {
		return Result{}, err
	}
	return ref.Map(target), nil
}

// Similarity returns the 2x3 similarity matrix that carries UV1 to XY1 and
// UV2 to XY2. It is solved as a linear system in (a, b, tx, ty) where
//
//	x = a*u - b*v + tx
//	y = b*u + a*v + ty
func (r ReferencePair) Similarity() (geometry.AffineTransform, error) {
	if err := r.validatePair(); err != nil {
		return geometry.AffineTransform{}, err
	}

	A := mat.NewDense(4, 4, nil)
	B := mat.NewVecDense(4, nil)

	uv := [2]geometry.Point2D{r.UV1, r.UV2}
	xy := [2]geometry.Point2D{r.XY1, r.XY2}
	for i := 0; i < 2; i++ {
		u, v := uv[i].X, uv[i].Y

		A.Set(i*2, 0, u)
		A.Set(i*2, 1, -v)
		A.Set(i*2, 2, 1)
		B.SetVec(i*2, xy[i].X)

		A.Set(i*2+1, 0, v)
		A.Set(i*2+1, 1, u)
		A.Set(i*2+1, 3, 1)
		B.SetVec(i*2+1, xy[i].Y)
	}

	var params mat.VecDense
	if err := params.SolveVec(A, B); err != nil {
		return geometry.AffineTransform{}, fmt.Errorf("solve similarity: %w", err)
	}

	a, b := params.AtVec(0), params.AtVec(1)
	return geometry.FromMatrix([2][3]float64{
		{a, -b, params.AtVec(2)},
		{b, a, params.AtVec(3)},
	}), nil
}

// Unmap carries an XY point back into the UV frame.
func (r ReferencePair) Unmap(xy geometry.Point2D) (geometry.Point2D, error) {
	sim, err := r.Similarity()
	if err != nil {
		return geometry.Point2D{}, err
	}
	inv, ok := sim.Inverse()
	if !ok {
		return geometry.Point2D{}, fmt.Errorf("similarity is not invertible")
	}
	return inv.Apply(xy), nil
}
