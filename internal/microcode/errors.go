package microcode

import (
	"errors"
	"fmt"
)

// ErrDegenerateReference matches every *DegenerateReferenceError via errors.Is.
var ErrDegenerateReference = errors.New("degenerate reference")

// DegenerateKind identifies which precondition a transform input violated.
type DegenerateKind int

const (
	// DegenerateUV means the two UV reference points coincide.
	DegenerateUV DegenerateKind = iota
	// DegenerateXY means the two XY reference points coincide.
	DegenerateXY
	// TargetAtReference means the UV target coincides with the first UV reference point.
	TargetAtReference
	// NonFinite means an input coordinate is NaN or infinite.
	NonFinite
)

func (k DegenerateKind) String() string {
	switch k {
	case DegenerateUV:
		return "DegenerateUV"
	case DegenerateXY:
		return "DegenerateXY"
	case TargetAtReference:
		return "TargetAtReference"
	case NonFinite:
		return "NonFinite"
	default:
		return fmt.Sprintf("DegenerateKind(%d)", int(k))
	}
}

// DegenerateReferenceError is returned by strict-mode operations when the
// inputs would make the transform undefined.
type DegenerateReferenceError struct {
	Kind   DegenerateKind
	Detail string
}

func (e *DegenerateReferenceError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%v: %v", ErrDegenerateReference, e.Kind)
	}
	return fmt.Sprintf("%v: %v: %s", ErrDegenerateReference, e.Kind, e.Detail)
}

// Is reports whether target is ErrDegenerateReference.
func (e *DegenerateReferenceError) Is(target error) bool {
	return target == ErrDegenerateReference
}
