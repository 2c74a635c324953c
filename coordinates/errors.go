package coordinates

import (
	"errors"
	"fmt"
)

var (
	ErrSingularMetric      = errors.New("metric tensor is singular")
	ErrNegativeDeterminant = errors.New("determinant of g^ij is less than zero")
	ErrJacobianNotFinite   = errors.New("jacobian not finite everywhere")
	ErrJacobianTooSmall    = errors.New("jacobian becomes very small")
	ErrNegativeG22         = errors.New("g_22 is less than zero")
	ErrBxyNotFinite        = errors.New("Bxy not finite everywhere")
	ErrSpacingTooSmall     = errors.New("grid spacing magnitude less than 1e-8")
	ErrSpacingNotFinite    = errors.New("grid spacing not finite")
	ErrMetricNotFinite     = errors.New("metric component not finite")
	ErrMetricNotPositive   = errors.New("diagonal metric component not positive")
	ErrTooFewPoints        = errors.New("not enough points for staggered grids with this decomposition")
	ErrLocation            = errors.New("unsupported cell location")
)

// ErrorKind classifies fatal geometry errors.
type ErrorKind uint8

const (
	KindConfig  ErrorKind = iota // Decomposition or options cannot support the request
	KindInput                    // Grid data is malformed
	KindNumeric                  // A derived quantity failed its checks
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindInput:
		return "input"
	}
	return "numeric"
}

// GeometryError carries the operation and, for pointwise failures, the local
// grid index at which a construction step failed. X and Y are -1 when the
// failure is not tied to a point.
type GeometryError struct {
	Kind ErrorKind
	Op   string
	X, Y int
	Err  error
}

func (e *GeometryError) Error() string {
	if e.X < 0 {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s at (%d,%d): %v", e.Op, e.X, e.Y, e.Err)
}

func (e *GeometryError) Unwrap() error { return e.Err }

func newError(kind ErrorKind, op string, err error) *GeometryError {
	return &GeometryError{Kind: kind, Op: op, X: -1, Y: -1, Err: err}
}

func newPointError(kind ErrorKind, op string, x, y int, err error) *GeometryError {
	return &GeometryError{Kind: kind, Op: op, X: x, Y: y, Err: err}
}
