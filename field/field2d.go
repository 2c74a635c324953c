// Package field holds the scalar field containers the geometry is built
// from. A Field2D varies over the two in-surface index directions (x, y); a
// Field3D also resolves the periodic z direction. Every field carries the
// cell location it lives at, and binary arithmetic between fields at
// different locations panics.
package field

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gocurvi/types"
	"github.com/notargets/gocurvi/utils"
)

var ErrLocationMismatch = errors.New("field: location mismatch")

// Bounds is an inclusive index box in x and y.
type Bounds struct {
	X0, X1, Y0, Y1 int
}

type Field2D struct {
	loc types.CellLoc
	M   utils.Matrix // nx rows by ny columns
}

func NewField2D(nx, ny int, loc types.CellLoc) Field2D {
	return Field2D{
		loc: loc,
		M:   utils.NewMatrix(nx, ny),
	}
}

func NewField2DConst(nx, ny int, val float64, loc types.CellLoc) (f Field2D) {
	f = NewField2D(nx, ny, loc)
	f.M.SetAll(val)
	return
}

// NewField2DFrom wraps data laid out as data[x*ny+y]. The slice is not copied.
func NewField2DFrom(nx, ny int, data []float64, loc types.CellLoc) Field2D {
	return Field2D{
		loc: loc,
		M:   utils.NewMatrix(nx, ny, data),
	}
}

func (f Field2D) IsAllocated() bool              { return !f.M.IsEmpty() }
func (f Field2D) Shape() (nx, ny int)            { return f.M.Dims() }
func (f Field2D) Location() types.CellLoc        { return f.loc }
func (f *Field2D) SetLocation(loc types.CellLoc) { f.loc = loc }
func (f Field2D) At(x, y int) float64            { return f.M.At(x, y) }
func (f Field2D) Set(x, y int, val float64)      { f.M.Set(x, y, val) }
func (f Field2D) Data() []float64                { return f.M.Data() }
func (f Field2D) IsReadOnly() bool               { return f.M.IsReadOnly() }

// Lock marks the field read only; later writes panic.
func (f *Field2D) Lock(name string) {
	f.M.SetReadOnly(name)
}

func (f Field2D) Copy() Field2D {
	return Field2D{loc: f.loc, M: f.M.Copy()}
}

// ZeroLike returns a zeroed field with the shape and location of f.
func (f Field2D) ZeroLike() Field2D {
	nx, ny := f.Shape()
	return NewField2D(nx, ny, f.loc)
}

func (f Field2D) checkLoc(g Field2D, op string) {
	if f.loc != g.loc {
		panic(fmt.Errorf("%s: %s vs %s: %w", op, f.loc, g.loc, ErrLocationMismatch))
	}
}

func (f Field2D) binary(g Field2D, op string, fn func(a, b float64) float64) (R Field2D) {
	f.checkLoc(g, op)
	R = f.Copy()
	R.M.Apply2(fn, g.M)
	return
}

func (f Field2D) Add(g Field2D) Field2D {
	return f.binary(g, "Add", func(a, b float64) float64 { return a + b })
}

func (f Field2D) Sub(g Field2D) Field2D {
	return f.binary(g, "Sub", func(a, b float64) float64 { return a - b })
}

func (f Field2D) Mul(g Field2D) Field2D {
	return f.binary(g, "Mul", func(a, b float64) float64 { return a * b })
}

func (f Field2D) Div(g Field2D) Field2D {
	return f.binary(g, "Div", func(a, b float64) float64 { return a / b })
}

func (f Field2D) Map(fn func(float64) float64) (R Field2D) {
	R = f.Copy()
	R.M.Apply(fn)
	return
}

func (f Field2D) Scale(a float64) Field2D {
	return f.Map(func(v float64) float64 { return a * v })
}

func (f Field2D) AddScalar(a float64) Field2D {
	return f.Map(func(v float64) float64 { return a + v })
}

// Recip returns a/f pointwise.
func (f Field2D) Recip(a float64) Field2D {
	return f.Map(func(v float64) float64 { return a / v })
}

func (f Field2D) Sqrt() Field2D { return f.Map(math.Sqrt) }
func (f Field2D) Abs() Field2D  { return f.Map(math.Abs) }

func (f Field2D) reduce(b Bounds, fn func([]float64) float64, combine func(a, b float64) float64) (r float64) {
	var (
		_, ny = f.Shape()
		data  = f.Data()
		first = true
	)
	for x := b.X0; x <= b.X1; x++ {
		if b.Y1 < b.Y0 {
			break
		}
		v := fn(data[x*ny+b.Y0 : x*ny+b.Y1+1])
		if first {
			r, first = v, false
			continue
		}
		r = combine(r, v)
	}
	return
}

// Min skips NaN values, check Finite first where they matter.
func (f Field2D) Min(b Bounds) float64 {
	return f.reduce(b, floats.Min, math.Min)
}

func (f Field2D) Max(b Bounds) float64 {
	return f.reduce(b, floats.Max, math.Max)
}

// AbsMax is the largest magnitude within b.
func (f Field2D) AbsMax(b Bounds) float64 {
	return f.Abs().Max(b)
}

func (f Field2D) Finite(b Bounds) bool {
	var (
		_, ny = f.Shape()
		data  = f.Data()
	)
	for x := b.X0; x <= b.X1; x++ {
		if b.Y1 < b.Y0 {
			break
		}
		if !utils.IsFinite(data[x*ny+b.Y0 : x*ny+b.Y1+1]) {
			return false
		}
	}
	return true
}
