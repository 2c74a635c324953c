package field

import (
	"fmt"

	"github.com/notargets/gocurvi/types"
	"github.com/notargets/gocurvi/utils"
)

// Field3D stores nx*ny rows of nz contiguous z values, so one z line is
// data[(x*ny+y)*nz : (x*ny+y+1)*nz].
type Field3D struct {
	loc        types.CellLoc
	nx, ny, nz int
	M          utils.Matrix
}

func NewField3D(nx, ny, nz int, loc types.CellLoc) Field3D {
	return Field3D{
		loc: loc,
		nx:  nx, ny: ny, nz: nz,
		M: utils.NewMatrix(nx*ny, nz),
	}
}

func NewField3DConst(nx, ny, nz int, val float64, loc types.CellLoc) (f Field3D) {
	f = NewField3D(nx, ny, nz, loc)
	f.M.SetAll(val)
	return
}

// FromField2D broadcasts f along z.
func FromField2D(f Field2D, nz int) (R Field3D) {
	nx, ny := f.Shape()
	R = NewField3D(nx, ny, nz, f.Location())
	R.M.ApplyRows(func(_, b float64) float64 { return b }, f.Data())
	return
}

func (f Field3D) IsAllocated() bool              { return !f.M.IsEmpty() }
func (f Field3D) Shape() (nx, ny, nz int)        { return f.nx, f.ny, f.nz }
func (f Field3D) Location() types.CellLoc        { return f.loc }
func (f *Field3D) SetLocation(loc types.CellLoc) { f.loc = loc }
func (f Field3D) At(x, y, z int) float64         { return f.M.At(x*f.ny+y, z) }
func (f Field3D) Set(x, y, z int, val float64)   { f.M.Set(x*f.ny+y, z, val) }
func (f Field3D) Data() []float64                { return f.M.Data() }

// Line returns the z line at (x, y), aliased to the field storage.
func (f Field3D) Line(x, y int) []float64 {
	i := (x*f.ny + y) * f.nz
	return f.Data()[i : i+f.nz]
}

func (f Field3D) Copy() Field3D {
	R := f
	R.M = f.M.Copy()
	return R
}

func (f Field3D) ZeroLike() Field3D {
	return NewField3D(f.nx, f.ny, f.nz, f.loc)
}

func (f Field3D) checkLoc(loc types.CellLoc, op string) {
	if f.loc != loc {
		panic(fmt.Errorf("%s: %s vs %s: %w", op, f.loc, loc, ErrLocationMismatch))
	}
}

func (f Field3D) binary(g Field3D, op string, fn func(a, b float64) float64) (R Field3D) {
	f.checkLoc(g.loc, op)
	R = f.Copy()
	R.M.Apply2(fn, g.M)
	return
}

func (f Field3D) broadcast(g Field2D, op string, fn func(a, b float64) float64) (R Field3D) {
	f.checkLoc(g.loc, op)
	R = f.Copy()
	R.M.ApplyRows(fn, g.Data())
	return
}

func (f Field3D) Add(g Field3D) Field3D {
	return f.binary(g, "Add", func(a, b float64) float64 { return a + b })
}

func (f Field3D) Sub(g Field3D) Field3D {
	return f.binary(g, "Sub", func(a, b float64) float64 { return a - b })
}

func (f Field3D) Mul(g Field3D) Field3D {
	return f.binary(g, "Mul", func(a, b float64) float64 { return a * b })
}

func (f Field3D) Div(g Field3D) Field3D {
	return f.binary(g, "Div", func(a, b float64) float64 { return a / b })
}

func (f Field3D) Add2D(g Field2D) Field3D {
	return f.broadcast(g, "Add", func(a, b float64) float64 { return a + b })
}

func (f Field3D) Mul2D(g Field2D) Field3D {
	return f.broadcast(g, "Mul", func(a, b float64) float64 { return a * b })
}

func (f Field3D) Div2D(g Field2D) Field3D {
	return f.broadcast(g, "Div", func(a, b float64) float64 { return a / b })
}

func (f Field3D) Scale(a float64) (R Field3D) {
	R = f.Copy()
	R.M.Apply(func(v float64) float64 { return a * v })
	return
}

func (f Field3D) Max(b Bounds) (r float64) {
	first := true
	for x := b.X0; x <= b.X1; x++ {
		for y := b.Y0; y <= b.Y1; y++ {
			for _, v := range f.Line(x, y) {
				if first || v > r {
					r, first = v, false
				}
			}
		}
	}
	return
}

func (f Field3D) Min(b Bounds) (r float64) {
	return -f.Scale(-1).Max(b)
}
