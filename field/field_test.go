package field

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gocurvi/types"
)

func ramp2D(nx, ny int, loc types.CellLoc) (f Field2D) {
	f = NewField2D(nx, ny, loc)
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			f.Set(x, y, float64(x*ny+y))
		}
	}
	return
}

func TestField2DArithmetic(t *testing.T) {
	var (
		a = ramp2D(3, 4, types.CellCentre)
		b = NewField2DConst(3, 4, 2, types.CellCentre)
	)
	{
		nx, ny := a.Shape()
		assert.Equal(t, 3, nx)
		assert.Equal(t, 4, ny)
		assert.Equal(t, types.CellCentre, a.Location())
	}
	{
		c := a.Add(b)
		assert.Equal(t, 2., c.At(0, 0))
		assert.Equal(t, 13., c.At(2, 3))
		// Receiver unchanged
		assert.Equal(t, 0., a.At(0, 0))
	}
	{
		assert.Equal(t, 9., a.Sub(b).At(2, 3))
		assert.Equal(t, 22., a.Mul(b).At(2, 3))
		assert.Equal(t, 5.5, a.Div(b).At(2, 3))
		assert.Equal(t, 33., a.Scale(3).At(2, 3))
		assert.Equal(t, 12., a.AddScalar(1).At(2, 3))
		assert.Equal(t, 0.25, b.Recip(0.5).At(1, 1))
		assert.Equal(t, 3., a.Sqrt().At(2, 1))
	}
	{
		z := a.ZeroLike()
		assert.Equal(t, types.CellCentre, z.Location())
		assert.Equal(t, 0., z.Max(Bounds{0, 2, 0, 3}))
	}
}

func TestField2DLocationMismatch(t *testing.T) {
	var (
		a = NewField2D(2, 2, types.CellCentre)
		b = NewField2D(2, 2, types.CellXLow)
	)
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ErrLocationMismatch))
	}()
	a.Add(b)
}

func TestField2DReductions(t *testing.T) {
	a := ramp2D(4, 4, types.CellCentre).AddScalar(-5)
	{
		all := Bounds{0, 3, 0, 3}
		assert.Equal(t, -5., a.Min(all))
		assert.Equal(t, 10., a.Max(all))
		assert.Equal(t, 10., a.AbsMax(all))
	}
	{
		inner := Bounds{1, 2, 1, 2}
		assert.Equal(t, 0., a.Min(inner))
		assert.Equal(t, 5., a.Max(inner))
	}
	{ // NaN outside the bounds is not seen, inside it is
		a.Set(0, 0, math.NaN())
		assert.True(t, a.Finite(Bounds{1, 3, 1, 3}))
		assert.False(t, a.Finite(Bounds{0, 3, 0, 3}))
		// Min and Max step over it
		assert.Equal(t, -4., a.Min(Bounds{0, 3, 0, 3}))
		assert.Equal(t, 10., a.Max(Bounds{0, 3, 0, 3}))
	}
}

func TestField2DLock(t *testing.T) {
	a := NewField2D(2, 2, types.CellCentre)
	a.Lock("g11")
	assert.True(t, a.IsReadOnly())
	assert.Panics(t, func() { a.Set(0, 0, 1) })
	// Copies are writable
	c := a.Copy()
	assert.NotPanics(t, func() { c.Set(0, 0, 1) })
}

func TestField3D(t *testing.T) {
	var (
		f2 = ramp2D(2, 3, types.CellCentre)
		f3 = FromField2D(f2, 4)
	)
	{
		nx, ny, nz := f3.Shape()
		assert.Equal(t, []int{2, 3, 4}, []int{nx, ny, nz})
		for z := 0; z < 4; z++ {
			assert.Equal(t, 5., f3.At(1, 2, z))
		}
	}
	{
		f3.Set(1, 2, 3, 7)
		assert.Equal(t, []float64{5, 5, 5, 7}, f3.Line(1, 2))
	}
	{
		g := f3.Mul2D(f2)
		assert.Equal(t, 25., g.At(1, 2, 0))
		assert.Equal(t, 35., g.At(1, 2, 3))
		assert.Equal(t, 1., f3.Div2D(f2).At(1, 2, 0))
		assert.Equal(t, 12., f3.Add2D(f2).At(1, 2, 3))
		assert.Equal(t, 0., f3.Sub(f3).Max(Bounds{0, 1, 0, 2}))
		assert.Equal(t, 49., f3.Mul(f3).At(1, 2, 3))
		assert.Equal(t, 10., f3.Add(f3).At(1, 2, 0))
		assert.Equal(t, 1., f3.Div(f3).At(1, 2, 0))
	}
	{
		assert.Equal(t, 7., f3.Max(Bounds{0, 1, 0, 2}))
		assert.Equal(t, 0., f3.Min(Bounds{0, 1, 0, 2}))
		assert.Equal(t, 4., f3.Max(Bounds{0, 1, 0, 1}))
	}
	{
		xl := NewField2D(2, 3, types.CellXLow)
		assert.Panics(t, func() { f3.Mul2D(xl) })
	}
}
