package diff

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gocurvi/field"
	"github.com/notargets/gocurvi/mesh"
	"github.com/notargets/gocurvi/types"
)

func testEngine(t *testing.T, opts Options) *Engine {
	d, err := mesh.NewDomain(mesh.Options{Nx: 12, Ny: 8, Nz: 8, MXG: 2, MYG: 2}, nil)
	require.NoError(t, err)
	return NewEngine(d.Mesh(0), opts)
}

func fill(m *mesh.Mesh, loc types.CellLoc, f func(x, y float64) float64) field.Field2D {
	r := m.NewField2D(loc)
	for x := 0; x < m.LocalNx; x++ {
		for y := 0; y < m.LocalNy; y++ {
			r.Set(x, y, f(float64(x), float64(y)))
		}
	}
	return r
}

func assertInterior(t *testing.T, m *mesh.Mesh, f field.Field2D, want func(x, y float64) float64) {
	b := m.Bounds(types.RgnNoBndry)
	for x := b.X0; x <= b.X1; x++ {
		for y := b.Y0; y <= b.Y1; y++ {
			assert.InDelta(t, want(float64(x), float64(y)), f.At(x, y), 1.e-10, "(%d,%d)", x, y)
		}
	}
}

func TestCentredDerivatives(t *testing.T) {
	for _, method := range []types.DiffMethod{types.DiffC2, types.DiffC4} {
		e := testEngine(t, Options{First: method, Second: method})
		m := e.Mesh()
		f := fill(m, types.CellCentre, func(x, y float64) float64 { return x*x + 3*y })
		{
			r := e.IndexDDX(f, types.CellDefault, types.DiffDefault, types.RgnNoBndry)
			assert.Equal(t, types.CellCentre, r.Location())
			assertInterior(t, m, r, func(x, _ float64) float64 { return 2 * x })
		}
		{
			r := e.IndexDDY(f, types.CellDefault, types.DiffDefault, types.RgnNoBndry)
			assertInterior(t, m, r, func(_, _ float64) float64 { return 3 })
		}
		{
			r := e.IndexD2DX2(f, types.CellDefault, types.DiffDefault, types.RgnNoBndry)
			assertInterior(t, m, r, func(_, _ float64) float64 { return 2 })
			r = e.IndexD2DY2(f, types.CellDefault, types.DiffDefault, types.RgnNoBndry)
			assertInterior(t, m, r, func(_, _ float64) float64 { return 0 })
		}
		{ // Points outside the region are left at zero
			r := e.IndexDDX(f, types.CellDefault, types.DiffDefault, types.RgnNoBndry)
			assert.Equal(t, 0., r.At(0, 3))
		}
	}
}

func TestMixedDerivatives(t *testing.T) {
	e := testEngine(t, Options{})
	m := e.Mesh()
	f := fill(m, types.CellCentre, func(x, y float64) float64 { return x*y + x*x })
	r := e.IndexD2DXDY(f, types.CellDefault, types.DiffDefault, types.RgnNoBndry)
	assertInterior(t, m, r, func(_, _ float64) float64 { return 1 })
	r = e.IndexD2DYDX(f, types.CellDefault, types.DiffDefault, types.RgnNoBndry)
	assertInterior(t, m, r, func(_, _ float64) float64 { return 1 })
}

func TestStaggeredDerivatives(t *testing.T) {
	for _, method := range []types.DiffMethod{types.DiffC2, types.DiffC4} {
		e := testEngine(t, Options{First: method})
		m := e.Mesh()
		{ // XLOW point i sits at x = i - 1/2
			f := fill(m, types.CellCentre, func(x, _ float64) float64 { return x * x })
			r := e.IndexDDX(f, types.CellXLow, types.DiffDefault, types.RgnNoBndry)
			assert.Equal(t, types.CellXLow, r.Location())
			assertInterior(t, m, r, func(x, _ float64) float64 { return 2*x - 1 })
		}
		{
			f := fill(m, types.CellYLow, func(_, y float64) float64 { return (y - 0.5) * (y - 0.5) })
			r := e.IndexDDY(f, types.CellCentre, types.DiffDefault, types.RgnNoBndry)
			assertInterior(t, m, r, func(_, y float64) float64 { return 2 * y })
		}
		{ // Derivative in y, interpolation in x
			f := fill(m, types.CellXLow, func(x, y float64) float64 { return (x - 0.5) * y })
			r := e.IndexDDY(f, types.CellCentre, types.DiffDefault, types.RgnNoBndry)
			assert.Equal(t, types.CellCentre, r.Location())
			assertInterior(t, m, r, func(x, _ float64) float64 { return x })
		}
		{ // XLOW to YLOW would pass through the corner, so interpolation goes first
			f := fill(m, types.CellXLow, func(x, y float64) float64 { return (x - 0.5) + y*y })
			r := e.IndexDDY(f, types.CellYLow, types.DiffDefault, types.RgnNoBndry)
			assert.Equal(t, types.CellYLow, r.Location())
			assertInterior(t, m, r, func(_, y float64) float64 { return 2*y - 1 })
		}
	}
}

func TestInterpTo(t *testing.T) {
	e := testEngine(t, Options{})
	m := e.Mesh()
	f := fill(m, types.CellCentre, func(x, y float64) float64 { return 2*x + y*y*y })
	{
		r := e.InterpTo(f, types.CellXLow, types.RgnNoBndry)
		assert.Equal(t, types.CellXLow, r.Location())
		assertInterior(t, m, r, func(x, y float64) float64 { return 2*x - 1 + y*y*y })
	}
	{ // Fourth order interpolation is exact for cubics
		r := e.InterpTo(f, types.CellYLow, types.RgnNoBndry)
		assertInterior(t, m, r, func(x, y float64) float64 { return 2*x + (y-0.5)*(y-0.5)*(y-0.5) })
	}
	{
		ylow := fill(m, types.CellYLow, func(x, y float64) float64 { return 2*x + (y-0.5)*(y-0.5)*(y-0.5) })
		r := e.InterpTo(ylow, types.CellXLow, types.RgnNoBndry)
		assert.Equal(t, types.CellXLow, r.Location())
		assertInterior(t, m, r, func(x, y float64) float64 { return 2*x - 1 + y*y*y })
	}
	{ // Same location is a copy
		r := e.InterpTo(f, types.CellCentre, types.RgnNoBndry)
		assert.Equal(t, f.Data(), r.Data())
		r.Set(0, 0, 99)
		assert.NotEqual(t, 99., f.At(0, 0))
	}
}

func TestUpwind(t *testing.T) {
	e := testEngine(t, Options{})
	m := e.Mesh()
	f := fill(m, types.CellCentre, func(_, y float64) float64 { return y * y })
	{
		v := m.NewField2DConst(1, types.CellCentre)
		r := e.IndexVDDY(v, f, types.CellDefault, types.DiffDefault, types.RgnNoBndry)
		assertInterior(t, m, r, func(_, y float64) float64 { return 2*y - 1 })
	}
	{
		v := m.NewField2DConst(-1, types.CellCentre)
		r := e.IndexVDDY(v, f, types.CellDefault, types.DiffDefault, types.RgnNoBndry)
		assertInterior(t, m, r, func(_, y float64) float64 { return -(2*y + 1) })
	}
	{
		v := m.NewField2DConst(2, types.CellCentre)
		r := e.IndexVDDY(v, f, types.CellDefault, types.DiffC2, types.RgnNoBndry)
		assertInterior(t, m, r, func(_, y float64) float64 { return 4 * y })
	}
}

func TestLocationMismatch(t *testing.T) {
	e := testEngine(t, Options{})
	m := e.Mesh()
	f := m.NewField2D(types.CellCentre)
	catch := func(fn func()) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = r.(error)
			}
		}()
		fn()
		return
	}
	err := catch(func() { e.IndexD2DX2(f, types.CellXLow, types.DiffDefault, types.RgnNoBndry) })
	assert.True(t, errors.Is(err, field.ErrLocationMismatch))
	err = catch(func() {
		e.IndexVDDY(m.NewField2D(types.CellYLow), f, types.CellDefault, types.DiffDefault, types.RgnNoBndry)
	})
	assert.True(t, errors.Is(err, field.ErrLocationMismatch))
	f3 := m.NewField3D(types.CellCentre)
	err = catch(func() { e.IndexMixed3D(f3, 'x', 'r', types.CellDefault, types.DiffDefault, types.RgnNoBndry) })
	assert.True(t, errors.Is(err, ErrDirection))
	assert.NotPanics(t, func() {
		e.IndexMixed3D(f3, 'y', 'z', types.CellDefault, types.DiffDefault, types.RgnNoBndry)
	})
}

func TestField3D(t *testing.T) {
	e := testEngine(t, Options{})
	m := e.Mesh()
	var (
		f = m.NewField3D(types.CellCentre)
		k = 2 * math.Pi / float64(m.LocalNz)
	)
	for x := 0; x < m.LocalNx; x++ {
		for y := 0; y < m.LocalNy; y++ {
			for z := 0; z < m.LocalNz; z++ {
				f.Set(x, y, z, float64(x*x)+math.Sin(k*float64(z)))
			}
		}
	}
	b := m.Bounds(types.RgnNoBndry)
	{ // z is periodic, every z point is computed
		r := e.IndexDDZ3D(f, types.CellDefault, types.DiffDefault, types.RgnNoBndry)
		for z := 0; z < m.LocalNz; z++ {
			assert.InDelta(t, math.Sin(k)*math.Cos(k*float64(z)), r.At(b.X0, b.Y0, z), 1.e-12)
		}
		r = e.IndexD2DZ23D(f, types.CellDefault, types.DiffDefault, types.RgnNoBndry)
		for z := 0; z < m.LocalNz; z++ {
			want := 2 * (math.Cos(k) - 1) * math.Sin(k*float64(z))
			assert.InDelta(t, want, r.At(b.X1, b.Y1, z), 1.e-12)
		}
	}
	{
		r := e.IndexDDX3D(f, types.CellDefault, types.DiffDefault, types.RgnNoBndry)
		assert.InDelta(t, 2*float64(b.X0), r.At(b.X0, b.Y0, 3), 1.e-12)
		r = e.IndexD2DX23D(f, types.CellDefault, types.DiffDefault, types.RgnNoBndry)
		assert.InDelta(t, 2., r.At(b.X1, b.Y0, 5), 1.e-12)
		r = e.IndexMixed3D(f, 'x', 'z', types.CellDefault, types.DiffDefault, types.RgnNoBndry)
		assert.InDelta(t, 0., r.At(b.X1, b.Y0, 5), 1.e-12)
	}
	{
		r := e.InterpTo3D(f, types.CellXLow, types.RgnNoBndry)
		assert.Equal(t, types.CellXLow, r.Location())
		x := float64(b.X0) - 0.5
		assert.InDelta(t, x*x+math.Sin(2*k), r.At(b.X0, b.Y0, 2), 1.e-12)
	}
}
