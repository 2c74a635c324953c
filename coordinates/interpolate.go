package coordinates

import (
	"fmt"
	"math"

	"github.com/notargets/gocurvi/diff"
	"github.com/notargets/gocurvi/field"
	"github.com/notargets/gocurvi/mesh"
	"github.com/notargets/gocurvi/types"
)

// interp4 is the symmetric 4-point midpoint value between b and c.
func interp4(a, b, c, d float64) float64 {
	return (9.*(b+c) - a - d) / 16.
}

// cubic extrapolates one point past the three known values r1, r2, r3,
// nearest first.
func cubic(r1, r2, r3 float64) float64 {
	return 3.*r1 - 3.*r2 + r3
}

// interpolateAndExtrapolate moves f to loc over the interior and
// communicates. Guard cells at true boundaries are then filled by cubic
// extrapolation, after interpolating the boundary point interp_to skips on
// the upper side of a staggered direction. With extrapBranchCut set, guard
// rows next to a branch cut are also extrapolated, overwriting the
// communicated values. The four corner guard blocks are NaN. It is
// collective.
func interpolateAndExtrapolate(e *diff.Engine, f field.Field2D, loc types.CellLoc,
	extrapBranchCut bool) (r field.Field2D, err error) {
	m := e.Mesh()
	r = e.InterpTo(f, loc, types.RgnNoBndry)
	m.Communicate(r)

	for _, br := range m.Boundaries() {
		var (
			bx, by = br.BX, br.BY
			start  = 0
		)
		if (loc == types.CellXLow && bx > 0) || (loc == types.CellYLow && by > 0) {
			if br.Width < 2 {
				return r, newError(KindConfig, "interpolate "+br.Name,
					fmt.Errorf("boundary interpolation needs 2 guard cells, have %d: %w", br.Width, ErrTooFewPoints))
			}
			start = 1
		}
		cubicOK := (bx != 0 && m.GlobalNx-2*br.Width >= 3) || (by != 0 && m.GlobalNy-2*br.Width >= 3)
		if cubicOK && ((bx != 0 && m.XEnd < m.XStart) || (by != 0 && m.YEnd < m.YStart)) {
			return r, newError(KindConfig, "interpolate "+br.Name, ErrTooFewPoints)
		}
		for _, p := range br.Points {
			x, y := p.X, p.Y
			if start > 0 {
				r.Set(x, y, interp4(f.At(x-2*bx, y-2*by), f.At(x-bx, y-by), f.At(x, y), f.At(x+bx, y+by)))
			}
			for i := start; i < br.Width; i++ {
				xi, yi := x+i*bx, y+i*by
				if cubicOK {
					r.Set(xi, yi, cubic(r.At(xi-bx, yi-by), r.At(xi-2*bx, yi-2*by), r.At(xi-3*bx, yi-3*by)))
				} else {
					r.Set(xi, yi, r.At(x-bx, y-by))
				}
			}
		}
	}

	if extrapBranchCut {
		extrapolateBranchCut(m, f, r, loc)
	}

	for i := 0; i < m.XStart; i++ {
		for j := 0; j < m.YStart; j++ {
			r.Set(i, j, math.NaN())
			r.Set(i, m.LocalNy-1-j, math.NaN())
			r.Set(m.LocalNx-1-i, j, math.NaN())
			r.Set(m.LocalNx-1-i, m.LocalNy-1-j, math.NaN())
		}
	}
	return
}

// extrapolateBranchCut fills the y guard rows of closed columns at the ends
// of the domain from the interior.
func extrapolateBranchCut(m *mesh.Mesh, f, r field.Field2D, loc types.CellLoc) {
	for i := m.XStart; i <= m.XEnd; i++ {
		if m.HasBranchCutDown(i) {
			for j := m.YStart - 1; j >= 0; j-- {
				r.Set(i, j, cubic(r.At(i, j+1), r.At(i, j+2), r.At(i, j+3)))
			}
		}
		if m.HasBranchCutUp(i) {
			if loc == types.CellYLow {
				j := m.YEnd
				r.Set(i, j, interp4(f.At(i, j-2), f.At(i, j-1), f.At(i, j), f.At(i, j+1)))
			}
			for j := m.YEnd + 1; j < m.LocalNy; j++ {
				r.Set(i, j, cubic(r.At(i, j-1), r.At(i, j-2), r.At(i, j-3)))
			}
		}
	}
}

// interpXLowToXYCorner moves an x-staggered field to the XY corner. The
// outer x boundary column is shifted one point inward into a scratch field
// so it is interpolated in y like an interior column, then spliced back. The
// result is tagged CellCentre so it can only be used pointwise. It is
// collective.
func interpXLowToXYCorner(e *diff.Engine, f field.Field2D, extrapBranchCut bool) (r field.Field2D, err error) {
	m := e.Mesh()
	if m.XStart < 2 || m.YStart < 2 {
		return r, newError(KindConfig, "interpolate to corner",
			fmt.Errorf("need 2 guard cells in x and y, have %d and %d: %w", m.XStart, m.YStart, ErrTooFewPoints))
	}
	if f.Location() != types.CellXLow {
		return r, newError(KindConfig, "interpolate to corner",
			fmt.Errorf("input at %s: %w", f.Location(), ErrLocation))
	}
	var (
		outer []mesh.Point
		temp  = m.NewField2D(types.CellCentre)
	)
	for _, br := range m.Boundaries() {
		if br.BX > 0 {
			outer = append(outer, br.Points...)
		}
	}
	if len(outer) != 0 {
		for _, p := range outer {
			for i := m.XEnd - 1; i < m.LocalNx; i++ {
				temp.Set(i-1, p.Y, f.At(i, p.Y))
			}
		}
		// Communicate overwrites these except at y boundaries
		for i := m.XEnd - 2; i <= m.XEnd; i++ {
			for j := m.YStart - 1; j >= 0; j-- {
				temp.Set(i, j, cubic(temp.At(i, j+1), temp.At(i, j+2), temp.At(i, j+3)))
			}
			for j := m.YEnd + 1; j < m.LocalNy; j++ {
				temp.Set(i, j, cubic(temp.At(i, j-1), temp.At(i, j-2), temp.At(i, j-3)))
			}
		}
	}
	m.Communicate(temp)

	g := f.Copy()
	g.SetLocation(types.CellCentre)
	if r, err = interpolateAndExtrapolate(e, g, types.CellYLow, extrapBranchCut); err != nil {
		return
	}
	if temp, err = interpolateAndExtrapolate(e, temp, types.CellYLow, extrapBranchCut); err != nil {
		return
	}
	for _, p := range outer {
		for i := m.XEnd - 1; i < m.LocalNx; i++ {
			r.Set(i, p.Y, temp.At(i-1, p.Y))
		}
	}
	r.SetLocation(types.CellCentre)
	return
}

// correctShiftAngle subtracts ShiftAngle below and adds it above a branch
// cut, keeping zShift continuous across it. It is a no-op without
// ShiftAngle.
func (c *Coordinates) correctShiftAngle(zShift field.Field2D) {
	m := c.m
	if len(c.ShiftAngle) == 0 {
		return
	}
	for x := 0; x < m.LocalNx; x++ {
		if m.HasBranchCutDown(x) {
			for y := 0; y < m.YStart; y++ {
				zShift.Set(x, y, zShift.At(x, y)-c.ShiftAngle[x])
			}
		}
		if m.HasBranchCutUp(x) {
			for y := m.YEnd + 1; y < m.LocalNy; y++ {
				zShift.Set(x, y, zShift.At(x, y)+c.ShiftAngle[x])
			}
		}
	}
}

// toLocation moves a cell centre grid quantity to where this geometry's
// values sit.
func (c *Coordinates) toLocation(f field.Field2D) (field.Field2D, error) {
	switch c.key {
	case types.CellCentre:
		return f, nil
	case types.CellXYCorner:
		xlow, err := interpolateAndExtrapolate(c.e, f, types.CellXLow, false)
		if err != nil {
			return xlow, err
		}
		return interpXLowToXYCorner(c.e, xlow, false)
	}
	return interpolateAndExtrapolate(c.e, f, c.key, false)
}

// moveTo interpolates f to loc with the guard cells filled as for grid
// quantities. A field already at loc is returned as is.
func (c *Coordinates) moveTo(f field.Field2D, loc types.CellLoc) (field.Field2D, error) {
	if f.Location() == loc {
		return f, nil
	}
	return interpolateAndExtrapolate(c.e, f, loc, false)
}

// moveTo3D is moveTo one z plane at a time.
func (c *Coordinates) moveTo3D(f field.Field3D, loc types.CellLoc) (r field.Field3D, err error) {
	if f.Location() == loc {
		return f, nil
	}
	var (
		nx, ny, nz = f.Shape()
		p          = field.NewField2D(nx, ny, f.Location())
		q          field.Field2D
	)
	r = field.NewField3D(nx, ny, nz, loc)
	for z := 0; z < nz; z++ {
		for x := 0; x < nx; x++ {
			for y := 0; y < ny; y++ {
				p.Set(x, y, f.At(x, y, z))
			}
		}
		if q, err = c.moveTo(p, loc); err != nil {
			return
		}
		for x := 0; x < nx; x++ {
			for y := 0; y < ny; y++ {
				r.Set(x, y, z, q.At(x, y))
			}
		}
	}
	return
}
