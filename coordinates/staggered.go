package coordinates

import (
	"fmt"

	"github.com/notargets/gocurvi/field"
	"github.com/notargets/gocurvi/types"
)

type interpolator func(f field.Field2D, extrapBranchCut bool) (field.Field2D, error)

// NewStaggered builds the geometry at loc from the cell centre geometry. The
// spacings, contravariant metric and shift fields are interpolated; the
// covariant metric, Jacobian and connection coefficients are recomputed
// from the interpolated metric. It is collective.
func NewStaggered(base *Coordinates, loc types.CellLoc) (c *Coordinates, err error) {
	const op = "staggered geometry"
	switch {
	case loc != types.CellXLow && loc != types.CellYLow && loc != types.CellZLow:
		return nil, newError(KindConfig, op, fmt.Errorf("%s: %w", loc, ErrLocation))
	case base.key != types.CellCentre:
		return nil, newError(KindConfig, op, fmt.Errorf("base at %s: %w", base.key, ErrLocation))
	}
	var (
		m = base.m
		e = base.e
	)
	c = newCoordinates(m, e, loc, base.opts)
	if len(base.ShiftAngle) != 0 {
		if loc == types.CellXLow {
			if m.XStart < 2 {
				return nil, newError(KindConfig, op, fmt.Errorf("ShiftAngle: %w", ErrTooFewPoints))
			}
			sa := base.ShiftAngle
			c.ShiftAngle = make([]float64, m.LocalNx)
			for x := m.XStart; x <= m.XEnd; x++ {
				c.ShiftAngle[x] = interp4(sa[x-2], sa[x-1], sa[x], sa[x+1])
			}
		} else {
			c.ShiftAngle = append([]float64{}, base.ShiftAngle...)
		}
	}
	interp := func(f field.Field2D, extrap bool) (field.Field2D, error) {
		return interpolateAndExtrapolate(e, f, loc, extrap)
	}
	if err = c.derive(base, interp, false, true); err != nil {
		return nil, err
	}
	return
}

// derive fills c from src through interp. The torsion flags select branch
// cut extrapolation for ShiftTorsion and IntShiftTorsion.
func (c *Coordinates) derive(src *Coordinates, interp interpolator, torsionCut, intTorsionCut bool) (err error) {
	var (
		m   = c.m
		cut = m.HasBranchCut()
	)
	if c.Dx, err = interp(src.Dx, false); err != nil {
		return
	}
	if c.Dy, err = interp(src.Dy, false); err != nil {
		return
	}
	c.Dz = src.Dz
	up := src.contravariant()
	for i, p := range c.contravariant() {
		if *p, err = interp(*up[i], cut); err != nil {
			return
		}
	}
	// zShift guard cells come from ShiftAngle, not extrapolation
	if c.ZShift, err = interp(src.ZShift, false); err != nil {
		return
	}
	m.Communicate(c.ZShift)
	c.correctShiftAngle(c.ZShift)

	if err = c.checkMetric("interpolated metric"); err != nil {
		return
	}
	if err = c.calcCovariant(); err != nil {
		return
	}
	if err = c.jacobian(); err != nil {
		return
	}
	if err = c.geometry(); err != nil {
		return
	}
	if c.ShiftTorsion, err = interp(src.ShiftTorsion, torsionCut); err != nil {
		return
	}
	if m.IncIntShear {
		if c.IntShiftTorsion, err = interp(src.IntShiftTorsion, intTorsionCut); err != nil {
			return
		}
	}
	c.lock()
	return
}
