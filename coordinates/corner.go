package coordinates

import (
	"fmt"

	"github.com/notargets/gocurvi/field"
	"github.com/notargets/gocurvi/types"
)

// NewXYCorner builds the geometry at the XY corner from the x-staggered
// geometry. Its fields are tagged CellCentre: they are meant for pointwise
// use in boundary conditions, and whole-field arithmetic with staggered
// fields panics. It needs at least 2 guard cells in x and y.
func NewXYCorner(xlow *Coordinates) (c *Coordinates, err error) {
	const op = "corner geometry"
	if xlow.key != types.CellXLow {
		return nil, newError(KindConfig, op, fmt.Errorf("base at %s: %w", xlow.key, ErrLocation))
	}
	m := xlow.m
	if m.XStart < 2 || m.YStart < 2 {
		return nil, newError(KindConfig, op,
			fmt.Errorf("need 2 guard cells in x and y, have %d and %d: %w", m.XStart, m.YStart, ErrTooFewPoints))
	}
	c = newCoordinates(m, xlow.e, types.CellXYCorner, xlow.opts)
	c.ShiftAngle = append([]float64{}, xlow.ShiftAngle...)
	interp := func(f field.Field2D, extrap bool) (field.Field2D, error) {
		return interpXLowToXYCorner(xlow.e, f, extrap)
	}
	if err = c.derive(xlow, interp, m.HasBranchCut(), false); err != nil {
		return nil, err
	}
	return
}
