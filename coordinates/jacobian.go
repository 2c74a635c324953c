package coordinates

import (
	"github.com/notargets/gocurvi/types"
)

// jacobian sets J = 1/sqrt(det g^ij) and Bxy = sqrt(g_22)/J.
func (c *Coordinates) jacobian() error {
	var (
		rgn = c.m.Bounds(types.RgnNoBndry)
		g11 = c.G11
		det = g11.Mul(c.G22).Mul(c.G33).
			Add(c.G12.Mul(c.G13).Mul(c.G23).Scale(2)).
			Sub(g11.Mul(c.G23).Mul(c.G23)).
			Sub(c.G22.Mul(c.G13).Mul(c.G13)).
			Sub(c.G33.Mul(c.G12).Mul(c.G12))
	)
	if det.Min(rgn) < 0 {
		return newError(KindNumeric, "jacobian", ErrNegativeDeterminant)
	}
	J := det.Sqrt().Recip(1)
	if !J.Finite(rgn) {
		return newError(KindNumeric, "jacobian", ErrJacobianNotFinite)
	}
	if J.Abs().Min(rgn) < 1.e-10 {
		return newError(KindNumeric, "jacobian", ErrJacobianTooSmall)
	}
	if c.G_22.Min(rgn) < 0 {
		return newError(KindNumeric, "jacobian", ErrNegativeG22)
	}
	c.J = J
	c.Bxy = c.G_22.Sqrt().Div(J)
	return nil
}
