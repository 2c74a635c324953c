package coordinates

import (
	"fmt"
	"math"

	"github.com/notargets/gocurvi/field"
	"github.com/notargets/gocurvi/types"
)

// geometry computes the Christoffel symbols, their contractions G1, G2, G3
// and the non-uniform grid corrections from the metric. The 21 connection
// fields are exchanged in a single collective call.
func (c *Coordinates) geometry() (err error) {
	rgn := c.m.Bounds(types.RgnNoBndry)
	for _, d := range []struct {
		name string
		f    field.Field2D
	}{{"dx", c.Dx}, {"dy", c.Dy}} {
		if !d.f.Finite(rgn) {
			return newError(KindInput, "geometry", fmt.Errorf("%s: %w", d.name, ErrSpacingNotFinite))
		}
	}
	if c.Dx.Abs().Min(rgn) < 1.e-8 {
		return newError(KindInput, "geometry", fmt.Errorf("dx: %w", ErrSpacingTooSmall))
	}
	if c.Dy.Abs().Min(rgn) < 1.e-8 {
		return newError(KindInput, "geometry", fmt.Errorf("dy: %w", ErrSpacingTooSmall))
	}
	if math.Abs(c.Dz) < 1.e-8 {
		return newError(KindInput, "geometry", fmt.Errorf("dz: %w", ErrSpacingTooSmall))
	}
	if err = c.checkMetric("geometry"); err != nil {
		return
	}
	for i, p := range c.covariant() {
		if !p.Finite(rgn) {
			return newError(KindInput, "geometry", fmt.Errorf("%s: %w", covariantNames[i], ErrMetricNotFinite))
		}
		if i < 3 && p.Min(rgn) <= 0 {
			return newError(KindInput, "geometry", fmt.Errorf("%s: %w", covariantNames[i], ErrMetricNotPositive))
		}
	}

	var (
		up, low = c.contravariant(), c.covariant()
		zero    = c.m.NewField2D(c.Location)
		// dg[l][p] is the derivative along l of g_ij at pair p. Nothing
		// varies in z for a Field2D.
		dg [3][6]field.Field2D
	)
	for p := 0; p < 6; p++ {
		dg[0][p] = c.ddx(*low[p])
		dg[1][p] = c.ddy(*low[p])
		dg[2][p] = zero
	}
	// Γ^k_ij = ½ g^kl (∂_i g_lj + ∂_j g_li - ∂_l g_ij)
	gamma := c.christoffel()
	for k := 0; k < 3; k++ {
		for p := 0; p < 6; p++ {
			i, j := pairIndices[p][0], pairIndices[p][1]
			sum := zero
			for l := 0; l < 3; l++ {
				term := dg[i][pair(l, j)].Add(dg[j][pair(l, i)]).Sub(dg[l][p])
				sum = sum.Add(up[pair(k, l)].Mul(term))
			}
			*gamma[k][p] = sum.Scale(0.5)
		}
	}
	// Gk = ∂_i(J g^ki) / J
	for k, g := range []*field.Field2D{&c.G1, &c.G2, &c.G3} {
		*g = c.ddx(c.J.Mul(*up[pair(k, 0)])).
			Add(c.ddy(c.J.Mul(*up[pair(k, 1)]))).
			Div(c.J)
	}

	com := []field.Field2D{c.G1, c.G2, c.G3}
	for _, row := range gamma {
		for _, p := range row {
			com = append(com, *p)
		}
	}
	c.m.Communicate(com...)

	if c.D1Dx, err = c.indexCorrection("d2x", c.Dx, c.e.IndexDDX); err != nil {
		return
	}
	c.D1Dy, err = c.indexCorrection("d2y", c.Dy, c.e.IndexDDY)
	return
}

type indexDeriv func(f field.Field2D, outloc types.CellLoc, method types.DiffMethod,
	rgn types.Region) field.Field2D

// indexCorrection is -d2/d^2 from the grid's second derivative of position
// with respect to index when present, otherwise d(1/d)/di.
func (c *Coordinates) indexCorrection(name string, d field.Field2D, deriv indexDeriv) (field.Field2D, error) {
	if !c.m.Has(name) {
		c.log.WithField("name", name).Warn("differencing quantity not found, calculating from spacing")
		return deriv(d.Recip(1), types.CellDefault, types.DiffDefault, types.RgnNoBndry), nil
	}
	d2, _, err := c.get2D(name, 0)
	if err != nil {
		return field.Field2D{}, err
	}
	if d2, err = c.toLocation(d2); err != nil {
		return field.Field2D{}, err
	}
	return d2.Scale(-1).Div(d.Mul(d)), nil
}

// ddx and ddy are the physical first derivatives used by geometry.
func (c *Coordinates) ddx(f field.Field2D) field.Field2D {
	return c.e.IndexDDX(f, types.CellDefault, types.DiffDefault, types.RgnNoBndry).Div(c.Dx)
}

func (c *Coordinates) ddy(f field.Field2D) field.Field2D {
	return c.e.IndexDDY(f, types.CellDefault, types.DiffDefault, types.RgnNoBndry).Div(c.Dy)
}
