package coordinates

import (
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gocurvi/field"
	"github.com/notargets/gocurvi/types"
)

// invert3x3 replaces a with its inverse using the adjugate. It reports
// false when |det(a)| < small.
func invert3x3(a *mat.SymDense, small float64) bool {
	var (
		a00, a01, a02 = a.At(0, 0), a.At(0, 1), a.At(0, 2)
		a11, a12, a22 = a.At(1, 1), a.At(1, 2), a.At(2, 2)
		// Cofactors
		c00 = a11*a22 - a12*a12
		c01 = a02*a12 - a01*a22
		c02 = a01*a12 - a02*a11
		det = a00*c00 + a01*c01 + a02*c02
	)
	if math.Abs(det) < small {
		return false
	}
	a.SetSym(0, 0, c00/det)
	a.SetSym(0, 1, c01/det)
	a.SetSym(0, 2, c02/det)
	a.SetSym(1, 1, (a00*a22-a02*a02)/det)
	a.SetSym(1, 2, (a01*a02-a00*a12)/det)
	a.SetSym(2, 2, (a00*a11-a01*a01)/det)
	return true
}

// invertMetric writes the pointwise inverse of the symmetric tensor src into
// dst at every grid point, both in metricNames order.
func (c *Coordinates) invertMetric(op string, src, dst []*field.Field2D) error {
	var (
		m = c.m
		a = mat.NewSymDense(3, nil)
	)
	for i, p := range dst {
		*p = m.NewField2D(src[i].Location())
	}
	for x := 0; x < m.LocalNx; x++ {
		for y := 0; y < m.LocalNy; y++ {
			for k := 0; k < 6; k++ {
				i, j := pairIndices[k][0], pairIndices[k][1]
				a.SetSym(i, j, src[k].At(x, y))
			}
			if !invert3x3(a, 1.e-15) {
				return newPointError(KindNumeric, op, x, y, ErrSingularMetric)
			}
			for k := 0; k < 6; k++ {
				dst[k].Set(x, y, a.At(pairIndices[k][0], pairIndices[k][1]))
			}
		}
	}
	c.logInversion(op)
	return nil
}

var pairIndices = [6][2]int{{0, 0}, {1, 1}, {2, 2}, {0, 1}, {0, 2}, {1, 2}}

// calcCovariant sets g_ij from g^ij. Only constructors call it, before the
// geometry is locked.
func (c *Coordinates) calcCovariant() error {
	return c.invertMetric("calcCovariant", c.contravariant(), c.covariant())
}

// calcContravariant sets g^ij from g_ij.
func (c *Coordinates) calcContravariant() error {
	return c.invertMetric("calcContravariant", c.covariant(), c.contravariant())
}

// InversionResidual is the largest deviation of g_ij g^jk from the identity
// over the interior, on and off the diagonal.
func (c *Coordinates) InversionResidual() (diag, offDiag float64) {
	var (
		rgn     = c.m.Bounds(types.RgnNoBndry)
		up, low = c.contravariant(), c.covariant()
	)
	for i := 0; i < 3; i++ {
		for k := i; k < 3; k++ {
			sum := c.m.NewField2D(up[0].Location())
			for j := 0; j < 3; j++ {
				sum = sum.Add(low[pair(i, j)].Mul(*up[pair(j, k)]))
			}
			if i == k {
				diag = max(diag, sum.AddScalar(-1).AbsMax(rgn))
			} else {
				offDiag = max(offDiag, sum.AbsMax(rgn))
			}
		}
	}
	return
}

func (c *Coordinates) logInversion(op string) {
	diag, offDiag := c.InversionResidual()
	c.log.WithFields(logrus.Fields{"op": op, "diagonal": diag, "offdiagonal": offDiag}).
		Info("maximum error in metric inversion")
}
