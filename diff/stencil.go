package diff

import (
	"errors"
	"fmt"

	"github.com/notargets/gocurvi/field"
	"github.com/notargets/gocurvi/types"
)

const (
	dirX = iota
	dirY
	dirZ
)

var ErrDirection = errors.New("diff: unknown direction")

// direction maps 'x', 'y' or 'z' to its axis and panics on anything else.
func direction(d byte) int {
	switch d {
	case 'x':
		return dirX
	case 'y':
		return dirY
	case 'z':
		return dirZ
	}
	panic(fmt.Errorf("%q: %w", d, ErrDirection))
}

// grid addresses Field2D (nz == 1) and Field3D storage the same way.
type grid struct {
	nx, ny, nz int
	data       []float64
}

func grid2D(f field.Field2D) grid {
	nx, ny := f.Shape()
	return grid{nx: nx, ny: ny, nz: 1, data: f.Data()}
}

func grid3D(f field.Field3D) grid {
	nx, ny, nz := f.Shape()
	return grid{nx: nx, ny: ny, nz: nz, data: f.Data()}
}

func (g grid) index(x, y, z int) int { return (x*g.ny+y)*g.nz + z }

func (g grid) zeros() grid {
	g.data = make([]float64, len(g.data))
	return g
}

// stencil reads neighbours of a point along one direction; s(0) is the point.
type stencil struct {
	lo, hi int
	eval   func(s func(k int) float64) float64
}

// clip limits b to the points where reading offsets lo..hi along dir stays
// inside the array. z is periodic and never clipped.
func (g grid) clip(b field.Bounds, dir, lo, hi int) field.Bounds {
	switch dir {
	case dirX:
		b.X0, b.X1 = max(b.X0, -lo), min(b.X1, g.nx-1-hi)
	case dirY:
		b.Y0, b.Y1 = max(b.Y0, -lo), min(b.Y1, g.ny-1-hi)
	}
	return b
}

// expand widens b by lo..hi along dir, limited to the array.
func (g grid) expand(b field.Bounds, dir, lo, hi int) field.Bounds {
	switch dir {
	case dirX:
		b.X0, b.X1 = max(b.X0+lo, 0), min(b.X1+hi, g.nx-1)
	case dirY:
		b.Y0, b.Y1 = max(b.Y0+lo, 0), min(b.Y1+hi, g.ny-1)
	}
	return b
}

// apply evaluates st along dir at every point of b whose stencil fits. Other
// points of the result are zero.
func (g grid) apply(dir int, b field.Bounds, st stencil) (r grid) {
	r = g.zeros()
	b = g.clip(b, dir, st.lo, st.hi)
	for x := b.X0; x <= b.X1; x++ {
		for y := b.Y0; y <= b.Y1; y++ {
			for z := 0; z < g.nz; z++ {
				var s func(k int) float64
				switch dir {
				case dirX:
					s = func(k int) float64 { return g.data[g.index(x+k, y, z)] }
				case dirY:
					s = func(k int) float64 { return g.data[g.index(x, y+k, z)] }
				default:
					s = func(k int) float64 {
						return g.data[g.index(x, y, ((z+k)%g.nz+g.nz)%g.nz)]
					}
				}
				r.data[g.index(x, y, z)] = st.eval(s)
			}
		}
	}
	return
}

var (
	firstC2 = stencil{-1, 1, func(s func(int) float64) float64 {
		return 0.5 * (s(1) - s(-1))
	}}
	firstC4 = stencil{-2, 2, func(s func(int) float64) float64 {
		return (8.*(s(1)-s(-1)) - (s(2) - s(-2))) / 12.
	}}
	secondC2 = stencil{-1, 1, func(s func(int) float64) float64 {
		return s(1) - 2.*s(0) + s(-1)
	}}
	secondC4 = stencil{-2, 2, func(s func(int) float64) float64 {
		return (-s(2) + 16.*s(1) - 30.*s(0) + 16.*s(-1) - s(-2)) / 12.
	}}
	// Centre to low: result at i sits at i-1/2 of the input
	toLowC2 = stencil{-1, 0, func(s func(int) float64) float64 {
		return s(0) - s(-1)
	}}
	toLowC4 = stencil{-2, 1, func(s func(int) float64) float64 {
		return (27.*(s(0)-s(-1)) - (s(1) - s(-2))) / 24.
	}}
	// Low to centre: result at i sits at i+1/2 of the input
	toCentreC2 = stencil{0, 1, func(s func(int) float64) float64 {
		return s(1) - s(0)
	}}
	toCentreC4 = stencil{-1, 2, func(s func(int) float64) float64 {
		return (27.*(s(1)-s(0)) - (s(2) - s(-1))) / 24.
	}}
	interpToLowC2 = stencil{-1, 0, func(s func(int) float64) float64 {
		return 0.5 * (s(-1) + s(0))
	}}
	interpToLowC4 = stencil{-2, 1, func(s func(int) float64) float64 {
		return (9.*(s(-1)+s(0)) - s(-2) - s(1)) / 16.
	}}
	interpToCentreC2 = stencil{0, 1, func(s func(int) float64) float64 {
		return 0.5 * (s(0) + s(1))
	}}
	interpToCentreC4 = stencil{-1, 2, func(s func(int) float64) float64 {
		return (9.*(s(0)+s(1)) - s(-1) - s(2)) / 16.
	}}
)

func staggered(loc types.CellLoc, dir int) bool {
	switch dir {
	case dirX:
		return loc.StaggeredInX()
	case dirY:
		return loc.StaggeredInY()
	}
	return false
}

// withStagger changes the staggering of loc along dir. ok is false when the
// result would be staggered in both x and y, which no field can be.
func withStagger(loc types.CellLoc, dir int, low bool) (r types.CellLoc, ok bool) {
	xlow, ylow := loc.StaggeredInX(), loc.StaggeredInY()
	switch dir {
	case dirX:
		xlow = low
	case dirY:
		ylow = low
	}
	switch {
	case xlow && ylow:
		return types.CellXYCorner, false
	case xlow:
		return types.CellXLow, true
	case ylow:
		return types.CellYLow, true
	}
	return types.CellCentre, true
}
