// Package diff provides finite difference derivatives and interpolation in
// index space: results are per unit index, and dividing by the physical
// spacing is left to the caller. Stencils that would read outside the local
// array are skipped, leaving zero in the result.
package diff

import (
	"fmt"

	"github.com/notargets/gocurvi/field"
	"github.com/notargets/gocurvi/mesh"
	"github.com/notargets/gocurvi/types"
)

type Options struct {
	First, Second, Upwind, Interp types.DiffMethod
}

// Engine evaluates stencils over the regions of one mesh.
type Engine struct {
	Opts Options
	m    *mesh.Mesh
}

func NewEngine(m *mesh.Mesh, opts Options) *Engine {
	if opts.First == types.DiffDefault {
		opts.First = types.DiffC2
	}
	if opts.Second == types.DiffDefault {
		opts.Second = types.DiffC2
	}
	if opts.Upwind == types.DiffDefault {
		opts.Upwind = types.DiffU1
	}
	if opts.Interp == types.DiffDefault {
		opts.Interp = types.DiffC4
	}
	return &Engine{Opts: opts, m: m}
}

func (e *Engine) Mesh() *mesh.Mesh { return e.m }

func pick(method, def types.DiffMethod) types.DiffMethod {
	if method == types.DiffDefault {
		return def
	}
	return method
}

func (e *Engine) firstStencil(method types.DiffMethod, in, out bool) stencil {
	c4 := pick(method, e.Opts.First) == types.DiffC4
	switch {
	case in == out && c4:
		return firstC4
	case in == out:
		return firstC2
	case out && c4:
		return toLowC4
	case out:
		return toLowC2
	case c4:
		return toCentreC4
	}
	return toCentreC2
}

func (e *Engine) secondStencil(method types.DiffMethod) stencil {
	if pick(method, e.Opts.Second) == types.DiffC4 {
		return secondC4
	}
	return secondC2
}

func (e *Engine) interpStencil(toLow bool) stencil {
	c4 := e.Opts.Interp == types.DiffC4
	switch {
	case toLow && c4:
		return interpToLowC4
	case toLow:
		return interpToLowC2
	case c4:
		return interpToCentreC4
	}
	return interpToCentreC2
}

// first differentiates g along dir from inloc to outloc. A change of
// staggering along dir uses a staggered stencil, any other change of
// location is an interpolation, done after the derivative unless that would
// pass through a doubly staggered location.
func (e *Engine) first(g grid, dir int, inloc, outloc types.CellLoc, method types.DiffMethod,
	rgn types.Region) grid {
	var (
		in, out = staggered(inloc, dir), staggered(outloc, dir)
		st      = e.firstStencil(method, in, out)
		b       = e.m.Bounds(rgn)
		other   = dirY
	)
	if dir == dirY {
		other = dirX
	}
	if dir == dirZ || staggered(inloc, other) == staggered(outloc, other) {
		return g.apply(dir, b, st)
	}
	if mid, ok := withStagger(inloc, dir, out); ok {
		r := g.apply(dir, g.expand(b, other, -2, 2), st)
		return e.interp(r, mid, outloc, b)
	}
	pre, _ := withStagger(outloc, dir, in)
	return e.interp(g, inloc, pre, g.expand(b, dir, st.lo, st.hi)).apply(dir, b, st)
}

// interp moves g from inloc to outloc one direction at a time, removing
// staggering before adding it.
func (e *Engine) interp(g grid, inloc, outloc types.CellLoc, b field.Bounds) grid {
	var dirs []int
	for _, toLow := range []bool{false, true} {
		for _, dir := range []int{dirX, dirY} {
			if staggered(inloc, dir) != staggered(outloc, dir) && staggered(outloc, dir) == toLow {
				dirs = append(dirs, dir)
			}
		}
	}
	if len(dirs) == 0 {
		// Only z differs, which a Field2D does not resolve
		r := g.zeros()
		copy(r.data, g.data)
		return r
	}
	for i, dir := range dirs {
		bb := b
		if i == 0 && len(dirs) == 2 {
			// The second pass reads this pass's result around b
			bb = g.expand(b, dirs[1], -2, 2)
		}
		g = g.apply(dir, bb, e.interpStencil(staggered(outloc, dir)))
	}
	return g
}

// mixed is d/d(d2) of d/d(d1) with first derivative stencils.
func (e *Engine) mixed(g grid, d1, d2 int, method types.DiffMethod, rgn types.Region) grid {
	var (
		b  = e.m.Bounds(rgn)
		st = e.firstStencil(method, false, false)
	)
	r := g.apply(d1, g.expand(b, d2, st.lo, st.hi), st)
	return r.apply(d2, b, st)
}

func (e *Engine) upwind(v, g grid, dir int, method types.DiffMethod, rgn types.Region) (r grid) {
	var (
		b = g.clip(e.m.Bounds(rgn), dir, -1, 1)
		c = pick(method, e.Opts.Upwind) != types.DiffU1
	)
	r = g.zeros()
	dx, dy := 1, 0
	if dir == dirY {
		dx, dy = 0, 1
	}
	for x := b.X0; x <= b.X1; x++ {
		for y := b.Y0; y <= b.Y1; y++ {
			for z := 0; z < g.nz; z++ {
				var (
					i  = g.index(x, y, z)
					vv = v.data[v.index(x, y, min(z, v.nz-1))]
					fm = g.data[g.index(x-dx, y-dy, z)]
					f0 = g.data[i]
					fp = g.data[g.index(x+dx, y+dy, z)]
				)
				switch {
				case c:
					r.data[i] = vv * 0.5 * (fp - fm)
				case vv >= 0:
					r.data[i] = vv * (f0 - fm)
				default:
					r.data[i] = vv * (fp - f0)
				}
			}
		}
	}
	return
}

func outLoc(f interface{ Location() types.CellLoc }, outloc types.CellLoc) types.CellLoc {
	return outloc.Resolve(f.Location())
}

func checkSame(a, b types.CellLoc, op string) {
	if a != b {
		panic(fmt.Errorf("%s: %s vs %s: %w", op, a, b, field.ErrLocationMismatch))
	}
}

func (e *Engine) field2D(g grid, loc types.CellLoc) field.Field2D {
	return field.NewField2DFrom(g.nx, g.ny, g.data, loc)
}

func (e *Engine) field3D(g grid, loc types.CellLoc) (f field.Field3D) {
	f = field.NewField3D(g.nx, g.ny, g.nz, loc)
	copy(f.Data(), g.data)
	return
}
