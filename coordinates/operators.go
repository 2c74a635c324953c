package coordinates

import (
	"fmt"

	"github.com/notargets/gocurvi/field"
	"github.com/notargets/gocurvi/types"
)

// checkLoc resolves outloc against the input location and panics unless the
// result is where this geometry lives.
func (c *Coordinates) checkLoc(inloc, outloc types.CellLoc, op string) types.CellLoc {
	outloc = outloc.Resolve(inloc)
	if outloc != c.Location {
		panic(fmt.Errorf("%s: geometry at %s, output at %s: %w", op, c.Location, outloc, field.ErrLocationMismatch))
	}
	return outloc
}

func (c *Coordinates) DDX(f field.Field2D, outloc types.CellLoc, method types.DiffMethod,
	rgn types.Region) field.Field2D {
	outloc = c.checkLoc(f.Location(), outloc, "DDX")
	return c.e.IndexDDX(f, outloc, method, rgn).Div(c.Dx)
}

func (c *Coordinates) DDY(f field.Field2D, outloc types.CellLoc, method types.DiffMethod,
	rgn types.Region) field.Field2D {
	outloc = c.checkLoc(f.Location(), outloc, "DDY")
	return c.e.IndexDDY(f, outloc, method, rgn).Div(c.Dy)
}

// DDZ of a Field2D is zero.
func (c *Coordinates) DDZ(f field.Field2D, outloc types.CellLoc, _ types.DiffMethod,
	_ types.Region) field.Field2D {
	return c.m.NewField2D(c.checkLoc(f.Location(), outloc, "DDZ"))
}

// D2DX2 includes the non-uniform grid correction when enabled.
func (c *Coordinates) D2DX2(f field.Field2D, outloc types.CellLoc, method types.DiffMethod,
	rgn types.Region) field.Field2D {
	outloc = c.checkLoc(f.Location(), outloc, "D2DX2")
	r := c.e.IndexD2DX2(f, outloc, method, rgn).Div(c.Dx.Mul(c.Dx))
	if c.opts.NonUniform {
		r = r.Add(c.D1Dx.Mul(c.e.IndexDDX(f, outloc, types.DiffDefault, rgn)).Div(c.Dx))
	}
	return r
}

func (c *Coordinates) D2DY2(f field.Field2D, outloc types.CellLoc, method types.DiffMethod,
	rgn types.Region) field.Field2D {
	outloc = c.checkLoc(f.Location(), outloc, "D2DY2")
	r := c.e.IndexD2DY2(f, outloc, method, rgn).Div(c.Dy.Mul(c.Dy))
	if c.opts.NonUniform {
		r = r.Add(c.D1Dy.Mul(c.e.IndexDDY(f, outloc, types.DiffDefault, rgn)).Div(c.Dy))
	}
	return r
}

func (c *Coordinates) D2DXDY(f field.Field2D, outloc types.CellLoc, method types.DiffMethod,
	rgn types.Region) field.Field2D {
	outloc = c.checkLoc(f.Location(), outloc, "D2DXDY")
	return c.e.IndexD2DXDY(f, outloc, method, rgn).Div(c.Dx.Mul(c.Dy))
}

func (c *Coordinates) D2DYDX(f field.Field2D, outloc types.CellLoc, method types.DiffMethod,
	rgn types.Region) field.Field2D {
	outloc = c.checkLoc(f.Location(), outloc, "D2DYDX")
	return c.e.IndexD2DYDX(f, outloc, method, rgn).Div(c.Dx.Mul(c.Dy))
}

func (c *Coordinates) VDDY(v, f field.Field2D, outloc types.CellLoc, method types.DiffMethod,
	rgn types.Region) field.Field2D {
	outloc = c.checkLoc(f.Location(), outloc, "VDDY")
	return c.e.IndexVDDY(v, f, outloc, method, rgn).Div(c.Dy)
}

// GradPar is the derivative along the magnetic field.
func (c *Coordinates) GradPar(f field.Field2D, outloc types.CellLoc, method types.DiffMethod) field.Field2D {
	return c.DDY(f, outloc, method, types.RgnNoBndry).Div(c.G_22.Sqrt())
}

func (c *Coordinates) VparGradPar(v, f field.Field2D, outloc types.CellLoc, method types.DiffMethod) field.Field2D {
	return c.VDDY(v, f, outloc, method, types.RgnNoBndry).Div(c.G_22.Sqrt())
}

// bxyAt returns Bxy at loc, which may differ from this geometry's location.
func (c *Coordinates) bxyAt(loc types.CellLoc) (field.Field2D, error) {
	if loc == c.Location && c.key != types.CellXYCorner {
		return c.Bxy, nil
	}
	if c.cache == nil {
		return field.Field2D{}, newError(KindConfig, "DivPar",
			fmt.Errorf("no geometry cache to find Bxy at %s: %w", loc, ErrLocation))
	}
	other, err := c.cache.Get(loc)
	if err != nil {
		return field.Field2D{}, err
	}
	return other.Bxy, nil
}

// DivPar is the parallel divergence Bxy GradPar(f/Bxy), with the inner Bxy
// taken at the location of f. Building that geometry is collective.
func (c *Coordinates) DivPar(f field.Field2D, outloc types.CellLoc, method types.DiffMethod) (field.Field2D, error) {
	c.checkLoc(f.Location(), outloc, "DivPar")
	bf, err := c.bxyAt(f.Location())
	if err != nil {
		return field.Field2D{}, err
	}
	return c.Bxy.Mul(c.GradPar(f.Div(bf), outloc, method)), nil
}

// Grad2Par2 is the second derivative along the magnetic field. The second
// derivative term works on f moved to outloc, which is collective when the
// locations differ.
func (c *Coordinates) Grad2Par2(f field.Field2D, outloc types.CellLoc, method types.DiffMethod) (field.Field2D, error) {
	var (
		rgn = types.RgnNoBndry
		sg  = c.G_22.Sqrt()
	)
	outloc = c.checkLoc(f.Location(), outloc, "Grad2Par2")
	fo, err := c.moveTo(f, outloc)
	if err != nil {
		return field.Field2D{}, err
	}
	return c.DDY(sg.Recip(1), outloc, method, rgn).Mul(c.DDY(f, outloc, method, rgn)).Div(sg).
		Add(c.D2DY2(fo, outloc, method, rgn).Div(c.G_22)), nil
}

// Delp2 is the perpendicular Laplacian of a Field2D.
func (c *Coordinates) Delp2(f field.Field2D, outloc types.CellLoc) field.Field2D {
	rgn := types.RgnNoBndry
	return c.G1.Mul(c.DDX(f, outloc, types.DiffDefault, rgn)).
		Add(c.G11.Mul(c.D2DX2(f, outloc, types.DiffDefault, rgn)))
}

func (c *Coordinates) LaplacePar(f field.Field2D, outloc types.CellLoc) field.Field2D {
	var (
		rgn = types.RgnNoBndry
		def = types.DiffDefault
	)
	return c.D2DY2(f, outloc, def, rgn).Div(c.G_22).
		Add(c.DDY(c.J.Div(c.G_22), outloc, def, rgn).Mul(c.DDY(f, outloc, def, rgn)).Div(c.J))
}

// Laplace is the full scalar Laplacian. Cross terms use both orderings of
// the mixed derivative.
func (c *Coordinates) Laplace(f field.Field2D, outloc types.CellLoc) field.Field2D {
	var (
		rgn = types.RgnNoBndry
		def = types.DiffDefault
	)
	return c.G1.Mul(c.DDX(f, outloc, def, rgn)).
		Add(c.G2.Mul(c.DDY(f, outloc, def, rgn))).
		Add(c.G11.Mul(c.D2DX2(f, outloc, def, rgn))).
		Add(c.G22.Mul(c.D2DY2(f, outloc, def, rgn))).
		Add(c.G12.Mul(c.D2DXDY(f, outloc, def, rgn).Add(c.D2DYDX(f, outloc, def, rgn))))
}
