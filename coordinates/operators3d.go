package coordinates

import (
	"github.com/notargets/gocurvi/field"
	"github.com/notargets/gocurvi/types"
)

func (c *Coordinates) DDX3D(f field.Field3D, outloc types.CellLoc, method types.DiffMethod,
	rgn types.Region) field.Field3D {
	outloc = c.checkLoc(f.Location(), outloc, "DDX")
	return c.e.IndexDDX3D(f, outloc, method, rgn).Div2D(c.Dx)
}

func (c *Coordinates) DDY3D(f field.Field3D, outloc types.CellLoc, method types.DiffMethod,
	rgn types.Region) field.Field3D {
	outloc = c.checkLoc(f.Location(), outloc, "DDY")
	return c.e.IndexDDY3D(f, outloc, method, rgn).Div2D(c.Dy)
}

func (c *Coordinates) DDZ3D(f field.Field3D, outloc types.CellLoc, method types.DiffMethod,
	rgn types.Region) field.Field3D {
	outloc = c.checkLoc(f.Location(), outloc, "DDZ")
	return c.e.IndexDDZ3D(f, outloc, method, rgn).Scale(1 / c.Dz)
}

func (c *Coordinates) D2DX23D(f field.Field3D, outloc types.CellLoc, method types.DiffMethod,
	rgn types.Region) field.Field3D {
	outloc = c.checkLoc(f.Location(), outloc, "D2DX2")
	r := c.e.IndexD2DX23D(f, outloc, method, rgn).Div2D(c.Dx.Mul(c.Dx))
	if c.opts.NonUniform {
		r = r.Add(c.e.IndexDDX3D(f, outloc, types.DiffDefault, rgn).Mul2D(c.D1Dx.Div(c.Dx)))
	}
	return r
}

func (c *Coordinates) D2DY23D(f field.Field3D, outloc types.CellLoc, method types.DiffMethod,
	rgn types.Region) field.Field3D {
	outloc = c.checkLoc(f.Location(), outloc, "D2DY2")
	r := c.e.IndexD2DY23D(f, outloc, method, rgn).Div2D(c.Dy.Mul(c.Dy))
	if c.opts.NonUniform {
		r = r.Add(c.e.IndexDDY3D(f, outloc, types.DiffDefault, rgn).Mul2D(c.D1Dy.Div(c.Dy)))
	}
	return r
}

func (c *Coordinates) D2DZ23D(f field.Field3D, outloc types.CellLoc, method types.DiffMethod,
	rgn types.Region) field.Field3D {
	outloc = c.checkLoc(f.Location(), outloc, "D2DZ2")
	return c.e.IndexD2DZ23D(f, outloc, method, rgn).Scale(1 / (c.Dz * c.Dz))
}

// Mixed3D is the mixed second derivative along d1 then d2, each one of 'x',
// 'y' or 'z'.
func (c *Coordinates) Mixed3D(f field.Field3D, d1, d2 byte, outloc types.CellLoc,
	method types.DiffMethod, rgn types.Region) field.Field3D {
	outloc = c.checkLoc(f.Location(), outloc, "Mixed3D")
	r := c.e.IndexMixed3D(f, d1, d2, outloc, method, rgn)
	for _, d := range []byte{d1, d2} {
		switch d {
		case 'x':
			r = r.Div2D(c.Dx)
		case 'y':
			r = r.Div2D(c.Dy)
		case 'z':
			r = r.Scale(1 / c.Dz)
		}
	}
	return r
}

func (c *Coordinates) VDDY3D(v, f field.Field3D, outloc types.CellLoc, method types.DiffMethod,
	rgn types.Region) field.Field3D {
	outloc = c.checkLoc(f.Location(), outloc, "VDDY")
	return c.e.IndexVDDY3D(v, f, outloc, method, rgn).Div2D(c.Dy)
}

func (c *Coordinates) GradPar3D(f field.Field3D, outloc types.CellLoc, method types.DiffMethod) field.Field3D {
	return c.DDY3D(f, outloc, method, types.RgnNoBndry).Div2D(c.G_22.Sqrt())
}

func (c *Coordinates) VparGradPar3D(v, f field.Field3D, outloc types.CellLoc, method types.DiffMethod) field.Field3D {
	return c.VDDY3D(v, f, outloc, method, types.RgnNoBndry).Div2D(c.G_22.Sqrt())
}

func (c *Coordinates) DivPar3D(f field.Field3D, outloc types.CellLoc, method types.DiffMethod) (field.Field3D, error) {
	c.checkLoc(f.Location(), outloc, "DivPar")
	bf, err := c.bxyAt(f.Location())
	if err != nil {
		return field.Field3D{}, err
	}
	return c.GradPar3D(f.Div2D(bf), outloc, method).Mul2D(c.Bxy), nil
}

func (c *Coordinates) Grad2Par23D(f field.Field3D, outloc types.CellLoc, method types.DiffMethod) (field.Field3D, error) {
	var (
		rgn = types.RgnNoBndry
		sg  = c.G_22.Sqrt()
	)
	outloc = c.checkLoc(f.Location(), outloc, "Grad2Par2")
	fo, err := c.moveTo3D(f, outloc)
	if err != nil {
		return field.Field3D{}, err
	}
	return c.DDY3D(f, outloc, method, rgn).Mul2D(c.DDY(sg.Recip(1), outloc, method, rgn).Div(sg)).
		Add(c.D2DY23D(fo, outloc, method, rgn).Div2D(c.G_22)), nil
}

func (c *Coordinates) LaplacePar3D(f field.Field3D, outloc types.CellLoc) field.Field3D {
	var (
		rgn = types.RgnNoBndry
		def = types.DiffDefault
	)
	return c.D2DY23D(f, outloc, def, rgn).Div2D(c.G_22).
		Add(c.DDY3D(f, outloc, def, rgn).Mul2D(c.DDY(c.J.Div(c.G_22), outloc, def, rgn).Div(c.J)))
}

// Laplace3D adds the z terms to Laplace.
func (c *Coordinates) Laplace3D(f field.Field3D, outloc types.CellLoc) field.Field3D {
	var (
		rgn   = types.RgnNoBndry
		def   = types.DiffDefault
		mixed = func(a, b byte) field.Field3D {
			return c.Mixed3D(f, a, b, outloc, def, rgn).Add(c.Mixed3D(f, b, a, outloc, def, rgn))
		}
	)
	return c.DDX3D(f, outloc, def, rgn).Mul2D(c.G1).
		Add(c.DDY3D(f, outloc, def, rgn).Mul2D(c.G2)).
		Add(c.DDZ3D(f, outloc, def, rgn).Mul2D(c.G3)).
		Add(c.D2DX23D(f, outloc, def, rgn).Mul2D(c.G11)).
		Add(c.D2DY23D(f, outloc, def, rgn).Mul2D(c.G22)).
		Add(c.D2DZ23D(f, outloc, def, rgn).Mul2D(c.G33)).
		Add(mixed('x', 'y').Mul2D(c.G12)).
		Add(mixed('x', 'z').Mul2D(c.G13)).
		Add(mixed('y', 'z').Mul2D(c.G23))
}
