package diff

import (
	"github.com/notargets/gocurvi/field"
	"github.com/notargets/gocurvi/types"
)

func (e *Engine) IndexDDX(f field.Field2D, outloc types.CellLoc, method types.DiffMethod,
	rgn types.Region) field.Field2D {
	outloc = outLoc(f, outloc)
	return e.field2D(e.first(grid2D(f), dirX, f.Location(), outloc, method, rgn), outloc)
}

func (e *Engine) IndexDDY(f field.Field2D, outloc types.CellLoc, method types.DiffMethod,
	rgn types.Region) field.Field2D {
	outloc = outLoc(f, outloc)
	return e.field2D(e.first(grid2D(f), dirY, f.Location(), outloc, method, rgn), outloc)
}

// IndexD2DX2 requires outloc to match the location of f.
func (e *Engine) IndexD2DX2(f field.Field2D, outloc types.CellLoc, method types.DiffMethod,
	rgn types.Region) field.Field2D {
	outloc = outLoc(f, outloc)
	checkSame(f.Location(), outloc, "IndexD2DX2")
	return e.field2D(grid2D(f).apply(dirX, e.m.Bounds(rgn), e.secondStencil(method)), outloc)
}

func (e *Engine) IndexD2DY2(f field.Field2D, outloc types.CellLoc, method types.DiffMethod,
	rgn types.Region) field.Field2D {
	outloc = outLoc(f, outloc)
	checkSame(f.Location(), outloc, "IndexD2DY2")
	return e.field2D(grid2D(f).apply(dirY, e.m.Bounds(rgn), e.secondStencil(method)), outloc)
}

// IndexD2DXDY differentiates in x, then in y.
func (e *Engine) IndexD2DXDY(f field.Field2D, outloc types.CellLoc, method types.DiffMethod,
	rgn types.Region) field.Field2D {
	outloc = outLoc(f, outloc)
	checkSame(f.Location(), outloc, "IndexD2DXDY")
	return e.field2D(e.mixed(grid2D(f), dirX, dirY, method, rgn), outloc)
}

// IndexD2DYDX differentiates in y, then in x.
func (e *Engine) IndexD2DYDX(f field.Field2D, outloc types.CellLoc, method types.DiffMethod,
	rgn types.Region) field.Field2D {
	outloc = outLoc(f, outloc)
	checkSame(f.Location(), outloc, "IndexD2DYDX")
	return e.field2D(e.mixed(grid2D(f), dirY, dirX, method, rgn), outloc)
}

// IndexVDDY is v df/dy, upwinded on the sign of v unless method is central.
func (e *Engine) IndexVDDY(v, f field.Field2D, outloc types.CellLoc, method types.DiffMethod,
	rgn types.Region) field.Field2D {
	outloc = outLoc(f, outloc)
	checkSame(v.Location(), f.Location(), "IndexVDDY")
	checkSame(f.Location(), outloc, "IndexVDDY")
	return e.field2D(e.upwind(grid2D(v), grid2D(f), dirY, method, rgn), outloc)
}

// InterpTo moves f to loc over the points of rgn. Other points are zero; a
// field already at loc is returned as a copy.
func (e *Engine) InterpTo(f field.Field2D, loc types.CellLoc, rgn types.Region) field.Field2D {
	loc = outLoc(f, loc)
	if loc == f.Location() {
		return f.Copy()
	}
	return e.field2D(e.interp(grid2D(f), f.Location(), loc, e.m.Bounds(rgn)), loc)
}

func (e *Engine) IndexDDX3D(f field.Field3D, outloc types.CellLoc, method types.DiffMethod,
	rgn types.Region) field.Field3D {
	outloc = outLoc(f, outloc)
	return e.field3D(e.first(grid3D(f), dirX, f.Location(), outloc, method, rgn), outloc)
}

func (e *Engine) IndexDDY3D(f field.Field3D, outloc types.CellLoc, method types.DiffMethod,
	rgn types.Region) field.Field3D {
	outloc = outLoc(f, outloc)
	return e.field3D(e.first(grid3D(f), dirY, f.Location(), outloc, method, rgn), outloc)
}

// IndexDDZ3D is periodic in z.
func (e *Engine) IndexDDZ3D(f field.Field3D, outloc types.CellLoc, method types.DiffMethod,
	rgn types.Region) field.Field3D {
	outloc = outLoc(f, outloc)
	checkSame(f.Location(), outloc, "IndexDDZ3D")
	return e.field3D(e.first(grid3D(f), dirZ, f.Location(), outloc, method, rgn), outloc)
}

func (e *Engine) second3D(f field.Field3D, dir int, outloc types.CellLoc, method types.DiffMethod,
	rgn types.Region, op string) field.Field3D {
	outloc = outLoc(f, outloc)
	checkSame(f.Location(), outloc, op)
	return e.field3D(grid3D(f).apply(dir, e.m.Bounds(rgn), e.secondStencil(method)), outloc)
}

func (e *Engine) IndexD2DX23D(f field.Field3D, outloc types.CellLoc, method types.DiffMethod,
	rgn types.Region) field.Field3D {
	return e.second3D(f, dirX, outloc, method, rgn, "IndexD2DX23D")
}

func (e *Engine) IndexD2DY23D(f field.Field3D, outloc types.CellLoc, method types.DiffMethod,
	rgn types.Region) field.Field3D {
	return e.second3D(f, dirY, outloc, method, rgn, "IndexD2DY23D")
}

func (e *Engine) IndexD2DZ23D(f field.Field3D, outloc types.CellLoc, method types.DiffMethod,
	rgn types.Region) field.Field3D {
	return e.second3D(f, dirZ, outloc, method, rgn, "IndexD2DZ23D")
}

// IndexMixed3D differentiates f along d1 then d2, with directions given as
// 'x', 'y' or 'z'. Any other direction panics with ErrDirection.
func (e *Engine) IndexMixed3D(f field.Field3D, d1, d2 byte, outloc types.CellLoc,
	method types.DiffMethod, rgn types.Region) field.Field3D {
	outloc = outLoc(f, outloc)
	checkSame(f.Location(), outloc, "IndexMixed3D")
	return e.field3D(e.mixed(grid3D(f), direction(d1), direction(d2), method, rgn), outloc)
}

func (e *Engine) IndexVDDY3D(v, f field.Field3D, outloc types.CellLoc, method types.DiffMethod,
	rgn types.Region) field.Field3D {
	outloc = outLoc(f, outloc)
	checkSame(v.Location(), f.Location(), "IndexVDDY3D")
	checkSame(f.Location(), outloc, "IndexVDDY3D")
	return e.field3D(e.upwind(grid3D(v), grid3D(f), dirY, method, rgn), outloc)
}

func (e *Engine) InterpTo3D(f field.Field3D, loc types.CellLoc, rgn types.Region) field.Field3D {
	loc = outLoc(f, loc)
	if loc == f.Location() {
		return f.Copy()
	}
	return e.field3D(e.interp(grid3D(f), f.Location(), loc, e.m.Bounds(rgn)), loc)
}
