package types

import (
	"fmt"
	"strings"
)

// CellLoc is the position of a value within a grid cell.
type CellLoc uint8

const (
	CellDefault CellLoc = iota // Wildcard: inherit the location of the input
	CellCentre
	CellXLow
	CellYLow
	CellZLow
	// CellXYCorner is only a cache key. Geometry built for it is tagged
	// CellCentre so whole-field arithmetic against staggered data fails.
	CellXYCorner
)

var CellLocNameMap = map[string]CellLoc{
	"default":  CellDefault,
	"centre":   CellCentre,
	"center":   CellCentre,
	"xlow":     CellXLow,
	"ylow":     CellYLow,
	"zlow":     CellZLow,
	"xycorner": CellXYCorner,
}

func NewCellLoc(label string) (loc CellLoc, err error) {
	var ok bool
	if loc, ok = CellLocNameMap[strings.ToLower(strings.TrimPrefix(strings.ToUpper(label), "CELL_"))]; !ok {
		err = fmt.Errorf("unknown cell location %q", label)
	}
	return
}

func (loc CellLoc) String() string {
	switch loc {
	case CellDefault:
		return "CELL_DEFAULT"
	case CellCentre:
		return "CELL_CENTRE"
	case CellXLow:
		return "CELL_XLOW"
	case CellYLow:
		return "CELL_YLOW"
	case CellZLow:
		return "CELL_ZLOW"
	case CellXYCorner:
		return "CELL_XYCORNER"
	}
	return fmt.Sprintf("CellLoc(%d)", uint8(loc))
}

// StaggeredInX is true for locations offset by half a cell in x.
func (loc CellLoc) StaggeredInX() bool { return loc == CellXLow || loc == CellXYCorner }

// StaggeredInY is true for locations offset by half a cell in y.
func (loc CellLoc) StaggeredInY() bool { return loc == CellYLow || loc == CellXYCorner }

// Resolve replaces the CellDefault wildcard with def.
func (loc CellLoc) Resolve(def CellLoc) CellLoc {
	if loc == CellDefault {
		return def
	}
	return loc
}

// Region selects the points an operation visits.
type Region uint8

const (
	RgnAll     Region = iota // Every point including guard cells
	RgnNoBndry               // Interior points only
	RgnNoX                   // Interior in x, all y
	RgnNoY                   // Interior in y, all x
)

func (r Region) String() string {
	switch r {
	case RgnAll:
		return "RGN_ALL"
	case RgnNoBndry:
		return "RGN_NOBNDRY"
	case RgnNoX:
		return "RGN_NOX"
	case RgnNoY:
		return "RGN_NOY"
	}
	return fmt.Sprintf("Region(%d)", uint8(r))
}

// DiffMethod names a finite difference stencil.
type DiffMethod uint8

const (
	DiffDefault DiffMethod = iota
	DiffC2                 // 2nd order central
	DiffC4                 // 4th order central
	DiffU1                 // 1st order upwind
)

var DiffMethodNameMap = map[string]DiffMethod{
	"default": DiffDefault,
	"c2":      DiffC2,
	"c4":      DiffC4,
	"u1":      DiffU1,
}

func NewDiffMethod(label string) (m DiffMethod, err error) {
	var ok bool
	if len(label) == 0 {
		return DiffDefault, nil
	}
	if m, ok = DiffMethodNameMap[strings.ToLower(label)]; !ok {
		err = fmt.Errorf("unknown differencing method %q", label)
	}
	return
}

func (m DiffMethod) String() string {
	switch m {
	case DiffDefault:
		return "DIFF_DEFAULT"
	case DiffC2:
		return "DIFF_C2"
	case DiffC4:
		return "DIFF_C4"
	case DiffU1:
		return "DIFF_U1"
	}
	return fmt.Sprintf("DiffMethod(%d)", uint8(m))
}
