package mesh

import (
	"errors"
	"fmt"
)

var (
	ErrDecomposition = errors.New("mesh: invalid decomposition")
	ErrAborted       = errors.New("mesh: exchange aborted by another rank")
)

// Options describe the global grid and how it is split across ranks. Nx
// counts x guard cells, Ny does not count y guard cells, which is the layout
// of arrays in grid files.
type Options struct {
	Nx, Ny, Nz  int
	MXG, MYG    int // Guard cell widths
	NXPE, NYPE  int // Ranks in x and y
	IXSeps      int // Columns with global x below this are closed in y
	PeriodicX   bool
	IncIntShear bool
}

func (o Options) NP() int { return o.NXPE * o.NYPE }

// WithDefaults fills unset fields from the usual grid conventions.
func (o Options) WithDefaults() Options {
	if o.Nz == 0 {
		o.Nz = 1
	}
	if o.NXPE == 0 {
		o.NXPE = 1
	}
	if o.NYPE == 0 {
		o.NYPE = 1
	}
	return o
}

func (o Options) Validate() (err error) {
	switch {
	case o.MXG < 0 || o.MYG < 0:
		err = fmt.Errorf("%w: negative guard width MXG=%d MYG=%d", ErrDecomposition, o.MXG, o.MYG)
	case o.NXPE < 1 || o.NYPE < 1:
		err = fmt.Errorf("%w: NXPE=%d NYPE=%d", ErrDecomposition, o.NXPE, o.NYPE)
	case o.Nz < 1:
		err = fmt.Errorf("%w: Nz=%d", ErrDecomposition, o.Nz)
	case o.Nx-2*o.MXG < o.NXPE:
		err = fmt.Errorf("%w: %d interior x points for NXPE=%d", ErrDecomposition, o.Nx-2*o.MXG, o.NXPE)
	case o.Ny < o.NYPE:
		err = fmt.Errorf("%w: %d interior y points for NYPE=%d", ErrDecomposition, o.Ny, o.NYPE)
	case (o.Nx-2*o.MXG)/o.NXPE < o.MXG:
		err = fmt.Errorf("%w: fewer than MXG=%d x points on some rank", ErrDecomposition, o.MXG)
	case o.Ny/o.NYPE < o.MYG:
		err = fmt.Errorf("%w: fewer than MYG=%d y points on some rank", ErrDecomposition, o.MYG)
	case o.IXSeps < 0 || o.IXSeps > o.Nx:
		err = fmt.Errorf("%w: IXSeps=%d outside [0, %d]", ErrDecomposition, o.IXSeps, o.Nx)
	}
	return
}
