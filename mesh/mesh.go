// Package mesh owns the block decomposition of a structured x, y, z grid
// across ranks. Each rank holds a contiguous block of interior points plus
// MXG/MYG guard cells on every side, filled either by Communicate from the
// neighbouring rank or, at true domain edges, by the caller's boundary
// treatment. Columns with global x below IXSeps are closed in y: the two y
// ends of the domain are joined there and the join is a branch cut.
package mesh

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/notargets/gocurvi/field"
	"github.com/notargets/gocurvi/gridfile"
	"github.com/notargets/gocurvi/types"
	"github.com/notargets/gocurvi/utils"
)

var Log logrus.FieldLogger = logrus.StandardLogger()

// Domain is shared by all ranks of one run.
type Domain struct {
	Opts     Options
	Source   gridfile.Source
	xpm, ypm *utils.PartitionMap
	mb       *utils.MailBox[[][]float64]
}

func NewDomain(opts Options, src gridfile.Source) (d *Domain, err error) {
	opts = opts.WithDefaults()
	if err = opts.Validate(); err != nil {
		return
	}
	d = &Domain{
		Opts:   opts,
		Source: src,
		xpm:    utils.NewPartitionMap(opts.NXPE, opts.Nx-2*opts.MXG),
		ypm:    utils.NewPartitionMap(opts.NYPE, opts.Ny),
		mb:     utils.NewMailBox[[][]float64](opts.NP(), 32),
	}
	return
}

// RankOf is the rank owning block (pex, pey); x varies fastest.
func (d *Domain) RankOf(pex, pey int) int { return pey*d.Opts.NXPE + pex }

func (d *Domain) Mesh(rank int) (m *Mesh) {
	var (
		o        = d.Opts
		pex, pey = rank % o.NXPE, rank / o.NXPE
	)
	x0, x1 := d.xpm.GetBucketRange(pex)
	y0, y1 := d.ypm.GetBucketRange(pey)
	m = &Mesh{
		Rank: rank, PEX: pex, PEY: pey,
		NXPE: o.NXPE, NYPE: o.NYPE,
		MXG: o.MXG, MYG: o.MYG,
		GlobalNx: o.Nx, GlobalNy: o.Ny + 2*o.MYG, GlobalNz: o.Nz,
		LocalNx: x1 - x0 + 2*o.MXG, LocalNy: y1 - y0 + 2*o.MYG, LocalNz: o.Nz,
		PeriodicX:   o.PeriodicX,
		IncIntShear: o.IncIntShear,
		xOffset:     x0,
		yOffset:     y0,
		ixseps:      o.IXSeps,
		d:           d,
	}
	m.XStart, m.XEnd = o.MXG, m.LocalNx-o.MXG-1
	m.YStart, m.YEnd = o.MYG, m.LocalNy-o.MYG-1
	m.log = Log.WithFields(logrus.Fields{"rank": rank})
	return
}

// Run calls fn on every rank, each on its own goroutine, and waits for all of
// them. An error or panic on one rank releases every rank blocked in an
// exchange, after which the Domain cannot exchange again.
func (d *Domain) Run(fn func(m *Mesh) error) (err error) {
	var (
		np   = d.Opts.NP()
		errs = make([]error, np)
		wg   sync.WaitGroup
	)
	for n := 0; n < np; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					if e, ok := r.(error); ok && errors.Is(e, ErrAborted) {
						errs[n] = e
					} else {
						errs[n] = fmt.Errorf("rank %d: panic: %v", n, r)
					}
					d.mb.Close()
				}
			}()
			if errs[n] = fn(d.Mesh(n)); errs[n] != nil {
				d.mb.Close()
			}
		}(n)
	}
	wg.Wait()
	for _, e := range errs {
		if e != nil && !errors.Is(e, ErrAborted) {
			return e
		}
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return
}

// Mesh is one rank's view of the Domain. Indices are local unless a method
// says otherwise.
type Mesh struct {
	Rank, PEX, PEY               int
	NXPE, NYPE                   int
	MXG, MYG                     int
	GlobalNx, GlobalNy, GlobalNz int // Including guard cells in x and y
	LocalNx, LocalNy, LocalNz    int
	XStart, XEnd, YStart, YEnd   int // Inclusive interior range
	PeriodicX, IncIntShear       bool

	xOffset, yOffset int
	ixseps           int
	seq              uint64
	d                *Domain
	log              logrus.FieldLogger
}

func (m *Mesh) XGlobal(x int) int { return x + m.xOffset }
func (m *Mesh) YGlobal(y int) int { return y + m.yOffset }
func (m *Mesh) XLocal(x int) int  { return x - m.xOffset }
func (m *Mesh) YLocal(y int) int  { return y - m.yOffset }

func (m *Mesh) FirstX() bool { return m.PEX == 0 }
func (m *Mesh) LastX() bool  { return m.PEX == m.NXPE-1 }
func (m *Mesh) FirstY() bool { return m.PEY == 0 }
func (m *Mesh) LastY() bool  { return m.PEY == m.NYPE-1 }

// Logger carries the rank of this mesh.
func (m *Mesh) Logger() logrus.FieldLogger { return m.log }

// closed reports whether local column x is periodic in y.
func (m *Mesh) closed(x int) bool { return m.XGlobal(x) < m.ixseps }

// HasBranchCutDown is true when the lower y guard cells of column x are
// filled across the branch cut.
func (m *Mesh) HasBranchCutDown(x int) bool { return m.FirstY() && m.closed(x) }

func (m *Mesh) HasBranchCutUp(x int) bool { return m.LastY() && m.closed(x) }

// HasBranchCut is true for every rank of a grid with closed columns.
func (m *Mesh) HasBranchCut() bool { return m.ixseps > 0 }

func (m *Mesh) Bounds(rgn types.Region) (b field.Bounds) {
	b = field.Bounds{X0: 0, X1: m.LocalNx - 1, Y0: 0, Y1: m.LocalNy - 1}
	switch rgn {
	case types.RgnNoBndry:
		b = field.Bounds{X0: m.XStart, X1: m.XEnd, Y0: m.YStart, Y1: m.YEnd}
	case types.RgnNoX:
		b.X0, b.X1 = m.XStart, m.XEnd
	case types.RgnNoY:
		b.Y0, b.Y1 = m.YStart, m.YEnd
	}
	return
}

func (m *Mesh) NewField2D(loc types.CellLoc) field.Field2D {
	return field.NewField2D(m.LocalNx, m.LocalNy, loc)
}

func (m *Mesh) NewField2DConst(val float64, loc types.CellLoc) field.Field2D {
	return field.NewField2DConst(m.LocalNx, m.LocalNy, val, loc)
}

func (m *Mesh) NewField3D(loc types.CellLoc) field.Field3D {
	return field.NewField3D(m.LocalNx, m.LocalNy, m.LocalNz, loc)
}
