// Package coordinates holds the differential geometry of a curvilinear,
// field-aligned mesh: both representations of the metric tensor, the
// Jacobian, the Christoffel symbols and the operators built from them. A
// Coordinates value exists per cell location and is immutable once built;
// staggered and corner variants are derived from the cell centre geometry
// through a Cache.
package coordinates

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/notargets/gocurvi/diff"
	"github.com/notargets/gocurvi/field"
	"github.com/notargets/gocurvi/mesh"
	"github.com/notargets/gocurvi/types"
)

type Options struct {
	Diff diff.Options
	// NonUniform adds the D1Dx, D1Dy correction to second derivatives
	NonUniform bool
	// ZPeriod > 0 sets the z domain to 2π/ZPeriod, otherwise it is
	// 2π(ZMax-ZMin). Both are ignored when the grid provides dz.
	ZPeriod    int
	ZMin, ZMax float64
}

func DefaultOptions() Options {
	return Options{NonUniform: true, ZMax: 1}
}

type Coordinates struct {
	Location types.CellLoc
	Nz       int
	Dz       float64
	Dx, Dy   field.Field2D

	// Contravariant metric g^ij
	G11, G22, G33, G12, G13, G23 field.Field2D
	// Covariant metric g_ij
	G_11, G_22, G_33, G_12, G_13, G_23 field.Field2D

	J, Bxy field.Field2D

	// Christoffel symbols of the second kind, Gk_ij
	G1_11, G1_22, G1_33, G1_12, G1_13, G1_23 field.Field2D
	G2_11, G2_22, G2_33, G2_12, G2_13, G2_23 field.Field2D
	G3_11, G3_22, G3_33, G3_12, G3_13, G3_23 field.Field2D
	G1, G2, G3                               field.Field2D

	// d(1/dx)/di and d(1/dy)/dj
	D1Dx, D1Dy field.Field2D

	ZShift          field.Field2D
	ShiftAngle      []float64 // Indexed by local x, empty on open grids
	ShiftTorsion    field.Field2D
	IntShiftTorsion field.Field2D

	key   types.CellLoc // Where the values actually sit
	m     *mesh.Mesh
	e     *diff.Engine
	opts  Options
	cache *Cache
	log   logrus.FieldLogger
}

func newCoordinates(m *mesh.Mesh, e *diff.Engine, key types.CellLoc, opts Options) *Coordinates {
	loc := key
	if key == types.CellXYCorner {
		loc = types.CellCentre
	}
	return &Coordinates{
		Location: loc,
		Nz:       m.LocalNz,
		key:      key,
		m:        m,
		e:        e,
		opts:     opts,
		log:      m.Logger().WithField("location", key),
	}
}

func (c *Coordinates) Mesh() *mesh.Mesh     { return c.m }
func (c *Coordinates) Engine() *diff.Engine { return c.e }
func (c *Coordinates) Options() Options     { return c.opts }

// NewCoordinates reads the cell centre geometry from the mesh's grid source.
// Missing quantities are defaulted with a warning: dx, dy and the diagonal
// g^ij to 1, the off-diagonal g^ij to 0. The covariant metric is read only
// when every component is present. NewCoordinates is collective.
func NewCoordinates(m *mesh.Mesh, opts Options) (c *Coordinates, err error) {
	c = newCoordinates(m, diff.NewEngine(m, opts.Diff), types.CellCentre, opts)
	if err = c.readGrid(); err != nil {
		return nil, err
	}
	c.lock()
	return
}

func (c *Coordinates) get2D(name string, def float64) (f field.Field2D, found bool, err error) {
	if f, found, err = c.m.Get2D(name, def); err != nil {
		err = newError(KindInput, "read "+name, err)
	}
	return
}

func (c *Coordinates) readGrid() (err error) {
	var (
		m     = c.m
		found bool
	)
	if c.Dx, _, err = c.get2D("dx", 1); err != nil {
		return
	}
	if c.Dy, _, err = c.get2D("dy", 1); err != nil {
		return
	}
	if c.Dz, err = c.readDz(); err != nil {
		return
	}
	for i, p := range c.contravariant() {
		def := 0.
		if i < 3 {
			def = 1
		}
		if *p, _, err = c.get2D(metricNames[i], def); err != nil {
			return
		}
	}
	if err = c.checkMetric("read"); err != nil {
		return
	}
	if err = c.readCovariant(); err != nil {
		return
	}
	if err = c.jacobian(); err != nil {
		return
	}
	if err = c.readJacobian(); err != nil {
		return
	}
	if err = c.geometry(); err != nil {
		return
	}
	if m.Has("ShiftTorsion") {
		if c.ShiftTorsion, _, err = c.get2D("ShiftTorsion", 0); err != nil {
			return
		}
	} else {
		c.log.Warn("no torsion specified for zShift, derivatives may not be correct")
		c.ShiftTorsion = m.NewField2D(c.Location)
	}
	if c.ShiftAngle, found, err = m.Get1D("ShiftAngle"); err != nil {
		return newError(KindInput, "read ShiftAngle", err)
	} else if !found {
		c.log.Warn("twist-shift angle ShiftAngle not found")
	}
	name := "zShift"
	if !m.Has(name) && m.Has("qinty") {
		name = "qinty"
	}
	if c.ZShift, _, err = c.get2D(name, 0); err != nil {
		return
	}
	c.correctShiftAngle(c.ZShift)
	if m.IncIntShear {
		if !m.Has("IntShiftTorsion") {
			c.log.Warn("no integrated torsion specified")
		}
		if c.IntShiftTorsion, _, err = c.get2D("IntShiftTorsion", 0); err != nil {
			return
		}
	}
	return
}

func (c *Coordinates) readDz() (dz float64, err error) {
	if c.m.Has("dz") {
		if dz, _, err = c.m.GetScalar("dz", 1); err != nil {
			err = newError(KindInput, "read dz", err)
		}
		return
	}
	zmin, zmax := c.opts.ZMin, c.opts.ZMax
	if c.opts.ZPeriod > 0 {
		zmin, zmax = 0, 1/float64(c.opts.ZPeriod)
	}
	if zmax == zmin {
		return 0, newError(KindConfig, "dz", fmt.Errorf("empty z domain [%g, %g]: %w", zmin, zmax, ErrSpacingTooSmall))
	}
	return (zmax - zmin) * 2 * math.Pi / float64(c.Nz), nil
}

// readCovariant loads g_ij when the grid holds all six components and
// otherwise inverts g^ij.
func (c *Coordinates) readCovariant() (err error) {
	var n int
	for _, name := range covariantNames {
		if c.m.Has(name) {
			n++
		}
	}
	switch n {
	case 0:
		return c.calcCovariant()
	case len(covariantNames):
		for i, p := range c.covariant() {
			if *p, _, err = c.get2D(covariantNames[i], 0); err != nil {
				return
			}
		}
		c.log.Warn("covariant components of metric tensor set manually, contravariant components not recalculated")
		return
	}
	c.log.Warn("not all covariant components of metric tensor found, calculating all from the contravariant tensor")
	return c.calcCovariant()
}

// readJacobian replaces the computed J and Bxy with grid values when present.
func (c *Coordinates) readJacobian() (err error) {
	var (
		m   = c.m
		rgn = m.Bounds(types.RgnNoBndry)
	)
	if m.Has("J") {
		var J field.Field2D
		if J, _, err = c.get2D("J", 0); err != nil {
			return
		}
		c.log.WithField("maxdiff", J.Sub(c.J).AbsMax(rgn)).Warn("loaded J differs from calculated")
		c.J = J
		c.Bxy = c.G_22.Sqrt().Div(c.J)
	} else {
		c.log.Warn("jacobian J not found, calculating from metric tensor")
	}
	if m.Has("Bxy") {
		var B field.Field2D
		if B, _, err = c.get2D("Bxy", 0); err != nil {
			return
		}
		c.log.WithField("maxdiff", B.Sub(c.Bxy).AbsMax(rgn)).Warn("loaded Bxy differs from calculated")
		if !B.Finite(rgn) {
			return newError(KindInput, "read Bxy", ErrBxyNotFinite)
		}
		c.Bxy = B
	} else {
		c.log.Warn("magnitude of B field Bxy not found, calculating from metric tensor")
	}
	return
}

// checkMetric requires finite g^ij over the interior with positive diagonal
// components.
func (c *Coordinates) checkMetric(op string) error {
	rgn := c.m.Bounds(types.RgnNoBndry)
	for i, p := range c.contravariant() {
		if !p.Finite(rgn) {
			return newError(KindInput, op, fmt.Errorf("%s: %w", metricNames[i], ErrMetricNotFinite))
		}
		if i < 3 && p.Min(rgn) <= 0 {
			return newError(KindInput, op, fmt.Errorf("%s: %w", metricNames[i], ErrMetricNotPositive))
		}
	}
	return nil
}

var (
	metricNames    = []string{"g11", "g22", "g33", "g12", "g13", "g23"}
	covariantNames = []string{"g_11", "g_22", "g_33", "g_12", "g_13", "g_23"}
)

func (c *Coordinates) contravariant() []*field.Field2D {
	return []*field.Field2D{&c.G11, &c.G22, &c.G33, &c.G12, &c.G13, &c.G23}
}

func (c *Coordinates) covariant() []*field.Field2D {
	return []*field.Field2D{&c.G_11, &c.G_22, &c.G_33, &c.G_12, &c.G_13, &c.G_23}
}

// christoffel returns Gk_ij as [k][pair], pairs ordered as metricNames.
func (c *Coordinates) christoffel() [3][]*field.Field2D {
	return [3][]*field.Field2D{
		{&c.G1_11, &c.G1_22, &c.G1_33, &c.G1_12, &c.G1_13, &c.G1_23},
		{&c.G2_11, &c.G2_22, &c.G2_33, &c.G2_12, &c.G2_13, &c.G2_23},
		{&c.G3_11, &c.G3_22, &c.G3_33, &c.G3_12, &c.G3_13, &c.G3_23},
	}
}

// pair maps a symmetric index pair to its position in metricNames.
func pair(i, j int) int {
	if i > j {
		i, j = j, i
	}
	if i == j {
		return i
	}
	return i + j + 2 // 01 -> 3, 02 -> 4, 12 -> 5
}

type namedField struct {
	name string
	f    *field.Field2D
}

// fields lists every field of the geometry under its grid file name.
func (c *Coordinates) fields() (nf []namedField) {
	nf = []namedField{{"dx", &c.Dx}, {"dy", &c.Dy}, {"d1_dx", &c.D1Dx}, {"d1_dy", &c.D1Dy}}
	for i, p := range c.contravariant() {
		nf = append(nf, namedField{metricNames[i], p})
	}
	for i, p := range c.covariant() {
		nf = append(nf, namedField{covariantNames[i], p})
	}
	for k, row := range c.christoffel() {
		for i, p := range row {
			nf = append(nf, namedField{fmt.Sprintf("G%d_%s", k+1, metricNames[i][1:]), p})
		}
	}
	return append(nf,
		namedField{"G1", &c.G1}, namedField{"G2", &c.G2}, namedField{"G3", &c.G3},
		namedField{"J", &c.J}, namedField{"Bxy", &c.Bxy},
		namedField{"zShift", &c.ZShift},
		namedField{"ShiftTorsion", &c.ShiftTorsion},
		namedField{"IntShiftTorsion", &c.IntShiftTorsion},
	)
}

func (c *Coordinates) lock() {
	for _, nf := range c.fields() {
		if nf.f.IsAllocated() {
			nf.f.Lock(nf.name)
		}
	}
}
