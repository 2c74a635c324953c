package coordinates

import (
	"fmt"

	"github.com/notargets/gocurvi/mesh"
	"github.com/notargets/gocurvi/types"
)

// Cache owns the geometry of one mesh: one Coordinates per location, built
// on first request and shared read only afterwards. Building is collective,
// so every rank must request locations in the same order.
type Cache struct {
	m      *mesh.Mesh
	opts   Options
	coords map[types.CellLoc]*Coordinates
}

func NewCache(m *mesh.Mesh, opts Options) *Cache {
	return &Cache{m: m, opts: opts, coords: make(map[types.CellLoc]*Coordinates)}
}

// Get returns the geometry at loc, building it and the geometry it derives
// from when needed. CellDefault means CellCentre.
func (cc *Cache) Get(loc types.CellLoc) (c *Coordinates, err error) {
	loc = loc.Resolve(types.CellCentre)
	if c = cc.coords[loc]; c != nil {
		return
	}
	var base *Coordinates
	switch loc {
	case types.CellCentre:
		c, err = NewCoordinates(cc.m, cc.opts)
	case types.CellXLow, types.CellYLow, types.CellZLow:
		if base, err = cc.Get(types.CellCentre); err == nil {
			c, err = NewStaggered(base, loc)
		}
	case types.CellXYCorner:
		if base, err = cc.Get(types.CellXLow); err == nil {
			c, err = NewXYCorner(base)
		}
	default:
		err = newError(KindConfig, "geometry cache", fmt.Errorf("%s: %w", loc, ErrLocation))
	}
	if err != nil {
		return nil, err
	}
	c.cache = cc
	cc.coords[loc] = c
	return
}

// Invalidate drops every geometry so the next Get rebuilds from the grid.
func (cc *Cache) Invalidate() {
	cc.coords = make(map[types.CellLoc]*Coordinates)
}
