// Package gridfile is the persistence layer for grid quantities: a read side
// (Source) from which the mesh pulls named arrays, and a write side (Sink) to
// which finished geometry is published. Arrays are stored the way grid files
// lay them out, x slow and y fast, with x guard cells included and y guard
// cells excluded.
package gridfile

import (
	"errors"
	"fmt"
	"sort"
)

var ErrNotFound = errors.New("gridfile: variable not found")

// Source is a read only store of named arrays.
type Source interface {
	Has(name string) bool
	// Read2D returns data laid out as data[x*ny+y]
	Read2D(name string) (data []float64, nx, ny int, err error)
	Read1D(name string) (data []float64, err error)
	ReadScalar(name string) (val float64, err error)
}

// Sink collects output quantities. Evolving is false for quantities written
// once per run rather than once per output step.
type Sink interface {
	Add(name string, value any, evolving bool) error
}

type array struct {
	nx, ny int // ny == 0 for 1D, nx == 0 for scalars
	data   []float64
}

// MemSource is an in memory Source, used to build grids programmatically.
type MemSource struct {
	vars map[string]array
}

func NewMemSource() *MemSource {
	return &MemSource{vars: make(map[string]array)}
}

func (ms *MemSource) Set2D(name string, nx, ny int, data []float64) *MemSource {
	if len(data) != nx*ny {
		panic(fmt.Errorf("%s: have %d values for a %dx%d array", name, len(data), nx, ny))
	}
	ms.vars[name] = array{nx: nx, ny: ny, data: append([]float64{}, data...)}
	return ms
}

// Fill2D sets name to f evaluated at every (x, y) of an nx by ny array.
func (ms *MemSource) Fill2D(name string, nx, ny int, f func(x, y int) float64) *MemSource {
	data := make([]float64, nx*ny)
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			data[x*ny+y] = f(x, y)
		}
	}
	return ms.Set2D(name, nx, ny, data)
}

func (ms *MemSource) Set1D(name string, data []float64) *MemSource {
	ms.vars[name] = array{nx: len(data), data: append([]float64{}, data...)}
	return ms
}

func (ms *MemSource) SetScalar(name string, val float64) *MemSource {
	ms.vars[name] = array{data: []float64{val}}
	return ms
}

func (ms *MemSource) Delete(name string) { delete(ms.vars, name) }

// Names returns the stored names in sorted order.
func (ms *MemSource) Names() (names []string) {
	for name := range ms.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

func (ms *MemSource) Has(name string) bool {
	_, ok := ms.vars[name]
	return ok
}

func (ms *MemSource) lookup(name string) (a array, err error) {
	var ok bool
	if a, ok = ms.vars[name]; !ok {
		err = fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return
}

func (ms *MemSource) Read2D(name string) (data []float64, nx, ny int, err error) {
	var a array
	if a, err = ms.lookup(name); err != nil {
		return
	}
	if a.ny == 0 {
		err = fmt.Errorf("%q is not a 2D array", name)
		return
	}
	return append([]float64{}, a.data...), a.nx, a.ny, nil
}

func (ms *MemSource) Read1D(name string) (data []float64, err error) {
	var a array
	if a, err = ms.lookup(name); err != nil {
		return
	}
	if a.ny != 0 || a.nx == 0 {
		err = fmt.Errorf("%q is not a 1D array", name)
		return
	}
	return append([]float64{}, a.data...), nil
}

func (ms *MemSource) ReadScalar(name string) (val float64, err error) {
	var a array
	if a, err = ms.lookup(name); err != nil {
		return
	}
	if len(a.data) != 1 {
		err = fmt.Errorf("%q is not a scalar", name)
		return
	}
	return a.data[0], nil
}
