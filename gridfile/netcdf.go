package gridfile

import (
	"fmt"
	"os"
	"sync"

	"github.com/ctessum/cdf"

	"github.com/notargets/gocurvi/field"
)

// File is a Source backed by a classic netCDF grid file. Reads may come
// from every rank of a Domain at once.
type File struct {
	mu sync.Mutex
	ff *os.File
	nc *cdf.File
}

func Open(path string) (f *File, err error) {
	f = &File{}
	if f.ff, err = os.Open(path); err != nil {
		return nil, err
	}
	if f.nc, err = cdf.Open(f.ff); err != nil {
		f.ff.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return
}

func (f *File) Close() error { return f.ff.Close() }

func (f *File) Variables() []string { return f.nc.Header.Variables() }

func (f *File) Has(name string) bool {
	return f.nc.Header.Lengths(name) != nil
}

func (f *File) read(name string) (data []float64, dims []int, err error) {
	if dims = f.nc.Header.Lengths(name); dims == nil {
		return nil, nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	nread := 1
	for _, dim := range dims {
		nread *= dim
	}
	r := f.nc.Reader(name, nil, nil)
	buf := r.Zero(nread)
	if _, err = r.Read(buf); err != nil {
		return nil, nil, fmt.Errorf("reading %q: %w", name, err)
	}
	data = make([]float64, nread)
	switch vals := buf.(type) {
	case []float64:
		copy(data, vals)
	case []float32:
		for i, v := range vals {
			data[i] = float64(v)
		}
	case []int32:
		for i, v := range vals {
			data[i] = float64(v)
		}
	case []int16:
		for i, v := range vals {
			data[i] = float64(v)
		}
	default:
		return nil, nil, fmt.Errorf("%q has unsupported type %T", name, buf)
	}
	return
}

func (f *File) Read2D(name string) (data []float64, nx, ny int, err error) {
	var dims []int
	if data, dims, err = f.read(name); err != nil {
		return
	}
	if len(dims) != 2 {
		err = fmt.Errorf("%q has %d dimensions, want 2", name, len(dims))
		return
	}
	return data, dims[0], dims[1], nil
}

func (f *File) Read1D(name string) (data []float64, err error) {
	var dims []int
	if data, dims, err = f.read(name); err != nil {
		return
	}
	if len(dims) != 1 {
		err = fmt.Errorf("%q has %d dimensions, want 1", name, len(dims))
	}
	return
}

func (f *File) ReadScalar(name string) (val float64, err error) {
	var data []float64
	if data, _, err = f.read(name); err != nil {
		return
	}
	if len(data) != 1 {
		return 0, fmt.Errorf("%q has %d values, want a scalar", name, len(data))
	}
	return data[0], nil
}

type record struct {
	name     string
	evolving bool
	array
}

// Collector is a Sink that keeps what it is given in memory until Write.
type Collector struct {
	records []record
	index   map[string]int
}

func NewCollector() *Collector {
	return &Collector{index: make(map[string]int)}
}

// Add accepts float64, []float64 and field.Field2D values. Adding a name a
// second time replaces the earlier value.
func (c *Collector) Add(name string, value any, evolving bool) (err error) {
	rec := record{name: name, evolving: evolving}
	switch v := value.(type) {
	case float64:
		rec.array = array{data: []float64{v}}
	case []float64:
		rec.array = array{nx: len(v), data: append([]float64{}, v...)}
	case field.Field2D:
		nx, ny := v.Shape()
		rec.array = array{nx: nx, ny: ny, data: append([]float64{}, v.Data()...)}
	default:
		return fmt.Errorf("%q: cannot store a %T", name, value)
	}
	if i, ok := c.index[name]; ok {
		c.records[i] = rec
		return
	}
	c.index[name] = len(c.records)
	c.records = append(c.records, rec)
	return
}

func (c *Collector) Len() int { return len(c.records) }

// Source returns the collected values as a MemSource.
func (c *Collector) Source() (ms *MemSource) {
	ms = NewMemSource()
	for _, rec := range c.records {
		ms.vars[rec.name] = rec.array
	}
	return
}

// closeFile is where Write's output is flushed and closed.
var closeFile = (*os.File).Close

// Write stores everything collected so far as a classic netCDF file. 2D
// arrays must share one shape, named (x, y).
func (c *Collector) Write(path string) (err error) {
	var (
		dimNames []string
		dimLens  []int
		dimOf    = make(map[int]string)
		nx, ny   int
	)
	addDim := func(name string, n int) {
		dimNames = append(dimNames, name)
		dimLens = append(dimLens, n)
	}
	for _, rec := range c.records {
		if rec.ny == 0 {
			continue
		}
		if nx == 0 {
			nx, ny = rec.nx, rec.ny
			addDim("x", nx)
			addDim("y", ny)
			dimOf[nx] = "x"
			if _, ok := dimOf[ny]; !ok {
				dimOf[ny] = "y"
			}
		} else if rec.nx != nx || rec.ny != ny {
			return fmt.Errorf("%q is %dx%d, file is %dx%d", rec.name, rec.nx, rec.ny, nx, ny)
		}
	}
	addDim("scalar", 1)
	dimOf[-1] = "scalar"
	for _, rec := range c.records {
		if rec.ny == 0 && rec.nx != 0 {
			if _, ok := dimOf[rec.nx]; !ok {
				dimOf[rec.nx] = fmt.Sprintf("n%d", rec.nx)
				addDim(dimOf[rec.nx], rec.nx)
			}
		}
	}

	h := cdf.NewHeader(dimNames, dimLens)
	for _, rec := range c.records {
		var dims []string
		switch {
		case rec.ny != 0:
			dims = []string{"x", "y"}
		case rec.nx != 0:
			dims = []string{dimOf[rec.nx]}
		default:
			dims = []string{"scalar"}
		}
		h.AddVariable(rec.name, dims, []float64{0})
		evolving := int32(0)
		if rec.evolving {
			evolving = 1
		}
		h.AddAttribute(rec.name, "evolving", []int32{evolving})
	}
	h.Define()

	ff, err := os.Create(path)
	if err != nil {
		return
	}
	defer func() {
		if cerr := closeFile(ff); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	f, err := cdf.Create(ff, h)
	if err != nil {
		return
	}
	for _, rec := range c.records {
		w := f.Writer(rec.name, nil, nil)
		if _, err = w.Write(rec.data); err != nil {
			return fmt.Errorf("writing %q: %w", rec.name, err)
		}
	}
	return cdf.UpdateNumRecs(ff)
}
