package mesh

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/notargets/gocurvi/field"
	"github.com/notargets/gocurvi/types"
)

// Has reports whether the grid source holds name.
func (m *Mesh) Has(name string) bool {
	return m.d.Source != nil && m.d.Source.Has(name)
}

func (m *Mesh) warnDefault(name string, def any) {
	m.log.WithFields(logrus.Fields{"name": name, "default": def}).
		Warn("variable not in mesh source, using default")
}

// Get2D reads name for this rank's block. Interior rows come from the source,
// processor guard cells are communicated and guard rows at open y boundaries
// repeat the nearest interior row. When the source does not hold name the
// field is set to def, found is false and a warning is logged. Get2D is
// collective when the variable is present.
func (m *Mesh) Get2D(name string, def float64) (f field.Field2D, found bool, err error) {
	f = m.NewField2DConst(def, types.CellCentre)
	if !m.Has(name) {
		m.warnDefault(name, def)
		return
	}
	data, nx, ny, err := m.d.Source.Read2D(name)
	if err != nil {
		return
	}
	if nx != m.GlobalNx || ny != m.GlobalNy-2*m.MYG {
		err = fmt.Errorf("%q is %dx%d, grid is %dx%d", name, nx, ny, m.GlobalNx, m.GlobalNy-2*m.MYG)
		return
	}
	for x := 0; x < m.LocalNx; x++ {
		for y := m.YStart; y <= m.YEnd; y++ {
			f.Set(x, y, data[m.XGlobal(x)*ny+m.YGlobal(y)-m.MYG])
		}
	}
	m.Communicate(f)
	for x := 0; x < m.LocalNx; x++ {
		if m.closed(x) {
			continue
		}
		for g := 0; g < m.MYG; g++ {
			if m.FirstY() {
				f.Set(x, g, f.At(x, m.YStart))
			}
			if m.LastY() {
				f.Set(x, m.YEnd+1+g, f.At(x, m.YEnd))
			}
		}
	}
	return f, true, nil
}

// Get1D reads an x profile of the global grid and returns this rank's
// LocalNx values.
func (m *Mesh) Get1D(name string) (data []float64, found bool, err error) {
	if !m.Has(name) {
		return
	}
	var global []float64
	if global, err = m.d.Source.Read1D(name); err != nil {
		return
	}
	if len(global) < m.XGlobal(m.LocalNx) {
		err = fmt.Errorf("%q has %d values, need %d", name, len(global), m.XGlobal(m.LocalNx))
		return
	}
	data = append([]float64{}, global[m.XGlobal(0):m.XGlobal(m.LocalNx)]...)
	return data, true, nil
}

func (m *Mesh) GetScalar(name string, def float64) (val float64, found bool, err error) {
	if !m.Has(name) {
		m.warnDefault(name, def)
		return def, false, nil
	}
	if val, err = m.d.Source.ReadScalar(name); err != nil {
		return
	}
	return val, true, nil
}
