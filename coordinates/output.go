package coordinates

import (
	"github.com/notargets/gocurvi/gridfile"
)

// OutputVars adds the geometry to sink under its grid file names, each
// written once rather than per time step.
func (c *Coordinates) OutputVars(sink gridfile.Sink) (err error) {
	if err = sink.Add("dz", c.Dz, false); err != nil {
		return
	}
	for _, nf := range c.fields() {
		if !nf.f.IsAllocated() {
			continue
		}
		if err = sink.Add(nf.name, *nf.f, false); err != nil {
			return
		}
	}
	return
}
