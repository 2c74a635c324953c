package InputParameters

import (
	"fmt"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/gocurvi/coordinates"
	"github.com/notargets/gocurvi/diff"
	"github.com/notargets/gocurvi/mesh"
	"github.com/notargets/gocurvi/types"
)

type MeshParameters struct {
	Nz          int  `yaml:"Nz"`
	MXG         int  `yaml:"MXG"`
	MYG         int  `yaml:"MYG"`
	NXPE        int  `yaml:"NXPE"`
	NYPE        int  `yaml:"NYPE"`
	IXSeps      int  `yaml:"IXSeps"`
	PeriodicX   bool `yaml:"PeriodicX"`
	IncIntShear bool `yaml:"IncIntShear"`
}

// DiffParameters name the default stencils: C2, C4 or U1
type DiffParameters struct {
	First  string `yaml:"First"`
	Second string `yaml:"Second"`
	Upwind string `yaml:"Upwind"`
	Interp string `yaml:"Interp"`
}

// Parameters obtained from the YAML input file
type GeometryParameters struct {
	Title      string         `yaml:"Title"`
	Mesh       MeshParameters `yaml:"Mesh"`
	Diff       DiffParameters `yaml:"Diff"`
	NonUniform bool           `yaml:"NonUniform"`
	ZPeriod    int            `yaml:"ZPeriod"`
	ZMin       float64        `yaml:"ZMin"`
	ZMax       float64        `yaml:"ZMax"`
	Locations  []string       `yaml:"Locations"` // Built in order, e.g. centre, xlow, ylow, zlow, xycorner
}

// NewGeometryParameters returns the defaults that Parse overlays.
func NewGeometryParameters() *GeometryParameters {
	return &GeometryParameters{
		Mesh:       MeshParameters{Nz: 1, MXG: 2, MYG: 2, NXPE: 1, NYPE: 1},
		NonUniform: true,
		ZMax:       1,
		Locations:  []string{"centre", "xlow", "ylow", "xycorner"},
	}
}

func (ip *GeometryParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *GeometryParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d]\t\t\t= Nz\n", ip.Mesh.Nz)
	fmt.Printf("[%d, %d]\t\t\t= MXG, MYG\n", ip.Mesh.MXG, ip.Mesh.MYG)
	fmt.Printf("[%d x %d]\t\t\t= Ranks\n", ip.Mesh.NXPE, ip.Mesh.NYPE)
	fmt.Printf("[%d]\t\t\t= IXSeps\n", ip.Mesh.IXSeps)
	fmt.Printf("[%v]\t\t\t= NonUniform\n", ip.NonUniform)
	if ip.ZPeriod > 0 {
		fmt.Printf("[%d]\t\t\t= ZPeriod\n", ip.ZPeriod)
	} else {
		fmt.Printf("[%g, %g]\t\t\t= ZMin, ZMax\n", ip.ZMin, ip.ZMax)
	}
	fmt.Printf("%v\t= Locations\n", ip.Locations)
}

// MeshOptions completes the decomposition with the grid size, nx including x
// guard cells and ny excluding y guard cells.
func (ip *GeometryParameters) MeshOptions(nx, ny int) mesh.Options {
	p := ip.Mesh
	return mesh.Options{
		Nx: nx, Ny: ny, Nz: p.Nz,
		MXG: p.MXG, MYG: p.MYG,
		NXPE: p.NXPE, NYPE: p.NYPE,
		IXSeps:      p.IXSeps,
		PeriodicX:   p.PeriodicX,
		IncIntShear: p.IncIntShear,
	}
}

func (ip *GeometryParameters) CoordinateOptions() (opts coordinates.Options, err error) {
	var (
		d       = ip.Diff
		methods [4]types.DiffMethod
	)
	for i, label := range []string{d.First, d.Second, d.Upwind, d.Interp} {
		if methods[i], err = types.NewDiffMethod(label); err != nil {
			return
		}
	}
	opts = coordinates.Options{
		Diff: diff.Options{
			First: methods[0], Second: methods[1], Upwind: methods[2], Interp: methods[3],
		},
		NonUniform: ip.NonUniform,
		ZPeriod:    ip.ZPeriod,
		ZMin:       ip.ZMin,
		ZMax:       ip.ZMax,
	}
	return
}

func (ip *GeometryParameters) CellLocs() (locs []types.CellLoc, err error) {
	for _, label := range ip.Locations {
		var loc types.CellLoc
		if loc, err = types.NewCellLoc(label); err != nil {
			return nil, err
		}
		if loc == types.CellDefault {
			return nil, fmt.Errorf("location %q is not a place in the cell", label)
		}
		locs = append(locs, loc)
	}
	return
}

// LocName is the lower case label of loc used in file names.
func LocName(loc types.CellLoc) string {
	return strings.ToLower(strings.TrimPrefix(loc.String(), "CELL_"))
}
