/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gocurvi/InputParameters"
	"github.com/notargets/gocurvi/coordinates"
	"github.com/notargets/gocurvi/gridfile"
	"github.com/notargets/gocurvi/mesh"
	"github.com/notargets/gocurvi/utils"
)

// GeometryCmd represents the geometry command
var GeometryCmd = &cobra.Command{
	Use:   "geometry",
	Short: "Build the geometry at every requested cell location and write it out",
	Long: `
Reads a netCDF grid file, builds the geometry of each rank at every location
listed in the input parameters and writes one netCDF file per rank and location,
named <output>.<location>.<rank>.nc

gocurvi geometry -F grid.nc -I input.yaml -o geometry`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ip     *InputParameters.GeometryParameters
			grid   *gridfile.File
			output string
		)
		if ip, err = readParameters(viper.GetString("inputParametersFile")); err != nil {
			return
		}
		if grid, err = openGrid(viper.GetString("gridFile")); err != nil {
			return
		}
		defer grid.Close()
		if output, err = cmd.Flags().GetString("output"); err != nil {
			return
		}
		return BuildGeometry(ip, grid, output)
	},
}

func init() {
	rootCmd.AddCommand(GeometryCmd)
	pf := rootCmd.PersistentFlags()
	pf.StringP("gridFile", "F", "", "netCDF grid file holding nx, ny and the metric")
	pf.StringP("inputParametersFile", "I", "", "YAML file for input parameters like:\n\t- Mesh decomposition\n\t- Diff stencils\n\t- Locations")
	viper.BindPFlag("gridFile", pf.Lookup("gridFile"))
	viper.BindPFlag("inputParametersFile", pf.Lookup("inputParametersFile"))
	GeometryCmd.Flags().StringP("output", "o", "geometry", "prefix of the output files")
}

func readParameters(path string) (ip *InputParameters.GeometryParameters, err error) {
	ip = InputParameters.NewGeometryParameters()
	if len(path) == 0 {
		return
	}
	var data []byte
	if data, err = os.ReadFile(path); err != nil {
		return
	}
	if err = ip.Parse(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return
}

func openGrid(path string) (*gridfile.File, error) {
	if len(path) == 0 {
		exampleFile := `
########################################
Title: "Test Case"
Mesh:
  Nz: 16
  NXPE: 2
Diff:
  First: C4
NonUniform: true
Locations: [centre, xlow, ylow, xycorner]
########################################
`
		return nil, fmt.Errorf("must supply a grid file (-F, --gridFile) in netCDF format, "+
			"with an optional input parameters file (-I) like:%s", exampleFile)
	}
	return gridfile.Open(path)
}

// gridSize reads the array sizes stored in the grid: nx counts x guard cells,
// ny does not count y guard cells.
func gridSize(src gridfile.Source) (nx, ny int, err error) {
	var v float64
	for _, p := range []struct {
		name string
		n    *int
	}{{"nx", &nx}, {"ny", &ny}} {
		if v, err = src.ReadScalar(p.name); err != nil {
			return
		}
		*p.n = int(v)
	}
	return
}

// domain sets up the decomposition and geometry options for one run.
func domain(ip *InputParameters.GeometryParameters, src gridfile.Source) (d *mesh.Domain,
	opts coordinates.Options, err error) {
	var nx, ny int
	if nx, ny, err = gridSize(src); err != nil {
		return
	}
	if opts, err = ip.CoordinateOptions(); err != nil {
		return
	}
	d, err = mesh.NewDomain(ip.MeshOptions(nx, ny), src)
	return
}

// BuildGeometry builds and writes the geometry of every rank at every
// location in ip.
func BuildGeometry(ip *InputParameters.GeometryParameters, src gridfile.Source, output string) (err error) {
	var (
		d    *mesh.Domain
		opts coordinates.Options
	)
	if d, opts, err = domain(ip, src); err != nil {
		return
	}
	locs, err := ip.CellLocs()
	if err != nil {
		return
	}
	err = d.Run(func(m *mesh.Mesh) (err error) {
		cache := coordinates.NewCache(m, opts)
		for _, loc := range locs {
			var c *coordinates.Coordinates
			if c, err = cache.Get(loc); err != nil {
				return
			}
			col := gridfile.NewCollector()
			if err = c.OutputVars(col); err != nil {
				return
			}
			name := fmt.Sprintf("%s.%s.%d.nc", output, InputParameters.LocName(loc), m.Rank)
			if err = col.Write(name); err != nil {
				return
			}
			m.Logger().WithField("file", name).Info("wrote geometry")
		}
		return
	})
	if err == nil {
		logrus.WithField("memory", utils.GetMemUsage()).Info("geometry complete")
	}
	return
}
