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
	"io"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gocurvi/InputParameters"
	"github.com/notargets/gocurvi/coordinates"
	"github.com/notargets/gocurvi/gridfile"
	"github.com/notargets/gocurvi/mesh"
	"github.com/notargets/gocurvi/types"
)

// CheckCmd represents the check command
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report metric inversion and Jacobian diagnostics of a grid",
	Long: `
Builds the geometry at every requested location without writing it and prints,
per rank, the range of J and Bxy and the residual of the metric inversion.

gocurvi check -F grid.nc`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ip   *InputParameters.GeometryParameters
			grid *gridfile.File
		)
		if ip, err = readParameters(viper.GetString("inputParametersFile")); err != nil {
			return
		}
		if grid, err = openGrid(viper.GetString("gridFile")); err != nil {
			return
		}
		defer grid.Close()
		return CheckGeometry(ip, grid, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(CheckCmd)
}

type Diagnostics struct {
	Rank              int
	Loc               types.CellLoc
	JMin, JMax        float64
	BxyMin, BxyMax    float64
	Residual, OffDiag float64 // Largest |g_ij g^jk - δ_ik| on and off the diagonal
}

// CheckGeometry builds the geometry of every rank at every location in ip
// and prints the diagnostics to w ordered by location, then rank.
func CheckGeometry(ip *InputParameters.GeometryParameters, src gridfile.Source, w io.Writer) (err error) {
	var (
		d    *mesh.Domain
		opts coordinates.Options
		locs []types.CellLoc
		mu   sync.Mutex
		diag []Diagnostics
	)
	if d, opts, err = domain(ip, src); err != nil {
		return
	}
	if locs, err = ip.CellLocs(); err != nil {
		return
	}
	err = d.Run(func(m *mesh.Mesh) (err error) {
		var (
			cache = coordinates.NewCache(m, opts)
			rgn   = m.Bounds(types.RgnNoBndry)
		)
		for _, loc := range locs {
			var c *coordinates.Coordinates
			if c, err = cache.Get(loc); err != nil {
				return
			}
			dg := Diagnostics{
				Rank: m.Rank, Loc: loc,
				JMin: c.J.Min(rgn), JMax: c.J.Max(rgn),
				BxyMin: c.Bxy.Min(rgn), BxyMax: c.Bxy.Max(rgn),
			}
			dg.Residual, dg.OffDiag = c.InversionResidual()
			mu.Lock()
			diag = append(diag, dg)
			mu.Unlock()
		}
		return
	})
	if err != nil {
		return
	}
	sort.Slice(diag, func(i, j int) bool {
		if diag[i].Loc != diag[j].Loc {
			return diag[i].Loc < diag[j].Loc
		}
		return diag[i].Rank < diag[j].Rank
	})
	fmt.Fprintf(w, "%-10s %4s %12s %12s %12s %12s %10s %10s\n",
		"location", "rank", "J min", "J max", "Bxy min", "Bxy max", "residual", "offdiag")
	for _, dg := range diag {
		fmt.Fprintf(w, "%-10s %4d %12.5g %12.5g %12.5g %12.5g %10.3g %10.3g\n",
			InputParameters.LocName(dg.Loc), dg.Rank, dg.JMin, dg.JMax, dg.BxyMin, dg.BxyMax,
			dg.Residual, dg.OffDiag)
	}
	return
}
