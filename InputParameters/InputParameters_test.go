package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gocurvi/types"
)

func TestParse(t *testing.T) {
	fileInput := []byte(`
Title: Circular tokamak
Mesh:
  Nz: 16
  NXPE: 2
  IXSeps: 12
Diff:
  First: C4
  Upwind: u1
ZPeriod: 5
Locations: [centre, ylow]
`)
	ip := NewGeometryParameters()
	require.NoError(t, ip.Parse(fileInput))
	ip.Print()
	assert.Equal(t, "Circular tokamak", ip.Title)
	{
		opts := ip.MeshOptions(20, 32)
		assert.Equal(t, 20, opts.Nx)
		assert.Equal(t, 32, opts.Ny)
		assert.Equal(t, 16, opts.Nz)
		assert.Equal(t, 2, opts.NXPE)
		assert.Equal(t, 1, opts.NYPE)
		// Unset keys keep their defaults
		assert.Equal(t, 2, opts.MXG)
		assert.Equal(t, 2, opts.MYG)
		assert.Equal(t, 12, opts.IXSeps)
		assert.NoError(t, opts.Validate())
	}
	{
		opts, err := ip.CoordinateOptions()
		require.NoError(t, err)
		assert.Equal(t, types.DiffC4, opts.Diff.First)
		assert.Equal(t, types.DiffDefault, opts.Diff.Second)
		assert.Equal(t, types.DiffU1, opts.Diff.Upwind)
		assert.True(t, opts.NonUniform)
		assert.Equal(t, 5, opts.ZPeriod)
		assert.Equal(t, 1., opts.ZMax)
	}
	{
		locs, err := ip.CellLocs()
		require.NoError(t, err)
		assert.Equal(t, []types.CellLoc{types.CellCentre, types.CellYLow}, locs)
	}
}

func TestParseErrors(t *testing.T) {
	{
		ip := NewGeometryParameters()
		require.NoError(t, ip.Parse([]byte("Diff: {Second: C6}\n")))
		_, err := ip.CoordinateOptions()
		assert.Error(t, err)
	}
	{
		ip := NewGeometryParameters()
		require.NoError(t, ip.Parse([]byte("Locations: [centre, somewhere]\n")))
		_, err := ip.CellLocs()
		assert.Error(t, err)
		require.NoError(t, ip.Parse([]byte("Locations: [default]\n")))
		_, err = ip.CellLocs()
		assert.Error(t, err)
	}
	{
		ip := NewGeometryParameters()
		require.NoError(t, ip.Parse([]byte("NonUniform: false\n")))
		assert.False(t, ip.NonUniform)
		assert.Error(t, ip.Parse([]byte("Mesh: [1, 2]\n")))
	}
}

func TestLocName(t *testing.T) {
	assert.Equal(t, "xycorner", LocName(types.CellXYCorner))
	assert.Equal(t, "centre", LocName(types.CellCentre))
}
