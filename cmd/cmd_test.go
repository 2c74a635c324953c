package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gocurvi/InputParameters"
	"github.com/notargets/gocurvi/gridfile"
)

// testGrid is an 8x4 grid with a mildly varying metric.
func testGrid() *gridfile.MemSource {
	const nx, ny = 8, 4
	return gridfile.NewMemSource().
		SetScalar("nx", nx).
		SetScalar("ny", ny).
		Fill2D("g11", nx, ny, func(x, y int) float64 { return 1 + 0.05*float64(x) }).
		Fill2D("g22", nx, ny, func(x, y int) float64 { return 2 }).
		Fill2D("g12", nx, ny, func(x, y int) float64 { return 0.1 })
}

func TestBuildGeometry(t *testing.T) {
	ip := InputParameters.NewGeometryParameters()
	require.NoError(t, ip.Parse([]byte("Mesh: {NXPE: 2}\nLocations: [centre, xlow]\n")))
	prefix := filepath.Join(t.TempDir(), "geometry")
	require.NoError(t, BuildGeometry(ip, testGrid(), prefix))

	for _, loc := range []string{"centre", "xlow"} {
		for _, rank := range []string{"0", "1"} {
			name := prefix + "." + loc + "." + rank + ".nc"
			f, err := gridfile.Open(name)
			require.NoError(t, err, name)
			assert.True(t, f.Has("J"))
			assert.True(t, f.Has("G1_11"))
			assert.False(t, f.Has("IntShiftTorsion"))
			J, nx, ny, err := f.Read2D("J")
			require.NoError(t, err)
			// 2 interior x points per rank plus guards, 4 interior y points plus guards
			assert.Equal(t, 6, nx)
			assert.Equal(t, 8, ny)
			assert.Len(t, J, nx*ny)
			dz, err := f.ReadScalar("dz")
			require.NoError(t, err)
			assert.Greater(t, dz, 0.)
			require.NoError(t, f.Close())
		}
	}
}

func TestCheckGeometry(t *testing.T) {
	ip := InputParameters.NewGeometryParameters()
	var buf bytes.Buffer
	require.NoError(t, CheckGeometry(ip, testGrid(), &buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// Header, then one line per default location on the single rank
	require.Len(t, lines, 1+len(ip.Locations))
	assert.True(t, strings.HasPrefix(lines[1], "centre"))
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "xycorner"))
	{
		src := testGrid()
		src.Delete("ny")
		assert.Error(t, CheckGeometry(ip, src, &buf))
	}
}

func TestReadParameters(t *testing.T) {
	{
		ip, err := readParameters("")
		require.NoError(t, err)
		assert.Equal(t, 2, ip.Mesh.MXG)
	}
	{
		path := filepath.Join(t.TempDir(), "input.yaml")
		require.NoError(t, os.WriteFile(path, []byte("Title: test\nMesh: {MXG: 1}\n"), 0644))
		ip, err := readParameters(path)
		require.NoError(t, err)
		assert.Equal(t, "test", ip.Title)
		assert.Equal(t, 1, ip.Mesh.MXG)
	}
	{
		_, err := openGrid("")
		assert.Error(t, err)
	}
}
