package volume

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liq07lzucn/natural-neighbor-interpolation/internal/models"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	grid := models.NewVolume(3, 2, 4)
	counts := models.NewVolume(3, 2, 4)
	for i := range grid.Data {
		grid.Data[i] = float64(i) * 1.5
		counts.Data[i] = float64(i % 3)
	}

	in := &File{
		RunID:  uuid.New(),
		Fill:   -99.5,
		Grid:   grid,
		Counts: counts,
	}

	path := filepath.Join(t.TempDir(), "out.nnv")
	require.NoError(t, SaveCompressed(path, in))

	out, err := LoadCompressed(path)
	require.NoError(t, err)

	assert.Equal(t, in.RunID, out.RunID)
	assert.Equal(t, in.Fill, out.Fill)
	assert.Equal(t, grid.Ni, out.Grid.Ni)
	assert.Equal(t, grid.Nj, out.Grid.Nj)
	assert.Equal(t, grid.Nk, out.Grid.Nk)
	assert.Equal(t, grid.Data, out.Grid.Data)
	assert.Equal(t, counts.Data, out.Counts.Data)
}

func TestSaveRejectsMismatchedShapes(t *testing.T) {
	f := &File{
		Grid:   models.NewVolume(2, 2, 2),
		Counts: models.NewVolume(2, 2, 3),
	}
	err := SaveCompressed(filepath.Join(t.TempDir(), "bad.nnv"), f)
	require.Error(t, err)
}

func TestLoadRejectsForeignFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-volume")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0644))

	_, err := LoadCompressed(path)
	require.Error(t, err)
}

func TestLoadSamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.csv")
	content := "x,y,z,value\n0,0,0,10\n5, 5, 5, 20\n1.5,2.5,3.5,-4\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	points, values, err := LoadSamples(path)
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.Equal(t, 0.0, points[0].X)
	assert.Equal(t, 5.0, points[1].Z)
	assert.Equal(t, 2.5, points[2].Y)
	assert.Equal(t, []float64{10, 20, -4}, values)
}

func TestLoadSamplesNoHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.csv")
	require.NoError(t, os.WriteFile(path, []byte("1,2,3,4\n"), 0644))

	points, values, err := LoadSamples(path)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, []float64{4}, values)
}

func TestLoadSamplesBadRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.csv")
	require.NoError(t, os.WriteFile(path, []byte("1,2,3,4\n1,2,oops,4\n"), 0644))

	_, _, err := LoadSamples(path)
	require.Error(t, err)
}
