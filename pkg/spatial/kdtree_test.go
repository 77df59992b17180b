package spatial

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liq07lzucn/natural-neighbor-interpolation/pkg/geometry"
)

func TestNearestEmptyTree(t *testing.T) {
	tree := NewTree(nil, nil)
	assert.Equal(t, 0, tree.Len())

	_, err := tree.Nearest(geometry.NewPoint(0, 0, 0))
	require.ErrorIs(t, err, ErrNoData)
}

func TestNearestSinglePoint(t *testing.T) {
	p := geometry.NewPoint(1, 2, 3)
	tree := NewTree([]geometry.Point{p}, []float64{42})

	res, err := tree.Nearest(geometry.NewPoint(4, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, p, res.Point)
	assert.Equal(t, 42.0, res.Value)
	assert.Equal(t, 9.0, res.DistSq)
}

func TestNearestExactHit(t *testing.T) {
	points := []geometry.Point{
		geometry.NewPoint(0, 0, 0),
		geometry.NewPoint(5, 5, 5),
		geometry.NewPoint(2, 7, 1),
	}
	tree := NewTree(points, []float64{10, 20, 30})

	for i, p := range points {
		res, err := tree.Nearest(p)
		require.NoError(t, err)
		assert.Equal(t, p, res.Point)
		assert.Equal(t, []float64{10, 20, 30}[i], res.Value)
		assert.Equal(t, 0.0, res.DistSq)
	}
}

// linearScan is the exhaustive oracle the tree must agree with.
func linearScan(points []geometry.Point, values []float64, q geometry.Point) Result {
	best := Result{DistSq: -1}
	for i, p := range points {
		d := q.SquaredDistanceTo(p)
		if best.DistSq < 0 || d < best.DistSq {
			best = Result{Point: p, Value: values[i], DistSq: d}
		}
	}
	return best
}

func TestNearestMatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	points := make([]geometry.Point, 200)
	values := make([]float64, len(points))
	for i := range points {
		points[i] = geometry.NewPoint(rng.Float64()*50, rng.Float64()*50, rng.Float64()*50)
		values[i] = rng.NormFloat64()
	}
	tree := NewTree(points, values)

	for q := 0; q < 1000; q++ {
		// Mix in-cloud and out-of-cloud queries.
		query := geometry.NewPoint(rng.Float64()*70-10, rng.Float64()*70-10, rng.Float64()*70-10)

		got, err := tree.Nearest(query)
		require.NoError(t, err)

		want := linearScan(points, values, query)
		assert.Equal(t, want.DistSq, got.DistSq, "query %d: %v", q, query)
		assert.Equal(t, want.Value, got.Value, "query %d: %v", q, query)
		assert.Equal(t, want.Point, got.Point, "query %d: %v", q, query)
	}
}

func TestNearestDuplicatePoints(t *testing.T) {
	p := geometry.NewPoint(3, 3, 3)
	tree := NewTree([]geometry.Point{p, p, p}, []float64{1, 1, 1})

	res, err := tree.Nearest(geometry.NewPoint(3, 3, 4))
	require.NoError(t, err)
	assert.Equal(t, p, res.Point)
	assert.Equal(t, 1.0, res.DistSq)
}

// Ties are broken by traversal order, which is fixed for a given input,
// so repeated queries and rebuilds must agree.
func TestNearestTieIsDeterministic(t *testing.T) {
	points := []geometry.Point{
		geometry.NewPoint(0, 0, 0),
		geometry.NewPoint(2, 0, 0),
	}
	values := []float64{1, 2}
	query := geometry.NewPoint(1, 0, 0)

	first, err := NewTree(points, values).Nearest(query)
	require.NoError(t, err)
	assert.Equal(t, 1.0, first.DistSq)

	for trial := 0; trial < 10; trial++ {
		res, err := NewTree(points, values).Nearest(query)
		require.NoError(t, err)
		assert.Equal(t, first, res)
	}
}

func TestTreeIgnoresLaterInputMutation(t *testing.T) {
	points := []geometry.Point{geometry.NewPoint(1, 1, 1)}
	values := []float64{5}
	tree := NewTree(points, values)

	points[0] = geometry.NewPoint(100, 100, 100)
	values[0] = -1

	res, err := tree.Nearest(geometry.NewPoint(1, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, geometry.NewPoint(1, 1, 1), res.Point)
	assert.Equal(t, 5.0, res.Value)
}
