// Package spatial implements a static kd-tree over 3D sample points for
// nearest-neighbor queries. The tree is built once from the full point
// set and is read-only afterwards.
package spatial

import (
	"errors"
	"math"
	"sort"

	"github.com/liq07lzucn/natural-neighbor-interpolation/pkg/geometry"
)

// ErrNoData is returned by Nearest when the index holds no points.
var ErrNoData = errors.New("spatial: index holds no points")

// node is one entry in the tree arena. left and right are indices into
// Tree.nodes, -1 when the child is absent. pointIdx refers to the
// original position in the input slices, so values stay aligned with
// their points without being moved during the build.
type node struct {
	pointIdx int32
	left     int32
	right    int32
	axis     uint8
}

// Tree is a balanced kd-tree associating each point with a scalar value.
type Tree struct {
	nodes  []node
	points []geometry.Point
	values []float64
	root   int32
}

// Result holds the outcome of a nearest-neighbor query.
type Result struct {
	// Point is the nearest sample position.
	Point geometry.Point

	// Value is the scalar carried by that sample.
	Value float64

	// DistSq is the squared Euclidean distance from the query to Point.
	DistSq float64
}

// NewTree builds a kd-tree over points, where values[i] is the sample
// value at points[i]. Both slices are copied so the caller may reuse
// them. An empty input yields an empty tree whose queries return
// ErrNoData.
func NewTree(points []geometry.Point, values []float64) *Tree {
	t := &Tree{
		nodes:  make([]node, 0, len(points)),
		points: make([]geometry.Point, len(points)),
		values: make([]float64, len(values)),
		root:   -1,
	}
	copy(t.points, points)
	copy(t.values, values)

	if len(points) > 0 {
		order := make([]int32, len(points))
		for i := range order {
			order[i] = int32(i)
		}
		t.root = t.build(order, 0)
	}
	return t
}

// build recursively partitions the index subrange around its median
// along the splitting axis, which cycles with depth. Points left of the
// median have axis coordinate <= the median's, points right of it >=.
func (t *Tree) build(order []int32, depth int) int32 {
	if len(order) == 0 {
		return -1
	}

	axis := depth % 3
	sort.Slice(order, func(a, b int) bool {
		return t.points[order[a]].Coord(axis) < t.points[order[b]].Coord(axis)
	})
	median := len(order) / 2

	idx := int32(len(t.nodes))
	t.nodes = append(t.nodes, node{
		pointIdx: order[median],
		left:     -1,
		right:    -1,
		axis:     uint8(axis),
	})

	left := t.build(order[:median], depth+1)
	right := t.build(order[median+1:], depth+1)
	t.nodes[idx].left = left
	t.nodes[idx].right = right
	return idx
}

// Len returns the number of points in the tree.
func (t *Tree) Len() int {
	return len(t.points)
}

// Nearest returns the sample point minimizing the squared Euclidean
// distance to q, together with its value and that squared distance.
// On equal distances the first point found by the traversal wins, which
// is deterministic for a given input order. Returns ErrNoData when the
// tree is empty.
func (t *Tree) Nearest(q geometry.Point) (Result, error) {
	if t.root < 0 {
		return Result{}, ErrNoData
	}
	best := Result{DistSq: math.Inf(1)}
	t.search(t.root, q, &best)
	return best, nil
}

func (t *Tree) search(idx int32, q geometry.Point, best *Result) {
	n := &t.nodes[idx]
	p := t.points[n.pointIdx]

	if d := q.SquaredDistanceTo(p); d < best.DistSq {
		best.Point = p
		best.Value = t.values[n.pointIdx]
		best.DistSq = d
	}

	delta := q.Coord(int(n.axis)) - p.Coord(int(n.axis))
	near, far := n.left, n.right
	if delta > 0 {
		near, far = n.right, n.left
	}

	if near >= 0 {
		t.search(near, q, best)
	}
	// The far subtree can only hold a closer point when the splitting
	// plane itself is closer than the current best.
	if far >= 0 && delta*delta < best.DistSq {
		t.search(far, q, best)
	}
}
