// Package interpolation implements discrete Sibson (natural neighbor)
// interpolation of scattered 3D samples onto a regular grid.
//
// True natural-neighbor interpolation weights samples by relative
// Voronoi-cell overlap, which is expensive at grid resolution. The
// discrete variant substitutes a distance criterion: every grid cell
// looks up its nearest sample, derives an influence radius from that
// distance, and donates the sample's value into every grid cell inside
// its own influence sphere. A final pass divides each cell by the
// number of contributions it received.
package interpolation

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"gonum.org/v1/gonum/floats"

	"github.com/liq07lzucn/natural-neighbor-interpolation/internal/models"
	"github.com/liq07lzucn/natural-neighbor-interpolation/pkg/geometry"
	"github.com/liq07lzucn/natural-neighbor-interpolation/pkg/spatial"
)

// ErrShapeMismatch is returned when the sample slices differ in length
// or the output buffers differ in shape.
var ErrShapeMismatch = errors.New("interpolation: input shapes do not match")

// ProgressCallback receives the number of completed grid rows out of the
// total. It may be invoked from multiple goroutines when Workers > 1.
type ProgressCallback func(completed, total int, message string)

// Options control a single Griddata run.
type Options struct {
	// Workers is the number of goroutines scattering in parallel.
	// Values below 2 select the single-threaded path.
	Workers int

	// Progress, when non-nil, is called as rows of source cells
	// complete.
	Progress ProgressCallback
}

// Griddata interpolates the samples (coords[i], values[i]) onto grid,
// tallying per-cell contribution counts into counts.
//
// Both buffers are owned by the caller and written in place. The engine
// accumulates on top of grid's pre-existing values and never reads
// counts as contribution seeds, so cells that receive no contribution
// keep whatever the caller seeded them with (commonly NaN or a fill
// value) and end with a zero count. An empty sample set and a grid with
// any zero dimension are both valid no-ops.
func Griddata(coords []geometry.Point, values []float64, grid, counts *models.Volume, opts Options) error {
	if len(coords) != len(values) {
		return fmt.Errorf("%w: %d coordinates vs %d values", ErrShapeMismatch, len(coords), len(values))
	}
	if !grid.SameShape(counts) {
		return fmt.Errorf("%w: grid (%d,%d,%d) vs counts (%d,%d,%d)", ErrShapeMismatch,
			grid.Ni, grid.Nj, grid.Nk, counts.Ni, counts.Nj, counts.Nk)
	}
	if grid.Ni == 0 || grid.Nj == 0 || grid.Nk == 0 {
		return nil
	}
	if len(coords) == 0 {
		// No information available: leave the caller-seeded buffers as
		// the result.
		return nil
	}

	tree := spatial.NewTree(coords, values)

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > grid.Ni {
		workers = grid.Ni
	}

	var rowsDone int64
	rowDone := func() {
		if opts.Progress == nil {
			return
		}
		n := atomic.AddInt64(&rowsDone, 1)
		opts.Progress(int(n), grid.Ni, "")
	}

	if workers == 1 {
		if err := scatterRows(tree, grid, counts, 0, grid.Ni, rowDone); err != nil {
			return err
		}
	} else if err := scatterParallel(tree, grid, counts, workers, rowDone); err != nil {
		return err
	}

	normalize(grid, counts)
	return nil
}

// scatterParallel partitions the source cells into contiguous i-slabs,
// one per worker. Each worker scatters into private full-size buffers;
// the partial sums are merged into the caller's buffers only after every
// worker has finished, and normalization runs after the merge, so no
// accumulation write ever races and no divide sees a partial count.
func scatterParallel(tree *spatial.Tree, grid, counts *models.Volume, workers int, rowDone func()) error {
	partials := make([]*models.Volume, workers)
	partialCounts := make([]*models.Volume, workers)
	errs := make([]error, workers)

	rowsPerWorker := (grid.Ni + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * rowsPerWorker
		hi := lo + rowsPerWorker
		if hi > grid.Ni {
			hi = grid.Ni
		}
		if lo >= hi {
			continue
		}

		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			acc := models.NewVolume(grid.Ni, grid.Nj, grid.Nk)
			cnt := models.NewVolume(grid.Ni, grid.Nj, grid.Nk)
			errs[w] = scatterRows(tree, acc, cnt, lo, hi, rowDone)
			partials[w] = acc
			partialCounts[w] = cnt
		}(w, lo, hi)
	}
	wg.Wait()

	for w := 0; w < workers; w++ {
		if errs[w] != nil {
			return errs[w]
		}
		if partials[w] == nil {
			continue
		}
		floats.Add(grid.Data, partials[w].Data)
		floats.Add(counts.Data, partialCounts[w].Data)
	}
	return nil
}

// scatterRows processes source cells (i,j,k) for i in [lo, hi). For each
// source cell it finds the nearest sample at squared distance D² with
// value V, then donates V into every grid cell of the surrounding
// bounding cube whose squared distance back to the source cell is <= D².
// The donation direction is asymmetric on purpose: the source cell's own
// radius decides what it reaches, not the target's.
func scatterRows(tree *spatial.Tree, acc, cnt *models.Volume, lo, hi int, rowDone func()) error {
	ni, nj, nk := acc.Ni, acc.Nj, acc.Nk

	for i := lo; i < hi; i++ {
		for j := 0; j < nj; j++ {
			for k := 0; k < nk; k++ {
				query := geometry.NewPoint(float64(i), float64(j), float64(k))
				nearest, err := tree.Nearest(query)
				if err != nil {
					return err
				}

				r := int(math.Ceil(math.Sqrt(nearest.DistSq)))

				// Bounds are computed in int so i-r can go negative
				// before the clamp instead of wrapping.
				iMin, iMax := clampSpan(i-r, i+r, ni)
				jMin, jMax := clampSpan(j-r, j+r, nj)
				kMin, kMax := clampSpan(k-r, k+r, nk)

				for ii := iMin; ii <= iMax; ii++ {
					di := float64(i - ii)
					for jj := jMin; jj <= jMax; jj++ {
						dj := float64(j - jj)
						row := acc.Index(ii, jj, 0)
						for kk := kMin; kk <= kMax; kk++ {
							dk := float64(k - kk)
							if di*di+dj*dj+dk*dk <= nearest.DistSq {
								acc.Data[row+kk] += nearest.Value
								cnt.Data[row+kk]++
							}
						}
					}
				}
			}
		}
		rowDone()
	}
	return nil
}

// clampSpan clamps the inclusive range [lo, hi] into [0, n-1].
func clampSpan(lo, hi, n int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi > n-1 {
		hi = n - 1
	}
	return lo, hi
}

// normalize divides every cell that received at least one contribution
// by its count. Cells with a zero count keep their seeded value.
func normalize(grid, counts *models.Volume) {
	for idx, c := range counts.Data {
		if c != 0 {
			grid.Data[idx] /= c
		}
	}
}
