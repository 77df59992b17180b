package models

// Volume is a dense 3D scalar grid stored as a 1D array in row-major
// order with strides (Nj*Nk, Nk, 1): cell (i,j,k) lives at
// Data[(i*Nj+j)*Nk + k].
type Volume struct {
	// Data is the grid data as a 1D array in row-major order
	Data []float64

	// Ni, Nj, Nk are the grid dimensions in cells
	Ni, Nj, Nk int
}

// NewVolume allocates a zeroed volume with the given dimensions.
func NewVolume(ni, nj, nk int) *Volume {
	return &Volume{
		Data: make([]float64, ni*nj*nk),
		Ni:   ni,
		Nj:   nj,
		Nk:   nk,
	}
}

// Index returns the flat Data index of cell (i,j,k).
func (v *Volume) Index(i, j, k int) int {
	return (i*v.Nj+j)*v.Nk + k
}

// At returns the value at cell (i,j,k).
func (v *Volume) At(i, j, k int) float64 {
	return v.Data[v.Index(i, j, k)]
}

// Set stores val at cell (i,j,k).
func (v *Volume) Set(i, j, k int, val float64) {
	v.Data[v.Index(i, j, k)] = val
}

// Fill sets every cell to val.
func (v *Volume) Fill(val float64) {
	for i := range v.Data {
		v.Data[i] = val
	}
}

// Len returns the number of cells.
func (v *Volume) Len() int {
	return v.Ni * v.Nj * v.Nk
}

// SameShape reports whether o has identical dimensions.
func (v *Volume) SameShape(o *Volume) bool {
	return v.Ni == o.Ni && v.Nj == o.Nj && v.Nk == o.Nk
}
