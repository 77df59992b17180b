// Package visualization exports grayscale slice images of interpolated
// volumes for visual inspection.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/liq07lzucn/natural-neighbor-interpolation/internal/models"
)

// Viewer renders 2D slices of a 3D volume. Cell values are mapped
// linearly onto the 16-bit gray range using the volume's finite min and
// max; NaN cells render black.
type Viewer struct {
	vol      *models.Volume
	min, max float64
}

// NewViewer creates a viewer for vol.
func NewViewer(vol *models.Volume) *Viewer {
	v := &Viewer{vol: vol, min: math.Inf(1), max: math.Inf(-1)}
	for _, val := range vol.Data {
		if math.IsNaN(val) {
			continue
		}
		if val < v.min {
			v.min = val
		}
		if val > v.max {
			v.max = val
		}
	}
	return v
}

func (v *Viewer) gray(val float64) color.Gray16 {
	if math.IsNaN(val) || v.max <= v.min {
		return color.Gray16{}
	}
	scaled := (val - v.min) / (v.max - v.min) * 65535
	return color.Gray16{Y: uint16(math.Max(0, math.Min(65535, scaled)))}
}

// ExtractSlice extracts the 2D slice at the given position along the
// specified axis ("i", "j" or "k").
func (v *Viewer) ExtractSlice(axis string, position int) (image.Image, error) {
	if position < 0 {
		return nil, fmt.Errorf("position must be non-negative")
	}

	vol := v.vol
	var img *image.Gray16

	switch axis {
	case "i", "I":
		if position >= vol.Ni {
			return nil, fmt.Errorf("position %d exceeds dimension %d", position, vol.Ni)
		}
		img = image.NewGray16(image.Rect(0, 0, vol.Nk, vol.Nj))
		for j := 0; j < vol.Nj; j++ {
			for k := 0; k < vol.Nk; k++ {
				img.SetGray16(k, j, v.gray(vol.At(position, j, k)))
			}
		}

	case "j", "J":
		if position >= vol.Nj {
			return nil, fmt.Errorf("position %d exceeds dimension %d", position, vol.Nj)
		}
		img = image.NewGray16(image.Rect(0, 0, vol.Nk, vol.Ni))
		for i := 0; i < vol.Ni; i++ {
			for k := 0; k < vol.Nk; k++ {
				img.SetGray16(k, i, v.gray(vol.At(i, position, k)))
			}
		}

	case "k", "K":
		if position >= vol.Nk {
			return nil, fmt.Errorf("position %d exceeds dimension %d", position, vol.Nk)
		}
		img = image.NewGray16(image.Rect(0, 0, vol.Nj, vol.Ni))
		for i := 0; i < vol.Ni; i++ {
			for j := 0; j < vol.Nj; j++ {
				img.SetGray16(j, i, v.gray(vol.At(i, j, position)))
			}
		}

	default:
		return nil, fmt.Errorf("invalid axis: %s (must be i, j, or k)", axis)
	}

	return img, nil
}

// SaveSlice saves an extracted slice as a PNG image.
func (v *Viewer) SaveSlice(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// SaveSliceSequence extracts and saves every slice along the specified
// axis into outputDir.
func (v *Viewer) SaveSliceSequence(axis string, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	var maxPos int
	switch axis {
	case "i", "I":
		maxPos = v.vol.Ni
	case "j", "J":
		maxPos = v.vol.Nj
	case "k", "K":
		maxPos = v.vol.Nk
	default:
		return fmt.Errorf("invalid axis: %s (must be i, j, or k)", axis)
	}

	for pos := 0; pos < maxPos; pos++ {
		img, err := v.ExtractSlice(axis, pos)
		if err != nil {
			return err
		}

		filename := filepath.Join(outputDir, fmt.Sprintf("slice_%s_%03d.png", axis, pos))
		if err := v.SaveSlice(img, filename); err != nil {
			return err
		}
	}

	return nil
}
