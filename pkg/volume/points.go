package volume

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/liq07lzucn/natural-neighbor-interpolation/pkg/geometry"
)

// LoadSamples reads sample points from a CSV file with one x,y,z,value
// row per sample. A first row that does not parse as numbers is treated
// as a header and skipped.
func LoadSamples(filename string) ([]geometry.Point, []float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open samples file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 4
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse samples file: %w", err)
	}

	points := make([]geometry.Point, 0, len(records))
	values := make([]float64, 0, len(records))

	for row, record := range records {
		fields, err := parseRow(record)
		if err != nil {
			if row == 0 {
				// Header row.
				continue
			}
			return nil, nil, fmt.Errorf("samples row %d: %w", row+1, err)
		}
		points = append(points, geometry.NewPoint(fields[0], fields[1], fields[2]))
		values = append(values, fields[3])
	}

	return points, values, nil
}

func parseRow(record []string) ([4]float64, error) {
	var fields [4]float64
	for i, s := range record {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fields, fmt.Errorf("field %q is not a number", s)
		}
		fields[i] = v
	}
	return fields, nil
}
