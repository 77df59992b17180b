package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/liq07lzucn/natural-neighbor-interpolation/internal/models"
	"github.com/liq07lzucn/natural-neighbor-interpolation/pkg/config"
	"github.com/liq07lzucn/natural-neighbor-interpolation/pkg/interpolation"
	"github.com/liq07lzucn/natural-neighbor-interpolation/pkg/visualization"
	"github.com/liq07lzucn/natural-neighbor-interpolation/pkg/volume"
)

func main() {
	// Parse command line arguments
	inputPath := flag.String("input", "", "CSV file of samples, one x,y,z,value row per sample")
	outputPath := flag.String("output", "output.nnv", "Output volume filename")
	configPath := flag.String("config", "config.yaml", "YAML configuration file")
	ni := flag.Int("ni", 0, "Grid cells along i (overrides config)")
	nj := flag.Int("nj", 0, "Grid cells along j (overrides config)")
	nk := flag.Int("nk", 0, "Grid cells along k (overrides config)")
	fill := flag.Float64("fill", 0, "Value for cells no sample reaches (overrides config; NaN is accepted)")
	workers := flag.Int("workers", 0, "Scatter goroutines, 1 for single-threaded (overrides config)")
	extractSlices := flag.Bool("extract-slices", false, "Export PNG slices of the result along all axes")
	slicesDir := flag.String("slices-dir", "", "Directory for exported slices (overrides config)")
	flag.Parse()

	if *inputPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	applyFlagOverrides(cfg, ni, nj, nk, fill, workers, extractSlices, slicesDir)

	points, values, err := volume.LoadSamples(*inputPath)
	if err != nil {
		log.Fatalf("Failed to load samples: %v", err)
	}

	if cfg.Output.Verbose {
		fmt.Printf("Loaded %d samples from %s\n", len(points), *inputPath)
		fmt.Printf("Interpolating onto a %d x %d x %d grid with %d workers...\n",
			cfg.Grid.Ni, cfg.Grid.Nj, cfg.Grid.Nk, cfg.Processing.NumWorkers)
	}

	grid := models.NewVolume(cfg.Grid.Ni, cfg.Grid.Nj, cfg.Grid.Nk)
	counts := models.NewVolume(cfg.Grid.Ni, cfg.Grid.Nj, cfg.Grid.Nk)

	opts := interpolation.Options{Workers: cfg.Processing.NumWorkers}
	if cfg.Output.Verbose {
		opts.Progress = printProgress
	}

	startTime := time.Now()
	if err := interpolation.Griddata(points, values, grid, counts, opts); err != nil {
		log.Fatalf("Interpolation failed: %v", err)
	}
	elapsed := time.Since(startTime)

	// Cells no sample reached keep the configured fill value.
	for idx, c := range counts.Data {
		if c == 0 {
			grid.Data[idx] = cfg.Grid.FillValue
		}
	}

	runID := uuid.New()
	out := &volume.File{
		RunID:  runID,
		Fill:   cfg.Grid.FillValue,
		Grid:   grid,
		Counts: counts,
	}
	if err := volume.SaveCompressed(*outputPath, out); err != nil {
		log.Fatalf("Failed to save volume: %v", err)
	}

	if cfg.Output.Verbose {
		fmt.Printf("\nInterpolation completed in %.2f seconds\n", elapsed.Seconds())
		fmt.Printf("Run %s saved to %s\n", runID, *outputPath)
		printSummary(grid, counts)
	}

	if cfg.Output.SaveSlices {
		if cfg.Output.Verbose {
			fmt.Printf("Exporting slices to %s\n", cfg.Output.SliceDir)
		}
		viewer := visualization.NewViewer(grid)
		for _, axis := range []string{"i", "j", "k"} {
			if err := viewer.SaveSliceSequence(axis, cfg.Output.SliceDir); err != nil {
				log.Printf("Warning: failed to save %s-axis slices: %v", axis, err)
			}
		}
	}
}

// applyFlagOverrides copies explicitly set flags over the loaded config.
func applyFlagOverrides(cfg *config.Config, ni, nj, nk *int, fill *float64, workers *int, extractSlices *bool, slicesDir *string) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "ni":
			cfg.Grid.Ni = *ni
		case "nj":
			cfg.Grid.Nj = *nj
		case "nk":
			cfg.Grid.Nk = *nk
		case "fill":
			cfg.Grid.FillValue = *fill
		case "workers":
			cfg.Processing.NumWorkers = *workers
		case "extract-slices":
			cfg.Output.SaveSlices = *extractSlices
		case "slices-dir":
			cfg.Output.SliceDir = *slicesDir
		}
	})
}

func printProgress(completed, total int, message string) {
	if message != "" {
		fmt.Println(message)
		return
	}
	if total > 0 {
		fmt.Printf("\rProgress: %.1f%% (%d/%d rows)", float64(completed)/float64(total)*100, completed, total)
		if completed >= total {
			fmt.Println()
		}
	}
}

// printSummary reports statistics over the cells that received at least
// one contribution.
func printSummary(grid, counts *models.Volume) {
	interpolated := make([]float64, 0, grid.Len())
	for idx, c := range counts.Data {
		if c != 0 {
			interpolated = append(interpolated, grid.Data[idx])
		}
	}

	fmt.Printf("Cells interpolated: %d of %d\n", len(interpolated), grid.Len())
	if len(interpolated) == 0 {
		return
	}

	fmt.Printf("Value range: [%.6g, %.6g], mean %.6g\n",
		floats.Min(interpolated), floats.Max(interpolated), stat.Mean(interpolated, nil))
}
