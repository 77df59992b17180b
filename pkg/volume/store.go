// Package volume persists interpolated volumes to disk and loads sample
// input for the command line tool. Files are zstd-compressed binary
// with a small little-endian header.
package volume

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/liq07lzucn/natural-neighbor-interpolation/internal/models"
)

// formatVersion is bumped whenever the on-disk layout changes.
const formatVersion uint16 = 1

var magic = [4]byte{'N', 'N', 'V', '1'}

// File bundles an interpolated volume with its contribution counts and
// run metadata for persistence.
type File struct {
	// RunID identifies the interpolation run that produced the volume.
	RunID uuid.UUID

	// Fill is the value seeded into cells that received no contribution.
	Fill float64

	// Grid holds the interpolated values.
	Grid *models.Volume

	// Counts holds the per-cell contribution tallies.
	Counts *models.Volume
}

// SaveCompressed writes f to filename as a zstd-compressed volume file.
func SaveCompressed(filename string, f *File) error {
	if f.Grid == nil || f.Counts == nil || !f.Grid.SameShape(f.Counts) {
		return fmt.Errorf("volume: grid and counts must be present with identical shape")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	bufWriter := bufio.NewWriterSize(file, 1024*1024)
	enc, err := zstd.NewWriter(bufWriter)
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}

	write := func(v any) {
		if err == nil {
			err = binary.Write(enc, binary.LittleEndian, v)
		}
	}

	write(magic)
	write(formatVersion)
	write(f.RunID[:])
	write(uint32(f.Grid.Ni))
	write(uint32(f.Grid.Nj))
	write(uint32(f.Grid.Nk))
	write(f.Fill)
	write(f.Grid.Data)
	write(f.Counts.Data)
	if err != nil {
		enc.Close()
		return fmt.Errorf("failed to write volume: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to close encoder: %w", err)
	}
	if err := bufWriter.Flush(); err != nil {
		return fmt.Errorf("failed to flush buffer: %w", err)
	}
	return nil
}

// LoadCompressed reads a volume file written by SaveCompressed.
func LoadCompressed(filename string) (*File, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	dec, err := zstd.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer dec.Close()

	var gotMagic [4]byte
	if err := binary.Read(dec, binary.LittleEndian, &gotMagic); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if gotMagic != magic {
		return nil, fmt.Errorf("volume: %s is not a volume file", filename)
	}

	var version uint16
	if err := binary.Read(dec, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if version != formatVersion {
		return nil, fmt.Errorf("volume: unsupported format version %d", version)
	}

	f := &File{}
	var ni, nj, nk uint32

	read := func(v any) {
		if err == nil {
			err = binary.Read(dec, binary.LittleEndian, v)
		}
	}

	read(f.RunID[:])
	read(&ni)
	read(&nj)
	read(&nk)
	read(&f.Fill)
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	f.Grid = models.NewVolume(int(ni), int(nj), int(nk))
	f.Counts = models.NewVolume(int(ni), int(nj), int(nk))
	read(f.Grid.Data)
	read(f.Counts.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to read volume data: %w", err)
	}

	return f, nil
}
