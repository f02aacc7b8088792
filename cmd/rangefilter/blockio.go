package main

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/mat"
)

// componentsPerSample is I and Q
const componentsPerSample = 2

func checkFormat(format string) error {
	switch format {
	case formatCpxFloat32, formatCpxInt16:
		return nil
	default:
		return fmt.Errorf("unknown sample format %q (want %s or %s)", format, formatCpxFloat32, formatCpxInt16)
	}
}

// readBlock reads lines x pixels complex samples, row-major, as
// little-endian interleaved I/Q in the given format.
func readBlock(r io.Reader, lines, pixels int, format string) (*mat.CDense, error) {
	if lines < 1 || pixels < 1 {
		return nil, fmt.Errorf("block size must be positive: %dx%d", lines, pixels)
	}
	if err := checkFormat(format); err != nil {
		return nil, err
	}

	n := lines * pixels
	data := make([]complex128, n)

	switch format {
	case formatCpxFloat32:
		raw := make([]float32, componentsPerSample*n)
		if err := binary.Read(r, binary.LittleEndian, raw); err != nil {
			return nil, blockReadError(lines, pixels, err)
		}
		for i := range data {
			data[i] = complex(float64(raw[2*i]), float64(raw[2*i+1]))
		}
	case formatCpxInt16:
		raw := make([]int16, componentsPerSample*n)
		if err := binary.Read(r, binary.LittleEndian, raw); err != nil {
			return nil, blockReadError(lines, pixels, err)
		}
		for i := range data {
			data[i] = complex(float64(raw[2*i]), float64(raw[2*i+1]))
		}
	}

	return mat.NewCDense(lines, pixels, data), nil
}

func blockReadError(lines, pixels int, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("input shorter than a %dx%d block: %w", lines, pixels, err)
	}
	return fmt.Errorf("reading %dx%d block: %w", lines, pixels, err)
}

// writeBlock writes m row-major as little-endian interleaved complex64.
func writeBlock(w io.Writer, m *mat.CDense) error {
	rows, cols := m.Dims()
	raw := make([]float32, 0, componentsPerSample*rows*cols)
	for i := range rows {
		for j := range cols {
			v := m.At(i, j)
			raw = append(raw, float32(real(v)), float32(imag(v)))
		}
	}
	return binary.Write(w, binary.LittleEndian, raw)
}

func readBlockFile(path string, lines, pixels int, format string) (*mat.CDense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	m, err := readBlock(bufio.NewReader(f), lines, pixels, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func writeBlockFile(path string, m *mat.CDense) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	w := bufio.NewWriter(f)
	if err := writeBlock(w, m); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return w.Flush()
}
