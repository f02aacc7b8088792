package rangefilter

import (
	"fmt"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// NewERSConfig returns the default configuration for ERS-1/2 data.
func NewERSConfig() *Config {
	cfg := GetPresetConfig(SensorERS)
	return &cfg
}

// NewEnvisatConfig returns the default configuration for Envisat ASAR data.
func NewEnvisatConfig() *Config {
	cfg := GetPresetConfig(SensorEnvisat)
	return &cfg
}

// NewBlock copies rows of equal length into a complex block.
func NewBlock(rows [][]complex128) (*mat.CDense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty block", ErrInvalidParameter)
	}

	cols := len(rows[0])
	data := make([]complex128, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d pixels, expected %d", ErrInvalidParameter, i, len(row), cols)
		}
		data = append(data, row...)
	}
	return mat.NewCDense(len(rows), cols, data), nil
}

// BlockRows copies a complex block into one slice per line.
func BlockRows(m *mat.CDense) [][]complex128 {
	rows, cols := m.Dims()
	out := make([][]complex128, rows)
	for i := range rows {
		out[i] = make([]complex128, cols)
		for j := range cols {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}

// FilterRows is FilterBlock for blocks held as slices of lines. The input
// rows are not modified.
func FilterRows(master, slave [][]complex128, cfg *Config) (masterOut, slaveOut [][]complex128, result *Result, err error) {
	m, err := NewBlock(master)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("master: %w", err)
	}
	s, err := NewBlock(slave)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("slave: %w", err)
	}

	result, err = FilterBlock(m, s, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return BlockRows(m), BlockRows(s), result, nil
}

// BlockPair is one master/slave block pair.
type BlockPair struct {
	Master *mat.CDense
	Slave  *mat.CDense
}

// FilterBlocks filters independent block pairs with one configuration.
// When parallel is true the pairs are filtered concurrently, one goroutine
// per pair. Results are returned in input order; on error the blocks of
// other pairs may already be filtered.
func FilterBlocks(pairs []BlockPair, cfg *Config, parallel bool) ([]*Result, error) {
	results := make([]*Result, len(pairs))

	if !parallel || len(pairs) <= 1 {
		for i, p := range pairs {
			r, err := FilterBlock(p.Master, p.Slave, cfg)
			if err != nil {
				return nil, fmt.Errorf("block %d: %w", i, err)
			}
			results[i] = r
		}
		return results, nil
	}

	g := new(errgroup.Group)
	for i := range pairs {
		g.Go(func() error {
			r, err := FilterBlock(pairs[i].Master, pairs[i].Slave, cfg)
			if err != nil {
				return fmt.Errorf("block %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
