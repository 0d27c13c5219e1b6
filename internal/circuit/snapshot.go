package circuit

import (
	"errors"
	"fmt"
	"math"
)

// Load-count limits for series and parallel circuits.
const (
	MinMultiLoads = 2
	MaxLoads      = 5
)

var (
	// ErrLoadCount is returned when a snapshot has the wrong number of loads
	// for its topology.
	ErrLoadCount = errors.New("invalid load count")

	// ErrVoltage is returned for a negative or non-finite source voltage.
	ErrVoltage = errors.New("invalid source voltage")
)

// LoadRange returns the allowed number of loads for a topology.
func LoadRange(t Topology) (lo, hi int) {
	if t == TopologySimple {
		return 1, 1
	}
	return MinMultiLoads, MaxLoads
}

// Validate reports whether the snapshot is a circuit the tutor can present.
// Solve accepts any snapshot; Validate guards the input surfaces.
func (s Snapshot) Validate() error {
	if math.IsNaN(s.Voltage) || math.IsInf(s.Voltage, 0) || s.Voltage < 0 {
		return fmt.Errorf("%w: %v", ErrVoltage, s.Voltage)
	}
	lo, hi := LoadRange(s.Topology)
	if n := len(s.Loads); n < lo || n > hi {
		if lo == hi {
			return fmt.Errorf("%w: %s circuit needs exactly %d load, got %d", ErrLoadCount, s.Topology, lo, n)
		}
		return fmt.Errorf("%w: %s circuit needs %d-%d loads, got %d", ErrLoadCount, s.Topology, lo, hi, n)
	}
	return nil
}
