package circuit

import (
	"fmt"
	"strings"
)

// Topology is the way loads are wired to the source.
type Topology int

const (
	TopologySimple   Topology = iota // one load across the source
	TopologySeries                   // loads share a single loop
	TopologyParallel                 // each load is its own branch
)

// Topologies lists every topology in display order.
var Topologies = []Topology{TopologySimple, TopologySeries, TopologyParallel}

func (t Topology) String() string {
	switch t {
	case TopologySimple:
		return "simple"
	case TopologySeries:
		return "series"
	case TopologyParallel:
		return "parallel"
	default:
		return fmt.Sprintf("Topology(%d)", int(t))
	}
}

// DisplayName returns a capitalized name for headers and prompts.
func (t Topology) DisplayName() string {
	switch t {
	case TopologySimple:
		return "Simple"
	case TopologySeries:
		return "Series"
	case TopologyParallel:
		return "Parallel"
	default:
		return t.String()
	}
}

// ParseTopology parses a topology name (case-insensitive).
func ParseTopology(s string) (Topology, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simple":
		return TopologySimple, nil
	case "series":
		return TopologySeries, nil
	case "parallel":
		return TopologyParallel, nil
	default:
		return 0, fmt.Errorf("invalid topology %q: must be simple, series or parallel", s)
	}
}

// Fault is the condition of a single load.
type Fault int

const (
	FaultNormal Fault = iota
	FaultHigh         // resistance raised by HighOffset
	FaultOpen         // broken load, infinite resistance
	FaultShort        // bridged load, ShortResistance
)

// Faults lists every fault in cycle order.
var Faults = []Fault{FaultNormal, FaultHigh, FaultOpen, FaultShort}

func (f Fault) String() string {
	switch f {
	case FaultNormal:
		return "normal"
	case FaultHigh:
		return "high"
	case FaultOpen:
		return "open"
	case FaultShort:
		return "short"
	default:
		return fmt.Sprintf("Fault(%d)", int(f))
	}
}

// ParseFault parses a fault name (case-insensitive). The empty string is normal.
func ParseFault(s string) (Fault, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return FaultNormal, nil
	case "high":
		return FaultHigh, nil
	case "open":
		return FaultOpen, nil
	case "short":
		return FaultShort, nil
	default:
		return 0, fmt.Errorf("invalid fault %q: must be normal, high, open or short", s)
	}
}

// Status is the row status shown for a load with this fault on a live circuit.
func (f Fault) Status() string {
	switch f {
	case FaultHigh:
		return StatusHigh
	case FaultOpen:
		return StatusOpen
	case FaultShort:
		return StatusShort
	default:
		return StatusNormal
	}
}

// Description explains the fault to a learner. Normal loads have none.
func (f Fault) Description() string {
	switch f {
	case FaultHigh:
		return fmt.Sprintf("high resistance fault (+%g Ω), less current flows", HighOffset)
	case FaultOpen:
		return "open circuit, no current can pass through this load"
	case FaultShort:
		return fmt.Sprintf("short circuit (~%g Ω), current bypasses the load", ShortResistance)
	default:
		return ""
	}
}

// Next returns the following fault in cycle order.
func (f Fault) Next() Fault {
	return Faults[(int(f)+1)%len(Faults)]
}

// Row statuses.
const (
	StatusNormal     = "Normal"
	StatusHigh       = "High Resistance"
	StatusOpen       = "Open Circuit"
	StatusShort      = "Short Circuit"
	StatusSwitchOpen = "Switch Open"
	StatusNoCurrent  = "No Current"
)

// LoadConfig is one load: the nominal resistance the user picked and its fault.
type LoadConfig struct {
	R     float64
	Fault Fault
}

// Snapshot is a fully specified circuit frozen at a point in time.
type Snapshot struct {
	Topology     Topology
	Voltage      float64
	SwitchClosed bool
	Loads        []LoadConfig
}

// Clone returns a deep copy so later edits to the source do not leak in.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Loads = append([]LoadConfig(nil), s.Loads...)
	return out
}

// Row is the solved state of one load.
type Row struct {
	Label  string
	V      float64
	I      float64
	R      float64
	P      float64
	Status string
}

// Result is the solved state of a Snapshot.
type Result struct {
	TotalR float64
	TotalI float64
	TotalP float64

	Rows []Row

	// Notes are human-readable fault explanations in load order.
	Notes []string

	// HasFlow is true when the circuit is meaningfully energized.
	HasFlow bool

	// BranchCurrents is populated for parallel circuits only.
	BranchCurrents []float64

	// Powers holds per-load power in load order.
	Powers []float64
}

// LoadLabel returns the display label of the i-th load (0-based).
func LoadLabel(i int) string {
	return fmt.Sprintf("R%d", i+1)
}
