package session

import (
	"math"

	"github.com/abhisek/ohmlab/internal/circuit"
)

// Workbench voltage limits and step sizes.
const (
	MinVoltage     = 1.0
	MaxVoltage     = 24.0
	VoltageStep    = 1.0
	ResistanceStep = 0.5
	DefaultLoadR   = 6.0
	DefaultVoltage = 12.0
)

// Workbench is the live circuit the learner edits in demo and practice mode.
// Edits keep it valid: load counts and values stay within range.
type Workbench struct {
	topology     circuit.Topology
	voltage      float64
	switchClosed bool
	loads        []circuit.LoadConfig
	selected     int
}

// NewWorkbench returns a closed simple circuit with one load.
func NewWorkbench(voltage float64) *Workbench {
	w := &Workbench{
		topology:     circuit.TopologySimple,
		switchClosed: true,
		loads:        []circuit.LoadConfig{{R: DefaultLoadR}},
	}
	w.SetVoltage(voltage)
	return w
}

// Topology returns the current wiring.
func (w *Workbench) Topology() circuit.Topology { return w.topology }

// Voltage returns the source voltage.
func (w *Workbench) Voltage() float64 { return w.voltage }

// SwitchClosed reports whether the switch is closed.
func (w *Workbench) SwitchClosed() bool { return w.switchClosed }

// Loads returns a copy of the loads.
func (w *Workbench) Loads() []circuit.LoadConfig {
	return append([]circuit.LoadConfig(nil), w.loads...)
}

// Selected returns the index of the load being edited.
func (w *Workbench) Selected() int { return w.selected }

// SetTopology rewires the circuit. Simple keeps only the first load; series
// and parallel are padded to the minimum load count.
func (w *Workbench) SetTopology(t circuit.Topology) {
	w.topology = t
	lo, hi := circuit.LoadRange(t)
	for len(w.loads) < lo {
		w.loads = append(w.loads, circuit.LoadConfig{R: DefaultLoadR})
	}
	if len(w.loads) > hi {
		w.loads = w.loads[:hi]
	}
	w.clampSelection()
}

// CycleTopology moves to the next topology in display order.
func (w *Workbench) CycleTopology() {
	next := circuit.Topologies[(int(w.topology)+1)%len(circuit.Topologies)]
	w.SetTopology(next)
}

// SetVoltage sets the source voltage, clamped to [MinVoltage, MaxVoltage].
func (w *Workbench) SetVoltage(v float64) {
	if math.IsNaN(v) {
		v = DefaultVoltage
	}
	w.voltage = math.Max(MinVoltage, math.Min(MaxVoltage, v))
}

// ToggleSwitch opens a closed switch and closes an open one.
func (w *Workbench) ToggleSwitch() {
	w.switchClosed = !w.switchClosed
}

// AddLoad appends a default load. It reports false when the topology is
// already at its maximum.
func (w *Workbench) AddLoad() bool {
	_, hi := circuit.LoadRange(w.topology)
	if len(w.loads) >= hi {
		return false
	}
	w.loads = append(w.loads, circuit.LoadConfig{R: DefaultLoadR})
	w.selected = len(w.loads) - 1
	return true
}

// RemoveLoad drops the selected load. It reports false when the topology is
// already at its minimum.
func (w *Workbench) RemoveLoad() bool {
	lo, _ := circuit.LoadRange(w.topology)
	if len(w.loads) <= lo {
		return false
	}
	w.loads = append(w.loads[:w.selected], w.loads[w.selected+1:]...)
	w.clampSelection()
	return true
}

// Select moves the edit cursor by delta, wrapping around.
func (w *Workbench) Select(delta int) {
	n := len(w.loads)
	w.selected = ((w.selected+delta)%n + n) % n
}

// SetResistance sets the nominal resistance of the selected load, clamped
// to the allowed range.
func (w *Workbench) SetResistance(r float64) {
	w.loads[w.selected].R = circuit.ClampResistance(r)
}

// AdjustResistance changes the selected load by steps of ResistanceStep.
func (w *Workbench) AdjustResistance(steps int) {
	w.SetResistance(w.loads[w.selected].R + float64(steps)*ResistanceStep)
}

// CycleFault moves the selected load to its next fault.
func (w *Workbench) CycleFault() {
	w.loads[w.selected].Fault = w.loads[w.selected].Fault.Next()
}

// Load replaces the whole circuit, e.g. with a generated scenario.
func (w *Workbench) Load(s circuit.Snapshot) {
	w.topology = s.Topology
	w.switchClosed = s.SwitchClosed
	w.SetVoltage(s.Voltage)
	w.loads = w.loads[:0]
	for _, l := range s.Loads {
		w.loads = append(w.loads, circuit.LoadConfig{R: circuit.ClampResistance(l.R), Fault: l.Fault})
	}
	w.SetTopology(s.Topology)
	w.selected = 0
}

// Snapshot freezes the current circuit.
func (w *Workbench) Snapshot() circuit.Snapshot {
	return circuit.Snapshot{
		Topology:     w.topology,
		Voltage:      w.voltage,
		SwitchClosed: w.switchClosed,
		Loads:        w.Loads(),
	}
}

// Solve solves the current circuit.
func (w *Workbench) Solve() circuit.Result {
	return circuit.Solve(w.Snapshot())
}

func (w *Workbench) clampSelection() {
	if w.selected >= len(w.loads) {
		w.selected = len(w.loads) - 1
	}
	if w.selected < 0 {
		w.selected = 0
	}
}
