package session

import (
	"testing"

	"github.com/abhisek/ohmlab/internal/circuit"
)

func TestNewWorkbench(t *testing.T) {
	w := NewWorkbench(12)
	snap := w.Snapshot()

	if snap.Topology != circuit.TopologySimple || !snap.SwitchClosed || snap.Voltage != 12 {
		t.Errorf("unexpected initial circuit: %+v", snap)
	}
	if len(snap.Loads) != 1 || snap.Loads[0].R != DefaultLoadR {
		t.Errorf("loads = %+v, want one %v Ω load", snap.Loads, DefaultLoadR)
	}
	if err := snap.Validate(); err != nil {
		t.Errorf("initial snapshot invalid: %v", err)
	}
}

func TestWorkbench_SetTopologyPadsAndTrims(t *testing.T) {
	w := NewWorkbench(12)

	w.SetTopology(circuit.TopologySeries)
	if n := len(w.Loads()); n != 2 {
		t.Fatalf("series load count = %d, want 2", n)
	}

	w.AddLoad()
	w.AddLoad()
	w.SetTopology(circuit.TopologySimple)
	if n := len(w.Loads()); n != 1 {
		t.Errorf("simple load count = %d, want 1", n)
	}
	if w.Selected() != 0 {
		t.Errorf("selection = %d, want 0 after trimming", w.Selected())
	}
}

func TestWorkbench_CycleTopology(t *testing.T) {
	w := NewWorkbench(12)
	want := []circuit.Topology{circuit.TopologySeries, circuit.TopologyParallel, circuit.TopologySimple}
	for _, topo := range want {
		w.CycleTopology()
		if w.Topology() != topo {
			t.Errorf("topology = %s, want %s", w.Topology(), topo)
		}
		if err := w.Snapshot().Validate(); err != nil {
			t.Errorf("%s: %v", topo, err)
		}
	}
}

func TestWorkbench_LoadLimits(t *testing.T) {
	w := NewWorkbench(12)
	if w.AddLoad() {
		t.Error("simple circuit should not accept a second load")
	}

	w.SetTopology(circuit.TopologyParallel)
	for i := 0; i < 3; i++ {
		if !w.AddLoad() {
			t.Fatalf("add %d rejected", i)
		}
	}
	if w.AddLoad() {
		t.Error("expected sixth load to be rejected")
	}

	for i := 0; i < 3; i++ {
		if !w.RemoveLoad() {
			t.Fatalf("remove %d rejected", i)
		}
	}
	if w.RemoveLoad() {
		t.Error("expected removal below two loads to be rejected")
	}
}

func TestWorkbench_RemoveSelected(t *testing.T) {
	w := NewWorkbench(12)
	w.SetTopology(circuit.TopologySeries)
	w.AddLoad() // selects the new third load

	w.Select(1) // wraps to the first
	w.SetResistance(9)
	w.Select(1)
	w.RemoveLoad()

	loads := w.Loads()
	if len(loads) != 2 || loads[0].R != 9 {
		t.Errorf("loads = %+v, want first load kept at 9 Ω", loads)
	}
	if w.Selected() != 1 {
		t.Errorf("selection = %d, want 1", w.Selected())
	}
}

func TestWorkbench_Clamping(t *testing.T) {
	w := NewWorkbench(100)
	if w.Voltage() != MaxVoltage {
		t.Errorf("voltage = %v, want %v", w.Voltage(), MaxVoltage)
	}
	w.SetVoltage(-4)
	if w.Voltage() != MinVoltage {
		t.Errorf("voltage = %v, want %v", w.Voltage(), MinVoltage)
	}

	w.SetResistance(0)
	if r := w.Loads()[0].R; r != circuit.MinResistance {
		t.Errorf("R = %v, want %v", r, circuit.MinResistance)
	}
	w.AdjustResistance(200)
	if r := w.Loads()[0].R; r != circuit.MaxResistance {
		t.Errorf("R = %v, want %v", r, circuit.MaxResistance)
	}
	w.AdjustResistance(-3)
	if r := w.Loads()[0].R; r != 23.5 {
		t.Errorf("R = %v, want 23.5", r)
	}
}

func TestWorkbench_FaultAndSwitch(t *testing.T) {
	w := NewWorkbench(12)
	w.CycleFault()
	if f := w.Loads()[0].Fault; f != circuit.FaultHigh {
		t.Errorf("fault = %s, want high", f)
	}
	if res := w.Solve(); res.TotalR != 11 {
		t.Errorf("TotalR = %v, want 11", res.TotalR)
	}

	w.ToggleSwitch()
	if w.SwitchClosed() {
		t.Error("expected switch open")
	}
	if res := w.Solve(); res.TotalI != 0 {
		t.Errorf("TotalI = %v with switch open", res.TotalI)
	}
}

func TestWorkbench_SnapshotIsFrozen(t *testing.T) {
	w := NewWorkbench(12)
	snap := w.Snapshot()
	w.SetResistance(20)
	if snap.Loads[0].R != DefaultLoadR {
		t.Errorf("snapshot changed after edit: %v", snap.Loads[0].R)
	}
}

func TestWorkbench_Load(t *testing.T) {
	w := NewWorkbench(12)
	w.Load(circuit.Snapshot{
		Topology:     circuit.TopologyParallel,
		Voltage:      9,
		SwitchClosed: true,
		Loads:        []circuit.LoadConfig{{R: 3, Fault: circuit.FaultShort}, {R: 40}},
	})

	snap := w.Snapshot()
	if snap.Topology != circuit.TopologyParallel || snap.Voltage != 9 {
		t.Errorf("unexpected circuit: %+v", snap)
	}
	if snap.Loads[1].R != circuit.MaxResistance {
		t.Errorf("loaded resistance not clamped: %v", snap.Loads[1].R)
	}
	if snap.Loads[0].Fault != circuit.FaultShort {
		t.Errorf("fault = %s, want short", snap.Loads[0].Fault)
	}
}
