package scenario

import (
	"math/rand"
	"testing"

	"github.com/abhisek/ohmlab/internal/circuit"
)

// scriptedRand replays fixed Float64 and Intn sequences.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func TestGenerate_Topology(t *testing.T) {
	tests := []struct {
		u    float64
		want circuit.Topology
	}{
		{0, circuit.TopologySimple},
		{0.2499, circuit.TopologySimple},
		{0.25, circuit.TopologySeries},
		{0.5999, circuit.TopologySeries},
		{0.60, circuit.TopologyParallel},
		{0.9999, circuit.TopologyParallel},
	}

	for _, tc := range tests {
		g := New(&scriptedRand{floats: []float64{tc.u}})
		snap := g.Generate()
		if snap.Topology != tc.want {
			t.Errorf("u=%v: topology = %s, want %s", tc.u, snap.Topology, tc.want)
		}
		if snap.Voltage != 12 || !snap.SwitchClosed {
			t.Errorf("u=%v: expected 12 V with switch closed, got %v V closed=%v", tc.u, snap.Voltage, snap.SwitchClosed)
		}
		if err := snap.Validate(); err != nil {
			t.Errorf("u=%v: generated snapshot invalid: %v", tc.u, err)
		}
	}
}

func TestGenerate_LoadCountAndResistance(t *testing.T) {
	// series, load count 2+3=5, resistances index 0, 1, 48, 10, 20
	g := New(&scriptedRand{
		floats: []float64{0.3},
		ints:   []int{3, 0, 1, 48, 10, 20},
	})
	snap := g.Generate()

	if len(snap.Loads) != 5 {
		t.Fatalf("load count = %d, want 5", len(snap.Loads))
	}
	want := []float64{1, 1.5, 25, 6, 11}
	for i, l := range snap.Loads {
		if l.R != want[i] {
			t.Errorf("load %d R = %v, want %v", i, l.R, want[i])
		}
		if l.Fault != circuit.FaultNormal {
			t.Errorf("load %d fault = %s, want normal", i, l.Fault)
		}
	}
}

func TestGenerate_FaultWeights(t *testing.T) {
	tests := []struct {
		topoU  float64
		faultU float64
		want   circuit.Fault
	}{
		{0.1, 0.71, circuit.FaultNormal},
		{0.1, 0.72, circuit.FaultHigh},
		{0.1, 0.86, circuit.FaultHigh},
		{0.1, 0.87, circuit.FaultShort},
		{0.1, 0.99, circuit.FaultShort},
		{0.4, 0.90, circuit.FaultShort},
		{0.8, 0.87, circuit.FaultOpen},
		{0.8, 0.93, circuit.FaultOpen},
		{0.8, 0.94, circuit.FaultShort},
	}

	for _, tc := range tests {
		// Second load (if any) is normal.
		g := New(&scriptedRand{floats: []float64{tc.topoU, tc.faultU, 0}})
		snap := g.Generate()
		if got := snap.Loads[0].Fault; got != tc.want {
			t.Errorf("topoU=%v faultU=%v: fault = %s, want %s", tc.topoU, tc.faultU, got, tc.want)
		}
	}
}

func TestGenerate_SeriesNeverOpen(t *testing.T) {
	g := New(&scriptedRand{floats: []float64{0.4, 0.90, 0.93}})
	snap := g.Generate()
	for i, l := range snap.Loads {
		if l.Fault == circuit.FaultOpen {
			t.Errorf("series load %d is open", i)
		}
	}
}

func TestGenerate_AtMostOneShort(t *testing.T) {
	// parallel, 4 loads, every fault draw lands on short
	g := New(&scriptedRand{
		floats: []float64{0.9, 0.99, 0.99, 0.99, 0.99},
		ints:   []int{2},
	})
	snap := g.Generate()

	if len(snap.Loads) != 4 {
		t.Fatalf("load count = %d, want 4", len(snap.Loads))
	}
	if snap.Loads[0].Fault != circuit.FaultShort {
		t.Errorf("first load = %s, want short", snap.Loads[0].Fault)
	}
	for i, l := range snap.Loads[1:] {
		if l.Fault != circuit.FaultHigh {
			t.Errorf("load %d = %s, want downgraded to high", i+2, l.Fault)
		}
	}
}

func TestGenerate_ParallelAllOpenFixed(t *testing.T) {
	g := New(&scriptedRand{floats: []float64{0.9, 0.9, 0.9}})
	snap := g.Generate()

	if snap.Loads[0].Fault != circuit.FaultNormal {
		t.Errorf("first branch = %s, want forced back to normal", snap.Loads[0].Fault)
	}
	if snap.Loads[1].Fault != circuit.FaultOpen {
		t.Errorf("second branch = %s, want open", snap.Loads[1].Fault)
	}
	if res := circuit.Solve(snap); !res.HasFlow {
		t.Error("parallel scenario must carry current")
	}
}

func TestGenerate_RandomScenariosAreValid(t *testing.T) {
	g := New(rand.New(rand.NewSource(42)))
	for i := 0; i < 2000; i++ {
		snap := g.Generate()
		if err := snap.Validate(); err != nil {
			t.Fatalf("scenario %d invalid: %v", i, err)
		}

		shorts := 0
		for _, l := range snap.Loads {
			if l.R < circuit.MinResistance || l.R > circuit.MaxResistance {
				t.Fatalf("scenario %d: resistance %v out of range", i, l.R)
			}
			if l.Fault == circuit.FaultShort {
				shorts++
			}
			if l.Fault == circuit.FaultOpen && snap.Topology != circuit.TopologyParallel {
				t.Fatalf("scenario %d: open fault in %s circuit", i, snap.Topology)
			}
		}
		if shorts > 1 {
			t.Fatalf("scenario %d has %d shorts", i, shorts)
		}
		if snap.Topology == circuit.TopologyParallel && !circuit.Solve(snap).HasFlow {
			t.Fatalf("scenario %d: parallel circuit without current", i)
		}
	}
}
