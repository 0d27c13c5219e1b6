// Package scenario generates randomized quiz circuits. Draws are biased
// toward pedagogically useful fault combinations: at most one short, and
// never a parallel circuit that cannot carry current.
package scenario

import "github.com/abhisek/ohmlab/internal/circuit"

// Rand is the randomness a Generator needs. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Weights are the cumulative thresholds used for the random draws.
// They are tuned constants and must not be re-derived.
var Weights = struct {
	// Topology: u < Simple → simple, u < Series → series, else parallel.
	Simple, Series float64

	// Fault: u < Normal → normal, u < High → high; parallel continues with
	// u < Open → open, else short. Series and simple use short for the tail.
	Normal, High, Open float64
}{
	Simple: 0.25,
	Series: 0.60,
	Normal: 0.72,
	High:   0.87,
	Open:   0.94,
}

const (
	// Voltage is the source voltage of every generated scenario.
	Voltage = 12.0

	resistanceStep  = 0.5
	resistanceSteps = 49 // 1, 1.5, ... 25
)

// Generator produces quiz scenarios.
type Generator struct {
	rng Rand
}

// New creates a Generator drawing from rng.
func New(rng Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate returns a fresh random circuit with the switch closed.
func (g *Generator) Generate() circuit.Snapshot {
	topo := g.topology()

	n := 1
	if topo != circuit.TopologySimple {
		n = circuit.MinMultiLoads + g.rng.Intn(circuit.MaxLoads-circuit.MinMultiLoads+1)
	}

	loads := make([]circuit.LoadConfig, n)
	shorted := false
	for i := range loads {
		r := circuit.MinResistance + resistanceStep*float64(g.rng.Intn(resistanceSteps))
		f := g.fault(topo)
		if f == circuit.FaultShort {
			if shorted {
				f = circuit.FaultHigh
			}
			shorted = true
		}
		loads[i] = circuit.LoadConfig{R: r, Fault: f}
	}

	if topo == circuit.TopologyParallel && allOpen(loads) {
		loads[0].Fault = circuit.FaultNormal
	}

	return circuit.Snapshot{
		Topology:     topo,
		Voltage:      Voltage,
		SwitchClosed: true,
		Loads:        loads,
	}
}

func (g *Generator) topology() circuit.Topology {
	u := g.rng.Float64()
	switch {
	case u < Weights.Simple:
		return circuit.TopologySimple
	case u < Weights.Series:
		return circuit.TopologySeries
	default:
		return circuit.TopologyParallel
	}
}

func (g *Generator) fault(topo circuit.Topology) circuit.Fault {
	u := g.rng.Float64()
	switch {
	case u < Weights.Normal:
		return circuit.FaultNormal
	case u < Weights.High:
		return circuit.FaultHigh
	case topo != circuit.TopologyParallel:
		return circuit.FaultShort
	case u < Weights.Open:
		return circuit.FaultOpen
	default:
		return circuit.FaultShort
	}
}

func allOpen(loads []circuit.LoadConfig) bool {
	for _, l := range loads {
		if l.Fault != circuit.FaultOpen {
			return false
		}
	}
	return len(loads) > 0
}
