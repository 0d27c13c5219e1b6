package circuit

import (
	"fmt"
	"math"
)

const (
	// MinResistance and MaxResistance bound the nominal resistance of a load.
	MinResistance = 1.0
	MaxResistance = 25.0

	// ShortResistance is the resistance of a shorted load.
	ShortResistance = 0.01

	// HighOffset is added to the nominal resistance of a high-resistance load.
	HighOffset = 5.0

	// FlowThreshold is the total current above which a circuit counts as energized.
	FlowThreshold = 1e-4
)

// Fault notes that are not tied to a single load.
const (
	NoteSeriesOpen    = "Open circuit in series: loop current is ~0 A"
	NoteParallelShort = "Short circuit in a parallel branch: that branch draws a very large current"
)

// ClampResistance limits r to [MinResistance, MaxResistance].
func ClampResistance(r float64) float64 {
	if math.IsNaN(r) {
		return MinResistance
	}
	return math.Max(MinResistance, math.Min(MaxResistance, r))
}

// EffectiveResistance returns the resistance a load presents to the circuit.
// The nominal value is always clamped before the fault is applied.
func EffectiveResistance(r float64, fault Fault) float64 {
	switch fault {
	case FaultShort:
		return ShortResistance
	case FaultOpen:
		return math.Inf(1)
	case FaultHigh:
		return ClampResistance(r) + HighOffset
	default:
		return ClampResistance(r)
	}
}

// Solve computes the full electrical state of a circuit. It never fails:
// impossible quantities are reported as +Inf rather than rejected.
func Solve(s Snapshot) Result {
	loads := s.Loads
	if s.Topology == TopologySimple && len(loads) > 1 {
		loads = loads[:1]
	}

	eff := make([]float64, len(loads))
	for i, l := range loads {
		eff[i] = EffectiveResistance(l.R, l.Fault)
	}

	if !s.SwitchClosed {
		return solveSwitchOpen(loads, eff)
	}

	notes := faultNotes(loads)

	var res Result
	switch s.Topology {
	case TopologySeries:
		res = solveSeries(s.Voltage, loads, eff, notes)
	case TopologyParallel:
		res = solveParallel(s.Voltage, loads, eff, notes)
	default:
		res = solveSimple(s.Voltage, loads, eff, notes)
	}
	res.HasFlow = res.TotalI > FlowThreshold
	return res
}

// faultNotes collects one description per faulted load, in load order.
func faultNotes(loads []LoadConfig) []string {
	var notes []string
	for i, l := range loads {
		if d := l.Fault.Description(); d != "" {
			notes = append(notes, fmt.Sprintf("%s: %s", LoadLabel(i), d))
		}
	}
	return notes
}

func solveSwitchOpen(loads []LoadConfig, eff []float64) Result {
	res := Result{
		TotalR: math.Inf(1),
		Rows:   make([]Row, len(loads)),
		Powers: make([]float64, len(loads)),
	}
	for i := range loads {
		res.Rows[i] = Row{Label: LoadLabel(i), R: eff[i], Status: StatusSwitchOpen}
	}
	return res
}

func solveSimple(v float64, loads []LoadConfig, eff []float64, notes []string) Result {
	res := Result{TotalR: math.Inf(1), Notes: notes}
	if len(loads) == 0 {
		return res
	}

	r := eff[0]
	var i float64
	if !math.IsInf(r, 1) {
		i = v / r
	}
	p := v * i

	res.TotalR = r
	res.TotalI = i
	res.TotalP = p
	res.Rows = []Row{{Label: LoadLabel(0), V: v, I: i, R: r, P: p, Status: loads[0].Fault.Status()}}
	res.Powers = []float64{p}
	return res
}

func solveSeries(v float64, loads []LoadConfig, eff []float64, notes []string) Result {
	res := Result{
		TotalR: math.Inf(1),
		Rows:   make([]Row, len(loads)),
		Powers: make([]float64, len(loads)),
		Notes:  notes,
	}
	if len(loads) == 0 {
		return res
	}

	broken := false
	for _, r := range eff {
		if math.IsInf(r, 1) {
			broken = true
			break
		}
	}

	if broken {
		onlyOpens := true
		for i, l := range loads {
			status := StatusNoCurrent
			if math.IsInf(eff[i], 1) {
				status = StatusOpen
			} else if l.Fault != FaultNormal {
				onlyOpens = false
			}
			res.Rows[i] = Row{Label: LoadLabel(i), R: eff[i], Status: status}
		}
		if onlyOpens {
			res.Notes = append(res.Notes, NoteSeriesOpen)
		}
		return res
	}

	var total float64
	for _, r := range eff {
		total += r
	}
	i := v / total

	var totalP float64
	for k, l := range loads {
		r := eff[k]
		p := i * i * r
		res.Rows[k] = Row{Label: LoadLabel(k), V: i * r, I: i, R: r, P: p, Status: l.Fault.Status()}
		res.Powers[k] = p
		totalP += p
	}

	res.TotalR = total
	res.TotalI = i
	res.TotalP = totalP
	return res
}

func solveParallel(v float64, loads []LoadConfig, eff []float64, notes []string) Result {
	res := Result{
		Rows:           make([]Row, len(loads)),
		Powers:         make([]float64, len(loads)),
		BranchCurrents: make([]float64, len(loads)),
		Notes:          notes,
	}

	var totalI, totalP float64
	shorted := false
	for k, l := range loads {
		r := eff[k]
		var i float64
		if !math.IsInf(r, 1) {
			i = v / r
		}
		p := v * i
		res.Rows[k] = Row{Label: LoadLabel(k), V: v, I: i, R: r, P: p, Status: l.Fault.Status()}
		res.BranchCurrents[k] = i
		res.Powers[k] = p
		totalI += i
		totalP += p
		if l.Fault == FaultShort {
			shorted = true
		}
	}

	res.TotalI = totalI
	res.TotalP = totalP
	if totalI > 0 {
		res.TotalR = v / totalI
	} else {
		res.TotalR = math.Inf(1)
	}
	if shorted {
		res.Notes = append(res.Notes, NoteParallelShort)
	}
	return res
}
