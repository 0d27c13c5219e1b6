package problemgen

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/ohmlab/internal/circuit"
)

// degenerateEpsilon is how close to zero every part must be for a question
// to count as trivial.
const degenerateEpsilon = 1e-6

// Rand is the randomness a Builder needs. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// topic identifies one kind of single-quantity question.
type topic int

const (
	topicTotalR topic = iota
	topicTotalI
	topicTotalP
	topicFirstDrop
	topicFirstBranch
)

// Builder turns solved circuits into questions.
type Builder struct {
	rng   Rand
	cfg   Config
	newID func() string
}

// New creates a Builder. rng drives the beginner topic pick.
func New(rng Rand, cfg Config) *Builder {
	return &Builder{rng: rng, cfg: cfg, newID: uuid.NewString}
}

// Build produces a question for the circuit. It never fails: a question that
// would be entirely zero, or that fails validation, is replaced by a
// beginner total-resistance question.
func (b *Builder) Build(d Difficulty, snap circuit.Snapshot, res circuit.Result) *Question {
	q, err := b.BuildChecked(d, snap, res)
	if err != nil {
		return b.fallback(snap, res)
	}
	return q
}

// BuildChecked is Build without the validation fallback: the first failing
// validator's *ValidationError is returned.
func (b *Builder) BuildChecked(d Difficulty, snap circuit.Snapshot, res circuit.Result) (*Question, error) {
	snap = snap.Clone()

	var q *Question
	switch d {
	case Experienced:
		q = b.experienced(snap, res)
	default:
		q = b.beginner(snap, res)
	}

	// The fallback is built directly rather than by retrying, so this
	// always terminates. Total resistance is at least 0.01 Ω or infinite.
	if isDegenerate(q.Parts) {
		q = b.fallback(snap, res)
	}

	for _, v := range b.cfg.Validators {
		if verr := v.Validate(q); verr != nil {
			return nil, verr
		}
	}
	return q, nil
}

func (b *Builder) beginner(snap circuit.Snapshot, res circuit.Result) *Question {
	options := []topic{topicTotalR, topicTotalI, topicTotalP}
	switch snap.Topology {
	case circuit.TopologySeries:
		options = append(options, topicFirstDrop)
	case circuit.TopologyParallel:
		options = append(options, topicFirstBranch)
	}

	t := options[b.rng.Intn(len(options))]
	return b.single(t, snap, res)
}

func (b *Builder) single(t topic, snap circuit.Snapshot, res circuit.Result) *Question {
	var (
		part  Part
		title string
	)
	switch t {
	case topicTotalI:
		part, title = totalCurrentPart(snap, res), "Find the total current"
	case topicTotalP:
		part, title = totalPowerPart(snap, res), "Find the total power"
	case topicFirstDrop:
		part, title = voltageDropPart(snap, res, 0), "Find the voltage drop across R1"
	case topicFirstBranch:
		part, title = branchCurrentPart(snap, res, 0), "Find the branch current through R1"
	default:
		part, title = totalResistancePart(snap, res), "Find the total resistance"
	}

	return &Question{
		ID:         b.newID(),
		Title:      title,
		Prompt:     describeCircuit(snap) + " What is the " + lowerFirst(part.Label) + "?",
		Difficulty: Beginner,
		Parts:      []Part{part},
		Snapshot:   snap,
		Result:     res,
	}
}

func (b *Builder) experienced(snap circuit.Snapshot, res circuit.Result) *Question {
	parts := []Part{
		totalResistancePart(snap, res),
		totalCurrentPart(snap, res),
	}

	switch snap.Topology {
	case circuit.TopologySeries:
		for i := range snap.Loads {
			parts = append(parts, voltageDropPart(snap, res, i))
		}
	case circuit.TopologyParallel:
		for i := range snap.Loads {
			parts = append(parts, branchCurrentPart(snap, res, i))
		}
	default:
		parts = append(parts, totalPowerPart(snap, res))
	}

	return &Question{
		ID:         b.newID(),
		Title:      fmt.Sprintf("Analyze the %s circuit", snap.Topology),
		Prompt:     describeCircuit(snap) + " Work through the circuit and find each quantity below.",
		Difficulty: Experienced,
		Parts:      parts,
		Snapshot:   snap,
		Result:     res,
	}
}

func (b *Builder) fallback(snap circuit.Snapshot, res circuit.Result) *Question {
	return b.single(topicTotalR, snap, res)
}

func isDegenerate(parts []Part) bool {
	for _, p := range parts {
		if !(math.Abs(p.Correct) <= degenerateEpsilon) {
			return false
		}
	}
	return true
}

func newPart(id, label string, unit Unit, formula, substituted string, correct float64) Part {
	return Part{
		ID:          id,
		Label:       label,
		Unit:        unit,
		Formula:     formula,
		Substituted: substituted,
		Correct:     correct,
		Tolerance:   unit.Tolerance(),
	}
}

func fv(x float64) string { return circuit.FormatValue(x) }

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func effective(snap circuit.Snapshot) []float64 {
	out := make([]float64, len(snap.Loads))
	for i, l := range snap.Loads {
		out[i] = circuit.EffectiveResistance(l.R, l.Fault)
	}
	return out
}

func labels(n int, format string) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf(format, i+1)
	}
	return out
}

func joinValues(vals []float64, format, sep string) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf(format, fv(v))
	}
	return strings.Join(parts, sep)
}

func totalResistancePart(snap circuit.Snapshot, res circuit.Result) Part {
	const label = "Total resistance (Rtotal)"
	r := effective(snap)

	var formula, substituted string
	switch snap.Topology {
	case circuit.TopologySeries:
		formula = "Rtotal = " + strings.Join(labels(len(r), "R%d"), " + ")
		substituted = fmt.Sprintf("Rtotal = %s = %s", joinValues(r, "%s", " + "), fv(res.TotalR))
	case circuit.TopologyParallel:
		formula = "Rtotal = 1 / (" + strings.Join(labels(len(r), "1/R%d"), " + ") + ")"
		substituted = fmt.Sprintf("Rtotal = 1 / (%s) = %s", joinValues(r, "1/%s", " + "), fv(res.TotalR))
	default:
		formula = "Rtotal = R1"
		substituted = "Rtotal = " + fv(res.TotalR)
	}
	if !snap.SwitchClosed {
		substituted = "Rtotal = ∞ (switch open, no complete path)"
	}
	return newPart("rtotal", label, UnitOhms, formula, substituted, res.TotalR)
}

func totalCurrentPart(snap circuit.Snapshot, res circuit.Result) Part {
	const label = "Total current (Itotal)"

	var formula, substituted string
	if snap.Topology == circuit.TopologyParallel {
		formula = "Itotal = " + strings.Join(labels(len(snap.Loads), "I%d"), " + ")
		branch := make([]float64, len(res.Rows))
		for i, row := range res.Rows {
			branch[i] = row.I
		}
		substituted = fmt.Sprintf("Itotal = %s = %s", joinValues(branch, "%s", " + "), fv(res.TotalI))
	} else {
		formula = "Itotal = V / Rtotal"
		substituted = fmt.Sprintf("Itotal = %s / %s = %s", fv(snap.Voltage), fv(res.TotalR), fv(res.TotalI))
	}
	if !snap.SwitchClosed {
		substituted = "Itotal = 0 (switch open)"
	}
	return newPart("itotal", label, UnitAmps, formula, substituted, res.TotalI)
}

func totalPowerPart(snap circuit.Snapshot, res circuit.Result) Part {
	substituted := fmt.Sprintf("Ptotal = %s × %s = %s", fv(snap.Voltage), fv(res.TotalI), fv(res.TotalP))
	if !snap.SwitchClosed {
		substituted = "Ptotal = 0 (switch open)"
	}
	return newPart("ptotal", "Total power (Ptotal)", UnitWatts, "Ptotal = V × Itotal", substituted, res.TotalP)
}

func voltageDropPart(snap circuit.Snapshot, res circuit.Result, i int) Part {
	n := i + 1
	row := rowAt(res, i)
	formula := fmt.Sprintf("V%d = Itotal × R%d", n, n)
	substituted := fmt.Sprintf("V%d = %s × %s = %s", n, fv(res.TotalI), fv(row.R), fv(row.V))
	if !snap.SwitchClosed {
		substituted = fmt.Sprintf("V%d = 0 (switch open)", n)
	}
	return newPart(fmt.Sprintf("v%d", n), fmt.Sprintf("Voltage across R%d (V%d)", n, n), UnitVolts, formula, substituted, row.V)
}

func branchCurrentPart(snap circuit.Snapshot, res circuit.Result, i int) Part {
	n := i + 1
	row := rowAt(res, i)
	formula := fmt.Sprintf("I%d = V / R%d", n, n)
	substituted := fmt.Sprintf("I%d = %s / %s = %s", n, fv(snap.Voltage), fv(row.R), fv(row.I))
	if !snap.SwitchClosed {
		substituted = fmt.Sprintf("I%d = 0 (switch open)", n)
	}
	return newPart(fmt.Sprintf("i%d", n), fmt.Sprintf("Current through R%d (I%d)", n, n), UnitAmps, formula, substituted, row.I)
}

func rowAt(res circuit.Result, i int) circuit.Row {
	if i < len(res.Rows) {
		return res.Rows[i]
	}
	return circuit.Row{Label: circuit.LoadLabel(i)}
}

// describeCircuit renders the learner-facing description of a circuit.
func describeCircuit(snap circuit.Snapshot) string {
	var b strings.Builder

	switchState := "closed"
	if !snap.SwitchClosed {
		switchState = "open"
	}
	fmt.Fprintf(&b, "A %s V source powers a %s circuit with the switch %s.", fv(snap.Voltage), snap.Topology, switchState)

	descs := make([]string, len(snap.Loads))
	for i, l := range snap.Loads {
		descs[i] = describeLoad(i, l)
	}
	if len(descs) > 0 {
		b.WriteString(" Loads: ")
		b.WriteString(strings.Join(descs, ", "))
		b.WriteString(".")
	}
	return b.String()
}

func describeLoad(i int, l circuit.LoadConfig) string {
	label := circuit.LoadLabel(i)
	nominal := circuit.ClampResistance(l.R)

	switch l.Fault {
	case circuit.FaultHigh:
		return fmt.Sprintf("%s = %s Ω (%s Ω with a +%s Ω fault)", label,
			fv(circuit.EffectiveResistance(l.R, l.Fault)), fv(nominal), fv(circuit.HighOffset))
	case circuit.FaultOpen:
		return fmt.Sprintf("%s is open", label)
	case circuit.FaultShort:
		return fmt.Sprintf("%s is shorted (%s Ω)", label, fv(circuit.ShortResistance))
	default:
		return fmt.Sprintf("%s = %s Ω", label, fv(nominal))
	}
}
