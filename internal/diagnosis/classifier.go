package diagnosis

import (
	"math"

	"github.com/abhisek/ohmlab/internal/circuit"
	"github.com/abhisek/ohmlab/internal/problemgen"
)

// Classifier is a rule-based error classifier. It returns a diagnosis with
// an empty Category when its rule does not apply.
type Classifier interface {
	Name() string
	Classify(input *ClassifyInput) Diagnosis
}

// DefaultClassifiers returns classifiers in priority order. Rules tied to
// the circuit come before generic numeric slips.
func DefaultClassifiers() []Classifier {
	return []Classifier{
		&IgnoredFaultClassifier{},
		&TopologySwapClassifier{},
		&UnitScaleClassifier{},
		&SignFlipClassifier{},
		&ReciprocalClassifier{},
		&RoundingClassifier{},
	}
}

// RunClassifiers executes classifiers in order and returns the first match,
// or an unclassified diagnosis.
func RunClassifiers(classifiers []Classifier, input *ClassifyInput) Diagnosis {
	for _, c := range classifiers {
		d := c.Classify(input)
		if d.Category != "" {
			d.PartID = input.Part.ID
			d.ClassifierName = c.Name()
			return d
		}
	}
	return Diagnosis{PartID: input.Part.ID, Category: CategoryUnclassified}
}

// Diagnose classifies every wrong but parsed answer in score, keyed by part
// ID. Unanswered parts are skipped.
func Diagnose(q *problemgen.Question, score problemgen.Score) map[string]Diagnosis {
	out := make(map[string]Diagnosis)
	classifiers := DefaultClassifiers()
	for _, p := range q.Parts {
		pr, ok := score.Result(p.ID)
		if !ok || !pr.Parsed || pr.Correct {
			continue
		}
		out[p.ID] = RunClassifiers(classifiers, &ClassifyInput{Question: q, Part: p, Value: pr.Value})
	}
	return out
}

// matches reports whether value hits target within the part's tolerance,
// and target is far enough from the correct value to tell them apart.
func matches(in *ClassifyInput, target float64) bool {
	if math.IsNaN(target) || math.IsInf(target, 0) {
		return false
	}
	tol := in.Part.Tolerance
	if math.Abs(target-in.Part.Correct) <= tol {
		return false
	}
	return math.Abs(in.Value-target) <= tol
}

func misconception(id string) Diagnosis {
	return Diagnosis{Category: CategoryMisconception, MisconceptionID: id, Confidence: 0.8}
}

// IgnoredFaultClassifier matches answers that would be right if every load
// were healthy.
type IgnoredFaultClassifier struct{}

func (c *IgnoredFaultClassifier) Name() string { return "ignored-fault" }

func (c *IgnoredFaultClassifier) Classify(in *ClassifyInput) Diagnosis {
	snap := in.Question.Snapshot.Clone()
	faulty := false
	for i := range snap.Loads {
		if snap.Loads[i].Fault != circuit.FaultNormal {
			snap.Loads[i].Fault = circuit.FaultNormal
			faulty = true
		}
	}
	if !faulty {
		return Diagnosis{}
	}
	if v, ok := problemgen.PartValue(in.Part.ID, snap); ok && matches(in, v) {
		return misconception(IgnoredFault)
	}
	return Diagnosis{}
}

// TopologySwapClassifier matches answers computed with series rules on a
// parallel circuit, or parallel rules on a series one.
type TopologySwapClassifier struct{}

func (c *TopologySwapClassifier) Name() string { return "topology-swap" }

func (c *TopologySwapClassifier) Classify(in *ClassifyInput) Diagnosis {
	snap := in.Question.Snapshot.Clone()
	switch snap.Topology {
	case circuit.TopologySeries:
		snap.Topology = circuit.TopologyParallel
	case circuit.TopologyParallel:
		snap.Topology = circuit.TopologySeries
	default:
		return Diagnosis{}
	}
	if v, ok := problemgen.PartValue(in.Part.ID, snap); ok && matches(in, v) {
		return misconception(TopologySwap)
	}
	return Diagnosis{}
}

// UnitScaleClassifier matches answers off by exactly a factor of 1000.
type UnitScaleClassifier struct{}

func (c *UnitScaleClassifier) Name() string { return "unit-scale" }

func (c *UnitScaleClassifier) Classify(in *ClassifyInput) Diagnosis {
	correct := in.Part.Correct
	if correct == 0 {
		return Diagnosis{}
	}
	if matches(in, correct*1000) || matches(in, correct/1000) {
		return misconception(UnitScale)
	}
	return Diagnosis{}
}

// SignFlipClassifier matches answers with the right magnitude and the wrong
// sign.
type SignFlipClassifier struct{}

func (c *SignFlipClassifier) Name() string { return "sign-flip" }

func (c *SignFlipClassifier) Classify(in *ClassifyInput) Diagnosis {
	if matches(in, -in.Part.Correct) {
		return misconception(SignFlip)
	}
	return Diagnosis{}
}

// ReciprocalClassifier matches answers equal to 1/correct.
type ReciprocalClassifier struct{}

func (c *ReciprocalClassifier) Name() string { return "reciprocal" }

func (c *ReciprocalClassifier) Classify(in *ClassifyInput) Diagnosis {
	if in.Part.Correct == 0 {
		return Diagnosis{}
	}
	if matches(in, 1/in.Part.Correct) {
		return misconception(Reciprocal)
	}
	return Diagnosis{}
}

// RoundingFactor is how many tolerances away an answer may be and still
// count as a rounding slip.
const RoundingFactor = 5

// RoundingClassifier flags answers just outside tolerance as careless.
type RoundingClassifier struct{}

func (c *RoundingClassifier) Name() string { return "rounding" }

func (c *RoundingClassifier) Classify(in *ClassifyInput) Diagnosis {
	if math.IsInf(in.Part.Correct, 0) {
		return Diagnosis{}
	}
	if math.Abs(in.Value-in.Part.Correct) <= RoundingFactor*in.Part.Tolerance {
		return Diagnosis{Category: CategoryCareless, Confidence: 0.6}
	}
	return Diagnosis{}
}
