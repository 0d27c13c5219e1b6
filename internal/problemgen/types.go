package problemgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/ohmlab/internal/circuit"
)

// Question is a generated circuit-analysis question ready for display.
type Question struct {
	// ID uniquely identifies this question instance.
	ID string

	// Title is a short heading, e.g. "Find the total current".
	Title string

	// Prompt describes the circuit and what to compute.
	Prompt string

	// Difficulty is the level the question was built for.
	Difficulty Difficulty

	// Parts are the answerable sub-questions, in display order.
	// Answers are tracked by the caller, keyed by Part.ID.
	Parts []Part

	// Snapshot is the frozen circuit the question was derived from.
	Snapshot circuit.Snapshot

	// Result is the solved state of Snapshot.
	Result circuit.Result
}

// Part is a single answerable quantity. Parts are never modified after
// generation.
type Part struct {
	ID    string
	Label string
	Unit  Unit

	// Formula is the symbolic relation, e.g. "Itotal = V / Rtotal".
	Formula string

	// Substituted is Formula with the circuit's numbers plugged in.
	Substituted string

	Correct   float64
	Tolerance float64
}

// Unit is the physical unit of a part's answer.
type Unit string

const (
	UnitOhms  Unit = "Ω"
	UnitAmps  Unit = "A"
	UnitVolts Unit = "V"
	UnitWatts Unit = "W"
)

// Tolerance returns the absolute grading tolerance for answers in this unit.
// The values absorb display rounding, not measurement noise.
func (u Unit) Tolerance() float64 {
	switch u {
	case UnitAmps, UnitVolts:
		return 0.02
	case UnitOhms:
		return 0.05
	case UnitWatts:
		return 0.5
	default:
		return 0
	}
}

// Difficulty selects how much a question asks for.
type Difficulty int

const (
	// Beginner questions ask for a single quantity.
	Beginner Difficulty = iota

	// Experienced questions walk through the whole circuit.
	Experienced
)

func (d Difficulty) String() string {
	switch d {
	case Beginner:
		return "beginner"
	case Experienced:
		return "experienced"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

// ParseDifficulty parses "beginner" or "experienced" (case-insensitive).
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner":
		return Beginner, nil
	case "experienced":
		return Experienced, nil
	default:
		return 0, fmt.Errorf("invalid difficulty %q: must be beginner or experienced", s)
	}
}

// Toggle returns the other difficulty.
func (d Difficulty) Toggle() Difficulty {
	if d == Beginner {
		return Experienced
	}
	return Beginner
}
