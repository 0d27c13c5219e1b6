package problemgen

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	unitWordsRe = regexp.MustCompile(`ohms?|omega`)
	lettersRe   = regexp.MustCompile(`[a-zΩω]+`)
	numberRe    = regexp.MustCompile(`[-+]?(?:\d+\.?\d*|\.\d+)`)
)

// ParseNumber extracts a number from a learner's free-text answer.
//
// Normalization rules:
// - Case is ignored and thousands separators (commas) are dropped
// - Unit words ("ohm", "ohms", "omega"), other letters and the ohm sign are removed
// - The first signed decimal number left is used
//
// Returns false if nothing parses or the value is not finite.
func ParseNumber(raw string) (float64, bool) {
	s := strings.ToLower(raw)
	s = strings.ReplaceAll(s, ",", "")
	s = unitWordsRe.ReplaceAllString(s, "")
	s = lettersRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	m := numberRe.FindString(s)
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// WithinTolerance reports whether value is within an absolute tol of correct.
func WithinTolerance(value, correct, tol float64) bool {
	return math.Abs(value-correct) <= tol
}

// PartResult is the outcome of grading one part.
type PartResult struct {
	PartID string

	// Answer is the raw text the learner entered.
	Answer string

	// Parsed is false when the answer was empty or held no number.
	Parsed bool
	Value  float64

	Correct bool
}

// Score is the outcome of grading a whole question.
type Score struct {
	Awarded  int
	Possible int
	Parts    []PartResult
}

// Perfect reports whether every part was answered correctly.
func (s Score) Perfect() bool {
	return s.Possible > 0 && s.Awarded == s.Possible
}

// Result returns the grading result for a part, if it was graded.
func (s Score) Result(partID string) (PartResult, bool) {
	for _, pr := range s.Parts {
		if pr.PartID == partID {
			return pr, true
		}
	}
	return PartResult{}, false
}

// Grade scores answers (keyed by part id) against q. Missing or unparseable
// answers earn nothing for their part; they are not errors. Units typed by
// the learner are ignored.
func Grade(q *Question, answers map[string]string) Score {
	score := Score{Possible: len(q.Parts)}
	for _, p := range q.Parts {
		raw := answers[p.ID]
		pr := PartResult{PartID: p.ID, Answer: raw}

		if v, ok := ParseNumber(raw); ok {
			pr.Parsed = true
			pr.Value = v
			pr.Correct = WithinTolerance(v, p.Correct, p.Tolerance)
		}
		if pr.Correct {
			score.Awarded++
		}
		score.Parts = append(score.Parts, pr)
	}
	return score
}
