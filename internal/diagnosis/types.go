// Package diagnosis explains wrong circuit answers by matching them against
// the values common mistakes would have produced.
package diagnosis

import "github.com/abhisek/ohmlab/internal/problemgen"

// ErrorCategory classifies a wrong answer.
type ErrorCategory string

const (
	CategoryCareless      ErrorCategory = "careless"
	CategoryMisconception ErrorCategory = "misconception"
	CategoryUnclassified  ErrorCategory = "unclassified"
)

// ClassifyInput is one wrong, parsed answer and the question it belongs to.
type ClassifyInput struct {
	Question *problemgen.Question
	Part     problemgen.Part
	Value    float64
}

// Diagnosis is the outcome of classifying a wrong answer.
type Diagnosis struct {
	PartID          string
	Category        ErrorCategory
	MisconceptionID string  // non-empty only for CategoryMisconception
	Confidence      float64 // 0.0–1.0
	ClassifierName  string
}

// Hint returns the learner-facing hint for d, or "" when there is none.
func (d Diagnosis) Hint() string {
	if d.Category == CategoryCareless {
		return "Close! Check your rounding and carry more decimal places."
	}
	if m := GetMisconception(d.MisconceptionID); m != nil {
		return m.Hint
	}
	return ""
}
