package problemgen

import (
	"fmt"
	"math"
)

// StructuralValidator checks that a question has answerable, well-formed parts.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question) *ValidationError {
	if q.Title == "" {
		return v.fail("title is empty")
	}
	if q.Prompt == "" {
		return v.fail("prompt is empty")
	}
	if len(q.Parts) == 0 {
		return v.fail("question has no parts")
	}

	seen := make(map[string]bool, len(q.Parts))
	for _, p := range q.Parts {
		if p.ID == "" {
			return v.fail("part id is empty")
		}
		if seen[p.ID] {
			return v.fail(fmt.Sprintf("duplicate part id %q", p.ID))
		}
		seen[p.ID] = true

		if p.Formula == "" || p.Substituted == "" {
			return v.fail(fmt.Sprintf("part %q is missing its formula", p.ID))
		}
		if !(p.Tolerance > 0) {
			return v.fail(fmt.Sprintf("part %q has non-positive tolerance", p.ID))
		}
		if math.IsNaN(p.Correct) {
			return v.fail(fmt.Sprintf("part %q has no correct value", p.ID))
		}
	}
	return nil
}

func (v *StructuralValidator) fail(msg string) *ValidationError {
	return &ValidationError{Validator: v.Name(), Message: msg}
}
