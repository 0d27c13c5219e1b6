package problemgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/ohmlab/internal/circuit"
)

// MathCheckValidator checks that the value shown at the end of each worked
// formula is the value the part is graded against.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

func (v *MathCheckValidator) Validate(q *Question) *ValidationError {
	for _, p := range q.Parts {
		shown, ok := finalValue(p.Substituted)
		if !ok {
			// Nothing to compare against.
			continue
		}
		if want := circuit.FormatValue(p.Correct); shown != want {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("part %q shows %s but grades against %s", p.ID, shown, want),
			}
		}
	}
	return nil
}

// finalValue returns the first token after the last " = " in s.
func finalValue(s string) (string, bool) {
	idx := strings.LastIndex(s, " = ")
	if idx < 0 {
		return "", false
	}
	fields := strings.Fields(s[idx+3:])
	if len(fields) == 0 {
		return "", false
	}
	return fields[0], true
}
