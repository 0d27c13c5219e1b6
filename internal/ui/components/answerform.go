package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ohmlab/internal/ui/theme"
)

// FormField describes one answer box.
type FormField struct {
	ID    string
	Label string
	Unit  string
}

// AnswerForm is a column of labelled text inputs, one per question part.
// Tab and the arrow keys move focus; everything else goes to the focused
// input.
type AnswerForm struct {
	fields []FormField
	inputs []TextInput
	focus  int
}

// NewAnswerForm creates a form with focus on the first field.
func NewAnswerForm(fields []FormField) AnswerForm {
	f := AnswerForm{fields: fields}
	for i := range fields {
		in := NewTextInput("answer", false, 24)
		if i > 0 {
			in.Blur()
		}
		f.inputs = append(f.inputs, in)
	}
	return f
}

// Init focuses the first input.
func (f AnswerForm) Init() tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	return f.inputs[0].Init()
}

// Update handles focus movement and typing.
func (f AnswerForm) Update(msg tea.Msg) (AnswerForm, tea.Cmd) {
	if len(f.inputs) == 0 {
		return f, nil
	}
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab", "down":
			return f, f.move(1)
		case "shift+tab", "up":
			return f, f.move(-1)
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f *AnswerForm) move(delta int) tea.Cmd {
	n := len(f.inputs)
	f.inputs[f.focus].Blur()
	f.focus = ((f.focus+delta)%n + n) % n
	return f.inputs[f.focus].Focus()
}

// Focused returns the index of the focused field.
func (f AnswerForm) Focused() int { return f.focus }

// Len returns the number of fields.
func (f AnswerForm) Len() int { return len(f.fields) }

// Answers returns the raw text of every field keyed by field ID.
func (f AnswerForm) Answers() map[string]string {
	out := make(map[string]string, len(f.fields))
	for i, fld := range f.fields {
		out[fld.ID] = strings.TrimSpace(f.inputs[i].Value())
	}
	return out
}

// Mark freezes the form and shows a ✓ or ✗ beside each field.
func (f *AnswerForm) Mark(correct func(id string) bool) {
	for i, fld := range f.fields {
		f.inputs[i].Submit(correct(fld.ID))
	}
}

// View renders the fields, one per line.
func (f AnswerForm) View() string {
	width := 0
	for _, fld := range f.fields {
		width = max(width, lipgloss.Width(fld.Label))
	}

	var b strings.Builder
	for i, fld := range f.fields {
		style := theme.Unselected
		cursor := "  "
		if i == f.focus && !f.inputs[i].Submitted() {
			style = theme.Selected
			cursor = "▸ "
		}
		label := fmt.Sprintf("%s%-*s", cursor, width, fld.Label)
		b.WriteString(style.Render(label))
		b.WriteString("  ")
		b.WriteString(f.inputs[i].View())
		if fld.Unit != "" {
			b.WriteString(" " + theme.Hint.Render(fld.Unit))
		}
		if i < len(f.fields)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
