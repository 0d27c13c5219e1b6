// Package practice serves questions built from the learner's own circuit.
package practice

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ohmlab/internal/diagnosis"
	"github.com/abhisek/ohmlab/internal/problemgen"
	"github.com/abhisek/ohmlab/internal/router"
	"github.com/abhisek/ohmlab/internal/scenario"
	"github.com/abhisek/ohmlab/internal/screen"
	"github.com/abhisek/ohmlab/internal/screens/demo"
	"github.com/abhisek/ohmlab/internal/session"
	"github.com/abhisek/ohmlab/internal/ui/components"
	"github.com/abhisek/ohmlab/internal/ui/layout"
	"github.com/abhisek/ohmlab/internal/ui/theme"
)

// PracticeScreen asks one question at a time about the workbench circuit.
type PracticeScreen struct {
	bench    *session.Workbench
	gen      *scenario.Generator
	practice *session.Practice
	form     components.AnswerForm
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.StatusProvider = (*PracticeScreen)(nil)

// New creates a PracticeScreen with its first question already built.
func New(bench *session.Workbench, gen *scenario.Generator, p *session.Practice) *PracticeScreen {
	s := &PracticeScreen{bench: bench, gen: gen, practice: p}
	s.next()
	return s
}

func (s *PracticeScreen) Init() tea.Cmd {
	return s.form.Init()
}

func (s *PracticeScreen) Title() string {
	return "Practice"
}

func (s *PracticeScreen) Status() string {
	return s.practice.Difficulty.String()
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	if s.practice.Graded() {
		return []layout.KeyHint{
			{Key: "n", Description: "Next question"},
			{Key: "d", Description: "Difficulty"},
			{Key: "e", Description: "Edit circuit"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Check"},
		{Key: "Esc", Description: "Back"},
	}
}

// next builds a fresh question from the current workbench circuit.
func (s *PracticeScreen) next() tea.Cmd {
	q := s.practice.Next(s.bench.Snapshot())
	s.form = components.NewAnswerForm(FormFields(q))
	return s.form.Init()
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, isKey := msg.(tea.KeyMsg)

	if s.practice.Graded() {
		if !isKey {
			return s, nil
		}
		switch kmsg.String() {
		case "n", "enter":
			return s, s.next()
		case "d":
			s.practice.Difficulty = s.practice.Difficulty.Toggle()
			return s, s.next()
		case "e":
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: demo.New(s.bench, s.gen)}
			}
		}
		return s, nil
	}

	if isKey && kmsg.String() == "enter" {
		score, ok := s.practice.Submit(s.form.Answers())
		if ok {
			s.form.Mark(func(id string) bool {
				pr, _ := score.Result(id)
				return pr.Correct
			})
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.form, cmd = s.form.Update(msg)
	return s, cmd
}

func (s *PracticeScreen) View(width, height int) string {
	q := s.practice.Question()
	if q == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(RenderQuestion(q, width))
	b.WriteString("\n\n")
	b.WriteString(s.form.View())

	if score, ok := s.practice.Score(); ok {
		b.WriteString("\n\n")
		b.WriteString(RenderWorkedSolution(q, score))
	}
	return layout.Center(b.String(), width)
}

// FormFields maps question parts to answer boxes, one per part.
func FormFields(q *problemgen.Question) []components.FormField {
	fields := make([]components.FormField, len(q.Parts))
	for i, p := range q.Parts {
		fields[i] = components.FormField{ID: p.ID, Label: p.Label, Unit: string(p.Unit)}
	}
	return fields
}

// RenderQuestion renders a question's title and prompt.
func RenderQuestion(q *problemgen.Question, width int) string {
	wrap := width - 8
	if wrap > 72 {
		wrap = 72
	}
	return theme.Title.Render(q.Title) + "\n\n" +
		theme.Body.Width(wrap).Render(q.Prompt)
}

// RenderWorkedSolution renders the score and, for every part, the formula,
// the substituted working and the expected value.
func RenderWorkedSolution(q *problemgen.Question, score problemgen.Score) string {
	var b strings.Builder

	headline := fmt.Sprintf("%d of %d correct", score.Awarded, score.Possible)
	if score.Perfect() {
		b.WriteString(theme.Correct.Render("✓ " + headline))
	} else {
		b.WriteString(theme.Incorrect.Render("✗ " + headline))
	}

	diags := diagnosis.Diagnose(q, score)
	for _, p := range q.Parts {
		pr, _ := score.Result(p.ID)
		mark := theme.Correct.Render("✓")
		if !pr.Correct {
			mark = theme.Incorrect.Render("✗")
		}
		fmt.Fprintf(&b, "\n%s %s\n    %s\n    %s",
			mark, theme.Body.Render(p.Label),
			theme.Formula.Render(p.Formula),
			theme.Hint.Render(p.Substituted+" "+string(p.Unit)))
		if hint := diags[p.ID].Hint(); hint != "" {
			b.WriteString("\n    " + theme.Fault.Render("Hint: "+hint))
		}
	}
	return b.String()
}
