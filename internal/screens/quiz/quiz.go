// Package quiz runs a fixed-length quiz of generated circuits.
package quiz

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ohmlab/internal/router"
	"github.com/abhisek/ohmlab/internal/screen"
	"github.com/abhisek/ohmlab/internal/screens/practice"
	"github.com/abhisek/ohmlab/internal/screens/summary"
	"github.com/abhisek/ohmlab/internal/session"
	"github.com/abhisek/ohmlab/internal/ui/components"
	"github.com/abhisek/ohmlab/internal/ui/layout"
	"github.com/abhisek/ohmlab/internal/ui/theme"
)

// QuizScreen implements screen.Screen for a quiz run.
type QuizScreen struct {
	quiz  *session.Quiz
	delay time.Duration
	form  components.AnswerForm
	now   func() time.Time
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates a QuizScreen. delay is how long feedback stays up before the
// next question; zero waits for a key press.
func New(q *session.Quiz, delay time.Duration) *QuizScreen {
	s := &QuizScreen{quiz: q, delay: delay, now: time.Now}
	s.resetForm()
	return s
}

func (s *QuizScreen) resetForm() {
	if q := s.quiz.Current(); q != nil {
		s.form = components.NewAnswerForm(practice.FormFields(q))
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.form.Init()
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) Status() string {
	return fmt.Sprintf("Score %d/%d", s.quiz.Awarded, s.quiz.Possible)
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.quiz.Phase() == session.PhaseFeedback {
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case feedbackDoneMsg:
		if msg.index != s.quiz.Index() || s.quiz.Phase() != session.PhaseFeedback {
			return s, nil
		}
		return s.advance()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.quiz.Phase() == session.PhaseAnswering {
		var cmd tea.Cmd
		s.form, cmd = s.form.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.quiz.Phase() {
	case session.PhaseFeedback:
		return s.advance()

	case session.PhaseAnswering:
		if msg.String() == "enter" {
			return s.submit()
		}
		var cmd tea.Cmd
		s.form, cmd = s.form.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) submit() (screen.Screen, tea.Cmd) {
	score, ok := s.quiz.Submit(s.form.Answers())
	if !ok {
		return s, nil
	}
	s.form.Mark(func(id string) bool {
		pr, _ := score.Result(id)
		return pr.Correct
	})

	if s.delay <= 0 {
		return s, nil
	}
	index := s.quiz.Index()
	return s, tea.Tick(s.delay, func(time.Time) tea.Msg {
		return feedbackDoneMsg{index: index}
	})
}

// advance moves past feedback to the next question or the summary.
func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	if s.quiz.Advance() {
		s.resetForm()
		return s, s.form.Init()
	}
	sum := session.BuildSummary(s.quiz, s.now())
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
}

func (s *QuizScreen) View(width, height int) string {
	q := s.quiz.Current()
	if q == nil {
		return ""
	}

	var b strings.Builder
	bar := components.NewProgressBar("Question", s.quiz.Index()+1, s.quiz.Total, min(width-8, 60))
	b.WriteString(bar.View())
	b.WriteString("\n\n")
	b.WriteString(practice.RenderQuestion(q, width))
	b.WriteString("\n\n")
	b.WriteString(s.form.View())

	if s.quiz.Phase() == session.PhaseFeedback {
		if score, ok := s.quiz.LastScore(); ok {
			b.WriteString("\n\n")
			b.WriteString(practice.RenderWorkedSolution(q, score))
		}
		if s.delay <= 0 {
			b.WriteString("\n\n" + theme.Hint.Render("Press any key to continue"))
		}
	}
	return layout.Center(b.String(), width)
}
