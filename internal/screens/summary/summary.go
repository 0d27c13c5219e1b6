package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ohmlab/internal/router"
	"github.com/abhisek/ohmlab/internal/screen"
	"github.com/abhisek/ohmlab/internal/session"
	"github.com/abhisek/ohmlab/internal/ui/layout"
	"github.com/abhisek/ohmlab/internal/ui/theme"
)

// SummaryScreen displays the result of a finished quiz.
type SummaryScreen struct {
	summary *session.QuizSummary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *session.QuizSummary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Quiz Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "Esc", Description: "Home"},
	}
}

// HandlesBack keeps the app from popping the summary; Update treats Esc
// like Enter.
func (s *SummaryScreen) HandlesBack() bool { return true }

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Center(theme.Title.Render("Quiz complete!"), width))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(layout.Center(theme.Hint.Render(fmt.Sprintf("Duration: %d:%02d", mins, secs)), width))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Points: %d/%d        Accuracy: %.0f%%        Perfect questions: %d/%d",
		sum.Awarded, sum.Possible, sum.Accuracy*100, sum.Perfect, sum.Questions)
	b.WriteString(layout.Center(theme.Body.Render(stats), width))
	b.WriteString("\n\n")

	b.WriteString(layout.Center(theme.Hint.Render("Questions"), width))
	b.WriteString("\n")
	b.WriteString(layout.Center(layout.Divider(width), width))
	b.WriteString("\n")

	for i, r := range sum.Results {
		line := fmt.Sprintf("%2d. %-36s %d/%d", i+1, r.Question.Title, r.Score.Awarded, r.Score.Possible)
		style := theme.Incorrect
		if r.Score.Perfect() {
			style = theme.Correct
		}
		b.WriteString(layout.Center(style.Render(line), width))
		b.WriteString("\n")
	}
	return b.String()
}
