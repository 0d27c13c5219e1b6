package home

import (
	"math/rand"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ohmlab/internal/config"
	"github.com/abhisek/ohmlab/internal/problemgen"
	"github.com/abhisek/ohmlab/internal/router"
	"github.com/abhisek/ohmlab/internal/scenario"
	"github.com/abhisek/ohmlab/internal/screen"
	"github.com/abhisek/ohmlab/internal/screens/demo"
	"github.com/abhisek/ohmlab/internal/screens/practice"
	"github.com/abhisek/ohmlab/internal/screens/quiz"
	"github.com/abhisek/ohmlab/internal/session"
	"github.com/abhisek/ohmlab/internal/ui/components"
	"github.com/abhisek/ohmlab/internal/ui/layout"
	"github.com/abhisek/ohmlab/internal/ui/theme"
)

const banner = `
  ___  _               _          _
 / _ \| |__  _ __ ___ | |    __ _| |__
| | | | '_ \| '_ ` + "`" + ` _ \| |   / _` + "`" + ` | '_ \
| |_| | | | | | | | | | |__| (_| | |_) |
 \___/|_| |_|_| |_| |_|_____\__,_|_.__/`

// defaultFeedbackDelay is used when the configured delay does not parse.
const defaultFeedbackDelay = 1500 * time.Millisecond

// HomeScreen is the main menu. It owns the workbench shared by demo and
// practice mode so edits survive moving between them.
type HomeScreen struct {
	menu     components.Menu
	cfg      config.Config
	rng      *rand.Rand
	bench    *session.Workbench
	gen      *scenario.Generator
	builder  *problemgen.Builder
	practice *session.Practice
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen. rng drives every random choice in the app.
func New(cfg config.Config, rng *rand.Rand) *HomeScreen {
	h := &HomeScreen{
		cfg:     cfg,
		rng:     rng,
		bench:   session.NewWorkbench(cfg.Workbench.Voltage),
		gen:     scenario.New(rng),
		builder: problemgen.New(rng, problemgen.DefaultConfig()),
	}
	h.practice = session.NewPractice(h.builder, cfg.PracticeDifficulty())

	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "DEMO", Description: "build a circuit and watch it solve", Action: h.push(h.newDemo)},
		{Label: "PRACTICE", Description: "answer questions about your circuit", Action: h.push(h.newPractice)},
		{Label: "QUIZ", Description: "a run of random circuits", Action: h.push(h.newQuiz)},
		{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	})
	return h
}

func (h *HomeScreen) push(build func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		s := build()
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
}

func (h *HomeScreen) newDemo() screen.Screen {
	return demo.New(h.bench, h.gen)
}

func (h *HomeScreen) newPractice() screen.Screen {
	return practice.New(h.bench, h.gen, h.practice)
}

func (h *HomeScreen) newQuiz() screen.Screen {
	q := session.NewQuiz(h.gen, h.builder, h.cfg.QuizDifficulty(), h.cfg.Quiz.Questions)
	return quiz.New(q, h.cfg.FeedbackDelay(defaultFeedbackDelay))
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string
	if width >= 52 && height >= 18 {
		sections = append(sections, theme.Title.Render(banner))
	} else {
		sections = append(sections, theme.Title.Render("O H M L A B"))
	}
	sections = append(sections,
		theme.Subtitle.Render("Ohm's law, one circuit at a time"),
		theme.Card.Render(h.menu.View()),
	)
	return layout.Center(strings.Join(sections, "\n\n"), width)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
