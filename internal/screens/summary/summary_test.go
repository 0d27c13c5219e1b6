package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ohmlab/internal/problemgen"
	"github.com/abhisek/ohmlab/internal/screen"
	"github.com/abhisek/ohmlab/internal/session"
)

func testSummary() *session.QuizSummary {
	return &session.QuizSummary{
		SessionID: "test-session",
		Duration:  3*time.Minute + 7*time.Second,
		Questions: 2,
		Awarded:   4,
		Possible:  6,
		Accuracy:  4.0 / 6.0,
		Perfect:   1,
		Results: []session.QuestionResult{
			{
				Question: &problemgen.Question{Title: "Analyze the series circuit"},
				Score:    problemgen.Score{Awarded: 3, Possible: 3},
			},
			{
				Question: &problemgen.Question{Title: "Analyze the parallel circuit"},
				Score:    problemgen.Score{Awarded: 1, Possible: 3},
			},
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary())
	if s.Title() != "Quiz Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Quiz Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	view := New(testSummary()).View(100, 30)
	for _, want := range []string{"Duration: 3:07", "Points: 4/6", "Accuracy: 67%", "Analyze the parallel circuit"} {
		if !strings.Contains(view, want) {
			t.Errorf("summary view missing %q", want)
		}
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Error("expected a command on Enter (pop)")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (pop)")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testSummary())
	if hints := s.KeyHints(); len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}

func TestSummaryScreen_HandlesBack(t *testing.T) {
	var s screen.Screen = New(testSummary())
	bh, ok := s.(screen.BackHandler)
	if !ok || !bh.HandlesBack() {
		t.Error("summary screen should handle Esc itself")
	}
}
