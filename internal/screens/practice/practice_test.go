package practice

import (
	"math/rand"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ohmlab/internal/problemgen"
	"github.com/abhisek/ohmlab/internal/router"
	"github.com/abhisek/ohmlab/internal/session"
	"github.com/abhisek/ohmlab/internal/ui/components"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeString(s *PracticeScreen, text string) {
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

func testScreen(d problemgen.Difficulty) (*PracticeScreen, *session.Workbench) {
	bench := session.NewWorkbench(12)
	p := session.NewPractice(problemgen.New(rand.New(rand.NewSource(1)), problemgen.DefaultConfig()), d)
	return New(bench, nil, p), bench
}

func TestPracticeScreen_GradesAnswers(t *testing.T) {
	s, _ := testScreen(problemgen.Experienced)
	require.Len(t, s.practice.Question().Parts, 3)

	typeString(s, "6 ohms")
	s.Update(specialKey(tea.KeyTab))
	typeString(s, "2")
	s.Update(specialKey(tea.KeyTab))
	typeString(s, "20")
	s.Update(specialKey(tea.KeyEnter))

	score, ok := s.practice.Score()
	require.True(t, ok)
	assert.Equal(t, 2, score.Awarded)
	assert.Equal(t, 3, score.Possible)

	view := s.View(100, 30)
	assert.Contains(t, view, "2 of 3 correct")
	assert.Contains(t, view, "Ptotal = 12 × 2 = 24")
}

func TestPracticeScreen_NextAndDifficulty(t *testing.T) {
	s, bench := testScreen(problemgen.Experienced)
	first := s.practice.Question().ID

	// n is typed into the answer box until the question is graded.
	s.Update(keyPress('n'))
	assert.Equal(t, first, s.practice.Question().ID)

	s.Update(specialKey(tea.KeyEnter))
	bench.SetResistance(3)
	s.Update(keyPress('n'))
	q := s.practice.Question()
	assert.NotEqual(t, first, q.ID)
	assert.Equal(t, 3.0, q.Snapshot.Loads[0].R)

	s.Update(specialKey(tea.KeyEnter))
	s.Update(keyPress('d'))
	assert.Equal(t, problemgen.Beginner, s.practice.Difficulty)
	assert.Len(t, s.practice.Question().Parts, 1)
	assert.False(t, s.practice.Graded())
}

func TestPracticeScreen_EditPushesDemo(t *testing.T) {
	s, _ := testScreen(problemgen.Beginner)
	s.Update(specialKey(tea.KeyEnter))

	_, cmd := s.Update(keyPress('e'))
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Circuit Workbench", push.Screen.Title())
}

func TestPracticeScreen_KeyHints(t *testing.T) {
	s, _ := testScreen(problemgen.Beginner)
	assert.Len(t, s.KeyHints(), 3)
	s.Update(specialKey(tea.KeyEnter))
	assert.Len(t, s.KeyHints(), 4)
}

func TestRenderWorkedSolution(t *testing.T) {
	q := &problemgen.Question{Parts: []problemgen.Part{{
		ID: "itotal", Label: "Total current (Itotal)", Unit: problemgen.UnitAmps,
		Formula: "Itotal = V / Rtotal", Substituted: "Itotal = 12 / 6 = 2", Correct: 2, Tolerance: 0.02,
	}}}
	out := RenderWorkedSolution(q, problemgen.Grade(q, map[string]string{"itotal": "2"}))

	assert.True(t, strings.Contains(out, "1 of 1 correct"))
	assert.Contains(t, out, "Itotal = V / Rtotal")
	assert.Contains(t, out, "Itotal = 12 / 6 = 2 A")
}

func TestRenderWorkedSolution_Hint(t *testing.T) {
	q := &problemgen.Question{Parts: []problemgen.Part{{
		ID: "itotal", Label: "Total current (Itotal)", Unit: problemgen.UnitAmps,
		Formula: "Itotal = V / Rtotal", Substituted: "Itotal = 12 / 6 = 2", Correct: 2, Tolerance: 0.02,
	}}}
	out := RenderWorkedSolution(q, problemgen.Grade(q, map[string]string{"itotal": "2000"}))

	assert.Contains(t, out, "0 of 1 correct")
	assert.Contains(t, out, "Off by a factor of 1000")
}

func TestFormFields(t *testing.T) {
	q := &problemgen.Question{Parts: []problemgen.Part{
		{ID: "rtotal", Label: "Total resistance (Rtotal)", Unit: problemgen.UnitOhms},
		{ID: "v1", Label: "Voltage across R1 (V1)", Unit: problemgen.UnitVolts},
	}}
	fields := FormFields(q)

	assert.Equal(t, []components.FormField{
		{ID: "rtotal", Label: "Total resistance (Rtotal)", Unit: "Ω"},
		{ID: "v1", Label: "Voltage across R1 (V1)", Unit: "V"},
	}, fields)
}
