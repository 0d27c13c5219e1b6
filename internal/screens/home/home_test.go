package home

import (
	"math/rand"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ohmlab/internal/config"
	"github.com/abhisek/ohmlab/internal/router"
)

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testHome() *HomeScreen {
	return New(config.Default(), rand.New(rand.NewSource(5)))
}

// selectItem moves down n items and presses enter.
func selectItem(t *testing.T, h *HomeScreen, n int) tea.Msg {
	t.Helper()
	for i := 0; i < n; i++ {
		h.Update(specialKey(tea.KeyDown))
	}
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	return cmd()
}

func TestHomeScreen_MenuOpensScreens(t *testing.T) {
	tests := []struct {
		index int
		title string
	}{
		{0, "Circuit Workbench"},
		{1, "Practice"},
		{2, "Quiz"},
	}
	for _, tc := range tests {
		msg := selectItem(t, testHome(), tc.index)
		push, ok := msg.(router.PushScreenMsg)
		require.True(t, ok, "item %d: got %T", tc.index, msg)
		assert.Equal(t, tc.title, push.Screen.Title())
	}
}

func TestHomeScreen_DemoAndPracticeShareWorkbench(t *testing.T) {
	h := testHome()
	h.bench.SetResistance(3)

	push := selectItem(t, h, 1).(router.PushScreenMsg)
	push.Screen.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, 3.0, h.practice.Question().Snapshot.Loads[0].R)
}

func TestHomeScreen_WorkbenchUsesConfiguredVoltage(t *testing.T) {
	cfg := config.Default()
	cfg.Workbench.Voltage = 9
	h := New(cfg, rand.New(rand.NewSource(1)))
	assert.Equal(t, 9.0, h.bench.Voltage())
}

func TestHomeScreen_View(t *testing.T) {
	view := testHome().View(100, 30)
	assert.Contains(t, view, "PRACTICE")
	assert.Contains(t, view, "Ohm's law")
}
