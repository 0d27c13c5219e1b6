package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ohmlab/internal/problemgen"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5, cfg.Quiz.Questions)
	assert.Equal(t, problemgen.Experienced, cfg.QuizDifficulty())
	assert.Equal(t, problemgen.Beginner, cfg.PracticeDifficulty())
	assert.Equal(t, 1500*time.Millisecond, cfg.FeedbackDelay(time.Second))
	assert.Equal(t, 12.0, cfg.Workbench.Voltage)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_PartialOverride(t *testing.T) {
	p := writeConfig(t, "quiz:\n  questions: 8\n  feedback_delay: 500ms\npractice:\n  difficulty: experienced\n")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Quiz.Questions)
	assert.Equal(t, 500*time.Millisecond, cfg.FeedbackDelay(time.Second))
	assert.Equal(t, problemgen.Experienced, cfg.PracticeDifficulty())
	assert.Equal(t, problemgen.Experienced, cfg.QuizDifficulty(), "unset keys keep defaults")
	assert.Equal(t, 12.0, cfg.Workbench.Voltage)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "quiz: [\n"},
		{"zero questions", "quiz:\n  questions: 0\n"},
		{"bad difficulty", "quiz:\n  difficulty: wizard\n"},
		{"bad delay", "quiz:\n  feedback_delay: soon\n"},
		{"voltage too high", "workbench:\n  voltage: 240\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			assert.Error(t, err)
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv(EnvPath, "/tmp/custom.yaml")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.yaml", p)

	t.Setenv(EnvPath, "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	p, err = DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "ohmlab", "config.yaml"), p)
}
