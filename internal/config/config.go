// Package config loads OhmLab's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/ohmlab/internal/problemgen"
)

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "OHMLAB_CONFIG"

// Limits on configurable values.
const (
	MaxQuizQuestions = 50
	MinVoltage       = 1.0
	MaxVoltage       = 24.0
)

// Config holds the user-tunable settings.
type Config struct {
	Quiz struct {
		Questions     int    `yaml:"questions"`
		Difficulty    string `yaml:"difficulty"`
		FeedbackDelay string `yaml:"feedback_delay"`
	} `yaml:"quiz"`
	Practice struct {
		Difficulty string `yaml:"difficulty"`
	} `yaml:"practice"`
	Workbench struct {
		Voltage float64 `yaml:"voltage"`
	} `yaml:"workbench"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	var cfg Config
	cfg.Quiz.Questions = 5
	cfg.Quiz.Difficulty = problemgen.Experienced.String()
	cfg.Quiz.FeedbackDelay = "1.5s"
	cfg.Practice.Difficulty = problemgen.Beginner.String()
	cfg.Workbench.Voltage = 12
	return cfg
}

// Load reads YAML config from path on top of Default. A missing file is
// not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field for a usable value.
func (c Config) Validate() error {
	if c.Quiz.Questions < 1 || c.Quiz.Questions > MaxQuizQuestions {
		return fmt.Errorf("quiz.questions must be between 1 and %d, got %d", MaxQuizQuestions, c.Quiz.Questions)
	}
	if _, err := problemgen.ParseDifficulty(c.Quiz.Difficulty); err != nil {
		return fmt.Errorf("quiz.difficulty: %w", err)
	}
	if _, err := problemgen.ParseDifficulty(c.Practice.Difficulty); err != nil {
		return fmt.Errorf("practice.difficulty: %w", err)
	}
	if d, err := time.ParseDuration(c.Quiz.FeedbackDelay); err != nil || d < 0 {
		return fmt.Errorf("quiz.feedback_delay: invalid duration %q", c.Quiz.FeedbackDelay)
	}
	if c.Workbench.Voltage < MinVoltage || c.Workbench.Voltage > MaxVoltage {
		return fmt.Errorf("workbench.voltage must be between %g and %g, got %g", MinVoltage, MaxVoltage, c.Workbench.Voltage)
	}
	return nil
}

// QuizDifficulty returns the parsed quiz difficulty, defaulting to experienced.
func (c Config) QuizDifficulty() problemgen.Difficulty {
	if d, err := problemgen.ParseDifficulty(c.Quiz.Difficulty); err == nil {
		return d
	}
	return problemgen.Experienced
}

// PracticeDifficulty returns the parsed practice difficulty, defaulting to beginner.
func (c Config) PracticeDifficulty() problemgen.Difficulty {
	if d, err := problemgen.ParseDifficulty(c.Practice.Difficulty); err == nil {
		return d
	}
	return problemgen.Beginner
}

// FeedbackDelay parses quiz.feedback_delay or returns the fallback if empty
// or invalid.
func (c Config) FeedbackDelay(fallback time.Duration) time.Duration {
	if c.Quiz.FeedbackDelay == "" {
		return fallback
	}
	if d, err := time.ParseDuration(c.Quiz.FeedbackDelay); err == nil && d >= 0 {
		return d
	}
	return fallback
}

// DefaultPath returns the config path: $OHMLAB_CONFIG if set, otherwise
// $XDG_CONFIG_HOME/ohmlab/config.yaml (~/.config when unset).
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "ohmlab", "config.yaml"), nil
}
