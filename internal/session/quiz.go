package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/ohmlab/internal/circuit"
	"github.com/abhisek/ohmlab/internal/problemgen"
	"github.com/abhisek/ohmlab/internal/scenario"
)

// QuizPhase is the current phase of a quiz run.
type QuizPhase int

const (
	PhaseAnswering QuizPhase = iota // Waiting for answers to the current question
	PhaseFeedback                   // Showing the grade of the current question
	PhaseDone                       // Every question has been graded
)

// QuestionResult pairs a quiz question with its grade.
type QuestionResult struct {
	Question *problemgen.Question
	Score    problemgen.Score
}

// Quiz is a fixed-length run of generated questions.
type Quiz struct {
	// SessionID is the UUID for this run.
	SessionID string

	Difficulty problemgen.Difficulty

	// Total is the number of questions in the run.
	Total int

	// Awarded and Possible are the running point tally.
	Awarded  int
	Possible int

	// Results holds one entry per graded question.
	Results []QuestionResult

	// StartTime is when the run began.
	StartTime time.Time

	gen     *scenario.Generator
	builder *problemgen.Builder
	index   int
	current *problemgen.Question
	phase   QuizPhase
}

// NewQuiz starts a run of total questions and builds the first one.
func NewQuiz(gen *scenario.Generator, builder *problemgen.Builder, difficulty problemgen.Difficulty, total int) *Quiz {
	if total < 1 {
		total = 1
	}
	q := &Quiz{
		SessionID:  uuid.New().String(),
		Difficulty: difficulty,
		Total:      total,
		StartTime:  time.Now(),
		gen:        gen,
		builder:    builder,
	}
	q.current = q.nextQuestion()
	return q
}

func (q *Quiz) nextQuestion() *problemgen.Question {
	snap := q.gen.Generate()
	return q.builder.Build(q.Difficulty, snap, circuit.Solve(snap))
}

// Current returns the question being asked or reviewed. It is nil once the
// run is done.
func (q *Quiz) Current() *problemgen.Question {
	if q.phase == PhaseDone {
		return nil
	}
	return q.current
}

// Index returns the 0-based position of the current question.
func (q *Quiz) Index() int { return q.index }

// Phase returns the current phase.
func (q *Quiz) Phase() QuizPhase { return q.phase }

// Done reports whether every question has been graded.
func (q *Quiz) Done() bool { return q.phase == PhaseDone }

// Submit grades answers for the current question and moves to feedback.
// It reports false outside the answering phase.
func (q *Quiz) Submit(answers map[string]string) (problemgen.Score, bool) {
	if q.phase != PhaseAnswering {
		return problemgen.Score{}, false
	}
	s := problemgen.Grade(q.current, answers)
	q.Awarded += s.Awarded
	q.Possible += s.Possible
	q.Results = append(q.Results, QuestionResult{Question: q.current, Score: s})
	q.phase = PhaseFeedback
	return s, true
}

// LastScore returns the grade of the most recently graded question.
func (q *Quiz) LastScore() (problemgen.Score, bool) {
	if len(q.Results) == 0 {
		return problemgen.Score{}, false
	}
	return q.Results[len(q.Results)-1].Score, true
}

// Advance leaves feedback for the next question. It reports false when the
// run is over (or not in the feedback phase).
func (q *Quiz) Advance() bool {
	if q.phase != PhaseFeedback {
		return false
	}
	q.index++
	if q.index >= q.Total {
		q.phase = PhaseDone
		return false
	}
	q.current = q.nextQuestion()
	q.phase = PhaseAnswering
	return true
}

// Finish ends the run early, keeping what was graded so far.
func (q *Quiz) Finish() {
	q.phase = PhaseDone
}
