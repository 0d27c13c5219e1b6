package session

import (
	"github.com/abhisek/ohmlab/internal/circuit"
	"github.com/abhisek/ohmlab/internal/problemgen"
)

// Practice serves one question at a time from circuits the learner sets up.
type Practice struct {
	// Difficulty applies to the next question built.
	Difficulty problemgen.Difficulty

	builder  *problemgen.Builder
	question *problemgen.Question
	score    *problemgen.Score
}

// NewPractice creates a practice round with no question yet.
func NewPractice(builder *problemgen.Builder, difficulty problemgen.Difficulty) *Practice {
	return &Practice{Difficulty: difficulty, builder: builder}
}

// Next freezes snap and builds a new question from it. Any previous
// question and score are discarded.
func (p *Practice) Next(snap circuit.Snapshot) *problemgen.Question {
	snap = snap.Clone()
	p.question = p.builder.Build(p.Difficulty, snap, circuit.Solve(snap))
	p.score = nil
	return p.question
}

// Question returns the active question, or nil before the first Next.
func (p *Practice) Question() *problemgen.Question { return p.question }

// Submit grades answers against the active question. It reports false when
// there is no question or it was already graded.
func (p *Practice) Submit(answers map[string]string) (problemgen.Score, bool) {
	if p.question == nil || p.score != nil {
		return problemgen.Score{}, false
	}
	s := problemgen.Grade(p.question, answers)
	p.score = &s
	return s, true
}

// Graded reports whether the active question has been graded.
func (p *Practice) Graded() bool { return p.score != nil }

// Score returns the grade of the active question, if graded.
func (p *Practice) Score() (problemgen.Score, bool) {
	if p.score == nil {
		return problemgen.Score{}, false
	}
	return *p.score, true
}
