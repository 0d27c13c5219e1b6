package session

import "time"

// QuizSummary holds the data displayed on the summary screen.
type QuizSummary struct {
	SessionID string
	Duration  time.Duration
	Questions int
	Awarded   int
	Possible  int
	Accuracy  float64
	Perfect   int
	Results   []QuestionResult
}

// BuildSummary creates a QuizSummary from a quiz run as of now.
func BuildSummary(q *Quiz, now time.Time) *QuizSummary {
	var accuracy float64
	if q.Possible > 0 {
		accuracy = float64(q.Awarded) / float64(q.Possible)
	}

	var perfect int
	for _, r := range q.Results {
		if r.Score.Perfect() {
			perfect++
		}
	}

	return &QuizSummary{
		SessionID: q.SessionID,
		Duration:  now.Sub(q.StartTime),
		Questions: len(q.Results),
		Awarded:   q.Awarded,
		Possible:  q.Possible,
		Accuracy:  accuracy,
		Perfect:   perfect,
		Results:   append([]QuestionResult(nil), q.Results...),
	}
}
