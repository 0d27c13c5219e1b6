package quiz

// feedbackDoneMsg is sent when the feedback display period for question
// index ends.
type feedbackDoneMsg struct {
	index int
}
