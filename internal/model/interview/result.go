package interview

// TurnResult is what a single submitted answer yields: either the next
// question of an ongoing interview, or the terminal summary when the session
// closed on this turn.
type TurnResult struct {
	Stop           bool    `json:"stop"`
	NextQuestion   string  `json:"nextQuestion,omitempty"`
	QuestionNumber int     `json:"questionNumber,omitempty"`
	TotalPlanned   int     `json:"totalPlanned,omitempty"`
	Score          float64 `json:"score"`
	Feedback       string  `json:"feedback"`
	TotalQuestions int     `json:"totalQuestions,omitempty"`
	AverageScore   float64 `json:"averageScore,omitempty"`
}

// HistoryEntry is one row of the transcript handed to the report synthesizer.
type HistoryEntry struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Score    *float64 `json:"score"`
	Feedback string   `json:"feedback"`
}

// History flattens the session into the ordered transcript, substituting a
// marker for the rare unanswered turn.
func (s *Session) History() []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(s.Turns))
	for _, turn := range s.Turns {
		entry := HistoryEntry{Question: turn.Question, Answer: "Not answered"}
		if turn.Answer != nil {
			entry.Answer = *turn.Answer
		}
		if turn.Evaluation != nil {
			score := turn.Evaluation.Score
			entry.Score = &score
			entry.Feedback = turn.Evaluation.Feedback
		}
		entries = append(entries, entry)
	}
	return entries
}
