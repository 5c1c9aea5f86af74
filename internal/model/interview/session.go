package interview

import "time"

// Session captures the full state of one candidate interview. It is the unit
// stored in the session store and round-trips through JSON unchanged.
type Session struct {
	ID          string     `json:"id"`
	CandidateID string     `json:"candidateId"`
	TurnIndex   int        `json:"turnIndex"`
	MaxTurns    int        `json:"maxTurns"`
	Turns       []Turn     `json:"turns"`
	StartedAt   time.Time  `json:"startedAt"`
	EndedAt     *time.Time `json:"endedAt,omitempty"`
}

// Turn is one question/answer exchange. Answer and Evaluation stay nil until
// the candidate responds and the evaluator scores the response; only the last
// turn of a live session may have a nil Answer.
type Turn struct {
	Question   string      `json:"question"`
	Answer     *string     `json:"answer,omitempty"`
	Evaluation *Evaluation `json:"evaluation,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

// Evaluation is the scored verdict for a single answered turn.
type Evaluation struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
	Fallback bool    `json:"fallback,omitempty"`
}

// CurrentTurn returns the open turn awaiting an answer, or nil when the
// session holds no such turn.
func (s *Session) CurrentTurn() *Turn {
	idx := s.TurnIndex - 1
	if idx < 0 || idx >= len(s.Turns) {
		return nil
	}
	turn := &s.Turns[idx]
	if turn.Answer != nil {
		return nil
	}
	return turn
}

// AverageScore computes the arithmetic mean over all evaluated turns. The
// denominator never drops below one.
func (s *Session) AverageScore() float64 {
	var sum float64
	var n int
	for _, turn := range s.Turns {
		if turn.Evaluation != nil {
			sum += turn.Evaluation.Score
			n++
		}
	}
	if n < 1 {
		n = 1
	}
	return sum / float64(n)
}

// Ended reports whether the session has reached its terminal state.
func (s *Session) Ended() bool {
	return s.EndedAt != nil
}
