// Package evaluator scores candidate answers and proposes the follow-up
// question. The LLM-backed implementation validates model output strictly;
// anything malformed surfaces as an error so the caller can fall back.
package evaluator

import (
	"context"

	"github.com/careerforge/interviewer/internal/model/interview"
)

// Question is a proposed follow-up with its category (Technical, HR, ...).
type Question struct {
	Question string `json:"question"`
	Type     string `json:"type"`
}

// Result is one evaluation round: the verdict on the answer just given, the
// suggested next question, and whether the evaluator wants to end the
// interview early.
type Result struct {
	Evaluation   interview.Evaluation `json:"evaluation"`
	NextQuestion Question             `json:"next_question"`
	Stop         bool                 `json:"stop"`
}

// Evaluator scores an answer in the context of its question and position
// within the interview.
type Evaluator interface {
	Evaluate(ctx context.Context, question, answer string, maxQuestions, currentIndex int) (*Result, error)
}

const (
	fallbackScore    = 7
	fallbackFeedback = "Good structured response."
	fallbackQuestion = "Can you tell me about a challenging project you worked on?"
)

// Fallback is the deterministic substitute used whenever the real evaluator
// fails or returns something unusable. The interview always moves forward.
func Fallback(maxQuestions, currentIndex int) *Result {
	return &Result{
		Evaluation: interview.Evaluation{
			Score:    fallbackScore,
			Feedback: fallbackFeedback,
			Fallback: true,
		},
		NextQuestion: Question{Question: fallbackQuestion, Type: "Technical"},
		Stop:         currentIndex+1 >= maxQuestions,
	}
}
