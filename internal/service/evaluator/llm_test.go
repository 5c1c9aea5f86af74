package evaluator

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type stubGenerator struct {
	response string
	err      error
}

func (s *stubGenerator) Generate(_ context.Context, _, _ string) (string, error) {
	return s.response, s.err
}

func TestEvaluateParsesWellFormedResponse(t *testing.T) {
	gen := &stubGenerator{response: `{
		"evaluation": {"score": 8.5, "feedback": "Clear and detailed."},
		"next_question": {"question": "How would you scale it?", "type": "Technical"},
		"stop": false
	}`}
	eval := NewLLM(gen, zap.NewNop())

	result, err := eval.Evaluate(context.Background(), "Q", "A", 8, 0)
	if err != nil {
		t.Fatalf("Evaluate err: %v", err)
	}
	if result.Evaluation.Score != 8.5 {
		t.Fatalf("unexpected score: %v", result.Evaluation.Score)
	}
	if result.NextQuestion.Question != "How would you scale it?" {
		t.Fatalf("unexpected next question: %q", result.NextQuestion.Question)
	}
	if result.Stop {
		t.Fatal("expected stop=false")
	}
}

func TestEvaluateStripsSurroundingProse(t *testing.T) {
	gen := &stubGenerator{response: "Here is the result:\n```json\n" +
		`{"evaluation": {"score": 6, "feedback": "Okay."}, "next_question": {"question": "Next?", "type": "HR"}, "stop": false}` +
		"\n```"}
	eval := NewLLM(gen, zap.NewNop())

	result, err := eval.Evaluate(context.Background(), "Q", "A", 8, 2)
	if err != nil {
		t.Fatalf("Evaluate err: %v", err)
	}
	if result.Evaluation.Score != 6 {
		t.Fatalf("unexpected score: %v", result.Evaluation.Score)
	}
}

func TestEvaluateClampsOutOfRangeScores(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want float64
	}{
		{"above", `{"evaluation": {"score": 14, "feedback": "f"}, "next_question": {"question": "q", "type": "t"}, "stop": false}`, 10},
		{"below", `{"evaluation": {"score": -3, "feedback": "f"}, "next_question": {"question": "q", "type": "t"}, "stop": false}`, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eval := NewLLM(&stubGenerator{response: tc.raw}, zap.NewNop())
			result, err := eval.Evaluate(context.Background(), "Q", "A", 8, 0)
			if err != nil {
				t.Fatalf("Evaluate err: %v", err)
			}
			if result.Evaluation.Score != tc.want {
				t.Fatalf("expected clamp to %v, got %v", tc.want, result.Evaluation.Score)
			}
		})
	}
}

func TestEvaluateRejectsMalformedOutput(t *testing.T) {
	eval := NewLLM(&stubGenerator{response: "I cannot answer that."}, zap.NewNop())

	if _, err := eval.Evaluate(context.Background(), "Q", "A", 8, 0); err == nil {
		t.Fatal("expected error for non-JSON output")
	}
}

func TestEvaluateRejectsMissingNextQuestion(t *testing.T) {
	gen := &stubGenerator{response: `{"evaluation": {"score": 5, "feedback": "f"}, "stop": false}`}
	eval := NewLLM(gen, zap.NewNop())

	if _, err := eval.Evaluate(context.Background(), "Q", "A", 8, 0); err == nil {
		t.Fatal("expected error when continuation lacks a next question")
	}
}

func TestEvaluateAllowsStopWithoutNextQuestion(t *testing.T) {
	gen := &stubGenerator{response: `{"evaluation": {"score": 5, "feedback": "f"}, "stop": true}`}
	eval := NewLLM(gen, zap.NewNop())

	result, err := eval.Evaluate(context.Background(), "Q", "A", 8, 7)
	if err != nil {
		t.Fatalf("Evaluate err: %v", err)
	}
	if !result.Stop {
		t.Fatal("expected stop=true")
	}
}

func TestEvaluatePropagatesGeneratorError(t *testing.T) {
	eval := NewLLM(&stubGenerator{err: errors.New("backend down")}, zap.NewNop())

	if _, err := eval.Evaluate(context.Background(), "Q", "A", 8, 0); err == nil {
		t.Fatal("expected error from failing generator")
	}
}

func TestFallbackStopsAtCeiling(t *testing.T) {
	if Fallback(8, 3).Stop {
		t.Fatal("fallback should continue below the ceiling")
	}
	if !Fallback(8, 7).Stop {
		t.Fatal("fallback should stop at the ceiling")
	}
	if !Fallback(8, 3).Evaluation.Fallback {
		t.Fatal("fallback evaluations must be marked")
	}
}
