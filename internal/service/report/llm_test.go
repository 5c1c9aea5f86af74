package report

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/careerforge/interviewer/internal/model/candidate"
	"github.com/careerforge/interviewer/internal/model/interview"
)

type stubGenerator struct {
	response string
	err      error
}

func (s *stubGenerator) Generate(_ context.Context, _, _ string) (string, error) {
	return s.response, s.err
}

func sampleHistory() []interview.HistoryEntry {
	score := 8.0
	return []interview.HistoryEntry{
		{Question: "Tell me about yourself.", Answer: "I build web apps.", Score: &score, Feedback: "Solid."},
	}
}

func TestSynthesizeParsesReport(t *testing.T) {
	gen := &stubGenerator{response: `{
		"candidateOverview": {"name": "Ada", "summary": "Strong generalist."},
		"overallPerformance": {"score": 8.0, "feedback": "Consistent."},
		"strengths": ["Communication"],
		"weaknesses": ["Distributed systems"],
		"finalRecommendation": {"decision": "Hire", "confidence": "High"}
	}`}
	synth := NewLLM(gen, zap.NewNop())

	cand := &candidate.Candidate{ID: "c1", Name: "Ada", Email: "ada@example.com"}
	report, err := synth.Synthesize(context.Background(), cand, sampleHistory(), 8.0)
	if err != nil {
		t.Fatalf("Synthesize err: %v", err)
	}
	if report.FinalRecommendation.Decision != interview.DecisionHire {
		t.Fatalf("unexpected decision: %q", report.FinalRecommendation.Decision)
	}
	if report.CandidateOverview.Email != "ada@example.com" {
		t.Fatalf("expected candidate email carried over, got %q", report.CandidateOverview.Email)
	}
	if report.Placeholder {
		t.Fatal("real reports must not be marked placeholder")
	}
}

func TestSynthesizeRejectsUnknownDecision(t *testing.T) {
	gen := &stubGenerator{response: `{"finalRecommendation": {"decision": "Maybe"}}`}
	synth := NewLLM(gen, zap.NewNop())

	if _, err := synth.Synthesize(context.Background(), nil, sampleHistory(), 5); err == nil {
		t.Fatal("expected error for unknown decision")
	}
}

func TestSynthesizePropagatesGeneratorError(t *testing.T) {
	synth := NewLLM(&stubGenerator{err: errors.New("backend down")}, zap.NewNop())

	if _, err := synth.Synthesize(context.Background(), nil, sampleHistory(), 5); err == nil {
		t.Fatal("expected error from failing generator")
	}
}

func TestPlaceholderIsLabeledAndDecides(t *testing.T) {
	cand := &candidate.Candidate{Name: "Ada", Email: "ada@example.com"}

	hire := Placeholder(cand, 7.2)
	if !hire.Placeholder {
		t.Fatal("placeholder report must be labeled")
	}
	if hire.FinalRecommendation.Decision != interview.DecisionHire {
		t.Fatalf("expected Hire at 7.2, got %q", hire.FinalRecommendation.Decision)
	}

	noHire := Placeholder(nil, 3.1)
	if noHire.FinalRecommendation.Decision != interview.DecisionNoHire {
		t.Fatalf("expected No Hire at 3.1, got %q", noHire.FinalRecommendation.Decision)
	}
	if noHire.CandidateOverview.Name != "Candidate" {
		t.Fatalf("expected generic name for nil candidate, got %q", noHire.CandidateOverview.Name)
	}
}
