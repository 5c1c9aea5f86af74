package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/careerforge/interviewer/internal/model/candidate"
	"github.com/careerforge/interviewer/internal/model/interview"
)

type contentGenerator interface {
	Generate(ctx context.Context, system, query string) (string, error)
}

// LLMSynthesizer asks the chat model for the full report as JSON.
type LLMSynthesizer struct {
	generator contentGenerator
	logger    *zap.Logger
}

// NewLLM wires the synthesizer to a content generator.
func NewLLM(generator contentGenerator, logger *zap.Logger) *LLMSynthesizer {
	return &LLMSynthesizer{generator: generator, logger: logger}
}

const synthesizerSystemPrompt = "You are a hiring committee assistant. Return ONLY valid JSON. No other text."

const synthesizerPromptFormat = `Generate a professional HIRE/NO-HIRE report from this interview.

CANDIDATE: %s <%s>
AVERAGE SCORE: %.2f / 10
TRANSCRIPT:
%s

Return ONLY JSON:
{
  "candidateOverview": {"name": "Name", "summary": "Summary"},
  "overallPerformance": {"score": 8.2, "feedback": "One paragraph"},
  "strengths": ["Strength 1", "Strength 2"],
  "weaknesses": ["Area 1", "Area 2"],
  "finalRecommendation": {"decision": "Hire", "confidence": "High", "justification": "Why"}
}
The decision must be one of: "Strong Hire", "Hire", "No Hire".`

// Synthesize renders the transcript into the prompt, runs it, and validates
// the returned report.
func (s *LLMSynthesizer) Synthesize(ctx context.Context, cand *candidate.Candidate, history []interview.HistoryEntry, averageScore float64) (*interview.FinalReport, error) {
	transcript, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal transcript: %w", err)
	}

	name, email := "Candidate", ""
	if cand != nil {
		name, email = cand.Name, cand.Email
	}
	prompt := fmt.Sprintf(synthesizerPromptFormat, name, email, averageScore, transcript)

	raw, err := s.generator.Generate(ctx, synthesizerSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("report generation: %w", err)
	}

	report, err := parseReport(raw)
	if err != nil {
		s.logger.Warn("synthesizer returned malformed output",
			zap.Int("response_length", len(raw)),
			zap.Error(err))
		return nil, err
	}

	if report.CandidateOverview.Name == "" {
		report.CandidateOverview.Name = name
	}
	report.CandidateOverview.Email = email
	return report, nil
}

func parseReport(raw string) (*interview.FinalReport, error) {
	cleaned := extractJSON(strings.TrimSpace(raw))

	var report interview.FinalReport
	if err := json.Unmarshal([]byte(cleaned), &report); err != nil {
		return nil, fmt.Errorf("parse report response: %w", err)
	}

	switch report.FinalRecommendation.Decision {
	case interview.DecisionStrongHire, interview.DecisionHire, interview.DecisionNoHire:
	default:
		return nil, fmt.Errorf("unknown decision %q", report.FinalRecommendation.Decision)
	}

	if report.Strengths == nil {
		report.Strengths = []string{}
	}
	if report.Weaknesses == nil {
		report.Weaknesses = []string{}
	}
	return &report, nil
}

func extractJSON(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return raw
	}
	return raw[start : end+1]
}
