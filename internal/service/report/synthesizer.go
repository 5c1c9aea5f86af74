// Package report turns a completed interview transcript into a structured
// hire/no-hire recommendation.
package report

import (
	"context"

	"github.com/careerforge/interviewer/internal/model/candidate"
	"github.com/careerforge/interviewer/internal/model/interview"
)

// Synthesizer produces the final report from the ordered turn history.
type Synthesizer interface {
	Synthesize(ctx context.Context, cand *candidate.Candidate, history []interview.HistoryEntry, averageScore float64) (*interview.FinalReport, error)
}

// Placeholder is the degraded report handed out when synthesis fails. The
// candidate always receives some report; this one is labeled so reviewers
// know the narrative is missing.
func Placeholder(cand *candidate.Candidate, averageScore float64) *interview.FinalReport {
	name := "Candidate"
	email := ""
	if cand != nil {
		name = cand.Name
		email = cand.Email
	}

	decision := interview.DecisionNoHire
	if averageScore >= 5 {
		decision = interview.DecisionHire
	}

	return &interview.FinalReport{
		CandidateOverview: interview.CandidateOverview{
			Name:    name,
			Email:   email,
			Summary: "Automated summary unavailable; see per-question scores.",
		},
		OverallPerformance: interview.OverallPerformance{
			Score:    averageScore,
			Feedback: "Report synthesis was unavailable for this interview.",
		},
		Strengths:  []string{},
		Weaknesses: []string{},
		FinalRecommendation: interview.FinalRecommendation{
			Decision:      decision,
			Confidence:    "Low",
			Justification: "Derived from the average score only.",
		},
		Placeholder: true,
	}
}
