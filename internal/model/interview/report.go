package interview

// Decision enumerates hire recommendations, coarsest to finest.
type Decision string

const (
	DecisionStrongHire Decision = "Strong Hire"
	DecisionHire       Decision = "Hire"
	DecisionNoHire     Decision = "No Hire"
)

// FinalReport is the structured hire/no-hire verdict produced once per
// completed interview.
type FinalReport struct {
	CandidateOverview   CandidateOverview   `json:"candidateOverview"`
	OverallPerformance  OverallPerformance  `json:"overallPerformance"`
	Strengths           []string            `json:"strengths"`
	Weaknesses          []string            `json:"weaknesses"`
	FinalRecommendation FinalRecommendation `json:"finalRecommendation"`
	Placeholder         bool                `json:"placeholder,omitempty"`
}

// CandidateOverview summarizes who was interviewed.
type CandidateOverview struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Summary string `json:"summary"`
}

// OverallPerformance aggregates the per-turn scores into a verdict line.
type OverallPerformance struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// FinalRecommendation carries the decision and the synthesizer's confidence.
type FinalRecommendation struct {
	Decision      Decision `json:"decision"`
	Confidence    string   `json:"confidence,omitempty"`
	Justification string   `json:"justification,omitempty"`
}
