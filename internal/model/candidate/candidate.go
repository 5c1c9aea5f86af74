// Package candidate holds the persistent identity records interviews are
// conducted against.
package candidate

import "time"

// Candidate is one registered applicant. ResumeText arrives already extracted
// from the uploaded document; this service stores it verbatim.
type Candidate struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	ResumeText string    `json:"resumeText,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
