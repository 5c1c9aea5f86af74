// Package store persists candidate records and final interview reports.
package store

import (
	"context"
	"errors"

	"github.com/careerforge/interviewer/internal/model/candidate"
	"github.com/careerforge/interviewer/internal/model/interview"
)

// ErrNotFound marks a lookup that matched no row.
var ErrNotFound = errors.New("record not found")

// Repository is the durable home for everything that outlives a session.
type Repository interface {
	CreateCandidate(ctx context.Context, c *candidate.Candidate) error
	GetCandidate(ctx context.Context, id string) (*candidate.Candidate, error)

	SaveReport(ctx context.Context, candidateID string, report *interview.FinalReport) error
	// LatestReport returns the most recently saved report for the candidate.
	LatestReport(ctx context.Context, candidateID string) (*interview.FinalReport, error)

	Ping(ctx context.Context) error
	Close() error
}
