// Package interview implements the session controller: the state machine
// that walks a candidate through a bounded question sequence, scores each
// answer, and closes the session with a final report.
package interview

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/careerforge/interviewer/internal/model/candidate"
	"github.com/careerforge/interviewer/internal/model/interview"
	"github.com/careerforge/interviewer/internal/service/evaluator"
	"github.com/careerforge/interviewer/internal/service/report"
	"github.com/careerforge/interviewer/internal/session"
)

// ErrInvalidState signals a caller protocol violation: the session holds no
// open turn to answer. It should not occur while callers serialize their
// requests per session.
var ErrInvalidState = errors.New("session has no open turn")

// FirstQuestion opens every interview.
const FirstQuestion = "Tell me about yourself and your technical background."

const lockStripes = 64

// Service owns the session lifecycle. Evaluator and synthesizer are injected
// so the inference backend stays a composition-root concern.
type Service struct {
	store        session.Store
	evaluator    evaluator.Evaluator
	synthesizer  report.Synthesizer
	logger       *zap.Logger
	maxQuestions int
	ttl          time.Duration

	// Striped per-session locks serialize SubmitAnswer against the
	// read-modify-write on the store.
	locks [lockStripes]sync.Mutex
}

// NewService wires the controller to its collaborators.
func NewService(store session.Store, eval evaluator.Evaluator, synth report.Synthesizer, logger *zap.Logger, maxQuestions int, ttl time.Duration) *Service {
	return &Service{
		store:        store,
		evaluator:    eval,
		synthesizer:  synth,
		logger:       logger,
		maxQuestions: maxQuestions,
		ttl:          ttl,
	}
}

func (s *Service) sessionLock(sessionID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return &s.locks[h.Sum32()%lockStripes]
}

// StartSession creates a session seeded with the opening question and
// persists it under a fresh identifier.
func (s *Service) StartSession(ctx context.Context, candidateID string) (string, string, error) {
	now := time.Now().UTC()
	sess := &interview.Session{
		ID:          uuid.NewString(),
		CandidateID: candidateID,
		TurnIndex:   1,
		MaxTurns:    s.maxQuestions,
		Turns: []interview.Turn{
			{Question: FirstQuestion, Timestamp: now},
		},
		StartedAt: now,
	}

	if err := s.store.Set(ctx, sess, s.ttl); err != nil {
		return "", "", fmt.Errorf("persist new session: %w", err)
	}

	s.logger.Info("interview session started",
		zap.String("session_id", sess.ID),
		zap.String("candidate_id", candidateID),
		zap.Int("max_questions", s.maxQuestions))
	return sess.ID, FirstQuestion, nil
}

// SubmitAnswer records the answer to the current question, scores it, and
// either advances to the next question or closes the session.
//
// Termination: the max-turns ceiling is checked first; an early stop from the
// evaluator closes the session only below the ceiling. Evaluator failures
// never surface — the deterministic fallback keeps the interview moving.
func (s *Service) SubmitAnswer(ctx context.Context, sessionID, answer string) (*interview.TurnResult, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Ended() {
		// Terminal sessions are deleted on finalize; one lingering between
		// those two steps is as gone as an expired one.
		return nil, session.ErrSessionExpired
	}

	turn := sess.CurrentTurn()
	if turn == nil {
		s.logger.Error("no open turn to answer",
			zap.String("session_id", sessionID),
			zap.Int("turn_index", sess.TurnIndex))
		return nil, ErrInvalidState
	}

	now := time.Now().UTC()
	turn.Answer = &answer
	turn.Timestamp = now

	currentIndex := sess.TurnIndex - 1
	result, err := s.evaluator.Evaluate(ctx, turn.Question, answer, sess.MaxTurns, currentIndex)
	if err != nil {
		s.logger.Warn("evaluator unavailable, using fallback",
			zap.String("session_id", sessionID),
			zap.Int("turn_index", sess.TurnIndex),
			zap.Error(err))
		result = evaluator.Fallback(sess.MaxTurns, currentIndex)
	}

	eval := result.Evaluation
	// The contract promises scores in [0,10]; clamp anyway.
	if eval.Score < 0 {
		eval.Score = 0
	} else if eval.Score > 10 {
		eval.Score = 10
	}
	turn.Evaluation = &eval

	if sess.TurnIndex >= sess.MaxTurns || result.Stop {
		endedAt := now
		sess.EndedAt = &endedAt
		if err := s.store.Set(ctx, sess, s.ttl); err != nil {
			return nil, fmt.Errorf("persist terminal session: %w", err)
		}

		s.logger.Info("interview complete",
			zap.String("session_id", sessionID),
			zap.Int("total_questions", sess.TurnIndex),
			zap.Bool("early_stop", sess.TurnIndex < sess.MaxTurns))
		return &interview.TurnResult{
			Stop:           true,
			Score:          eval.Score,
			Feedback:       eval.Feedback,
			TotalQuestions: sess.TurnIndex,
			AverageScore:   sess.AverageScore(),
		}, nil
	}

	sess.Turns = append(sess.Turns, interview.Turn{
		Question:  result.NextQuestion.Question,
		Timestamp: now,
	})
	sess.TurnIndex++

	if err := s.store.Set(ctx, sess, s.ttl); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	s.logger.Info("question asked",
		zap.String("session_id", sessionID),
		zap.Int("question_number", sess.TurnIndex))
	return &interview.TurnResult{
		Stop:           false,
		NextQuestion:   result.NextQuestion.Question,
		QuestionNumber: sess.TurnIndex,
		TotalPlanned:   sess.MaxTurns,
		Score:          eval.Score,
		Feedback:       eval.Feedback,
	}, nil
}

// GetSession loads a live session. Handlers use it to assemble the history
// for finalization.
func (s *Service) GetSession(ctx context.Context, sessionID string) (*interview.Session, error) {
	return s.store.Get(ctx, sessionID)
}

// FinalizeAndReport assembles the transcript, invokes the synthesizer, and
// discards the session. Synthesizer failure degrades to the labeled
// placeholder; the returned report is never nil. A repeated call finds the
// session already deleted and reports ErrSessionExpired — it is the caller's
// job to invoke this exactly once per terminal SubmitAnswer.
func (s *Service) FinalizeAndReport(ctx context.Context, sessionID string, cand *candidate.Candidate) (*interview.FinalReport, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	avg := sess.AverageScore()
	rep, err := s.synthesizer.Synthesize(ctx, cand, sess.History(), avg)
	if err != nil {
		s.logger.Warn("report synthesis failed, using placeholder",
			zap.String("session_id", sessionID),
			zap.Error(err))
		rep = report.Placeholder(cand, avg)
	}

	if err := s.store.Delete(ctx, sessionID); err != nil {
		s.logger.Warn("failed to delete finalized session",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}

	s.logger.Info("final report produced",
		zap.String("session_id", sessionID),
		zap.String("decision", string(rep.FinalRecommendation.Decision)),
		zap.Bool("placeholder", rep.Placeholder))
	return rep, nil
}
