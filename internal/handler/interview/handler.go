package interview

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	candidateModel "github.com/careerforge/interviewer/internal/model/candidate"
	interviewModel "github.com/careerforge/interviewer/internal/model/interview"
	interviewService "github.com/careerforge/interviewer/internal/service/interview"
	"github.com/careerforge/interviewer/internal/session"
	"github.com/careerforge/interviewer/internal/store"
	"github.com/careerforge/interviewer/pkg/utils"
)

// Handler exposes the interview flow over HTTP.
type Handler struct {
	svc    *interviewService.Service
	repo   store.Repository
	logger *zap.Logger
}

// New creates the interview handler.
func New(svc *interviewService.Service, repo store.Repository, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, repo: repo, logger: logger}
}

// RegisterRoutes mounts the interview endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/interviews", h.handleStart)
	r.Post("/interviews/{sessionID}/answers", h.handleSubmitAnswer)
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		CandidateID string `json:"candidateId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.CandidateID == "" {
		utils.RespondError(w, http.StatusBadRequest, "candidateId is required")
		return
	}

	if _, err := h.repo.GetCandidate(r.Context(), payload.CandidateID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, "candidate not found")
			return
		}
		h.logger.Error("failed to resolve candidate", zap.String("candidate_id", payload.CandidateID), zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "failed to resolve candidate")
		return
	}

	sessionID, firstQuestion, err := h.svc.StartSession(r.Context(), payload.CandidateID)
	if err != nil {
		h.logger.Error("failed to start interview", zap.String("candidate_id", payload.CandidateID), zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "failed to start interview")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]string{
		"sessionId":     sessionID,
		"firstQuestion": firstQuestion,
	})
}

// answerResponse embeds the turn result and, on the terminal turn, the final
// report produced before the session was discarded.
type answerResponse struct {
	interviewModel.TurnResult
	Message     string                      `json:"message,omitempty"`
	FinalReport *interviewModel.FinalReport `json:"finalReport,omitempty"`
}

func (h *Handler) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.Answer) == "" {
		utils.RespondError(w, http.StatusBadRequest, "answer is required")
		return
	}

	result, err := h.svc.SubmitAnswer(r.Context(), sessionID, payload.Answer)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrSessionExpired):
			utils.RespondError(w, http.StatusGone, "session expired, please restart the interview")
		case errors.Is(err, interviewService.ErrInvalidState):
			utils.RespondError(w, http.StatusInternalServerError, "interview failed, please restart")
		default:
			h.logger.Error("failed to process answer", zap.String("session_id", sessionID), zap.Error(err))
			utils.RespondError(w, http.StatusInternalServerError, "failed to process answer")
		}
		return
	}

	if !result.Stop {
		utils.RespondJSON(w, http.StatusOK, answerResponse{TurnResult: *result})
		return
	}

	report := h.finalize(r, sessionID)
	utils.RespondJSON(w, http.StatusOK, answerResponse{
		TurnResult:  *result,
		Message:     "Interview finished!",
		FinalReport: report,
	})
}

// finalize runs the terminal path: synthesize the report, persist it, and let
// the controller discard the session. The candidate still gets a report even
// when pieces of this path fail.
func (h *Handler) finalize(r *http.Request, sessionID string) *interviewModel.FinalReport {
	ctx := r.Context()

	var cand *candidateModel.Candidate
	sess, err := h.svc.GetSession(ctx, sessionID)
	if err != nil {
		h.logger.Warn("terminal session vanished before finalization", zap.String("session_id", sessionID), zap.Error(err))
	} else {
		cand, err = h.repo.GetCandidate(ctx, sess.CandidateID)
		if err != nil {
			h.logger.Warn("candidate lookup failed during finalization",
				zap.String("session_id", sessionID),
				zap.String("candidate_id", sess.CandidateID),
				zap.Error(err))
		}
	}

	report, err := h.svc.FinalizeAndReport(ctx, sessionID, cand)
	if err != nil {
		h.logger.Error("finalization failed", zap.String("session_id", sessionID), zap.Error(err))
		return nil
	}

	if cand != nil {
		if err := h.repo.SaveReport(ctx, cand.ID, report); err != nil {
			h.logger.Error("failed to persist final report",
				zap.String("candidate_id", cand.ID),
				zap.Error(err))
		}
	}
	return report
}
