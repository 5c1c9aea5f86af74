package candidate

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	candidateModel "github.com/careerforge/interviewer/internal/model/candidate"
	"github.com/careerforge/interviewer/internal/store"
	"github.com/careerforge/interviewer/pkg/utils"
)

// Handler serves candidate registration and report retrieval.
type Handler struct {
	repo   store.Repository
	logger *zap.Logger
}

// New creates the candidate handler.
func New(repo store.Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// RegisterRoutes mounts the candidate endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/candidates", h.handleCreate)
	r.Get("/candidates/{candidateID}", h.handleGet)
	r.Get("/candidates/{candidateID}/report", h.handleGetReport)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name       string `json:"name"`
		Email      string `json:"email"`
		ResumeText string `json:"resumeText"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = strings.TrimSpace(payload.Email)
	if payload.Name == "" || payload.Email == "" {
		utils.RespondError(w, http.StatusBadRequest, "name and email are required")
		return
	}

	cand := &candidateModel.Candidate{
		ID:         uuid.NewString(),
		Name:       payload.Name,
		Email:      payload.Email,
		ResumeText: payload.ResumeText,
	}

	if err := h.repo.CreateCandidate(r.Context(), cand); err != nil {
		h.logger.Error("failed to create candidate", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "failed to register candidate")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, cand)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	candidateID := chi.URLParam(r, "candidateID")

	cand, err := h.repo.GetCandidate(r.Context(), candidateID)
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondError(w, http.StatusNotFound, "candidate not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to load candidate", zap.String("candidate_id", candidateID), zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "failed to load candidate")
		return
	}

	utils.RespondJSON(w, http.StatusOK, cand)
}

func (h *Handler) handleGetReport(w http.ResponseWriter, r *http.Request) {
	candidateID := chi.URLParam(r, "candidateID")

	if _, err := h.repo.GetCandidate(r.Context(), candidateID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, "candidate not found")
			return
		}
		h.logger.Error("failed to load candidate", zap.String("candidate_id", candidateID), zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "failed to load candidate")
		return
	}

	report, err := h.repo.LatestReport(r.Context(), candidateID)
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondError(w, http.StatusNotFound, "report not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to load report", zap.String("candidate_id", candidateID), zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "failed to load report")
		return
	}

	utils.RespondJSON(w, http.StatusOK, report)
}
