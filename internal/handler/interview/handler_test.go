package interview

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	candidateModel "github.com/careerforge/interviewer/internal/model/candidate"
	interviewModel "github.com/careerforge/interviewer/internal/model/interview"
	"github.com/careerforge/interviewer/internal/service/evaluator"
	interviewService "github.com/careerforge/interviewer/internal/service/interview"
	"github.com/careerforge/interviewer/internal/session"
	"github.com/careerforge/interviewer/internal/store"
)

type fakeRepo struct {
	mu         sync.Mutex
	candidates map[string]*candidateModel.Candidate
	reports    map[string][]*interviewModel.FinalReport
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		candidates: make(map[string]*candidateModel.Candidate),
		reports:    make(map[string][]*interviewModel.FinalReport),
	}
}

func (f *fakeRepo) CreateCandidate(_ context.Context, c *candidateModel.Candidate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.candidates[c.ID] = c
	return nil
}

func (f *fakeRepo) GetCandidate(_ context.Context, id string) (*candidateModel.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.candidates[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return c, nil
}

func (f *fakeRepo) SaveReport(_ context.Context, candidateID string, report *interviewModel.FinalReport) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports[candidateID] = append(f.reports[candidateID], report)
	return nil
}

func (f *fakeRepo) LatestReport(_ context.Context, candidateID string) (*interviewModel.FinalReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reports := f.reports[candidateID]
	if len(reports) == 0 {
		return nil, store.ErrNotFound
	}
	return reports[len(reports)-1], nil
}

func (f *fakeRepo) Ping(context.Context) error { return nil }
func (f *fakeRepo) Close() error               { return nil }

type scriptedEvaluator struct{}

func (scriptedEvaluator) Evaluate(_ context.Context, _, _ string, _, _ int) (*evaluator.Result, error) {
	return &evaluator.Result{
		Evaluation:   interviewModel.Evaluation{Score: 8, Feedback: "Good."},
		NextQuestion: evaluator.Question{Question: "What stack do you use?", Type: "Technical"},
	}, nil
}

type scriptedSynthesizer struct{}

func (scriptedSynthesizer) Synthesize(_ context.Context, cand *candidateModel.Candidate, _ []interviewModel.HistoryEntry, avg float64) (*interviewModel.FinalReport, error) {
	name := "Candidate"
	if cand != nil {
		name = cand.Name
	}
	return &interviewModel.FinalReport{
		CandidateOverview:   interviewModel.CandidateOverview{Name: name, Summary: "Summary."},
		OverallPerformance:  interviewModel.OverallPerformance{Score: avg, Feedback: "Consistent."},
		Strengths:           []string{"Communication"},
		Weaknesses:          []string{},
		FinalRecommendation: interviewModel.FinalRecommendation{Decision: interviewModel.DecisionHire},
	}, nil
}

func setupRouter(maxQuestions int) (*chi.Mux, *fakeRepo) {
	repo := newFakeRepo()
	sessions := session.NewMemoryStore()
	svc := interviewService.NewService(sessions, scriptedEvaluator{}, scriptedSynthesizer{}, zap.NewNop(), maxQuestions, time.Hour)
	h := New(svc, repo, zap.NewNop())

	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r, repo
}

func registerCandidate(repo *fakeRepo) *candidateModel.Candidate {
	cand := &candidateModel.Candidate{ID: "c1", Name: "Ada", Email: "ada@example.com"}
	repo.candidates[cand.ID] = cand
	return cand
}

func postJSON(t *testing.T, r http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestStartInterviewUnknownCandidate(t *testing.T) {
	r, _ := setupRouter(8)

	resp := postJSON(t, r, "/interviews", map[string]string{"candidateId": "nope"})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestStartInterviewReturnsFirstQuestion(t *testing.T) {
	r, repo := setupRouter(8)
	registerCandidate(repo)

	resp := postJSON(t, r, "/interviews", map[string]string{"candidateId": "c1"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["sessionId"] == "" {
		t.Fatal("expected a session id")
	}
	if body["firstQuestion"] != "Tell me about yourself and your technical background." {
		t.Fatalf("unexpected first question: %q", body["firstQuestion"])
	}
}

func TestSubmitAnswerToCompletion(t *testing.T) {
	r, repo := setupRouter(2)
	registerCandidate(repo)

	resp := postJSON(t, r, "/interviews", map[string]string{"candidateId": "c1"})
	var started map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &started); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	sid := started["sessionId"]

	resp = postJSON(t, r, "/interviews/"+sid+"/answers", map[string]string{"answer": "I build web apps"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var first struct {
		Stop           bool   `json:"stop"`
		QuestionNumber int    `json:"questionNumber"`
		NextQuestion   string `json:"nextQuestion"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &first); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if first.Stop || first.QuestionNumber != 2 {
		t.Fatalf("unexpected first turn result: %+v", first)
	}

	resp = postJSON(t, r, "/interviews/"+sid+"/answers", map[string]string{"answer": "Mostly Go services"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var terminal struct {
		Stop           bool                        `json:"stop"`
		TotalQuestions int                         `json:"totalQuestions"`
		FinalReport    *interviewModel.FinalReport `json:"finalReport"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &terminal); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !terminal.Stop || terminal.TotalQuestions != 2 {
		t.Fatalf("unexpected terminal result: %+v", terminal)
	}
	if terminal.FinalReport == nil {
		t.Fatal("expected the final report inline")
	}

	saved, err := repo.LatestReport(context.Background(), "c1")
	if err != nil {
		t.Fatalf("expected a persisted report: %v", err)
	}
	if saved.FinalRecommendation.Decision != interviewModel.DecisionHire {
		t.Fatalf("unexpected decision: %q", saved.FinalRecommendation.Decision)
	}

	// The session is gone: a further answer is an expired-session error.
	resp = postJSON(t, r, "/interviews/"+sid+"/answers", map[string]string{"answer": "one more"})
	if resp.Code != http.StatusGone {
		t.Fatalf("expected 410 after completion, got %d", resp.Code)
	}
}

func TestSubmitAnswerUnknownSession(t *testing.T) {
	r, _ := setupRouter(8)

	resp := postJSON(t, r, "/interviews/unknown/answers", map[string]string{"answer": "hello"})
	if resp.Code != http.StatusGone {
		t.Fatalf("expected 410, got %d", resp.Code)
	}
}

func TestSubmitAnswerRequiresBody(t *testing.T) {
	r, _ := setupRouter(8)

	resp := postJSON(t, r, "/interviews/whatever/answers", map[string]string{"answer": "   "})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
