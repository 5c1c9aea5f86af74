package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	candidateHandler "github.com/careerforge/interviewer/internal/handler/candidate"
	interviewHandler "github.com/careerforge/interviewer/internal/handler/interview"
	middlewarePkg "github.com/careerforge/interviewer/internal/middleware"
	interviewService "github.com/careerforge/interviewer/internal/service/interview"
	"github.com/careerforge/interviewer/internal/store"
	"github.com/careerforge/interviewer/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(itvSvc *interviewService.Service, repo store.Repository, logger *zap.Logger, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(allowedOrigins))

	r.Route("/api", func(api chi.Router) {
		candidateHandler.New(repo, logger).RegisterRoutes(api)
		interviewHandler.New(itvSvc, repo, logger).RegisterRoutes(api)

		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			status := map[string]string{"status": "ok", "storage": "ok"}
			code := http.StatusOK
			if err := repo.Ping(r.Context()); err != nil {
				status["status"] = "degraded"
				status["storage"] = "unreachable"
				code = http.StatusServiceUnavailable
			}
			utils.RespondJSON(w, code, status)
		})
	})

	return r
}
