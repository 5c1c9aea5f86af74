package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/careerforge/interviewer/internal/config"
	"github.com/careerforge/interviewer/internal/handler"
	"github.com/careerforge/interviewer/internal/logger"
	"github.com/careerforge/interviewer/internal/model/candidate"
	"github.com/careerforge/interviewer/internal/model/interview"
	"github.com/careerforge/interviewer/internal/service/ai"
	"github.com/careerforge/interviewer/internal/service/evaluator"
	interviewService "github.com/careerforge/interviewer/internal/service/interview"
	"github.com/careerforge/interviewer/internal/service/report"
	"github.com/careerforge/interviewer/internal/session"
	"github.com/careerforge/interviewer/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	repo, err := store.NewSQLite(cfg.Storage.SQLitePath)
	if err != nil {
		zlog.Fatal("failed to open candidate store", zap.Error(err))
	}
	defer func() { _ = repo.Close() }()

	sessionStore := newSessionStore(ctx, cfg.Session, zlog)

	// The evaluator and synthesizer share one model chain. Without
	// credentials they stay nil and every turn takes the fallback path; the
	// interview flow still works end to end.
	var eval evaluator.Evaluator = noopEvaluator{}
	var synth report.Synthesizer = noopSynthesizer{}
	if cfg.AI.Enabled() {
		aiSvc, err := ai.NewService(ctx, cfg.AI)
		if err != nil {
			zlog.Warn("failed to initialize AI service, falling back to canned evaluations", zap.Error(err))
		} else {
			eval = evaluator.NewLLM(aiSvc, zlog)
			synth = report.NewLLM(aiSvc, zlog)
			zlog.Info("AI service initialized", zap.String("model", cfg.AI.Model))
		}
	} else {
		zlog.Warn("ark credentials not configured, interviews will use canned evaluations")
	}

	itvSvc := interviewService.NewService(sessionStore, eval, synth, zlog, cfg.Interview.MaxQuestions, cfg.Session.TTL)

	router := handler.NewRouter(itvSvc, repo, zlog, cfg.Server.AllowedOrigins)

	startServer(ctx, cfg.Server, router, zlog)
}

func newSessionStore(ctx context.Context, cfg config.SessionConfig, zlog *zap.Logger) session.Store {
	if cfg.RedisAddr == "" {
		zlog.Info("using in-memory session store")
		memStore := session.NewMemoryStore()
		memStore.StartJanitor(ctx, 10*time.Minute)
		return memStore
	}

	redisStore, err := session.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		zlog.Fatal("failed to connect to redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	zlog.Info("using redis session store", zap.String("addr", cfg.RedisAddr))
	return redisStore
}

// noopEvaluator forces the controller's fallback path when no inference
// backend is configured.
type noopEvaluator struct{}

func (noopEvaluator) Evaluate(context.Context, string, string, int, int) (*evaluator.Result, error) {
	return nil, errors.New("evaluator not configured")
}

type noopSynthesizer struct{}

func (noopSynthesizer) Synthesize(context.Context, *candidate.Candidate, []interview.HistoryEntry, float64) (*interview.FinalReport, error) {
	return nil, errors.New("synthesizer not configured")
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, zlog *zap.Logger) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	zlog.Info("interviewer backend listening", zap.String("addr", serverCfg.Addr))
	if err := runServer(ctx, srv); err != nil {
		zlog.Fatal("server error", zap.Error(err))
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
