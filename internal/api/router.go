package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/minutia-ai/minutia/internal/api/handlers"
	"github.com/minutia-ai/minutia/internal/api/middleware"
	"github.com/minutia-ai/minutia/internal/auth"
	"github.com/minutia-ai/minutia/internal/cache"
	"github.com/minutia-ai/minutia/internal/config"
	"github.com/minutia-ai/minutia/internal/llm"
	"github.com/minutia-ai/minutia/internal/minutes"
	"github.com/minutia-ai/minutia/internal/queue"
	"github.com/minutia-ai/minutia/internal/session"
	"github.com/minutia-ai/minutia/internal/store"
)

type Router struct {
	mux     *chi.Mux
	db      *pgxpool.Pool
	redis   *redis.Client
	cfg     *config.Config
	jwt     *auth.JWTMiddleware
	llmGW   llm.Gateway
	limiter *middleware.RateLimiter
}

func NewRouter(db *pgxpool.Pool, rdb *redis.Client, cfg *config.Config) *Router {
	return &Router{
		mux:   chi.NewRouter(),
		db:    db,
		redis: rdb,
		cfg:   cfg,
		jwt:   auth.NewJWTMiddleware(cfg.Auth.JWTSecret),
		llmGW: llm.NewGateway(cfg.LLM),
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	rt.limiter = middleware.NewRateLimiter(
		float64(rt.cfg.Server.RateLimitRPS), rt.cfg.Server.RateLimitBurst)
	r.Use(rt.limiter.Limit)

	// Health endpoints (no auth)
	health := handlers.NewHealthHandler(rt.db, rt.redis)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	// Initialize services
	transcripts := store.NewTranscripts(rt.db)
	minutesStore := store.NewMinutes(rt.db)
	templates := minutes.NewRegistry()
	sessions := session.NewStore(cache.New(rt.redis), session.DefaultTTL)
	queueClient := queue.NewClient(rt.cfg.Redis)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.jwt.Authenticate)

		uploadH := handlers.NewUploadHandler(transcripts, queueClient, rt.cfg)
		r.Post("/uploads", uploadH.Upload)

		transcriptH := handlers.NewTranscriptHandler(transcripts)
		minutesH := handlers.NewMinutesHandler(transcripts, minutesStore, templates, rt.llmGW, queueClient, rt.cfg.LLM)
		r.Route("/transcripts", func(r chi.Router) {
			r.Get("/", transcriptH.List)
			r.Get("/{id}", transcriptH.Get)
			r.Get("/{id}/status", transcriptH.Status)
			r.Delete("/{id}", transcriptH.Delete)
			r.Post("/{id}/minutes", minutesH.Generate)
			r.Get("/{id}/minutes", minutesH.ListByTranscript)
		})

		r.Route("/minutes", func(r chi.Router) {
			r.Get("/{id}", minutesH.Get)
		})
		r.Get("/models", minutesH.Models)

		templateH := handlers.NewTemplateHandler(templates)
		r.Route("/templates", func(r chi.Router) {
			r.Get("/", templateH.List)
			r.Post("/", templateH.Create)
			r.Get("/export", templateH.Export)
			r.Post("/import", templateH.Import)
			r.Get("/{name}", templateH.Get)
			r.Put("/{name}", templateH.Update)
			r.Delete("/{name}", templateH.Delete)
		})

		sessionH := handlers.NewSessionHandler(sessions)
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionH.Create)
			r.Get("/{id}", sessionH.Get)
			r.Put("/{id}", sessionH.Update)
			r.Delete("/{id}", sessionH.Delete)
		})
	})

	return r
}

// Close releases background resources held by the router's middleware.
func (rt *Router) Close() {
	if rt.limiter != nil {
		rt.limiter.Stop()
	}
}
