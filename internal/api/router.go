package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/let-userName-Brian/language-learner-sub000/internal/api/handlers"
	"github.com/let-userName-Brian/language-learner-sub000/internal/api/middleware"
	"github.com/let-userName-Brian/language-learner-sub000/internal/audiocache"
	"github.com/let-userName-Brian/language-learner-sub000/internal/auth"
	"github.com/let-userName-Brian/language-learner-sub000/internal/cache"
	"github.com/let-userName-Brian/language-learner-sub000/internal/config"
	"github.com/let-userName-Brian/language-learner-sub000/internal/items"
	"github.com/let-userName-Brian/language-learner-sub000/internal/queue"
	"github.com/let-userName-Brian/language-learner-sub000/internal/speech"
	"github.com/let-userName-Brian/language-learner-sub000/internal/storage"
)

type Router struct {
	mux   *chi.Mux
	db    *pgxpool.Pool
	redis *redis.Client
	cfg   *config.Config
	jwt   *auth.JWTMiddleware
}

func NewRouter(db *pgxpool.Pool, rdb *redis.Client, cfg *config.Config) *Router {
	return &Router{
		mux:   chi.NewRouter(),
		db:    db,
		redis: rdb,
		cfg:   cfg,
		jwt:   auth.NewJWTMiddleware(cfg.Auth.JWTSecret),
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

	rl := middleware.NewRateLimiter(100, 200)
	r.Use(rl.Limit)

	// Health endpoints (no auth)
	health := handlers.NewHealthHandler(rt.db, rt.redis)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	// Initialize services
	blobs := storage.NewSupabaseStorage(rt.cfg.Storage.SupabaseURL, rt.cfg.Storage.SupabaseKey)
	var metaCache *cache.Cache
	if rt.redis != nil {
		metaCache = cache.NewCache(rt.redis)
	}
	assetStore := audiocache.NewStore(rt.db, blobs, metaCache, rt.cfg.Storage.Bucket)

	itemStore := items.NewStore(rt.db)
	propagator := items.NewPropagator(itemStore)

	profiles := speech.DefaultProfiles(
		rt.cfg.TTS.ClassicalVoiceID, rt.cfg.TTS.EcclesiasticalVoiceID, rt.cfg.TTS.ModelID)
	orchestrator := speech.NewOrchestrator(assetStore, speech.NewProviderFromConfig(rt.cfg.TTS), propagator, profiles)

	queueClient := queue.NewClient(rt.cfg.Redis)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.jwt.Authenticate)

		speechH := handlers.NewSpeechHandler(orchestrator, queueClient, profiles)
		r.Route("/speech", func(r chi.Router) {
			r.Post("/", speechH.Synthesize)
			r.Get("/dialects", speechH.Dialects)
			r.Post("/pregenerate", speechH.Pregenerate)
		})

		itemsH := handlers.NewItemsHandler(itemStore)
		r.Get("/items/{id}/media", itemsH.Media)
	})

	return r
}
