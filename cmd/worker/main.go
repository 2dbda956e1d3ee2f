package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/let-userName-Brian/language-learner-sub000/internal/audiocache"
	"github.com/let-userName-Brian/language-learner-sub000/internal/cache"
	"github.com/let-userName-Brian/language-learner-sub000/internal/config"
	"github.com/let-userName-Brian/language-learner-sub000/internal/database"
	"github.com/let-userName-Brian/language-learner-sub000/internal/items"
	"github.com/let-userName-Brian/language-learner-sub000/internal/queue"
	"github.com/let-userName-Brian/language-learner-sub000/internal/queue/workers"
	"github.com/let-userName-Brian/language-learner-sub000/internal/speech"
	"github.com/let-userName-Brian/language-learner-sub000/internal/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		slog.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	blobs := storage.NewSupabaseStorage(cfg.Storage.SupabaseURL, cfg.Storage.SupabaseKey)
	assetStore := audiocache.NewStore(db, blobs, cache.NewCache(rdb), cfg.Storage.Bucket)
	propagator := items.NewPropagator(items.NewStore(db))
	profiles := speech.DefaultProfiles(
		cfg.TTS.ClassicalVoiceID, cfg.TTS.EcclesiasticalVoiceID, cfg.TTS.ModelID)
	orchestrator := speech.NewOrchestrator(assetStore, speech.NewProviderFromConfig(cfg.TTS), propagator, profiles)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 3,
				"low":     1,
			},
		},
	)

	registry := queue.NewHandlersRegistry()
	speechWorker := workers.NewSpeechWorker(orchestrator)
	registry.Register(queue.TypeSpeechPregenerate, asynq.HandlerFunc(speechWorker.ProcessTask))

	slog.Info("starting worker", "concurrency", 10)
	if err := srv.Run(registry.Mux()); err != nil {
		slog.Error("worker error", "error", err)
		os.Exit(1)
	}
}
