package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/let-userName-Brian/language-learner-sub000/internal/models"
	"github.com/let-userName-Brian/language-learner-sub000/internal/queue"
	"github.com/let-userName-Brian/language-learner-sub000/internal/speech"
)

// SpeechWorker drains pregeneration tasks through the same orchestrator the
// API uses, so the single-flight and cache semantics hold for batch work too.
type SpeechWorker struct {
	orchestrator *speech.Orchestrator
}

func NewSpeechWorker(orc *speech.Orchestrator) *SpeechWorker {
	return &SpeechWorker{orchestrator: orc}
}

func (w *SpeechWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var p queue.SpeechPregeneratePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	result, err := w.orchestrator.GetOrSynthesize(ctx, models.SpeechRequest{
		ItemID:  p.ItemID,
		Text:    p.Text,
		Dialect: p.Dialect,
		Kind:    p.Kind,
	})
	if err != nil {
		return fmt.Errorf("pregenerate item=%s dialect=%s: %w", p.ItemID, p.Dialect, err)
	}

	slog.Info("pregenerated audio",
		"item_id", p.ItemID, "dialect", p.Dialect, "cached", result.Cached)
	return nil
}
