package speech

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/let-userName-Brian/language-learner-sub000/internal/audiocache"
	"github.com/let-userName-Brian/language-learner-sub000/internal/latin"
	"github.com/let-userName-Brian/language-learner-sub000/internal/models"
)

// Spoken Latin runs slower than conversational speech; duration is estimated
// from word count instead of decoding the audio.
const latinWordsPerMinute = 150

const defaultVoiceModel = "default"

// AssetStore is the persisted audio cache the orchestrator reads and writes.
type AssetStore interface {
	Lookup(ctx context.Context, fingerprint string) (*models.AudioAsset, error)
	PutBlob(ctx context.Context, fingerprint string, audio []byte, contentType string) (string, error)
	Insert(ctx context.Context, asset *models.AudioAsset) error
	PublicURL(path string) string
}

// ReferencePropagator pushes a freshly resolved URL into the denormalized
// audio reference of a lesson item. Best-effort: implementations log failures
// and never block the synthesis path.
type ReferencePropagator interface {
	Enqueue(itemID uuid.UUID, d models.Dialect, url string)
}

// Result is the outcome of GetOrSynthesize for one request.
type Result struct {
	URL        string
	Cached     bool
	DurationMs int64
}

// Orchestrator resolves speech requests against the audio cache, synthesizing
// on miss. Each instance owns its own in-flight map, so instances do not
// interfere with each other.
type Orchestrator struct {
	store      AssetStore
	provider   Provider
	propagator ReferencePropagator // optional
	profiles   map[models.Dialect]VoiceProfile
	flight     singleflight.Group
}

func NewOrchestrator(store AssetStore, provider Provider, propagator ReferencePropagator, profiles map[models.Dialect]VoiceProfile) *Orchestrator {
	return &Orchestrator{
		store:      store,
		provider:   provider,
		propagator: propagator,
		profiles:   profiles,
	}
}

// GetOrSynthesize returns a public URL for the requested line of Latin,
// reusing the cached asset when one exists. Concurrent requests for the same
// fingerprint share a single in-flight synthesis: only one provider call is
// made and every caller observes the same outcome.
func (o *Orchestrator) GetOrSynthesize(ctx context.Context, req models.SpeechRequest) (*Result, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrTextRequired
	}
	if req.Dialect == "" {
		return nil, ErrDialectRequired
	}
	dialect, err := models.ParseDialect(req.Dialect)
	if err != nil {
		return nil, err
	}

	normalized := latin.Normalize(req.Text)
	if normalized == "" {
		return nil, ErrTextRequired
	}

	profile := o.profiles[dialect]
	voiceModel := req.VoiceModel
	if voiceModel == "" {
		voiceModel = profile.VoiceID
	}
	if voiceModel == "" {
		voiceModel = defaultVoiceModel
	}
	speed := req.Speed
	if speed <= 0 {
		speed = 1.0
	}

	fp := Fingerprint(normalized, dialect, voiceModel, speed)

	// A synthesis in flight runs to completion even if the first caller goes
	// away; later callers joining the flight still want the result.
	flightCtx := context.WithoutCancel(ctx)

	v, err, _ := o.flight.Do(fp, func() (interface{}, error) {
		return o.resolve(flightCtx, fp, normalized, dialect, profile, voiceModel, speed, req)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Result), nil
}

func (o *Orchestrator) resolve(ctx context.Context, fp, normalized string, dialect models.Dialect, profile VoiceProfile, voiceModel string, speed float64, req models.SpeechRequest) (*Result, error) {
	asset, err := o.store.Lookup(ctx, fp)
	if err == nil {
		url := o.store.PublicURL(asset.StoragePath)
		o.propagate(req.ItemID, dialect, url)
		return &Result{URL: url, Cached: true, DurationMs: asset.DurationMs}, nil
	}
	if !errors.Is(err, audiocache.ErrNotFound) {
		// Degrade to synthesis rather than failing the request.
		slog.Warn("audio cache lookup failed", "fingerprint", fp, "error", err)
	}

	transcript := latin.Transliterate(normalized, dialect)
	synth, err := o.provider.Synthesize(ctx, SynthesisRequest{
		Text:       normalized,
		Transcript: transcript,
		Voice:      profile,
		Speed:      speed,
	})
	if err != nil {
		return nil, &ProviderError{Provider: o.provider.Name(), Err: err}
	}

	path, err := o.store.PutBlob(ctx, fp, synth.Audio, synth.ContentType)
	if err != nil {
		// Without a stored blob there is no URL to hand back.
		return nil, fmt.Errorf("store audio blob: %w", err)
	}
	url := o.store.PublicURL(path)

	asset = &models.AudioAsset{
		Fingerprint:    fp,
		LanguageCode:   "la",
		Dialect:        dialect,
		NormalizedText: normalized,
		StoragePath:    path,
		PublicURL:      url,
		VoiceModel:     voiceModel,
		Speed:          speed,
		DurationMs:     estimateDurationMs(normalized, speed),
		Kind:           kindFor(req.Kind, normalized),
		CreatedAt:      time.Now().UTC(),
	}
	if id, parseErr := uuid.Parse(req.ItemID); parseErr == nil {
		asset.ItemID = &id
	}

	// Metadata insert failure is degraded, not fatal: this caller still gets
	// the URL, but the next identical request will synthesize again.
	if err := o.store.Insert(ctx, asset); err != nil {
		slog.Warn("audio asset not cached", "fingerprint", fp, "error", err)
	}

	o.propagate(req.ItemID, dialect, url)

	return &Result{URL: url, Cached: false, DurationMs: asset.DurationMs}, nil
}

func (o *Orchestrator) propagate(itemID string, dialect models.Dialect, url string) {
	if o.propagator == nil || itemID == "" {
		return
	}
	id, err := uuid.Parse(itemID)
	if err != nil {
		slog.Warn("skipping reference propagation", "item_id", itemID, "error", err)
		return
	}
	o.propagator.Enqueue(id, dialect, url)
}

func kindFor(kind, normalized string) string {
	switch kind {
	case models.KindWord, models.KindSentence:
		return kind
	}
	if strings.Contains(normalized, " ") {
		return models.KindSentence
	}
	return models.KindWord
}

func estimateDurationMs(text string, speed float64) int64 {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	ms := float64(words) * 60_000 / latinWordsPerMinute
	if speed > 0 {
		ms /= speed
	}
	return int64(ms)
}
