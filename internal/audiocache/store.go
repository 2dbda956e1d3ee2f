// Package audiocache is the persisted, append-only audio cache: blob storage
// addressed by content fingerprint plus a metadata table, with a Redis
// read-through in front of the table. No delete or eviction operation exists.
package audiocache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/let-userName-Brian/language-learner-sub000/internal/cache"
	"github.com/let-userName-Brian/language-learner-sub000/internal/models"
	"github.com/let-userName-Brian/language-learner-sub000/internal/storage"
)

// ErrNotFound reports a fingerprint with no cached asset.
var ErrNotFound = errors.New("audio asset not found")

const metadataTTL = 24 * time.Hour

type Store struct {
	db     *pgxpool.Pool
	blobs  storage.Storage
	cache  *cache.Cache // optional
	bucket string
}

func NewStore(db *pgxpool.Pool, blobs storage.Storage, c *cache.Cache, bucket string) *Store {
	return &Store{db: db, blobs: blobs, cache: c, bucket: bucket}
}

// Lookup fetches the asset metadata for a fingerprint, trying Redis before
// Postgres. Returns ErrNotFound when no asset exists.
func (s *Store) Lookup(ctx context.Context, fingerprint string) (*models.AudioAsset, error) {
	if s.cache != nil {
		var asset models.AudioAsset
		if err := s.cache.Get(ctx, metadataKey(fingerprint), &asset); err == nil {
			return &asset, nil
		}
	}

	row := s.db.QueryRow(ctx, `
		SELECT fingerprint, language_code, dialect, normalized_text, storage_path,
		       public_url, voice_model, speed, duration_ms, item_id, kind, created_at
		FROM audio_assets WHERE fingerprint = $1`, fingerprint)

	var asset models.AudioAsset
	var dialect string
	err := row.Scan(&asset.Fingerprint, &asset.LanguageCode, &dialect, &asset.NormalizedText,
		&asset.StoragePath, &asset.PublicURL, &asset.VoiceModel, &asset.Speed,
		&asset.DurationMs, &asset.ItemID, &asset.Kind, &asset.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup audio asset: %w", err)
	}
	asset.Dialect = models.Dialect(dialect)

	s.backfill(ctx, &asset)
	return &asset, nil
}

// PutBlob uploads the audio bytes under the fingerprint and returns the
// storage path the public URL derives from.
func (s *Store) PutBlob(ctx context.Context, fingerprint string, audio []byte, contentType string) (string, error) {
	path := fmt.Sprintf("audio/%s%s", fingerprint, extFor(contentType))
	if err := s.blobs.Upload(ctx, s.bucket, path, bytes.NewReader(audio), contentType); err != nil {
		return "", fmt.Errorf("upload audio blob: %w", err)
	}
	return path, nil
}

// Insert persists the metadata row. Idempotent: a concurrent insert of the
// same fingerprint wins quietly.
func (s *Store) Insert(ctx context.Context, asset *models.AudioAsset) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO audio_assets
			(fingerprint, language_code, dialect, normalized_text, storage_path,
			 public_url, voice_model, speed, duration_ms, item_id, kind, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (fingerprint) DO NOTHING`,
		asset.Fingerprint, asset.LanguageCode, string(asset.Dialect), asset.NormalizedText,
		asset.StoragePath, asset.PublicURL, asset.VoiceModel, asset.Speed,
		asset.DurationMs, asset.ItemID, asset.Kind, asset.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audio asset: %w", err)
	}

	s.backfill(ctx, asset)
	return nil
}

// PublicURL is always recomputed from the storage path, so a storage backend
// URL scheme change never requires cache invalidation.
func (s *Store) PublicURL(path string) string {
	return s.blobs.GetPublicURL(s.bucket, path)
}

func (s *Store) backfill(ctx context.Context, asset *models.AudioAsset) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, metadataKey(asset.Fingerprint), asset, metadataTTL); err != nil {
		slog.Warn("audio metadata cache set failed", "fingerprint", asset.Fingerprint, "error", err)
	}
}

func metadataKey(fingerprint string) string {
	return "audio:asset:" + fingerprint
}

func extFor(contentType string) string {
	switch contentType {
	case "audio/wav":
		return ".wav"
	case "audio/ogg":
		return ".ogg"
	default:
		return ".mp3"
	}
}
