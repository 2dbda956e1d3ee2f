// Package items is the interface to the external lesson-item storage. This
// service owns exactly one field on an item: the per-dialect audio URL
// shortcut kept approximately in sync with the audio cache.
package items

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrItemNotFound = errors.New("lesson item not found")

// MediaRecord is the denormalized audio reference on a lesson item, keyed by
// dialect.
type MediaRecord struct {
	ItemID    uuid.UUID         `json:"item_id"`
	AudioURLs map[string]string `json:"audio_urls"`
}

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) GetMedia(ctx context.Context, itemID uuid.UUID) (*MediaRecord, error) {
	var raw []byte
	err := s.db.QueryRow(ctx,
		`SELECT COALESCE(audio_urls, '{}'::jsonb) FROM lesson_items WHERE id = $1`, itemID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get item media: %w", err)
	}

	rec := &MediaRecord{ItemID: itemID, AudioURLs: map[string]string{}}
	if err := json.Unmarshal(raw, &rec.AudioURLs); err != nil {
		return nil, fmt.Errorf("decode audio urls: %w", err)
	}
	return rec, nil
}

// SetMediaField writes one dialect's URL shortcut on the item.
func (s *Store) SetMediaField(ctx context.Context, itemID uuid.UUID, dialectKey, url string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE lesson_items
		SET audio_urls = jsonb_set(COALESCE(audio_urls, '{}'::jsonb), ARRAY[$2], to_jsonb($3::text), true),
		    updated_at = now()
		WHERE id = $1`, itemID, dialectKey, url)
	if err != nil {
		return fmt.Errorf("set item media field: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}
