package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Dialect selects which Latin pronunciation rule set and voice profile apply.
type Dialect string

const (
	DialectClassical      Dialect = "classical"
	DialectEcclesiastical Dialect = "ecclesiastical"
)

func ParseDialect(s string) (Dialect, error) {
	switch Dialect(s) {
	case DialectClassical, DialectEcclesiastical:
		return Dialect(s), nil
	}
	return "", fmt.Errorf("unknown dialect %q", s)
}

func Dialects() []Dialect {
	return []Dialect{DialectClassical, DialectEcclesiastical}
}

const (
	KindWord     = "word"
	KindSentence = "sentence"
)

// AudioAsset is one synthesized clip, keyed by its content fingerprint.
// Rows are append-only: the cache never deletes or evicts.
type AudioAsset struct {
	Fingerprint    string     `json:"fingerprint" db:"fingerprint"`
	LanguageCode   string     `json:"language_code" db:"language_code"`
	Dialect        Dialect    `json:"dialect" db:"dialect"`
	NormalizedText string     `json:"normalized_text" db:"normalized_text"`
	StoragePath    string     `json:"storage_path" db:"storage_path"`
	PublicURL      string     `json:"public_url,omitempty" db:"public_url"`
	VoiceModel     string     `json:"voice_model" db:"voice_model"`
	Speed          float64    `json:"speed" db:"speed"`
	DurationMs     int64      `json:"duration_ms" db:"duration_ms"`
	ItemID         *uuid.UUID `json:"item_id,omitempty" db:"item_id"`
	Kind           string     `json:"kind" db:"kind"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

// SpeechRequest is the inbound shape for speech synthesis.
type SpeechRequest struct {
	ItemID     string  `json:"item_id,omitempty"`
	Text       string  `json:"text"`
	Dialect    string  `json:"dialect"`
	Kind       string  `json:"kind,omitempty"`
	VoiceModel string  `json:"voice_model,omitempty"`
	Speed      float64 `json:"speed,omitempty"`
}

// SpeechResponse is returned for both cache hits and fresh synthesis.
type SpeechResponse struct {
	URL        string `json:"url"`
	Cached     bool   `json:"cached"`
	DurationMs int64  `json:"duration_ms,omitempty"`
}
