package speech

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/let-userName-Brian/language-learner-sub000/internal/models"
)

// Fingerprint derives the cache key for one synthesis request. Identical
// (text, dialect, voice model, speed) tuples always produce an identical
// digest; the fingerprint is recomputed per request and never stored on its
// own. Pure function, no I/O.
func Fingerprint(text string, d models.Dialect, voiceModel string, speed float64) string {
	payload := strings.Join([]string{
		text,
		string(d),
		voiceModel,
		strconv.FormatFloat(speed, 'f', -1, 64),
	}, "|")
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}
