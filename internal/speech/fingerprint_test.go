package speech

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/let-userName-Brian/language-learner-sub000/internal/models"
)

func TestFingerprintDeterministic(t *testing.T) {
	t.Parallel()

	a := Fingerprint("puella amat", models.DialectClassical, "voice-1", 1.0)
	b := Fingerprint("puella amat", models.DialectClassical, "voice-1", 1.0)

	require.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestFingerprintSensitivity(t *testing.T) {
	t.Parallel()

	base := Fingerprint("puella amat", models.DialectClassical, "voice-1", 1.0)

	cases := map[string]string{
		"text":    Fingerprint("puella amat te", models.DialectClassical, "voice-1", 1.0),
		"dialect": Fingerprint("puella amat", models.DialectEcclesiastical, "voice-1", 1.0),
		"voice":   Fingerprint("puella amat", models.DialectClassical, "voice-2", 1.0),
		"speed":   Fingerprint("puella amat", models.DialectClassical, "voice-1", 0.75),
	}
	for name, got := range cases {
		assert.NotEqual(t, base, got, "changing %s must change the fingerprint", name)
	}
}
