package speech

import (
	"context"

	"github.com/let-userName-Brian/language-learner-sub000/internal/config"
	"github.com/let-userName-Brian/language-learner-sub000/internal/models"
)

// SynthesisRequest holds the parameters for one text-to-speech call.
type SynthesisRequest struct {
	Text       string
	Transcript string // IPA pronunciation hint, optional
	Voice      VoiceProfile
	Speed      float64
}

// SynthesisResult holds the generated audio and its content type.
type SynthesisResult struct {
	Audio       []byte
	ContentType string
}

// Provider is the interface for speech-synthesis backends.
type Provider interface {
	Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error)
	Name() string
}

// VoiceProfile selects the synthesis voice and its quality parameters for a
// dialect.
type VoiceProfile struct {
	VoiceID         string
	ModelID         string
	Stability       float64
	SimilarityBoost float64
	Style           float64
}

// NewProviderFromConfig picks the synthesis backend. ElevenLabs is the
// default; OpenAI serves deployments without an ElevenLabs key.
func NewProviderFromConfig(cfg config.TTSConfig) Provider {
	if cfg.Backend == "openai" {
		return NewOpenAITTS(OpenAITTSConfig{
			APIKey: cfg.OpenAIKey,
			Model:  cfg.OpenAIModel,
			Voice:  cfg.OpenAIVoice,
		})
	}
	return NewElevenLabsTTS(ElevenLabsConfig{
		APIKey:  cfg.ElevenLabsKey,
		BaseURL: cfg.ElevenLabsBaseURL,
	})
}

// DefaultProfiles maps each dialect to its voice profile. Ecclesiastical is
// tuned slightly more expressive (lower stability, non-zero style) to match
// its liturgical delivery.
func DefaultProfiles(classicalVoice, ecclesiasticalVoice, modelID string) map[models.Dialect]VoiceProfile {
	return map[models.Dialect]VoiceProfile{
		models.DialectClassical: {
			VoiceID:         classicalVoice,
			ModelID:         modelID,
			Stability:       0.5,
			SimilarityBoost: 0.75,
			Style:           0.0,
		},
		models.DialectEcclesiastical: {
			VoiceID:         ecclesiasticalVoice,
			ModelID:         modelID,
			Stability:       0.35,
			SimilarityBoost: 0.75,
			Style:           0.3,
		},
	}
}
