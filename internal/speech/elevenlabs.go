package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ElevenLabsConfig holds configuration for the ElevenLabs TTS backend.
type ElevenLabsConfig struct {
	APIKey       string
	BaseURL      string // default: "https://api.elevenlabs.io/v1"
	OutputFormat string // default: "mp3_44100_128"
}

// ElevenLabsTTS synthesizes speech using the ElevenLabs HTTP API.
type ElevenLabsTTS struct {
	cfg        ElevenLabsConfig
	httpClient *http.Client
}

// NewElevenLabsTTS creates an ElevenLabsTTS with sensible defaults applied.
func NewElevenLabsTTS(cfg ElevenLabsConfig) *ElevenLabsTTS {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.elevenlabs.io/v1"
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "mp3_44100_128"
	}
	return &ElevenLabsTTS{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (e *ElevenLabsTTS) Name() string { return "elevenlabs" }

// Synthesize converts text to audio and returns the audio bytes as MP3.
func (e *ElevenLabsTTS) Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error) {
	if req.Voice.VoiceID == "" {
		return nil, errors.New("voice id required")
	}
	modelID := req.Voice.ModelID
	if modelID == "" {
		modelID = "eleven_multilingual_v2"
	}

	settings := map[string]any{
		"stability":        req.Voice.Stability,
		"similarity_boost": req.Voice.SimilarityBoost,
		"style":            req.Voice.Style,
	}
	if req.Speed > 0 {
		settings["speed"] = req.Speed
	}

	body := map[string]any{
		"text":           promptText(req),
		"model_id":       modelID,
		"voice_settings": settings,
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s?output_format=%s", e.cfg.BaseURL, req.Voice.VoiceID, e.cfg.OutputFormat)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "audio/mpeg")
	httpReq.Header.Set("xi-api-key", e.cfg.APIKey)

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("tts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("tts failed (status %d): %s", resp.StatusCode, string(respBody))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}

	return &SynthesisResult{
		Audio:       audio,
		ContentType: "audio/mpeg",
	}, nil
}

// promptText wraps the input in an IPA phoneme hint when a transcript is
// available, so the voice model follows the dialect's pronunciation instead
// of guessing from spelling.
func promptText(req SynthesisRequest) string {
	if req.Transcript == "" {
		return req.Text
	}
	return fmt.Sprintf(`<phoneme alphabet="ipa" ph=%q>%s</phoneme>`, req.Transcript, req.Text)
}
