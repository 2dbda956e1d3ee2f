package speech

import (
	"context"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAITTSConfig holds configuration for the OpenAI TTS fallback backend.
type OpenAITTSConfig struct {
	APIKey string
	Model  string // default: "tts-1"
	Voice  string // default: "alloy"
}

// OpenAITTS synthesizes speech through OpenAI's speech API. It has no
// phoneme control, so the IPA transcript is not passed along; the dialect's
// voice profile only selects request speed.
type OpenAITTS struct {
	cfg    OpenAITTSConfig
	client *openai.Client
}

func NewOpenAITTS(cfg OpenAITTSConfig) *OpenAITTS {
	if cfg.Model == "" {
		cfg.Model = string(openai.TTSModel1)
	}
	if cfg.Voice == "" {
		cfg.Voice = string(openai.VoiceAlloy)
	}
	return &OpenAITTS{
		cfg:    cfg,
		client: openai.NewClient(cfg.APIKey),
	}
}

func (o *OpenAITTS) Name() string { return "openai-tts" }

func (o *OpenAITTS) Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error) {
	speechReq := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(o.cfg.Model),
		Input:          req.Text,
		Voice:          openai.SpeechVoice(o.cfg.Voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	}
	if req.Speed > 0 {
		speechReq.Speed = req.Speed
	}

	resp, err := o.client.CreateSpeech(ctx, speechReq)
	if err != nil {
		return nil, fmt.Errorf("tts request: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}

	return &SynthesisResult{
		Audio:       audio,
		ContentType: "audio/mpeg",
	}, nil
}
