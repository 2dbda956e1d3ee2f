package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/let-userName-Brian/language-learner-sub000/internal/models"
	"github.com/let-userName-Brian/language-learner-sub000/internal/queue"
	"github.com/let-userName-Brian/language-learner-sub000/internal/speech"
)

type SpeechHandler struct {
	orchestrator *speech.Orchestrator
	queue        *queue.Client
	profiles     map[models.Dialect]speech.VoiceProfile
}

func NewSpeechHandler(orc *speech.Orchestrator, q *queue.Client, profiles map[models.Dialect]speech.VoiceProfile) *SpeechHandler {
	return &SpeechHandler{orchestrator: orc, queue: q, profiles: profiles}
}

// Synthesize returns a playable URL for one line of Latin, from cache when
// possible.
func (h *SpeechHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	var req models.SpeechRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Text == "" || req.Dialect == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text and dialect required"})
		return
	}
	if _, err := models.ParseDialect(req.Dialect); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result, err := h.orchestrator.GetOrSynthesize(r.Context(), req)
	if err != nil {
		var provErr *speech.ProviderError
		switch {
		case errors.As(err, &provErr):
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": provErr.Error()})
		case errors.Is(err, speech.ErrTextRequired), errors.Is(err, speech.ErrDialectRequired):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return
	}

	writeJSON(w, http.StatusOK, models.SpeechResponse{
		URL:        result.URL,
		Cached:     result.Cached,
		DurationMs: result.DurationMs,
	})
}

// Dialects lists the supported pronunciation systems and their voices.
func (h *SpeechHandler) Dialects(w http.ResponseWriter, r *http.Request) {
	type dialectInfo struct {
		Dialect    models.Dialect `json:"dialect"`
		VoiceModel string         `json:"voice_model,omitempty"`
	}
	out := make([]dialectInfo, 0, len(h.profiles))
	for _, d := range models.Dialects() {
		out = append(out, dialectInfo{Dialect: d, VoiceModel: h.profiles[d].VoiceID})
	}
	writeJSON(w, http.StatusOK, map[string]any{"dialects": out})
}

type pregenerateRequest struct {
	Items []struct {
		ItemID string `json:"item_id"`
		Text   string `json:"text"`
		Kind   string `json:"kind,omitempty"`
	} `json:"items"`
	Dialects []string `json:"dialects,omitempty"`
}

// Pregenerate enqueues background synthesis for a batch of lesson items so
// their audio is warm before students open the lesson.
func (h *SpeechHandler) Pregenerate(w http.ResponseWriter, r *http.Request) {
	var req pregenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.Items) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "items required"})
		return
	}

	dialects := req.Dialects
	if len(dialects) == 0 {
		for _, d := range models.Dialects() {
			dialects = append(dialects, string(d))
		}
	}
	for _, d := range dialects {
		if _, err := models.ParseDialect(d); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	}

	enqueued := 0
	for _, item := range req.Items {
		if item.Text == "" {
			continue
		}
		for _, d := range dialects {
			err := h.queue.EnqueueSpeechPregenerate(queue.SpeechPregeneratePayload{
				ItemID:  item.ItemID,
				Text:    item.Text,
				Dialect: d,
				Kind:    item.Kind,
			})
			if err != nil {
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
				return
			}
			enqueued++
		}
	}

	writeJSON(w, http.StatusAccepted, map[string]int{"enqueued": enqueued})
}
