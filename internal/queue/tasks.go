package queue

const TypeSpeechPregenerate = "speech:pregenerate"

// SpeechPregeneratePayload asks the worker to warm the audio cache for one
// lesson item in one dialect.
type SpeechPregeneratePayload struct {
	ItemID  string `json:"item_id,omitempty"`
	Text    string `json:"text"`
	Dialect string `json:"dialect"`
	Kind    string `json:"kind,omitempty"`
}
