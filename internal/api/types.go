package api

import "errors"

// Error is an application-level error: the backend answered, but the body
// carried a structured {"error": "..."} instead of a result.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// ErrorMessage returns the backend's structured message when err carries one,
// otherwise the call site's fallback string.
func ErrorMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// ChatResponse is the /chat success payload.
type ChatResponse struct {
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

// VoiceChatResponse is the /voice_chat success payload.
type VoiceChatResponse struct {
	Transcription  string `json:"transcription"`
	Response       string `json:"response"`
	ConversationID string `json:"conversation_id"`
}

// VoiceResponse is the legacy /voice success payload. Engine names the
// recognition engine the server used.
type VoiceResponse struct {
	Message string `json:"message"`
	Engine  string `json:"engine"`
}

// SpeakResponse is the /speak success payload.
type SpeakResponse struct {
	Status string `json:"status"`
	Engine string `json:"engine"`
}

// TranslateResponse is the /translate success payload. Language is the
// resolved display name of the target language.
type TranslateResponse struct {
	Translation string `json:"translation"`
	Original    string `json:"original"`
	Language    string `json:"language"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type voiceChatRequest struct {
	Audio          string `json:"audio"`
	ConversationID string `json:"conversation_id"`
}

type speakRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
	Lang  string `json:"lang"`
}

type translateRequest struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

type conversationIDRequest struct {
	ID string `json:"id"`
}

type settingsRequest struct {
	Theme string `json:"theme"`
}

type loadConversationResponse struct {
	Messages []conversationMessage `json:"messages"`
}

type conversationMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}
