// Package api is the transport layer: a typed client for the assistant
// backend's HTTP contract. It carries no business logic; every method issues
// one request and resolves to a typed result or an error.
//
// Failures split into two kinds: transport errors (network/HTTP-level,
// wrapped stdlib errors) and application errors (*Error, carrying the
// backend's structured message). Callers pick a generic fallback per call
// site via ErrorMessage. There are no client-side timeouts and no retries; a
// dispatched request runs until the transport itself gives up.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"parley/internal/models"
)

// Client talks to the assistant backend.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     *zap.Logger
}

// New returns a client for the backend at baseURL.
func New(baseURL string, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		log:     log,
	}
}

// Chat submits one user message and returns the assistant's reply.
func (c *Client) Chat(ctx context.Context, message string) (ChatResponse, error) {
	var resp ChatResponse
	err := c.postJSON(ctx, "/chat", chatRequest{Message: message}, &resp)
	return resp, err
}

// VoiceChat submits a base64 audio payload for transcription and reply.
func (c *Client) VoiceChat(ctx context.Context, audio, conversationID string) (VoiceChatResponse, error) {
	var resp VoiceChatResponse
	err := c.postJSON(ctx, "/voice_chat", voiceChatRequest{Audio: audio, ConversationID: conversationID}, &resp)
	return resp, err
}

// Voice asks the server to record and recognize speech on its own capture
// device. This is the legacy path used when local capture is unavailable.
func (c *Client) Voice(ctx context.Context) (VoiceResponse, error) {
	var resp VoiceResponse
	err := c.postJSON(ctx, "/voice", struct{}{}, &resp)
	return resp, err
}

// Speak asks the server to synthesize and play text.
func (c *Client) Speak(ctx context.Context, text, voice, lang string) (SpeakResponse, error) {
	var resp SpeakResponse
	err := c.postJSON(ctx, "/speak", speakRequest{Text: text, Voice: voice, Lang: lang}, &resp)
	return resp, err
}

// Translate translates text into the target language.
func (c *Client) Translate(ctx context.Context, text, lang string) (TranslateResponse, error) {
	var resp TranslateResponse
	err := c.postJSON(ctx, "/translate", translateRequest{Text: text, Lang: lang}, &resp)
	return resp, err
}

// Conversations lists saved conversations in backend order.
func (c *Client) Conversations(ctx context.Context) ([]models.ConversationRef, error) {
	var refs []models.ConversationRef
	err := c.getJSON(ctx, "/conversations", &refs)
	return refs, err
}

// LoadConversation returns the full message history of a conversation.
func (c *Client) LoadConversation(ctx context.Context, id string) ([]models.ChatMessage, error) {
	var resp loadConversationResponse
	if err := c.postJSON(ctx, "/load_conversation", conversationIDRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	msgs := make([]models.ChatMessage, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		msgs = append(msgs, models.ChatMessage{Role: m.Role, Content: m.Content, Timestamp: m.Timestamp})
	}
	return msgs, nil
}

// DeleteConversation removes a conversation from the backend.
func (c *Client) DeleteConversation(ctx context.Context, id string) error {
	return c.postJSON(ctx, "/delete_conversation", conversationIDRequest{ID: id}, nil)
}

// Clear resets the active conversation on the backend.
func (c *Client) Clear(ctx context.Context) error {
	return c.postJSON(ctx, "/clear", struct{}{}, nil)
}

// SaveSettings mirrors the theme preference to the backend. Best effort; the
// local preference is authoritative either way.
func (c *Client) SaveSettings(ctx context.Context, theme string) error {
	return c.postJSON(ctx, "/settings", settingsRequest{Theme: theme}, nil)
}

// AvailableLanguages returns the code -> display name mapping.
func (c *Client) AvailableLanguages(ctx context.Context) (map[string]string, error) {
	langs := map[string]string{}
	err := c.getJSON(ctx, "/available_languages", &langs)
	return langs, err
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, path, out)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, path string, out any) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}

	// The backend reports application errors as {"error": "..."} in both 2xx
	// and non-2xx responses.
	if msg := structuredError(data); msg != "" {
		return &Error{Message: msg}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s: unexpected status %s", path, resp.Status)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func structuredError(data []byte) string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return ""
	}
	var env errorEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return ""
	}
	return env.Error
}
