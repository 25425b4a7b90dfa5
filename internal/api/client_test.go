package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, zap.NewNop())
}

func TestChat(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "hello", req["message"])

		json.NewEncoder(w).Encode(map[string]string{
			"response":  "hi there",
			"timestamp": "2026-08-31 12:00:00",
		})
	})

	resp, err := client.Chat(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", resp.Response)
	assert.Equal(t, "2026-08-31 12:00:00", resp.Timestamp)
}

func TestChatApplicationError(t *testing.T) {
	// The backend reports application errors as {"error": "..."} even with a
	// 200 status.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"error": "model overloaded"})
	})

	_, err := client.Chat(context.Background(), "hello")
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "model overloaded", apiErr.Message)
	assert.Equal(t, "model overloaded", ErrorMessage(err, "fallback"))
}

func TestChatTransportError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Chat(context.Background(), "hello")
	require.Error(t, err)

	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr))
	assert.Equal(t, "fallback", ErrorMessage(err, "fallback"))
}

func TestErrorMessageNilError(t *testing.T) {
	assert.Equal(t, "fallback", ErrorMessage(nil, "fallback"))
}

func TestVoiceChat(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/voice_chat", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "data:audio/wav;base64,AAAA", req["audio"])
		require.Equal(t, "default", req["conversation_id"])

		json.NewEncoder(w).Encode(map[string]string{
			"transcription":   "what time is it",
			"response":        "it is noon",
			"conversation_id": "conv-1",
		})
	})

	resp, err := client.VoiceChat(context.Background(), "data:audio/wav;base64,AAAA", "default")
	require.NoError(t, err)
	assert.Equal(t, "what time is it", resp.Transcription)
	assert.Equal(t, "it is noon", resp.Response)
	assert.Equal(t, "conv-1", resp.ConversationID)
}

func TestTranslate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/translate", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "hello", req["text"])
		require.Equal(t, "es", req["lang"])

		json.NewEncoder(w).Encode(map[string]string{
			"translation": "hola",
			"original":    "hello",
			"language":    "es",
		})
	})

	resp, err := client.Translate(context.Background(), "hello", "es")
	require.NoError(t, err)
	assert.Equal(t, "hola", resp.Translation)
	assert.Equal(t, "hello", resp.Original)
	assert.Equal(t, "es", resp.Language)
}

func TestConversations(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/conversations", r.URL.Path)

		json.NewEncoder(w).Encode([]map[string]string{
			{"id": "a", "title": "First chat", "timestamp": "2026-08-30 09:00:00"},
			{"id": "b", "title": "Second chat", "timestamp": "2026-08-31 10:00:00"},
		})
	})

	refs, err := client.Conversations(context.Background())
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "a", refs[0].ID)
	assert.Equal(t, "First chat", refs[0].Title)
	assert.Equal(t, "b", refs[1].ID)
}

func TestLoadConversation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/load_conversation", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "conv-1", req["id"])

		json.NewEncoder(w).Encode(map[string]any{
			"messages": []map[string]string{
				{"role": "system", "content": "you are helpful"},
				{"role": "user", "content": "hi", "timestamp": "10:00"},
				{"role": "assistant", "content": "hello", "timestamp": "10:00"},
			},
		})
	})

	msgs, err := client.LoadConversation(context.Background(), "conv-1")
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "system", msgs[0].Role)
	assert.Equal(t, "user", msgs[1].Role)
	assert.Equal(t, "hello", msgs[2].Content)
}

func TestDeleteConversationError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "conversation not found"})
	})

	err := client.DeleteConversation(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "conversation not found", ErrorMessage(err, "fallback"))
}

func TestSaveSettings(t *testing.T) {
	var got map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/settings", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]string{"status": "success"})
	})

	require.NoError(t, client.SaveSettings(context.Background(), "dark"))
	assert.Equal(t, "dark", got["theme"])
}

func TestAvailableLanguages(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/available_languages", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"en": "English", "es": "Spanish"})
	})

	langs, err := client.AvailableLanguages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "English", langs["en"])
	assert.Equal(t, "Spanish", langs["es"])
}
