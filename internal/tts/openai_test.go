package tts

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"talktrack/internal/conversation"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpenAIClientSynthesize(t *testing.T) {
	var captured openAIRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte("mp3-bytes"))
	}))
	defer server.Close()

	client := NewOpenAIClient(discardLogger(), "test-key", &OpenAIOptions{
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})

	data, err := client.Synthesize(context.Background(), conversation.SpeechRequest{
		Text:  "Let's begin.",
		Voice: "onyx",
		Speed: 1.05,
	})
	require.NoError(t, err)
	require.Equal(t, []byte("mp3-bytes"), data)

	require.Equal(t, defaultOpenAIModel, captured.Model)
	require.Equal(t, "Let's begin.", captured.Input)
	require.Equal(t, "onyx", captured.Voice)
	require.Equal(t, 1.05, captured.Speed)
	require.Equal(t, "mp3", captured.ResponseFormat)
}

func TestOpenAIClientSurfacesProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limit"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewOpenAIClient(discardLogger(), "test-key", &OpenAIOptions{
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})

	_, err := client.Synthesize(context.Background(), conversation.SpeechRequest{
		Text:  "Let's begin.",
		Voice: "onyx",
		Speed: 1.0,
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=429")
	require.Contains(t, err.Error(), "rate limit")
}

func TestOpenAIClientRejectsEmptyAudio(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewOpenAIClient(discardLogger(), "test-key", &OpenAIOptions{
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})

	_, err := client.Synthesize(context.Background(), conversation.SpeechRequest{
		Text:  "Hello",
		Voice: "nova",
		Speed: 1.0,
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "empty audio")
}
