package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"talktrack/internal/conversation"
)

const (
	defaultOpenAIEndpoint = "https://api.openai.com/v1/audio/speech"
	defaultOpenAIModel    = "gpt-4o-mini-tts"
)

// OpenAIOptions configures optional client behavior.
type OpenAIOptions struct {
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// OpenAIClient implements conversation.SpeechSynthesizer against the
// OpenAI speech endpoint.
type OpenAIClient struct {
	logger     *slog.Logger
	apiKey     string
	model      string
	httpClient *http.Client
	endpoint   string
}

// NewOpenAIClient creates a new OpenAI TTS client.
func NewOpenAIClient(logger *slog.Logger, apiKey string, opts *OpenAIOptions) *OpenAIClient {
	if opts == nil {
		opts = &OpenAIOptions{}
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 90 * time.Second,
		}
	}

	model := opts.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	endpoint := opts.BaseURL
	if endpoint == "" {
		endpoint = defaultOpenAIEndpoint
	}

	return &OpenAIClient{
		logger:     logger,
		apiKey:     apiKey,
		model:      model,
		httpClient: httpClient,
		endpoint:   endpoint,
	}
}

type openAIRequest struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	Speed          float64 `json:"speed,omitempty"`
	ResponseFormat string  `json:"response_format"`
}

// Synthesize performs one speech call and buffers the streamed MP3
// response into a complete byte slice. Provider errors are returned
// unmodified to the caller; this client never retries.
func (c *OpenAIClient) Synthesize(ctx context.Context, req conversation.SpeechRequest) ([]byte, error) {
	payload, err := json.Marshal(openAIRequest{
		Model:          c.model,
		Input:          req.Text,
		Voice:          req.Voice,
		Speed:          req.Speed,
		ResponseFormat: "mp3",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.logger.Debug("calling openai speech api",
		slog.String("model", c.model),
		slog.String("voice", req.Voice),
		slog.Float64("speed", req.Speed),
		slog.Int("text_length", len(req.Text)),
	)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call openai: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, 512))
		bodyStr := string(body)
		if readErr != nil {
			bodyStr = fmt.Sprintf("(failed to read body: %v)", readErr)
		}
		c.logger.Error("openai speech api error",
			slog.Int("status_code", resp.StatusCode),
			slog.String("response_body", bodyStr),
		)
		return nil, fmt.Errorf("openai error: status=%d body=%s", resp.StatusCode, bodyStr)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("openai returned empty audio")
	}

	c.logger.Debug("received audio from openai", slog.Int("audio_bytes", len(data)))

	return data, nil
}
