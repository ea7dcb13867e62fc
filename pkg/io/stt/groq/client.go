// Package groq transcribes audio files through Groq's OpenAI-compatible
// Whisper endpoint.
package groq

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"voiceqa/pkg/Logger"
)

const (
	defaultBaseURL     = "https://api.groq.com/openai/v1"
	transcriptionModel = "whisper-large-v3"
)

type Client struct {
	api    *openai.Client
	logger *Logger.Logger
}

func New(apiKey string, logger *Logger.Logger) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = defaultBaseURL
	cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	return &Client{
		api:    openai.NewClientWithConfig(cfg),
		logger: logger,
	}
}

// Transcribe sends the audio file at audioPath to Whisper and returns the
// plain-text transcript.
func (c *Client) Transcribe(ctx context.Context, audioPath string) (string, error) {
	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:       transcriptionModel,
		FilePath:    audioPath,
		Language:    "en",
		Temperature: 0,
		Format:      openai.AudioResponseFormatText,
	})
	if err != nil {
		return "", fmt.Errorf("whisper request: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("empty transcription result")
	}

	c.logger.Debugf("transcribed %s (%d chars)", audioPath, len(text))
	return text, nil
}
