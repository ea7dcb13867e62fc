// Package groq generates answers grounded in an audio transcription using
// a chat model served through Groq's OpenAI-compatible API.
package groq

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"voiceqa/pkg/Logger"
)

const (
	defaultBaseURL    = "https://api.groq.com/openai/v1"
	chatModel         = "llama-3.3-70b-versatile"
	answerTemperature = 0.7
	answerMaxTokens   = 1024
)

const systemPrompt = "You are a helpful assistant that answers questions " +
	"about audio transcriptions accurately and concisely."

// The answer must stay grounded in the supplied transcription; the model is
// told to decline politely when the content doesn't cover the question.
const answerTemplate = `You are a helpful assistant that answers questions about audio content.

Audio Content:
%s

User Question: %s

Please provide a clear, concise answer based on the audio content above. If the question cannot be answered from the audio content, politely say so.`

type Client struct {
	api    *openai.Client
	logger *Logger.Logger
}

func New(apiKey string, logger *Logger.Logger) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = defaultBaseURL
	return &Client{
		api:    openai.NewClientWithConfig(cfg),
		logger: logger,
	}
}

// Answer embeds the transcription and question into the grounding template
// and returns the model's reply.
func (c *Client) Answer(ctx context.Context, contextText, question string) (string, error) {
	start := time.Now()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       chatModel,
		Temperature: answerTemperature,
		MaxTokens:   answerMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(answerTemplate, contextText, question)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	c.logger.Debugf("answer generated in %.1fs", time.Since(start).Seconds())
	return resp.Choices[0].Message.Content, nil
}
