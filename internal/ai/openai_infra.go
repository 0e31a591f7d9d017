package ai

import (
	"context"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient serves both Whisper transcription and chat completions.
type OpenAIClient struct {
	client   *openai.Client
	sttModel string
}

func NewOpenAIClient(apiKey, sttModel string) *OpenAIClient {
	if sttModel == "" {
		sttModel = openai.Whisper1
	}
	return &OpenAIClient{
		client:   openai.NewClient(apiKey),
		sttModel: sttModel,
	}
}

func (c *OpenAIClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return c.client.CreateChatCompletion(ctx, req)
}

// Transcribe — голос → текст. name должен иметь расширение аудио.
func (c *OpenAIClient) Transcribe(ctx context.Context, name string, r io.Reader) (string, error) {
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.sttModel,
		FilePath: name,
		Reader:   r,
	})
	if err != nil {
		return "", fmt.Errorf("whisper: %w", err)
	}
	return resp.Text, nil
}
