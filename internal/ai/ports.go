package ai

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

var ErrTranslationFailed = errors.New("translation failed")

// Message — одна запись истории {role, content}.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// History is the conversation sent as context on every translation call.
// It belongs to one session; Translate returns a grown copy and never mutates its input.
type History []Message

// Clone returns an independent copy.
func (h History) Clone() History {
	if h == nil {
		return nil
	}
	return append(History(nil), h...)
}

// ChatClient — то, что нужно переводчику от OpenAI. *openai.Client подходит как есть.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type TokenCounter interface {
	Count(text string) int
}

type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string, history History) (string, History, error)
}
