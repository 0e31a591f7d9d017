package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	defaultChatModel   = openai.GPT3Dot5Turbo
	defaultChatTimeout = 120 * time.Second
)

type TranslatorOptions struct {
	Model   string
	Timeout time.Duration
	// TokenWarn — порог, после которого логируем предупреждение о размере истории.
	TokenWarn int
}

type TranslationService struct {
	client ChatClient
	tokens TokenCounter
	log    *zap.SugaredLogger
	opts   TranslatorOptions
}

// NewTranslationService — tokens может быть nil, тогда размер истории не считаем.
func NewTranslationService(client ChatClient, tokens TokenCounter, log *zap.SugaredLogger, opts TranslatorOptions) *TranslationService {
	if opts.Model == "" {
		opts.Model = defaultChatModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultChatTimeout
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &TranslationService{
		client: client,
		tokens: tokens,
		log:    log,
		opts:   opts,
	}
}

func instruction(text, targetLanguage string) Message {
	return Message{
		Role:    openai.ChatMessageRoleSystem,
		Content: fmt.Sprintf("Translate the following text to %s: %s", targetLanguage, text),
	}
}

// Translate appends one instruction to a copy of history and sends the whole
// accumulated history. On failure the caller keeps its original history.
func (s *TranslationService) Translate(ctx context.Context, text, targetLanguage string, history History) (string, History, error) {
	next := append(history.Clone(), instruction(text, targetLanguage))

	messages := make([]openai.ChatCompletionMessage, 0, len(next))
	for _, m := range next {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	ctxGPT, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := s.client.CreateChatCompletion(ctxGPT, openai.ChatCompletionRequest{
		Model:    s.opts.Model,
		Messages: messages,
	})
	if err != nil {
		s.log.Errorw("chat completion failed",
			"model", s.opts.Model,
			"history", len(next),
			"took", time.Since(start),
			"error", err,
		)
		return "", history, fmt.Errorf("%w: %s: %w", ErrTranslationFailed, describeOpenAIError(err), err)
	}

	if len(resp.Choices) == 0 {
		return "", history, fmt.Errorf("%w: no completion choices", ErrTranslationFailed)
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", history, fmt.Errorf("%w: empty completion", ErrTranslationFailed)
	}

	s.log.Infow("translated",
		"target", targetLanguage,
		"model", s.opts.Model,
		"history", len(next),
		"took", time.Since(start),
	)
	s.checkHistorySize(next)

	return reply, next, nil
}

func (s *TranslationService) checkHistorySize(h History) {
	if s.tokens == nil {
		return
	}

	total := historyTokens(s.tokens, h)
	if s.opts.TokenWarn > 0 && total > s.opts.TokenWarn {
		s.log.Warnw("translation history is large", "tokens", total, "messages", len(h), "warn_at", s.opts.TokenWarn)
		return
	}
	s.log.Debugw("translation history size", "tokens", total, "messages", len(h))
}
