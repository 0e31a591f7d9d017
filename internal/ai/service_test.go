package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	openai "github.com/sashabaranov/go-openai"
)

type fakeChat struct {
	calls int
	got   openai.ChatCompletionRequest
	resp  openai.ChatCompletionResponse
	err   error
}

func (f *fakeChat) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.calls++
	f.got = req
	return f.resp, f.err
}

func reply(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}},
		},
	}
}

type wordCounter struct{}

func (wordCounter) Count(text string) int { return len(strings.Fields(text)) }

func TestTranslateAppendsOneMessage(t *testing.T) {
	t.Parallel()

	chat := &fakeChat{resp: reply("  Bonjour\n")}
	svc := NewTranslationService(chat, wordCounter{}, nil, TranslatorOptions{TokenWarn: 1})

	got, history, err := svc.Translate(context.Background(), "Hello", "french", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Bonjour" {
		t.Fatalf("expected Bonjour, got %q", got)
	}

	want := History{{Role: "system", Content: "Translate the following text to french: Hello"}}
	if diff := cmp.Diff(want, history); diff != "" {
		t.Fatalf("unexpected history (-want +got):\n%s", diff)
	}
	if chat.got.Model != openai.GPT3Dot5Turbo {
		t.Fatalf("unexpected model %q", chat.got.Model)
	}
}

func TestTranslateSendsAccumulatedHistory(t *testing.T) {
	t.Parallel()

	chat := &fakeChat{resp: reply("Hola")}
	svc := NewTranslationService(chat, nil, nil, TranslatorOptions{Model: "gpt-4o-mini"})

	prev := History{{Role: "system", Content: "Translate the following text to german: Hi"}}
	_, next, err := svc.Translate(context.Background(), "Hi", "spanish", prev)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(next) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(next))
	}
	if len(prev) != 1 {
		t.Fatalf("input history mutated: %v", prev)
	}
	if len(chat.got.Messages) != 2 {
		t.Fatalf("expected full history in request, got %d messages", len(chat.got.Messages))
	}
	if chat.got.Messages[0].Content != prev[0].Content {
		t.Fatalf("history order not preserved: %v", chat.got.Messages)
	}
	if chat.got.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected model %q", chat.got.Model)
	}
}

func TestTranslateFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		chat *fakeChat
	}{
		{name: "remote error", chat: &fakeChat{err: errors.New("connection reset")}},
		{name: "rate limited", chat: &fakeChat{err: &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests, Message: "slow down"}}},
		{name: "no choices", chat: &fakeChat{resp: openai.ChatCompletionResponse{}}},
		{name: "empty content", chat: &fakeChat{resp: reply("  ")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewTranslationService(tt.chat, nil, nil, TranslatorOptions{})
			prev := History{{Role: "system", Content: "earlier"}}

			_, got, err := svc.Translate(context.Background(), "Hello", "french", prev)
			if !errors.Is(err, ErrTranslationFailed) {
				t.Fatalf("expected ErrTranslationFailed, got %v", err)
			}
			if diff := cmp.Diff(prev, got); diff != "" {
				t.Fatalf("history changed on failure (-want +got):\n%s", diff)
			}
			if tt.chat.calls != 1 {
				t.Fatalf("expected exactly one call, got %d", tt.chat.calls)
			}
		})
	}
}

func TestDescribeOpenAIError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{&openai.APIError{HTTPStatusCode: 401, Message: "bad key"}, "invalid OpenAI API key: bad key"},
		{&openai.APIError{HTTPStatusCode: 429, Message: "quota"}, "OpenAI rate limit exceeded: quota"},
		{&openai.APIError{HTTPStatusCode: 503, Message: "down"}, "OpenAI internal error: down"},
		{errors.New("plain"), "plain"},
	}

	for _, tt := range tests {
		if got := describeOpenAIError(tt.err); got != tt.want {
			t.Errorf("describeOpenAIError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestHistoryClone(t *testing.T) {
	t.Parallel()

	var empty History
	if empty.Clone() != nil {
		t.Fatal("clone of nil history should be nil")
	}

	h := History{{Role: "system", Content: "a"}}
	c := h.Clone()
	c[0].Content = "b"
	if h[0].Content != "a" {
		t.Fatal("clone shares backing array")
	}
}

type blockingChat struct{}

func (blockingChat) CreateChatCompletion(ctx context.Context, _ openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	<-ctx.Done()
	return openai.ChatCompletionResponse{}, ctx.Err()
}

func TestTranslateTimeout(t *testing.T) {
	t.Parallel()

	svc := NewTranslationService(blockingChat{}, nil, nil, TranslatorOptions{Timeout: 20 * time.Millisecond})
	in := History{{Role: "system", Content: "earlier"}}

	start := time.Now()
	_, got, err := svc.Translate(context.Background(), "hola", "English", in)
	if !errors.Is(err, ErrTranslationFailed) || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected ErrTranslationFailed with deadline exceeded, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("call was not bounded by its timeout: %v", time.Since(start))
	}
	if diff := cmp.Diff(in, got); diff != "" {
		t.Fatalf("history changed on timeout (-want +got):\n%s", diff)
	}
}
