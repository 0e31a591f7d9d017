package error_notificator

import (
	"context"
	"errors"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func TestTelegramInfraSendsToAdmin(t *testing.T) {
	t.Parallel()

	bot := &fakeSender{}
	infra := &TelegramInfra{bot: bot, adminChatID: 42}

	err := NewService(infra).Notify(context.Background(), "translating", errors.New("429"), "session=abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bot.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(bot.sent))
	}

	msg, ok := bot.sent[0].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("unexpected chattable %T", bot.sent[0])
	}
	if msg.ChatID != 42 {
		t.Fatalf("unexpected chat id %d", msg.ChatID)
	}
	for _, part := range []string{"translating", "429", "session=abc"} {
		if !strings.Contains(msg.Text, part) {
			t.Errorf("message %q missing %q", msg.Text, part)
		}
	}
}

func TestServicePropagatesSendError(t *testing.T) {
	t.Parallel()

	sendErr := errors.New("blocked by user")
	svc := NewService(&TelegramInfra{bot: &fakeSender{err: sendErr}, adminChatID: 1})

	if err := svc.Notify(context.Background(), "synthesizing", errors.New("x"), ""); !errors.Is(err, sendErr) {
		t.Fatalf("expected send error, got %v", err)
	}
}

func TestServiceDefaultsToLog(t *testing.T) {
	t.Parallel()

	if err := NewService(nil).Notify(context.Background(), "transcribing", errors.New("x"), "d"); err != nil {
		t.Fatalf("log notifier should not fail: %v", err)
	}
}
