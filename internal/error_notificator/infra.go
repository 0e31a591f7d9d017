package error_notificator

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramInfra пишет в админский чат.
type TelegramInfra struct {
	bot         sender
	adminChatID int64
}

func NewTelegramInfra(token string, adminChatID int64) (*TelegramInfra, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &TelegramInfra{bot: bot, adminChatID: adminChatID}, nil
}

func (i *TelegramInfra) Notify(ctx context.Context, stage string, err error, details string) error {
	text := fmt.Sprintf(
		"❗ Pipeline failed at %s\n\nError: %v\n\nDetails: %s",
		stage,
		err,
		details,
	)

	if _, sendErr := i.bot.Send(tgbotapi.NewMessage(i.adminChatID, text)); sendErr != nil {
		log.Printf("[error_notificator] send fail to %d: %v", i.adminChatID, sendErr)
		return sendErr
	}

	return nil
}

// LogInfra is used when no Telegram bot is configured.
type LogInfra struct{}

func (LogInfra) Notify(_ context.Context, stage string, err error, details string) error {
	log.Printf("[error_notificator] stage=%s err=%v details=%s", stage, err, details)
	return nil
}
