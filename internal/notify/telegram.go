package notify

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"carsharing-backend/internal/logger"
)

// Telegram rejects longer messages.
const telegramMaxRunes = 4096

type botSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramSink struct {
	bot botSender
}

func NewTelegramSink(token string) (*TelegramSink, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	logger.Info("Telegram bot authorized", "username", bot.Self.UserName)
	return &TelegramSink{bot: bot}, nil
}

func (s *TelegramSink) Send(ctx context.Context, channelID, message string) error {
	chatID, err := strconv.ParseInt(channelID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid telegram chat id %q: %w", channelID, err)
	}

	for _, part := range splitRunes(message, telegramMaxRunes) {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.ExternalServiceCall("telegram", "sendMessage", "chatID", chatID)
		_, err := s.bot.Send(tgbotapi.NewMessage(chatID, part))
		logger.ExternalServiceResult("telegram", "sendMessage", err, "chatID", chatID)
		if err != nil {
			return fmt.Errorf("failed to send telegram message: %w", err)
		}
	}
	return nil
}

func splitRunes(s string, max int) []string {
	runes := []rune(s)
	if len(runes) <= max {
		return []string{s}
	}
	var parts []string
	for len(runes) > 0 {
		n := min(max, len(runes))
		parts = append(parts, string(runes[:n]))
		runes = runes[n:]
	}
	return parts
}
