package notify

import (
	"context"
	"fmt"

	"carsharing-backend/internal/config"
)

// NewSink builds the sink named by cfg.Sink.
func NewSink(ctx context.Context, cfg config.NotificationConfig) (Sink, error) {
	switch cfg.Sink {
	case "", "log":
		return LogSink{}, nil
	case "telegram":
		return NewTelegramSink(cfg.TelegramBotToken)
	case "sendgrid":
		return NewSendGridSink(cfg.SendGridAPIKey, cfg.FromEmail, cfg.FromName), nil
	case "firebase":
		return NewFirebaseSink(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsFile)
	default:
		return nil, fmt.Errorf("unknown notification sink %q", cfg.Sink)
	}
}
