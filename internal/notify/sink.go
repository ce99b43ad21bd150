// Package notify delivers operator notifications to an external channel.
package notify

import (
	"context"

	"carsharing-backend/internal/logger"
)

// Sink delivers a message to a channel. The channel id is sink specific:
// a chat id for Telegram, an address for email, a topic for FCM.
type Sink interface {
	Send(ctx context.Context, channelID, message string) error
}

// LogSink only writes the message to the application log.
type LogSink struct{}

func (LogSink) Send(ctx context.Context, channelID, message string) error {
	logger.InfoContext(ctx, "Notification", "channel", channelID, "message", message)
	return nil
}
