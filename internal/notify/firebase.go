package notify

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"carsharing-backend/internal/logger"
)

const pushTitle = "Car sharing"

type fcmSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FirebaseSink publishes push notifications to an FCM topic; the channel id
// is the topic name.
type FirebaseSink struct {
	client fcmSender
}

func NewFirebaseSink(ctx context.Context, projectID, credentialsFile string) (*FirebaseSink, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create messaging client: %w", err)
	}
	return &FirebaseSink{client: client}, nil
}

func (s *FirebaseSink) Send(ctx context.Context, channelID, message string) error {
	logger.ExternalServiceCall("fcm", "send", "topic", channelID)
	id, err := s.client.Send(ctx, &messaging.Message{
		Topic: channelID,
		Notification: &messaging.Notification{
			Title: pushTitle,
			Body:  message,
		},
	})
	logger.ExternalServiceResult("fcm", "send", err, "topic", channelID, "messageID", id)
	if err != nil {
		return fmt.Errorf("failed to publish push notification: %w", err)
	}
	return nil
}
