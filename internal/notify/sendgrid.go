package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"carsharing-backend/internal/logger"
)

const emailSubject = "Car sharing notification"

type mailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridSink emails the message; the channel id is the recipient address.
type SendGridSink struct {
	client    mailSender
	fromEmail string
	fromName  string
}

func NewSendGridSink(apiKey, fromEmail, fromName string) *SendGridSink {
	return &SendGridSink{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *SendGridSink) Send(ctx context.Context, channelID, message string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail("", channelID)
	msg := mail.NewSingleEmail(from, emailSubject, to, message, "")

	logger.ExternalServiceCall("sendgrid", "send", "to", channelID)
	resp, err := s.client.SendWithContext(ctx, msg)
	if err == nil && resp.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", resp.StatusCode, resp.Body)
	}
	logger.ExternalServiceResult("sendgrid", "send", err, "to", channelID)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
