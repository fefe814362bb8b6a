// Package mailer delivers rendered submissions to the admissions inbox.
package mailer

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/google/uuid"

	"admissions-forms/internal/common/logger"
)

// Message is one outbound email.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

// Mailer sends a message and returns the provider message ID.
type Mailer interface {
	Send(ctx context.Context, msg *Message) (string, error)
}

// SESAPI is the subset of the SES client the mailer needs.
type SESAPI interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESMailer sends via Amazon SES.
type SESMailer struct {
	client SESAPI
	logger logger.Logger
}

func NewSESMailer(client SESAPI, log logger.Logger) *SESMailer {
	return &SESMailer{client: client, logger: log}
}

func (m *SESMailer) Send(ctx context.Context, msg *Message) (string, error) {
	input := &ses.SendEmailInput{
		Source: aws.String(msg.From),
		Destination: &types.Destination{
			ToAddresses: msg.To,
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(msg.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data:    aws.String(msg.HTML),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	}
	if msg.ReplyTo != "" {
		input.ReplyToAddresses = []string{msg.ReplyTo}
	}

	out, err := m.client.SendEmail(ctx, input)
	if err != nil {
		return "", err
	}

	id := uuid.New().String()
	if out.MessageId != nil && *out.MessageId != "" {
		id = *out.MessageId
	}
	m.logger.Info("email dispatched", map[string]interface{}{
		"messageId": id,
		"to":        msg.To,
	})
	return id, nil
}

// LogMailer logs messages instead of sending them. Used in local development
// when SES is disabled.
type LogMailer struct {
	logger logger.Logger
}

func NewLogMailer(log logger.Logger) *LogMailer {
	return &LogMailer{logger: log}
}

func (m *LogMailer) Send(_ context.Context, msg *Message) (string, error) {
	id := uuid.New().String()
	m.logger.Info("email suppressed, SES disabled", map[string]interface{}{
		"messageId": id,
		"to":        msg.To,
		"subject":   msg.Subject,
	})
	return id, nil
}
