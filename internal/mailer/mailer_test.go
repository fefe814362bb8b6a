package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admissions-forms/internal/common/logger"
)

type mockSES struct {
	input *ses.SendEmailInput
	out   *ses.SendEmailOutput
	err   error
}

func (m *mockSES) SendEmail(_ context.Context, input *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.input = input
	return m.out, m.err
}

func testMessage() *Message {
	return &Message{
		From:    "no-reply@example.edu",
		To:      []string{"admissions@example.edu"},
		ReplyTo: "amina.odhiambo@example.com",
		Subject: "New Admission Application: Amina Odhiambo",
		HTML:    "<html><body>application</body></html>",
	}
}

func TestSESMailer_Send(t *testing.T) {
	mock := &mockSES{out: &ses.SendEmailOutput{MessageId: aws.String("ses-msg-42")}}
	m := NewSESMailer(mock, logger.NewTestLogger(t))

	id, err := m.Send(context.Background(), testMessage())

	require.NoError(t, err)
	assert.Equal(t, "ses-msg-42", id)

	require.NotNil(t, mock.input)
	assert.Equal(t, "no-reply@example.edu", *mock.input.Source)
	assert.Equal(t, []string{"admissions@example.edu"}, mock.input.Destination.ToAddresses)
	assert.Equal(t, []string{"amina.odhiambo@example.com"}, mock.input.ReplyToAddresses)
	assert.Equal(t, "New Admission Application: Amina Odhiambo", *mock.input.Message.Subject.Data)
	assert.Contains(t, *mock.input.Message.Body.Html.Data, "application")
}

func TestSESMailer_Send_NoReplyTo(t *testing.T) {
	mock := &mockSES{out: &ses.SendEmailOutput{MessageId: aws.String("ses-msg-42")}}
	m := NewSESMailer(mock, logger.NewTestLogger(t))

	msg := testMessage()
	msg.ReplyTo = ""
	_, err := m.Send(context.Background(), msg)

	require.NoError(t, err)
	assert.Empty(t, mock.input.ReplyToAddresses)
}

func TestSESMailer_Send_FallbackID(t *testing.T) {
	mock := &mockSES{out: &ses.SendEmailOutput{}}
	m := NewSESMailer(mock, logger.NewTestLogger(t))

	id, err := m.Send(context.Background(), testMessage())

	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestSESMailer_Send_ProviderError(t *testing.T) {
	mock := &mockSES{err: errors.New("throttled")}
	m := NewSESMailer(mock, logger.NewTestLogger(t))

	_, err := m.Send(context.Background(), testMessage())

	assert.Error(t, err)
}

func TestLogMailer_Send(t *testing.T) {
	m := NewLogMailer(logger.NewTestLogger(t))

	id, err := m.Send(context.Background(), testMessage())

	require.NoError(t, err)
	assert.NotEmpty(t, id)
}
