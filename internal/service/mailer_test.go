package service

import (
	"context"
	"errors"
	"testing"

	"go_gpa_keep/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, params *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESMailer_Send(t *testing.T) {
	client := &fakeSES{}
	m := newSESMailer(client, "noreply@example.com")

	require.NoError(t, m.Send(context.Background(), "user@example.com", "件名", "本文"))
	require.NotNil(t, client.input)
	assert.Equal(t, "noreply@example.com", aws.ToString(client.input.FromEmailAddress))
	assert.Equal(t, []string{"user@example.com"}, client.input.Destination.ToAddresses)
	assert.Equal(t, "件名", aws.ToString(client.input.Content.Simple.Subject.Data))
	assert.Equal(t, "本文", aws.ToString(client.input.Content.Simple.Body.Text.Data))

	client.err = errors.New("throttled")
	assert.Error(t, m.Send(context.Background(), "user@example.com", "件名", "本文"))
}

func TestNewMailer(t *testing.T) {
	tests := []struct {
		kind string
		want interface{}
	}{
		{kind: "", want: &LogMailer{}},
		{kind: "log", want: &LogMailer{}},
		{kind: "smtp", want: &SmtpMailer{}},
		{kind: "carrier-pigeon", want: &LogMailer{}},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Mailer.Type = tt.kind
			cfg.SMTP = config.SMTPConfig{Host: "localhost", Port: 1025, From: "noreply@example.com"}
			assert.IsType(t, tt.want, NewMailer(cfg))
		})
	}
}

func TestLogMailer_Send(t *testing.T) {
	assert.NoError(t, (&LogMailer{}).Send(context.Background(), "a@example.com", "s", "b"))
}
