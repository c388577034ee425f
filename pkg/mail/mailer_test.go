package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"net/mail"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordingClient struct {
	from    string
	rcpts   []string
	data    bytes.Buffer
	quit    bool
	rcptErr error
}

type bufferCloser struct{ *bytes.Buffer }

func (bufferCloser) Close() error { return nil }

func (c *recordingClient) Mail(from string) error {
	c.from = from
	return nil
}

func (c *recordingClient) Rcpt(to string) error {
	if c.rcptErr != nil {
		return c.rcptErr
	}
	c.rcpts = append(c.rcpts, to)
	return nil
}
func (c *recordingClient) Data() (io.WriteCloser, error) { return bufferCloser{&c.data}, nil }
func (c *recordingClient) Quit() error {
	c.quit = true
	return nil
}

func (c *recordingClient) Close() error { return nil }
func (c *recordingClient) StartTLS(*tls.Config) error { return nil }
func (c *recordingClient) Auth(smtp.Auth) error { return nil }
func (c *recordingClient) Extension(string) (bool, string) { return true, "" }

func newTestMailer(t *testing.T, cfg SMTPSettings, client *recordingClient) *smtpMailer {
	t.Helper()

	m, err := NewSMTPMailer(cfg)
	require.NoError(t, err)

	sm := m.(*smtpMailer)
	sm.dialFn = func(context.Context, SMTPSettings) (net.Conn, smtpClient, error) {
		local, remote := net.Pipe()
		t.Cleanup(func() { _ = remote.Close() })
		return local, client, nil
	}
	sm.authFn = func(smtpClient, SMTPSettings) error { return nil }
	sm.now = func() time.Time { return time.Date(2024, 5, 22, 7, 30, 0, 0, time.UTC) }
	sm.newID = func() string { return "fixed-id" }
	return sm
}

func enabledSettings() SMTPSettings {
	return SMTPSettings{
		Enabled:  true,
		Host:     "smtp.example.com",
		Port:     587,
		From:     "no-reply@example.com",
		FromName: "Workout Diary",
	}
}

func TestNewSMTPMailerValidatesConfig(t *testing.T) {
	_, err := NewSMTPMailer(SMTPSettings{Enabled: true})
	require.ErrorContains(t, err, "host is required")

	_, err = NewSMTPMailer(SMTPSettings{Enabled: true, Host: "smtp.example.com"})
	require.ErrorContains(t, err, "port is required")

	mailer, err := NewSMTPMailer(SMTPSettings{Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, mailer)
}

func TestSMTPMailerSendDisabled(t *testing.T) {
	mailer, err := NewSMTPMailer(SMTPSettings{Enabled: false})
	require.NoError(t, err)

	err = mailer.Send(context.Background(), Message{
		To:      []string{"test@example.com"},
		Subject: "Test",
		Body:    "Hello",
	})
	require.ErrorIs(t, err, ErrSMTPDisabled)
}

func TestSMTPMailerSendDeliversMessage(t *testing.T) {
	client := &recordingClient{}
	mailer := newTestMailer(t, enabledSettings(), client)

	err := mailer.Send(context.Background(), Message{
		To:      []string{"runner@example.com", "RUNNER@example.com"},
		Subject: "Confirm your account",
		Body:    "Your code is ABC123\nThanks",
	})
	require.NoError(t, err)

	require.Equal(t, "no-reply@example.com", client.from)
	require.Equal(t, []string{"runner@example.com"}, client.rcpts)
	require.True(t, client.quit)

	content := client.data.String()
	require.Contains(t, content, `From: "Workout Diary" <no-reply@example.com>`)
	require.Contains(t, content, "To: runner@example.com\r\n")
	require.Contains(t, content, "Message-ID: <fixed-id@example.com>")
	require.Contains(t, content, "Date: Wed, 22 May 2024 07:30:00 +0000")
	require.True(t, strings.HasSuffix(content, "\r\n\r\nYour code is ABC123\r\nThanks"), content)
}

func TestSMTPMailerSendKeepsExplicitSenderName(t *testing.T) {
	client := &recordingClient{}
	mailer := newTestMailer(t, enabledSettings(), client)

	err := mailer.Send(context.Background(), Message{
		From: "Coach <coach@example.org>",
		To:   []string{"runner@example.com"},
	})
	require.NoError(t, err)

	require.Equal(t, "coach@example.org", client.from)
	require.Contains(t, client.data.String(), `From: "Coach" <coach@example.org>`)
	require.Contains(t, client.data.String(), "Message-ID: <fixed-id@example.org>")
}

func TestSMTPMailerSendWrapsRecipientFailure(t *testing.T) {
	client := &recordingClient{rcptErr: errors.New("mailbox unavailable")}
	mailer := newTestMailer(t, enabledSettings(), client)

	err := mailer.Send(context.Background(), Message{To: []string{"runner@example.com"}})
	require.ErrorContains(t, err, "rcpt to runner@example.com")
	require.False(t, client.quit)
}

func TestEnvelopeFormatSanitisesHeaders(t *testing.T) {
	env := envelope{
		from:       &mail.Address{Address: "from@example.com"},
		recipients: []string{"to@example.com"},
		replyTo:    "support@example.com",
		subject:    "Subject\r\nBreak",
		body:       "Line one\r\nBody",
	}

	content := env.format()
	require.Contains(t, content, "Subject: Subject  Break")
	require.Contains(t, content, "Reply-To: support@example.com")
	require.NotContains(t, content, "Date:")
	require.NotContains(t, content, "Message-ID:")
	require.True(t, strings.HasSuffix(content, "\r\n\r\nLine one\r\nBody"), content)
}

func TestSMTPMailerDefaultTimeout(t *testing.T) {
	mailer, err := NewSMTPMailer(enabledSettings())
	require.NoError(t, err)

	sm, ok := mailer.(*smtpMailer)
	require.True(t, ok)
	require.Equal(t, defaultSendTimeout, sm.cfg.Timeout)
}

func TestSMTPMailerSendRequiresRecipients(t *testing.T) {
	mailer, err := NewSMTPMailer(enabledSettings())
	require.NoError(t, err)

	err = mailer.Send(context.Background(), Message{To: []string{"   ", "\t"}})
	require.ErrorContains(t, err, "at least one recipient")
}

func TestSMTPMailerSendValidatesFromAddress(t *testing.T) {
	cfg := enabledSettings()
	cfg.From = ""
	mailer, err := NewSMTPMailer(cfg)
	require.NoError(t, err)

	err = mailer.Send(context.Background(), Message{To: []string{"user@example.com"}})
	require.ErrorContains(t, err, "sender address is required")

	err = mailer.Send(context.Background(), Message{From: "invalid-from", To: []string{"user@example.com"}})
	require.ErrorContains(t, err, "invalid from address")
}

func TestSMTPMailerSendValidatesRecipientAddresses(t *testing.T) {
	mailer, err := NewSMTPMailer(enabledSettings())
	require.NoError(t, err)

	err = mailer.Send(context.Background(), Message{To: []string{"user@example.com", "bad-address"}})
	require.ErrorContains(t, err, "invalid recipient address")
}

func TestUniqueAddresses(t *testing.T) {
	result := uniqueAddresses([]string{"alice@example.com", "bob@example.com", " Alice@example.com ", "", "bob@example.com"})
	require.Equal(t, []string{"alice@example.com", "bob@example.com"}, result)
}

func TestMessageIDFallsBackToLocalhost(t *testing.T) {
	require.Equal(t, "<id@localhost>", messageID("id", "no-domain"))
	require.Equal(t, "<id@example.com>", messageID("id", "a@example.com"))
}
