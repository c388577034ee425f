package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/workoutdiary/workoutdiary/internal/models"
	"github.com/workoutdiary/workoutdiary/pkg/logger"
	"github.com/workoutdiary/workoutdiary/pkg/mail"
)

// Notifier delivers one-time codes to account owners out of band.
type Notifier interface {
	SendConfirmation(ctx context.Context, account *models.User, code string) error
	SendPasswordReset(ctx context.Context, account *models.User, code string) error
}

// NotifierOption customises the MailNotifier.
type NotifierOption func(*MailNotifier)

// WithConfirmationURL sets the page that accepts confirmation codes.
func WithConfirmationURL(link string) NotifierOption {
	return func(n *MailNotifier) {
		n.confirmationURL = strings.TrimRight(strings.TrimSpace(link), "/")
	}
}

// WithResetURL sets the page that accepts password reset codes.
func WithResetURL(link string) NotifierOption {
	return func(n *MailNotifier) {
		n.resetURL = strings.TrimRight(strings.TrimSpace(link), "/")
	}
}

// MailNotifier renders plain-text emails and sends them through a mail.Mailer.
type MailNotifier struct {
	mailer          mail.Mailer
	confirmationURL string
	resetURL        string
	log             *zap.Logger
}

var _ Notifier = (*MailNotifier)(nil)

// NewMailNotifier constructs a notifier. A nil mailer disables delivery.
func NewMailNotifier(mailer mail.Mailer, opts ...NotifierOption) *MailNotifier {
	notifier := &MailNotifier{
		mailer: mailer,
		log:    logger.WithModule("notifications"),
	}
	for _, opt := range opts {
		opt(notifier)
	}
	return notifier
}

// SendConfirmation implements Notifier.
func (n *MailNotifier) SendConfirmation(ctx context.Context, account *models.User, code string) error {
	link := codeLink(n.confirmationURL, code)
	body := fmt.Sprintf("Hi %s,\n\nThanks for signing up for Workout Diary.\n\nYour confirmation code is:\n%s\n", displayName(account), code)
	if link != "" {
		body += fmt.Sprintf("\nOr confirm your email address by visiting:\n%s\n", link)
	}
	body += "\nIf you did not create an account, you can ignore this message.\n"

	return n.send(ctx, account, models.PurposeRegistrationConfirmation, "Confirm your Workout Diary account", body)
}

// SendPasswordReset implements Notifier.
func (n *MailNotifier) SendPasswordReset(ctx context.Context, account *models.User, code string) error {
	link := codeLink(n.resetURL, code)
	body := fmt.Sprintf("Hi %s,\n\nWe received a request to reset your Workout Diary password.\n\nYour reset code is:\n%s\n", displayName(account), code)
	if link != "" {
		body += fmt.Sprintf("\nOr choose a new password by visiting:\n%s\n", link)
	}
	body += "\nIf you did not request a reset, you can ignore this message.\n"

	return n.send(ctx, account, models.PurposePasswordReset, "Reset your Workout Diary password", body)
}

func (n *MailNotifier) send(ctx context.Context, account *models.User, purpose models.CodePurpose, subject, body string) error {
	if account == nil || strings.TrimSpace(account.Email) == "" {
		return errors.New("notifier: account email is required")
	}
	if n.mailer == nil {
		n.log.Debug("mail delivery not configured", zap.String("purpose", string(purpose)))
		return nil
	}

	err := n.mailer.Send(ctx, mail.Message{
		To:      []string{account.Email},
		Subject: subject,
		Body:    body,
	})
	if errors.Is(err, mail.ErrSMTPDisabled) {
		n.log.Debug("smtp disabled, skipping notification",
			zap.String("purpose", string(purpose)),
			zap.String("user_id", account.ID),
		)
		return nil
	}
	if err != nil {
		return fmt.Errorf("notifier: send %s: %w", purpose, err)
	}
	return nil
}

func codeLink(base, code string) string {
	if base == "" {
		return ""
	}
	separator := "?"
	if strings.Contains(base, "?") {
		separator = "&"
	}
	return base + separator + "code=" + url.QueryEscape(code)
}

func displayName(account *models.User) string {
	if account != nil {
		if name := strings.TrimSpace(account.FirstName); name != "" {
			return name
		}
	}
	return "there"
}
