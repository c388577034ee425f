package app

import (
	"strings"

	"github.com/workoutdiary/workoutdiary/pkg/mail"
)

// SMTPSettings converts EmailConfig to the mail package representation.
// Address fields are trimmed since they are commonly supplied via environment variables.
func (c EmailConfig) SMTPSettings() mail.SMTPSettings {
	smtp := c.SMTP
	return mail.SMTPSettings{
		Enabled:  smtp.Enabled,
		Host:     strings.TrimSpace(smtp.Host),
		Port:     smtp.Port,
		Username: smtp.Username,
		Password: smtp.Password,
		From:     strings.TrimSpace(smtp.From),
		FromName: strings.TrimSpace(smtp.FromName),
		UseTLS:   smtp.UseTLS,
		Timeout:  smtp.Timeout,
	}
}
