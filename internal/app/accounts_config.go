package app

import (
	"github.com/workoutdiary/workoutdiary/internal/codes"
	"github.com/workoutdiary/workoutdiary/internal/services"
)

// ServiceOptions converts AccountsConfig into AccountService options. Zero values keep
// the service defaults.
func (c AccountsConfig) ServiceOptions() []services.AccountOption {
	opts := []services.AccountOption{
		services.WithConfirmationCodeTTL(c.ConfirmationCodeTTL),
		services.WithResetCodeTTL(c.ResetCodeTTL),
		services.WithCodeIssuer(codes.NewGenerator(codes.WithSize(c.CodeBytes))),
	}
	if c.BcryptCost > 0 {
		opts = append(opts, services.WithBcryptCost(c.BcryptCost))
	}
	return opts
}

// NotifierOptions converts AccountsConfig into MailNotifier options.
func (c AccountsConfig) NotifierOptions() []services.NotifierOption {
	return []services.NotifierOption{
		services.WithConfirmationURL(c.ConfirmationURL),
		services.WithResetURL(c.ResetURL),
	}
}
