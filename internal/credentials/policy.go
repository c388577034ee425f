// Package credentials holds the stateless rules that decide whether an email address,
// password, age or name is acceptable for an account.
package credentials

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/workoutdiary/workoutdiary/internal/models"
)

const (
	// MinPasswordLength is the shortest password accepted.
	MinPasswordLength = 8
	// MinAge and MaxAge bound the plausible human age range.
	MinAge = 1
	MaxAge = 120
)

// Outcome is the result of a single rule. Reason is empty when OK is true.
type Outcome struct {
	OK     bool
	Reason string
}

func pass() Outcome { return Outcome{OK: true} }

func fail(reason string) Outcome { return Outcome{Reason: reason} }

// ValidateEmail checks the structural shape of an email address and returns its normalised form.
func ValidateEmail(raw string) (string, Outcome) {
	normalized := models.NormalizeEmail(raw)
	if normalized == "" {
		return "", fail("email is required")
	}

	at := strings.LastIndex(normalized, "@")
	if at <= 0 || at == len(normalized)-1 {
		return "", fail("email must contain a local part and a domain separated by @")
	}
	if strings.ContainsAny(normalized, " \t\r\n") {
		return "", fail("email must not contain whitespace")
	}

	return normalized, pass()
}

// ValidatePassword enforces the password composition rules.
func ValidatePassword(raw string) Outcome {
	if strings.TrimSpace(raw) == "" {
		return fail("password is required")
	}
	if utf8.RuneCountInString(raw) < MinPasswordLength {
		return fail(fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}

	var upper, digit, symbol bool
	for _, r := range raw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsSpace(r), unicode.IsLetter(r):
		default:
			symbol = true
		}
	}

	var missing []string
	if !upper {
		missing = append(missing, "an uppercase letter")
	}
	if !digit {
		missing = append(missing, "a digit")
	}
	if !symbol {
		missing = append(missing, "a symbol")
	}
	if len(missing) > 0 {
		return fail("password must contain " + strings.Join(missing, ", "))
	}

	return pass()
}

// ValidateAge requires an age inside [MinAge, MaxAge].
func ValidateAge(age int) Outcome {
	if age == 0 {
		return fail("age is required")
	}
	if age < MinAge || age > MaxAge {
		return fail(fmt.Sprintf("age must be between %d and %d", MinAge, MaxAge))
	}
	return pass()
}

// ValidateName requires a non-blank name.
func ValidateName(raw string) Outcome {
	if strings.TrimSpace(raw) == "" {
		return fail("name is required")
	}
	return pass()
}
