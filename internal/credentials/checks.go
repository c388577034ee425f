package credentials

// Registration is the candidate data submitted when creating an account.
type Registration struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Age       int
}

// Policy composes the individual rules into aggregate checks.
type Policy struct{}

// NewPolicy returns the default credential policy.
func NewPolicy() Policy {
	return Policy{}
}

// CheckRegistration runs every registration rule and returns all violations at once.
// The returned email is the normalised address when it passed validation.
func (Policy) CheckRegistration(reg Registration) (string, Violations) {
	var violations Violations

	violations.add("firstName", ValidateName(reg.FirstName))
	violations.add("lastName", ValidateName(reg.LastName))

	email, outcome := ValidateEmail(reg.Email)
	violations.add("email", outcome)

	violations.add("password", ValidatePassword(reg.Password))
	violations.add("age", ValidateAge(reg.Age))

	return email, violations
}

// CheckEmail validates an address on its own.
func (Policy) CheckEmail(raw string) (string, Violations) {
	var violations Violations
	email, outcome := ValidateEmail(raw)
	violations.add("email", outcome)
	return email, violations
}

// CheckPassword validates a replacement password.
func (Policy) CheckPassword(raw string) Violations {
	var violations Violations
	violations.add("password", ValidatePassword(raw))
	return violations
}
