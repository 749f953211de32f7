package auth

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/projectpulse/pulseauth/users"
)

// Validator provides centralized validation for registration input.
// This consolidates rules that would otherwise be scattered across the
// transport layer.
type Validator struct{}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateRegistration checks registration fields and returns one error
// string per failed rule, empty when everything passes.
func (v *Validator) ValidateRegistration(firstName, lastName, email, password string) []string {
	var errs []string

	if strings.TrimSpace(firstName) == "" {
		errs = append(errs, "first name is required")
	}
	if strings.TrimSpace(lastName) == "" {
		errs = append(errs, "last name is required")
	}
	if err := v.ValidateEmail(email); err != nil {
		errs = append(errs, err.Error())
	}
	if err := users.ValidatePasswordStrength(password); err != nil {
		errs = append(errs, err.Error())
	}
	return errs
}

// ValidateEmail checks the email has a parseable address form.
func (v *Validator) ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("email is not a valid address")
	}
	return nil
}
