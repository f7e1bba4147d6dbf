// Package validators contains input validators abstracted away from the
// handler code
package validators

import (
	"errors"
	"net/mail"
	"strings"
)

var (
	ErrEmailEmpty    = errors.New("no email address provided")
	ErrEmailInvalid  = errors.New("invalid email address provided")
	ErrFullNameEmpty = errors.New("no full name provided")
)

func EmailValidator(e string) error {
	if e == "" {
		return ErrEmailEmpty
	}

	if _, err := mail.ParseAddress(e); err != nil {
		return ErrEmailInvalid
	}

	return nil
}

func FullNameValidator(n string) error {
	if strings.TrimSpace(n) == "" {
		return ErrFullNameEmpty
	}

	return nil
}
