package service

import (
	"net/mail"
	"strings"
)

// validEmail reports whether the value is an RFC-shaped address.
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	return err == nil && addr.Address == strings.TrimSpace(email)
}

// validName requires at least two characters after trimming.
func validName(name string) bool {
	return len(strings.TrimSpace(name)) >= 2
}

// validPassword requires at least six characters.
func validPassword(password string) bool {
	return len(password) >= 6
}
