package models

import "errors"

var (
	// ErrNoRecord is returned when a lookup matches no document.
	ErrNoRecord = errors.New("models: no matching record found")

	// ErrInvalidCredentials is returned on a bad email/password pair.
	ErrInvalidCredentials = errors.New("models: invalid credentials")

	// ErrWrongAuthMethod is returned when a Google-only account
	// attempts a local password login.
	ErrWrongAuthMethod = errors.New("models: account uses Google login")

	// ErrDuplicateEmail is returned on signup with a taken email.
	ErrDuplicateEmail = errors.New("models: duplicate email")
)
