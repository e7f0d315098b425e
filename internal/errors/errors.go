package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrPasswordMismatch is returned when password and confirmation differ.
	ErrPasswordMismatch = errors.New("Passwords do not match!")
	// ErrEmailExists is returned when the email is already registered.
	ErrEmailExists = errors.New("Email already exists!")
	// ErrUsernameExists is returned when the username is already taken.
	ErrUsernameExists = errors.New("Username already exists!")
	// ErrInvalidCredentials is returned on login failure. The message is
	// deliberately the same for an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("Invalid credentials!")
	// ErrUserNotFound is returned when a user lookup misses.
	ErrUserNotFound = errors.New("User not found!")
	// ErrInvalidRole is returned when a role string is not one of the
	// allowed values.
	ErrInvalidRole = errors.New("Invalid role! Allowed values: ADMIN, CABINET_MAKER, INSTALLER")
	// ErrJobNotFound is returned when a job lookup misses.
	ErrJobNotFound = errors.New("Job not found")
	// ErrCabinetMakerNotFound is returned when a job references an
	// unknown cabinet maker id.
	ErrCabinetMakerNotFound = errors.New("Cabinet maker not found")
	// ErrInstallerNotFound is returned when a job references an unknown
	// installer id.
	ErrInstallerNotFound = errors.New("Installer not found")
)

// Required returns the validation error for a blank mandatory field.
// The field name is the human-readable label, e.g. "First name".
func Required(field string) error {
	return errors.New(field + " is required!")
}

// StatusFor maps a domain error to the HTTP status reported by most
// endpoints. Job lookups return 404; everything else in the taxonomy
// is a client error. Callers that report not-found as 400 (the job
// create path) handle that mapping themselves.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrJobNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}
