// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrCodeNotFound is returned when no live verification code exists
	// for the email, either because none was requested or because the
	// code expired.
	ErrCodeNotFound = errors.New("no verification code found")

	// ErrInvalidCode is returned when the submitted verification code
	// does not match the stored one. The stored code stays live so the
	// user may retry without requesting a new one.
	ErrInvalidCode = errors.New("invalid verification code")

	// ErrDeliveryFailed is returned when the verification email could
	// not be sent.
	ErrDeliveryFailed = errors.New("failed to send verification email")

	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password, so callers cannot tell which emails are registered.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnverifiedAccount is returned when the credentials are correct
	// but the email address was never verified.
	ErrUnverifiedAccount = errors.New("email address not verified")
)
