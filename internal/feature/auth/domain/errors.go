// Package domain defines domain-level errors for the auth feature.
package domain

import "errors"

// Domain errors for user persistence.
// These represent business outcomes and are matched with errors.Is by the
// usecase and transport layers.
var (
	// ErrEmailAlreadyExists indicates that a user with the given email
	// already exists. The database uniqueness constraint is the final
	// arbiter, so a lost create race also surfaces as this error.
	ErrEmailAlreadyExists = errors.New("user with this email already exists")

	// ErrUserNotFound indicates that no user was found with the given
	// criteria.
	ErrUserNotFound = errors.New("user not found")
)
