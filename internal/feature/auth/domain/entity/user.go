// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account in the marketplace.
// It contains authentication credentials, the email verification flag,
// and the optional profile fields shown on the user's profile page.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey" json:"id"`

	// Name is the display name supplied at registration.
	Name string `gorm:"size:255;not null" json:"name"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users and is stored lowercased.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`

	// Password is the bcrypt hash of the user's password.
	// This should never store plaintext passwords and is never serialized.
	Password string `gorm:"size:255;not null" json:"-"`

	// DOB is the date of birth in DD/MM/YY format.
	DOB string `gorm:"size:8" json:"DOB,omitempty"`

	// Gender is one of Male, Female or Other.
	Gender string `gorm:"size:10" json:"gender,omitempty"`

	// PhoneNumber holds 10 to 15 digits.
	PhoneNumber string `gorm:"size:15" json:"phoneNumber,omitempty"`

	// Description is a free-text profile blurb, at most 500 characters.
	Description string `gorm:"size:500" json:"description,omitempty"`

	// IsVerified reports whether the email address has been confirmed
	// with a verification code. Login is refused while it is false.
	IsVerified bool `gorm:"not null;default:false" json:"isVerified"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
}
