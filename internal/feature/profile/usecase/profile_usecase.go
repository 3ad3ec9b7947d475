// Package usecase implements the business logic for the profile feature.
package usecase

import (
	"context"
	"strings"

	"marketplace_backend/internal/feature/auth/domain/entity"
)

// UserRepository abstracts the persistence operations the profile feature
// needs. Following Go convention: interfaces are defined by the consumer
// (usecase), not the provider (adapters). The same gorm adapter that backs
// the auth feature satisfies this interface.
type UserRepository interface {
	// FindByID retrieves a user by ID.
	// It returns domain.ErrUserNotFound if the user does not exist.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// Update applies a partial column update and returns the updated user.
	// It returns domain.ErrUserNotFound for an unknown ID and
	// domain.ErrEmailAlreadyExists when an email change collides.
	Update(ctx context.Context, id uint, fields map[string]any) (*entity.User, error)
}

// UpdateInput is the partial field set accepted by profile updates.
// Nil pointers mean "leave unchanged". The password is never part of this
// input; it can only be set through the registration path.
type UpdateInput struct {
	Name        *string
	Email       *string
	DOB         *string
	Gender      *string
	PhoneNumber *string
	Description *string
}

// profileUsecase implements the profile read/update logic.
type profileUsecase struct {
	users UserRepository
}

// NewProfileUsecase creates a new profileUsecase instance.
func NewProfileUsecase(users UserRepository) *profileUsecase {
	return &profileUsecase{users: users}
}

// Update applies the provided fields to the user's profile and returns the
// updated record with the password hash blanked. Unset fields are dropped
// before touching the store.
func (u *profileUsecase) Update(ctx context.Context, id uint, in UpdateInput) (*entity.User, error) {
	current, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		fields["email"] = email
		if email != current.Email {
			// TODO: changing the email should plausibly re-run the
			// verification code flow instead of auto-granting the flag.
			// Kept as-is pending a product decision.
			fields["is_verified"] = true
		}
	}
	if in.DOB != nil {
		fields["dob"] = *in.DOB
	}
	if in.Gender != nil {
		fields["gender"] = *in.Gender
	}
	if in.PhoneNumber != nil {
		fields["phone_number"] = *in.PhoneNumber
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}

	updated, err := u.users.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	// The hash never leaves the authentication boundary.
	updated.Password = ""
	return updated, nil
}
