package dto

import "marketplace_backend/internal/feature/auth/domain/entity"

// MessageResponse carries a human-readable message. It is used both for
// informational successes and for error bodies; "message" is the field
// name the frontend contracts on.
type MessageResponse struct {
	Message string `json:"message"`
}

// AuthResponse is returned after a successful registration or login.
type AuthResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProfileResponse wraps the user record returned by the profile
// endpoints. The password hash is excluded by the entity's JSON tags.
type ProfileResponse struct {
	User    *entity.User `json:"user"`
	Message string       `json:"message,omitempty"`
}
