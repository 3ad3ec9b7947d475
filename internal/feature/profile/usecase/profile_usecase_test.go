package usecase

import (
	"context"
	"errors"
	"testing"

	"marketplace_backend/internal/feature/auth/domain"
	"marketplace_backend/internal/feature/auth/domain/entity"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
type mockUserRepository struct {
	FindByIDFunc func(ctx context.Context, id uint) (*entity.User, error)
	UpdateFunc   func(ctx context.Context, id uint, fields map[string]any) (*entity.User, error)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) Update(ctx context.Context, id uint, fields map[string]any) (*entity.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, fields)
	}
	return nil, domain.ErrUserNotFound
}

func strPtr(s string) *string { return &s }

func existingUser() *entity.User {
	return &entity.User{
		ID:         1,
		Name:       "Ana",
		Email:      "ana@x.com",
		Password:   "hashed-password",
		IsVerified: true,
	}
}

func TestProfileUsecase_Update(t *testing.T) {
	t.Run("unset fields are dropped before reaching the store", func(t *testing.T) {
		var applied map[string]any
		repo := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
				return existingUser(), nil
			},
			UpdateFunc: func(ctx context.Context, id uint, fields map[string]any) (*entity.User, error) {
				applied = fields
				u := existingUser()
				u.Name = "Anna"
				return u, nil
			},
		}

		uc := NewProfileUsecase(repo)
		_, err := uc.Update(context.Background(), 1, UpdateInput{Name: strPtr("Anna")})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(applied) != 1 {
			t.Errorf("expected exactly one field, got %v", applied)
		}
		if applied["name"] != "Anna" {
			t.Errorf("expected name 'Anna', got %v", applied["name"])
		}
	})

	t.Run("password can never be part of the update", func(t *testing.T) {
		var applied map[string]any
		repo := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
				return existingUser(), nil
			},
			UpdateFunc: func(ctx context.Context, id uint, fields map[string]any) (*entity.User, error) {
				applied = fields
				return existingUser(), nil
			},
		}

		uc := NewProfileUsecase(repo)
		_, err := uc.Update(context.Background(), 1, UpdateInput{
			Name:        strPtr("Anna"),
			Email:       strPtr("anna@x.com"),
			DOB:         strPtr("01/02/99"),
			Gender:      strPtr("Female"),
			PhoneNumber: strPtr("0123456789"),
			Description: strPtr("Sells bikes"),
		})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := applied["password"]; ok {
			t.Error("password must never be applied through the profile path")
		}
	})

	t.Run("changing the email normalizes it and sets the verification flag", func(t *testing.T) {
		var applied map[string]any
		repo := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
				return existingUser(), nil
			},
			UpdateFunc: func(ctx context.Context, id uint, fields map[string]any) (*entity.User, error) {
				applied = fields
				return existingUser(), nil
			},
		}

		uc := NewProfileUsecase(repo)
		_, err := uc.Update(context.Background(), 1, UpdateInput{Email: strPtr(" New@X.com ")})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if applied["email"] != "new@x.com" {
			t.Errorf("expected normalized email 'new@x.com', got %v", applied["email"])
		}
		// Current behavior: an email change auto-grants the flag rather
		// than re-triggering verification.
		if applied["is_verified"] != true {
			t.Errorf("expected is_verified to be set, got %v", applied["is_verified"])
		}
	})

	t.Run("resubmitting the same email does not touch the verification flag", func(t *testing.T) {
		var applied map[string]any
		repo := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
				return existingUser(), nil
			},
			UpdateFunc: func(ctx context.Context, id uint, fields map[string]any) (*entity.User, error) {
				applied = fields
				return existingUser(), nil
			},
		}

		uc := NewProfileUsecase(repo)
		_, err := uc.Update(context.Background(), 1, UpdateInput{Email: strPtr("ana@x.com")})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := applied["is_verified"]; ok {
			t.Error("is_verified must not be applied when the email is unchanged")
		}
	})

	t.Run("returned user has the password hash blanked", func(t *testing.T) {
		repo := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
				return existingUser(), nil
			},
			UpdateFunc: func(ctx context.Context, id uint, fields map[string]any) (*entity.User, error) {
				return existingUser(), nil
			},
		}

		uc := NewProfileUsecase(repo)
		updated, err := uc.Update(context.Background(), 1, UpdateInput{Name: strPtr("Anna")})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Password != "" {
			t.Error("password hash must not leave the usecase")
		}
	})

	t.Run("unknown user is propagated", func(t *testing.T) {
		uc := NewProfileUsecase(&mockUserRepository{})

		_, err := uc.Update(context.Background(), 999, UpdateInput{Name: strPtr("Ghost")})

		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("email collision is propagated", func(t *testing.T) {
		repo := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
				return existingUser(), nil
			},
			UpdateFunc: func(ctx context.Context, id uint, fields map[string]any) (*entity.User, error) {
				return nil, domain.ErrEmailAlreadyExists
			},
		}

		uc := NewProfileUsecase(repo)
		_, err := uc.Update(context.Background(), 1, UpdateInput{Email: strPtr("taken@x.com")})

		if !errors.Is(err, domain.ErrEmailAlreadyExists) {
			t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
		}
	})
}
