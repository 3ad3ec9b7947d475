package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"marketplace_backend/internal/feature/auth/domain"
	"marketplace_backend/internal/feature/auth/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	// Create User table
	err = db.AutoMigrate(&entity.User{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func newVerifiedUser(name, email string) *entity.User {
	return &entity.User{
		Name:       name,
		Email:      email,
		Password:   "hashed_password",
		IsVerified: true,
	}
}

func TestNewUserMySQL(t *testing.T) {
	db := setupTestDB(t)

	repo := NewUserMySQL(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestUserMySQL_Create(t *testing.T) {
	t.Run("successful user creation", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		user := newVerifiedUser("Test", "test@example.com")

		err := repo.Create(context.Background(), user)

		assert.NoError(t, err, "failed to create user")
		assert.NotZero(t, user.ID, "ID is not set")
		assert.False(t, user.CreatedAt.IsZero(), "CreatedAt is not set")
		assert.False(t, user.UpdatedAt.IsZero(), "UpdatedAt is not set")
	})

	t.Run("duplicate email error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		user1 := newVerifiedUser("First", "duplicate@example.com")
		err := repo.Create(context.Background(), user1)
		require.NoError(t, err, "failed to create first user")

		// Create second user with the same email
		user2 := newVerifiedUser("Second", "duplicate@example.com")
		err = repo.Create(context.Background(), user2)

		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists, "should return ErrEmailAlreadyExists")
	})
}

func TestUserMySQL_FindByEmail(t *testing.T) {
	t.Run("find user by email successfully", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		expected := newVerifiedUser("Find", "find@example.com")
		err := repo.Create(context.Background(), expected)
		require.NoError(t, err, "failed to create test data")

		found, err := repo.FindByEmail(context.Background(), "find@example.com")

		assert.NoError(t, err, "failed to find user")
		assert.NotNil(t, found, "user is nil")
		assert.Equal(t, expected.ID, found.ID, "ID does not match")
		assert.Equal(t, expected.Email, found.Email, "email does not match")
		assert.True(t, found.IsVerified, "verification flag does not match")
	})

	t.Run("email not found error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		found, err := repo.FindByEmail(context.Background(), "notfound@example.com")

		assert.Nil(t, found, "user should be nil")
		assert.ErrorIs(t, err, domain.ErrUserNotFound, "should return ErrUserNotFound")
	})
}

func TestUserMySQL_FindByID(t *testing.T) {
	t.Run("find user by ID successfully", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		expected := newVerifiedUser("FindByID", "findbyid@example.com")
		err := repo.Create(context.Background(), expected)
		require.NoError(t, err, "failed to create test data")

		found, err := repo.FindByID(context.Background(), expected.ID)

		assert.NoError(t, err, "failed to find user")
		assert.NotNil(t, found, "user is nil")
		assert.Equal(t, expected.ID, found.ID, "ID does not match")
		assert.Equal(t, expected.Email, found.Email, "email does not match")
	})

	t.Run("ID not found error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		found, err := repo.FindByID(context.Background(), 999)

		assert.Nil(t, found, "user should be nil")
		assert.ErrorIs(t, err, domain.ErrUserNotFound, "should return ErrUserNotFound")
	})
}

func TestUserMySQL_Update(t *testing.T) {
	t.Run("partial update touches only the given columns", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		user := newVerifiedUser("Before", "update@example.com")
		require.NoError(t, repo.Create(context.Background(), user))

		updated, err := repo.Update(context.Background(), user.ID, map[string]any{
			"name":        "After",
			"description": "Sells bikes",
		})

		assert.NoError(t, err, "failed to update user")
		assert.Equal(t, "After", updated.Name, "name was not updated")
		assert.Equal(t, "Sells bikes", updated.Description, "description was not updated")
		assert.Equal(t, "update@example.com", updated.Email, "email must be untouched")
		assert.Equal(t, "hashed_password", updated.Password, "password must be untouched")
	})

	t.Run("empty field set returns the current record", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		user := newVerifiedUser("NoChange", "nochange@example.com")
		require.NoError(t, repo.Create(context.Background(), user))

		updated, err := repo.Update(context.Background(), user.ID, map[string]any{})

		assert.NoError(t, err)
		assert.Equal(t, user.Email, updated.Email)
	})

	t.Run("unknown ID returns ErrUserNotFound", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		updated, err := repo.Update(context.Background(), 999, map[string]any{"name": "Ghost"})

		assert.Nil(t, updated, "user should be nil")
		assert.ErrorIs(t, err, domain.ErrUserNotFound, "should return ErrUserNotFound")
	})

	t.Run("email change colliding with another user returns ErrEmailAlreadyExists", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		require.NoError(t, repo.Create(context.Background(), newVerifiedUser("A", "a@example.com")))
		victim := newVerifiedUser("B", "b@example.com")
		require.NoError(t, repo.Create(context.Background(), victim))

		updated, err := repo.Update(context.Background(), victim.ID, map[string]any{"email": "a@example.com"})

		assert.Nil(t, updated, "user should be nil")
		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists, "should return ErrEmailAlreadyExists")
	})
}

func TestUserMySQL_Timestamps(t *testing.T) {
	t.Run("CreatedAt and UpdatedAt are automatically set", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		beforeCreate := time.Now()
		user := newVerifiedUser("Timestamp", "timestamp@example.com")

		err := repo.Create(context.Background(), user)
		require.NoError(t, err, "failed to create user")

		afterCreate := time.Now()

		assert.False(t, user.CreatedAt.IsZero(), "CreatedAt is not set")
		assert.False(t, user.UpdatedAt.IsZero(), "UpdatedAt is not set")
		assert.True(t, user.CreatedAt.After(beforeCreate) || user.CreatedAt.Equal(beforeCreate),
			"CreatedAt is before creation time")
		assert.True(t, user.CreatedAt.Before(afterCreate) || user.CreatedAt.Equal(afterCreate),
			"CreatedAt is after creation time")

		// Timestamps are preserved after retrieval
		found, err := repo.FindByID(context.Background(), user.ID)
		require.NoError(t, err, "failed to find user")

		assert.Equal(t, user.CreatedAt.Unix(), found.CreatedAt.Unix(), "CreatedAt does not match")
		assert.Equal(t, user.UpdatedAt.Unix(), found.UpdatedAt.Unix(), "UpdatedAt does not match")
	})
}
