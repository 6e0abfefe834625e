package service

import (
	"context"
	"testing"

	"washbay/internal/database"
	"washbay/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRegisterAndLogin(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	user, token, err := env.users.Register(ctx, "Anna", "  Anna@Example.COM ", "password123", "+15550001")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "anna@example.com", user.Email)
	assert.Equal(t, models.RoleCustomer, user.Role)

	got, token, err := env.users.Login(ctx, "ANNA@example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, user.ID, got.ID)
}

func TestUserRegister_Validation(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	_, _, err := env.users.Register(ctx, "", "a@b.c", "password123", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = env.users.Register(ctx, "Anna", "not-an-email", "password123", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = env.users.Register(ctx, "Anna", "a@b.c", "short", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUserRegister_DuplicateEmail(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	_, _, err := env.users.Register(ctx, "Anna", "anna@example.com", "password123", "")
	require.NoError(t, err)

	_, _, err = env.users.Register(ctx, "Other", "Anna@Example.com", "password123", "")
	assert.ErrorIs(t, err, database.ErrEmailTaken)
}

func TestUserLogin_BadCredentials(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	_, _, err := env.users.Register(ctx, "Anna", "anna@example.com", "password123", "")
	require.NoError(t, err)

	// Unknown email and wrong password produce the same error.
	_, _, err = env.users.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCreds)

	_, _, err = env.users.Login(ctx, "anna@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCreds)
}

func TestUserProfile(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	user, _, err := env.users.Register(ctx, "Anna", "anna@example.com", "password123", "+15550001")
	require.NoError(t, err)

	require.NoError(t, env.users.UpdatePhone(ctx, user.ID, "+15559999"))

	got, err := env.users.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "+15559999", got.Phone)
}
