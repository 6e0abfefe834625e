package database

import (
	"context"
	"testing"

	"washbay/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	user := &models.User{
		Name:         "Alice",
		Email:        "Alice@Test.com",
		PasswordHash: "hash",
		Role:         models.RoleCustomer,
	}
	require.NoError(t, db.CreateUser(ctx, user))
	assert.NotZero(t, user.ID)

	// Email is stored lowercased
	got, err := db.GetUserByEmail(ctx, "alice@test.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "alice@test.com", got.Email)

	// Duplicate email, any casing
	dup := &models.User{Name: "Imposter", Email: "ALICE@test.com", PasswordHash: "x", Role: models.RoleCustomer}
	assert.ErrorIs(t, db.CreateUser(ctx, dup), ErrEmailTaken)
}

func TestGetUserByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, err := db.GetUserByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateUserRole(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	user := createTestUser(t, db, "user@test.com")
	require.NoError(t, db.UpdateUserRole(ctx, user.ID, models.RoleAdmin))

	got, err := db.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, got.Role)
	assert.True(t, got.IsAdmin())

	assert.ErrorIs(t, db.UpdateUserRole(ctx, 9999, models.RoleAdmin), ErrNotFound)
}
