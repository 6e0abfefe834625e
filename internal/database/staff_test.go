package database

import (
	"context"
	"testing"

	"washbay/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaffCRUD(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	member := &models.StaffMember{
		Name:     "Sergey",
		Role:     "washer",
		Phone:    "+15550001",
		IsActive: true,
	}
	require.NoError(t, db.CreateStaff(ctx, member))
	require.NotZero(t, member.ID)

	got, err := db.GetStaff(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sergey", got.Name)
	assert.Equal(t, "+15550001", got.Phone)
	assert.Empty(t, got.Email)

	got.Role = "supervisor"
	got.Email = "sergey@washbay.local"
	require.NoError(t, db.UpdateStaff(ctx, got))

	got, err = db.GetStaff(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, "supervisor", got.Role)
	assert.Equal(t, "sergey@washbay.local", got.Email)

	all, err := db.GetAllStaff(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, db.DeleteStaff(ctx, member.ID))
	_, err = db.GetStaff(ctx, member.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, db.DeleteStaff(ctx, member.ID), ErrNotFound)
}

func TestStaffUpdateMissing(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	err := db.UpdateStaff(context.Background(), &models.StaffMember{ID: 9999, Name: "Ghost", Role: "washer"})
	assert.ErrorIs(t, err, ErrNotFound)
}
