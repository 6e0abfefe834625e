package database

import (
	"context"
	"os"
	"testing"
	"time"

	"washbay/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	logger := zerolog.New(os.Stdout)
	db, err := NewDB(":memory:", &logger)
	require.NoError(t, err)
	return db
}

func createTestService(t *testing.T, db *DB, price float64) *models.Service {
	t.Helper()
	svc := &models.Service{
		Name:            "Exterior wash",
		Price:           price,
		DurationMinutes: 30,
		IsActive:        true,
	}
	require.NoError(t, db.CreateService(context.Background(), svc))
	return svc
}

func createTestSlot(t *testing.T, db *DB, serviceID int64, date time.Time, start, end string) *models.Slot {
	t.Helper()
	slot := &models.Slot{
		ServiceID: serviceID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}
	require.NoError(t, db.CreateSlot(context.Background(), slot))
	return slot
}

func createTestUser(t *testing.T, db *DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hash",
		Role:         models.RoleCustomer,
	}
	require.NoError(t, db.CreateUser(context.Background(), user))
	return user
}
