package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"washbay/internal/auth"
	"washbay/internal/config"
	"washbay/internal/database"
	"washbay/internal/events"
	"washbay/internal/models"
	"washbay/internal/payment"
	"washbay/internal/repository"
	"washbay/internal/schedule"
	"washbay/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiEnv struct {
	db      *database.DB
	handler http.Handler
}

func setupAPI(t *testing.T) *apiEnv {
	t.Helper()
	logger := zerolog.New(io.Discard)
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{}
	cfg.Server.Port = 8080

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	locker := repository.NewMemoryLockRepository()
	bus := events.NewEventBus()
	provider := payment.NewFakeProvider()
	tmpl := schedule.DayTemplate{OpenTime: "08:00", CloseTime: "20:00", DurationMinutes: 30}

	deps := Deps{
		DB:       db,
		Tokens:   tokens,
		Locker:   locker,
		Users:    service.NewUserService(db, tokens, 4, &logger),
		Bookings: service.NewBookingService(db, locker, provider, bus, &logger, "usd", 0.1, 30),
		Slots:    service.NewSlotService(db, &logger, tmpl, 30),
		Reviews:  service.NewReviewService(db, bus, &logger),
		Reports:  service.NewReportService(db, &logger),
		Backups:  database.NewBackupService(db, t.TempDir(), time.Hour, 7, &logger),
	}
	server := NewServer(cfg, deps, &logger)

	return &apiEnv{db: db, handler: server.Router()}
}

func (e *apiEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

// register creates an account through the API and returns its token.
func (e *apiEnv) register(t *testing.T, name, email string) (int64, string) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string       `json:"token"`
		User  *models.User `json:"user"`
	}
	decodeBody(t, rec, &resp)
	return resp.User.ID, resp.Token
}

// registerAdmin creates an account, promotes it and logs in again so the
// token carries the admin role.
func (e *apiEnv) registerAdmin(t *testing.T, email string) string {
	t.Helper()
	id, _ := e.register(t, "Admin", email)
	require.NoError(t, e.db.UpdateUserRole(context.Background(), id, models.RoleAdmin))

	rec := e.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	decodeBody(t, rec, &resp)
	return resp.Token
}

func tomorrowStr() string {
	return time.Now().AddDate(0, 0, 1).Format("2006-01-02")
}

func TestHealthEndpoints(t *testing.T) {
	env := setupAPI(t)

	rec := env.do(t, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthFlow(t *testing.T) {
	env := setupAPI(t)

	_, token := env.register(t, "Anna", "anna@example.com")

	rec := env.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var user models.User
	decodeBody(t, rec, &user)
	assert.Equal(t, "anna@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)

	// Wrong password and unknown email both come back 401.
	rec = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "anna@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "nobody@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Duplicate registration conflicts.
	rec = env.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Clone", "email": "anna@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthRequired(t *testing.T) {
	env := setupAPI(t)

	rec := env.do(t, http.MethodGet, "/api/bookings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/bookings", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminGate(t *testing.T) {
	env := setupAPI(t)

	_, customerToken := env.register(t, "Anna", "anna@example.com")

	body := map[string]any{"name": "Exterior wash", "price": 25.00, "duration_minutes": 30}
	rec := env.do(t, http.MethodPost, "/api/services", customerToken, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminToken := env.registerAdmin(t, "boss@example.com")
	rec = env.do(t, http.MethodPost, "/api/services", adminToken, body)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestServiceEndpoints(t *testing.T) {
	env := setupAPI(t)
	adminToken := env.registerAdmin(t, "boss@example.com")

	rec := env.do(t, http.MethodPost, "/api/services", adminToken, map[string]any{
		"name": "Full wash", "price": 45.00, "duration_minutes": 60, "category": "exterior",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var svc models.Service
	decodeBody(t, rec, &svc)

	rec = env.do(t, http.MethodGet, "/api/services", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Services []*models.Service `json:"services"`
	}
	decodeBody(t, rec, &list)
	require.Len(t, list.Services, 1)

	// Deactivation hides the service from the public list but admins still
	// see it with ?all=true.
	rec = env.do(t, http.MethodDelete, "/api/services/"+itoa(svc.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/services", "", nil)
	decodeBody(t, rec, &list)
	assert.Empty(t, list.Services)

	rec = env.do(t, http.MethodGet, "/api/services?all=true", adminToken, nil)
	decodeBody(t, rec, &list)
	assert.Len(t, list.Services, 1)

	rec = env.do(t, http.MethodGet, "/api/services/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookingEndpoints(t *testing.T) {
	env := setupAPI(t)
	adminToken := env.registerAdmin(t, "boss@example.com")
	_, customerToken := env.register(t, "Anna", "anna@example.com")

	rec := env.do(t, http.MethodPost, "/api/services", adminToken, map[string]any{
		"name": "Full wash", "price": 45.00, "duration_minutes": 30,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var svc models.Service
	decodeBody(t, rec, &svc)

	rec = env.do(t, http.MethodPost, "/api/slots", adminToken, map[string]any{
		"service_id": svc.ID, "date": tomorrowStr(), "start_time": "10:00", "end_time": "10:30",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var slot models.Slot
	decodeBody(t, rec, &slot)

	bookingBody := map[string]any{
		"service_id":     svc.ID,
		"slot_id":        slot.ID,
		"payment_method": "cash",
		"vehicle":        map[string]any{"type": "sedan", "brand": "Toyota", "model": "Corolla", "plate": "A123BC"},
	}
	rec = env.do(t, http.MethodPost, "/api/bookings", customerToken, bookingBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var booking bookingResponse
	decodeBody(t, rec, &booking)
	assert.Equal(t, models.StatusPending, booking.Status)

	// The slot is taken now.
	rec = env.do(t, http.MethodPost, "/api/bookings", customerToken, bookingBody)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Admin walks the booking to completion.
	for _, status := range []string{models.StatusConfirmed, models.StatusInProgress, models.StatusCompleted} {
		rec = env.do(t, http.MethodPut, "/api/bookings/"+itoa(booking.ID)+"/status", adminToken,
			map[string]string{"status": status})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/api/bookings/"+itoa(booking.ID)+"/payment-status", customerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var payStatus struct {
		PaymentStatus string `json:"payment_status"`
	}
	decodeBody(t, rec, &payStatus)
	assert.Equal(t, models.PaymentCompleted, payStatus.PaymentStatus)

	// Completed loyalty: 45.00 at 0.1 per unit is 4 points.
	rec = env.do(t, http.MethodGet, "/api/loyalty", customerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var loyalty struct {
		Balance int64 `json:"balance"`
	}
	decodeBody(t, rec, &loyalty)
	assert.Equal(t, int64(4), loyalty.Balance)

	// Skipping states is refused.
	rec = env.do(t, http.MethodPut, "/api/bookings/"+itoa(booking.ID)+"/status", adminToken,
		map[string]string{"status": models.StatusConfirmed})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Admin can override the payment status directly.
	rec = env.do(t, http.MethodPut, "/api/bookings/"+itoa(booking.ID)+"/payment-status", adminToken,
		map[string]string{"payment_status": models.PaymentFailed})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var overridden bookingResponse
	decodeBody(t, rec, &overridden)
	assert.Equal(t, models.PaymentFailed, overridden.PaymentStatus)

	rec = env.do(t, http.MethodPut, "/api/bookings/"+itoa(booking.ID)+"/payment-status", customerToken,
		map[string]string{"payment_status": models.PaymentCompleted})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/bookings/"+itoa(booking.ID)+"/payment-status", adminToken,
		map[string]string{"payment_status": "refunded"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookingCancelEndpoint(t *testing.T) {
	env := setupAPI(t)
	adminToken := env.registerAdmin(t, "boss@example.com")
	_, ownerToken := env.register(t, "Anna", "anna@example.com")
	_, strangerToken := env.register(t, "Boris", "boris@example.com")

	rec := env.do(t, http.MethodPost, "/api/services", adminToken, map[string]any{
		"name": "Full wash", "price": 45.00, "duration_minutes": 30,
	})
	var svc models.Service
	decodeBody(t, rec, &svc)

	rec = env.do(t, http.MethodPost, "/api/slots", adminToken, map[string]any{
		"service_id": svc.ID, "date": tomorrowStr(), "start_time": "10:00", "end_time": "10:30",
	})
	var slot models.Slot
	decodeBody(t, rec, &slot)

	rec = env.do(t, http.MethodPost, "/api/bookings", ownerToken, map[string]any{
		"service_id": svc.ID, "slot_id": slot.ID, "payment_method": "cash",
		"vehicle": map[string]any{"type": "sedan", "plate": "A123BC"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var booking bookingResponse
	decodeBody(t, rec, &booking)

	// A stranger can neither read nor cancel it.
	rec = env.do(t, http.MethodGet, "/api/bookings/"+itoa(booking.ID), strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = env.do(t, http.MethodPost, "/api/bookings/"+itoa(booking.ID)+"/cancel", strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/bookings/"+itoa(booking.ID)+"/cancel", ownerToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Cancelling again conflicts.
	rec = env.do(t, http.MethodPost, "/api/bookings/"+itoa(booking.ID)+"/cancel", ownerToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPaymentEndpoints(t *testing.T) {
	env := setupAPI(t)
	adminToken := env.registerAdmin(t, "boss@example.com")
	_, customerToken := env.register(t, "Anna", "anna@example.com")

	rec := env.do(t, http.MethodPost, "/api/services", adminToken, map[string]any{
		"name": "Wax and polish", "price": 90.00, "duration_minutes": 60,
	})
	var svc models.Service
	decodeBody(t, rec, &svc)

	rec = env.do(t, http.MethodPost, "/api/slots", adminToken, map[string]any{
		"service_id": svc.ID, "date": tomorrowStr(), "start_time": "12:00", "end_time": "13:00",
	})
	var slot models.Slot
	decodeBody(t, rec, &slot)

	rec = env.do(t, http.MethodPost, "/api/bookings", customerToken, map[string]any{
		"service_id": svc.ID, "slot_id": slot.ID, "payment_method": "card",
		"vehicle": map[string]any{"type": "suv", "plate": "B456DE"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var booking bookingResponse
	decodeBody(t, rec, &booking)

	rec = env.do(t, http.MethodPost, "/api/create-payment-intent", customerToken,
		map[string]any{"booking_id": booking.ID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var intent payment.Intent
	decodeBody(t, rec, &intent)
	require.NotEmpty(t, intent.ID)

	// A different customer cannot confirm someone else's intent.
	_, strangerToken := env.register(t, "Boris", "boris@example.com")
	rec = env.do(t, http.MethodPost, "/api/confirm-payment", strangerToken,
		map[string]any{"intent_id": intent.ID})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/confirm-payment", customerToken,
		map[string]any{"intent_id": intent.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var paid bookingResponse
	decodeBody(t, rec, &paid)
	assert.Equal(t, models.PaymentCompleted, paid.PaymentStatus)
	assert.Equal(t, models.StatusConfirmed, paid.Status)

	rec = env.do(t, http.MethodPost, "/api/confirm-payment", customerToken,
		map[string]any{"intent_id": "pi_unknown"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReviewEndpoints(t *testing.T) {
	env := setupAPI(t)
	adminToken := env.registerAdmin(t, "boss@example.com")
	_, customerToken := env.register(t, "Anna", "anna@example.com")

	rec := env.do(t, http.MethodPost, "/api/services", adminToken, map[string]any{
		"name": "Full wash", "price": 45.00, "duration_minutes": 30,
	})
	var svc models.Service
	decodeBody(t, rec, &svc)

	rec = env.do(t, http.MethodPost, "/api/slots", adminToken, map[string]any{
		"service_id": svc.ID, "date": tomorrowStr(), "start_time": "10:00", "end_time": "10:30",
	})
	var slot models.Slot
	decodeBody(t, rec, &slot)

	rec = env.do(t, http.MethodPost, "/api/bookings", customerToken, map[string]any{
		"service_id": svc.ID, "slot_id": slot.ID, "payment_method": "cash",
		"vehicle": map[string]any{"type": "sedan", "plate": "A123BC"},
	})
	var booking bookingResponse
	decodeBody(t, rec, &booking)

	// Reviews require a completed booking.
	rec = env.do(t, http.MethodPost, "/api/reviews", customerToken,
		map[string]any{"booking_id": booking.ID, "rating": 5, "comment": "spotless"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	for _, status := range []string{models.StatusConfirmed, models.StatusInProgress, models.StatusCompleted} {
		rec = env.do(t, http.MethodPut, "/api/bookings/"+itoa(booking.ID)+"/status", adminToken,
			map[string]string{"status": status})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/reviews", customerToken,
		map[string]any{"booking_id": booking.ID, "rating": 5, "comment": "spotless"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/reviews", customerToken,
		map[string]any{"booking_id": booking.ID, "rating": 4, "comment": "again"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The aggregate shows up on the service page.
	rec = env.do(t, http.MethodGet, "/api/services/"+itoa(svc.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Rating      float64 `json:"rating"`
		ReviewCount int     `json:"review_count"`
	}
	decodeBody(t, rec, &page)
	assert.Equal(t, 5.0, page.Rating)
	assert.Equal(t, 1, page.ReviewCount)
}

func TestSalesExportEndpoint(t *testing.T) {
	env := setupAPI(t)
	adminToken := env.registerAdmin(t, "boss@example.com")
	_, customerToken := env.register(t, "Anna", "anna@example.com")

	// Customers cannot export.
	rec := env.do(t, http.MethodGet, "/api/admin/sales-export", customerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/admin/sales-export?format=excel", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotZero(t, rec.Body.Len())

	rec = env.do(t, http.MethodGet, "/api/admin/sales-export?format=pdf", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".pdf")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	rec = env.do(t, http.MethodGet, "/api/admin/sales-export?format=csv", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyticsEndpoint(t *testing.T) {
	env := setupAPI(t)
	adminToken := env.registerAdmin(t, "boss@example.com")

	rec := env.do(t, http.MethodGet, "/api/admin/analytics", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var analytics service.Analytics
	decodeBody(t, rec, &analytics)
	require.NotNil(t, analytics.Summary)

	rec = env.do(t, http.MethodGet, "/api/admin/analytics?from=2025-06-30&to=2025-06-01", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBackupEndpoint(t *testing.T) {
	env := setupAPI(t)
	adminToken := env.registerAdmin(t, "boss@example.com")
	_, customerToken := env.register(t, "Anna", "anna@example.com")

	rec := env.do(t, http.MethodPost, "/api/admin/backup", customerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/admin/backup", adminToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp struct {
		File string `json:"file"`
	}
	decodeBody(t, rec, &resp)
	assert.True(t, strings.HasPrefix(resp.File, "washbay_"))
	assert.True(t, strings.HasSuffix(resp.File, ".db"))
}

func TestStaffEndpoints(t *testing.T) {
	env := setupAPI(t)
	adminToken := env.registerAdmin(t, "boss@example.com")

	rec := env.do(t, http.MethodPost, "/api/admin/staff", adminToken, map[string]any{
		"name": "Sergey", "role": "washer", "phone": "+15550001",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var member models.StaffMember
	decodeBody(t, rec, &member)

	rec = env.do(t, http.MethodPut, "/api/admin/staff/"+itoa(member.ID), adminToken, map[string]any{
		"role": "supervisor",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &member)
	assert.Equal(t, "supervisor", member.Role)

	rec = env.do(t, http.MethodGet, "/api/admin/staff", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Staff []*models.StaffMember `json:"staff"`
	}
	decodeBody(t, rec, &list)
	assert.Len(t, list.Staff, 1)

	rec = env.do(t, http.MethodDelete, "/api/admin/staff/"+itoa(member.ID), adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodDelete, "/api/admin/staff/"+itoa(member.ID), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInventoryEndpoints(t *testing.T) {
	env := setupAPI(t)
	adminToken := env.registerAdmin(t, "boss@example.com")

	rec := env.do(t, http.MethodPost, "/api/admin/inventory", adminToken, map[string]any{
		"name": "Car shampoo", "quantity": 10, "unit": "liters", "low_stock_threshold": 3,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var item models.InventoryItem
	decodeBody(t, rec, &item)

	// Burn through stock until it dips below the threshold.
	rec = env.do(t, http.MethodPost, "/api/admin/inventory/"+itoa(item.ID)+"/adjust", adminToken,
		map[string]any{"delta": -8})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &item)
	assert.Equal(t, int64(2), item.Quantity)

	rec = env.do(t, http.MethodGet, "/api/admin/inventory/low-stock", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Items []*models.InventoryItem `json:"items"`
	}
	decodeBody(t, rec, &list)
	assert.Len(t, list.Items, 1)

	// Adjustments never go below zero.
	rec = env.do(t, http.MethodPost, "/api/admin/inventory/"+itoa(item.ID)+"/adjust", adminToken,
		map[string]any{"delta": -100})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &item)
	assert.Zero(t, item.Quantity)
}

func TestSlotEndpoints(t *testing.T) {
	env := setupAPI(t)
	adminToken := env.registerAdmin(t, "boss@example.com")

	rec := env.do(t, http.MethodPost, "/api/services", adminToken, map[string]any{
		"name": "Exterior wash", "price": 25.00, "duration_minutes": 30,
	})
	var svc models.Service
	decodeBody(t, rec, &svc)

	rec = env.do(t, http.MethodPost, "/api/slots/generate", adminToken, map[string]any{
		"service_id": svc.ID, "from": tomorrowStr(), "days": 1,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var generated struct {
		Created int `json:"created"`
	}
	decodeBody(t, rec, &generated)
	// 08:00-20:00 at 30 minutes is 24 slots.
	assert.Equal(t, 24, generated.Created)

	rec = env.do(t, http.MethodGet, "/api/slots?service_id="+itoa(svc.ID)+"&date="+tomorrowStr(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var slots struct {
		Slots []*models.Slot `json:"slots"`
	}
	decodeBody(t, rec, &slots)
	assert.Len(t, slots.Slots, 24)

	rec = env.do(t, http.MethodGet, "/api/slots/availability?service_id="+itoa(svc.ID)+"&from="+tomorrowStr()+"&days=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var availability struct {
		Availability []*models.SlotAvailability `json:"availability"`
	}
	decodeBody(t, rec, &availability)
	require.Len(t, availability.Availability, 1)
	assert.Equal(t, int64(24), availability.Availability[0].Free)

	rec = env.do(t, http.MethodGet, "/api/slots/availability", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
