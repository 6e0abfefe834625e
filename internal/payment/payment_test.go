package payment

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient(t *testing.T) {
	logger := zerolog.New(io.Discard)
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

		switch r.URL.Path {
		case "/v1/payment_intents":
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.NotEmpty(t, body["idempotency_key"])

			json.NewEncoder(w).Encode(Intent{
				ID:           "pi_123",
				ClientSecret: "secret_123",
				Amount:       body["amount"].(float64),
				Currency:     body["currency"].(string),
				Status:       "requires_confirmation",
			})
		case "/v1/payment_intents/pi_123/confirm":
			json.NewEncoder(w).Encode(Intent{ID: "pi_123", Status: "succeeded"})
		case "/v1/payment_intents/pi_declined/confirm":
			w.WriteHeader(http.StatusPaymentRequired)
		case "/v1/payment_intents/pi_missing/confirm":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("boom"))
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test", 5*time.Second, &logger)

	t.Run("CreateIntent", func(t *testing.T) {
		intent, err := client.CreateIntent(ctx, 90.00, "usd")
		require.NoError(t, err)
		assert.Equal(t, "pi_123", intent.ID)
		assert.Equal(t, 90.00, intent.Amount)
		assert.Equal(t, "requires_confirmation", intent.Status)
	})

	t.Run("ConfirmIntent", func(t *testing.T) {
		intent, err := client.ConfirmIntent(ctx, "pi_123")
		require.NoError(t, err)
		assert.Equal(t, "succeeded", intent.Status)
	})

	t.Run("Declined", func(t *testing.T) {
		_, err := client.ConfirmIntent(ctx, "pi_declined")
		assert.ErrorIs(t, err, ErrDeclined)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := client.ConfirmIntent(ctx, "pi_missing")
		assert.ErrorIs(t, err, ErrIntentNotFound)
	})

	t.Run("ServerError", func(t *testing.T) {
		_, err := client.ConfirmIntent(ctx, "pi_weird")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "500")
	})
}

func TestFakeProvider(t *testing.T) {
	provider := NewFakeProvider()
	ctx := context.Background()

	intent, err := provider.CreateIntent(ctx, 45.00, "usd")
	require.NoError(t, err)
	assert.NotEmpty(t, intent.ID)
	assert.NotEmpty(t, intent.ClientSecret)
	assert.Equal(t, "requires_confirmation", intent.Status)

	confirmed, err := provider.ConfirmIntent(ctx, intent.ID)
	require.NoError(t, err)
	assert.Equal(t, "succeeded", confirmed.Status)

	_, err = provider.ConfirmIntent(ctx, "pi_unknown")
	assert.ErrorIs(t, err, ErrIntentNotFound)

	provider.FailConfirm = true
	another, err := provider.CreateIntent(ctx, 25.00, "usd")
	require.NoError(t, err)
	_, err = provider.ConfirmIntent(ctx, another.ID)
	assert.ErrorIs(t, err, ErrDeclined)
}
