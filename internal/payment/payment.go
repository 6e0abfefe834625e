// Package payment talks to the external card processor. Cash bookings never
// touch this package.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrIntentNotFound = errors.New("payment intent not found")
	ErrDeclined       = errors.New("payment declined")
)

// Intent mirrors the processor's payment intent object.
type Intent struct {
	ID           string  `json:"id"`
	ClientSecret string  `json:"client_secret,omitempty"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	Status       string  `json:"status"` // requires_confirmation, succeeded, failed
}

// Provider creates and confirms payment intents.
type Provider interface {
	CreateIntent(ctx context.Context, amount float64, currency string) (*Intent, error)
	ConfirmIntent(ctx context.Context, intentID string) (*Intent, error)
}

// Client is an HTTP Provider backed by the processor's REST API.
type Client struct {
	baseURL   string
	secretKey string
	http      *http.Client
	logger    *zerolog.Logger
}

func NewClient(baseURL, secretKey string, timeout time.Duration, logger *zerolog.Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		secretKey: secretKey,
		http:      &http.Client{Timeout: timeout},
		logger:    logger,
	}
}

func (c *Client) CreateIntent(ctx context.Context, amount float64, currency string) (*Intent, error) {
	body := map[string]any{
		"amount":          amount,
		"currency":        currency,
		"idempotency_key": uuid.NewString(),
	}
	intent, err := c.post(ctx, "/v1/payment_intents", body)
	if err != nil {
		return nil, err
	}
	c.logger.Info().Str("intent_id", intent.ID).Float64("amount", amount).Msg("payment intent created")
	return intent, nil
}

func (c *Client) ConfirmIntent(ctx context.Context, intentID string) (*Intent, error) {
	path := fmt.Sprintf("/v1/payment_intents/%s/confirm", intentID)
	intent, err := c.post(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	c.logger.Info().Str("intent_id", intent.ID).Str("status", intent.Status).Msg("payment intent confirmed")
	return intent, nil
}

func (c *Client) post(ctx context.Context, path string, body any) (*Intent, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payment request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrIntentNotFound
	case resp.StatusCode == http.StatusPaymentRequired:
		return nil, ErrDeclined
	case resp.StatusCode >= 400:
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("payment provider returned %d: %s", resp.StatusCode, data)
	}

	var intent Intent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, fmt.Errorf("failed to decode payment response: %w", err)
	}
	return &intent, nil
}
