package payment

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// FakeProvider keeps intents in memory. Used by tests and local runs without
// processor credentials.
type FakeProvider struct {
	mu      sync.Mutex
	intents map[string]*Intent

	// FailConfirm makes every confirmation come back declined.
	FailConfirm bool
}

func NewFakeProvider() *FakeProvider {
	return &FakeProvider{intents: make(map[string]*Intent)}
}

func (f *FakeProvider) CreateIntent(_ context.Context, amount float64, currency string) (*Intent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	intent := &Intent{
		ID:           "pi_" + uuid.NewString(),
		ClientSecret: "secret_" + uuid.NewString(),
		Amount:       amount,
		Currency:     currency,
		Status:       "requires_confirmation",
	}
	f.intents[intent.ID] = intent
	return intent, nil
}

func (f *FakeProvider) ConfirmIntent(_ context.Context, intentID string) (*Intent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	intent, ok := f.intents[intentID]
	if !ok {
		return nil, ErrIntentNotFound
	}
	if f.FailConfirm {
		intent.Status = "failed"
		return intent, ErrDeclined
	}
	intent.Status = "succeeded"
	return intent, nil
}
