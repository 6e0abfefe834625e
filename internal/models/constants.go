package models

const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

const (
	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

const (
	// RatingMin и RatingMax ограничивают оценку отзыва
	RatingMin = 1
	RatingMax = 5

	// DefaultSlotDurationMinutes длительность слота по умолчанию
	DefaultSlotDurationMinutes = 30

	// DefaultGenerateDaysAhead на сколько дней вперед генерируются слоты
	DefaultGenerateDaysAhead = 30

	// DefaultLoyaltyPointsPerUnit очков лояльности за единицу валюты
	DefaultLoyaltyPointsPerUnit = 0.1

	// DefaultExportRowCap максимум строк детализации в PDF экспорте
	DefaultExportRowCap = 20
)

// AllowedTransitions describes which booking statuses may follow each other.
// Terminal states have no outgoing edges.
var AllowedTransitions = map[string][]string{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to string) bool {
	for _, allowed := range AllowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether a status has no outgoing transitions.
func IsTerminalStatus(status string) bool {
	return len(AllowedTransitions[status]) == 0
}
