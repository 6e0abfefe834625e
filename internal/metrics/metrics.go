package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "washbay",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status class.",
		},
		[]string{"route", "status"},
	)

	bookingsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "washbay",
			Name:      "bookings_created_total",
			Help:      "Bookings created by payment method.",
		},
		[]string{"method"},
	)

	bookingsCancelled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "washbay",
			Name:      "bookings_cancelled_total",
			Help:      "Bookings cancelled by initiator (user, admin, sweep).",
		},
		[]string{"by"},
	)

	slotConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "washbay",
			Name:      "slot_conflicts_total",
			Help:      "Booking attempts rejected because the slot was taken.",
		},
	)

	payments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "washbay",
			Name:      "payments_total",
			Help:      "Payment confirmations by outcome.",
		},
		[]string{"status"},
	)

	sweepCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "washbay",
			Name:      "sweep_auto_cancelled_total",
			Help:      "Overdue bookings auto-cancelled by the sweeper.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			httpRequests,
			bookingsCreated,
			bookingsCancelled,
			slotConflicts,
			payments,
			sweepCancelled,
		)
	})
}

func IncHTTP(route, status string) {
	httpRequests.WithLabelValues(route, status).Inc()
}

func IncBookingCreated(method string) {
	bookingsCreated.WithLabelValues(method).Inc()
}

func IncBookingCancelled(by string) {
	bookingsCancelled.WithLabelValues(by).Inc()
}

func IncSlotConflict() {
	slotConflicts.Inc()
}

func IncPayment(status string) {
	payments.WithLabelValues(status).Inc()
}

func AddSweepCancelled(n int) {
	sweepCancelled.Add(float64(n))
}
