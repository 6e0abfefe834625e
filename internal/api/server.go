package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"washbay/internal/auth"
	"washbay/internal/config"
	"washbay/internal/database"
	"washbay/internal/domain"
	"washbay/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Server exposes the booking platform over HTTP.
type Server struct {
	cfg    *config.Config
	db     *database.DB
	logger *zerolog.Logger
	tokens *auth.TokenManager
	locker domain.LockRepository

	users    *service.UserService
	bookings *service.BookingService
	slots    *service.SlotService
	reviews  *service.ReviewService
	reports  *service.ReportService
	backups  *database.BackupService

	server *http.Server
}

// Deps bundles everything the server needs.
type Deps struct {
	DB       *database.DB
	Tokens   *auth.TokenManager
	Locker   domain.LockRepository
	Users    *service.UserService
	Bookings *service.BookingService
	Slots    *service.SlotService
	Reviews  *service.ReviewService
	Reports  *service.ReportService
	Backups  *database.BackupService
}

func NewServer(cfg *config.Config, deps Deps, logger *zerolog.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		db:       deps.DB,
		logger:   logger,
		tokens:   deps.Tokens,
		locker:   deps.Locker,
		users:    deps.Users,
		bookings: deps.Bookings,
		slots:    deps.Slots,
		reviews:  deps.Reviews,
		reports:  deps.Reports,
		backups:  deps.Backups,
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: time.Duration(cfg.Server.ReadHeaderTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}
	return s
}

// Router assembles the route tree. Exposed separately so tests can drive the
// handler without a listener.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(loggingMiddleware(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(metricsMiddleware)

	limiter := newRateLimiter(s.cfg.RateLimit.RPS, s.cfg.RateLimit.Burst)
	r.Use(limiter.middleware)

	r.Get("/health/live", s.handleLive)
	r.Get("/health/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Get("/services", s.handleListServices)
		r.Get("/services/{id}", s.handleGetService)
		r.Get("/slots", s.handleListSlots)
		r.Get("/slots/availability", s.handleSlotAvailability)
		r.Get("/reviews", s.handleListReviews)

		// Authenticated customer surface
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Get("/auth/me", s.handleMe)
			r.Put("/auth/me/phone", s.handleUpdatePhone)

			r.Post("/bookings", s.handleCreateBooking)
			r.Get("/bookings", s.handleListBookings)
			r.Get("/bookings/{id}", s.handleGetBooking)
			r.Post("/bookings/{id}/cancel", s.handleCancelBooking)
			r.Get("/bookings/{id}/payment-status", s.handlePaymentStatus)

			r.Post("/create-payment-intent", s.handleCreatePaymentIntent)
			r.Post("/confirm-payment", s.handleConfirmPayment)

			r.Post("/reviews", s.handleCreateReview)
			r.Get("/loyalty", s.handleLoyalty)
		})

		// Admin surface
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Use(s.adminMiddleware)

			r.Post("/services", s.handleCreateService)
			r.Put("/services/{id}", s.handleUpdateService)
			r.Delete("/services/{id}", s.handleDeleteService)

			r.Post("/slots", s.handleCreateSlot)
			r.Post("/slots/generate", s.handleGenerateSlots)
			r.Delete("/slots/{id}", s.handleDeleteSlot)

			r.Put("/bookings/{id}/status", s.handleUpdateBookingStatus)
			r.Put("/bookings/{id}/payment-status", s.handleSetPaymentStatus)

			r.Route("/admin", func(r chi.Router) {
				r.Get("/users", s.handleListUsers)
				r.Get("/analytics", s.handleAnalytics)
				r.Get("/sales-export", s.handleSalesExport)
				r.Post("/backup", s.handleBackup)

				r.Get("/staff", s.handleListStaff)
				r.Post("/staff", s.handleCreateStaff)
				r.Put("/staff/{id}", s.handleUpdateStaff)
				r.Delete("/staff/{id}", s.handleDeleteStaff)

				r.Get("/inventory", s.handleListInventory)
				r.Get("/inventory/low-stock", s.handleLowStock)
				r.Post("/inventory", s.handleCreateInventory)
				r.Put("/inventory/{id}", s.handleUpdateInventory)
				r.Post("/inventory/{id}/adjust", s.handleAdjustInventory)
				r.Delete("/inventory/{id}", s.handleDeleteInventory)
			})
		})
	})

	return r
}

func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleLive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database is not ready")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
