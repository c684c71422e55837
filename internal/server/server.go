package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/homebuddy/apiserver/config"
	"github.com/homebuddy/apiserver/internal/db"
	"github.com/homebuddy/apiserver/internal/handlers"
	"github.com/homebuddy/apiserver/internal/notify"
	"github.com/homebuddy/apiserver/internal/services"
	"github.com/homebuddy/apiserver/internal/store"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	notifier   *notify.Notifier
}

// New constructs a Server: opens the database, runs the idempotent
// startup seed, wires repositories/services/handlers, and installs
// basic middleware.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	logger := slog.Default()

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := db.Seed(ctx, dbConn, logger); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("startup seed: %w", err)
	}

	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" {
		_ = dbConn.Close()
		return nil, errors.New("JWT_SECRET is required")
	}

	notifier, err := newNotifier(ctx, cfg.Notify, logger)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	userRepo := store.NewUserRepository(dbConn)
	providerRepo := store.NewProviderRepository(dbConn)
	serviceRepo := store.NewServiceRepository(dbConn)
	bookingRepo := store.NewBookingRepository(dbConn)
	reviewRepo := store.NewReviewRepository(dbConn)
	supportRepo := store.NewSupportRepository(dbConn)

	userService := services.NewUserService(userRepo)
	providerService := services.NewProviderService(providerRepo)
	catalogService := services.NewCatalogService(serviceRepo)
	bookingService := services.NewBookingService(bookingRepo, notifier)
	reviewService := services.NewReviewService(reviewRepo, bookingRepo)
	supportService := services.NewSupportService(supportRepo, notifier)

	authMiddleware := handlers.RequireAuth(jwtSecret)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/", handlers.Greet)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/api/auth", func(r chi.Router) {
		handlers.AuthRouter(r, userService, providerService, jwtSecret)
	})
	router.Route("/api/providers", func(r chi.Router) {
		handlers.ProviderRouter(r, providerService, catalogService, userService)
	})
	router.Route("/api/services", func(r chi.Router) {
		handlers.ServiceRouter(r, catalogService, authMiddleware)
	})
	router.Route("/api/bookings", func(r chi.Router) {
		handlers.BookingRouter(r, bookingService, providerService, catalogService, authMiddleware)
	})
	router.Route("/api/reviews", func(r chi.Router) {
		handlers.ReviewRouter(r, reviewService, authMiddleware)
	})
	router.Route("/api/support", func(r chi.Router) {
		handlers.SupportRouter(r, supportService, jwtSecret, authMiddleware)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8001
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		notifier:   notifier,
	}, nil
}

// newNotifier selects an event backend from config. With no backend
// configured a nil Notifier is returned, which drops all events.
func newNotifier(ctx context.Context, cfg config.NotifyConfig, logger *slog.Logger) (*notify.Notifier, error) {
	switch cfg.Backend {
	case "", config.NotifyNone:
		return nil, nil
	case config.NotifyRabbitMQ:
		backend, err := notify.NewRabbitMQClient(cfg.RabbitMQ)
		if err != nil {
			return nil, fmt.Errorf("rabbitmq: %w", err)
		}
		return notify.New(backend, logger), nil
	case config.NotifyPubSub:
		backend, err := notify.NewPubSubClient(ctx, cfg.PubSub)
		if err != nil {
			return nil, fmt.Errorf("pubsub: %w", err)
		}
		return notify.New(backend, logger), nil
	default:
		return nil, fmt.Errorf("unknown notify backend %q", cfg.Backend)
	}
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	_ = s.notifier.Close()
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}
