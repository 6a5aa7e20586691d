// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"github.com/civicworks/volunteerhub/internal/auth"
	"github.com/civicworks/volunteerhub/internal/cache"
	"github.com/civicworks/volunteerhub/internal/config"
	"github.com/civicworks/volunteerhub/internal/email"
	"github.com/civicworks/volunteerhub/internal/handler"
	"github.com/civicworks/volunteerhub/internal/middleware"
	"github.com/civicworks/volunteerhub/internal/repository"
	"github.com/civicworks/volunteerhub/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "startup error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   a.Key,
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := setupDatabase(cfg)
	if err != nil {
		return fmt.Errorf("setting up database: %w", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	eventRepo := repository.NewEventRepository(db)
	oppRepo := repository.NewOpportunityRepository(db)
	requestRepo := repository.NewMatchRequestRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	historyRepo := repository.NewHistoryRepository(db)

	// Initialize token verification against Auth0
	keyCache := cache.NewInMemoryCache(cfg.Matching.KeyCacheTTL, time.Minute)
	keyCache.StartCleanup(context.Background())
	defer keyCache.StopCleanup()

	jwks := auth.NewJWKSProvider(cfg.Auth0.Domain, keyCache)
	verifier := auth.NewVerifier("https://"+cfg.Auth0.Domain+"/", cfg.Auth0.Audience, jwks)

	// Initialize email service
	emailService, err := email.NewEmailService(cfg, email.ProviderSendgrid)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	// Initialize services
	userService := service.NewUserService(userRepo)
	profileService := service.NewProfileService(profileRepo, userRepo)
	notificationService := service.NewNotificationService(notificationRepo, userRepo, profileRepo, matchRepo, emailService)
	eventService := service.NewEventService(eventRepo, oppRepo, notificationService)
	matchingService := service.NewMatchingService(oppRepo, requestRepo, matchRepo, profileRepo, eventRepo, notificationService, cfg)
	historyService := service.NewHistoryService(historyRepo, userRepo)
	reportService := service.NewReportService(historyRepo, eventRepo, matchRepo, oppRepo, historyService)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	profileHandler := handler.NewProfileHandler(profileService)
	eventHandler := handler.NewEventHandler(eventService)
	matchingHandler := handler.NewMatchingHandler(matchingService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	historyHandler := handler.NewHistoryHandler(historyService)
	reportHandler := handler.NewReportHandler(reportService)

	// Create router
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(loggingMiddleware(logger))
	r.Use(recoveryMiddleware(logger))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticator(verifier))

		// CSV exports carry no JSON body
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePermission("reports:read"))

			r.Route("/reports", func(r chi.Router) {
				r.Get("/volunteer-history", reportHandler.VolunteerHistoryCSV)
				r.Get("/events", reportHandler.EventsCSV)
				r.Get("/matches", reportHandler.MatchesCSV)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(chimw.AllowContentType("application/json"))

			// User routes
			r.Route("/users", func(r chi.Router) {
				r.Post("/", userHandler.EnsureUser)
				r.Get("/me", userHandler.Me)
				r.Get("/{id}", userHandler.GetUser)
				r.Get("/by-sub/{sub}", userHandler.GetUserByAuth0Sub)
			})

			// Profile routes
			r.Route("/profiles", func(r chi.Router) {
				r.Get("/", profileHandler.SearchProfiles)

				r.Route("/{userID}", func(r chi.Router) {
					r.Post("/", profileHandler.CreateProfile)
					r.Get("/", profileHandler.GetProfile)
					r.Put("/", profileHandler.UpdateProfile)
					r.Delete("/", profileHandler.DeleteProfile)
					r.Post("/skills", profileHandler.AddSkill)
					r.Delete("/skills", profileHandler.RemoveSkill)
					r.Post("/tags", profileHandler.AddTag)
					r.Delete("/tags", profileHandler.RemoveTag)
					r.Post("/availability", profileHandler.AddAvailability)
					r.Delete("/availability", profileHandler.RemoveAvailability)
				})
			})

			// Event routes
			r.Route("/events", func(r chi.Router) {
				r.Get("/", eventHandler.ListEvents)
				r.Get("/upcoming", eventHandler.ListUpcomingEvents)
				r.Post("/search", eventHandler.SearchEvents)
				r.Get("/{id}", eventHandler.GetEvent)
				r.Get("/{id}/history", historyHandler.EventHistory)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission("events:write"))

					r.Post("/", eventHandler.CreateEvent)
					r.Put("/{id}", eventHandler.UpdateEvent)
					r.Delete("/{id}", eventHandler.DeleteEvent)
					r.Post("/{id}/publish", eventHandler.PublishEvent)
					r.Post("/{id}/cancel", eventHandler.CancelEvent)
				})
			})

			// Opportunity routes
			r.Route("/opportunities", func(r chi.Router) {
				r.Get("/", matchingHandler.ListOpportunities)
				r.Get("/{id}", matchingHandler.GetOpportunity)
				r.Get("/{id}/requests", matchingHandler.ListMatchRequestsByOpportunity)
				r.Get("/{id}/matches", matchingHandler.ListMatchesByOpportunity)
				r.Get("/{id}/candidates", matchingHandler.FindVolunteers)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission("events:write"))

					r.Post("/", matchingHandler.CreateOpportunity)
					r.Put("/{id}", matchingHandler.UpdateOpportunity)
					r.Delete("/{id}", matchingHandler.DeleteOpportunity)
				})
			})

			// Match request routes
			r.Route("/match-requests", func(r chi.Router) {
				r.Post("/", matchingHandler.CreateMatchRequest)
				r.Get("/{id}", matchingHandler.GetMatchRequest)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission("matching:approve"))

					r.Post("/{id}/approve", matchingHandler.ApproveMatchRequest)
					r.Post("/{id}/reject", matchingHandler.RejectMatchRequest)
					r.Post("/expire", matchingHandler.ExpireOldRequests)
				})
			})

			// Match routes
			r.With(middleware.RequirePermission("matching:approve")).
				Post("/matches/{id}/cancel", matchingHandler.CancelMatch)

			// Per-user aggregate routes
			r.Route("/volunteers/{userID}", func(r chi.Router) {
				r.Get("/requests", matchingHandler.ListMatchRequestsByUser)
				r.Get("/matches", matchingHandler.ListMatchesByUser)
				r.Get("/opportunities", matchingHandler.FindOpportunities)
				r.Get("/history", historyHandler.UserHistory)
				r.Get("/history/total-hours", historyHandler.TotalHours)
				r.Get("/history/hours", historyHandler.HoursInPeriod)
				r.Get("/history/event-count", historyHandler.EventCount)
				r.Get("/history/roles", historyHandler.Roles)
				r.Get("/history/statistics", historyHandler.Statistics)
				r.Get("/history/monthly", historyHandler.MonthlyHours)
				r.Get("/notifications", notificationHandler.ListByUser)
				r.Get("/notifications/unread-count", notificationHandler.UnreadCount)
				r.Get("/notification-preferences", notificationHandler.GetPreferences)
				r.Put("/notification-preferences", notificationHandler.SetPreferences)
			})

			// History routes
			r.Route("/history", func(r chi.Router) {
				r.Get("/", historyHandler.ListRecent)
				r.Post("/", historyHandler.CreateEntry)
				r.Get("/top-volunteers", historyHandler.TopVolunteers)
				r.Get("/{id}", historyHandler.GetEntry)
				r.Put("/{id}", historyHandler.UpdateEntry)
				r.Delete("/{id}", historyHandler.DeleteEntry)
			})

			// Notification routes
			r.Route("/notifications", func(r chi.Router) {
				r.Get("/{id}", notificationHandler.GetNotification)
				r.Post("/{id}/read", notificationHandler.MarkRead)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission("notifications:send"))

					r.Post("/", notificationHandler.Send)
					r.Get("/pending", notificationHandler.ListPending)
					r.Post("/retry-failed", notificationHandler.RetryFailed)
					r.Post("/event-assignment", notificationHandler.SendEventAssignment)
					r.Post("/event-reminder", notificationHandler.SendEventReminder)
					r.Post("/event-update", notificationHandler.SendEventUpdate)
					r.Post("/event-cancellation", notificationHandler.SendEventCancellation)
					r.Post("/match-request-approved", notificationHandler.SendMatchRequestApproved)
					r.Post("/match-request-rejected", notificationHandler.SendMatchRequestRejected)
					r.Post("/new-opportunity", notificationHandler.SendNewOpportunity)
				})
			})
		})
	})

	// Create server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Server error channel
	serverErrors := make(chan error, 1)

	// Start server
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Shutdown channel
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)

	// Wait for shutdown or error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("shutdown started", "signal", sig)

		// Give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Gracefully shutdown the server
		if err := srv.Shutdown(ctx); err != nil {
			// If shutdown times out, forcefully close
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func setupDatabase(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
		cfg.Database.SearchPath,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting database instance: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("request completed",
					"method", r.Method,
					"path", r.URL.Path,
					"duration", time.Since(start),
					"status", ww.Status(),
					"size", ww.BytesWritten(),
					"requestID", chimw.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

func recoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					err := errors.New("panic recovered")
					logger.Error("panic recovered",
						"error", err,
						"panic", rvr,
						"stack", string(debug.Stack()),
						"requestID", chimw.GetReqID(r.Context()),
					)

					w.Write([]byte("{\"error\":\"error encountered\"}"))
					return
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
