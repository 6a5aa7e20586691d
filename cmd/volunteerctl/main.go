// cmd/volunteerctl/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/civicworks/volunteerhub/internal/config"
	"github.com/civicworks/volunteerhub/internal/email"
	"github.com/civicworks/volunteerhub/internal/model"
	"github.com/civicworks/volunteerhub/internal/repository"
	"github.com/civicworks/volunteerhub/internal/service"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	expiryDays int
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	expireCmd.Flags().IntVarP(&expiryDays, "days", "d", 0, "Expire pending requests older than this many days (0 uses the configured default)")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(expireCmd)
	rootCmd.AddCommand(retryCmd)
}

var rootCmd = &cobra.Command{
	Use:   "volunteerctl",
	Short: "volunteerctl manages the VolunteerHub backend",
	Long:  `volunteerctl runs schema migrations and the periodic maintenance jobs for the VolunteerHub backend.`,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Long:  `Create or update the database tables for all VolunteerHub models.`,
	Run: func(cmd *cobra.Command, args []string) {
		db := openDatabase()

		err := db.AutoMigrate(
			&model.User{},
			&model.Profile{},
			&model.AvailabilityWindow{},
			&model.Event{},
			&model.Opportunity{},
			&model.MatchRequest{},
			&model.Match{},
			&model.Notification{},
			&model.NotificationPreference{},
			&model.VolunteerHistoryEntry{},
		)
		if err != nil {
			log.Fatalf("Failed to migrate schema: %v", err)
		}

		fmt.Println("Schema migrated successfully")
	},
}

var expireCmd = &cobra.Command{
	Use:   "expire-requests",
	Short: "Expire stale pending match requests",
	Long:  `Mark pending match requests older than the expiry window as expired.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		db := openDatabase()

		requestRepo := repository.NewMatchRequestRepository(db)
		oppRepo := repository.NewOpportunityRepository(db)
		matchRepo := repository.NewMatchRepository(db)
		profileRepo := repository.NewProfileRepository(db)
		eventRepo := repository.NewEventRepository(db)
		matching := service.NewMatchingService(oppRepo, requestRepo, matchRepo, profileRepo, eventRepo, nil, cfg)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		count, err := matching.ExpireOldRequests(ctx, expiryDays)
		if err != nil {
			log.Fatalf("Failed to expire requests: %v", err)
		}

		fmt.Printf("Expired %d match requests\n", count)
	},
}

var retryCmd = &cobra.Command{
	Use:   "retry-notifications",
	Short: "Retry failed notification deliveries",
	Long:  `Re-queue every failed notification and attempt delivery again.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		db := openDatabase()

		emailService, err := email.NewEmailService(cfg, email.ProviderSendgrid)
		if err != nil {
			log.Fatalf("Failed to initialize email service: %v", err)
		}

		notificationRepo := repository.NewNotificationRepository(db)
		userRepo := repository.NewUserRepository(db)
		profileRepo := repository.NewProfileRepository(db)
		matchRepo := repository.NewMatchRepository(db)
		notifications := service.NewNotificationService(notificationRepo, userRepo, profileRepo, matchRepo, emailService)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		count, err := notifications.RetryFailed(ctx)
		if err != nil {
			log.Fatalf("Failed to retry notifications: %v", err)
		}

		fmt.Printf("Retried %d notifications\n", count)
	},
}

func openDatabase() *gorm.DB {
	cfg := config.Load()

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

	logLevel := logger.Silent
	if verbose {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	return db
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
