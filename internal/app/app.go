package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"timeslots-service/internal/config"
	"timeslots-service/internal/domain/service"
	cronpkg "timeslots-service/internal/infrastructure/cron"
	infradb "timeslots-service/internal/infrastructure/db"
	"timeslots-service/internal/infrastructure/kafka"
	"timeslots-service/internal/infrastructure/postgres"
	infraredis "timeslots-service/internal/infrastructure/redis"
	"timeslots-service/internal/infrastructure/smtp"
	svc "timeslots-service/internal/service"
	transport "timeslots-service/internal/transport/http"
	"timeslots-service/pkg/jwt"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
)

// App represents the application
type App struct {
	config          *config.Config
	httpServer      *transport.Server
	reminderChecker *cronpkg.ReminderChecker
	tracker         service.TrackerService
	kafkaProducer   *kafka.Producer
	redisClient     *goredis.Client
	dbPool          *pgxpool.Pool
}

// New creates a new application
func New() (*App, error) {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Println("Configuration loaded successfully")

	// Initialize PostgreSQL connection pool
	ctx := context.Background()
	dbPool, err := infradb.NewPostgresPool(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	fmt.Println("Connected to PostgreSQL")

	// Initialize Redis client
	redisClient, err := infraredis.NewClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	fmt.Println("Connected to Redis")

	// Initialize repositories
	entryRepo := postgres.NewEntryRepository(dbPool)
	goalRepo := postgres.NewGoalRepository(dbPool)
	templateRepo := postgres.NewTemplateRepository(dbPool)
	reminderRepo := postgres.NewReminderRepository(dbPool)
	reminderState := infraredis.NewReminderStateStorage(redisClient)

	// Initialize Kafka producer when enabled; services treat a nil
	// publisher as disabled eventing
	var kafkaProducer *kafka.Producer
	var events svc.EventPublisher
	if cfg.Kafka.Enabled {
		kafkaProducer = kafka.NewProducer(&cfg.Kafka)
		events = kafkaProducer
		fmt.Println("Kafka producer initialized")
	}

	// Initialize SMTP client
	smtpClient, err := smtp.NewClient(&cfg.SMTP)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	// Initialize JWT token manager
	tokenManager := jwt.NewTokenManager(
		cfg.JWT.Secret,
		cfg.JWT.TokenTTL,
		cfg.JWT.Issuer,
	)

	// Initialize services
	tracker := svc.NewTrackerService(entryRepo, events, cfg.Autosave.Delay)
	goals := svc.NewGoalService(goalRepo, events)
	templates := svc.NewTemplateService(templateRepo, tracker, events)
	analytics := svc.NewAnalyticsService(entryRepo, goalRepo)
	reminders := svc.NewReminderService(reminderRepo, reminderState, smtpClient)

	// Initialize reminder checker
	var reminderChecker *cronpkg.ReminderChecker
	if cfg.Scheduler.Enabled {
		reminderChecker = cronpkg.NewReminderChecker(reminders, cfg.Scheduler.CheckInterval)
	}

	// Initialize HTTP transport
	handler := transport.NewHandler(tracker, goals, templates, analytics, reminders)
	authMiddleware := transport.NewAuthMiddleware(tokenManager)
	httpServer := transport.NewServer(handler, authMiddleware, &cfg.HTTP)

	return &App{
		config:          cfg,
		httpServer:      httpServer,
		reminderChecker: reminderChecker,
		tracker:         tracker,
		kafkaProducer:   kafkaProducer,
		redisClient:     redisClient,
		dbPool:          dbPool,
	}, nil
}

// Run starts the application
func (a *App) Run() error {
	// Setup signal handling for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	// Start reminder checker
	if a.reminderChecker != nil {
		if err := a.reminderChecker.Start(); err != nil {
			return fmt.Errorf("failed to start reminder checker: %w", err)
		}
	}

	// Start HTTP server in a goroutine
	go func() {
		if err := a.httpServer.Start(); err != nil {
			fmt.Printf("HTTP server error: %v\n", err)
			quit <- syscall.SIGTERM
		}
	}()

	fmt.Printf("Timeslots service started on port %d\n", a.config.HTTP.Port)
	fmt.Println("Press Ctrl+C to shutdown...")

	// Wait for interrupt signal
	<-quit
	fmt.Println("\nShutting down server...")

	// Stop taking requests first, then flush pending edits before the
	// backing connections go away
	ctx, cancel := context.WithTimeout(context.Background(), a.config.HTTP.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		fmt.Printf("Error stopping HTTP server: %v\n", err)
	}

	if a.reminderChecker != nil {
		a.reminderChecker.Stop()
	}

	a.tracker.Shutdown()

	if a.kafkaProducer != nil {
		if err := a.kafkaProducer.Close(); err != nil {
			fmt.Printf("Error closing Kafka producer: %v\n", err)
		}
	}

	if err := a.redisClient.Close(); err != nil {
		fmt.Printf("Error closing Redis client: %v\n", err)
	}

	a.dbPool.Close()

	fmt.Println("Server shutdown complete")
	return nil
}
