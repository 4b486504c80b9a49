package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medconnect/config"
	deliveryHttp "medconnect/internal/delivery/http"
	"medconnect/internal/delivery/http/handler"
	"medconnect/internal/delivery/http/middleware"
	"medconnect/internal/infrastructure/cache"
	"medconnect/internal/infrastructure/database"
	"medconnect/internal/infrastructure/firebase"
	"medconnect/internal/infrastructure/metrics"
	"medconnect/internal/repository"
	"medconnect/internal/service"
	"medconnect/internal/usecase"
	"medconnect/pkg/jwt"
	"medconnect/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Firebase    *firebase.Clients
	Scheduler   *service.ReminderScheduler
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	setupLogger(cfg.App.LogLevel)
	logrus.Info("Configuration loaded successfully")

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(cfg.DB); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// the clients keep the context for their lifetime
	fb, err := firebase.NewClients(context.Background(), cfg.Firebase)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize firebase: %w", err)
	}
	app.Firebase = fb

	app.Server, app.Scheduler = initializeServer(cfg, db, redisClient, fb)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Unknown log level %q, falling back to info", level)
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

// initializeServer wires every layer and returns the HTTP server together
// with the reminder scheduler, which is started by Run.
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, fb *firebase.Clients) (*http.Server, *service.ReminderScheduler) {
	log := logrus.StandardLogger()

	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := metrics.NewHTTPMetrics(registry)
	appointmentMetrics := metrics.NewAppointmentMetrics(registry)

	// Relational repositories
	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	professionalProfileRepo := repository.NewProfessionalProfileRepository()
	patientProfileRepo := repository.NewPatientProfileRepository()
	hospitalRepo := repository.NewHospitalRepository()
	specialtyRepo := repository.NewSpecialtyRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	medicalRecordRepo := repository.NewMedicalRecordRepository()
	reviewRepo := repository.NewReviewRepository()
	ticketRepo := repository.NewSupportTicketRepository()
	notificationRepo := repository.NewNotificationRepository()
	reminderRepo := repository.NewReminderRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Document store repositories
	examResultRepo := repository.NewExamResultRepository(fb.Firestore, log)
	transactionRepo := repository.NewFinancialTransactionRepository(fb.Firestore, log)
	supplyRepo := repository.NewSupplyRepository(fb.Firestore, log)

	// Services
	tokenStore := service.NewTokenStore(redisClient, log, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)
	identityVerifier := service.NewFirebaseIdentityVerifier(fb.Auth)
	auditService := service.NewAuditService(log, auditLogRepo)
	draftStore := service.NewBookingDraftStore(redisClient, cfg.Booking.DraftTTL)
	statsCache := service.NewStatsCache(redisClient, cfg.Stats.CacheTTL)

	// Usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, professionalProfileRepo, patientProfileRepo,
		specialtyRepo, hospitalRepo, jwtService, tokenStore, identityVerifier, auditService)
	professionalUsecase := usecase.NewProfessionalUsecase(db, log, userRepo, professionalProfileRepo,
		specialtyRepo, hospitalRepo, reviewRepo, tokenStore, auditService)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientProfileRepo, auditService)
	hospitalUsecase := usecase.NewHospitalUsecase(db, log, hospitalRepo, specialtyRepo)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, professionalProfileRepo,
		notificationRepo, reminderRepo, auditService, statsCache, appointmentMetrics)
	bookingWizardUsecase := usecase.NewBookingWizardUsecase(db, log, draftStore, specialtyRepo,
		professionalProfileRepo, appointmentUsecase)
	medicalRecordUsecase := usecase.NewMedicalRecordUsecase(db, log, medicalRecordRepo, patientProfileRepo,
		appointmentRepo, auditService, statsCache)
	examResultUsecase := usecase.NewExamResultUsecase(db, log, examResultRepo, patientProfileRepo)
	reviewUsecase := usecase.NewReviewUsecase(db, log, reviewRepo, appointmentRepo, professionalProfileRepo, statsCache)
	supportTicketUsecase := usecase.NewSupportTicketUsecase(db, log, ticketRepo, notificationRepo, auditService, statsCache)
	notificationUsecase := usecase.NewNotificationUsecase(db, log, notificationRepo, userRepo, statsCache)
	reminderUsecase := usecase.NewReminderUsecase(db, log, reminderRepo, notificationRepo, appointmentRepo, statsCache)
	financialUsecase := usecase.NewFinancialUsecase(log, transactionRepo)
	supplyUsecase := usecase.NewSupplyUsecase(log, supplyRepo, statsCache)
	dashboardUsecase := usecase.NewDashboardUsecase(db, log, userRepo, roleRepo, appointmentRepo, medicalRecordRepo,
		notificationRepo, reviewRepo, ticketRepo, supplyRepo, transactionRepo, statsCache)
	exportUsecase := usecase.NewExportUsecase(db, log, appointmentRepo, transactionRepo, supplyRepo)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	router := deliveryHttp.NewRouter(deliveryHttp.RouterConfig{
		AuthHandler:          handler.NewAuthHandler(authUsecase, customValidator),
		ProfessionalHandler:  handler.NewProfessionalHandler(professionalUsecase, reviewUsecase, customValidator),
		PatientHandler:       handler.NewPatientHandler(patientUsecase, customValidator),
		HospitalHandler:      handler.NewHospitalHandler(hospitalUsecase, customValidator),
		AppointmentHandler:   handler.NewAppointmentHandler(appointmentUsecase, bookingWizardUsecase, customValidator),
		MedicalRecordHandler: handler.NewMedicalRecordHandler(medicalRecordUsecase, examResultUsecase, customValidator),
		EngagementHandler: handler.NewEngagementHandler(reviewUsecase, supportTicketUsecase, notificationUsecase,
			reminderUsecase, customValidator),
		OperationsHandler: handler.NewOperationsHandler(financialUsecase, supplyUsecase, customValidator),
		DashboardHandler:  handler.NewDashboardHandler(dashboardUsecase, exportUsecase, log),
		AuditLogHandler:   handler.NewAuditLogHandler(auditLogUsecase),
		AuthMiddleware:    middleware.NewAuthMiddleware(jwtService, tokenStore),
		CORSMiddleware:    middleware.NewCORSMiddleware(cfg.App.CORSOrigin),
		RequestLogger:     middleware.RequestLogger(log, httpMetrics),
		MetricsHandler:    promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
	})

	scheduler := service.NewReminderScheduler(reminderUsecase.DispatchDue, cfg.Reminder.Interval, log)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}, scheduler
}

// Run starts the HTTP server and the reminder scheduler, then blocks until
// shutdown.
func (app *App) Run() {
	if err := app.Scheduler.Start(); err != nil {
		logrus.Fatalf("Failed to start reminder scheduler: %v", err)
	}

	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close stops background work and releases every connection.
func (app *App) Close() {
	if app.Scheduler != nil {
		app.Scheduler.Stop()
	}

	if app.Firebase != nil {
		if err := app.Firebase.Close(); err != nil {
			logrus.Warnf("Failed to close firebase clients: %v", err)
		}
	}

	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
