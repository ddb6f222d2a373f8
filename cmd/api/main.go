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
	"syscall"
	"time"

	"github.com/workhive-hq/workhive-backend-go/internal/config"
	appHTTP "github.com/workhive-hq/workhive-backend-go/internal/handler/http"
	"github.com/workhive-hq/workhive-backend-go/internal/handler/http/middleware"
	"github.com/workhive-hq/workhive-backend-go/internal/pkg/cache"
	"github.com/workhive-hq/workhive-backend-go/internal/pkg/cron"
	"github.com/workhive-hq/workhive-backend-go/internal/pkg/database"
	"github.com/workhive-hq/workhive-backend-go/internal/pkg/jwt"
	"github.com/workhive-hq/workhive-backend-go/internal/pkg/payment"
	"github.com/workhive-hq/workhive-backend-go/internal/pkg/sse"
	"github.com/workhive-hq/workhive-backend-go/internal/pkg/storage"
	"github.com/workhive-hq/workhive-backend-go/internal/repository/postgresql"
	employeeService "github.com/workhive-hq/workhive-backend-go/internal/service/employee"
	jobPostingService "github.com/workhive-hq/workhive-backend-go/internal/service/jobposting"
	notificationService "github.com/workhive-hq/workhive-backend-go/internal/service/notification"
	payrollService "github.com/workhive-hq/workhive-backend-go/internal/service/payroll"
	subscriptionService "github.com/workhive-hq/workhive-backend-go/internal/service/subscription"
	verificationService "github.com/workhive-hq/workhive-backend-go/internal/service/verification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "workhive"),
		slog.String("env", cfg.App.Env),
	)

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis.URL)
	if err != nil {
		log.Fatal("Failed to connect to redis:", err)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	verificationRepo := postgresql.NewVerificationRepository(db)
	jobPostingRepo := postgresql.NewJobPostingRepository(db)
	planRepo := postgresql.NewPlanRepository(db)
	subscriptionRepo := postgresql.NewSubscriptionRepository(db)
	invoiceRepo := postgresql.NewInvoiceRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	webhookVerifier := payment.NewWebhookVerifier(cfg.Payment.WebhookToken)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	case "minio":
		// Future: minIO implementation
		log.Fatal("Minio storage not yet implemented")
	default:
		log.Fatal("Unsupported storage types: ", cfg.Storage.Type)
	}

	hub := sse.NewHub()

	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	notificationSvc := notificationService.NewNotificationService(notificationRepo, hub)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, employeeRepo, notificationSvc, fileStorage, logger)
	verificationSvc := verificationService.NewVerificationService(verificationRepo, notificationSvc, fileStorage, logger)
	jobPostingSvc := jobPostingService.NewJobPostingService(db, jobPostingRepo, subscriptionRepo, redisClient, logger)
	subscriptionSvc := subscriptionService.NewSubscriptionService(subscriptionRepo, planRepo, invoiceRepo, notificationSvc, logger)

	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	verificationHandler := appHTTP.NewVerificationHandler(verificationSvc)
	jobPostingHandler := appHTTP.NewJobPostingHandler(jobPostingSvc)
	subscriptionHandler := appHTTP.NewSubscriptionHandler(subscriptionSvc, webhookVerifier)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc)

	subscriptionMiddleware := middleware.NewSubscriptionMiddleware(subscriptionRepo)

	scheduler := cron.NewScheduler()
	cron.NewSubscriptionJobs(subscriptionSvc).RegisterJobs(scheduler)
	cron.NewVerificationJobs(verificationSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		JWTService,
		subscriptionMiddleware,
		employeeHandler,
		payrollHandler,
		verificationHandler,
		jobPostingHandler,
		subscriptionHandler,
		notificationHandler,
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", slog.String("error", err.Error()))
	}
}
