package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/workhive-hq/workhive-backend-go/internal/handler/http/middleware"
	"github.com/workhive-hq/workhive-backend-go/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	subscriptionMiddleware *middleware.SubscriptionMiddleware,
	employeeHandler EmployeeHandler,
	payrollHandler PayrollHandler,
	verificationHandler VerificationHandler,
	jobPostingHandler JobPostingHandler,
	subscriptionHandler SubscriptionHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workhive"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Callback-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// Payment-processor callbacks authenticate with the callback token
		// header, not a JWT.
		r.Post("/webhooks/payment", subscriptionHandler.HandleWebhook)

		// Public job board
		r.Get("/companies/{companyID}/job-postings", jobPostingHandler.ListPublished)

		r.Get("/plans", subscriptionHandler.GetPlans)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Post("/", employeeHandler.Create)
				r.Get("/{id}", employeeHandler.Get)
				r.Put("/{id}", employeeHandler.Update)
				r.Delete("/{id}", employeeHandler.Delete)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Post("/generate", payrollHandler.Generate)
				r.Get("/records", payrollHandler.List)
				r.Get("/records/{id}", payrollHandler.Get)
				r.Post("/records/{id}/finalize", payrollHandler.Finalize)
				r.Delete("/records/{id}", payrollHandler.Delete)
				r.Post("/records/{id}/payslip", payrollHandler.GeneratePayslip)

				r.Route("/schedule", func(r chi.Router) {
					r.Get("/", payrollHandler.GetSchedule)

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Put("/", payrollHandler.ReplaceSchedule)
					})
				})
			})

			r.Route("/verification", func(r chi.Router) {
				r.Get("/", verificationHandler.Get)
				r.Post("/documents", verificationHandler.Upload)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/documents/{documentID}/approve", verificationHandler.Approve)
					r.Post("/documents/{documentID}/reject", verificationHandler.Reject)
				})
			})

			r.Route("/job-postings", func(r chi.Router) {
				r.Get("/", jobPostingHandler.List)
				r.Get("/{id}", jobPostingHandler.Get)
				r.Post("/{id}/close", jobPostingHandler.Close)

				// Creating a posting consumes quota, so the caller needs an
				// active subscription first.
				r.Group(func(r chi.Router) {
					r.Use(subscriptionMiddleware.RequireActiveSubscription)
					r.Post("/", jobPostingHandler.Create)
				})
			})

			r.Route("/subscription", func(r chi.Router) {
				r.Get("/my", subscriptionHandler.GetMySubscription)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Post("/{id}/read", notificationHandler.MarkRead)
				r.Get("/stream", notificationHandler.Stream)
			})
		})
	})
	return r
}
