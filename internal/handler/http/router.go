package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/time/rate"

	"github.com/lodgetrack/timeclock-backend/internal/handler/http/middleware"
	"github.com/lodgetrack/timeclock-backend/internal/pkg/jwt"
)

type RouterConfig struct {
	AllowedOrigins []string
	Env            string
}

type Handlers struct {
	Punch     PunchHandler
	Timesheet TimesheetHandler
	PayPeriod PayPeriodHandler
	Payroll   PayrollHandler
	Station   StationHandler
	Events    EventsHandler
}

func NewRouter(cfg RouterConfig, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timeclock-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
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

	r.Route("/api/v1", func(r chi.Router) {

		// Public station endpoints: the wall-mounted PIN pad carries no
		// user token, so these are throttled per IP instead.
		r.Route("/station", func(r chi.Router) {
			r.Use(middleware.RateLimit(rate.Limit(5), 10))

			r.Post("/verify-pin", h.Station.VerifyPIN)
			r.Post("/clock-in", h.Station.ClockIn)
			r.Post("/clock-out", h.Station.ClockOut)
		})

		// Event stream authenticates with its own short-lived token.
		r.Get("/events/stream", h.Events.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Get("/events/token", h.Events.GetToken)

			r.Route("/punches", func(r chi.Router) {
				r.Get("/", h.Punch.List)
				r.Post("/approve-payroll", h.Punch.ApprovePayroll)
				r.Post("/approve-employee/{employeeID}", h.Punch.ApproveEmployee)
				r.Post("/approve-employee/{employeeID}/{date}", h.Punch.ApproveEmployeeDay)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Punch.Get)
					r.Put("/times", h.Punch.EditTimes)
					r.Post("/approve", h.Punch.Approve)
					r.Post("/unapprove", h.Punch.Unapprove)
					r.Post("/toggle", h.Punch.Toggle)
					r.Delete("/", h.Punch.Delete)
				})
			})

			r.Route("/timesheet", func(r chi.Router) {
				r.Get("/grid", h.Timesheet.Grid)
				r.Get("/allocated", h.Timesheet.Allocated)
				r.Get("/export", h.Timesheet.Export)
				r.Get("/active", h.Timesheet.Active)
			})

			r.Route("/pay-periods", func(r chi.Router) {
				r.Get("/", h.PayPeriod.List)
				r.Post("/", h.PayPeriod.Create)
				r.Get("/{id}", h.PayPeriod.Get)
				r.Post("/{id}/lock", h.PayPeriod.Lock)
				r.Post("/{id}/unlock", h.PayPeriod.Unlock)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/override", h.PayPeriod.SetOverride)
				})
			})

			r.Get("/payroll/dashboard", h.Payroll.Dashboard)
		})
	})

	return r
}
