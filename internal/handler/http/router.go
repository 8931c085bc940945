package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/hamkke-hr/hr-backend-go/internal/handler/http/middleware"
	"github.com/hamkke-hr/hr-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth         AuthHandler
	Attendance   AttendanceHandler
	Leave        LeaveHandler
	Employee     EmployeeHandler
	Notification NotificationHandler
	Report       ReportHandler
}

func NewRouter(jwtService jwt.Service, h Handlers, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Get("/dashboard", h.Report.Dashboard)

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock", h.Attendance.Clock)
				r.Get("/my", h.Attendance.MyAttendance)

				// Company-wide grids
				r.Group(func(r chi.Router) {
					r.Use(middleware.ManagerOrAdmin)
					r.Get("/matrix", h.Attendance.Matrix)
					r.Get("/work-hours", h.Attendance.WorkHours)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", h.Leave.Submit)
				r.Get("/my", h.Leave.MyRequests)
				r.Get("/my/balance", h.Leave.MyBalance)
				r.Get("/calendar", h.Leave.Calendar)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Leave.ListAll)
					r.Post("/{id}/approve", h.Leave.Approve)
					r.Post("/{id}/deny", h.Leave.Deny)
					r.Get("/balances", h.Leave.Balances)
					r.Put("/balances/{userID}/total", h.Leave.SetTotalEarned)
					r.Put("/balances/{userID}/bonus", h.Leave.SetBonus)
					r.Delete("/balances/{userID}/bonus", h.Leave.ResetBonus)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/me", h.Employee.Me)
				r.Put("/me", h.Employee.UpdateMyProfile)

				r.Group(func(r chi.Router) {
					r.Use(middleware.ManagerOrAdmin)
					r.Get("/", h.Employee.List)
					r.Get("/{id}", h.Employee.Get)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Auth.Register)
					r.Put("/{id}/role", h.Employee.ChangeRole)
					r.Delete("/{id}", h.Employee.Delete)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.ListMine)
				r.Get("/unread", h.Notification.UnreadCount)
				r.Post("/{id}/read", h.Notification.MarkRead)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/broadcast", h.Notification.Broadcast)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/attendance-matrix", h.Report.ExportAttendanceMatrix)
				r.Get("/work-hours", h.Report.ExportWorkHours)
				r.Get("/roster", h.Report.ExportRoster)
				r.Get("/leave-log", h.Report.ExportLeaveLog)
			})
		})
	})
	return r
}
