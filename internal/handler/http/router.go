package http

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/hrms-app/hrms-backend-go/internal/config"
	"github.com/hrms-app/hrms-backend-go/internal/domain/user"
	"github.com/hrms-app/hrms-backend-go/internal/handler/http/middleware"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/cache"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/jwt"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/metrics"
)

const departmentsMaxAge = 5 * time.Minute

func NewRouter(
	appConfig config.AppConfig,
	JWTService jwt.Service,
	authHandler AuthHandler,
	userHandler UserHandler,
	departmentHandler DepartmentHandler,
	jobHandler JobHandler,
	financialHandler FinancialHandler,
	certificateHandler CertificateHandler,
	leaveHandler LeaveHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(appConfig.Env == "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", appConfig.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   appConfig.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
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

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", authHandler.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", userHandler.Me)
				r.With(middleware.RequirePermission(user.PermissionUserViewAll)).Get("/", userHandler.List)
				r.With(middleware.RequirePermission(user.PermissionUserManage)).Post("/", userHandler.Create)

				r.Route("/{id}", func(r chi.Router) {
					r.With(middleware.RequireSelfOrPermission("id", user.PermissionUserViewAll)).Get("/", userHandler.Get)

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionUserManage))
						r.Put("/", userHandler.Update)
						r.Delete("/", userHandler.Delete)
					})
				})
			})

			r.Route("/departments", func(r chi.Router) {
				r.Use(cache.CacheControl(departmentsMaxAge))

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionDepartmentView))
					r.Get("/", departmentHandler.List)
					r.Get("/{id}", departmentHandler.Get)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionDepartmentEdit))
					r.Post("/", departmentHandler.Create)
					r.Put("/{id}", departmentHandler.Update)
					r.Delete("/{id}", departmentHandler.Delete)
				})
			})

			r.Route("/jobs", func(r chi.Router) {
				r.With(middleware.RequireSelfOrPermission("id", user.PermissionJobViewAll)).Get("/user/{id}", jobHandler.ListByUser)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionJobViewAll))
					r.Get("/", jobHandler.List)
					r.Get("/{id}", jobHandler.Get)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionJobManage))
					r.Post("/", jobHandler.Create)
					r.Put("/{id}", jobHandler.Update)
					r.Delete("/{id}", jobHandler.Delete)
				})
			})

			r.Route("/financialInformation", func(r chi.Router) {
				r.Use(cache.NoStore)
				r.With(middleware.RequireSelfOrPermission("id", user.PermissionFinancialViewAll)).Get("/user/{id}", financialHandler.GetByUser)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionFinancialViewAll))
					r.Get("/", financialHandler.List)
					r.Get("/{id}", financialHandler.Get)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionFinancialManage))
					r.Post("/", financialHandler.Create)
					r.Put("/{id}", financialHandler.Update)
					r.Delete("/{id}", financialHandler.Delete)
				})
			})

			r.Route("/certificates", func(r chi.Router) {
				r.With(middleware.RequireSelfOrPermission("id", user.PermissionCertificateViewAll)).Get("/user/{id}", certificateHandler.ListByUser)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionCertificateManage))
					r.Post("/", certificateHandler.Create)
					r.Delete("/{id}", certificateHandler.Delete)
				})
			})

			r.Route("/applications", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/", leaveHandler.CreateApplication)
				r.With(middleware.RequirePermission(user.PermissionLeaveViewAll)).Get("/", leaveHandler.ListApplications)

				r.Route("/user/{id}", func(r chi.Router) {
					r.Use(middleware.RequireSelfOrPermission("id", user.PermissionLeaveViewAll))
					r.Get("/", leaveHandler.ListUserApplications)
					r.With(cache.NoStore).Get("/balance", leaveHandler.GetUserBalance)
				})

				r.Route("/{id}", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/", leaveHandler.GetApplication)
					r.With(middleware.RequirePermission(user.PermissionLeaveApprove)).Put("/", leaveHandler.UpdateApplication)
					r.With(middleware.RequirePermission(user.PermissionLeaveDelete)).Delete("/", leaveHandler.DeleteApplication)
				})
			})

			r.Route("/leaveBalance", func(r chi.Router) {
				r.Use(cache.NoStore)

				r.With(middleware.RequirePermission(user.PermissionLeaveViewAll)).Get("/", leaveHandler.ListBalances)
				r.With(middleware.RequireSelfOrPermission("userId", user.PermissionLeaveViewAll)).Get("/user/{userId}", leaveHandler.GetBalance)

				// Balance administration
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveManageBalance))
					r.Post("/", leaveHandler.InitializeBalance)
					r.Put("/user/{userId}", leaveHandler.PatchBalance)
					r.Post("/reset", leaveHandler.ResetBalances)
				})
			})
		})
	})
	return r
}
