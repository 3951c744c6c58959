// Package subscriptionmanager предоставляет маршруты для основного приложения.
package subscriptionmanager

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/subscription-manager/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/subscription-manager/internal/http/handlers/auth/register"
	plancount "github.com/magabrotheeeer/subscription-manager/internal/http/handlers/plan/count"
	plancreate "github.com/magabrotheeeer/subscription-manager/internal/http/handlers/plan/create"
	planlist "github.com/magabrotheeeer/subscription-manager/internal/http/handlers/plan/list"
	planread "github.com/magabrotheeeer/subscription-manager/internal/http/handlers/plan/read"
	planremove "github.com/magabrotheeeer/subscription-manager/internal/http/handlers/plan/remove"
	planupdate "github.com/magabrotheeeer/subscription-manager/internal/http/handlers/plan/update"
	usercount "github.com/magabrotheeeer/subscription-manager/internal/http/handlers/user/count"
	userlist "github.com/magabrotheeeer/subscription-manager/internal/http/handlers/user/list"
	userread "github.com/magabrotheeeer/subscription-manager/internal/http/handlers/user/read"
	userremove "github.com/magabrotheeeer/subscription-manager/internal/http/handlers/user/remove"
	userupdate "github.com/magabrotheeeer/subscription-manager/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/subscription-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-manager/internal/lib/jwt"
	planservice "github.com/magabrotheeeer/subscription-manager/internal/services/plan"
	userservice "github.com/magabrotheeeer/subscription-manager/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, tokens jwt.Maker, userService *userservice.UserService, planService *planservice.PlanService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, userService).ServeHTTP)
		r.Post("/login", login.New(logger, userService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(tokens, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/users", userlist.New(logger, userService).ServeHTTP)
			r.Get("/users/count", usercount.New(logger, userService).ServeHTTP)
			r.Get("/users/{uid}", userread.New(logger, userService).ServeHTTP)
			r.Put("/users/{uid}", userupdate.New(logger, userService).ServeHTTP)
			r.Delete("/users/{uid}", userremove.New(logger, userService).ServeHTTP)

			r.Get("/plans", planlist.New(logger, planService).ServeHTTP)
			r.Get("/plans/count", plancount.New(logger, planService).ServeHTTP)
			r.Get("/plans/{id}", planread.New(logger, planService).ServeHTTP)

			// Управление тарифами доступно только администраторам
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnlyMiddleware(logger))
				r.Post("/plans", plancreate.New(logger, planService).ServeHTTP)
				r.Put("/plans/{id}", planupdate.New(logger, planService).ServeHTTP)
				r.Delete("/plans/{id}", planremove.New(logger, planService).ServeHTTP)
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
