// Package directory предоставляет маршруты каталога подрядчиков.
package directory

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/d-directory/d-directory/internal/http/handlers/auth/login"
	"github.com/d-directory/d-directory/internal/http/handlers/auth/register"
	contractorcreate "github.com/d-directory/d-directory/internal/http/handlers/contractor/create"
	contractorlist "github.com/d-directory/d-directory/internal/http/handlers/contractor/list"
	contractorread "github.com/d-directory/d-directory/internal/http/handlers/contractor/read"
	contractorremove "github.com/d-directory/d-directory/internal/http/handlers/contractor/remove"
	contractorscrape "github.com/d-directory/d-directory/internal/http/handlers/contractor/scrape"
	contractorupdate "github.com/d-directory/d-directory/internal/http/handlers/contractor/update"
	"github.com/d-directory/d-directory/internal/http/handlers/health"
	leadlist "github.com/d-directory/d-directory/internal/http/handlers/lead/list"
	leadsubmit "github.com/d-directory/d-directory/internal/http/handlers/lead/submit"
	leadupdatestatus "github.com/d-directory/d-directory/internal/http/handlers/lead/updatestatus"
	planlist "github.com/d-directory/d-directory/internal/http/handlers/plan/list"
	projecttypelist "github.com/d-directory/d-directory/internal/http/handlers/projecttype/list"
	subscriptioncreate "github.com/d-directory/d-directory/internal/http/handlers/subscription/create"
	subscriptionread "github.com/d-directory/d-directory/internal/http/handlers/subscription/read"
	"github.com/d-directory/d-directory/internal/http/middlewarectx"
	"github.com/d-directory/d-directory/internal/scraper"
	authservice "github.com/d-directory/d-directory/internal/services/auth"
	contractorservice "github.com/d-directory/d-directory/internal/services/contractor"
	leadservice "github.com/d-directory/d-directory/internal/services/lead"
	planservice "github.com/d-directory/d-directory/internal/services/plan"
	projecttypeservice "github.com/d-directory/d-directory/internal/services/projecttype"
	subscriptionservice "github.com/d-directory/d-directory/internal/services/subscription"
)

// Services перечисляет сервисы, которые обслуживают маршруты приложения.
type Services struct {
	Auth         *authservice.AuthService
	Contractor   *contractorservice.ContractorService
	Plan         *planservice.PlanService
	ProjectType  *projecttypeservice.ProjectTypeService
	Subscription *subscriptionservice.SubscriptionService
	Lead         *leadservice.LeadService
	Importer     *scraper.Scraper
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Публичный приём заявок ограничен по частоте
	leadLimiter := rate.NewLimiter(rate.Limit(5), 10)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/auth/login", login.New(logger, s.Auth).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)
		r.Get("/plans", planlist.New(logger, s.Plan).ServeHTTP)
		r.Get("/project-types", projecttypelist.New(logger, s.ProjectType).ServeHTTP)
		r.Get("/contractors", contractorlist.New(logger, s.Contractor).ServeHTTP)
		r.Get("/contractors/{id}", contractorread.New(logger, s.Contractor).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger, leadLimiter))
			r.Post("/leads", leadsubmit.New(logger, s.Lead).ServeHTTP)
		})

		// Группа с JWT аутентификацией и проверкой роли
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RequireAdmin(logger))
			r.Post("/contractors", contractorcreate.New(logger, s.Contractor).ServeHTTP)
			r.Put("/contractors/{id}", contractorupdate.New(logger, s.Contractor).ServeHTTP)
			r.Delete("/contractors/{id}", contractorremove.New(logger, s.Contractor).ServeHTTP)
			r.Post("/contractors/scrape", contractorscrape.New(logger, s.Importer).ServeHTTP)
			r.Get("/contractors/{id}/subscription", subscriptionread.New(logger, s.Subscription).ServeHTTP)
			r.Post("/contractors/{id}/subscription", subscriptioncreate.New(logger, s.Subscription).ServeHTTP)
			r.Get("/contractors/{id}/leads", leadlist.New(logger, s.Lead).ServeHTTP)
			r.Get("/leads", leadlist.New(logger, s.Lead).ServeHTTP)
			r.Patch("/leads/{id}/status", leadupdatestatus.New(logger, s.Lead).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
