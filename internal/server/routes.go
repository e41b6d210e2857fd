package server

import (
	"shopadmin/internal/domain/model"
	"shopadmin/internal/handler"
	"shopadmin/internal/middleware"
	"shopadmin/internal/repository"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Health     *handler.HealthHandler
	Auth       *handler.AuthHandler
	Products   *handler.ProductHandler
	Categories *handler.CategoryHandler
	Customers  *handler.CustomerHandler
	Orders     *handler.OrderHandler
	Analytics  *handler.AnalyticsHandler
	AuditLogs  *handler.AuditLogHandler
}

// RegisterRoutes は /api 以下にルートを登録する。
func RegisterRoutes(e *echo.Echo, jwtSecret string, users repository.UserRepository, h Handlers) {
	authenticated := []echo.MiddlewareFunc{
		middleware.AuthJWT(jwtSecret),
		middleware.ActiveUserGuard(users),
	}
	guards := handler.Guards{
		Authenticated: authenticated,
		Admin:         append(append([]echo.MiddlewareFunc{}, authenticated...), middleware.RequireRole(model.RoleAdmin)),
	}

	h.Health.RegisterRoutes(e)

	api := e.Group("/api")
	h.Auth.RegisterRoutes(api, guards)
	h.Products.RegisterRoutes(api, guards)
	h.Categories.RegisterRoutes(api, guards)
	h.Customers.RegisterRoutes(api, guards)
	h.Orders.RegisterRoutes(api, guards)
	h.Analytics.RegisterRoutes(api, guards)
	h.AuditLogs.RegisterRoutes(api, guards)
}
