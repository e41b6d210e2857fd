package middleware

import (
	"net/http"

	"shopadmin/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// contextのroleが許可されたものか確認する。
func RequireRole(allowed ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxUserRoleKey).(model.Role)
			if !ok || role == "" {
				return unauthorized(c)
			}

			for _, r := range allowed {
				if role == r {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, errorJSON("not enough privileges"))
		}
	}
}
