package middleware

import (
	"net/http"

	"shopadmin/internal/repository"

	"github.com/labstack/echo/v4"
)

// JWTのユーザーがDBに存在し、停止されていないか確認する。
// roleはDBの最新値で上書きする。
func ActiveUserGuard(users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//AuthJWTが入れたuser_id を取得する
			userID, ok := c.Get(CtxUserIDKey).(int64)
			if !ok || userID <= 0 {
				return unauthorized(c)
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				return unauthorized(c)
			}
			if !user.IsActive {
				return c.JSON(http.StatusForbidden, errorJSON("inactive user"))
			}

			c.Set(CtxUserRoleKey, user.Role)
			return next(c)
		}
	}
}
