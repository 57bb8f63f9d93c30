package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/domain/model"
)

// AdminRoleGuard runs after AuthJWT and rejects everyone whose token role is
// not admin. The role comes from the token, so a demotion takes effect only
// after the old token expires.
func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxUserRoleKey).(string)
			if !ok || role != string(model.RoleAdmin) {
				return c.JSON(http.StatusForbidden, errorJSON("admin access required"))
			}
			return next(c)
		}
	}
}
