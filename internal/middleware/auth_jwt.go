package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"storefront/internal/config"
)

const (
	CtxUserIDKey   = "user_id"   // int64
	CtxUsernameKey = "username"  // string
	CtxUserRoleKey = "user_role" // string
)

// AuthJWT verifies the bearer token and stores the caller's identity in the
// echo context. Requests without a valid token are rejected.
func AuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := parseBearer(c, cfg)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			userID, err := parseUserID(claims["sub"])
			if err != nil || userID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			role, ok := claims["role"].(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			username, _ := claims["username"].(string)

			c.Set(CtxUserIDKey, userID)
			c.Set(CtxUsernameKey, username)
			c.Set(CtxUserRoleKey, role)

			return next(c)
		}
	}
}

// OptionalAuthJWT is AuthJWT for endpoints that also serve guests. A missing
// or invalid token is not an error; the context simply carries no identity.
func OptionalAuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := parseBearer(c, cfg)
			if !ok {
				return next(c)
			}

			userID, err := parseUserID(claims["sub"])
			if err != nil || userID <= 0 {
				return next(c)
			}
			role, _ := claims["role"].(string)
			username, _ := claims["username"].(string)

			c.Set(CtxUserIDKey, userID)
			c.Set(CtxUsernameKey, username)
			c.Set(CtxUserRoleKey, role)

			return next(c)
		}
	}
}

func parseBearer(c echo.Context, cfg config.Config) (jwt.MapClaims, bool) {
	authz := c.Request().Header.Get("Authorization")
	if authz == "" {
		return nil, false
	}

	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, false
	}
	rawToken := strings.TrimSpace(parts[1])
	if rawToken == "" {
		return nil, false
	}

	token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}
	return claims, true
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

// Numeric claims arrive as float64 after JSON decoding.
func parseUserID(v interface{}) (int64, error) {
	switch t := v.(type) {
	case float64:
		return int64(t), nil
	case string:
		return strconv.ParseInt(t, 10, 64)
	default:
		return 0, errors.New("invalid sub")
	}
}
