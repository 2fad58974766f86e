package middleware // reusable HTTP middleware for the API

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/trip-planner/internal/token"
)

// JWTAuth returns an Echo middleware that validates a Bearer session token
// and injects the verified identity into the request context. Handlers
// read the caller via c.Get("username") and c.Get("nickname"). The check
// is a single synchronous pass; a rejected request never reaches a
// handler or the store.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := token.Verify(secret, raw)
			if err != nil {
				// Both map to a forced re-login on the client; the body
				// distinguishes them for client-side logging only.
				if errors.Is(err, token.ErrExpired) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token expired"})
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set("username", claims.Username)
			c.Set("nickname", claims.Nickname)
			return next(c)
		}
	}
}
