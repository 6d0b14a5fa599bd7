package middleware

import (
	"net/http"
	"saree-checkout/internal/service"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	// UserIDKey is where the authenticated user id lives on the echo context.
	UserIDKey = "user_id"
	// TokenCookie carries the session token set at login.
	TokenCookie = "jwt"
)

// AuthMiddleware accepts a session token from the jwt cookie or a bearer
// Authorization header and rejects the request otherwise.
func AuthMiddleware(tokens *service.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := tokenFromRequest(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			claims, err := tokens.Parse(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			c.Set(UserIDKey, claims.ID)
			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// UserID returns the authenticated user id, or "" on public routes.
func UserID(c echo.Context) string {
	userID, _ := c.Get(UserIDKey).(string)
	return userID
}
