package middleware

import (
	"net/http"

	"github.com/gallario/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie carrying the signed session token
const SessionCookieName = "session"

// userIDKey is the context key the resolved user id is stored under
const userIDKey = "userID"

// SessionAuth resolves the session cookie once per request into an
// authenticated-user-id-or-absent context value. Requests without a valid
// session proceed anonymously; handlers that require auth wrap RequireUser.
func SessionAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			claims := &models.SessionClaims{}
			token, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				// Stale or tampered cookie, treat the request as anonymous
				return next(c)
			}

			c.Set(userIDKey, claims.UserID)
			return next(c)
		}
	}
}

// RequireUser rejects requests that did not resolve to an authenticated user
func RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if UserIDFromContext(c) == 0 {
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "Unauthorized"})
		}
		return next(c)
	}
}

// UserIDFromContext returns the authenticated user's id, 0 when anonymous
func UserIDFromContext(c echo.Context) uint {
	if id, ok := c.Get(userIDKey).(uint); ok {
		return id
	}
	return 0
}
