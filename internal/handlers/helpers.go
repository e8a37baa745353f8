package handlers

import (
	"github.com/gallario/backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// getUserIDFromContext returns the session user's id, 0 when anonymous
func getUserIDFromContext(c echo.Context) uint {
	return middleware.UserIDFromContext(c)
}
