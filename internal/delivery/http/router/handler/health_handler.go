// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"

	"foodflex/internal/delivery/http/middleware"
	"foodflex/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports service liveness.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// principalFrom extracts the authenticated principal or fails with 401.
func principalFrom(c echo.Context) (*entity.Principal, error) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	return principal, nil
}
