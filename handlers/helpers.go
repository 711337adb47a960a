package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// string -> int with a fallback when empty or malformed
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// ownerID reads the authenticated account id attached by the JWT middleware.
func ownerID(c echo.Context) (uuid.UUID, error) {
	raw, _ := c.Get("user_id").(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_SESSION"})
	}
	return id, nil
}

// accountParam resolves the tenant id on public (unauthenticated) routes.
func accountParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.QueryParam(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_ACCOUNT"})
	}
	return id, nil
}
