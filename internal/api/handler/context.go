package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wophi/wophi-api/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// performs a fast-fail check before any service call: a non-empty alma id
// proves the middleware ran, and the raw access token must be present for
// passthrough calls to Alma.
func ctxIdentity(c echo.Context) (domain.AuthenticatedUser, string, error) {
	almaID, _ := c.Get("alma_id").(string)
	if almaID == "" {
		return domain.AuthenticatedUser{}, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	token, _ := c.Get("access_token").(string)
	if token == "" {
		return domain.AuthenticatedUser{}, "", echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
	}

	username, _ := c.Get("username").(string)
	email, _ := c.Get("email").(string)

	return domain.AuthenticatedUser{
		AlmaID:   almaID,
		Username: username,
		Email:    email,
	}, token, nil
}
