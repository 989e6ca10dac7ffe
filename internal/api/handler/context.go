package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: role and email must be
// non-empty (presence proves the middleware ran).
func ctxIdentity(c echo.Context) (email, role string, err error) {
	role, _ = c.Get("role").(string)
	email, _ = c.Get("email").(string)
	if role == "" || email == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return email, role, nil
}
