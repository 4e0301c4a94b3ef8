// File: internal/handler/whop/init.go
// Package whop holds the HTTP handlers for the Whop subscription flows.
package whop

import (
	"net/http"
	"strings"

	"quantedgeb/internal/cache"
	"quantedgeb/internal/dto"
	"quantedgeb/internal/service"
	"quantedgeb/internal/whop"

	"github.com/labstack/echo/v4"
)

// bearerToken pulls the access token from the Authorization header or, for
// browser-initiated redirects, the token query parameter.
func bearerToken(c echo.Context) string {
	if tok := c.QueryParam("token"); tok != "" {
		return tok
	}
	parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

// InitHandler starts the Whop OAuth flow for the logged-in user.
// @Summary     Start Whop OAuth
// @Description Records a single-use pending-authorization state and redirects the browser to the Whop consent page. The state parameter is an opaque id; the user id never leaves the server.
// @Tags        whop
// @Param       token query string false "access token, for browser navigation without headers"
// @Param       next  query string false "path to land on after verification"
// @Success     302
// @Failure     400 {object} dto.HTTPError
// @Failure     401 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /auth/whop/init [get]
func InitHandler(rdb cache.Cache, verifier whop.Verifier) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c)
		if token == "" {
			return c.JSON(http.StatusBadRequest, dto.Error("User authentication required. Please log in first."))
		}

		claims, err := service.VerifyAccessToken(token)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, dto.Error("Invalid authentication token"))
		}

		next := c.QueryParam("next")
		if next == "" {
			next = "/dashboard"
		}

		state, err := service.SaveWhopAuthState(c.Request().Context(), rdb, service.WhopAuthState{
			UserID: claims.UserID,
			Next:   next,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.Error("Failed to start verification"))
		}

		redirectURI := service.SiteURL() + "/auth/whop-callback"
		return c.Redirect(http.StatusFound, verifier.AuthorizationURL(redirectURI, state))
	}
}
