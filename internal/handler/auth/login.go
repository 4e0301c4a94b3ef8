// File: internal/handler/auth/login.go
package auth

import (
	"net/http"
	"os"
	"strings"
	"time"

	"quantedgeb/internal/database"
	"quantedgeb/internal/dto"
	"quantedgeb/internal/model"
	"quantedgeb/internal/service"
	"quantedgeb/internal/store"

	"github.com/labstack/echo/v4"
)

// LoginHandler verifies credentials and returns a bearer token.
// @Summary     Log in
// @Description Verifies email/password, records the session and returns a 7-day access token together with the user profile.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body dto.LoginRequest true "credentials"
// @Success     200 {object} dto.AuthResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /auth/login [post]
func LoginHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.Error("invalid request payload"))
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.Error(err.Error()))
		}

		user, err := store.GetUserByEmail(c.Request().Context(), db, strings.ToLower(req.Email))
		if err != nil {
			return c.JSON(http.StatusBadRequest, dto.Error("Invalid email or password"))
		}

		authUser, err := service.AuthenticateUser(c.Request().Context(), *user, req.Password)
		if err != nil {
			return c.JSON(http.StatusBadRequest, dto.Error("Invalid email or password"))
		}

		// Opt-in gate; see REQUIRE_VERIFIED_EMAIL.
		if os.Getenv("REQUIRE_VERIFIED_EMAIL") == "true" && !authUser.Verified {
			return c.JSON(http.StatusForbidden, dto.Error("Please verify your email address before logging in"))
		}

		now := time.Now().UTC()
		if err := store.SetLastLogin(c.Request().Context(), db, authUser.ID, now); err != nil {
			return c.JSON(http.StatusInternalServerError, dto.Error("Internal server error"))
		}
		authUser.LastLogin = &now

		token, err := service.IssueAccessToken(*authUser, service.AccessTokenTTL)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.Error("failed to issue token"))
		}

		if err := store.CreateSession(c.Request().Context(), db, &model.Session{
			UserID:    authUser.ID,
			Token:     token,
			CreatedAt: now,
			ExpiresAt: now.Add(service.AccessTokenTTL),
		}); err != nil {
			return c.JSON(http.StatusInternalServerError, dto.Error("Internal server error"))
		}

		return c.JSON(http.StatusOK, dto.AuthResponse{
			Success: true,
			User:    authUser,
			Token:   token,
		})
	}
}
