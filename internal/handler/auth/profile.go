// File: internal/handler/auth/profile.go
package auth

import (
	"errors"
	"net/http"

	"quantedgeb/internal/database"
	"quantedgeb/internal/dto"
	"quantedgeb/internal/middleware"
	"quantedgeb/internal/service"
	"quantedgeb/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// ProfileHandler returns the authenticated user's profile.
// @Summary     Get current user
// @Description Returns the profile of the user identified by the bearer token.
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} dto.AuthResponse
// @Failure     401 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Router      /auth/profile [get]
func ProfileHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get(middleware.ContextUserKey).(*service.CustomClaims)
		if !ok {
			return c.JSON(http.StatusUnauthorized, dto.Error("Invalid or expired token"))
		}

		user, err := store.GetUserByID(c.Request().Context(), db, claims.UserID)
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, dto.Error("User not found"))
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.Error("Internal server error"))
		}

		return c.JSON(http.StatusOK, dto.AuthResponse{
			Success: true,
			User:    user,
		})
	}
}
