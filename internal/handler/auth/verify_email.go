// File: internal/handler/auth/verify_email.go
package auth

import (
	"errors"
	"net/http"

	"quantedgeb/internal/database"
	"quantedgeb/internal/dto"
	"quantedgeb/internal/service"
	"quantedgeb/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// VerifyEmailHandler marks the account verified from an emailed token.
// @Summary     Verify email address
// @Description Consumes the token from the verification email and flips the account to verified. Access tokens are rejected here; only verification tokens are accepted.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body dto.VerifyEmailRequest true "verification token"
// @Success     200 {object} dto.AuthResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Router      /auth/verify-email [post]
func VerifyEmailHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.VerifyEmailRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.Error("invalid request payload"))
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.Error("Verification token is required"))
		}

		userID, err := service.VerifyVerificationToken(req.Token)
		if err != nil {
			return c.JSON(http.StatusBadRequest, dto.Error("Invalid or expired verification token"))
		}

		user, err := store.VerifyUser(c.Request().Context(), db, userID)
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, dto.Error("User not found"))
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.Error("Internal server error"))
		}

		return c.JSON(http.StatusOK, dto.AuthResponse{
			Success: true,
			Message: "Email verified successfully!",
			User:    user,
		})
	}
}
