// File: internal/handler/whop/verify.go
package whop

import (
	"errors"
	"net/http"
	"strings"

	"quantedgeb/internal/database"
	"quantedgeb/internal/dto"
	"quantedgeb/internal/middleware"
	"quantedgeb/internal/service"
	"quantedgeb/internal/store"
	"quantedgeb/internal/whop"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// VerifyHandler checks a customer email against company memberships.
// @Summary     Verify Whop subscription by email
// @Description Looks the email up in the company's membership list and, on a valid completed membership, marks the account premium.
// @Tags        whop
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body dto.VerifyWhopRequest true "subscription email"
// @Success     200 {object} dto.AuthResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     401 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /auth/whop/verify [post]
func VerifyHandler(db database.DB, verifier whop.Verifier) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get(middleware.ContextUserKey).(*service.CustomClaims)
		if !ok {
			return c.JSON(http.StatusUnauthorized, dto.Error("Invalid or expired token"))
		}

		var req dto.VerifyWhopRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.Error("invalid request payload"))
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.Error("Email is required"))
		}

		_, err := verifier.VerifyEmail(c.Request().Context(), strings.ToLower(req.Email))
		if errors.Is(err, whop.ErrNoValidMembership) {
			return c.JSON(http.StatusBadRequest, dto.Error("Email not found in Whop subscriptions. Please ensure you're using the correct email address."))
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.Error("Failed to verify subscription status"))
		}

		user, err := store.SetWhopVerified(c.Request().Context(), db, claims.UserID, true)
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, dto.Error("User not found"))
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.Error("Internal server error"))
		}

		return c.JSON(http.StatusOK, dto.AuthResponse{
			Success: true,
			Message: "Whop email verified successfully! You now have premium access.",
			User:    user,
		})
	}
}
