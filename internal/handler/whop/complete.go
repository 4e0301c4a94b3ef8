// File: internal/handler/whop/complete.go
package whop

import (
	"errors"
	"net/http"

	"quantedgeb/internal/database"
	"quantedgeb/internal/dto"
	"quantedgeb/internal/middleware"
	"quantedgeb/internal/service"
	"quantedgeb/internal/store"
	"quantedgeb/internal/whop"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// CompleteHandler finishes a client-driven OAuth flow: the frontend holds a
// Whop access token and a membership id, and the server re-validates both.
// @Summary     Complete Whop verification
// @Description Re-validates a Whop user access token against the given membership id and, on success, marks the account premium. The client's claim is never trusted without this round trip.
// @Tags        whop
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body dto.CompleteWhopRequest true "verification data"
// @Success     200 {object} dto.AuthResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     401 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /auth/whop/complete [post]
func CompleteHandler(db database.DB, verifier whop.Verifier) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get(middleware.ContextUserKey).(*service.CustomClaims)
		if !ok {
			return c.JSON(http.StatusUnauthorized, dto.Error("Invalid or expired token"))
		}

		var req dto.CompleteWhopRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.Error("invalid request payload"))
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.Error("Missing verification data"))
		}

		_, err := verifier.VerifyAccessToken(c.Request().Context(), req.WhopToken, req.MembershipID)
		if errors.Is(err, whop.ErrNoValidMembership) {
			return c.JSON(http.StatusBadRequest, dto.Error("Membership is no longer valid or does not belong to QuantEdgeB"))
		}
		if err != nil {
			return c.JSON(http.StatusBadRequest, dto.Error("Failed to verify membership status"))
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
			Message: "Whop verification completed! You now have premium access.",
			User:    user,
		})
	}
}
