// File: internal/handler/auth/logout.go
package auth

import (
	"log"
	"net/http"
	"strings"

	"quantedgeb/internal/database"
	"quantedgeb/internal/dto"
	"quantedgeb/internal/store"

	"github.com/labstack/echo/v4"
)

// LogoutHandler revokes the session named by the bearer token.
// @Summary     Log out
// @Description Deletes the server-side session for the presented bearer token. Always succeeds so clients can clear local state unconditionally.
// @Tags        auth
// @Produce     json
// @Success     200 {object} dto.AuthResponse
// @Router      /auth/logout [post]
func LogoutHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") && parts[1] != "" {
			if err := store.DeleteSessionByToken(c.Request().Context(), db, parts[1]); err != nil {
				log.Printf("logout: delete session: %v", err)
			}
		}
		return c.JSON(http.StatusOK, dto.AuthResponse{
			Success: true,
			Message: "Logged out successfully",
		})
	}
}
