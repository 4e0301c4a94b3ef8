// File: internal/handler/whop/callback.go
package whop

import (
	"errors"
	"net/http"
	"net/url"

	"quantedgeb/internal/cache"
	"quantedgeb/internal/database"
	"quantedgeb/internal/service"
	"quantedgeb/internal/store"
	"quantedgeb/internal/whop"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

func errorRedirect(c echo.Context, reason string) error {
	return c.Redirect(http.StatusFound, "/auth/whop-error?error="+url.QueryEscape(reason))
}

// CallbackHandler completes the OAuth flow. Verification is finished entirely
// server-side; the success redirect carries no tokens.
// @Summary     Whop OAuth callback
// @Description Consumes the single-use state, exchanges the authorization code, checks the membership and flips the account to premium. All failures land on /auth/whop-error with a machine-readable reason.
// @Tags        whop
// @Param       code  query string true "authorization code"
// @Param       state query string true "opaque pending-authorization id"
// @Success     302
// @Router      /auth/whop/callback [get]
func CallbackHandler(db database.DB, rdb cache.Cache, verifier whop.Verifier) echo.HandlerFunc {
	return func(c echo.Context) error {
		code := c.QueryParam("code")
		if code == "" {
			return errorRedirect(c, "missing_code")
		}
		stateID := c.QueryParam("state")
		if stateID == "" {
			return errorRedirect(c, "missing_state")
		}

		st, err := service.TakeWhopAuthState(c.Request().Context(), rdb, stateID)
		if errors.Is(err, service.ErrStateNotFound) {
			return errorRedirect(c, "invalid_state")
		}
		if err != nil {
			return errorRedirect(c, "server_error")
		}

		redirectURI := service.SiteURL() + "/auth/whop-callback"
		if _, err := verifier.VerifyCode(c.Request().Context(), code, redirectURI); err != nil {
			if errors.Is(err, whop.ErrNoValidMembership) {
				return errorRedirect(c, "no_valid_subscription")
			}
			return errorRedirect(c, "code_exchange_failed")
		}

		if _, err := store.SetWhopVerified(c.Request().Context(), db, st.UserID, true); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return errorRedirect(c, "user_not_found")
			}
			return errorRedirect(c, "server_error")
		}

		target := "/auth/whop-success"
		if st.Next != "" {
			target += "?next=" + url.QueryEscape(st.Next)
		}
		return c.Redirect(http.StatusFound, target)
	}
}
