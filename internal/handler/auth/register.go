// File: internal/handler/auth/register.go
package auth

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"quantedgeb/internal/database"
	"quantedgeb/internal/dto"
	"quantedgeb/internal/mail"
	"quantedgeb/internal/model"
	"quantedgeb/internal/service"
	"quantedgeb/internal/store"
	"quantedgeb/internal/worker"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// RegisterHandler creates an account and mails the verification link.
// @Summary     Register a new account
// @Description Creates the user and sends an email-verification link. No auth token is returned until the email is verified and the user logs in.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body dto.RegisterRequest true "registration payload"
// @Success     200 {object} dto.AuthResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /auth/register [post]
func RegisterHandler(db database.DB, mailer mail.Mailer, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.Error("invalid request payload"))
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.Error(err.Error()))
		}

		req.Email = strings.ToLower(req.Email)

		// Duplicate check happens before any mutation.
		if _, err := store.GetUserByEmail(c.Request().Context(), db, req.Email); err == nil {
			return c.JSON(http.StatusBadRequest, dto.Error("User already exists with this email"))
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusInternalServerError, dto.Error("Internal server error"))
		}

		hash, err := service.HashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.Error("Internal server error"))
		}

		name := req.Name
		if name == "" {
			name = strings.SplitN(req.Email, "@", 2)[0]
		}

		user, err := store.CreateUser(c.Request().Context(), db, &model.User{
			Email:        req.Email,
			Name:         name,
			PasswordHash: hash,
			Tier:         model.TierFree,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.Error("Internal server error"))
		}

		// Best effort: a failed email must not fail the registration. mailer
		// is nil when no email provider is configured.
		token, err := service.IssueVerificationToken(user.ID, service.VerificationTokenTTL)
		if err != nil {
			log.Printf("register: issue verification token for %s: %v", user.ID, err)
		} else if mailer != nil {
			verificationURL := service.SiteURL() + "/auth/verify-email?token=" + token
			email := user.Email
			wp.Submit(func() {
				if err := mailer.SendVerificationEmail(context.Background(), email, verificationURL); err != nil {
					log.Printf("register: send verification email to %s: %v", email, err)
				}
			})
		}

		return c.JSON(http.StatusOK, dto.AuthResponse{
			Success: true,
			Message: "Registration successful! Please check your email to verify your account.",
		})
	}
}
