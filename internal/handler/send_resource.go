// File: internal/handler/send_resource.go
package handler

import (
	"net/http"

	"quantedgeb/internal/dto"
	"quantedgeb/internal/mail"

	"github.com/labstack/echo/v4"
)

// SendResourceHandler emails a download link for a named resource. mailer is
// nil when no email provider is configured.
// @Summary     Send a resource email
// @Description Sends the requester a branded email containing the download link for the named resource.
// @Tags        resources
// @Accept      json
// @Produce     json
// @Param       request body dto.SendResourceRequest true "recipient and resource"
// @Success     200 {object} dto.AuthResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /send-resource [post]
func SendResourceHandler(mailer mail.Mailer) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.SendResourceRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.Error("invalid request payload"))
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.Error("Missing required fields"))
		}

		if mailer == nil {
			return c.JSON(http.StatusInternalServerError, dto.Error("Email service not configured"))
		}

		if err := mailer.SendResourceEmail(c.Request().Context(), req.Email, req.Name, req.Title, req.DownloadURL); err != nil {
			return c.JSON(http.StatusInternalServerError, dto.Error("Failed to send email"))
		}

		return c.JSON(http.StatusOK, dto.AuthResponse{
			Success: true,
			Message: "Email sent successfully",
		})
	}
}
