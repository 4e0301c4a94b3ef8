// File: internal/dto/verify_email_request.go
package dto

// swagger:model dto.VerifyEmailRequest
type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required" example:"eyJhbGciOi..."`
}
