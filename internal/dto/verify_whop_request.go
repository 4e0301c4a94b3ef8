// File: internal/dto/verify_whop_request.go
package dto

// swagger:model dto.VerifyWhopRequest
type VerifyWhopRequest struct {
	Email string `json:"email" validate:"required,email" example:"alice@example.com"`
}
