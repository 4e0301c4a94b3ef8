// File: internal/dto/auth_response.go
package dto

import "quantedgeb/internal/model"

// AuthResponse is the envelope every endpoint answers with. The password
// hash never appears: model.User excludes it from JSON.
// swagger:model dto.AuthResponse
type AuthResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty" example:"Registration successful! Please check your email to verify your account."`
	User    *model.User `json:"user,omitempty"`
	Token   string      `json:"token,omitempty" example:"eyJhbGciOi..."`
}
