// File: internal/dto/send_resource_request.go
package dto

// swagger:model dto.SendResourceRequest
type SendResourceRequest struct {
	Email       string `json:"email" validate:"required,email" example:"alice@example.com"`
	Name        string `json:"name" validate:"required" example:"Alice"`
	Title       string `json:"title" validate:"required" example:"Momentum Guide"`
	DownloadURL string `json:"downloadUrl" example:"https://quantedgeb.com/downloads/guide.pdf"`
}
