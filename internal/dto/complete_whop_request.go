// File: internal/dto/complete_whop_request.go
package dto

// swagger:model dto.CompleteWhopRequest
type CompleteWhopRequest struct {
	WhopToken    string `json:"whopToken" validate:"required" example:"at-..."`
	MembershipID string `json:"membershipId" validate:"required" example:"mem_..."`
	WhopUserID   string `json:"whopUserId" example:"user_..."`
}
