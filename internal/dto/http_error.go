// File: internal/dto/http_error.go
package dto

// HTTPError is the error body; Success is always false here.
// swagger:model dto.HTTPError
type HTTPError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Error builds the standard failure envelope.
func Error(message string) HTTPError {
	return HTTPError{Success: false, Message: message}
}
