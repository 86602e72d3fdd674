package models

// ErrorResponse is the standard error envelope returned by the API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// MessageResponse is a simple success envelope.
type MessageResponse struct {
	Message string `json:"message"`
}
