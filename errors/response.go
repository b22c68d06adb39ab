package errors

// ErrorResponse is a JSON-friendly rendering of a NetworkError for logs and
// diagnostics.
type ErrorResponse struct {
	Code       string `json:"code"`
	StatusCode int    `json:"status_code,omitempty"`
	Message    string `json:"message"`
	Body       string `json:"body,omitempty"`
}

// ToResponse converts a NetworkError to an ErrorResponse.
func (e *NetworkError) ToResponse() ErrorResponse {
	return ErrorResponse{
		Code:       e.Code.String(),
		StatusCode: e.StatusCode,
		Message:    e.Error(),
		Body:       string(e.Body),
	}
}
