package dto

import "time"

// ErrorResponse is the standard error body returned by every JSON endpoint.
//
// Fields:
//   - Message: human readable summary, safe to show to users.
//   - ErrorDetails: underlying error text, if any.
//   - Timestamp: when the error was produced (UTC).
type ErrorResponse struct {
	Message      string    `json:"message" example:"failed to fetch valuation"`
	ErrorDetails string    `json:"error,omitempty" example:"No cash flow data found for this ticker."`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface so an ErrorResponse can travel through gin's error list.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse; err may be nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message, Timestamp: time.Now().UTC()}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
