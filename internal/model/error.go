package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message,omitempty"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for page responses
const (
	ErrCodeMissingField  = "MISSING_FIELD"
	ErrCodeInvalidStatus = "INVALID_STATUS"
	ErrCodeInvalidForm   = "INVALID_FORM"
	ErrCodeNotSignedIn   = "NOT_SIGNED_IN"
	ErrCodeUpstream      = "UPSTREAM_ERROR"
	ErrCodeUploadFailed  = "UPLOAD_FAILED"
	ErrCodeInternalError = "INTERNAL_ERROR"
	ErrCodeMissingToken  = "MISSING_TOKEN"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidStatus = NewDomainError(ErrCodeInvalidStatus, "Status must be accepted or declined")
	ErrMissingToken  = NewDomainError(ErrCodeMissingToken, "The callback did not include a token")
)
