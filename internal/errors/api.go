package apierrors

import "strings"

// APIError is the error shape the handlers translate into an HTTP response.
type APIError struct {
	Status int
	Codes  []string
}

func (e *APIError) Error() string {
	return strings.Join(e.Codes, ", ")
}

func NewAPIError(status int, codes ...string) *APIError {
	return &APIError{Status: status, Codes: codes}
}

var (
	ErrGenerateAccessTokenFailed  = NewAPIError(500, "GENERATE_ACCESS_TOKEN_FAILED")
	ErrGenerateRefreshTokenFailed = NewAPIError(500, "GENERATE_REFRESH_TOKEN_FAILED")
)
