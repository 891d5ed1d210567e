package surveysdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned by the service.
const (
	ErrorCodeValidation         = "validation_error"
	ErrorCodeDuplicate          = "duplicate"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeAccountLocked      = "account_locked"
	ErrorCodeInvalidToken       = "invalid_token"
	ErrorCodeTokenExpired       = "token_expired"
	ErrorCodeAccountNotFound    = "account_not_found"
	ErrorCodeAccessDenied       = "access_denied"
	ErrorCodeForbidden          = "forbidden"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeRateLimited        = "rate_limited"
	ErrorCodeInternal           = "internal_error"
)

// ErrSessionExpired is returned by Session methods once the token lapsed.
var ErrSessionExpired = errors.New("surveysdk: session expired, log in again")

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is a non-success response from the service.
type APIError struct {
	StatusCode int          `json:"-"`
	Code       string       `json:"error"`
	Message    string       `json:"message"`
	Fields     []FieldError `json:"fields,omitempty"`

	// Login hints. Zero when the server did not send them.
	RemainingAttempts int `json:"remainingAttempts,omitempty"`
	MinutesRemaining  int `json:"minutesRemaining,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.StatusCode, e.Message)
}

// IsCode reports whether err is an *APIError with the given code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// parseErrorResponse turns a non-success body into an *APIError, falling back
// to the bare status when the body is not the service's error shape.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Code == "" {
		apiErr = &APIError{
			Code:    http.StatusText(resp.StatusCode),
			Message: string(body),
		}
	}
	apiErr.StatusCode = resp.StatusCode
	return apiErr
}
