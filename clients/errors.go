package clients

import (
	"encoding/json"
	"fmt"
)

// Backend error codes the storefront branches on.
const (
	CodeEmailNotVerified = "EMAIL_NOT_VERIFIED"
)

// APIError is a non-2xx response from the backend, carrying its error code
// when one was supplied.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("backend error %d: %s", e.StatusCode, e.Message)
}

// IsEmailNotVerified reports whether err is the backend's unverified-email
// rejection.
func IsEmailNotVerified(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Code == CodeEmailNotVerified
}

// errorEnvelope is the backend's error body. The code may appear at the top
// level or nested under "error" depending on the endpoint generation.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeAPIError(status int, raw []byte) *APIError {
	var env errorEnvelope
	apiErr := &APIError{StatusCode: status, Message: string(raw)}
	if err := json.Unmarshal(raw, &env); err != nil {
		return apiErr
	}
	if env.Error != nil && env.Error.Code != "" {
		apiErr.Code = env.Error.Code
		apiErr.Message = env.Error.Message
		return apiErr
	}
	if env.Code != "" {
		apiErr.Code = env.Code
	}
	if env.Message != "" {
		apiErr.Message = env.Message
	}
	return apiErr
}
