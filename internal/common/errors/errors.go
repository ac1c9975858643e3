// Package errors provides standardized error handling for the HTTP API and
// BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	ErrCodeGenAIConfigMissing ErrorCode = "GENAI_CONFIG_MISSING"
	ErrCodeGenAITimeout       ErrorCode = "GENAI_TIMEOUT"
	ErrCodeGenAIAuthFailed    ErrorCode = "GENAI_AUTH_FAILED"
	ErrCodeGenAIQuotaExceeded ErrorCode = "GENAI_QUOTA_EXCEEDED"
	ErrCodeGenAIRequestFailed ErrorCode = "GENAI_REQUEST_FAILED"

	ErrCodeWebSearchFailed  ErrorCode = "WEB_SEARCH_FAILED"
	ErrCodeWebSearchTimeout ErrorCode = "WEB_SEARCH_TIMEOUT"

	ErrCodePageFetchFailed ErrorCode = "PAGE_FETCH_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Cause     error                  `json:"-"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.Cause
}

// WithMetadata attaches a key to the error's metadata and returns the error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewInvalidInputError creates a non-retryable input validation error.
func NewInvalidInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "Invalid request input",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenAIConfigMissingError is returned when no generative backend credential is configured.
func NewGenAIConfigMissingError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAIConfigMissing,
		Message:   "Generative backend is not configured",
		Details:   errDetails(err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// NewGenAITimeoutError creates a retryable generation timeout error.
func NewGenAITimeoutError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAITimeout,
		Message:   "Generative backend timeout",
		Details:   errDetails(err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// NewGenAIAuthFailedError creates a non-retryable credential error.
func NewGenAIAuthFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAIAuthFailed,
		Message:   "Generative backend rejected the credential",
		Details:   errDetails(err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// NewGenAIQuotaExceededError creates a retryable quota error.
func NewGenAIQuotaExceededError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAIQuotaExceeded,
		Message:   "Generative backend quota exceeded",
		Details:   errDetails(err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// NewGenAIRequestFailedError creates a retryable transport error.
func NewGenAIRequestFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAIRequestFailed,
		Message:   "Generative backend request failed",
		Details:   errDetails(err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// NewWebSearchFailedError creates a retryable search error.
func NewWebSearchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeWebSearchFailed,
		Message:   "Web search request failed",
		Details:   errDetails(err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// NewWebSearchTimeoutError creates a search timeout error. Callers usually degrade to empty results.
func NewWebSearchTimeoutError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeWebSearchTimeout,
		Message:   "Web search timeout",
		Details:   errDetails(err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

func NewPageFetchFailedError(url string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePageFetchFailed,
		Message:   "Page fetch failed",
		Details:   fmt.Sprintf("url: %s, error: %s", url, errDetails(err)),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// Generic constructors

func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   errDetails(err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

func errDetails(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes (same as internal).
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidInput:       "INVALID_INPUT",
	ErrCodeGenAIConfigMissing: "GENAI_CONFIG_MISSING",
	ErrCodeGenAITimeout:       "GENAI_TIMEOUT",
	ErrCodeGenAIAuthFailed:    "GENAI_AUTH_FAILED",
	ErrCodeGenAIQuotaExceeded: "GENAI_QUOTA_EXCEEDED",
	ErrCodeGenAIRequestFailed: "GENAI_REQUEST_FAILED",
	ErrCodeWebSearchFailed:    "WEB_SEARCH_FAILED",
	ErrCodeWebSearchTimeout:   "WEB_SEARCH_TIMEOUT",
	ErrCodePageFetchFailed:    "PAGE_FETCH_FAILED",
	ErrCodeInternal:           "INTERNAL_ERROR",
}

// GetRetryCount returns the recommended job retry count for an error code.
// The generator itself never retries; retries only happen at the job level.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeGenAIRequestFailed,
		ErrCodeWebSearchFailed:
		return 3

	case ErrCodeGenAIQuotaExceeded:
		return 2

	case ErrCodeGenAITimeout:
		return 1

	default:
		return 0 // input and credential errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// AsStandardError finds a StandardError in err's chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// HTTPStatus maps an error code to the status returned by the API.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidInput:
		return http.StatusBadRequest
	case ErrCodeGenAIQuotaExceeded:
		return http.StatusTooManyRequests
	case ErrCodeGenAITimeout, ErrCodeWebSearchTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeGenAIAuthFailed, ErrCodeGenAIRequestFailed, ErrCodeWebSearchFailed, ErrCodePageFetchFailed:
		return http.StatusBadGateway
	case ErrCodeGenAIConfigMissing:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "GENAI"):
		return "AI"
	case strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "PAGE_FETCH"):
		return "FETCH"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
