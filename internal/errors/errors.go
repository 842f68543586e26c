package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Error kinds. Callers mark the originating error with one of these so the
// original stays reachable through errors.Is / errors.As / Unwrap.
var (
	ErrDevice     = new(ErrCodeDevice, "device error")
	ErrRender     = new(ErrCodeRender, "rendering error")
	ErrFilesystem = new(ErrCodeFilesystem, "filesystem error")
	ErrValidation = new(ErrCodeValidation, "validation error")
	ErrSystem     = new(ErrCodeSystemError, "system error")
	// maps errors to http status codes
	statusCodeMap = map[error]int{
		ErrValidation: http.StatusBadRequest,
		ErrRender:     http.StatusUnprocessableEntity,
		ErrDevice:     http.StatusServiceUnavailable,
		ErrFilesystem: http.StatusInternalServerError,
		ErrSystem:     http.StatusInternalServerError,
	}
)

const (
	ErrCodeDevice      = "device_error"
	ErrCodeRender      = "render_error"
	ErrCodeFilesystem  = "filesystem_error"
	ErrCodeValidation  = "validation_error"
	ErrCodeSystemError = "system_error"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Op      string // Logical operation name
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Is(err, reference error) bool {
	return errors.Is(err, reference)
}

// IsDevice checks if an error came from opening, writing to or closing a printer
func IsDevice(err error) bool {
	return errors.Is(err, ErrDevice)
}

// IsRender checks if an error came from composing the receipt raster
func IsRender(err error) bool {
	return errors.Is(err, ErrRender)
}

// IsFilesystem checks if an error came from the temporary image file
func IsFilesystem(err error) bool {
	return errors.Is(err, ErrFilesystem)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// Code returns the machine-readable code of the kind err is marked with.
func Code(err error) string {
	for e := range statusCodeMap {
		if errors.Is(err, e) {
			return e.(*InternalError).Code
		}
	}
	return ErrCodeSystemError
}

func HTTPStatusFromErr(err error) int {
	for e, status := range statusCodeMap {
		if errors.Is(err, e) {
			return status
		}
	}
	return http.StatusInternalServerError
}
