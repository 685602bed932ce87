// Package errs is the error taxonomy shared by services and handlers:
// validation failures carry the offending field, permission failures are
// distinct from validation so clients can render "not allowed" instead of
// "fix your input", and not-found names the missing resource.
package errs

import (
	"errors"
	"fmt"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func Validation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func Validationf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// DuplicateReceipt is the rejection raised when an uploaded payment receipt's
// fingerprint already belongs to another application. The conflicting
// confirmation number is part of the message so the applicant can see which
// application consumed the receipt.
func DuplicateReceipt(confirmationNumber string) *ValidationError {
	return Validationf("payment_proof",
		"this payment receipt has already been used for application %s; each payment receipt can only be used once",
		confirmationNumber)
}

type PermissionError struct {
	Message string `json:"message"`
}

func (e *PermissionError) Error() string { return e.Message }

func Permission(message string) *PermissionError {
	return &PermissionError{Message: message}
}

type NotFoundError struct {
	Resource string `json:"resource"`
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func NotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	ok := errors.As(err, &v)
	return v, ok
}

func IsPermission(err error) bool {
	var p *PermissionError
	return errors.As(err, &p)
}

func IsNotFound(err error) bool {
	var n *NotFoundError
	return errors.As(err, &n)
}
