package domain

import "fmt"

// Error is a coded application error that can be rendered to clients
type Error interface {
	error
	GetCode() string
	GetMessage() string
}

// BusinessError represents an application error with a stable code
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

// NewBusinessError creates a new coded error
func NewBusinessError(code, message string) *BusinessError {
	return &BusinessError{Code: code, Message: message}
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// GetCode returns the error code
func (e *BusinessError) GetCode() string {
	return e.Code
}

// GetMessage returns the client facing message, including the cause when present
func (e *BusinessError) GetMessage() string {
	return e.Error()
}

// Unwrap returns the underlying cause
func (e *BusinessError) Unwrap() error {
	return e.Err
}

// Is reports whether target carries the same code, so wrapped copies
// still match the sentinel values below.
func (e *BusinessError) Is(target error) bool {
	t, ok := target.(*BusinessError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Wrap returns a copy of the error carrying cause
func (e *BusinessError) Wrap(cause error) *BusinessError {
	return &BusinessError{Code: e.Code, Message: e.Message, Err: cause}
}

// Wrapf returns a copy of the error carrying a formatted cause
func (e *BusinessError) Wrapf(format string, args ...interface{}) *BusinessError {
	return e.Wrap(fmt.Errorf(format, args...))
}

var (
	// Key errors
	ErrKeysNotFound   = NewBusinessError("K0001", "Keys have not been generated. Please generate keys first.")
	ErrKeyStorage     = NewBusinessError("K0002", "Key storage failure")
	ErrInvalidKeySize = NewBusinessError("K0003", fmt.Sprintf("Key size must be between %d and %d bits", MinKeySize, MaxKeySize))
	ErrKeyGeneration  = NewBusinessError("K0004", "Failed to generate keys")

	// Token errors
	ErrTokenCreation     = NewBusinessError("T0001", "Failed to create token")
	ErrTokenDecode       = NewBusinessError("T0002", "Failed to decode token")
	ErrMissingExpiration = NewBusinessError("T0003", "Token has no expiration time")

	// Request errors
	ErrInvalidRequestBody = NewBusinessError("R0001", "Invalid request body")
	ErrInvalidField       = NewBusinessError("R0002", "Invalid field")
	ErrInternal           = NewBusinessError("R0003", "Internal server error")
)
