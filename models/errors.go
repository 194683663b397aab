package models

import "fmt"

// ValidationError represents missing or malformed user input.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// NotFoundError represents an unknown collection, order, item or token.
type NotFoundError struct {
	What string
}

func (e NotFoundError) Error() string {
	return e.What + " not found"
}

// InvalidRequestError represents a semantically invalid selection, like an
// empty item list or a package purchase on a collection without a package
// price.
type InvalidRequestError struct {
	Message string
}

func (e InvalidRequestError) Error() string {
	return e.Message
}

// ExpiredTokenError represents a well-formed access token past its expiry.
type ExpiredTokenError struct{}

func (ExpiredTokenError) Error() string {
	return "access token has expired"
}

// PaymentProcessorError wraps a failure talking to the payment processor.
type PaymentProcessorError struct {
	Err error
}

func (e PaymentProcessorError) Error() string {
	return fmt.Sprintf("payment processor error: %v", e.Err)
}

// StorageError wraps a failure of the persistent store.
type StorageError struct {
	Err error
}

func (e StorageError) Error() string {
	return fmt.Sprintf("storage error: %v", e.Err)
}

// IsNotFoundError returns whether an error represents a "not found" error.
func IsNotFoundError(err error) bool {
	switch err.(type) {
	case NotFoundError:
		return true
	}
	return false
}
