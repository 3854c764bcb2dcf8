package domain

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to callers. Every kind is client-attributable.
var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrInvalidRange        = errors.New("invalid range")
	ErrAlreadyExists       = errors.New("already exists")
	ErrNotFound            = errors.New("not found")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrMerchantNotFound    = errors.New("merchant not found")
)

// Caller-facing messages.
const (
	MsgInvalidRequest          = "Invalid request."
	MsgInvalidRange            = "Invalid Range"
	MsgMerchantAlreadyExists   = "Merchant Already Exists"
	MsgMerchantIDDoesNotExist  = "Merchant Id Does Not Exist"
	MsgMerchantIDAssigned      = "Merchant Id Is Assigned On Creation"
	MsgNoMerchantFound         = "No Merchant Found"
	MsgOnlyUSDSupported        = "Only USD is supported presently."
	MsgCouldNotFindMerchant    = "Could not find that merchant."
	MsgCouldNotFindApplication = "Could not find that loan application."
)

// FieldError is a business-rule failure scoped to one request field.
type FieldError struct {
	Kind    error
	Field   string
	Message string
}

// NewFieldError builds a FieldError of the given kind.
func NewFieldError(kind error, field, message string) *FieldError {
	return &FieldError{Kind: kind, Field: field, Message: message}
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v: %s: %s", e.Kind, e.Field, e.Message)
}

func (e *FieldError) Unwrap() error {
	return e.Kind
}

// InvalidRequest reports a missing or malformed field.
func InvalidRequest(field string) *FieldError {
	return NewFieldError(ErrInvalidRequest, field, MsgInvalidRequest)
}
