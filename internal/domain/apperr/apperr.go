package apperr

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeValidation         Code = "VALIDATION_FAILED"
	CodeRedirectRequired   Code = "REDIRECT_REQUIRED"
	CodeSubmissionInFlight Code = "SUBMISSION_IN_FLIGHT"
	CodeOrderNotFound      Code = "ORDER_NOT_FOUND"
	CodeStorageUnavailable Code = "STORAGE_UNAVAILABLE"
	CodeStorageConstraint  Code = "STORAGE_CONSTRAINT"
	CodeNotificationFailed Code = "NOTIFICATION_FAILED"
	CodeInternal           Code = "INTERNAL"
)

// FieldError names one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the coded error returned across the gateway and usecase boundaries.
type Error struct {
	Code    Code
	Op      string
	Err     error
	Details []FieldError
}

func (e *Error) Error() string {
	msg := string(e.Code)
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by code so sentinels like ErrNotFound work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code && t.Op == "" && t.Err == nil
}

func New(code Code, op string, err error) *Error {
	return &Error{Code: code, Op: op, Err: err}
}

func Newf(code Code, op, format string, args ...any) *Error {
	return &Error{Code: code, Op: op, Err: fmt.Errorf(format, args...)}
}

func Validation(op string, details []FieldError) *Error {
	return &Error{Code: CodeValidation, Op: op, Err: errors.New("validation failed"), Details: details}
}

// CodeOf returns the code carried by err, or CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// DetailsOf returns the field details carried by err, if any.
func DetailsOf(err error) []FieldError {
	var e *Error
	if errors.As(err, &e) {
		return e.Details
	}
	return nil
}
