// Package apierr is the error model shared by every inventory package:
// a code, a user-facing message and the HTTP status it maps to.
package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"sarpras-backend/internal/platform/db"
)

type Code string

const (
	CodeInvalidArgument   Code = "INVALID_ARGUMENT"
	CodeNotFound          Code = "NOT_FOUND"
	CodeConflict          Code = "CONFLICT"
	CodeInsufficientStock Code = "INSUFFICIENT_STOCK"
	CodeImportRow         Code = "IMPORT_ROW"
	CodeLockTimeout       Code = "LOCK_TIMEOUT"
	CodeInternal          Code = "INTERNAL"
)

// Coded is implemented by every error that knows its own code.
type Coded interface {
	error
	ErrorCode() Code
}

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string   { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func (e *APIError) ErrorCode() Code { return e.Code }

// ValidationError: rejected before any state change.
func ErrInvalid(msg string) *APIError  { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrNotFound(msg string) *APIError { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrConflict(msg string) *APIError { return &APIError{Code: CodeConflict, Message: msg} }
func ErrInternal(msg string) *APIError { return &APIError{Code: CodeInternal, Message: msg} }

// CodeOf returns the code carried by err, CodeLockTimeout for lock-wait
// expiries and CodeInternal for anything else.
func CodeOf(err error) Code {
	var c Coded
	if errors.As(err, &c) {
		return c.ErrorCode()
	}
	if db.IsLockTimeout(err) {
		return CodeLockTimeout
	}
	return CodeInternal
}

func Is(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

func ToHTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeInvalidArgument, CodeImportRow:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeInsufficientStock:
		return http.StatusConflict
	case CodeLockTimeout:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type ErrorDTO struct {
	Error struct {
		Code    Code   `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func Body(code Code, msg string) ErrorDTO {
	var e ErrorDTO
	e.Error.Code = code
	e.Error.Message = msg
	return e
}

// FromErr builds the response body. Internal errors never leak their text.
func FromErr(err error) ErrorDTO {
	code := CodeOf(err)
	switch code {
	case CodeInternal:
		return Body(code, "internal error")
	case CodeLockTimeout:
		return Body(code, "item is busy, please retry")
	}
	var api *APIError
	if errors.As(err, &api) {
		return Body(code, api.Message)
	}
	return Body(code, err.Error())
}
