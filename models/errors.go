package models

import "fmt"

// FieldError is a single field violation reported in the `errors` array.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorValidation struct {
	Fields []FieldError
}

func (e ErrorValidation) Error() string {
	if len(e.Fields) == 0 {
		return "validation errors"
	}
	return fmt.Sprintf("validation errors: %s %s", e.Fields[0].Field, e.Fields[0].Message)
}

func NewValidationError(field, message string) ErrorValidation {
	return ErrorValidation{Fields: []FieldError{{Field: field, Message: message}}}
}

type UnauthorizedKind int

const (
	Unauthenticated UnauthorizedKind = iota
	InvalidCredential
	ExpiredCredential
)

type ErrorUnauthorized struct {
	Kind    UnauthorizedKind
	Message string
}

func (e ErrorUnauthorized) Error() string {
	return e.Message
}

type ErrorForbidden struct {
	Message string
}

func (e ErrorForbidden) Error() string {
	return e.Message
}

type ErrorNotFound struct {
	Message string
}

func (e ErrorNotFound) Error() string {
	return e.Message
}

type ErrorConflict struct {
	Message string
}

func (e ErrorConflict) Error() string {
	return e.Message
}

// ErrorBadRequest covers self-targeting guards such as deleting your own account.
type ErrorBadRequest struct {
	Message string
}

func (e ErrorBadRequest) Error() string {
	return e.Message
}

var (
	ErrUserNotFound    = ErrorNotFound{Message: "User not found"}
	ErrArticleNotFound = ErrorNotFound{Message: "Article not found"}
	ErrEmailTaken      = ErrorConflict{Message: "User already exists with this email"}
)
