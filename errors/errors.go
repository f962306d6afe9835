package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Error carries a message, an HTTP status code and an optional cause.
type Error struct {
	code  int
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

func (e *Error) Code() int { return e.code }

func (e *Error) Message() string { return e.msg }

func (e *Error) Unwrap() error { return e.cause }

// Option enriches an error at construction.
type Option func(*Error)

func WithCode(code int) Option {
	return func(e *Error) { e.code = code }
}

func WithCause(cause error) Option {
	return func(e *Error) {
		e.cause = cause
		// Inherit the cause's code unless one was set explicitly.
		if e.code == http.StatusInternalServerError {
			e.code = Code(cause)
		}
	}
}

// New builds an error with code 500 unless an option overrides it.
func New(msg string, opts ...Option) error {
	e := &Error{code: http.StatusInternalServerError, msg: msg}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func Newf(format string, args ...interface{}) error {
	return New(fmt.Sprintf(format, args...))
}

func NotFound(msg string) error {
	return New(msg, WithCode(http.StatusNotFound))
}

func BadRequest(msg string) error {
	return New(msg, WithCode(http.StatusBadRequest))
}

// Code extracts the status code of an error, defaulting to 500.
func Code(err error) int {
	var e *Error
	if stderrors.As(err, &e) {
		return e.code
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	return Code(err) == http.StatusNotFound
}
