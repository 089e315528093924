// Package errors defines the coded error type shared by the exam core, the
// question sources and the HTTP API.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error independently of its message.
type Code string

const (
	CodeInvalidInput      Code = "invalid_input"
	CodeIllegalTransition Code = "illegal_transition"
	CodeGenerationFailed  Code = "generation_failed"
	CodeNotFound          Code = "not_found"
	CodeInternal          Code = "internal"
)

var code2http = map[Code]int{
	CodeInvalidInput:      http.StatusBadRequest,
	CodeIllegalTransition: http.StatusConflict,
	CodeGenerationFailed:  http.StatusBadGateway,
	CodeNotFound:          http.StatusNotFound,
	CodeInternal:          http.StatusInternalServerError,
}

var code2message = map[Code]string{
	CodeInvalidInput:      "invalid input",
	CodeIllegalTransition: "illegal transition",
	CodeGenerationFailed:  "question generation failed",
	CodeNotFound:          "not found",
	CodeInternal:          "internal error",
}

// Sentinels for errors.Is. Any *Error with the same code matches.
var (
	ErrInvalidInput      = New(CodeInvalidInput)
	ErrIllegalTransition = New(CodeIllegalTransition)
	ErrGenerationFailed  = New(CodeGenerationFailed)
	ErrNotFound          = New(CodeNotFound)
)

type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	err     error
}

func New(code Code, opts ...Option) *Error {
	e := &Error{
		Code:    code,
		Message: code2message[code],
	}
	if e.Message == "" {
		e.Message = string(code)
	}

	for _, opt := range opts {
		opt.apply(e)
	}

	return e
}

func (e *Error) Error() string {
	s := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.err != nil {
		s += fmt.Sprintf(": %s", e.err)
	}

	return s
}

func (e *Error) Unwrap() error {
	return e.err
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func (e *Error) HTTPStatusCode() int {
	if c, ok := code2http[e.Code]; ok {
		return c
	}

	return http.StatusInternalServerError
}

// Convert returns err as an *Error, wrapping unknown errors as internal.
func Convert(err error) *Error {
	var e *Error
	if !errors.As(err, &e) {
		return Internal(err)
	}

	return e
}

// CodeOf returns the code carried by err, or CodeInternal.
func CodeOf(err error) Code {
	return Convert(err).Code
}

func Internal(err error) *Error {
	return New(CodeInternal, WithCause(err))
}

func InvalidInput(format string, args ...any) *Error {
	return New(CodeInvalidInput, WithMessagef(format, args...))
}

func IllegalTransition(format string, args ...any) *Error {
	return New(CodeIllegalTransition, WithMessagef(format, args...))
}

func NotFound(format string, args ...any) *Error {
	return New(CodeNotFound, WithMessagef(format, args...))
}

func GenerationFailed(cause error, format string, args ...any) *Error {
	return New(CodeGenerationFailed, WithCause(cause), WithMessagef(format, args...))
}

type Option interface {
	apply(*Error)
}

type optionFunc func(*Error)

func (f optionFunc) apply(e *Error) {
	f(e)
}

func WithCause(err error) Option {
	return optionFunc(func(e *Error) {
		e.err = err
	})
}

func WithMessagef(format string, args ...any) Option {
	return optionFunc(func(e *Error) {
		e.Message = fmt.Sprintf(format, args...)
	})
}
