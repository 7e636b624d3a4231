// Package rpgerr provides structured error handling for the tag engine's
// game-rule-facing failures: the ones a host application needs to show a
// player a human reason for ("on cooldown", "not enough mana"), as opposed
// to internal programmer errors.
package rpgerr

import "fmt"

// Code categorizes why a game rule blocked an action.
type Code string

const (
	// CodeInternal indicates an internal system error.
	CodeInternal Code = "internal"

	// CodeInvalidArgument indicates malformed input, e.g. a malformed registry document.
	CodeInvalidArgument Code = "invalid_argument"

	// CodeResourceExhausted indicates insufficient mana (or another resource) to activate a skill.
	CodeResourceExhausted Code = "resource_exhausted"

	// CodeCooldownActive indicates the ability is still on cooldown.
	CodeCooldownActive Code = "cooldown_active"

	// CodeNotFound indicates a requested registry entry or entity was not found.
	CodeNotFound Code = "not_found"
)

// Error is a game error with a code, message, wrapped cause, and metadata
// describing the state that produced it.
type Error struct {
	Code    Code
	Message string
	Cause   error
	Meta    map[string]any
}

func (e *Error) Error() string {
	if e == nil {
		return "rpgerr: nil error"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Option configures an Error at construction time.
type Option func(*Error)

// WithMeta attaches a metadata field to the error.
func WithMeta(key string, value any) Option {
	return func(e *Error) {
		if e.Meta == nil {
			e.Meta = make(map[string]any)
		}
		e.Meta[key] = value
	}
}

// WithCause wraps an underlying error.
func WithCause(err error) Option {
	return func(e *Error) { e.Cause = err }
}

// New creates an Error with the given code and message.
func New(code Code, message string, opts ...Option) *Error {
	err := &Error{Code: code, Message: message}
	for _, opt := range opts {
		opt(err)
	}
	return err
}

// Newf creates an Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the Code from err if it is (or wraps) an *Error.
// Returns CodeInternal if err does not carry an rpgerr code.
func CodeOf(err error) Code {
	var e *Error
	if asError(err, &e) {
		return e.Code
	}
	return CodeInternal
}

func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}
