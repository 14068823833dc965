// Package errors provides the structured error type shared by cpfn and cpfp.
//
// Errors fall into three tiers:
//
//   - Fatal: returned from a command, printed in red and mapped to exit 1.
//   - Reported: NOT_FOUND / ALREADY_EXISTS errors returned by drivers; the
//     command layer prints a human message and carries on with exit 0.
//   - External: a helper binary (systemctl, certbot, the editor) exited
//     non-zero. Its output already reached the terminal, so nothing is
//     printed and its exit status becomes ours.
//
// # Usage
//
//	return errors.AlreadyExists(path)
//	return errors.Usage("Please provide the file to edit using --file")
//	return errors.External("systemctl", err)
//
// Use errors.Is against the sentinels:
//
//	if errors.Is(err, errors.ErrExists) {
//	    output.Warn("Config file '%s' already exists.", path)
//	}
package errors

import (
	"errors"
	"fmt"
	"os/exec"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for different error categories.
const (
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"      // File, link or source missing
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS" // Target already on disk
	ErrCodeValidation    ErrorCode = "VALIDATION"     // Missing or malformed arguments
	ErrCodePermission    ErrorCode = "PERMISSION"     // Not running as root
	ErrCodeMismatch      ErrorCode = "MISMATCH"       // Password confirmation failed
	ErrCodeExternal      ErrorCode = "EXTERNAL"       // Helper binary failed
	ErrCodeConfig        ErrorCode = "CONFIG"         // Tool configuration error
	ErrCodeInternal      ErrorCode = "INTERNAL"       // Filesystem or unexpected error
)

// Error is a structured error with context about the operation.
type Error struct {
	Code    ErrorCode // Error category
	Message string    // Human-readable message
	Name    string    // Path or config name involved (if applicable)
	Hint    string    // Follow-up line shown under the message
	Err     error     // Underlying error (if any)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Name != "" {
		if msg == "" {
			msg = e.Name
		} else {
			msg = fmt.Sprintf("%s: %s", e.Name, msg)
		}
	}
	if e.Err != nil {
		if msg == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors for use with errors.Is.
var (
	ErrNotFound         = &Error{Code: ErrCodeNotFound, Message: "not found"}
	ErrExists           = &Error{Code: ErrCodeAlreadyExists, Message: "already exists"}
	ErrValidation       = &Error{Code: ErrCodeValidation, Message: "invalid arguments"}
	ErrRootRequired     = &Error{Code: ErrCodePermission, Message: "This script must be run as root!", Hint: "Use -h for help."}
	ErrPasswordMismatch = &Error{Code: ErrCodeMismatch, Message: "Passwords do not match."}
	ErrExternal         = &Error{Code: ErrCodeExternal, Message: "external command failed"}
	ErrConfigInvalid    = &Error{Code: ErrCodeConfig, Message: "invalid configuration"}
)

// NotFound creates an error for a missing file or link.
func NotFound(name string) error {
	return &Error{Code: ErrCodeNotFound, Message: "does not exist", Name: name}
}

// AlreadyExists creates an error for a target that is already on disk.
func AlreadyExists(name string) error {
	return &Error{Code: ErrCodeAlreadyExists, Message: "already exists", Name: name}
}

// New creates an error with the given code and message.
func New(code ErrorCode, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Validation creates a validation error with a custom message.
func Validation(msg string) error {
	return &Error{Code: ErrCodeValidation, Message: msg}
}

// Usage creates a validation error that points the user at --help.
func Usage(msg string) error {
	return &Error{Code: ErrCodeValidation, Message: msg, Hint: "Use -h for help."}
}

// Wrap creates an error with the specified code, message, and underlying error.
func Wrap(code ErrorCode, msg string, err error) error {
	return &Error{Code: code, Message: msg, Err: err}
}

// External wraps the failure of a helper binary.
func External(command string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: ErrCodeExternal, Message: command, Err: err}
}

// HintOf returns the follow-up hint attached to err, if any.
func HintOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Hint
	}
	return ""
}

// ExitStatus maps err to a process exit code. A helper that exited
// non-zero contributes its own status; every other error maps to 1.
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code > 0 {
			return code
		}
	}
	return 1
}

// Silent reports whether err came from a helper that already wrote its
// own diagnostics, so nothing should be printed on top of them.
func Silent(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr) && errors.Is(err, ErrExternal)
}

// Is reports whether any error in err's chain matches target.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
var As = errors.As
