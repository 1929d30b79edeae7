// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package port

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOperation reports that no handler is registered for a request's kind and operation.
	ErrUnknownOperation = errors.New("port: unknown operation")
	// ErrDuplicateCorrelation reports a request whose correlation id is still in flight.
	ErrDuplicateCorrelation = errors.New("port: duplicate correlation id")
	// ErrHandlerFailure reports that a handler returned an error or panicked.
	ErrHandlerFailure = errors.New("port: handler failure")

	// ErrRegistrationConflict reports two handlers for the same kind and operation.
	// It is a startup error and must abort initialization.
	ErrRegistrationConflict = errors.New("port: registration conflict")
	// ErrRegistrySealed reports a registration attempt after a Runtime took ownership.
	ErrRegistrySealed = errors.New("port: registry sealed")
	// ErrInvalidHandler reports an empty kind or operation name, or a nil handler.
	ErrInvalidHandler = errors.New("port: invalid handler")

	// ErrInvalidArguments reports request arguments that do not match the operation's schema.
	ErrInvalidArguments = errors.New("port: invalid arguments")
	// ErrIdle is returned by Runtime.Await when no request is pending.
	ErrIdle = errors.New("port: no request in flight")
	// ErrUnknownCommand is returned by Host.Dispatch for a nil or unrecognized command.
	ErrUnknownCommand = errors.New("port: unknown command")
)

// Code classifies a per-request failure.
type Code uint8

const (
	// UnknownOperation: no handler for (kind, operation). Recoverable by the application.
	UnknownOperation Code = iota + 1
	// DuplicateCorrelation: the caller reused a live correlation id.
	DuplicateCorrelation
	// HandlerFailure: the underlying operation rejected or raised.
	HandlerFailure
)

func (c Code) String() string {
	switch c {
	case UnknownOperation:
		return "UnknownOperation"
	case DuplicateCorrelation:
		return "DuplicateCorrelation"
	case HandlerFailure:
		return "HandlerFailure"
	}
	return fmt.Sprintf("Code(%d)", uint8(c))
}

// sentinel returns the package error matching c.
func (c Code) sentinel() error {
	switch c {
	case UnknownOperation:
		return ErrUnknownOperation
	case DuplicateCorrelation:
		return ErrDuplicateCorrelation
	default:
		return ErrHandlerFailure
	}
}

// Failure is the Left side of an [Outcome].
// Err holds the handler's own error for HandlerFailure and is nil otherwise.
type Failure struct {
	Code      Code
	Kind      string
	Operation string
	Detail    string
	Err       error
}

func (f *Failure) Error() string {
	if f.Detail == "" {
		return fmt.Sprintf("%s %s/%s", f.Code, f.Kind, f.Operation)
	}
	return fmt.Sprintf("%s %s/%s: %s", f.Code, f.Kind, f.Operation, f.Detail)
}

// Unwrap exposes both the code's sentinel and the handler cause to errors.Is/As.
func (f *Failure) Unwrap() []error {
	if f.Err == nil {
		return []error{f.Code.sentinel()}
	}
	return []error{f.Code.sentinel(), f.Err}
}

// ConflictError is returned by Registry.Register when a (kind, operation)
// pair is already taken.
type ConflictError struct {
	Kind      string
	Operation string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("port: registration conflict: %s/%s registered twice", e.Kind, e.Operation)
}

func (e *ConflictError) Unwrap() error { return ErrRegistrationConflict }
