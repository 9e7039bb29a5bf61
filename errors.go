// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package wirebench

import (
	"fmt"

	"github.com/pkg/errors"
)

// Reasons for a rejected connection. A *ConnectError matches its reason with
// errors.Is.
//
var (
	ErrWrongDirection   = errors.New("connect output to input")
	ErrIncompatiblePort = errors.New("incompatible port")
	ErrInputOccupied    = errors.New("input already connected")
	ErrCycleDetected    = errors.New("cycle prevented")
	ErrUnknownEndpoint  = errors.New("no such port")
)

// Other errors.
//
var (
	ErrMalformedDocument = errors.New("malformed document")
	ErrUnknownType       = errors.New("unknown node type")
	ErrUnknownNode       = errors.New("no such node")
	ErrUnknownProp       = errors.New("no such property")
)

// ConnectError is returned by TryConnect when a cable cannot be created.
//
type ConnectError struct {
	Reason error
	From   Endpoint
	To     Endpoint
	// Want is the kind of the source port for ErrIncompatiblePort.
	Want SignalKind
}

func (e *ConnectError) Error() string {
	switch e.Reason {
	case ErrIncompatiblePort:
		return fmt.Sprintf("%v -> %v: %v (expected %s)", e.From, e.To, e.Reason, e.Want)
	case nil:
		return fmt.Sprintf("%v -> %v: connection refused", e.From, e.To)
	}
	return fmt.Sprintf("%v -> %v: %v", e.From, e.To, e.Reason)
}

// Unwrap returns e.Reason.
func (e *ConnectError) Unwrap() error { return e.Reason }

// DocumentError is returned when a document fails to decode or validate. It
// matches ErrMalformedDocument with errors.Is; Err holds the actual problems,
// usually a *multierror.Error.
//
type DocumentError struct {
	Err error
}

func (e *DocumentError) Error() string {
	return ErrMalformedDocument.Error() + ": " + e.Err.Error()
}

// Is makes DocumentError match ErrMalformedDocument.
func (e *DocumentError) Is(target error) bool { return target == ErrMalformedDocument }

// Unwrap returns e.Err.
func (e *DocumentError) Unwrap() error { return e.Err }

// PropError is returned when a property does not exist.
//
type PropError struct {
	Name string
}

func (e *PropError) Error() string { return ErrUnknownProp.Error() + " " + e.Name }

// Unwrap returns ErrUnknownProp.
func (e *PropError) Unwrap() error { return ErrUnknownProp }
