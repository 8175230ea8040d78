// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"errors"
	"fmt"
)

// ErrUnavailable matches every failure in which no response envelope
// was received from the host.
var ErrUnavailable = errors.New("bridge unavailable")

// UnavailableError reports why the host could not be reached or did not
// answer. It matches [ErrUnavailable] with errors.Is and unwraps to the
// underlying network or decoding error.
type UnavailableError struct {
	SocketPath string
	Action     string
	Err        error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("bridge unavailable for %q on %s: %v", e.Action, e.SocketPath, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Is reports whether target is ErrUnavailable.
func (e *UnavailableError) Is(target error) bool { return target == ErrUnavailable }

// CallError is returned when the host answered with ok=false.
type CallError struct {
	Action  string
	Message string
}

func (e *CallError) Error() string {
	return fmt.Sprintf("bridge error on %q: %s", e.Action, e.Message)
}

// ResponseTooLargeError is returned when the host answered with an
// envelope larger than the client's response size limit. The host was
// reachable, so it does not match [ErrUnavailable].
type ResponseTooLargeError struct {
	SocketPath string
	Action     string
	Limit      int64
}

func (e *ResponseTooLargeError) Error() string {
	return fmt.Sprintf("response to %q on %s exceeds %d bytes", e.Action, e.SocketPath, e.Limit)
}
