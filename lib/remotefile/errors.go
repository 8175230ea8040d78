// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package remotefile

import (
	"errors"
	"fmt"
)

// ErrTransportUnavailable matches failures where the bridge to the host
// is missing or delivered no response.
var ErrTransportUnavailable = errors.New("content bridge unavailable")

// ErrInvalidRequest matches requests rejected before reaching the host.
var ErrInvalidRequest = errors.New("invalid content request")

// ErrUnsupportedEncoding is returned by DecodePayload for an encoding
// it does not know.
var ErrUnsupportedEncoding = errors.New("unsupported payload encoding")

// StatusError is returned when the host answers with a status other
// than 200 and no error payload.
type StatusError struct {
	URI        string
	StatusCode int
	// Message is the host's message when it sent one alongside a
	// non-success status; empty otherwise.
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("failed to fetch content from %s (status %d)", e.URI, e.StatusCode)
}
