// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package remotefile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Invoker performs one cross-process call and returns the host's
// response. Implementations must return an error matching
// ErrTransportUnavailable when the host cannot be reached.
type Invoker interface {
	Invoke(ctx context.Context, operation string, payload any) (*ContentResponse, error)
}

// InvokerFunc adapts a function to the Invoker interface.
type InvokerFunc func(ctx context.Context, operation string, payload any) (*ContentResponse, error)

// Invoke calls f.
func (f InvokerFunc) Invoke(ctx context.Context, operation string, payload any) (*ContentResponse, error) {
	return f(ctx, operation, payload)
}

// Fetcher requests content from the host through an Invoker. It keeps
// no state between calls and is safe for concurrent use; concurrent
// fetches complete in whatever order the host answers them.
type Fetcher struct {
	invoker Invoker
	logger  *slog.Logger
}

// NewFetcher returns a Fetcher that sends requests through invoker. A
// nil invoker is accepted; every fetch then fails with
// ErrTransportUnavailable. A nil logger discards log output.
func NewFetcher(invoker Invoker, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Fetcher{invoker: invoker, logger: logger}
}

// FetchContent sends request to the host as a single
// fetchBinaryContent call and waits for its answer. It does not retry
// and sets no deadline of its own; ctx is handed to the invoker.
//
// Errors:
//   - request has no URI or an unknown Type: ErrInvalidRequest
//   - no invoker, or the invoker could not deliver a response: an
//     error matching ErrTransportUnavailable
//   - the host reported an error: that *HostError, unwrapped
//   - the host answered with a status other than 200: *StatusError
func (f *Fetcher) FetchContent(ctx context.Context, request ContentRequest) (Content, error) {
	if err := validate(request); err != nil {
		return Content{}, err
	}
	if f == nil || f.invoker == nil {
		return Content{}, fmt.Errorf("fetching %s: %w: no invoker configured", request.URI, ErrTransportUnavailable)
	}

	logger := f.logger.With("uri", request.URI)
	logger.Debug("requesting content from host")

	response, err := f.invoker.Invoke(ctx, OperationFetchBinaryContent, request.options())
	if err != nil {
		var hostErr *HostError
		if errors.As(err, &hostErr) {
			return Content{}, hostErr
		}
		logger.Debug("content request failed", "error", err)
		return Content{}, fmt.Errorf("fetching %s: %w", request.URI, err)
	}
	if response == nil {
		return Content{}, fmt.Errorf("fetching %s: %w: host returned no response", request.URI, ErrTransportUnavailable)
	}

	if response.Error.reported() {
		logger.Debug("host reported error", "status", response.StatusCode, "error", response.Error.Error())
		return Content{}, response.Error
	}

	if response.StatusCode != StatusOK {
		logger.Debug("host returned non-success status", "status", response.StatusCode)
		statusErr := &StatusError{URI: request.URI, StatusCode: response.StatusCode}
		if response.Error != nil {
			statusErr.Message = response.Error.Message
		}
		return Content{}, statusErr
	}

	logger.Debug("content received", "encoding", response.Encoding, "length", len(response.Data))
	return Content{Data: response.Data, Encoding: response.Encoding}, nil
}

func validate(request ContentRequest) error {
	if request.URI == "" {
		return fmt.Errorf("%w: uri is required", ErrInvalidRequest)
	}
	if request.Type != nil && !request.Type.Valid() {
		return fmt.Errorf("%w: unknown file type %q", ErrInvalidRequest, *request.Type)
	}
	return nil
}
