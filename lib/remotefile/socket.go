// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package remotefile

import (
	"context"
	"errors"
	"fmt"

	"github.com/bureau-foundation/remotefile/lib/bridge"
	"github.com/bureau-foundation/remotefile/lib/codec"
)

// SocketInvoker sends operations to a host over a lib/bridge Unix
// socket.
type SocketInvoker struct {
	client *bridge.Client
}

// NewSocketInvoker wraps client. A nil client yields an invoker whose
// every call fails with ErrTransportUnavailable.
func NewSocketInvoker(client *bridge.Client) *SocketInvoker {
	return &SocketInvoker{client: client}
}

// Invoke implements Invoker. An unreachable or silent host maps to
// ErrTransportUnavailable; a host that rejected the call (for example
// because it has no handler for operation) is returned as a wrapped
// *bridge.CallError. A call that succeeded without data yields a nil
// response.
func (s *SocketInvoker) Invoke(ctx context.Context, operation string, payload any) (*ContentResponse, error) {
	if s == nil || s.client == nil {
		return nil, fmt.Errorf("%w: no bridge client", ErrTransportUnavailable)
	}

	var response *ContentResponse
	if err := s.client.Call(ctx, operation, payload, &response); err != nil {
		if errors.Is(err, bridge.ErrUnavailable) {
			return nil, fmt.Errorf("%w: %w", ErrTransportUnavailable, err)
		}
		return nil, err
	}
	return response, nil
}

// HostHandler answers one fetchBinaryContent call on the host side.
// Failures are reported inside the returned ContentResponse (status
// code and error field), never as a Go error, so the client sees the
// same shape whether the fetch succeeded or not.
type HostHandler func(ctx context.Context, options FetchOptions) ContentResponse

// Handle registers handler as the fetchBinaryContent operation on
// server.
func Handle(server *bridge.SocketServer, handler HostHandler) {
	server.Handle(OperationFetchBinaryContent, func(ctx context.Context, payload []byte) (any, error) {
		if len(payload) == 0 {
			return nil, errors.New("missing fetch options")
		}
		var options FetchOptions
		if err := codec.Unmarshal(payload, &options); err != nil {
			return nil, fmt.Errorf("decoding fetch options: %w", err)
		}
		response := handler(ctx, options)
		return &response, nil
	})
}
