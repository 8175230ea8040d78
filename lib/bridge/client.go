// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/bureau-foundation/remotefile/lib/codec"
)

// DefaultDialTimeout bounds the connect phase only.
const DefaultDialTimeout = 5 * time.Second

// DefaultResponseTimeout is how long the client waits for the host to
// answer after the request is written. Content fetches can involve a
// slow upstream, so this is generous; callers that need a tighter
// bound pass a context deadline.
const DefaultResponseTimeout = 120 * time.Second

// DefaultMaxResponseSize bounds a single response envelope. Payloads
// arrive as encoded text (base64 inflates by a third), so this leaves
// room for content in the tens of megabytes.
const DefaultMaxResponseSize = 64 * 1024 * 1024

// Client sends operation calls to a host over its Unix socket. Each
// Call opens a new connection, exchanges one request and one response,
// and closes the connection. A Client holds no per-call state and is
// safe for concurrent use once configured.
type Client struct {
	socketPath      string
	token           []byte
	dialTimeout     time.Duration
	responseTimeout time.Duration
	maxResponseSize int64
}

// NewClient creates a client that authenticates with the token stored
// at tokenPath. Returns an error if the file cannot be read or is
// empty.
func NewClient(socketPath, tokenPath string) (*Client, error) {
	token, err := os.ReadFile(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("reading bridge token from %s: %w", tokenPath, err)
	}
	if len(token) == 0 {
		return nil, fmt.Errorf("bridge token file %s is empty", tokenPath)
	}
	return NewClientFromToken(socketPath, token), nil
}

// NewClientFromToken creates a client with pre-loaded token bytes. A
// nil token produces unauthenticated requests.
func NewClientFromToken(socketPath string, token []byte) *Client {
	return &Client{
		socketPath:      socketPath,
		token:           token,
		dialTimeout:     DefaultDialTimeout,
		responseTimeout: DefaultResponseTimeout,
		maxResponseSize: DefaultMaxResponseSize,
	}
}

// SetTimeouts overrides the dial and response timeouts. A zero value
// leaves the corresponding timeout unchanged. Must be called before
// the client is shared between goroutines.
func (c *Client) SetTimeouts(dial, response time.Duration) {
	if dial > 0 {
		c.dialTimeout = dial
	}
	if response > 0 {
		c.responseTimeout = response
	}
}

// SetMaxResponseSize overrides the response size limit. Non-positive
// values are ignored. Must be called before the client is shared
// between goroutines.
func (c *Client) SetMaxResponseSize(size int64) {
	if size > 0 {
		c.maxResponseSize = size
	}
}

// SocketPath returns the socket the client dials.
func (c *Client) SocketPath() string { return c.socketPath }

// Call sends payload as the argument of action and decodes the host's
// return value into result.
//
// payload is CBOR-encoded as-is; pass nil for operations without an
// argument. If result is non-nil and the response carries data, the
// data is decoded into it.
//
// Errors:
//   - the host could not be reached or sent no response: an error
//     matching [ErrUnavailable] (an [*UnavailableError])
//   - the host answered ok=false: a [*CallError]
//   - the response exceeded the size limit: a [*ResponseTooLargeError]
//   - ctx was cancelled or expired: ctx.Err()
//   - payload or result encoding failed: a plain error
func (c *Client) Call(ctx context.Context, action string, payload any, result any) error {
	request := Request{Action: action, Token: c.token}
	if payload != nil {
		encoded, err := codec.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding payload for %q: %w", action, err)
		}
		request.Payload = encoded
	}

	response, err := c.send(ctx, request)
	if err != nil {
		var tooLarge *ResponseTooLargeError
		if errors.As(err, &tooLarge) {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("calling %q on %s: %w", action, c.socketPath, ctxErr)
		}
		return &UnavailableError{SocketPath: c.socketPath, Action: action, Err: err}
	}

	if !response.OK {
		return &CallError{Action: action, Message: response.Error}
	}

	if result != nil && len(response.Data) > 0 {
		if err := codec.Unmarshal(response.Data, result); err != nil {
			return fmt.Errorf("decoding response data for %q: %w", action, err)
		}
	}
	return nil
}

// send dials, writes the request, and reads one response envelope.
func (c *Client) send(ctx context.Context, request Request) (*Response, error) {
	dialer := net.Dialer{Timeout: c.dialTimeout}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("connecting: %w", err)
	}
	defer conn.Close()

	// Unblock a pending read when the caller gives up.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	if err := codec.NewEncoder(conn).Encode(request); err != nil {
		return nil, fmt.Errorf("writing request: %w", err)
	}

	// CBOR is self-delimiting; the half-close only lets the server's
	// reader see a clean EOF.
	if unixConn, ok := conn.(*net.UnixConn); ok {
		unixConn.CloseWrite()
	}

	deadline := time.Now().Add(c.responseTimeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	conn.SetReadDeadline(deadline)

	// One byte past the limit distinguishes an oversized response from
	// a truncated one.
	limited := &io.LimitedReader{R: conn, N: c.maxResponseSize + 1}
	var response Response
	if err := codec.NewDecoder(limited).Decode(&response); err != nil {
		if limited.N == 0 {
			return nil, &ResponseTooLargeError{SocketPath: c.socketPath, Action: request.Action, Limit: c.maxResponseSize}
		}
		if errors.Is(err, io.EOF) {
			return nil, errors.New("connection closed before a response was sent")
		}
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return &response, nil
}
