// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/bureau-foundation/remotefile/lib/codec"
)

// ActionFunc handles one operation. payload is the raw CBOR argument
// sent by the client (nil if the client sent none). A non-nil return
// value is CBOR-encoded into the response's data field; an error
// becomes an ok=false response carrying err.Error().
type ActionFunc func(ctx context.Context, payload []byte) (any, error)

// Authenticator decides whether a request's token may invoke action.
// Returning an error rejects the request with that error's message.
type Authenticator func(ctx context.Context, action string, token []byte) error

// SocketServer serves the bridge protocol on a Unix socket. Register
// operations with Handle and set an Authenticator (if any) before
// calling Serve.
type SocketServer struct {
	socketPath    string
	handlers      map[string]ActionFunc
	authenticator Authenticator
	logger        *slog.Logger

	ready     chan struct{}
	readyOnce sync.Once

	// activeConnections lets Serve wait for in-flight handlers on
	// shutdown.
	activeConnections sync.WaitGroup
}

// NewSocketServer creates a server that will listen on socketPath. A
// nil logger discards log output.
func NewSocketServer(socketPath string, logger *slog.Logger) *SocketServer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SocketServer{
		socketPath: socketPath,
		handlers:   make(map[string]ActionFunc),
		logger:     logger,
		ready:      make(chan struct{}),
	}
}

// Handle registers handler for action. Panics if action is empty or
// already registered.
func (s *SocketServer) Handle(action string, handler ActionFunc) {
	if action == "" {
		panic("bridge.SocketServer: empty action name")
	}
	if _, exists := s.handlers[action]; exists {
		panic(fmt.Sprintf("bridge.SocketServer: duplicate handler for action %q", action))
	}
	s.handlers[action] = handler
}

// SetAuthenticator installs a token check applied to every request.
func (s *SocketServer) SetAuthenticator(authenticator Authenticator) {
	s.authenticator = authenticator
}

// Ready is closed once the socket is listening.
func (s *SocketServer) Ready() <-chan struct{} { return s.ready }

// Serve accepts connections until ctx is cancelled, then stops
// accepting and waits for in-flight handlers before returning. A stale
// socket file at the configured path is removed first; the socket file
// is removed on return.
func (s *SocketServer) Serve(ctx context.Context) error {
	if err := os.Remove(s.socketPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stale socket %s: %w", s.socketPath, err)
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.socketPath, err)
	}
	defer func() {
		listener.Close()
		os.Remove(s.socketPath)
	}()

	stop := context.AfterFunc(ctx, func() { listener.Close() })
	defer stop()

	s.logger.Info("bridge listening", "path", s.socketPath, "actions", len(s.handlers))
	s.readyOnce.Do(func() { close(s.ready) })

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				break
			}
			s.logger.Error("accept failed", "error", err)
			continue
		}

		s.activeConnections.Add(1)
		go func() {
			defer s.activeConnections.Done()
			s.handleConnection(ctx, conn)
		}()
	}

	s.activeConnections.Wait()
	return nil
}

// readTimeout is how long the server waits for a client to send its
// request after connecting.
const readTimeout = 30 * time.Second

// writeTimeout bounds writing the response.
const writeTimeout = 30 * time.Second

// maxRequestSize bounds a request envelope. Fetch options are a handful
// of short strings.
const maxRequestSize = 1024 * 1024

func (s *SocketServer) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(readTimeout))

	var request Request
	if err := codec.NewDecoder(io.LimitReader(conn, maxRequestSize)).Decode(&request); err != nil {
		if errors.Is(err, io.EOF) {
			return
		}
		s.writeError(conn, fmt.Sprintf("invalid request: %v", err))
		return
	}
	if request.Action == "" {
		s.writeError(conn, "missing required field: action")
		return
	}

	handler, exists := s.handlers[request.Action]
	if !exists {
		s.writeError(conn, fmt.Sprintf("unknown action %q", request.Action))
		return
	}

	if s.authenticator != nil {
		if err := s.authenticator(ctx, request.Action, request.Token); err != nil {
			s.logger.Warn("request rejected", "action", request.Action, "error", err)
			s.writeError(conn, fmt.Sprintf("authentication failed: %v", err))
			return
		}
	}

	result, err := handler(ctx, request.Payload)
	if err != nil {
		s.logger.Debug("action failed", "action", request.Action, "error", err)
		s.writeError(conn, err.Error())
		return
	}
	s.writeSuccess(conn, result)
}

// writeError sends {ok: false, error: message}. Write failures are
// logged at debug level; the connection is closing regardless.
func (s *SocketServer) writeError(conn net.Conn, message string) {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := codec.NewEncoder(conn).Encode(Response{OK: false, Error: message}); err != nil {
		s.logger.Debug("failed to write error response", "error", err)
	}
}

// writeSuccess sends {ok: true} with result encoded into data when
// result is non-nil.
func (s *SocketServer) writeSuccess(conn net.Conn, result any) {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))

	response := Response{OK: true}
	if result != nil {
		data, err := codec.Marshal(result)
		if err != nil {
			s.writeError(conn, fmt.Sprintf("internal: marshaling response: %v", err))
			return
		}
		response.Data = data
	}

	if err := codec.NewEncoder(conn).Encode(response); err != nil {
		s.logger.Debug("failed to write success response", "error", err)
	}
}
