// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bridge carries named operations between a restricted client
// and a privileged host process over a Unix socket.
//
// Each connection carries exactly one exchange. The client writes a
// CBOR request envelope and half-closes; the server dispatches on the
// envelope's action, writes a CBOR response envelope, and closes:
//
//	request:  {action: "fetchBinaryContent", token: h'…', payload: <cbor>}
//	response: {ok: true, data: <cbor>}
//	          {ok: false, error: "unknown action \"…\""}
//
// The payload and data fields hold the operation's own CBOR values and
// are opaque to this package. Callers that need typed operations wrap
// [Client.Call] and [SocketServer.Handle] (see lib/remotefile).
//
// Failures split into two kinds. [ErrUnavailable] covers every case
// where no response envelope arrived: the socket does not exist, the
// host refused the connection, or the connection died before a
// response was decoded. A dial against a missing socket fails
// immediately rather than waiting. [CallError] covers an envelope that
// arrived with ok=false: the host was reachable and rejected the
// request.
//
// The token field is an opaque credential read from a file at client
// construction. A server with an [Authenticator] rejects requests whose
// token it does not accept; a server without one ignores the field.
package bridge
