// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import "github.com/bureau-foundation/remotefile/lib/codec"

// Request is the wire envelope for one operation call.
type Request struct {
	Action  string           `cbor:"action"`
	Token   []byte           `cbor:"token,omitempty"`
	Payload codec.RawMessage `cbor:"payload,omitempty"`
}

// Response is the wire envelope for one operation result. Data holds
// the handler's CBOR-encoded return value when OK is true and the
// handler returned something.
type Response struct {
	OK    bool             `cbor:"ok"`
	Error string           `cbor:"error,omitempty"`
	Data  codec.RawMessage `cbor:"data,omitempty"`
}
