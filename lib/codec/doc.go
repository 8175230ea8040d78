// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec holds the single CBOR configuration shared by both ends
// of the content bridge.
//
// Every message crossing the bridge (request envelopes, fetch options,
// content responses, host error payloads) is CBOR. Keeping the encoder
// and decoder modes in one place guarantees the client and a host built
// from this module agree on the bytes.
//
// Buffer-oriented use:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// Stream-oriented use (sockets):
//
//	encoder := codec.NewEncoder(conn)
//	decoder := codec.NewDecoder(conn)
//
// # Struct tags
//
// Types that only ever travel as CBOR use `cbor` tags. Types that are
// also printed by the CLI's --json output use `json` tags, which
// fxamacker/cbor reads as a fallback. Never put both on one field.
package codec
