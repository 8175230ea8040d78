// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package remotefile asks a privileged host process for binary content
// (images, videos, opaque blobs) by URI and returns the payload in its
// transport encoding.
//
// The package owns only the request/response contract. Retrieval,
// caching, size enforcement and hash checking all happen in the host;
// a [Fetcher] forwards a [ContentRequest] field for field as the single
// argument of the "fetchBinaryContent" operation and interprets the
// one [ContentResponse] that comes back:
//
//   - a non-null error from the host is returned as that [*HostError]
//   - a status other than 200 becomes a [*StatusError] naming the URI
//   - otherwise the result is [Content]{Data, Encoding}
//
// Optional request fields are pointers. A nil field is omitted from the
// wire payload so the host applies its own default; a pointer to false
// or zero is sent as that explicit value.
//
// The transport is injected as an [Invoker]. [SocketInvoker] adapts a
// lib/bridge client; tests substitute an [InvokerFunc]. A Fetcher with
// no invoker, or an invoker that cannot reach the host, fails with an
// error matching [ErrTransportUnavailable] instead of blocking.
//
// Hosts built on lib/bridge register the operation with [Handle], which
// decodes [FetchOptions] and encodes the handler's [ContentResponse].
package remotefile
