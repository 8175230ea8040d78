// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers.
//
// [SocketPath] returns a socket path inside a short temporary directory.
// Unix socket paths are limited to 108 bytes (sun_path), and
// t.TempDir() paths under deeply nested TMPDIRs can exceed that.
//
// [RequireReceive] and [RequireClosed] wrap the select-with-timeout
// pattern so a broken test fails instead of hanging the suite.
//
// [UniqueID] produces distinguishable identifiers for concurrent tests.
//
// All helpers call t.Fatalf on failure.
package testutil
