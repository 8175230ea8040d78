// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for --version
// output.
//
// Values are injected at build time:
//
//	go build -ldflags "-X github.com/bureau-foundation/remotefile/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// Without injection they default to "unknown" and "0.1.0-dev".
package version
