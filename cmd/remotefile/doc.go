// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Remotefile fetches one piece of content from the host process over
// its bridge socket and writes it out.
//
//	remotefile [flags] <uri>
//
// By default the payload is decoded from its transport encoding and
// written to --output, or to stdout when stdout is not a terminal.
// --raw prints the payload text as received; --json prints
// {"data": ..., "encoding": ...}.
//
// Only the request options given on the command line are sent. An
// omitted --force-cache reaches the host as "not provided", which is
// different from --force-cache=false.
//
// The bridge socket and token come from the config file (--config or
// REMOTEFILE_CONFIG) and can be overridden with --socket and --token.
package main
