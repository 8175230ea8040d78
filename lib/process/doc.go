// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides binary entrypoint helpers. [Fatal] is the
// one place a binary writes an error to stderr without the structured
// logger, for failures that happen before the logger exists.
package process
