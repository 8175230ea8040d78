// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the client configuration.
//
// Configuration comes from a single file named by either the
// REMOTEFILE_CONFIG environment variable ([Load]) or a --config flag
// ([LoadFile]). There is no discovery and no environment variable
// overrides individual values. Without a file, commands run on
// [Default].
//
// The file may contain development, staging and production sections
// that override base values when [Config].Environment matches.
// Production defaults to warn-level logging.
//
// ${HOME} and ${VAR:-default} patterns are expanded in path fields
// after loading.
//
// YAML is the primary format; .json and .jsonc files are accepted with
// comments.
package config
