// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package remotefile

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// DecodePayload converts a payload received as text back into bytes.
// Encoding names follow the host's conventions and are matched
// case-insensitively:
//
//	base64        standard alphabet, padded or unpadded
//	hex           lowercase or uppercase hex digits
//	utf8, utf-8   the text's own UTF-8 bytes
//	binary, latin1 one byte per code point (each must be <= U+00FF)
func DecodePayload(data, encoding string) ([]byte, error) {
	switch strings.ToLower(encoding) {
	case "base64":
		decoded, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			decoded, err = base64.RawStdEncoding.DecodeString(data)
		}
		if err != nil {
			return nil, fmt.Errorf("decoding base64 payload: %w", err)
		}
		return decoded, nil
	case "hex":
		decoded, err := hex.DecodeString(data)
		if err != nil {
			return nil, fmt.Errorf("decoding hex payload: %w", err)
		}
		return decoded, nil
	case "utf8", "utf-8":
		return []byte(data), nil
	case "binary", "latin1":
		decoded := make([]byte, 0, len(data))
		for offset, r := range data {
			if r > 0xFF {
				return nil, fmt.Errorf("decoding %s payload: code point U+%04X at offset %d does not fit in a byte", encoding, r, offset)
			}
			decoded = append(decoded, byte(r))
		}
		return decoded, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, encoding)
	}
}
