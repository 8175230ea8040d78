// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package remotefile

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecodePayload(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		encoding string
		want     []byte
	}{
		{name: "base64", data: "QUJD", encoding: "base64", want: []byte("ABC")},
		{name: "base64 uppercase name", data: "QUJD", encoding: "BASE64", want: []byte("ABC")},
		{name: "base64 unpadded", data: "QUI", encoding: "base64", want: []byte("AB")},
		{name: "hex", data: "ff00", encoding: "hex", want: []byte{0xff, 0x00}},
		{name: "utf8", data: "héllo", encoding: "utf8", want: []byte("héllo")},
		{name: "utf-8", data: "abc", encoding: "utf-8", want: []byte("abc")},
		{name: "binary", data: "ÿ\u0000A", encoding: "binary", want: []byte{0xff, 0x00, 'A'}},
		{name: "latin1", data: "é", encoding: "latin1", want: []byte{0xe9}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := DecodePayload(test.data, test.encoding)
			if err != nil {
				t.Fatalf("DecodePayload: %v", err)
			}
			if !bytes.Equal(got, test.want) {
				t.Errorf("DecodePayload = %x, want %x", got, test.want)
			}
		})
	}
}

func TestDecodePayloadErrors(t *testing.T) {
	if _, err := DecodePayload("abc", "ucs2"); !errors.Is(err, ErrUnsupportedEncoding) {
		t.Errorf("unknown encoding: err = %v, want ErrUnsupportedEncoding", err)
	}
	if _, err := DecodePayload("!!!!", "base64"); err == nil {
		t.Error("expected error for invalid base64")
	}
	if _, err := DecodePayload("zz", "hex"); err == nil {
		t.Error("expected error for invalid hex")
	}
	if _, err := DecodePayload("Ā", "binary"); err == nil {
		t.Error("expected error for code point above U+00FF")
	}
}

func TestContentBytes(t *testing.T) {
	content := Content{Data: "QUJD", Encoding: "base64"}
	decoded, err := content.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if string(decoded) != "ABC" {
		t.Errorf("Bytes = %q, want ABC", decoded)
	}
}
