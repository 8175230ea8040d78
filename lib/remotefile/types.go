// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package remotefile

import (
	"fmt"
	"math"

	"github.com/bureau-foundation/remotefile/lib/codec"
)

// OperationFetchBinaryContent is the operation name the host handler
// is registered under.
const OperationFetchBinaryContent = "fetchBinaryContent"

// StatusOK is the only status code that denotes success.
const StatusOK = 200

// FileType hints how the host should treat the content.
type FileType string

const (
	FileTypeBinary FileType = "binary"
	FileTypeVideo  FileType = "video"
	FileTypeImage  FileType = "image"
)

// Valid reports whether t is one of the known file types.
func (t FileType) Valid() bool {
	switch t {
	case FileTypeBinary, FileTypeVideo, FileTypeImage:
		return true
	}
	return false
}

// ParseFileType converts a string to a FileType.
func ParseFileType(value string) (FileType, error) {
	fileType := FileType(value)
	if !fileType.Valid() {
		return "", fmt.Errorf("%w: unknown file type %q (want binary, video, or image)", ErrInvalidRequest, value)
	}
	return fileType, nil
}

// ContentRequest identifies the content to fetch. URI is required;
// every other field is optional and nil means "not provided".
type ContentRequest struct {
	URI        string
	MaxSize    *uint64
	ForceCache *bool
	NFTID      *string
	Type       *FileType
	DataHash   *string
}

// FetchOptions is the argument of the fetchBinaryContent operation as
// it crosses the bridge. The keys are the ones the host handler reads.
type FetchOptions struct {
	URL        string    `cbor:"url"`
	MaxSize    *uint64   `cbor:"maxSize,omitempty"`
	ForceCache *bool     `cbor:"forceCache,omitempty"`
	NFTID      *string   `cbor:"nftId,omitempty"`
	Type       *FileType `cbor:"type,omitempty"`
	DataHash   *string   `cbor:"dataHash,omitempty"`
}

// options copies the request into its wire form. Pointers are copied
// as-is so absence survives the trip.
func (r ContentRequest) options() FetchOptions {
	return FetchOptions{
		URL:        r.URI,
		MaxSize:    r.MaxSize,
		ForceCache: r.ForceCache,
		NFTID:      r.NFTID,
		Type:       r.Type,
		DataHash:   r.DataHash,
	}
}

// ContentResponse is the host's answer to fetchBinaryContent.
type ContentResponse struct {
	Data       string     `cbor:"data"`
	StatusCode int        `cbor:"statusCode"`
	Encoding   string     `cbor:"encoding"`
	Error      *HostError `cbor:"error"`
}

// Content is the result of a successful fetch: the payload as text in
// the scheme named by Encoding.
type Content struct {
	Data     string `json:"data"`
	Encoding string `json:"encoding"`
}

// Bytes decodes Data according to Encoding.
func (c Content) Bytes() ([]byte, error) {
	return DecodePayload(c.Data, c.Encoding)
}

// HostError is an error reported by the host in a response's error
// field. Its shape is up to the host: Fields holds the decoded map when
// the host sent one, Value holds anything else. Message is taken from
// the "message" key, or is the value itself when the host sent a bare
// string.
type HostError struct {
	Message string
	Fields  map[string]any
	Value   any

	// falsy marks a false, zero, or empty-string error value, which the
	// host uses to mean "no error".
	falsy bool
}

// NewHostError returns a HostError carrying only a message, as a host
// handler would construct it.
func NewHostError(message string) *HostError {
	return &HostError{
		Message: message,
		Fields:  map[string]any{"message": message},
	}
}

func (e *HostError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Fields != nil {
		return fmt.Sprintf("host error: %v", e.Fields)
	}
	return fmt.Sprintf("host error: %v", e.Value)
}

// MarshalCBOR encodes the error in the shape it was received in.
func (e *HostError) MarshalCBOR() ([]byte, error) {
	switch {
	case e.Fields != nil:
		return codec.Marshal(e.Fields)
	case e.Value != nil:
		return codec.Marshal(e.Value)
	default:
		return codec.Marshal(map[string]any{"message": e.Message})
	}
}

// UnmarshalCBOR accepts any CBOR value. A CBOR null never reaches this
// method; it leaves the *HostError nil.
func (e *HostError) UnmarshalCBOR(data []byte) error {
	var value any
	if err := codec.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("decoding host error: %w", err)
	}

	*e = HostError{}
	switch typed := value.(type) {
	case map[string]any:
		e.Fields = typed
		if message, ok := typed["message"].(string); ok {
			e.Message = message
		}
	case string:
		e.Value = typed
		e.Message = typed
		e.falsy = typed == ""
	case bool:
		e.Value = typed
		e.falsy = !typed
	case uint64:
		e.Value = typed
		e.falsy = typed == 0
	case int64:
		e.Value = typed
		e.falsy = typed == 0
	case float64:
		e.Value = typed
		e.falsy = typed == 0 || math.IsNaN(typed)
	default:
		e.Value = typed
	}
	return nil
}

// reported reports whether the error field carries an actual error.
func (e *HostError) reported() bool {
	return e != nil && !e.falsy
}
