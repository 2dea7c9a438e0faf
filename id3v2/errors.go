package id3v2

import (
	"errors"
	"fmt"
)

// ErrNoHeader is returned when the data does not start with an ID3v2 header.
var ErrNoHeader = errors.New("no ID3v2 header")

// ErrEncryptionUnsupported is returned for frames carrying the encryption
// flag. Such frames are preserved as raw data but cannot be decoded.
var ErrEncryptionUnsupported = errors.New("encrypted frames are not supported")

// ErrBadSyncData is returned when unsynchronized data cannot be decoded.
var ErrBadSyncData = errors.New("invalid unsynchronized data")

// UnsupportedVersionError indicates a tag whose major version this package
// cannot parse.
type UnsupportedVersionError struct {
	Major    uint8
	Revision uint8
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("ID3v2.%d.%d is not supported", e.Major, e.Revision)
}

// MalformedHeaderError indicates a structurally invalid tag header.
type MalformedHeaderError struct {
	Reason string
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("malformed ID3v2 header: %s", e.Reason)
}

// JunkFrameError indicates a frame whose payload could not be decoded. The
// frame is dropped; the rest of the tag is unaffected.
type JunkFrameError struct {
	ID  string
	Err error
}

func (e *JunkFrameError) Error() string {
	return fmt.Sprintf("junk %s frame: %v", e.ID, e.Err)
}

func (e *JunkFrameError) Unwrap() error { return e.Err }

// SpecError indicates that a single field of a frame could not be read or
// written.
type SpecError struct {
	Field string
	Err   error
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *SpecError) Unwrap() error { return e.Err }

// FieldValueError indicates a value that is not acceptable for a frame field.
type FieldValueError struct {
	Frame string
	Field string
	Msg   string
}

func (e *FieldValueError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Frame, e.Field, e.Msg)
}
