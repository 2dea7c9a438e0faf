package id3kit

import (
	"errors"
	"fmt"

	"github.com/simonhull/id3kit/id3v2"
)

// ErrNoTag indicates that a file carries neither an ID3v2 header nor an
// ID3v1 trailer.
var ErrNoTag = errors.New("no ID3 tag found")

// Error wraps a failure with the operation and file it occurred on.
type Error struct {
	Op   string // "open", "save", "delete"
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// UnsupportedVersionError is an alias to id3v2.UnsupportedVersionError,
// re-exported so callers need not import the subpackage for errors.As.
type UnsupportedVersionError = id3v2.UnsupportedVersionError

// MalformedHeaderError is an alias to id3v2.MalformedHeaderError.
type MalformedHeaderError = id3v2.MalformedHeaderError

// Warning describes a non-fatal issue encountered while parsing.
type Warning struct {
	// Stage names the parsing phase that produced the warning.
	Stage string

	// Message is a human-readable description.
	Message string
}
