package id3kit

import "github.com/simonhull/id3kit/id3v2"

// SaveOption configures behavior when saving tags.
type SaveOption func(*saveOptions)

// V1Policy controls what happens to the ID3v1 trailer on save.
type V1Policy int

const (
	// V1Remove deletes an existing ID3v1 trailer.
	V1Remove V1Policy = iota
	// V1Update rewrites an existing trailer from the current frames but
	// never creates one. This is the default.
	V1Update
	// V1Create writes a trailer whether one existed or not.
	V1Create
)

// saveOptions holds configuration for saving.
type saveOptions struct {
	version  id3v2.Version
	v23Sep   string
	v1       V1Policy
	padding  id3v2.PaddingFunc
	compress bool
}

// defaultSaveOptions returns the default configuration.
func defaultSaveOptions() *saveOptions {
	return &saveOptions{
		version: id3v2.V24,
		v23Sep:  "/",
		v1:      V1Update,
	}
}

// WithV2Version selects the tag version to write, id3v2.V23 or
// id3v2.V24 (the default). Frames are converted to the target version
// automatically; frames with no equivalent are dropped.
func WithV2Version(v id3v2.Version) SaveOption {
	return func(o *saveOptions) {
		o.version = v
	}
}

// WithV23Separator sets the string joining multiple text values when
// writing ID3v2.3, which has no multi-value frames. The default is "/".
// An empty separator keeps the values NUL-separated, which many readers
// accept even in v2.3.
func WithV23Separator(sep string) SaveOption {
	return func(o *saveOptions) {
		o.v23Sep = sep
	}
}

// WithV1Policy controls the ID3v1 trailer: remove it, update it if
// present (the default), or create it.
func WithV1Policy(p V1Policy) SaveOption {
	return func(o *saveOptions) {
		o.v1 = p
	}
}

// WithPadding installs a custom padding policy. The function receives the
// current space situation and returns the number of padding bytes to
// write after the frames. The default keeps existing padding when it is
// in a sane range.
func WithPadding(fn id3v2.PaddingFunc) SaveOption {
	return func(o *saveOptions) {
		o.padding = fn
	}
}

// WithFrameCompression zlib-compresses frame payloads over 2 KiB when
// writing ID3v2.4. Off by default; several mainstream players fail to
// read compressed frames.
func WithFrameCompression() SaveOption {
	return func(o *saveOptions) {
		o.compress = true
	}
}

// DeleteOption configures behavior when deleting tags.
type DeleteOption func(*deleteOptions)

type deleteOptions struct {
	keepV1 bool
	keepV2 bool
}

// KeepID3v1 leaves the ID3v1 trailer in place when deleting.
func KeepID3v1() DeleteOption {
	return func(o *deleteOptions) {
		o.keepV1 = true
	}
}

// KeepID3v2 leaves the ID3v2 tag in place when deleting.
func KeepID3v2() DeleteOption {
	return func(o *deleteOptions) {
		o.keepV2 = true
	}
}
