package id3kit

import "github.com/simonhull/id3kit/id3v2"

// Option configures behavior when opening files.
//
// Options use the functional options pattern:
//
//	file, err := id3kit.Open("song.mp3",
//	    id3kit.WithStrictParsing(),
//	    id3kit.WithoutID3v1(),
//	)
type Option func(*openOptions)

type translateMode int

const (
	translateV24 translateMode = iota
	translateV23
	translateNone
)

// openOptions holds configuration for opening files.
type openOptions struct {
	strictParsing bool          // Fail on structural oddities instead of tolerating them
	skipID3v1     bool          // Never look at the ID3v1 trailer
	translate     translateMode // Which version frames are normalized to after loading
	registry      *id3v2.Registry
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{
		translate: translateV24,
	}
}

// WithStrictParsing rejects tags with structural oddities that are
// normally tolerated, such as undefined header flag bits.
//
// The default is to read what can be read and report oddities in
// File.Warnings, which matches how most players behave.
func WithStrictParsing() Option {
	return func(o *openOptions) {
		o.strictParsing = true
	}
}

// WithoutID3v1 disables the ID3v1 trailer fallback.
//
// By default, a file without an ID3v2 tag is checked for a 128-byte
// ID3v1 trailer and its fields are exposed as frames.
func WithoutID3v1() Option {
	return func(o *openOptions) {
		o.skipID3v1 = true
	}
}

// WithoutTranslation keeps loaded frames exactly as stored.
//
// By default, deprecated frames are converted to their ID3v2.4
// equivalents after loading (TYER becomes TDRC and so on). With this
// option a v2.3 tag keeps its TYER frame.
func WithoutTranslation() Option {
	return func(o *openOptions) {
		o.translate = translateNone
	}
}

// WithV23Translation normalizes loaded frames to ID3v2.3 instead of
// ID3v2.4. Useful when the tag will be saved as v2.3 for older players.
func WithV23Translation() Option {
	return func(o *openOptions) {
		o.translate = translateV23
	}
}

// WithKnownFrames parses frames through a custom registry instead of the
// default one. Build one with id3v2.DefaultRegistry().Clone().
func WithKnownFrames(reg *id3v2.Registry) Option {
	return func(o *openOptions) {
		o.registry = reg
	}
}
