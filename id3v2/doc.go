// Package id3v2 implements reading and writing of ID3v2.2, v2.3 and v2.4
// tags.
//
// The package models a tag as an ordered collection of frames (Tags). Each
// frame kind is described by a FrameDef listing the typed fields that make up
// its payload; the definitions live in a Registry, and the default registry
// covers the full standard frame catalogue plus common informal extensions.
//
// Parsing is deliberately forgiving: real-world tags are full of
// out-of-spec data, so individual malformed frames are dropped rather than
// failing the whole tag, frames with unrecognized but well-formed IDs are
// preserved as raw bytes, and several historical encoder bugs (plain-integer
// frame sizes in v2.4 tags, missing text terminators, bogus extended-header
// flags) are detected and worked around.
package id3v2
