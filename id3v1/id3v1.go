// Package id3v1 reads and writes the fixed 128-byte ID3v1.1 trailer.
package id3v1

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// TagSize is the size of an ID3v1 trailer.
const TagSize = 128

// GenreNone marks an unset genre byte.
const GenreNone byte = 255

// Tag is a decoded ID3v1.1 trailer.
type Tag struct {
	Title   string
	Artist  string
	Album   string
	Year    string
	Comment string
	// Track is the v1.1 track number; 0 means unset.
	Track byte
	// Genre is an index into the v1 genre table; GenreNone means unset.
	Genre byte
}

// Parse decodes a trailer from the last bytes of a file. The slice may be
// longer than the tag; parsing starts at the first "TAG" marker. Trailers
// between 124 and 128 bytes are accepted because some writers shortened
// the year field.
func Parse(data []byte) (*Tag, bool) {
	i := bytes.Index(data, []byte("TAG"))
	if i < 0 {
		return nil, false
	}
	data = data[i:]
	if len(data) < TagSize-4 || len(data) > TagSize {
		return nil, false
	}
	yearLen := len(data) - 124

	t := &Tag{
		Title:   fix(data[3:33]),
		Artist:  fix(data[33:63]),
		Album:   fix(data[63:93]),
		Year:    fix(data[93 : 93+yearLen]),
		Comment: fix(data[93+yearLen : 122+yearLen]),
		Genre:   data[123+yearLen],
	}
	// A v1.0 comment padded with spaces puts 0x20 where v1.1 keeps the
	// track number; only trust the track byte when the separator is NUL.
	track := data[122+yearLen]
	if track != 0 && (track != 32 || data[len(data)-3] == 0) {
		t.Track = track
	}
	return t, true
}

// Find reads the end of a file and decodes a trailer if one is present.
// It returns the tag and the offset where the trailer starts.
func Find(r io.ReaderAt, size int64) (*Tag, int64, bool) {
	if size < TagSize {
		return nil, 0, false
	}
	buf := make([]byte, TagSize)
	if _, err := r.ReadAt(buf, size-TagSize); err != nil {
		return nil, 0, false
	}
	t, ok := Parse(buf)
	if !ok {
		return nil, 0, false
	}
	return t, size - TagSize, true
}

// Render serializes the tag as a 128-byte v1.1 trailer. Text fields are
// transliterated to Latin-1 and truncated to fit.
func (t *Tag) Render() []byte {
	out := make([]byte, 0, TagSize)
	out = append(out, "TAG"...)
	out = appendPadded(out, t.Title, 30)
	out = appendPadded(out, t.Artist, 30)
	out = appendPadded(out, t.Album, 30)
	out = appendPadded(out, t.Year, 4)
	out = appendPadded(out, t.Comment, 28)
	out = append(out, 0, t.Track, t.Genre)
	return out
}

func appendPadded(out []byte, s string, width int) []byte {
	enc, err := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder()).Bytes([]byte(s))
	if err != nil {
		enc = nil
	}
	if len(enc) > width {
		enc = enc[:width]
	}
	out = append(out, enc...)
	for i := len(enc); i < width; i++ {
		out = append(out, 0)
	}
	return out
}

func fix(data []byte) string {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	dec, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(dec))
}
