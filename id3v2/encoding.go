package id3v2

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding is a text encoding identifier as stored in frame payloads.
type Encoding byte

const (
	// EncodingLatin1 is ISO-8859-1.
	EncodingLatin1 Encoding = 0
	// EncodingUTF16 is UTF-16 with a mandatory byte order mark.
	EncodingUTF16 Encoding = 1
	// EncodingUTF16BE is big-endian UTF-16 without a byte order mark.
	// Only valid in v2.4 tags.
	EncodingUTF16BE Encoding = 2
	// EncodingUTF8 is UTF-8. Only valid in v2.4 tags.
	EncodingUTF8 Encoding = 3
)

func (e Encoding) valid() bool { return e <= EncodingUTF8 }

// TerminatorSize returns the width in bytes of the NUL terminator for
// strings in this encoding.
func (e Encoding) TerminatorSize() int {
	if e == EncodingUTF16 || e == EncodingUTF16BE {
		return 2
	}
	return 1
}

func (e Encoding) String() string {
	switch e {
	case EncodingLatin1:
		return "Latin-1"
	case EncodingUTF16:
		return "UTF-16"
	case EncodingUTF16BE:
		return "UTF-16BE"
	case EncodingUTF8:
		return "UTF-8"
	}
	return fmt.Sprintf("Encoding(%d)", byte(e))
}

var (
	utf16BOM   = unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)
	utf16BE    = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	errOddData = errors.New("odd number of UTF-16 bytes")
	errBadUTF8 = errors.New("invalid UTF-8 data")
)

// decodeBytes decodes raw bytes in the given encoding. UTF-16 requires a
// byte order mark and an even byte count; UTF-16BE requires an even byte
// count; UTF-8 must be valid. Latin-1 never fails.
func decodeBytes(data []byte, enc Encoding) (string, error) {
	switch enc {
	case EncodingLatin1:
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(out), nil
	case EncodingUTF16:
		if len(data) == 0 {
			return "", nil
		}
		if len(data)%2 != 0 {
			return "", errOddData
		}
		out, err := utf16BOM.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(out), nil
	case EncodingUTF16BE:
		if len(data)%2 != 0 {
			return "", errOddData
		}
		out, err := utf16BE.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(out), nil
	case EncodingUTF8:
		if !utf8.Valid(data) {
			return "", errBadUTF8
		}
		return string(data), nil
	}
	return "", fmt.Errorf("unknown encoding %d", byte(enc))
}

// encodeText encodes s in the given encoding, without a terminator.
// UTF-16 output is little-endian with a leading byte order mark.
func encodeText(s string, enc Encoding) ([]byte, error) {
	switch enc {
	case EncodingLatin1:
		return charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	case EncodingUTF16:
		return utf16BOM.NewEncoder().Bytes([]byte(s))
	case EncodingUTF16BE:
		return utf16BE.NewEncoder().Bytes([]byte(s))
	case EncodingUTF8:
		return []byte(s), nil
	}
	return nil, fmt.Errorf("unknown encoding %d", byte(enc))
}

// terminatorIndex finds the NUL terminator for the encoding, honoring
// 2-byte alignment for UTF-16 variants. Returns -1 when unterminated.
func terminatorIndex(data []byte, enc Encoding) int {
	if enc.TerminatorSize() == 1 {
		return bytes.IndexByte(data, 0x00)
	}
	for i := 0; i+1 < len(data); i += 2 {
		if data[i] == 0x00 && data[i+1] == 0x00 {
			return i
		}
	}
	return -1
}

// decodeTerminated decodes one NUL-terminated string from the front of data
// and returns the remainder. A missing terminator is tolerated: the whole
// input is decoded and the remainder is empty.
func decodeTerminated(data []byte, enc Encoding) (string, []byte, error) {
	i := terminatorIndex(data, enc)
	if i < 0 {
		s, err := decodeBytes(data, enc)
		return s, nil, err
	}
	s, err := decodeBytes(data[:i], enc)
	if err != nil {
		return "", nil, err
	}
	return s, data[i+enc.TerminatorSize():], nil
}

// textFixups yields the byte sequences to attempt when decoding a text
// value: the data as-is, then with repairs for the termination and
// byte-order-mark damage common in old tags.
func textFixups(data []byte, enc Encoding) [][]byte {
	out := [][]byte{data}
	appendNul := func(d []byte) []byte {
		fixed := make([]byte, len(d)+1)
		copy(fixed, d)
		return fixed
	}
	switch enc {
	case EncodingUTF16BE:
		out = append(out, appendNul(data))
	case EncodingUTF16:
		bom := []byte{0xff, 0xfe}
		out = append(out,
			appendNul(data),
			append(append([]byte{}, bom...), data...),
			append(append([]byte{}, bom...), appendNul(data)...),
		)
	}
	return out
}

func allZero(data []byte) bool {
	for _, b := range data {
		if b != 0x00 {
			return false
		}
	}
	return true
}
