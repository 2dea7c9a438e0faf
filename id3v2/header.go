package id3v2

import (
	"encoding/binary"
	"io"
)

// Tag header flag bits.
const (
	headerUnsynch      byte = 0x80
	headerExtended     byte = 0x40
	headerExperimental byte = 0x20
	headerFooter       byte = 0x10
)

// Header is the fixed 10-byte header of an ID3v2 tag.
type Header struct {
	Version Version
	Flags   byte
	// Size is the tag body size in bytes, the header itself excluded.
	Size uint32
	// ExtData is the raw extended header payload, if one was present.
	ExtData []byte

	registry *Registry
}

// Unsynch reports whether the tag-level unsynchronization flag is set.
func (h *Header) Unsynch() bool { return h.Flags&headerUnsynch != 0 }

// Extended reports whether the tag carries an extended header.
func (h *Header) Extended() bool { return h.Flags&headerExtended != 0 }

// Experimental reports whether the experimental flag is set.
func (h *Header) Experimental() bool { return h.Flags&headerExperimental != 0 }

// Footer reports whether the tag is followed by a 10-byte footer.
func (h *Header) Footer() bool { return h.Flags&headerFooter != 0 }

// ParseHeader reads and validates a 10-byte tag header. In strict mode,
// flag bits undefined for the tag's version are an error; otherwise they
// are ignored, as most readers do. A non-syncsafe size field is always an
// error since the tag's extent cannot be trusted.
func ParseHeader(r io.Reader, strict bool) (*Header, error) {
	var raw [10]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrNoHeader
		}
		return nil, err
	}
	if raw[0] != 'I' || raw[1] != 'D' || raw[2] != '3' {
		return nil, ErrNoHeader
	}
	h := &Header{
		Version: Version{Major: raw[3], Revision: raw[4]},
		Flags:   raw[5],
	}
	if h.Version.Major < 2 || h.Version.Major > 4 {
		return nil, &UnsupportedVersionError{Major: raw[3], Revision: raw[4]}
	}
	if !ValidSyncsafe(raw[6:10]) {
		return nil, &MalformedHeaderError{Reason: "size is not syncsafe"}
	}
	h.Size = Syncsafe(raw[6:10])

	if strict {
		var undefined byte
		switch {
		case h.Version.AtLeast(V24):
			undefined = 0x0f
		case h.Version.AtLeast(V23):
			undefined = 0x1f
		default:
			undefined = 0x3f
		}
		if h.Flags&undefined != 0 {
			return nil, &MalformedHeaderError{Reason: "undefined flag bits set"}
		}
	}
	return h, nil
}

// parseExtended consumes the extended header from the start of the tag
// body and returns the remaining frame data. Some taggers set the extended
// header flag without writing one; when the body starts with a known frame
// ID the flag is cleared instead.
func (h *Header) parseExtended(data []byte) ([]byte, error) {
	if !h.Extended() {
		return data, nil
	}
	if len(data) >= 4 {
		if _, ok := h.reg().lookupModern(string(data[:4])); ok {
			h.Flags &^= headerExtended
			return data, nil
		}
	}
	if len(data) < 4 {
		return nil, &MalformedHeaderError{Reason: "truncated extended header"}
	}
	var extSize uint32
	if h.Version.AtLeast(V24) {
		// The v2.4 extended header size includes its own size field.
		extSize = Syncsafe(data[:4])
		if extSize < 4 {
			return nil, &MalformedHeaderError{Reason: "invalid extended header size"}
		}
		extSize -= 4
	} else {
		extSize = binary.BigEndian.Uint32(data[:4])
	}
	data = data[4:]
	if int(extSize) > len(data) {
		return nil, &MalformedHeaderError{Reason: "extended header larger than tag"}
	}
	h.ExtData = append([]byte(nil), data[:extSize]...)
	return data[extSize:], nil
}

func (h *Header) reg() *Registry {
	if h.registry != nil {
		return h.registry
	}
	return defaultRegistry
}

// Parse reads a complete tag (header plus body) from r and returns the
// header, the parsed frames and the number of padding bytes that followed
// them.
func Parse(r io.Reader, strict bool) (*Header, *Tags, int, error) {
	return ParseWithRegistry(r, strict, nil)
}

// ParseWithRegistry is Parse with a custom frame registry. A nil registry
// means the default one.
func ParseWithRegistry(r io.Reader, strict bool, reg *Registry) (*Header, *Tags, int, error) {
	h, err := ParseHeader(r, strict)
	if err != nil {
		return nil, nil, 0, err
	}
	h.registry = reg
	body := make([]byte, h.Size)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, nil, 0, &MalformedHeaderError{Reason: "tag body shorter than declared size"}
	}
	body, err = h.parseExtended(body)
	if err != nil {
		return nil, nil, 0, err
	}
	t := NewTags()
	t.registry = h.registry
	padding := t.parse(h, body)
	return h, t, len(padding), nil
}
