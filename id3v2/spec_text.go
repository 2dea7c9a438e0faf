package id3v2

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// latin1Spec is a NUL-terminated Latin-1 string, used for fields that the
// format pins to Latin-1 regardless of the frame encoding (URLs, MIME
// types, owner identifiers).
type latin1Spec struct{ baseSpec }

func newLatin1Spec(name string) latin1Spec {
	return latin1Spec{baseSpec{name: name, def: ""}}
}

func (s latin1Spec) Read(_ *Header, _ *Frame, data []byte) (any, []byte, error) {
	rest := []byte(nil)
	if i := bytes.IndexByte(data, 0x00); i >= 0 {
		data, rest = data[:i], data[i+1:]
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return nil, nil, &SpecError{Field: s.name, Err: err}
	}
	return string(out), rest, nil
}

func (s latin1Spec) Write(_ *SaveConfig, _ *Frame, v any) ([]byte, error) {
	str, ok := v.(string)
	if !ok {
		return nil, s.errValue(v, "not a string")
	}
	out, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(str))
	if err != nil {
		return nil, &SpecError{Field: s.name, Err: err}
	}
	return append(out, 0x00), nil
}

func (s latin1Spec) Validate(_ *Frame, v any) (any, error) {
	str, ok := v.(string)
	if !ok {
		return nil, s.errValue(v, "not a string")
	}
	return str, nil
}

// latin1ListSpec is a count byte followed by that many NUL-terminated
// Latin-1 strings (the CTOC child element list).
type latin1ListSpec struct{ baseSpec }

func newLatin1ListSpec(name string) latin1ListSpec {
	return latin1ListSpec{baseSpec{name: name, def: []string(nil)}}
}

func (s latin1ListSpec) Read(h *Header, f *Frame, data []byte) (any, []byte, error) {
	if len(data) < 1 {
		return nil, nil, s.errShort()
	}
	count := int(data[0])
	data = data[1:]
	sub := newLatin1Spec(s.name)
	entries := make([]string, 0, count)
	for i := 0; i < count; i++ {
		v, rest, err := sub.Read(h, f, data)
		if err != nil {
			return nil, nil, err
		}
		entries = append(entries, v.(string))
		data = rest
	}
	return entries, data, nil
}

func (s latin1ListSpec) Write(cfg *SaveConfig, f *Frame, v any) ([]byte, error) {
	list, ok := v.([]string)
	if !ok {
		return nil, s.errValue(v, "not a string list")
	}
	if len(list) > 0xff {
		return nil, s.errValue(v, "too many entries")
	}
	out := []byte{byte(len(list))}
	sub := newLatin1Spec(s.name)
	for _, e := range list {
		b, err := sub.Write(cfg, f, e)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

func (s latin1ListSpec) Validate(_ *Frame, v any) (any, error) {
	list, ok := v.([]string)
	if !ok {
		return nil, s.errValue(v, "not a string list")
	}
	return list, nil
}

// encodedTextSpec is a NUL-terminated string in the frame's text encoding.
// Reading tries a series of repairs for the termination and byte order mark
// damage left behind by old taggers.
type encodedTextSpec struct{ baseSpec }

func newEncodedTextSpec(name string) encodedTextSpec {
	return encodedTextSpec{baseSpec{name: name, def: ""}}
}

func (s encodedTextSpec) Read(h *Header, f *Frame, data []byte) (any, []byte, error) {
	enc := frameEncoding(f)
	var firstErr error
	for _, d := range textFixups(data, enc) {
		v, rest, err := decodeTerminated(d, enc)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		// Pre-2.4 tags don't support multiple values; zero padding after
		// the first value is padding, not a run of empty strings.
		if h != nil && h.Version.Less(V24) && allZero(rest) {
			rest = nil
		}
		return v, rest, nil
	}
	return nil, nil, &SpecError{Field: s.name, Err: firstErr}
}

func (s encodedTextSpec) Write(_ *SaveConfig, f *Frame, v any) ([]byte, error) {
	str, ok := v.(string)
	if !ok {
		return nil, s.errValue(v, "not a string")
	}
	enc := frameEncoding(f)
	out, err := encodeText(str, enc)
	if err != nil {
		return nil, &SpecError{Field: s.name, Err: err}
	}
	return append(out, make([]byte, enc.TerminatorSize())...), nil
}

func (s encodedTextSpec) Validate(_ *Frame, v any) (any, error) {
	str, ok := v.(string)
	if !ok {
		return nil, s.errValue(v, "not a string")
	}
	return str, nil
}

// timeStampSpec is an encodedTextSpec whose value is a parsed Timestamp.
type timeStampSpec struct{ encodedTextSpec }

func newTimeStampSpec(name string) timeStampSpec {
	return timeStampSpec{newEncodedTextSpec(name)}
}

func (s timeStampSpec) Default() any { return Timestamp{} }

func (s timeStampSpec) Read(h *Header, f *Frame, data []byte) (any, []byte, error) {
	v, rest, err := s.encodedTextSpec.Read(h, f, data)
	if err != nil {
		return nil, nil, err
	}
	return ParseTimestamp(v.(string)), rest, nil
}

func (s timeStampSpec) Write(cfg *SaveConfig, f *Frame, v any) ([]byte, error) {
	ts, ok := v.(Timestamp)
	if !ok {
		return nil, s.errValue(v, "not a timestamp")
	}
	return s.encodedTextSpec.Write(cfg, f, ts.wire())
}

func (s timeStampSpec) Validate(_ *Frame, v any) (any, error) {
	switch x := v.(type) {
	case Timestamp:
		return x, nil
	case string:
		return ParseTimestamp(x), nil
	}
	return nil, s.errValue(v, "not a timestamp")
}

// textListSpec reads encoded strings until the payload is exhausted. The
// separator is used when a caller supplies a single joined string.
type textListSpec struct {
	baseSpec
	sub encodedTextSpec
	sep string
}

func newTextListSpec(name, sep string) textListSpec {
	return textListSpec{baseSpec{name: name, def: []string(nil)}, newEncodedTextSpec(name), sep}
}

func (s textListSpec) Read(h *Header, f *Frame, data []byte) (any, []byte, error) {
	var values []string
	for len(data) > 0 {
		v, rest, err := s.sub.Read(h, f, data)
		if err != nil {
			return nil, nil, err
		}
		values = append(values, v.(string))
		data = rest
	}
	return values, nil, nil
}

func (s textListSpec) Write(cfg *SaveConfig, f *Frame, v any) ([]byte, error) {
	list, ok := v.([]string)
	if !ok {
		return nil, s.errValue(v, "not a string list")
	}
	var out []byte
	for _, e := range list {
		b, err := s.sub.Write(cfg, f, e)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

func (s textListSpec) Validate(_ *Frame, v any) (any, error) {
	switch x := v.(type) {
	case []string:
		return x, nil
	case string:
		if s.sep != "" {
			return strings.Split(x, s.sep), nil
		}
		return []string{x}, nil
	}
	return nil, s.errValue(v, "not a string list")
}

func (s textListSpec) validate23(f *Frame, v any, sep string) any {
	list, ok := v.([]string)
	if !ok || sep == "" {
		return v
	}
	return []string{strings.Join(list, sep)}
}

// timestampListSpec reads timestamps until the payload is exhausted.
type timestampListSpec struct {
	baseSpec
	sub timeStampSpec
}

func newTimestampListSpec(name string) timestampListSpec {
	return timestampListSpec{baseSpec{name: name, def: []Timestamp(nil)}, newTimeStampSpec(name)}
}

func (s timestampListSpec) Read(h *Header, f *Frame, data []byte) (any, []byte, error) {
	var values []Timestamp
	for len(data) > 0 {
		v, rest, err := s.sub.Read(h, f, data)
		if err != nil {
			return nil, nil, err
		}
		values = append(values, v.(Timestamp))
		data = rest
	}
	return values, nil, nil
}

func (s timestampListSpec) Write(cfg *SaveConfig, f *Frame, v any) ([]byte, error) {
	list, ok := v.([]Timestamp)
	if !ok {
		return nil, s.errValue(v, "not a timestamp list")
	}
	var out []byte
	for _, ts := range list {
		b, err := s.sub.Write(cfg, f, ts)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

func (s timestampListSpec) Validate(f *Frame, v any) (any, error) {
	switch x := v.(type) {
	case []Timestamp:
		return x, nil
	case Timestamp:
		return []Timestamp{x}, nil
	case []string:
		out := make([]Timestamp, len(x))
		for i, e := range x {
			out[i] = ParseTimestamp(e)
		}
		return out, nil
	case string:
		var out []Timestamp
		for _, e := range strings.Split(x, ",") {
			out = append(out, ParseTimestamp(e))
		}
		return out, nil
	}
	return nil, s.errValue(v, "not a timestamp list")
}

// Timestamps are not representable in v2.3 frames; translation to TYER and
// friends happens in UpdateToV23, not here.
func (s timestampListSpec) validate23(_ *Frame, v any, _ string) any { return v }

// pairedListSpec reads (involvement, person) string pairs until the payload
// is exhausted.
type pairedListSpec struct {
	baseSpec
	sub encodedTextSpec
}

func newPairedListSpec(name string) pairedListSpec {
	return pairedListSpec{baseSpec{name: name, def: [][2]string(nil)}, newEncodedTextSpec(name)}
}

func (s pairedListSpec) Read(h *Header, f *Frame, data []byte) (any, []byte, error) {
	var values [][2]string
	for len(data) > 0 {
		var pair [2]string
		for i := 0; i < 2; i++ {
			v, rest, err := s.sub.Read(h, f, data)
			if err != nil {
				return nil, nil, err
			}
			pair[i] = v.(string)
			data = rest
		}
		values = append(values, pair)
	}
	return values, nil, nil
}

func (s pairedListSpec) Write(cfg *SaveConfig, f *Frame, v any) ([]byte, error) {
	list, ok := v.([][2]string)
	if !ok {
		return nil, s.errValue(v, "not a pair list")
	}
	var out []byte
	for _, pair := range list {
		for i := 0; i < 2; i++ {
			b, err := s.sub.Write(cfg, f, pair[i])
			if err != nil {
				return nil, err
			}
			out = append(out, b...)
		}
	}
	return out, nil
}

func (s pairedListSpec) Validate(_ *Frame, v any) (any, error) {
	list, ok := v.([][2]string)
	if !ok {
		return nil, s.errValue(v, "not a pair list")
	}
	return list, nil
}

func frameEncoding(f *Frame) Encoding {
	if f != nil {
		if v, ok := f.values["encoding"].(Encoding); ok {
			return v
		}
	}
	return EncodingLatin1
}

