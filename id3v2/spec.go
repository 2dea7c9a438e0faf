package id3v2

import (
	"errors"
	"fmt"
)

// A Spec describes one typed field of a frame payload: how to read it from
// raw bytes, how to serialize it, and what values it accepts. Specs are
// stateless; the same instance is shared by every frame definition that
// contains the field.
//
// Read and Write may consult fields of the frame that appear earlier in the
// definition (most commonly the text encoding), which is why both receive
// the frame being assembled.
type Spec interface {
	Name() string
	Default() any
	// HandleNoData reports whether the spec accepts empty input, for the
	// benefit of truncated frames.
	HandleNoData() bool
	Read(h *Header, f *Frame, data []byte) (any, []byte, error)
	Write(cfg *SaveConfig, f *Frame, v any) ([]byte, error)
	Validate(f *Frame, v any) (any, error)
	// validate23 narrows a value to what an ID3v2.3 tag can carry.
	validate23(f *Frame, v any, sep string) any
}

type baseSpec struct {
	name string
	def  any
}

func (s baseSpec) Name() string                            { return s.name }
func (s baseSpec) Default() any                            { return s.def }
func (s baseSpec) HandleNoData() bool                      { return false }
func (s baseSpec) validate23(f *Frame, v any, _ string) any { return v }

func (s baseSpec) errShort() error {
	return &SpecError{Field: s.name, Err: errors.New("not enough data")}
}

func (s baseSpec) errValue(v any, msg string) error {
	return &SpecError{Field: s.name, Err: fmt.Errorf("%v: %s", v, msg)}
}

// byteSpec is a single raw byte.
type byteSpec struct{ baseSpec }

func newByteSpec(name string, def byte) byteSpec {
	return byteSpec{baseSpec{name: name, def: def}}
}

func (s byteSpec) Read(_ *Header, _ *Frame, data []byte) (any, []byte, error) {
	if len(data) < 1 {
		return nil, nil, s.errShort()
	}
	return data[0], data[1:], nil
}

func (s byteSpec) Write(_ *SaveConfig, _ *Frame, v any) ([]byte, error) {
	b, ok := v.(byte)
	if !ok {
		return nil, s.errValue(v, "not a byte")
	}
	return []byte{b}, nil
}

func (s byteSpec) Validate(_ *Frame, v any) (any, error) {
	switch x := v.(type) {
	case byte:
		return x, nil
	case int:
		if x < 0 || x > 0xff {
			return nil, s.errValue(v, "out of byte range")
		}
		return byte(x), nil
	}
	return nil, s.errValue(v, "not a byte")
}

// encodingSpec is the text encoding byte that leads most frames.
type encodingSpec struct{ baseSpec }

func newEncodingSpec(name string) encodingSpec {
	return encodingSpec{baseSpec{name: name, def: EncodingUTF16}}
}

func (s encodingSpec) Read(_ *Header, _ *Frame, data []byte) (any, []byte, error) {
	if len(data) < 1 {
		return nil, nil, s.errShort()
	}
	enc := Encoding(data[0])
	if !enc.valid() {
		return nil, nil, s.errValue(data[0], "invalid encoding")
	}
	return enc, data[1:], nil
}

func (s encodingSpec) Write(_ *SaveConfig, _ *Frame, v any) ([]byte, error) {
	enc, ok := v.(Encoding)
	if !ok || !enc.valid() {
		return nil, s.errValue(v, "invalid encoding")
	}
	return []byte{byte(enc)}, nil
}

func (s encodingSpec) Validate(_ *Frame, v any) (any, error) {
	switch x := v.(type) {
	case Encoding:
		if x.valid() {
			return x, nil
		}
	case byte:
		if Encoding(x).valid() {
			return Encoding(x), nil
		}
	case int:
		if x >= 0 && Encoding(x).valid() {
			return Encoding(x), nil
		}
	}
	return nil, s.errValue(v, "invalid encoding")
}

// ID3v2.3 only knows Latin-1 and UTF-16 with BOM.
func (s encodingSpec) validate23(_ *Frame, v any, _ string) any {
	if enc, ok := v.(Encoding); ok && enc > EncodingUTF16 {
		return EncodingUTF16
	}
	return v
}

// stringSpec is a fixed-length ASCII field, such as a language code.
type stringSpec struct {
	baseSpec
	length int
}

func newStringSpec(name string, length int, def string) stringSpec {
	return stringSpec{baseSpec{name: name, def: def}, length}
}

func (s stringSpec) Read(_ *Header, _ *Frame, data []byte) (any, []byte, error) {
	if len(data) < s.length {
		return nil, nil, s.errShort()
	}
	chunk := data[:s.length]
	if !isASCII(chunk) {
		return nil, nil, s.errValue(chunk, "not ascii")
	}
	return string(chunk), data[s.length:], nil
}

// Write pads short values with NULs and truncates long ones, matching how
// permissive taggers fill these fields.
func (s stringSpec) Write(_ *SaveConfig, _ *Frame, v any) ([]byte, error) {
	str, ok := v.(string)
	if !ok {
		return nil, s.errValue(v, "not a string")
	}
	out := make([]byte, s.length)
	copy(out, str)
	return out, nil
}

func (s stringSpec) Validate(_ *Frame, v any) (any, error) {
	str, ok := v.(string)
	if !ok {
		return nil, s.errValue(v, "not a string")
	}
	if !isASCII([]byte(str)) {
		return nil, s.errValue(v, "not ascii")
	}
	if len(str) != s.length {
		return nil, s.errValue(v, fmt.Sprintf("must be exactly %d bytes", s.length))
	}
	return str, nil
}

func isASCII(data []byte) bool {
	for _, b := range data {
		if b > 0x7f {
			return false
		}
	}
	return true
}

// frameIDSpec is a 3- or 4-character frame identifier, as carried by LINK.
type frameIDSpec struct{ stringSpec }

func newFrameIDSpec(name string, length int) frameIDSpec {
	return frameIDSpec{newStringSpec(name, length, "XXXX"[:length])}
}

func (s frameIDSpec) Validate(f *Frame, v any) (any, error) {
	str, ok := v.(string)
	if !ok || !isValidFrameID(str) || len(str) != s.length {
		return nil, s.errValue(v, "not a valid frame ID")
	}
	return str, nil
}

// sizedIntSpec is a fixed-width big-endian unsigned integer.
type sizedIntSpec struct {
	baseSpec
	width int
}

func newSizedIntSpec(name string, width int, def uint32) sizedIntSpec {
	return sizedIntSpec{baseSpec{name: name, def: def}, width}
}

func (s sizedIntSpec) Read(_ *Header, _ *Frame, data []byte) (any, []byte, error) {
	if len(data) < s.width {
		return nil, nil, s.errShort()
	}
	v, err := beUint(data[:s.width])
	if err != nil {
		return nil, nil, &SpecError{Field: s.name, Err: err}
	}
	return uint32(v), data[s.width:], nil
}

func (s sizedIntSpec) Write(_ *SaveConfig, _ *Frame, v any) ([]byte, error) {
	n, ok := v.(uint32)
	if !ok {
		return nil, s.errValue(v, "not a uint32")
	}
	if s.width < 4 && uint64(n)>>(8*uint(s.width)) != 0 {
		return nil, s.errValue(v, fmt.Sprintf("does not fit in %d bytes", s.width))
	}
	return bePutUint(uint64(n), s.width), nil
}

func (s sizedIntSpec) Validate(_ *Frame, v any) (any, error) {
	switch x := v.(type) {
	case uint32:
		return x, nil
	case int:
		if x < 0 {
			return nil, s.errValue(v, "negative")
		}
		return uint32(x), nil
	}
	return nil, s.errValue(v, "not an integer")
}

// intSpec is a variable-width big-endian counter that consumes the rest of
// the frame, as used by PCNT and POPM.
type intSpec struct{ baseSpec }

func newIntSpec(name string) intSpec {
	return intSpec{baseSpec{name: name, def: uint64(0)}}
}

func (s intSpec) Read(_ *Header, _ *Frame, data []byte) (any, []byte, error) {
	v, err := beUint(data)
	if err != nil {
		return nil, nil, &SpecError{Field: s.name, Err: err}
	}
	return v, nil, nil
}

func (s intSpec) Write(_ *SaveConfig, _ *Frame, v any) ([]byte, error) {
	n, ok := v.(uint64)
	if !ok {
		return nil, s.errValue(v, "not a uint64")
	}
	return beMinimal(n, 4), nil
}

func (s intSpec) Validate(_ *Frame, v any) (any, error) {
	switch x := v.(type) {
	case uint64:
		return x, nil
	case int:
		if x < 0 {
			return nil, s.errValue(v, "negative")
		}
		return uint64(x), nil
	}
	return nil, s.errValue(v, "not an integer")
}

// binarySpec consumes the rest of the frame as raw bytes.
type binarySpec struct{ baseSpec }

func newBinarySpec(name string) binarySpec {
	return binarySpec{baseSpec{name: name, def: []byte(nil)}}
}

func (s binarySpec) HandleNoData() bool { return true }

func (s binarySpec) Read(_ *Header, _ *Frame, data []byte) (any, []byte, error) {
	return append([]byte(nil), data...), nil, nil
}

func (s binarySpec) Write(_ *SaveConfig, _ *Frame, v any) ([]byte, error) {
	b, ok := v.([]byte)
	if !ok {
		return nil, s.errValue(v, "not a byte slice")
	}
	return b, nil
}

func (s binarySpec) Validate(_ *Frame, v any) (any, error) {
	switch x := v.(type) {
	case []byte:
		return x, nil
	case string:
		return []byte(x), nil
	case nil:
		return []byte(nil), nil
	}
	return nil, s.errValue(v, "not a byte slice")
}
