package id3v2

import (
	"bytes"
	"testing"
)

func TestDecodeBytes(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		enc     Encoding
		want    string
		wantErr bool
	}{
		{"latin1 ascii", []byte("Title"), EncodingLatin1, "Title", false},
		{"latin1 high bytes", []byte{0x4d, 0xfc, 0x6e}, EncodingLatin1, "Mün", false},
		{"utf16 le with bom", []byte{0xff, 0xfe, 0x41, 0x00}, EncodingUTF16, "A", false},
		{"utf16 be with bom", []byte{0xfe, 0xff, 0x00, 0x41}, EncodingUTF16, "A", false},
		{"utf16 missing bom", []byte{0x41, 0x00}, EncodingUTF16, "", true},
		{"utf16 odd length", []byte{0xff, 0xfe, 0x41}, EncodingUTF16, "", true},
		{"utf16 empty", nil, EncodingUTF16, "", false},
		{"utf16be", []byte{0x00, 0x41, 0x00, 0x42}, EncodingUTF16BE, "AB", false},
		{"utf8", []byte("h\xc3\xa9"), EncodingUTF8, "hé", false},
		{"utf8 invalid", []byte{0xff, 0xfe}, EncodingUTF8, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeBytes(tt.data, tt.enc)
			if (err != nil) != tt.wantErr {
				t.Fatalf("decodeBytes error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("decodeBytes = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeTextRoundtrip(t *testing.T) {
	for _, enc := range []Encoding{EncodingLatin1, EncodingUTF16, EncodingUTF16BE, EncodingUTF8} {
		t.Run(enc.String(), func(t *testing.T) {
			in := "Hello"
			data, err := encodeText(in, enc)
			if err != nil {
				t.Fatalf("encodeText: %v", err)
			}
			got, err := decodeBytes(data, enc)
			if err != nil {
				t.Fatalf("decodeBytes: %v", err)
			}
			if got != in {
				t.Errorf("roundtrip of %q came back as %q", in, got)
			}
		})
	}
}

func TestEncodeTextUTF16WritesBOM(t *testing.T) {
	data, err := encodeText("A", EncodingUTF16)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte{0xff, 0xfe}) {
		t.Errorf("UTF-16 output %v does not start with a little-endian BOM", data)
	}
}

func TestEncodeTextLatin1Unmappable(t *testing.T) {
	if _, err := encodeText("日本", EncodingLatin1); err == nil {
		t.Error("expected an error encoding CJK text as Latin-1")
	}
}

func TestTerminatorIndex(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		enc  Encoding
		want int
	}{
		{"latin1", []byte{0x41, 0x00, 0x42}, EncodingLatin1, 1},
		{"latin1 none", []byte{0x41, 0x42}, EncodingLatin1, -1},
		{"utf16 aligned", []byte{0x41, 0x00, 0x00, 0x00}, EncodingUTF16, 2},
		{"utf16 bom only", []byte{0xff, 0xfe, 0x00, 0x00}, EncodingUTF16, 2},
		{"utf16 unaligned zeros skipped", []byte{0x00, 0x41, 0x00, 0x42}, EncodingUTF16BE, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := terminatorIndex(tt.data, tt.enc); got != tt.want {
				t.Errorf("terminatorIndex(%v) = %d, want %d", tt.data, got, tt.want)
			}
		})
	}
}

func TestDecodeTerminatedLenient(t *testing.T) {
	// A missing terminator decodes the whole input.
	s, rest, err := decodeTerminated([]byte("Title"), EncodingLatin1)
	if err != nil {
		t.Fatal(err)
	}
	if s != "Title" || rest != nil {
		t.Errorf("got %q rest %v, want Title with empty rest", s, rest)
	}
}
