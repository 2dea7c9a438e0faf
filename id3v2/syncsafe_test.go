package id3v2

import (
	"bytes"
	"testing"
)

func TestSyncsafe(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want uint32
	}{
		{"zero", []byte{0x00, 0x00, 0x00, 0x00}, 0},
		{"small", []byte{0x00, 0x00, 0x00, 0x7f}, 127},
		{"carry across bytes", []byte{0x00, 0x00, 0x0a, 0x00}, 1280},
		{"max", []byte{0x7f, 0x7f, 0x7f, 0x7f}, 0x0fffffff},
		{"high bits masked", []byte{0x80, 0x80, 0x8a, 0x80}, 1280},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Syncsafe(tt.data); got != tt.want {
				t.Errorf("Syncsafe(%v) = %d, want %d", tt.data, got, tt.want)
			}
		})
	}
}

func TestValidSyncsafe(t *testing.T) {
	if !ValidSyncsafe([]byte{0x00, 0x00, 0x0a, 0x00}) {
		t.Error("ValidSyncsafe rejected clean bytes")
	}
	if ValidSyncsafe([]byte{0x00, 0x80, 0x00, 0x00}) {
		t.Error("ValidSyncsafe accepted a set high bit")
	}
}

func TestPutSyncsafe(t *testing.T) {
	tests := []struct {
		name    string
		v       uint32
		width   int
		want    []byte
		wantErr bool
	}{
		{"zero", 0, 4, []byte{0, 0, 0, 0}, false},
		{"1280", 1280, 4, []byte{0x00, 0x00, 0x0a, 0x00}, false},
		{"max 28 bits", 0x0fffffff, 4, []byte{0x7f, 0x7f, 0x7f, 0x7f}, false},
		{"too large", 0x10000000, 4, nil, true},
		{"narrow width", 127, 1, []byte{0x7f}, false},
		{"narrow overflow", 128, 1, nil, true},
		{"bad width", 1, 5, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PutSyncsafe(tt.v, tt.width)
			if (err != nil) != tt.wantErr {
				t.Fatalf("PutSyncsafe(%d, %d) error = %v, wantErr %v", tt.v, tt.width, err, tt.wantErr)
			}
			if !tt.wantErr && !bytes.Equal(got, tt.want) {
				t.Errorf("PutSyncsafe(%d, %d) = %v, want %v", tt.v, tt.width, got, tt.want)
			}
		})
	}
}

func TestPutSyncsafeRoundtrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 127, 128, 1280, 0xdead, 0x0fffffff} {
		enc, err := PutSyncsafe(v, 4)
		if err != nil {
			t.Fatalf("PutSyncsafe(%d): %v", v, err)
		}
		if got := Syncsafe(enc); got != v {
			t.Errorf("roundtrip of %d came back as %d", v, got)
		}
	}
}

func TestBeMinimal(t *testing.T) {
	tests := []struct {
		v        uint64
		minWidth int
		want     []byte
	}{
		{0, 4, []byte{0, 0, 0, 0}},
		{0x0102, 2, []byte{0x01, 0x02}},
		{0x0102, 4, []byte{0, 0, 0x01, 0x02}},
		{0x01_00000000, 4, []byte{0x01, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		if got := beMinimal(tt.v, tt.minWidth); !bytes.Equal(got, tt.want) {
			t.Errorf("beMinimal(%#x, %d) = %v, want %v", tt.v, tt.minWidth, got, tt.want)
		}
	}
}
