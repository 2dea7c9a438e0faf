package id3v2

import (
	"bytes"
	"testing"
)

func TestUnsynchDecode(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    []byte
		wantErr bool
	}{
		{"no escapes", []byte{0x01, 0x02, 0x03}, []byte{0x01, 0x02, 0x03}, false},
		{"stuffed zero removed", []byte{0xff, 0x00, 0x01}, []byte{0xff, 0x01}, false},
		{"stuffed before high byte", []byte{0xff, 0x00, 0xe0}, []byte{0xff, 0xe0}, false},
		{"double stuffing", []byte{0xff, 0x00, 0x00}, []byte{0xff, 0x00}, false},
		{"false sync", []byte{0xff, 0xe0}, nil, true},
		{"trailing ff", []byte{0x01, 0xff}, nil, true},
		{"empty", nil, []byte{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UnsynchDecode(tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnsynchDecode(%v) error = %v, wantErr %v", tt.data, err, tt.wantErr)
			}
			if !tt.wantErr && !bytes.Equal(got, tt.want) {
				t.Errorf("UnsynchDecode(%v) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}

func TestUnsynchEncode(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want []byte
	}{
		{"no escapes needed", []byte{0x01, 0x02}, []byte{0x01, 0x02}},
		{"ff before zero", []byte{0xff, 0x00}, []byte{0xff, 0x00, 0x00}},
		{"ff before high byte", []byte{0xff, 0xe5}, []byte{0xff, 0x00, 0xe5}},
		{"ff before low byte", []byte{0xff, 0x10}, []byte{0xff, 0x10}},
		{"trailing ff", []byte{0x01, 0xff}, []byte{0x01, 0xff, 0x00}},
		{"ff run", []byte{0xff, 0xff}, []byte{0xff, 0x00, 0xff, 0x00}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UnsynchEncode(tt.data); !bytes.Equal(got, tt.want) {
				t.Errorf("UnsynchEncode(%v) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}

func TestUnsynchRoundtrip(t *testing.T) {
	inputs := [][]byte{
		{0xff, 0xfb, 0x90, 0x00, 0xff, 0xff, 0xff},
		{0x00, 0xff, 0x00, 0xff},
		{},
	}
	for _, in := range inputs {
		enc := UnsynchEncode(in)
		dec, err := UnsynchDecode(enc)
		if err != nil {
			t.Fatalf("decode(encode(%v)): %v", in, err)
		}
		if !bytes.Equal(dec, in) {
			t.Errorf("roundtrip of %v came back as %v", in, dec)
		}
	}
}
