package id3v2

import "fmt"

// Syncsafe integers store 7 payload bits per byte, big-endian, with the high
// bit of every byte clear so the encoded form never contains a false
// synchronization pattern. The 4-byte tag size field holds 28 payload bits.

// Syncsafe decodes data as a syncsafe integer. High bits are masked off, so
// it also tolerates values written by encoders that set them.
func Syncsafe(data []byte) uint32 {
	var v uint32
	for _, b := range data {
		v = v<<7 | uint32(b&0x7f)
	}
	return v
}

// ValidSyncsafe reports whether every byte of data has its high bit clear.
func ValidSyncsafe(data []byte) bool {
	for _, b := range data {
		if b&0x80 != 0 {
			return false
		}
	}
	return true
}

// PutSyncsafe encodes v as a syncsafe integer of the given byte width.
// It fails if v does not fit in width*7 bits.
func PutSyncsafe(v uint32, width int) ([]byte, error) {
	if width < 1 || width > 4 {
		return nil, fmt.Errorf("syncsafe width %d out of range", width)
	}
	if width < 4 && v>>(7*uint(width)) != 0 {
		return nil, fmt.Errorf("value %d does not fit in %d syncsafe bytes", v, width)
	}
	if width == 4 && v>>28 != 0 {
		return nil, fmt.Errorf("value %d exceeds 28 syncsafe bits", v)
	}
	out := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		out[i] = byte(v & 0x7f)
		v >>= 7
	}
	return out, nil
}

// beUint decodes a big-endian unsigned integer of up to 8 bytes.
func beUint(data []byte) (uint64, error) {
	if len(data) > 8 {
		return 0, fmt.Errorf("integer of %d bytes is too wide", len(data))
	}
	var v uint64
	for _, b := range data {
		v = v<<8 | uint64(b)
	}
	return v, nil
}

// bePutUint encodes v big-endian into exactly width bytes.
func bePutUint(v uint64, width int) []byte {
	out := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		out[i] = byte(v)
		v >>= 8
	}
	return out
}

// beMinimal encodes v big-endian in as few bytes as possible, but at least
// minWidth.
func beMinimal(v uint64, minWidth int) []byte {
	width := minWidth
	for width < 8 && v>>(8*uint(width)) != 0 {
		width++
	}
	return bePutUint(v, width)
}
