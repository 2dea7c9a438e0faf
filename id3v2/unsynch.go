package id3v2

// Unsynchronization escapes the byte patterns an MPEG decoder could mistake
// for a frame sync: a 0x00 is stuffed after every 0xFF that is followed by
// 0x00 or a byte >= 0xE0, and after a trailing 0xFF.

// UnsynchDecode reverses unsynchronization. It fails on byte sequences that
// a conforming encoder could never have produced.
func UnsynchDecode(data []byte) ([]byte, error) {
	out := make([]byte, 0, len(data))
	safe := true
	for _, b := range data {
		if safe {
			out = append(out, b)
			safe = b != 0xff
			continue
		}
		if b >= 0xe0 {
			return nil, ErrBadSyncData
		}
		if b != 0x00 {
			out = append(out, b)
		}
		safe = true
	}
	if !safe {
		return nil, ErrBadSyncData
	}
	return out, nil
}

// UnsynchEncode applies unsynchronization to data.
func UnsynchEncode(data []byte) []byte {
	out := make([]byte, 0, len(data))
	safe := true
	for _, b := range data {
		if safe {
			out = append(out, b)
			if b == 0xff {
				safe = false
			}
		} else if b == 0x00 || b >= 0xe0 {
			out = append(out, 0x00, b)
			safe = b != 0xff
		} else {
			out = append(out, b)
			safe = true
		}
	}
	if !safe {
		out = append(out, 0x00)
	}
	return out
}
