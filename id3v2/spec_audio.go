package id3v2

import (
	"encoding/binary"
	"errors"
	"math"
)

// SyncedText is one entry of a synchronized lyrics frame: a text fragment
// and the time it applies, in the unit given by the frame's format field.
type SyncedText struct {
	Text string
	Time uint32
}

// TimedEvent is one entry of an event timing frame.
type TimedEvent struct {
	Type byte
	Time uint32
}

// Adjustment is one point of an equalisation curve: a frequency in Hz and a
// gain in dB.
type Adjustment struct {
	Frequency float64
	Gain      float64
}

// Channel types used by the relative volume adjustment frame.
const (
	ChannelOther       byte = 0
	ChannelMaster      byte = 1
	ChannelFrontRight  byte = 2
	ChannelFrontLeft   byte = 3
	ChannelBackRight   byte = 4
	ChannelBackLeft    byte = 5
	ChannelFrontCentre byte = 6
	ChannelBackCentre  byte = 7
	ChannelSubwoofer   byte = 8
)

// volumeAdjSpec is a dB gain stored as a signed 16-bit fixed point value
// with 9 fraction bits.
type volumeAdjSpec struct{ baseSpec }

func newVolumeAdjSpec(name string, def float64) volumeAdjSpec {
	return volumeAdjSpec{baseSpec{name: name, def: def}}
}

func (s volumeAdjSpec) Read(_ *Header, _ *Frame, data []byte) (any, []byte, error) {
	if len(data) < 2 {
		return nil, nil, s.errShort()
	}
	v := int16(binary.BigEndian.Uint16(data[:2]))
	return float64(v) / 512.0, data[2:], nil
}

func (s volumeAdjSpec) Write(_ *SaveConfig, _ *Frame, v any) ([]byte, error) {
	gain, ok := v.(float64)
	if !ok {
		return nil, s.errValue(v, "not a float")
	}
	n := math.Round(gain * 512)
	if n < math.MinInt16 || n > math.MaxInt16 {
		return nil, s.errValue(v, "not in range")
	}
	out := make([]byte, 2)
	binary.BigEndian.PutUint16(out, uint16(int16(n)))
	return out, nil
}

func (s volumeAdjSpec) Validate(f *Frame, v any) (any, error) {
	switch x := v.(type) {
	case float64:
		if _, err := s.Write(nil, f, x); err != nil {
			return nil, err
		}
		return x, nil
	case int:
		return s.Validate(f, float64(x))
	}
	return nil, s.errValue(v, "not a float")
}

// volumePeakSpec is the variable-width peak amplitude of the relative
// volume adjustment frame. Values are normalized to [0, 1].
type volumePeakSpec struct{ baseSpec }

func newVolumePeakSpec(name string, def float64) volumePeakSpec {
	return volumePeakSpec{baseSpec{name: name, def: def}}
}

func (s volumePeakSpec) Read(_ *Header, _ *Frame, data []byte) (any, []byte, error) {
	if len(data) < 1 {
		return nil, nil, s.errShort()
	}
	bits := int(data[0])
	volBytes := (bits + 7) >> 3
	if volBytes > 4 {
		volBytes = 4
	}
	if volBytes+1 > len(data) {
		return nil, nil, s.errShort()
	}
	shift := uint(((8-(bits&7))&7) + (4-volBytes)*8)
	var peak uint64
	for i := 1; i <= volBytes; i++ {
		peak = peak*256 + uint64(data[i])
	}
	peak <<= shift
	return float64(peak) / float64(1<<31-1), data[1+volBytes:], nil
}

func (s volumePeakSpec) Write(_ *SaveConfig, _ *Frame, v any) ([]byte, error) {
	peak, ok := v.(float64)
	if !ok {
		return nil, s.errValue(v, "not a float")
	}
	n := math.Round(peak * 32768)
	if n < 0 || n > math.MaxUint16 {
		return nil, s.errValue(v, "not in range")
	}
	// Always write 16 bits for sanity.
	out := []byte{0x10, 0, 0}
	binary.BigEndian.PutUint16(out[1:], uint16(n))
	return out, nil
}

func (s volumePeakSpec) Validate(f *Frame, v any) (any, error) {
	switch x := v.(type) {
	case float64:
		if _, err := s.Write(nil, f, x); err != nil {
			return nil, err
		}
		return x, nil
	case int:
		return s.Validate(f, float64(x))
	}
	return nil, s.errValue(v, "not a float")
}

// volumeAdjustmentsSpec is the (frequency, gain) pair list of the EQU2
// frame. Duplicate frequencies collapse to the last one seen; the list is
// kept sorted by frequency.
type volumeAdjustmentsSpec struct{ baseSpec }

func newVolumeAdjustmentsSpec(name string) volumeAdjustmentsSpec {
	return volumeAdjustmentsSpec{baseSpec{name: name, def: []Adjustment(nil)}}
}

func (s volumeAdjustmentsSpec) Read(_ *Header, _ *Frame, data []byte) (any, []byte, error) {
	seen := map[float64]float64{}
	for len(data) >= 4 {
		freq := float64(binary.BigEndian.Uint16(data[:2])) / 2.0
		gain := float64(int16(binary.BigEndian.Uint16(data[2:4]))) / 512.0
		seen[freq] = gain
		data = data[4:]
	}
	out := make([]Adjustment, 0, len(seen))
	for freq, gain := range seen {
		out = append(out, Adjustment{Frequency: freq, Gain: gain})
	}
	sortAdjustments(out)
	return out, data, nil
}

func (s volumeAdjustmentsSpec) Write(_ *SaveConfig, _ *Frame, v any) ([]byte, error) {
	list, ok := v.([]Adjustment)
	if !ok {
		return nil, s.errValue(v, "not an adjustment list")
	}
	sorted := append([]Adjustment(nil), list...)
	sortAdjustments(sorted)
	out := make([]byte, 0, 4*len(sorted))
	for _, a := range sorted {
		freq := int(a.Frequency * 2)
		gain := int(a.Gain * 512)
		if freq < 0 || freq > math.MaxUint16 || gain < math.MinInt16 || gain > math.MaxInt16 {
			return nil, s.errValue(a, "not in range")
		}
		var buf [4]byte
		binary.BigEndian.PutUint16(buf[:2], uint16(freq))
		binary.BigEndian.PutUint16(buf[2:], uint16(int16(gain)))
		out = append(out, buf[:]...)
	}
	return out, nil
}

func (s volumeAdjustmentsSpec) Validate(_ *Frame, v any) (any, error) {
	list, ok := v.([]Adjustment)
	if !ok {
		return nil, s.errValue(v, "not an adjustment list")
	}
	return list, nil
}

func sortAdjustments(list []Adjustment) {
	for i := 1; i < len(list); i++ {
		for j := i; j > 0 && list[j].Frequency < list[j-1].Frequency; j-- {
			list[j], list[j-1] = list[j-1], list[j]
		}
	}
}

// rvaSpec is the legacy RVAD/RVA adjustment list: an increment/decrement
// flag byte, a bits-per-value byte and a run of unsigned values whose sign
// comes from the flag bits.
type rvaSpec struct {
	baseSpec
	maxValues int
}

// rvaSignBits maps flag bit positions to the value indexes they sign.
var rvaSignBits = []int{0, 1, 4, 5, 8, 10}

func newRVASpec(name string, stereoOnly bool) rvaSpec {
	max := 12
	if stereoOnly {
		max = 4
	}
	return rvaSpec{baseSpec{name: name, def: []int64{0, 0}}, max}
}

func (s rvaSpec) Read(_ *Header, _ *Frame, data []byte) (any, []byte, error) {
	if len(data) < 2 {
		return nil, nil, s.errShort()
	}
	flags := data[0]
	bits := int(data[1])
	if bits == 0 {
		return nil, nil, s.errValue(bits, "bits used has to be > 0")
	}
	bytesPerValue := (bits + 7) / 8
	data = data[2:]

	var values []int64
	for len(data) >= bytesPerValue && len(values) < s.maxValues {
		v, err := beUint(data[:bytesPerValue])
		if err != nil {
			return nil, nil, &SpecError{Field: s.name, Err: err}
		}
		values = append(values, int64(v))
		data = data[bytesPerValue:]
	}
	if len(values) < 2 {
		return nil, nil, s.errValue(values, "first two values not optional")
	}
	for bit, idx := range rvaSignBits {
		if idx >= len(values) {
			break
		}
		if flags&(1<<uint(bit)) == 0 {
			values[idx] = -values[idx]
		}
	}
	return values, data, nil
}

func (s rvaSpec) Write(_ *SaveConfig, _ *Frame, v any) ([]byte, error) {
	orig, ok := v.([]int64)
	if !ok {
		return nil, s.errValue(v, "not an int64 list")
	}
	if len(orig) < 2 || len(orig) > s.maxValues {
		return nil, s.errValue(v,
			"at least two volume change values required")
	}
	values := append([]int64(nil), orig...)
	var flags byte
	for bit, idx := range rvaSignBits {
		if idx >= len(values) {
			break
		}
		if values[idx] < 0 {
			values[idx] = -values[idx]
		} else {
			flags |= 1 << uint(bit)
		}
	}

	encoded := make([][]byte, len(values))
	maxBytes := 2
	for i, val := range values {
		encoded[i] = beMinimal(uint64(val), 2)
		if len(encoded[i]) > maxBytes {
			maxBytes = len(encoded[i])
		}
	}
	out := []byte{flags, byte(maxBytes * 8)}
	for _, e := range encoded {
		padded := make([]byte, maxBytes)
		copy(padded, e)
		out = append(out, padded...)
	}
	return out, nil
}

func (s rvaSpec) Validate(_ *Frame, v any) (any, error) {
	list, ok := v.([]int64)
	if !ok {
		return nil, s.errValue(v, "not an int64 list")
	}
	if len(list) < 2 || len(list) > s.maxValues {
		return nil, s.errValue(v, "needs between 2 and max values")
	}
	return list, nil
}

// syncTextSpec is the (text, time) list of the SYLT frame. Every text
// fragment must be terminated; times are 4-byte big-endian.
type syncTextSpec struct{ baseSpec }

func newSyncTextSpec(name string) syncTextSpec {
	return syncTextSpec{baseSpec{name: name, def: []SyncedText(nil)}}
}

func (s syncTextSpec) Read(_ *Header, f *Frame, data []byte) (any, []byte, error) {
	enc := frameEncoding(f)
	var texts []SyncedText
	for len(data) > 0 {
		i := terminatorIndex(data, enc)
		if i < 0 {
			return nil, nil, &SpecError{Field: s.name, Err: errors.New("unterminated text")}
		}
		value, err := decodeBytes(data[:i], enc)
		if err != nil {
			return nil, nil, &SpecError{Field: s.name, Err: err}
		}
		data = data[i+enc.TerminatorSize():]
		if len(data) < 4 {
			return nil, nil, s.errShort()
		}
		texts = append(texts, SyncedText{
			Text: value,
			Time: binary.BigEndian.Uint32(data[:4]),
		})
		data = data[4:]
	}
	return texts, nil, nil
}

func (s syncTextSpec) Write(_ *SaveConfig, f *Frame, v any) ([]byte, error) {
	list, ok := v.([]SyncedText)
	if !ok {
		return nil, s.errValue(v, "not a synced text list")
	}
	enc := frameEncoding(f)
	var out []byte
	for _, st := range list {
		text, err := encodeText(st.Text, enc)
		if err != nil {
			return nil, &SpecError{Field: s.name, Err: err}
		}
		out = append(out, text...)
		out = append(out, make([]byte, enc.TerminatorSize())...)
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], st.Time)
		out = append(out, buf[:]...)
	}
	return out, nil
}

func (s syncTextSpec) Validate(_ *Frame, v any) (any, error) {
	list, ok := v.([]SyncedText)
	if !ok {
		return nil, s.errValue(v, "not a synced text list")
	}
	return list, nil
}

// keyEventSpec is the event list of the ETCO frame: 5-byte records of event
// type and time.
type keyEventSpec struct{ baseSpec }

func newKeyEventSpec(name string) keyEventSpec {
	return keyEventSpec{baseSpec{name: name, def: []TimedEvent(nil)}}
}

func (s keyEventSpec) Read(_ *Header, _ *Frame, data []byte) (any, []byte, error) {
	var events []TimedEvent
	for len(data) >= 5 {
		events = append(events, TimedEvent{
			Type: data[0],
			Time: binary.BigEndian.Uint32(data[1:5]),
		})
		data = data[5:]
	}
	return events, data, nil
}

func (s keyEventSpec) Write(_ *SaveConfig, _ *Frame, v any) ([]byte, error) {
	list, ok := v.([]TimedEvent)
	if !ok {
		return nil, s.errValue(v, "not an event list")
	}
	out := make([]byte, 0, 5*len(list))
	for _, e := range list {
		var buf [5]byte
		buf[0] = e.Type
		binary.BigEndian.PutUint32(buf[1:], e.Time)
		out = append(out, buf[:]...)
	}
	return out, nil
}

func (s keyEventSpec) Validate(_ *Frame, v any) (any, error) {
	list, ok := v.([]TimedEvent)
	if !ok {
		return nil, s.errValue(v, "not an event list")
	}
	return list, nil
}

// aspiIndexSpec is the seek point index of the ASPI frame. The width of
// each index comes from the frame's b field, the count from N.
type aspiIndexSpec struct{ baseSpec }

func newASPIIndexSpec(name string) aspiIndexSpec {
	return aspiIndexSpec{baseSpec{name: name, def: []uint16(nil)}}
}

func (s aspiIndexSpec) frameParams(f *Frame) (size, count int, err error) {
	b, _ := f.values["b"].(byte)
	n, _ := f.values["N"].(uint32)
	switch b {
	case 16:
		size = 2
	case 8:
		size = 1
	default:
		return 0, 0, s.errValue(b, "bit count must be 8 or 16")
	}
	return size, int(n), nil
}

func (s aspiIndexSpec) Read(_ *Header, f *Frame, data []byte) (any, []byte, error) {
	size, count, err := s.frameParams(f)
	if err != nil {
		return nil, nil, err
	}
	if len(data) < size*count {
		return nil, nil, s.errShort()
	}
	indexes := make([]uint16, count)
	for i := 0; i < count; i++ {
		if size == 2 {
			indexes[i] = binary.BigEndian.Uint16(data[i*2:])
		} else {
			indexes[i] = uint16(data[i])
		}
	}
	return indexes, data[size*count:], nil
}

func (s aspiIndexSpec) Write(_ *SaveConfig, f *Frame, v any) ([]byte, error) {
	list, ok := v.([]uint16)
	if !ok {
		return nil, s.errValue(v, "not an index list")
	}
	size, count, err := s.frameParams(f)
	if err != nil {
		return nil, err
	}
	if len(list) != count {
		return nil, s.errValue(v, "index count does not match N")
	}
	out := make([]byte, 0, size*count)
	for _, idx := range list {
		if size == 2 {
			var buf [2]byte
			binary.BigEndian.PutUint16(buf[:], idx)
			out = append(out, buf[:]...)
		} else {
			if idx > 0xff {
				return nil, s.errValue(idx, "does not fit in 8 bits")
			}
			out = append(out, byte(idx))
		}
	}
	return out, nil
}

func (s aspiIndexSpec) Validate(_ *Frame, v any) (any, error) {
	list, ok := v.([]uint16)
	if !ok {
		return nil, s.errValue(v, "not an index list")
	}
	return list, nil
}
