package id3v2

import (
	"encoding/binary"
	"errors"
	"sort"
	"strings"
)

// Tags is an ordered collection of frames, keyed by hash key. Frames that
// may legitimately repeat (comments in different languages, pictures with
// different descriptions) coexist under distinct keys; loading a duplicate
// merges it into the existing frame instead.
type Tags struct {
	order  []string
	frames map[string]*Frame

	// unknown holds raw header+payload bytes of frames with valid IDs the
	// registry doesn't know. They survive a rewrite of the same version.
	unknown        [][]byte
	unknownVersion byte

	registry *Registry
}

// NewTags returns an empty frame container.
func NewTags() *Tags {
	return &Tags{frames: make(map[string]*Frame)}
}

// Len returns the number of parsed frames.
func (t *Tags) Len() int { return len(t.order) }

// Get returns the frame stored under the exact hash key, e.g. "TIT2" or
// "COMM:description:eng".
func (t *Tags) Get(key string) *Frame { return t.frames[key] }

// GetAll returns all frames matching key: the exact hash key, or every
// frame whose key starts with key + ":".
func (t *Tags) GetAll(key string) []*Frame {
	if f, ok := t.frames[key]; ok {
		return []*Frame{f}
	}
	prefix := key + ":"
	var out []*Frame
	for _, k := range t.order {
		if strings.HasPrefix(k, prefix) {
			out = append(out, t.frames[k])
		}
	}
	return out
}

// DeleteAll removes all frames matching key, with the same matching rules
// as GetAll.
func (t *Tags) DeleteAll(key string) {
	prefix := key + ":"
	kept := t.order[:0]
	for _, k := range t.order {
		if k == key || strings.HasPrefix(k, prefix) {
			delete(t.frames, k)
			continue
		}
		kept = append(kept, k)
	}
	t.order = kept
}

// SetAll replaces all frames matching key with the given frames.
func (t *Tags) SetAll(key string, frames []*Frame) {
	t.DeleteAll(key)
	for _, f := range frames {
		t.set(f.HashKey(), f)
	}
}

// Add stores a frame, replacing any frame with the same hash key. v2.2
// frames are upgraded to their modern equivalent first; those without one
// are rejected.
func (t *Tags) Add(f *Frame) error {
	return t.add(f, true)
}

// Merge stores a frame the way loading does: a duplicate text frame has
// its values folded into the existing one, a duplicate picture is kept
// under a distinguished key, and v2.2 frames with no modern form are
// silently dropped.
func (t *Tags) Merge(f *Frame) {
	t.add(f, false)
}

func (t *Tags) add(f *Frame, strict bool) error {
	up := f.upgradeFrame()
	if up == nil {
		if strict {
			return errors.New(f.ID() + " frame has no modern equivalent")
		}
		return nil
	}
	f = up

	key := f.HashKey()
	if strict {
		t.set(key, f)
		return nil
	}
	if _, ok := t.frames[key]; !ok {
		t.set(key, f)
		return nil
	}
	for {
		merged := t.frames[key].mergeFrame(f)
		newKey := merged.HashKey()
		if newKey == key {
			t.set(key, merged)
			return nil
		}
		if _, ok := t.frames[newKey]; !ok {
			t.set(newKey, merged)
			return nil
		}
		key = newKey
	}
}

func (t *Tags) set(key string, f *Frame) {
	if _, ok := t.frames[key]; !ok {
		t.order = append(t.order, key)
	}
	t.frames[key] = f
}

func (t *Tags) delete(key string) {
	if _, ok := t.frames[key]; !ok {
		return
	}
	delete(t.frames, key)
	for i, k := range t.order {
		if k == key {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// Keys returns the hash keys of all frames, sorted.
func (t *Tags) Keys() []string {
	out := append([]string(nil), t.order...)
	sort.Strings(out)
	return out
}

// Frames returns all frames in insertion order.
func (t *Tags) Frames() []*Frame {
	out := make([]*Frame, len(t.order))
	for i, k := range t.order {
		out[i] = t.frames[k]
	}
	return out
}

// Clear removes all frames, including unknown ones.
func (t *Tags) Clear() {
	t.order = nil
	t.frames = make(map[string]*Frame)
	t.unknown = nil
	t.unknownVersion = 0
}

// Text returns the text values of the frame stored under key, or nil.
func (t *Tags) Text(key string) []string {
	if f := t.frames[key]; f != nil {
		return f.Text()
	}
	return nil
}

// UnknownFrames returns the raw bytes of frames that were preserved
// unparsed, one header+payload slice per frame.
func (t *Tags) UnknownFrames() [][]byte {
	return t.unknown
}

func (t *Tags) reg() *Registry {
	if t.registry != nil {
		return t.registry
	}
	return defaultRegistry
}

// parse reads the frame area of a tag body and returns the leftover bytes,
// which are padding in a well-formed tag. Junk frames are dropped,
// unknown-but-valid frames are preserved raw, and encrypted frames are
// kept raw since they can't be decoded.
func (t *Tags) parse(h *Header, data []byte) []byte {
	reg := t.reg()
	if h != nil && h.registry != nil {
		reg = h.registry
	}
	if h.Version.Less(V23) {
		return t.parse22(h, reg, data)
	}

	if h.Version.Less(V24) && h.Unsynch() {
		// v2.3 unsynchronization applies to the whole tag. Tolerate tags
		// whose flag is set but whose data was never unsynchronized.
		if dec, err := UnsynchDecode(data); err == nil {
			data = dec
		}
	}

	plainSize := true
	if h.Version.AtLeast(V24) {
		plainSize = determineSizeEncoding(data, reg)
	}

	for len(data) > 0 {
		if len(data) < 10 {
			break
		}
		id := string(data[:4])
		if id[0] == 0x00 {
			// Padding starts here.
			break
		}
		rawSize := binary.BigEndian.Uint32(data[4:8])
		size := rawSize
		if !plainSize {
			size = Syncsafe(data[4:8])
		}
		flags := binary.BigEndian.Uint16(data[8:10])
		if size == 0 {
			data = data[10:]
			continue
		}
		var frameData []byte
		if int(size) > len(data)-10 {
			frameData = data[10:]
			data = nil
		} else {
			frameData = data[10 : 10+size]
			data = data[10+size:]
		}

		def, known := reg.lookupModern(id)
		if !known {
			if isValidFrameID(id) {
				t.keepUnknown(h, id, frameData, flags, plainSize)
			}
			continue
		}
		f, err := def.fromData(h, flags, frameData)
		switch {
		case err == nil:
			t.add(f, false)
		case errors.Is(err, ErrEncryptionUnsupported):
			t.keepUnknown(h, id, frameData, flags, plainSize)
		default:
			// Junk frame; drop it.
		}
	}
	return data
}

func (t *Tags) parse22(h *Header, reg *Registry, data []byte) []byte {
	if h.Unsynch() {
		if dec, err := UnsynchDecode(data); err == nil {
			data = dec
		}
	}
	for len(data) > 0 {
		if len(data) < 6 {
			break
		}
		id := string(data[:3])
		if id[0] == 0x00 {
			break
		}
		size := uint32(data[3])<<16 | uint32(data[4])<<8 | uint32(data[5])
		if size == 0 {
			data = data[6:]
			continue
		}
		var frameData []byte
		if int(size) > len(data)-6 {
			frameData = data[6:]
			data = nil
		} else {
			frameData = data[6 : 6+size]
			data = data[6+size:]
		}

		def, known := reg.lookupV22(id)
		if !known {
			if isValidFrameID(id) {
				raw := make([]byte, 0, 6+len(frameData))
				raw = append(raw, id...)
				raw = append(raw, byte(size>>16), byte(size>>8), byte(size))
				raw = append(raw, frameData...)
				t.unknown = append(t.unknown, raw)
				t.unknownVersion = h.Version.Major
			}
			continue
		}
		f, err := def.fromData(h, 0, frameData)
		if err == nil {
			t.add(f, false)
		}
	}
	return data
}

func (t *Tags) keepUnknown(h *Header, id string, frameData []byte, flags uint16, plainSize bool) {
	raw := make([]byte, 0, 10+len(frameData))
	raw = append(raw, id...)
	if plainSize && h.Version.Less(V24) {
		raw = binary.BigEndian.AppendUint32(raw, uint32(len(frameData)))
	} else {
		enc, err := PutSyncsafe(uint32(len(frameData)), 4)
		if err != nil {
			return
		}
		raw = append(raw, enc...)
	}
	raw = binary.BigEndian.AppendUint16(raw, flags)
	raw = append(raw, frameData...)
	t.unknown = append(t.unknown, raw)
	t.unknownVersion = h.Version.Major
}

// determineSizeEncoding decides whether a v2.4 frame area uses plain
// big-endian frame sizes instead of the syncsafe sizes the format requires.
// Buggy writers produced both, so the frame headers are walked both ways
// and whichever interpretation lands on more known frame IDs wins. It
// returns true for plain sizes.
func determineSizeEncoding(data []byte, reg *Registry) bool {
	var empty [10]byte

	walk := func(syncsafe bool) (found int, off int) {
		o := 0
		for o < len(data)-10 {
			part := data[o : o+10]
			if bytes10Equal(part, empty[:]) {
				return found, -((len(data) - o) % 10)
			}
			size := binary.BigEndian.Uint32(part[4:8])
			if syncsafe {
				size = Syncsafe(part[4:8])
			}
			o += 10 + int(size)
			id := part[:4]
			if !isASCII(id) {
				continue
			}
			if _, ok := reg.lookupModern(string(id)); ok {
				found++
			}
		}
		return found, o - len(data)
	}

	asbpi, bpioff := walk(true)
	asint, intoff := walk(false)

	// Prefer plain ints when they match more frames, or when they tie and
	// the syncsafe walk overshoots the buffer while the plain walk doesn't.
	return asint > asbpi || (asint == asbpi && bpioff >= 1 && intoff <= 1)
}

func bytes10Equal(a, b []byte) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
