package id3v2

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zlib"
)

// Frame header flags, ID3v2.3 layout.
const (
	flag23AlterTag  uint16 = 0x8000
	flag23AlterFile uint16 = 0x4000
	flag23ReadOnly  uint16 = 0x2000
	flag23Compress  uint16 = 0x0080
	flag23Encrypt   uint16 = 0x0040
	flag23Group     uint16 = 0x0020
)

// Frame header flags, ID3v2.4 layout.
const (
	flag24AlterTag  uint16 = 0x4000
	flag24AlterFile uint16 = 0x2000
	flag24ReadOnly  uint16 = 0x1000
	flag24Group     uint16 = 0x0040
	flag24Compress  uint16 = 0x0008
	flag24Encrypt   uint16 = 0x0004
	flag24Unsynch   uint16 = 0x0002
	flag24DataLen   uint16 = 0x0001
)

// FrameKind groups frames with shared payload shape and merge behavior.
type FrameKind int

const (
	KindOther FrameKind = iota
	KindText
	KindTimestampText
	KindPairedText
	KindURL
	KindBinary
)

// FrameDef describes one frame ID: the ordered fields of its payload, how
// duplicate frames are keyed and merged, and (for v2.2 frames) the modern
// frame it upgrades to.
type FrameDef struct {
	ID   string
	Kind FrameKind

	specs    []Spec
	optional []Spec

	// upgrade names the v2.3/v2.4 frame a 3-character v2.2 frame becomes.
	upgrade string

	hashKey func(*Frame) string
	merge   func(old, add *Frame) *Frame
}

func (d *FrameDef) newFrame() *Frame {
	f := &Frame{def: d, values: make(map[string]any, len(d.specs))}
	for _, sp := range d.specs {
		f.values[sp.Name()] = sp.Default()
	}
	return f
}

func (d *FrameDef) specNamed(name string) Spec {
	for _, sp := range d.specs {
		if sp.Name() == name {
			return sp
		}
	}
	for _, sp := range d.optional {
		if sp.Name() == name {
			return sp
		}
	}
	return nil
}

// Frame is a single tag frame: a definition plus the current field values.
type Frame struct {
	def    *FrameDef
	values map[string]any

	// salt disambiguates pictures that share a description; it is
	// appended to the hash key when duplicates collide on load.
	salt string
}

// ID returns the frame identifier, e.g. "TIT2".
func (f *Frame) ID() string { return f.def.ID }

// Kind returns the frame's payload kind.
func (f *Frame) Kind() FrameKind { return f.def.Kind }

// HashKey returns the key under which the frame is stored in a tag. For
// frames that may legitimately appear more than once it includes the
// distinguishing fields (description, language, owner and so on).
func (f *Frame) HashKey() string {
	if f.def.hashKey != nil {
		return f.def.hashKey(f)
	}
	return f.def.ID
}

// Get returns the named field value.
func (f *Frame) Get(name string) (any, bool) {
	v, ok := f.values[name]
	return v, ok
}

// Set validates and stores a field value.
func (f *Frame) Set(name string, v any) error {
	sp := f.def.specNamed(name)
	if sp == nil {
		return &FieldValueError{Frame: f.def.ID, Field: name, Msg: "no such field"}
	}
	valid, err := sp.Validate(f, v)
	if err != nil {
		return err
	}
	f.values[name] = valid
	return nil
}

// Fields returns the names of the fields currently set on the frame, in
// definition order.
func (f *Frame) Fields() []string {
	var out []string
	for _, sp := range f.def.specs {
		if _, ok := f.values[sp.Name()]; ok {
			out = append(out, sp.Name())
		}
	}
	for _, sp := range f.def.optional {
		if _, ok := f.values[sp.Name()]; ok {
			out = append(out, sp.Name())
		}
	}
	return out
}

// Equal reports whether two frames have the same ID and field values.
func (f *Frame) Equal(o *Frame) bool {
	if f == nil || o == nil {
		return f == o
	}
	return f.def.ID == o.def.ID && reflect.DeepEqual(f.values, o.values)
}

// Encoding returns the frame's text encoding, if it has one.
func (f *Frame) Encoding() Encoding { return frameEncoding(f) }

// SetEncoding sets the frame's text encoding.
func (f *Frame) SetEncoding(enc Encoding) error { return f.Set("encoding", enc) }

// Text returns the frame's text values. Timestamp frames yield formatted
// timestamps; single-string frames (lyrics, terms of use) yield one value.
func (f *Frame) Text() []string {
	switch v := f.values["text"].(type) {
	case []string:
		return v
	case []Timestamp:
		out := make([]string, len(v))
		for i, ts := range v {
			out[i] = ts.String()
		}
		return out
	case string:
		return []string{v}
	}
	return nil
}

// SetText replaces the frame's text values.
func (f *Frame) SetText(values ...string) error {
	sp := f.def.specNamed("text")
	if sp == nil {
		return &FieldValueError{Frame: f.def.ID, Field: "text", Msg: "no such field"}
	}
	valid, err := sp.Validate(f, values)
	if err != nil && len(values) == 1 {
		valid, err = sp.Validate(f, values[0])
	}
	if err != nil {
		return err
	}
	f.values["text"] = valid
	return nil
}

// Timestamps returns the parsed timestamps of a timestamp text frame.
func (f *Frame) Timestamps() []Timestamp {
	v, _ := f.values["text"].([]Timestamp)
	return v
}

// Description returns the frame's description field.
func (f *Frame) Description() string { return f.stringField("desc") }

// Language returns the frame's 3-letter language code.
func (f *Frame) Language() string { return f.stringField("lang") }

// URL returns the frame's URL field.
func (f *Frame) URL() string { return f.stringField("url") }

// Owner returns the frame's owner identifier.
func (f *Frame) Owner() string { return f.stringField("owner") }

// MIMEType returns the frame's MIME type field.
func (f *Frame) MIMEType() string { return f.stringField("mime") }

// Data returns the frame's binary payload field.
func (f *Frame) Data() []byte {
	v, _ := f.values["data"].([]byte)
	return v
}

// People returns the (involvement, person) pairs of a paired text frame.
func (f *Frame) People() [][2]string {
	v, _ := f.values["people"].([][2]string)
	return v
}

func (f *Frame) stringField(name string) string {
	v, _ := f.values[name].(string)
	return v
}

func (f *Frame) byteField(name string) byte {
	switch v := f.values[name].(type) {
	case byte:
		return v
	case PictureType:
		return byte(v)
	case CTOCFlags:
		return byte(v)
	}
	return 0
}

// String renders a short human-readable summary of the frame.
func (f *Frame) String() string {
	var b strings.Builder
	b.WriteString(f.def.ID)
	b.WriteByte('=')
	switch f.def.Kind {
	case KindText, KindTimestampText:
		b.WriteString(strings.Join(f.Text(), " / "))
	case KindURL:
		b.WriteString(f.URL())
	default:
		first := true
		for _, name := range f.Fields() {
			if name == "encoding" {
				continue
			}
			if !first {
				b.WriteByte(' ')
			}
			first = false
			fmt.Fprintf(&b, "%s:%v", name, f.values[name])
		}
	}
	return b.String()
}

// readData parses the decoded (uncompressed, resynchronized) frame payload.
func (f *Frame) readData(h *Header, data []byte) error {
	for _, sp := range f.def.specs {
		if len(data) == 0 && !sp.HandleNoData() {
			return &JunkFrameError{ID: f.def.ID, Err: errors.New("no data left")}
		}
		v, rest, err := sp.Read(h, f, data)
		if err != nil {
			return &JunkFrameError{ID: f.def.ID, Err: err}
		}
		f.values[sp.Name()] = v
		data = rest
	}
	for _, sp := range f.def.optional {
		if len(data) == 0 {
			break
		}
		v, rest, err := sp.Read(h, f, data)
		if err != nil {
			return &JunkFrameError{ID: f.def.ID, Err: err}
		}
		f.values[sp.Name()] = v
		data = rest
	}
	// Leftover bytes are tolerated; plenty of taggers pad frames.
	return nil
}

// writeData serializes the frame payload for the configured target version.
func (f *Frame) writeData(cfg *SaveConfig) ([]byte, error) {
	src := f
	if cfg != nil && cfg.Version.Major == 3 {
		src = f.v23Frame(cfg.V23Sep)
	}
	var buf bytes.Buffer
	for _, sp := range src.def.specs {
		v, ok := src.values[sp.Name()]
		if !ok {
			v = sp.Default()
		}
		b, err := sp.Write(cfg, src, v)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	for _, sp := range src.def.optional {
		v, ok := src.values[sp.Name()]
		if !ok {
			break
		}
		b, err := sp.Write(cfg, src, v)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	return buf.Bytes(), nil
}

// v23Frame returns a copy of the frame narrowed to what ID3v2.3 supports:
// UTF-16 instead of the v2.4-only encodings, and multiple text values
// joined with sep (kept separate when sep is empty).
func (f *Frame) v23Frame(sep string) *Frame {
	nf := &Frame{def: f.def, values: make(map[string]any, len(f.values))}
	for _, sp := range f.def.specs {
		if v, ok := f.values[sp.Name()]; ok {
			nf.values[sp.Name()] = sp.validate23(nf, v, sep)
		}
	}
	for _, sp := range f.def.optional {
		if v, ok := f.values[sp.Name()]; ok {
			nf.values[sp.Name()] = v
		}
	}
	return nf
}

// upgradeFrame converts a v2.2 frame to its v2.3/v2.4 equivalent. Modern
// frames are returned unchanged; nil means the frame has no modern form.
func (f *Frame) upgradeFrame() *Frame {
	if len(f.def.ID) == 4 {
		return f
	}
	if f.def.upgrade == "" {
		return nil
	}
	target, ok := defaultRegistry.lookupModern(f.def.upgrade)
	if !ok {
		return nil
	}
	nf := target.newFrame()
	for _, sp := range target.specs {
		if v, ok := f.values[sp.Name()]; ok {
			nf.values[sp.Name()] = v
		}
	}
	for _, sp := range target.optional {
		if v, ok := f.values[sp.Name()]; ok {
			nf.values[sp.Name()] = v
		}
	}
	if f.def.ID == "LNK" {
		nf.values["frameid"] = upgradeLinkedID(f.stringField("frameid"))
	}
	nf.salt = f.salt
	return nf
}

// upgradeLinkedID maps the 3-character frame ID carried inside a LNK frame
// to its 4-character form, padding with spaces when it is unknown.
func upgradeLinkedID(id string) string {
	if def, ok := defaultRegistry.lookupV22(id); ok && def.upgrade != "" {
		return def.upgrade
	}
	for len(id) < 4 {
		id += " "
	}
	return id
}

// mergeFrame combines a newly loaded frame with one already in the tag.
func (f *Frame) mergeFrame(add *Frame) *Frame {
	if f.def.merge != nil {
		return f.def.merge(f, add)
	}
	return add
}

// mergeText folds the added frame's values into the existing one, keeping
// the order and skipping duplicates. The encoding widens to whichever frame
// needs more.
func mergeText(old, add *Frame) *Frame {
	maxEnc := func() {
		if add.Encoding() > old.Encoding() {
			old.values["encoding"] = add.Encoding()
		}
	}
	switch vals := add.values["text"].(type) {
	case []string:
		have, _ := old.values["text"].([]string)
		for _, v := range vals {
			if !containsString(have, v) {
				have = append(have, v)
				maxEnc()
			}
		}
		old.values["text"] = have
	case []Timestamp:
		have, _ := old.values["text"].([]Timestamp)
		for _, v := range vals {
			if !containsTimestamp(have, v) {
				have = append(have, v)
				maxEnc()
			}
		}
		old.values["text"] = have
	}
	return old
}

// mergeSalt keeps both frames by salting the new one's hash key.
func mergeSalt(_, add *Frame) *Frame {
	add.salt += " "
	return add
}

func containsString(list []string, v string) bool {
	for _, e := range list {
		if e == v {
			return true
		}
	}
	return false
}

func containsTimestamp(list []Timestamp, v Timestamp) bool {
	for _, e := range list {
		if e.Equal(v) {
			return true
		}
	}
	return false
}

// fromData decodes a raw frame payload: compression, encryption and
// unsynchronization envelopes first, then the field specs.
func (d *FrameDef) fromData(h *Header, flags uint16, data []byte) (*Frame, error) {
	if h.Version.AtLeast(V24) {
		var datalen []byte
		if flags&(flag24Compress|flag24DataLen) != 0 {
			// The data length indicator is syncsafe in v2.4. It is only
			// needed to repair frames written by encoders that compressed
			// the indicator along with the payload.
			if len(data) < 4 {
				return nil, &JunkFrameError{ID: d.ID, Err: errors.New("frame too small")}
			}
			datalen, data = data[:4], data[4:]
		}
		if flags&flag24Unsynch != 0 || h.Unsynch() {
			// Some taggers set the unsynch flag on already-synchronized
			// data; keep the raw bytes when decoding fails.
			if dec, err := UnsynchDecode(data); err == nil {
				data = dec
			}
		}
		if flags&flag24Encrypt != 0 {
			return nil, ErrEncryptionUnsupported
		}
		if flags&flag24Compress != 0 {
			dec, err := inflate(data)
			if err != nil {
				dec, err = inflate(append(append([]byte{}, datalen...), data...))
				if err != nil {
					return nil, &JunkFrameError{ID: d.ID, Err: fmt.Errorf("zlib: %w", err)}
				}
			}
			data = dec
		}
	} else if h.Version.AtLeast(V23) {
		if flags&flag23Compress != 0 {
			if len(data) < 4 {
				return nil, &JunkFrameError{ID: d.ID, Err: errors.New("frame too small")}
			}
			data = data[4:]
		}
		if flags&flag23Encrypt != 0 {
			return nil, ErrEncryptionUnsupported
		}
		if flags&flag23Compress != 0 {
			dec, err := inflate(data)
			if err != nil {
				return nil, &JunkFrameError{ID: d.ID, Err: fmt.Errorf("zlib: %w", err)}
			}
			data = dec
		}
	}

	f := d.newFrame()
	if err := f.readData(h, data); err != nil {
		return nil, err
	}
	return f, nil
}

func inflate(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func deflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isValidFrameID(id string) bool {
	if id == "" {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// Hash key builders shared by the registry.

func hashDesc(f *Frame) string {
	return f.def.ID + ":" + f.Description() + f.salt
}

func hashDescLang(f *Frame) string {
	return f.def.ID + ":" + f.Description() + ":" + f.Language()
}

// hashField keys a frame by a single string field.
func hashField(name string) func(*Frame) string {
	return func(f *Frame) string {
		return f.def.ID + ":" + f.stringField(name)
	}
}

func hashGroup(f *Frame) string {
	return f.def.ID + ":" + strconv.Itoa(int(f.byteField("group")))
}

func hashGroupSig(f *Frame) string {
	sig, _ := f.values["sig"].([]byte)
	return f.def.ID + ":" + strconv.Itoa(int(f.byteField("group"))) + ":" + string(sig)
}

func hashOwnerData(f *Frame) string {
	return f.def.ID + ":" + f.Owner() + ":" + string(f.Data())
}

func hashLinked(f *Frame) string {
	return f.def.ID + ":" + f.stringField("frameid") + ":" + f.URL() + ":" + string(f.Data())
}

func hashElementID(f *Frame) string {
	return f.def.ID + ":" + f.stringField("element_id")
}

// hashPayload keys a frame by its full serialized payload; used for COMR,
// where every field may differ between legitimate duplicates.
func hashPayload(f *Frame) string {
	data, err := f.writeData(nil)
	if err != nil {
		return f.def.ID + ":" + fmt.Sprintf("%v", f.values)
	}
	return f.def.ID + ":" + string(data)
}
