package id3v2

import (
	"encoding/binary"
	"fmt"
	"sort"
	"strings"
)

// SaveConfig controls how a tag is serialized.
type SaveConfig struct {
	// Version is the target tag version, V23 or V24.
	Version Version
	// V23Sep joins multiple text values when writing v2.3, which has no
	// multi-value frames. Empty keeps the values NUL-separated, which
	// many readers accept anyway.
	V23Sep string
	// Compress enables zlib compression of large frame payloads. Off by
	// default since several mainstream players cannot read compressed
	// frames.
	Compress bool
}

func defaultSaveConfig() *SaveConfig {
	return &SaveConfig{Version: V24, V23Sep: "/"}
}

// PaddingInfo describes the space situation at save time, as passed to a
// padding policy.
type PaddingInfo struct {
	// Padding is the number of padding bytes the rewritten tag could keep
	// without moving audio data. Negative means the tag no longer fits.
	Padding int
	// Size is the number of bytes of content following the tag.
	Size int64
}

// PaddingFunc decides how many padding bytes to write after the frames.
type PaddingFunc func(PaddingInfo) int

// DefaultPadding keeps existing padding when it is in a sane range and
// otherwise resizes it relative to the audio data: roughly 1 KiB plus
// 0.1%, capped at 10 KiB plus 1%.
func DefaultPadding(info PaddingInfo) int {
	high := 1024*10 + int(info.Size/100)
	low := 1024 + int(info.Size/1000)
	if info.Padding >= 0 {
		if info.Padding > high {
			return low
		}
		return info.Padding
	}
	return low
}

// frameOrder ranks the frames players look for first.
var frameOrder = []string{"TIT2", "TPE1", "TRCK", "TALB", "TPOS", "TDRC", "TCON"}

// renderFrames serializes all frames, most important first, then smallest
// first so a truncated reader still sees the essentials. Unknown raw
// frames are carried over only when the target version matches the one
// they were read from.
func (t *Tags) renderFrames(cfg *SaveConfig) ([]byte, error) {
	if cfg.Version.Major != 3 && cfg.Version.Major != 4 {
		return nil, &UnsupportedVersionError{Major: cfg.Version.Major, Revision: cfg.Version.Revision}
	}
	type rendered struct {
		prio int
		id   string
		data []byte
	}
	var parts []rendered
	for _, f := range t.Frames() {
		data, err := t.saveFrame(f, cfg)
		if err != nil {
			return nil, err
		}
		if data == nil {
			continue
		}
		parts = append(parts, rendered{prio: framePrio(f.ID()), id: f.ID(), data: data})
	}
	sort.SliceStable(parts, func(i, j int) bool {
		a, b := parts[i], parts[j]
		if a.prio != b.prio {
			return a.prio < b.prio
		}
		if len(a.data) != len(b.data) {
			return len(a.data) < len(b.data)
		}
		return a.id < b.id
	})

	var out []byte
	for _, p := range parts {
		out = append(out, p.data...)
	}
	if t.unknownVersion == cfg.Version.Major {
		for _, raw := range t.unknown {
			if len(raw) > 10 {
				out = append(out, raw...)
			}
		}
	}
	return out, nil
}

func framePrio(id string) int {
	for i, o := range frameOrder {
		if o == id {
			return i
		}
	}
	return len(frameOrder)
}

// saveFrame serializes one frame with its header. Text frames with no
// content render to nothing.
func (t *Tags) saveFrame(f *Frame, cfg *SaveConfig) ([]byte, error) {
	if f.Kind() == KindText || f.Kind() == KindTimestampText {
		if strings.Join(f.Text(), "\x00") == "" {
			return nil, nil
		}
	}
	data, err := f.writeData(cfg)
	if err != nil {
		return nil, err
	}

	var flags uint16
	if cfg.Compress && cfg.Version.Major == 4 && len(data) > 2048 {
		datalen, err := PutSyncsafe(uint32(len(data)), 4)
		if err != nil {
			return nil, err
		}
		compressed, err := deflate(data)
		if err != nil {
			return nil, err
		}
		data = append(datalen, compressed...)
		flags |= flag24Compress | flag24DataLen
	}

	var sizeField []byte
	if cfg.Version.Major == 4 {
		sizeField, err = PutSyncsafe(uint32(len(data)), 4)
		if err != nil {
			return nil, fmt.Errorf("frame %s: %w", f.ID(), err)
		}
	} else {
		sizeField = bePutUint(uint64(len(data)), 4)
	}

	out := make([]byte, 0, 10+len(data))
	out = append(out, f.ID()...)
	out = append(out, sizeField...)
	out = binary.BigEndian.AppendUint16(out, flags)
	out = append(out, data...)
	return out, nil
}

// Render serializes the complete tag: header, frames and padding.
// available is the space the current tag occupies in the file, header
// included; trailing is the size of the content after it. pad decides the
// new padding; nil means DefaultPadding.
func (t *Tags) Render(cfg *SaveConfig, available int, trailing int64, pad PaddingFunc) ([]byte, error) {
	if cfg == nil {
		cfg = defaultSaveConfig()
	}
	if pad == nil {
		pad = DefaultPadding
	}
	framedata, err := t.renderFrames(cfg)
	if err != nil {
		return nil, err
	}

	info := PaddingInfo{
		Padding: available - (10 + len(framedata)),
		Size:    trailing,
	}
	padding := pad(info)
	if padding < 0 {
		padding = 0
	}

	bodySize := uint32(len(framedata) + padding)
	sizeField, err := PutSyncsafe(bodySize, 4)
	if err != nil {
		return nil, fmt.Errorf("tag too large: %w", err)
	}

	out := make([]byte, 0, 10+int(bodySize))
	out = append(out, 'I', 'D', '3', cfg.Version.Major, 0, 0)
	out = append(out, sizeField...)
	out = append(out, framedata...)
	out = append(out, make([]byte, padding)...)
	return out, nil
}
