package id3v2

// subFramesSpec is the embedded frame list of CHAP and CTOC frames. The
// payload is parsed with the same rules as a top level tag body, minus the
// tag header.
type subFramesSpec struct{ baseSpec }

func newSubFramesSpec(name string) subFramesSpec {
	return subFramesSpec{baseSpec{name: name}}
}

// Each frame gets its own container; a shared default would alias.
func (s subFramesSpec) Default() any { return NewTags() }

func (s subFramesSpec) HandleNoData() bool { return true }

func (s subFramesSpec) Read(h *Header, _ *Frame, data []byte) (any, []byte, error) {
	t := NewTags()
	t.parse(h, data)
	return t, nil, nil
}

func (s subFramesSpec) Write(cfg *SaveConfig, _ *Frame, v any) ([]byte, error) {
	t, ok := v.(*Tags)
	if !ok {
		return nil, s.errValue(v, "not a frame container")
	}
	if cfg == nil {
		cfg = defaultSaveConfig()
	}
	return t.renderFrames(cfg)
}

func (s subFramesSpec) Validate(_ *Frame, v any) (any, error) {
	switch x := v.(type) {
	case *Tags:
		return x, nil
	case []*Frame:
		t := NewTags()
		for _, f := range x {
			if err := t.Add(f); err != nil {
				return nil, &SpecError{Field: s.name, Err: err}
			}
		}
		return t, nil
	case nil:
		return NewTags(), nil
	}
	return nil, s.errValue(v, "not a frame container")
}

func (s subFramesSpec) validate23(_ *Frame, v any, sep string) any {
	t, ok := v.(*Tags)
	if !ok {
		return v
	}
	nt := NewTags()
	for _, f := range t.Frames() {
		nt.set(f.HashKey(), f.v23Frame(sep))
	}
	return nt
}
