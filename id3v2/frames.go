package id3v2

import "fmt"

// PictureType classifies an attached picture.
type PictureType byte

const (
	PictureOther             PictureType = 0
	PictureFileIcon          PictureType = 1
	PictureOtherFileIcon     PictureType = 2
	PictureCoverFront        PictureType = 3
	PictureCoverBack         PictureType = 4
	PictureLeafletPage       PictureType = 5
	PictureMedia             PictureType = 6
	PictureLeadArtist        PictureType = 7
	PictureArtist            PictureType = 8
	PictureConductor         PictureType = 9
	PictureBand              PictureType = 10
	PictureComposer          PictureType = 11
	PictureLyricist          PictureType = 12
	PictureRecordingLocation PictureType = 13
	PictureDuringRecording   PictureType = 14
	PictureDuringPerformance PictureType = 15
	PictureScreenCapture     PictureType = 16
	PictureFish              PictureType = 17
	PictureIllustration      PictureType = 18
	PictureBandLogotype      PictureType = 19
	PicturePublisherLogotype PictureType = 20
)

var pictureTypeNames = []string{
	"Other", "File icon", "Other file icon", "Cover (front)", "Cover (back)",
	"Leaflet page", "Media", "Lead artist", "Artist", "Conductor", "Band",
	"Composer", "Lyricist", "Recording location", "During recording",
	"During performance", "Screen capture", "A bright coloured fish",
	"Illustration", "Band logotype", "Publisher logotype",
}

func (t PictureType) String() string {
	if int(t) < len(pictureTypeNames) {
		return pictureTypeNames[t]
	}
	return fmt.Sprintf("PictureType(%d)", byte(t))
}

// CTOCFlags are the flag bits of a table of contents frame.
type CTOCFlags byte

const (
	// CTOCOrdered means the child elements are in a meaningful order.
	CTOCOrdered CTOCFlags = 0x01
	// CTOCTopLevel marks the root entry of the table of contents.
	CTOCTopLevel CTOCFlags = 0x02
)

// pictureTypeSpec is the picture classification byte of APIC frames.
type pictureTypeSpec struct{ byteSpec }

func newPictureTypeSpec(name string) pictureTypeSpec {
	return pictureTypeSpec{newByteSpec(name, byte(PictureCoverFront))}
}

func (s pictureTypeSpec) Default() any { return PictureCoverFront }

func (s pictureTypeSpec) Read(h *Header, f *Frame, data []byte) (any, []byte, error) {
	v, rest, err := s.byteSpec.Read(h, f, data)
	if err != nil {
		return nil, nil, err
	}
	return PictureType(v.(byte)), rest, nil
}

func (s pictureTypeSpec) Write(cfg *SaveConfig, f *Frame, v any) ([]byte, error) {
	t, ok := v.(PictureType)
	if !ok {
		return nil, s.errValue(v, "not a picture type")
	}
	return s.byteSpec.Write(cfg, f, byte(t))
}

func (s pictureTypeSpec) Validate(f *Frame, v any) (any, error) {
	switch x := v.(type) {
	case PictureType:
		return x, nil
	case byte:
		return PictureType(x), nil
	case int:
		if x < 0 || x > 0xff {
			return nil, s.errValue(v, "out of byte range")
		}
		return PictureType(x), nil
	}
	return nil, s.errValue(v, "not a picture type")
}

// ctocFlagsSpec is the flag byte of CTOC frames.
type ctocFlagsSpec struct{ byteSpec }

func newCTOCFlagsSpec(name string) ctocFlagsSpec {
	return ctocFlagsSpec{newByteSpec(name, 0)}
}

func (s ctocFlagsSpec) Default() any { return CTOCFlags(0) }

func (s ctocFlagsSpec) Read(h *Header, f *Frame, data []byte) (any, []byte, error) {
	v, rest, err := s.byteSpec.Read(h, f, data)
	if err != nil {
		return nil, nil, err
	}
	return CTOCFlags(v.(byte)), rest, nil
}

func (s ctocFlagsSpec) Write(cfg *SaveConfig, f *Frame, v any) ([]byte, error) {
	fl, ok := v.(CTOCFlags)
	if !ok {
		return nil, s.errValue(v, "not CTOC flags")
	}
	return s.byteSpec.Write(cfg, f, byte(fl))
}

func (s ctocFlagsSpec) Validate(f *Frame, v any) (any, error) {
	switch x := v.(type) {
	case CTOCFlags:
		return x, nil
	case byte:
		return CTOCFlags(x), nil
	case int:
		if x < 0 || x > 0xff {
			return nil, s.errValue(v, "out of byte range")
		}
		return CTOCFlags(x), nil
	}
	return nil, s.errValue(v, "not CTOC flags")
}

// NewFrame builds a frame of the given ID from a field map. Fields that are
// left out fall back to their defaults; unknown field names are an error.
func NewFrame(id string, fields map[string]any) (*Frame, error) {
	def, ok := defaultRegistry.lookupModern(id)
	if !ok {
		def, ok = defaultRegistry.lookupV22(id)
	}
	if !ok {
		return nil, &FieldValueError{Frame: id, Field: "", Msg: "unknown frame ID"}
	}
	f := def.newFrame()
	for name, v := range fields {
		if err := f.Set(name, v); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// NewTextFrame builds a text frame such as TIT2 or TPE1.
func NewTextFrame(id string, enc Encoding, text ...string) (*Frame, error) {
	f, err := NewFrame(id, map[string]any{"encoding": enc})
	if err != nil {
		return nil, err
	}
	if f.Kind() != KindText && f.Kind() != KindTimestampText {
		return nil, &FieldValueError{Frame: id, Field: "text", Msg: "not a text frame"}
	}
	if err := f.SetText(text...); err != nil {
		return nil, err
	}
	return f, nil
}

// NewComment builds a COMM frame.
func NewComment(enc Encoding, lang, desc string, text ...string) (*Frame, error) {
	return NewFrame("COMM", map[string]any{
		"encoding": enc,
		"lang":     lang,
		"desc":     desc,
		"text":     text,
	})
}

// NewUserText builds a TXXX frame.
func NewUserText(enc Encoding, desc string, text ...string) (*Frame, error) {
	return NewFrame("TXXX", map[string]any{
		"encoding": enc,
		"desc":     desc,
		"text":     text,
	})
}

// NewUserURL builds a WXXX frame.
func NewUserURL(enc Encoding, desc, url string) (*Frame, error) {
	return NewFrame("WXXX", map[string]any{
		"encoding": enc,
		"desc":     desc,
		"url":      url,
	})
}

// NewPicture builds an APIC frame.
func NewPicture(enc Encoding, mime string, typ PictureType, desc string, data []byte) (*Frame, error) {
	return NewFrame("APIC", map[string]any{
		"encoding": enc,
		"mime":     mime,
		"type":     typ,
		"desc":     desc,
		"data":     data,
	})
}
