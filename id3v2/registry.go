package id3v2

import "fmt"

// Registry maps frame IDs to their definitions. The default registry
// covers the standard v2.2, v2.3 and v2.4 catalogues plus the common
// informal extensions (iTunes sort and podcast frames, chapters). Frames
// with IDs outside the registry are preserved as raw data rather than
// parsed.
type Registry struct {
	modern map[string]*FrameDef // v2.3 and v2.4 frames
	v22    map[string]*FrameDef
}

var defaultRegistry = buildRegistry()

// DefaultRegistry returns the shared registry of standard frames. It must
// not be modified; use Clone to build a custom registry.
func DefaultRegistry() *Registry { return defaultRegistry }

// Clone returns a copy of the registry that can be extended with Register.
func (r *Registry) Clone() *Registry {
	nr := &Registry{
		modern: make(map[string]*FrameDef, len(r.modern)),
		v22:    make(map[string]*FrameDef, len(r.v22)),
	}
	for id, def := range r.modern {
		nr.modern[id] = def
	}
	for id, def := range r.v22 {
		nr.v22[id] = def
	}
	return nr
}

// Register adds a frame definition. 3-character IDs register as v2.2
// frames, 4-character IDs as v2.3/v2.4 frames.
func (r *Registry) Register(def *FrameDef) error {
	if r == defaultRegistry {
		return fmt.Errorf("cannot modify the default registry, Clone it first")
	}
	if !isValidFrameID(def.ID) {
		return fmt.Errorf("invalid frame ID %q", def.ID)
	}
	switch len(def.ID) {
	case 3:
		r.v22[def.ID] = def
	case 4:
		r.modern[def.ID] = def
	default:
		return fmt.Errorf("frame ID %q must be 3 or 4 characters", def.ID)
	}
	return nil
}

// Lookup finds the definition for a frame ID in the given tag version.
func (r *Registry) Lookup(id string, v Version) (*FrameDef, bool) {
	if v.Less(V23) {
		return r.lookupV22(id)
	}
	return r.lookupModern(id)
}

func (r *Registry) lookupModern(id string) (*FrameDef, bool) {
	def, ok := r.modern[id]
	return def, ok
}

func (r *Registry) lookupV22(id string) (*FrameDef, bool) {
	def, ok := r.v22[id]
	return def, ok
}

func buildRegistry() *Registry {
	r := &Registry{
		modern: make(map[string]*FrameDef, 128),
		v22:    make(map[string]*FrameDef, 80),
	}

	textSpecs := []Spec{
		newEncodingSpec("encoding"),
		newTextListSpec("text", "\x00"),
	}
	tsSpecs := []Spec{
		newEncodingSpec("encoding"),
		newTimestampListSpec("text"),
	}
	pairedSpecs := []Spec{
		newEncodingSpec("encoding"),
		newPairedListSpec("people"),
	}
	urlSpecs := []Spec{newLatin1Spec("url")}
	binSpecs := []Spec{newBinarySpec("data")}

	text := func(ids ...string) {
		for _, id := range ids {
			r.modern[id] = &FrameDef{ID: id, Kind: KindText, specs: textSpecs, merge: mergeText}
		}
	}
	timestamp := func(ids ...string) {
		for _, id := range ids {
			r.modern[id] = &FrameDef{ID: id, Kind: KindTimestampText, specs: tsSpecs, merge: mergeText}
		}
	}
	url := func(ids ...string) {
		for _, id := range ids {
			r.modern[id] = &FrameDef{ID: id, Kind: KindURL, specs: urlSpecs}
		}
	}
	urlU := func(ids ...string) {
		for _, id := range ids {
			r.modern[id] = &FrameDef{ID: id, Kind: KindURL, specs: urlSpecs, hashKey: hashField("url")}
		}
	}
	def := func(d *FrameDef) { r.modern[d.ID] = d }

	// Text information frames, including the informal iTunes additions
	// (TCMP, TSO2, TSOC, MVNM, MVIN, GRP1, podcast frames).
	text("TALB", "TBPM", "TCOM", "TCON", "TCOP", "TCMP", "TDAT", "TDES",
		"TKWD", "TCAT", "MVNM", "MVIN", "GRP1", "TDLY", "TENC", "TEXT",
		"TFLT", "TGID", "TIME", "TIT1", "TIT2", "TIT3", "TKEY", "TLAN",
		"TLEN", "TMED", "TMOO", "TOAL", "TOFN", "TOLY", "TOPE", "TORY",
		"TOWN", "TPE1", "TPE2", "TPE3", "TPE4", "TPOS", "TPRO", "TPUB",
		"TRCK", "TRDA", "TRSN", "TRSO", "TSIZ", "TSO2", "TSOA", "TSOC",
		"TSOP", "TSOT", "TSRC", "TSSE", "TSST", "TYER")
	timestamp("TDEN", "TDOR", "TDRC", "TDRL", "TDTG")

	def(&FrameDef{ID: "TXXX", Kind: KindText, specs: []Spec{
		newEncodingSpec("encoding"),
		newEncodedTextSpec("desc"),
		newTextListSpec("text", "\x00"),
	}, hashKey: hashDesc, merge: mergeText})

	// URL link frames.
	url("WCOP", "WFED", "WOAF", "WOAS", "WORS", "WPAY", "WPUB")
	urlU("WCOM", "WOAR")
	def(&FrameDef{ID: "WXXX", Kind: KindURL, specs: []Spec{
		newEncodingSpec("encoding"),
		newEncodedTextSpec("desc"),
		newLatin1Spec("url"),
	}, hashKey: hashDesc})

	// Involved people.
	for _, id := range []string{"TIPL", "TMCL", "IPLS"} {
		r.modern[id] = &FrameDef{ID: id, Kind: KindPairedText, specs: pairedSpecs}
	}

	def(&FrameDef{ID: "MCDI", Kind: KindBinary, specs: binSpecs})
	def(&FrameDef{ID: "ETCO", specs: []Spec{
		newByteSpec("format", 1),
		newKeyEventSpec("events"),
	}})
	def(&FrameDef{ID: "MLLT", specs: []Spec{
		newSizedIntSpec("frames", 2, 0),
		newSizedIntSpec("bytes", 3, 0),
		newSizedIntSpec("milliseconds", 3, 0),
		newByteSpec("bits_for_bytes", 0),
		newByteSpec("bits_for_milliseconds", 0),
		newBinarySpec("data"),
	}})
	def(&FrameDef{ID: "SYTC", specs: []Spec{
		newByteSpec("format", 1),
		newBinarySpec("data"),
	}})
	def(&FrameDef{ID: "USLT", specs: []Spec{
		newEncodingSpec("encoding"),
		newStringSpec("lang", 3, "XXX"),
		newEncodedTextSpec("desc"),
		newEncodedTextSpec("text"),
	}, hashKey: hashDescLang})
	def(&FrameDef{ID: "SYLT", specs: []Spec{
		newEncodingSpec("encoding"),
		newStringSpec("lang", 3, "XXX"),
		newByteSpec("format", 1),
		newByteSpec("type", 0),
		newEncodedTextSpec("desc"),
		newSyncTextSpec("text"),
	}, hashKey: hashDescLang})
	def(&FrameDef{ID: "COMM", Kind: KindText, specs: []Spec{
		newEncodingSpec("encoding"),
		newStringSpec("lang", 3, "XXX"),
		newEncodedTextSpec("desc"),
		newTextListSpec("text", "\x00"),
	}, hashKey: hashDescLang, merge: mergeText})
	def(&FrameDef{ID: "RVA2", specs: []Spec{
		newLatin1Spec("desc"),
		newByteSpec("channel", ChannelMaster),
		newVolumeAdjSpec("gain", 1),
		newVolumePeakSpec("peak", 1),
	}, hashKey: hashDesc})
	def(&FrameDef{ID: "EQU2", specs: []Spec{
		newByteSpec("method", 0),
		newLatin1Spec("desc"),
		newVolumeAdjustmentsSpec("adjustments"),
	}, hashKey: hashDesc})
	def(&FrameDef{ID: "RVAD", specs: []Spec{
		newRVASpec("adjustments", false),
	}})
	def(&FrameDef{ID: "RVRB", specs: []Spec{
		newSizedIntSpec("left", 2, 0),
		newSizedIntSpec("right", 2, 0),
		newByteSpec("bounce_left", 0),
		newByteSpec("bounce_right", 0),
		newByteSpec("feedback_ltl", 0),
		newByteSpec("feedback_ltr", 0),
		newByteSpec("feedback_rtr", 0),
		newByteSpec("feedback_rtl", 0),
		newByteSpec("premix_ltr", 0),
		newByteSpec("premix_rtl", 0),
	}})
	def(&FrameDef{ID: "APIC", specs: []Spec{
		newEncodingSpec("encoding"),
		newLatin1Spec("mime"),
		newPictureTypeSpec("type"),
		newEncodedTextSpec("desc"),
		newBinarySpec("data"),
	}, hashKey: hashDesc, merge: mergeSalt})
	def(&FrameDef{ID: "PCNT", specs: []Spec{newIntSpec("count")}})
	def(&FrameDef{ID: "PCST", specs: []Spec{newIntSpec("value")}})
	def(&FrameDef{ID: "POPM", specs: []Spec{
		newLatin1Spec("email"),
		newByteSpec("rating", 0),
	}, optional: []Spec{
		newIntSpec("count"),
	}, hashKey: hashField("email")})
	def(&FrameDef{ID: "GEOB", specs: []Spec{
		newEncodingSpec("encoding"),
		newLatin1Spec("mime"),
		newEncodedTextSpec("filename"),
		newEncodedTextSpec("desc"),
		newBinarySpec("data"),
	}, hashKey: hashDesc})
	def(&FrameDef{ID: "RBUF", specs: []Spec{
		newSizedIntSpec("size", 3, 0),
	}, optional: []Spec{
		newByteSpec("info", 0),
		newSizedIntSpec("offset", 4, 0),
	}})
	def(&FrameDef{ID: "AENC", specs: []Spec{
		newLatin1Spec("owner"),
		newSizedIntSpec("preview_start", 2, 0),
		newSizedIntSpec("preview_length", 2, 0),
		newBinarySpec("data"),
	}, hashKey: hashField("owner")})
	def(&FrameDef{ID: "LINK", specs: []Spec{
		newFrameIDSpec("frameid", 4),
		newLatin1Spec("url"),
		newBinarySpec("data"),
	}, hashKey: hashLinked})
	def(&FrameDef{ID: "POSS", specs: []Spec{
		newByteSpec("format", 1),
		newIntSpec("position"),
	}})
	def(&FrameDef{ID: "UFID", specs: []Spec{
		newLatin1Spec("owner"),
		newBinarySpec("data"),
	}, hashKey: hashField("owner")})
	def(&FrameDef{ID: "USER", specs: []Spec{
		newEncodingSpec("encoding"),
		newStringSpec("lang", 3, "XXX"),
		newEncodedTextSpec("text"),
	}, hashKey: hashField("lang")})
	def(&FrameDef{ID: "OWNE", specs: []Spec{
		newEncodingSpec("encoding"),
		newLatin1Spec("price"),
		newStringSpec("date", 8, "19700101"),
		newEncodedTextSpec("seller"),
	}})
	def(&FrameDef{ID: "COMR", specs: []Spec{
		newEncodingSpec("encoding"),
		newLatin1Spec("price"),
		newStringSpec("valid_until", 8, "19700101"),
		newLatin1Spec("contact"),
		newByteSpec("format", 0),
		newEncodedTextSpec("seller"),
		newEncodedTextSpec("desc"),
	}, optional: []Spec{
		newLatin1Spec("mime"),
		newBinarySpec("logo"),
	}, hashKey: hashPayload})
	def(&FrameDef{ID: "ENCR", specs: []Spec{
		newLatin1Spec("owner"),
		newByteSpec("method", 0x80),
		newBinarySpec("data"),
	}, hashKey: hashField("owner")})
	def(&FrameDef{ID: "GRID", specs: []Spec{
		newLatin1Spec("owner"),
		newByteSpec("group", 0x80),
		newBinarySpec("data"),
	}, hashKey: hashGroup})
	def(&FrameDef{ID: "PRIV", specs: []Spec{
		newLatin1Spec("owner"),
		newBinarySpec("data"),
	}, hashKey: hashOwnerData})
	def(&FrameDef{ID: "SIGN", specs: []Spec{
		newByteSpec("group", 0x80),
		newBinarySpec("sig"),
	}, hashKey: hashGroupSig})
	def(&FrameDef{ID: "SEEK", specs: []Spec{newIntSpec("offset")}})
	def(&FrameDef{ID: "ASPI", specs: []Spec{
		newSizedIntSpec("S", 4, 0),
		newSizedIntSpec("L", 4, 0),
		newSizedIntSpec("N", 2, 0),
		newByteSpec("b", 0),
		newASPIIndexSpec("Fi"),
	}})
	def(&FrameDef{ID: "CHAP", specs: []Spec{
		newLatin1Spec("element_id"),
		newSizedIntSpec("start_time", 4, 0),
		newSizedIntSpec("end_time", 4, 0),
		newSizedIntSpec("start_offset", 4, 0xffffffff),
		newSizedIntSpec("end_offset", 4, 0xffffffff),
		newSubFramesSpec("sub_frames"),
	}, hashKey: hashElementID})
	def(&FrameDef{ID: "CTOC", specs: []Spec{
		newLatin1Spec("element_id"),
		newCTOCFlagsSpec("flags"),
		newLatin1ListSpec("child_element_ids"),
		newSubFramesSpec("sub_frames"),
	}, hashKey: hashElementID})

	// v2.2 frames are the same payloads under 3-character IDs, except for
	// the four below with their own shapes.
	aliases := map[string]string{
		"UFI": "UFID", "TT1": "TIT1", "TT2": "TIT2", "TT3": "TIT3",
		"TP1": "TPE1", "TP2": "TPE2", "TP3": "TPE3", "TP4": "TPE4",
		"TCM": "TCOM", "TXT": "TEXT", "TLA": "TLAN", "TCO": "TCON",
		"TAL": "TALB", "TPA": "TPOS", "TRK": "TRCK", "TRC": "TSRC",
		"TYE": "TYER", "TDA": "TDAT", "TIM": "TIME", "TRD": "TRDA",
		"TMT": "TMED", "TFT": "TFLT", "TBP": "TBPM", "TCP": "TCMP",
		"TCR": "TCOP", "TPB": "TPUB", "TEN": "TENC", "TST": "TSOT",
		"TSA": "TSOA", "TS2": "TSO2", "TSP": "TSOP", "TSC": "TSOC",
		"TSS": "TSSE", "TOF": "TOFN", "TLE": "TLEN", "TSI": "TSIZ",
		"TDY": "TDLY", "TKE": "TKEY", "TOT": "TOAL", "TOA": "TOPE",
		"TOL": "TOLY", "TOR": "TORY", "TXX": "TXXX", "MVN": "MVNM",
		"MVI": "MVIN", "GP1": "GRP1", "WAF": "WOAF", "WAR": "WOAR",
		"WAS": "WOAS", "WCM": "WCOM", "WCP": "WCOP", "WPB": "WPUB",
		"WXX": "WXXX", "IPL": "IPLS", "MCI": "MCDI", "ETC": "ETCO",
		"MLL": "MLLT", "STC": "SYTC", "ULT": "USLT", "SLT": "SYLT",
		"COM": "COMM", "REV": "RVRB", "GEO": "GEOB", "CNT": "PCNT",
		"POP": "POPM", "BUF": "RBUF", "CRA": "AENC",
	}
	for id, target := range aliases {
		base := r.modern[target]
		r.v22[id] = &FrameDef{
			ID:       id,
			Kind:     base.Kind,
			specs:    base.specs,
			optional: base.optional,
			upgrade:  target,
			hashKey:  base.hashKey,
			merge:    base.merge,
		}
	}

	// PIC restricts the MIME type to a 3-character code.
	r.v22["PIC"] = &FrameDef{ID: "PIC", specs: []Spec{
		newEncodingSpec("encoding"),
		newStringSpec("mime", 3, "JPG"),
		newPictureTypeSpec("type"),
		newEncodedTextSpec("desc"),
		newBinarySpec("data"),
	}, upgrade: "APIC", hashKey: hashDesc, merge: mergeSalt}

	// LNK links by 3-character frame ID.
	r.v22["LNK"] = &FrameDef{ID: "LNK", specs: []Spec{
		newFrameIDSpec("frameid", 3),
		newLatin1Spec("url"),
		newBinarySpec("data"),
	}, upgrade: "LINK", hashKey: hashLinked}

	// RVA carries at most stereo adjustments.
	r.v22["RVA"] = &FrameDef{ID: "RVA", specs: []Spec{
		newRVASpec("adjustments", true),
	}, upgrade: "RVAD"}

	// CRM has no v2.3 equivalent; it is dropped on upgrade.
	r.v22["CRM"] = &FrameDef{ID: "CRM", specs: []Spec{
		newLatin1Spec("owner"),
		newLatin1Spec("desc"),
		newBinarySpec("data"),
	}}

	return r
}
