package id3v2

import (
	"fmt"
	"strings"
)

// UpdateToV24 converts frames deprecated by ID3v2.4 into their modern
// replacements: TYER/TDAT/TIME collapse into a TDRC timestamp, TORY
// becomes TDOR, IPLS becomes TIPL. Frames with no v2.4 equivalent are
// dropped.
func (t *Tags) UpdateToV24() {
	t.updateCommon()

	if date := t.joinedText("TYER"); date != "" {
		t.delete("TYER")
		stamp := prefix(date, 4)
		if dat := t.joinedText("TDAT"); dat != "" {
			t.delete("TDAT")
			stamp += "-" + prefix(suffix(dat, 2), 2) + "-" + prefix(dat, 2)
			if tm := t.joinedText("TIME"); tm != "" {
				t.delete("TIME")
				stamp += "T" + prefix(tm, 2) + ":" + prefix(suffix(tm, 2), 2) + ":00"
			}
		}
		if t.Get("TDRC") == nil {
			if f, err := NewTextFrame("TDRC", EncodingLatin1, stamp); err == nil {
				t.Add(f)
			}
		}
	}

	if f := t.Get("TORY"); f != nil {
		t.delete("TORY")
		if t.Get("TDOR") == nil {
			if nf, err := NewTextFrame("TDOR", EncodingLatin1, strings.Join(f.Text(), "\x00")); err == nil {
				t.Add(nf)
			}
		}
	}

	if f := t.Get("IPLS"); f != nil {
		t.delete("IPLS")
		if t.Get("TIPL") == nil {
			nf, err := NewFrame("TIPL", map[string]any{
				"encoding": f.Encoding(),
				"people":   f.People(),
			})
			if err == nil {
				t.Add(nf)
			}
		}
	}

	for _, key := range []string{"RVAD", "EQUA", "TRDA", "TSIZ", "TDAT", "TIME", "CRM"} {
		t.DeleteAll(key)
	}
}

// UpdateToV23 converts v2.4-only frames into their v2.3 ancestors: TIPL
// and TMCL fold back into IPLS, TDOR becomes TORY, and TDRC is split into
// TYER, TDAT and TIME. Frames introduced by v2.4 are dropped.
func (t *Tags) UpdateToV23() {
	t.updateCommon()

	if t.Get("TIPL") != nil || t.Get("TMCL") != nil {
		var people [][2]string
		enc := EncodingLatin1
		for _, key := range []string{"TIPL", "TMCL"} {
			if f := t.Get(key); f != nil {
				t.delete(key)
				people = append(people, f.People()...)
				enc = f.Encoding()
			}
		}
		if t.Get("IPLS") == nil {
			nf, err := NewFrame("IPLS", map[string]any{
				"encoding": enc,
				"people":   people,
			})
			if err == nil {
				t.Add(nf)
			}
		}
	}

	if f := t.Get("TDOR"); f != nil {
		t.delete("TDOR")
		if ts := f.Timestamps(); len(ts) > 0 && ts[0].Year > 0 && t.Get("TORY") == nil {
			nf, err := NewTextFrame("TORY", f.Encoding(), fmt.Sprintf("%04d", ts[0].Year))
			if err == nil {
				t.Add(nf)
			}
		}
	}

	if f := t.Get("TDRC"); f != nil {
		t.delete("TDRC")
		if ts := f.Timestamps(); len(ts) > 0 {
			d := ts[0]
			if d.Year > 0 && t.Get("TYER") == nil {
				if nf, err := NewTextFrame("TYER", f.Encoding(), fmt.Sprintf("%04d", d.Year)); err == nil {
					t.Add(nf)
				}
			}
			if d.Month > 0 && d.Day > 0 && t.Get("TDAT") == nil {
				if nf, err := NewTextFrame("TDAT", f.Encoding(), fmt.Sprintf("%02d%02d", d.Day, d.Month)); err == nil {
					t.Add(nf)
				}
			}
			if d.Hour >= 0 && d.Minute >= 0 && t.Get("TIME") == nil {
				if nf, err := NewTextFrame("TIME", f.Encoding(), fmt.Sprintf("%02d%02d", d.Hour, d.Minute)); err == nil {
					t.Add(nf)
				}
			}
		}
	}

	for _, key := range []string{"ASPI", "EQU2", "RVA2", "SEEK", "SIGN",
		"TDEN", "TDRL", "TDTG", "TIPL", "TMCL", "TMOO", "TPRO", "TSST"} {
		t.DeleteAll(key)
	}
}

// updateCommon applies fixups valid for every modern version: legacy
// "(NN)" genre references expand to names, and bare "PNG"/"JPG" picture
// MIME types become proper ones.
func (t *Tags) updateCommon() {
	if f := t.Get("TCON"); f != nil {
		f.SetText(f.Genres()...)
	}
	mimes := map[string]string{"PNG": "image/png", "JPG": "image/jpeg"}
	for _, pic := range t.GetAll("APIC") {
		mime, ok := mimes[pic.MIMEType()]
		if !ok {
			continue
		}
		nf, err := NewPicture(pic.Encoding(), mime, PictureType(pic.byteField("type")), pic.Description(), pic.Data())
		if err == nil {
			t.Add(nf)
		}
	}
}

func (t *Tags) joinedText(key string) string {
	f := t.Get(key)
	if f == nil {
		return ""
	}
	s := strings.Join(f.Text(), "\x00")
	if strings.Trim(s, "\x00") == "" {
		return ""
	}
	return s
}

// prefix returns at most n leading bytes of s, tolerating short input.
func prefix(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

// suffix returns the bytes of s after the first i, tolerating short input.
func suffix(s string, i int) string {
	if len(s) < i {
		return ""
	}
	return s[i:]
}
