package id3kit

import (
	"time"

	"github.com/simonhull/id3kit/id3v2"
)

// Chapter is a decoded chapter frame (CHAP).
type Chapter struct {
	// ElementID is the chapter's identifier inside the tag.
	ElementID string

	// Title is the chapter title, from the embedded TIT2 frame if any.
	Title string

	// Start and End are the chapter bounds.
	Start time.Duration
	End   time.Duration
}

// Chapters returns the file's chapters. When a top-level table of
// contents (CTOC) is present its ordering is used; otherwise chapters
// come back sorted by start time as they appeared in the tag.
func (f *File) Chapters() []Chapter {
	byID := make(map[string]Chapter)
	var order []string
	for _, frame := range f.Tags.GetAll("CHAP") {
		ch := chapterFromFrame(frame)
		byID[ch.ElementID] = ch
		order = append(order, ch.ElementID)
	}
	if len(byID) == 0 {
		return nil
	}

	if toc := f.topLevelTOC(); toc != nil {
		if v, ok := toc.Get("child_element_ids"); ok {
			if children, ok := v.([]string); ok && len(children) > 0 {
				order = children
			}
		}
	}

	var out []Chapter
	for _, id := range order {
		if ch, ok := byID[id]; ok {
			out = append(out, ch)
			delete(byID, id)
		}
	}
	return out
}

func (f *File) topLevelTOC() *id3v2.Frame {
	tocs := f.Tags.GetAll("CTOC")
	for _, toc := range tocs {
		if v, ok := toc.Get("flags"); ok {
			if flags, ok := v.(id3v2.CTOCFlags); ok && flags&id3v2.CTOCTopLevel != 0 {
				return toc
			}
		}
	}
	if len(tocs) > 0 {
		return tocs[0]
	}
	return nil
}

func chapterFromFrame(frame *id3v2.Frame) Chapter {
	ch := Chapter{}
	if v, ok := frame.Get("element_id"); ok {
		ch.ElementID, _ = v.(string)
	}
	get := func(name string) time.Duration {
		if v, ok := frame.Get(name); ok {
			if ms, ok := v.(uint32); ok {
				return time.Duration(ms) * time.Millisecond
			}
		}
		return 0
	}
	ch.Start = get("start_time")
	ch.End = get("end_time")
	if v, ok := frame.Get("sub_frames"); ok {
		if sub, ok := v.(*id3v2.Tags); ok {
			if text := sub.Text("TIT2"); len(text) > 0 {
				ch.Title = text[0]
			}
		}
	}
	return ch
}
