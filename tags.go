package id3kit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/simonhull/id3kit/id3v2"
)

// Convenience accessors for the most common frames. They read and write
// File.Tags; anything not covered here is available through the frame API
// directly.

// Title returns the track title (TIT2).
func (f *File) Title() string { return f.firstText("TIT2") }

// SetTitle sets the track title (TIT2).
func (f *File) SetTitle(v string) error { return f.setText("TIT2", v) }

// Artist returns the lead artist (TPE1).
func (f *File) Artist() string { return f.firstText("TPE1") }

// SetArtist sets the lead artist (TPE1).
func (f *File) SetArtist(v string) error { return f.setText("TPE1", v) }

// Album returns the album title (TALB).
func (f *File) Album() string { return f.firstText("TALB") }

// SetAlbum sets the album title (TALB).
func (f *File) SetAlbum(v string) error { return f.setText("TALB", v) }

// AlbumArtist returns the album artist (TPE2).
func (f *File) AlbumArtist() string { return f.firstText("TPE2") }

// SetAlbumArtist sets the album artist (TPE2).
func (f *File) SetAlbumArtist(v string) error { return f.setText("TPE2", v) }

// Genres returns the genre names (TCON), with legacy numeric references
// expanded.
func (f *File) Genres() []string {
	if frame := f.Tags.Get("TCON"); frame != nil {
		return frame.Genres()
	}
	return nil
}

// SetGenres sets the genre names (TCON).
func (f *File) SetGenres(genres ...string) error {
	return f.setTextList("TCON", genres)
}

// Date returns the recording time (TDRC), as precise as the tag states:
// "2004", "2004-03-06" or a full timestamp.
func (f *File) Date() string { return f.firstText("TDRC") }

// SetDate sets the recording time (TDRC) from a timestamp string.
func (f *File) SetDate(v string) error { return f.setText("TDRC", v) }

// Track returns the track number and the track total (TRCK); either is 0
// when absent.
func (f *File) Track() (int, int) { return splitOfTotal(f.firstText("TRCK")) }

// SetTrack sets the track number, and the track total if it is non-zero.
func (f *File) SetTrack(n, total int) error {
	return f.setText("TRCK", joinOfTotal(n, total))
}

// Disc returns the disc number and the disc total (TPOS).
func (f *File) Disc() (int, int) { return splitOfTotal(f.firstText("TPOS")) }

// SetDisc sets the disc number, and the disc total if it is non-zero.
func (f *File) SetDisc(n, total int) error {
	return f.setText("TPOS", joinOfTotal(n, total))
}

// Comment returns the text of the first comment frame (COMM).
func (f *File) Comment() string {
	if comments := f.Tags.GetAll("COMM"); len(comments) > 0 {
		if text := comments[0].Text(); len(text) > 0 {
			return text[0]
		}
	}
	return ""
}

// SetComment sets an undescribed English comment (COMM), the form most
// players display.
func (f *File) SetComment(v string) error {
	frame, err := id3v2.NewComment(id3v2.EncodingUTF8, "eng", "", v)
	if err != nil {
		return err
	}
	return f.Tags.Add(frame)
}

// Lyrics returns the unsynchronized lyrics (USLT).
func (f *File) Lyrics() string {
	if frames := f.Tags.GetAll("USLT"); len(frames) > 0 {
		if text := frames[0].Text(); len(text) > 0 {
			return text[0]
		}
	}
	return ""
}

// SetLyrics sets the unsynchronized lyrics (USLT).
func (f *File) SetLyrics(v string) error {
	frame, err := id3v2.NewFrame("USLT", map[string]any{
		"encoding": id3v2.EncodingUTF8,
		"lang":     "eng",
		"text":     v,
	})
	if err != nil {
		return err
	}
	return f.Tags.Add(frame)
}

func (f *File) firstText(id string) string {
	if text := f.Tags.Text(id); len(text) > 0 {
		return text[0]
	}
	return ""
}

func (f *File) setText(id, v string) error {
	return f.setTextList(id, []string{v})
}

func (f *File) setTextList(id string, values []string) error {
	frame, err := id3v2.NewTextFrame(id, id3v2.EncodingUTF8, values...)
	if err != nil {
		return err
	}
	return f.Tags.Add(frame)
}

// splitOfTotal parses "3" or "3/12" style numbering.
func splitOfTotal(s string) (int, int) {
	if s == "" {
		return 0, 0
	}
	parts := strings.SplitN(s, "/", 2)
	n, _ := strconv.Atoi(parts[0])
	total := 0
	if len(parts) == 2 {
		total, _ = strconv.Atoi(parts[1])
	}
	return n, total
}

func joinOfTotal(n, total int) string {
	if total > 0 {
		return fmt.Sprintf("%d/%d", n, total)
	}
	return strconv.Itoa(n)
}
