package id3kit

import (
	"strconv"
	"strings"

	"github.com/simonhull/id3kit/id3v1"
	"github.com/simonhull/id3kit/id3v2"
)

// framesFromV1 exposes an ID3v1 trailer as frames. The genre byte becomes
// a numeric TCON value, which translation expands to a name.
func framesFromV1(t *id3v1.Tag) *id3v2.Tags {
	tags := id3v2.NewTags()
	add := func(id, value string) {
		if value == "" {
			return
		}
		if f, err := id3v2.NewTextFrame(id, id3v2.EncodingLatin1, value); err == nil {
			tags.Add(f)
		}
	}
	add("TIT2", t.Title)
	add("TPE1", t.Artist)
	add("TALB", t.Album)
	add("TDRC", t.Year)
	if t.Comment != "" {
		if f, err := id3v2.NewComment(id3v2.EncodingLatin1, "eng", "ID3v1 Comment", t.Comment); err == nil {
			tags.Add(f)
		}
	}
	if t.Track != 0 {
		add("TRCK", strconv.Itoa(int(t.Track)))
	}
	if t.Genre != id3v1.GenreNone {
		add("TCON", strconv.Itoa(int(t.Genre)))
	}
	return tags
}

// v1FromTags reduces the current frames to an ID3v1.1 trailer. Long
// values are truncated and non-Latin-1 characters replaced when the
// trailer is rendered.
func v1FromTags(tags *id3v2.Tags) *id3v1.Tag {
	t := &id3v1.Tag{Genre: id3v1.GenreNone}

	first := func(key string) string {
		if text := tags.Text(key); len(text) > 0 {
			return text[0]
		}
		return ""
	}
	t.Title = first("TIT2")
	t.Artist = first("TPE1")
	t.Album = first("TALB")

	if comments := tags.GetAll("COMM"); len(comments) > 0 {
		if text := comments[0].Text(); len(text) > 0 {
			t.Comment = text[0]
		}
	}

	// "3/12" style track numbers keep only the track part.
	if track := first("TRCK"); track != "" {
		n, err := strconv.Atoi(strings.SplitN(track, "/", 2)[0])
		if err == nil && n > 0 && n <= 255 {
			t.Track = byte(n)
		}
	}

	if f := tags.Get("TCON"); f != nil {
		if genres := f.Genres(); len(genres) > 0 {
			if i := id3v2.GenreIndex(genres[0]); i >= 0 {
				t.Genre = byte(i)
			}
		}
	}

	year := strings.Join(tags.Text("TDRC"), "\x00")
	if year == "" {
		year = strings.Join(tags.Text("TYER"), "\x00")
	}
	if len(year) > 4 {
		year = year[:4]
	}
	t.Year = year
	return t
}
