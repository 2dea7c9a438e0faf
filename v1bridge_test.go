package id3kit

import (
	"testing"

	"github.com/simonhull/id3kit/id3v1"
	"github.com/simonhull/id3kit/id3v2"
)

func TestFramesFromV1(t *testing.T) {
	tags := framesFromV1(&id3v1.Tag{
		Title:   "Title",
		Artist:  "Artist",
		Year:    "1999",
		Comment: "note",
		Track:   4,
		Genre:   8, // Jazz
	})

	if got := tags.Text("TIT2"); len(got) != 1 || got[0] != "Title" {
		t.Errorf("TIT2 = %q", got)
	}
	if got := tags.Text("TALB"); got != nil {
		t.Errorf("TALB = %q, want nothing for an empty album", got)
	}
	if got := tags.Text("TRCK"); len(got) != 1 || got[0] != "4" {
		t.Errorf("TRCK = %q", got)
	}
	if got := tags.Text("TCON"); len(got) != 1 || got[0] != "8" {
		t.Errorf("TCON = %q, want the raw genre index", got)
	}
	comments := tags.GetAll("COMM")
	if len(comments) != 1 || comments[0].Description() != "ID3v1 Comment" {
		t.Errorf("COMM = %v", comments)
	}
}

func TestV1FromTags(t *testing.T) {
	tags := id3v2.NewTags()
	add := func(id string, text ...string) {
		f, err := id3v2.NewTextFrame(id, id3v2.EncodingUTF8, text...)
		if err != nil {
			t.Fatal(err)
		}
		tags.Add(f)
	}
	add("TIT2", "Title")
	add("TPE1", "Artist")
	add("TRCK", "3/12")
	add("TCON", "Jazz")
	add("TDRC", "1999-06-01")

	v1 := v1FromTags(tags)
	if v1.Title != "Title" || v1.Artist != "Artist" {
		t.Errorf("v1 = %+v", v1)
	}
	if v1.Track != 3 {
		t.Errorf("Track = %d, want the track part of 3/12", v1.Track)
	}
	if v1.Genre != 8 {
		t.Errorf("Genre = %d, want the Jazz index", v1.Genre)
	}
	if v1.Year != "1999" {
		t.Errorf("Year = %q, want the timestamp truncated to the year", v1.Year)
	}
}

func TestV1FromTagsUnsetFields(t *testing.T) {
	v1 := v1FromTags(id3v2.NewTags())
	if v1.Genre != id3v1.GenreNone {
		t.Errorf("Genre = %d, want unset", v1.Genre)
	}
	if v1.Track != 0 || v1.Title != "" {
		t.Errorf("v1 = %+v, want everything unset", v1)
	}
}
