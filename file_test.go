package id3kit

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/simonhull/id3kit/id3v1"
	"github.com/simonhull/id3kit/id3v2"
)

var fakeAudio = append([]byte{0xff, 0xfb, 0x90, 0x00}, bytes.Repeat([]byte{0xa5}, 2048)...)

func writeTestFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.mp3")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func openTestFile(t *testing.T, path string, opts ...Option) *File {
	t.Helper()
	f, err := Open(path, opts...)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestOpenNoTag(t *testing.T) {
	f := openTestFile(t, writeTestFile(t, fakeAudio))
	if f.HasTag() {
		t.Error("HasTag() = true for a bare audio file")
	}
	if f.Tags.Len() != 0 {
		t.Errorf("Tags.Len() = %d, want 0", f.Tags.Len())
	}
	if f.Title() != "" {
		t.Errorf("Title() = %q, want empty", f.Title())
	}
}

func TestSaveAndReopen(t *testing.T) {
	path := writeTestFile(t, fakeAudio)

	f := openTestFile(t, path)
	if err := f.SetTitle("Airbag"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetArtist("Radiohead"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetAlbum("OK Computer"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetTrack(1, 12); err != nil {
		t.Fatal(err)
	}
	if err := f.SetComment("opener"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetGenres("Alt. Rock"); err != nil {
		t.Fatal(err)
	}
	if err := f.Save(); err != nil {
		t.Fatal(err)
	}

	back := openTestFile(t, path)
	if back.Version != id3v2.V24 {
		t.Errorf("Version = %v, want v2.4", back.Version)
	}
	if got := back.Title(); got != "Airbag" {
		t.Errorf("Title() = %q", got)
	}
	if got := back.Artist(); got != "Radiohead" {
		t.Errorf("Artist() = %q", got)
	}
	if got := back.Album(); got != "OK Computer" {
		t.Errorf("Album() = %q", got)
	}
	if n, total := back.Track(); n != 1 || total != 12 {
		t.Errorf("Track() = %d/%d, want 1/12", n, total)
	}
	if got := back.Comment(); got != "opener" {
		t.Errorf("Comment() = %q", got)
	}
	if got := back.Genres(); len(got) != 1 || got[0] != "Alt. Rock" {
		t.Errorf("Genres() = %q", got)
	}
}

func TestSaveKeepsAudioIntact(t *testing.T) {
	path := writeTestFile(t, fakeAudio)

	f := openTestFile(t, path)
	f.SetTitle("A title that takes up some room")
	if err := f.Save(); err != nil {
		t.Fatal(err)
	}

	tagged, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasSuffix(tagged, fakeAudio) {
		t.Fatal("audio data was altered by the first save")
	}

	// A smaller rewrite fits into the existing padding; the file must not
	// change size and the audio must stay byte-identical.
	f2 := openTestFile(t, path)
	f2.SetTitle("Short")
	if err := f2.Save(); err != nil {
		t.Fatal(err)
	}

	rewritten, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(rewritten) != len(tagged) {
		t.Errorf("file grew from %d to %d bytes on an in-place save", len(tagged), len(rewritten))
	}
	if !bytes.HasSuffix(rewritten, fakeAudio) {
		t.Error("audio data was altered by an in-place save")
	}
}

func TestSaveV23(t *testing.T) {
	path := writeTestFile(t, fakeAudio)

	f := openTestFile(t, path)
	f.SetTitle("Creep")
	f.SetDate("1992-09-21")
	if err := f.Save(WithV2Version(id3v2.V23)); err != nil {
		t.Fatal(err)
	}

	back := openTestFile(t, path, WithoutTranslation())
	if back.Version.Major != 3 {
		t.Errorf("Version = %v, want major 3", back.Version)
	}
	if got := back.Title(); got != "Creep" {
		t.Errorf("Title() = %q", got)
	}
	// Downgrading splits the timestamp into the legacy date frames.
	if got := back.Tags.Text("TYER"); len(got) != 1 || got[0] != "1992" {
		t.Errorf("TYER = %q", got)
	}

	// Default translation folds them back together on open.
	translated := openTestFile(t, path)
	if got := translated.Date(); got != "1992-09-21" {
		t.Errorf("Date() = %q after translation", got)
	}
}

func TestV1Policies(t *testing.T) {
	hasV1 := func(t *testing.T, path string) bool {
		t.Helper()
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		return len(data) >= id3v1.TagSize &&
			bytes.HasPrefix(data[len(data)-id3v1.TagSize:], []byte("TAG"))
	}

	t.Run("update does not invent a trailer", func(t *testing.T) {
		path := writeTestFile(t, fakeAudio)
		f := openTestFile(t, path)
		f.SetTitle("T")
		if err := f.Save(); err != nil {
			t.Fatal(err)
		}
		if hasV1(t, path) {
			t.Error("default policy created an ID3v1 trailer")
		}
	})

	t.Run("create writes a trailer", func(t *testing.T) {
		path := writeTestFile(t, fakeAudio)
		f := openTestFile(t, path)
		f.SetTitle("Let Down")
		f.SetArtist("Radiohead")
		if err := f.Save(WithV1Policy(V1Create)); err != nil {
			t.Fatal(err)
		}
		if !hasV1(t, path) {
			t.Fatal("V1Create did not write a trailer")
		}
		back := openTestFile(t, path)
		if back.V1 == nil || back.V1.Title != "Let Down" {
			t.Errorf("V1 = %+v", back.V1)
		}
	})

	t.Run("remove strips a trailer", func(t *testing.T) {
		path := writeTestFile(t, fakeAudio)
		f := openTestFile(t, path)
		f.SetTitle("T")
		if err := f.Save(WithV1Policy(V1Create)); err != nil {
			t.Fatal(err)
		}
		f2 := openTestFile(t, path)
		if err := f2.Save(WithV1Policy(V1Remove)); err != nil {
			t.Fatal(err)
		}
		if hasV1(t, path) {
			t.Error("V1Remove left the trailer in place")
		}
	})
}

func TestOpenV1Only(t *testing.T) {
	v1 := &id3v1.Tag{
		Title:  "Nude",
		Artist: "Radiohead",
		Album:  "In Rainbows",
		Year:   "2007",
		Track:  3,
		Genre:  17, // Rock
	}
	path := writeTestFile(t, append(append([]byte{}, fakeAudio...), v1.Render()...))

	f := openTestFile(t, path)
	if f.Version != id3v2.V11 {
		t.Errorf("Version = %v, want v1.1", f.Version)
	}
	if f.V1 == nil {
		t.Fatal("V1 = nil")
	}
	if got := f.Title(); got != "Nude" {
		t.Errorf("Title() = %q", got)
	}
	if n, _ := f.Track(); n != 3 {
		t.Errorf("Track() = %d", n)
	}
	if got := f.Genres(); len(got) != 1 || got[0] != "Rock" {
		t.Errorf("Genres() = %q, want the numeric genre expanded", got)
	}
	if len(f.Warnings) == 0 {
		t.Error("expected a warning about the v1 fallback")
	}
}

func TestOpenSkipsV1WhenAsked(t *testing.T) {
	v1 := &id3v1.Tag{Title: "T", Genre: id3v1.GenreNone}
	path := writeTestFile(t, append(append([]byte{}, fakeAudio...), v1.Render()...))

	f := openTestFile(t, path, WithoutID3v1())
	if f.V1 != nil || f.HasTag() {
		t.Error("WithoutID3v1 still surfaced the trailer")
	}
}

func TestStrictParsing(t *testing.T) {
	path := writeTestFile(t, fakeAudio)
	f := openTestFile(t, path)
	f.SetTitle("T")
	if err := f.Save(); err != nil {
		t.Fatal(err)
	}

	// Set an undefined header flag bit.
	fh, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fh.WriteAt([]byte{0x01}, 5); err != nil {
		t.Fatal(err)
	}
	fh.Close()

	if _, err := Open(path, WithStrictParsing()); err == nil {
		t.Error("strict parsing accepted undefined flag bits")
	} else {
		var e *MalformedHeaderError
		if !errors.As(err, &e) {
			t.Errorf("error = %v, want a malformed header error", err)
		}
	}

	lenient := openTestFile(t, path)
	if got := lenient.Title(); got != "T" {
		t.Errorf("lenient Title() = %q", got)
	}
}

func TestDelete(t *testing.T) {
	path := writeTestFile(t, fakeAudio)
	f := openTestFile(t, path)
	f.SetTitle("T")
	if err := f.Save(WithV1Policy(V1Create)); err != nil {
		t.Fatal(err)
	}

	f2 := openTestFile(t, path)
	if err := f2.Delete(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, fakeAudio) {
		t.Errorf("file is %d bytes after delete, want the bare %d-byte audio", len(data), len(fakeAudio))
	}
	if f2.HasTag() || f2.Tags.Len() != 0 {
		t.Error("in-memory state still carries a tag after delete")
	}
}

func TestDeleteKeepV1(t *testing.T) {
	path := writeTestFile(t, fakeAudio)
	f := openTestFile(t, path)
	f.SetTitle("T")
	if err := f.Save(WithV1Policy(V1Create)); err != nil {
		t.Fatal(err)
	}

	f2 := openTestFile(t, path)
	if err := f2.Delete(KeepID3v1()); err != nil {
		t.Fatal(err)
	}

	back := openTestFile(t, path)
	if back.Header != nil {
		t.Error("v2 tag survived the delete")
	}
	if back.V1 == nil {
		t.Error("v1 trailer did not survive KeepID3v1")
	}
}

func TestOpenMany(t *testing.T) {
	paths := make([]string, 3)
	dir := t.TempDir()
	for i := range paths {
		paths[i] = filepath.Join(dir, string(rune('a'+i))+".mp3")
		if err := os.WriteFile(paths[i], fakeAudio, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := OpenMany(context.Background(), paths...)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()
	if len(files) != 3 {
		t.Fatalf("got %d files, want 3", len(files))
	}
	for i, f := range files {
		if f.Path != paths[i] {
			t.Errorf("files[%d].Path = %q, want %q (input order)", i, f.Path, paths[i])
		}
	}

	if _, err := OpenMany(context.Background(), paths[0], filepath.Join(dir, "missing.mp3")); err == nil {
		t.Error("OpenMany succeeded despite a missing file")
	}
}

func TestOpenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := OpenContext(ctx, writeTestFile(t, fakeAudio)); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestArtworkRoundtrip(t *testing.T) {
	path := writeTestFile(t, fakeAudio)
	f := openTestFile(t, path)
	art := Artwork{
		Data:        []byte{0x89, 'P', 'N', 'G'},
		MIMEType:    "image/png",
		Type:        id3v2.PictureCoverFront,
		Description: "cover",
	}
	if err := f.SetArtwork(art); err != nil {
		t.Fatal(err)
	}
	if err := f.Save(); err != nil {
		t.Fatal(err)
	}

	back := openTestFile(t, path)
	got := back.Artwork()
	if len(got) != 1 {
		t.Fatalf("Artwork() returned %d pictures, want 1", len(got))
	}
	if !bytes.Equal(got[0].Data, art.Data) || got[0].MIMEType != art.MIMEType ||
		got[0].Type != art.Type || got[0].Description != art.Description {
		t.Errorf("Artwork() = %+v, want %+v", got[0], art)
	}

	back.RemoveArtwork()
	if len(back.Artwork()) != 0 {
		t.Error("RemoveArtwork left pictures behind")
	}
}

func TestChaptersRoundtrip(t *testing.T) {
	path := writeTestFile(t, fakeAudio)
	f := openTestFile(t, path)

	addChapter := func(id, title string, start, end int) {
		sub := id3v2.NewTags()
		tit, err := id3v2.NewTextFrame("TIT2", id3v2.EncodingUTF8, title)
		if err != nil {
			t.Fatal(err)
		}
		sub.Add(tit)
		chap, err := id3v2.NewFrame("CHAP", map[string]any{
			"element_id": id,
			"start_time": start,
			"end_time":   end,
			"sub_frames": sub,
		})
		if err != nil {
			t.Fatal(err)
		}
		if err := f.Tags.Add(chap); err != nil {
			t.Fatal(err)
		}
	}
	addChapter("chp1", "Second", 60000, 120000)
	addChapter("chp0", "First", 0, 60000)

	toc, err := id3v2.NewFrame("CTOC", map[string]any{
		"element_id":        "toc",
		"flags":             id3v2.CTOCTopLevel | id3v2.CTOCOrdered,
		"child_element_ids": []string{"chp0", "chp1"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Tags.Add(toc); err != nil {
		t.Fatal(err)
	}
	if err := f.Save(); err != nil {
		t.Fatal(err)
	}

	back := openTestFile(t, path)
	chapters := back.Chapters()
	if len(chapters) != 2 {
		t.Fatalf("Chapters() returned %d entries, want 2", len(chapters))
	}
	// The table of contents decides the order, not tag order.
	if chapters[0].Title != "First" || chapters[1].Title != "Second" {
		t.Errorf("chapter order = %q, %q", chapters[0].Title, chapters[1].Title)
	}
	if chapters[0].End.Seconds() != 60 {
		t.Errorf("chapters[0].End = %v, want 1m0s", chapters[0].End)
	}
}

func TestLyricsRoundtrip(t *testing.T) {
	path := writeTestFile(t, fakeAudio)
	f := openTestFile(t, path)
	if err := f.SetLyrics("and I will see you\nin the next life"); err != nil {
		t.Fatal(err)
	}
	if err := f.Save(); err != nil {
		t.Fatal(err)
	}

	back := openTestFile(t, path)
	if got := back.Lyrics(); got != "and I will see you\nin the next life" {
		t.Errorf("Lyrics() = %q", got)
	}
}
