package id3v2

import (
	"reflect"
	"testing"
)

func genreFrame(t *testing.T, values ...string) *Frame {
	t.Helper()
	f, err := NewTextFrame("TCON", EncodingLatin1, values...)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestFrameGenres(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   []string
	}{
		{"plain name", []string{"Jazz"}, []string{"Jazz"}},
		{"bare digits", []string{"3"}, []string{"Dance"}},
		{"legacy reference", []string{"(17)"}, []string{"Rock"}},
		{"reference with refinement", []string{"(4)Eurodisco"}, []string{"Disco", "Eurodisco"}},
		{"multiple references", []string{"(3)(4)"}, []string{"Dance", "Disco"}},
		{"cover and remix", []string{"CR", "RX"}, []string{"Cover", "Remix"}},
		{"cover reference", []string{"(CR)"}, []string{"Cover"}},
		{"escaped parenthesis", []string{"((I can be your friend))"}, []string{"(I can be your friend))"}},
		{"out of range index", []string{"255"}, []string{"Unknown"}},
		{"winamp extension", []string{"40"}, []string{"Alt. Rock"}},
		{"refinement repeating the reference", []string{"(17)Rock"}, []string{"Rock"}},
		{"empty values skipped", []string{"", "Jazz"}, []string{"Jazz"}},
		{"multiple values", []string{"18", "Ambient"}, []string{"Techno", "Ambient"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := genreFrame(t, tt.values...).Genres()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Genres() of %q = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}

func TestSetGenres(t *testing.T) {
	f := genreFrame(t, "(3)")
	if err := f.SetGenres("Dance", "Disco"); err != nil {
		t.Fatal(err)
	}
	got := f.Text()
	if len(got) != 2 || got[0] != "Dance" || got[1] != "Disco" {
		t.Errorf("Text() = %q after SetGenres", got)
	}
}

func TestGenreIndex(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"Blues", 0},
		{"blues", 0},
		{"Psybient", len(Genres) - 1},
		{"Definitely Not A Genre", -1},
	}
	for _, tt := range tests {
		if got := GenreIndex(tt.name); got != tt.want {
			t.Errorf("GenreIndex(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestGenreTableSize(t *testing.T) {
	if len(Genres) != 192 {
		t.Errorf("genre table has %d entries, want 192", len(Genres))
	}
}
