package id3v2

import (
	"regexp"
	"strconv"
	"strings"
)

// Genres is the ID3v1 genre table with the Winamp extensions. The TCON
// frame may reference entries by index.
var Genres = []string{
	"Blues", "Classic Rock", "Country", "Dance", "Disco", "Funk", "Grunge",
	"Hip-Hop", "Jazz", "Metal", "New Age", "Oldies", "Other", "Pop", "R&B",
	"Rap", "Reggae", "Rock", "Techno", "Industrial", "Alternative", "Ska",
	"Death Metal", "Pranks", "Soundtrack", "Euro-Techno", "Ambient",
	"Trip-Hop", "Vocal", "Jazz+Funk", "Fusion", "Trance", "Classical",
	"Instrumental", "Acid", "House", "Game", "Sound Clip", "Gospel", "Noise",
	"Alt. Rock", "Bass", "Soul", "Punk", "Space", "Meditative",
	"Instrumental Pop", "Instrumental Rock", "Ethnic", "Gothic", "Darkwave",
	"Techno-Industrial", "Electronic", "Pop-Folk", "Eurodance", "Dream",
	"Southern Rock", "Comedy", "Cult", "Gangsta Rap", "Top 40",
	"Christian Rap", "Pop/Funk", "Jungle", "Native American", "Cabaret",
	"New Wave", "Psychedelic", "Rave", "Showtunes", "Trailer", "Lo-Fi",
	"Tribal", "Acid Punk", "Acid Jazz", "Polka", "Retro", "Musical",
	"Rock & Roll", "Hard Rock", "Folk", "Folk-Rock", "National Folk",
	"Swing", "Fast-Fusion", "Bebop", "Latin", "Revival", "Celtic",
	"Bluegrass", "Avantgarde", "Gothic Rock", "Progressive Rock",
	"Psychedelic Rock", "Symphonic Rock", "Slow Rock", "Big Band", "Chorus",
	"Easy Listening", "Acoustic", "Humour", "Speech", "Chanson", "Opera",
	"Chamber Music", "Sonata", "Symphony", "Booty Bass", "Primus",
	"Porn Groove", "Satire", "Slow Jam", "Club", "Tango", "Samba",
	"Folklore", "Ballad", "Power Ballad", "Rhythmic Soul", "Freestyle",
	"Duet", "Punk Rock", "Drum Solo", "A Cappella", "Euro-House",
	"Dance Hall", "Goa", "Drum & Bass", "Club-House", "Hardcore", "Terror",
	"Indie", "BritPop", "Afro-Punk", "Polsk Punk", "Beat",
	"Christian Gangsta Rap", "Heavy Metal", "Black Metal", "Crossover",
	"Contemporary Christian", "Christian Rock", "Merengue", "Salsa",
	"Thrash Metal", "Anime", "JPop", "Synthpop", "Abstract", "Art Rock",
	"Baroque", "Bhangra", "Big Beat", "Breakbeat", "Chillout", "Downtempo",
	"Dub", "EBM", "Eclectic", "Electro", "Electroclash", "Emo",
	"Experimental", "Garage", "Global", "IDM", "Illbient", "Industro-Goth",
	"Jam Band", "Krautrock", "Leftfield", "Lounge", "Math Rock",
	"New Romantic", "Nu-Breakz", "Post-Punk", "Post-Rock", "Psytrance",
	"Shoegaze", "Space Rock", "Trop Rock", "World Music", "Neoclassical",
	"Audiobook", "Audio Theatre", "Neue Deutsche Welle", "Podcast",
	"Indie Rock", "G-Funk", "Dubstep", "Garage Rock", "Psybient",
}

var genreRefRe = regexp.MustCompile(`^((?:\((?:[0-9]+|RX|CR)\))*)(.*)$`)

// Genres expands the values of a genre frame: bare numbers and the legacy
// "(NN)" references become genre names, "CR" and "RX" become Cover and
// Remix, and anything else passes through.
func (f *Frame) Genres() []string {
	var out []string
	for _, value := range f.Text() {
		switch {
		case value == "":
			continue
		case isDigits(value):
			out = append(out, genreByIndex(value))
		case value == "CR":
			out = append(out, "Cover")
		case value == "RX":
			out = append(out, "Remix")
		default:
			m := genreRefRe.FindStringSubmatch(value)
			refs, name := m[1], m[2]
			var expanded []string
			if refs != "" {
				for _, ref := range strings.Split(refs[1:len(refs)-1], ")(") {
					switch {
					case ref == "CR":
						expanded = append(expanded, "Cover")
					case ref == "RX":
						expanded = append(expanded, "Remix")
					default:
						expanded = append(expanded, genreByIndex(ref))
					}
				}
			}
			if name != "" {
				// "((" escapes a literal opening parenthesis.
				if strings.HasPrefix(name, "((") {
					name = name[1:]
				}
				if !containsString(expanded, name) {
					expanded = append(expanded, name)
				}
			}
			out = append(out, expanded...)
		}
	}
	return out
}

// SetGenres replaces the values of a genre frame with plain genre names.
func (f *Frame) SetGenres(genres ...string) error {
	return f.SetText(genres...)
}

func genreByIndex(s string) string {
	n, err := strconv.Atoi(s)
	if err != nil || n >= len(Genres) {
		return "Unknown"
	}
	return Genres[n]
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

// GenreIndex returns the index of a genre name in the table, or -1.
func GenreIndex(name string) int {
	for i, g := range Genres {
		if strings.EqualFold(g, name) {
			return i
		}
	}
	return -1
}
