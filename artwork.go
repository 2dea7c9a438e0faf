package id3kit

import (
	"github.com/simonhull/id3kit/id3v2"
)

// Artwork is a decoded attached picture (APIC frame).
type Artwork struct {
	// Data is the raw image bytes.
	Data []byte

	// MIMEType is the declared image type, e.g. "image/jpeg".
	MIMEType string

	// Type classifies the picture (front cover, back cover, ...).
	Type id3v2.PictureType

	// Description is the free-text picture description.
	Description string
}

// Artwork returns all attached pictures, front cover first when one is
// marked as such.
func (f *File) Artwork() []Artwork {
	var out []Artwork
	for _, frame := range f.Tags.GetAll("APIC") {
		art := Artwork{
			Data:        frame.Data(),
			MIMEType:    frame.MIMEType(),
			Description: frame.Description(),
		}
		if v, ok := frame.Get("type"); ok {
			if t, ok := v.(id3v2.PictureType); ok {
				art.Type = t
			}
		}
		if art.Type == id3v2.PictureCoverFront {
			out = append([]Artwork{art}, out...)
		} else {
			out = append(out, art)
		}
	}
	return out
}

// SetArtwork attaches a picture, replacing an existing one with the same
// description.
func (f *File) SetArtwork(art Artwork) error {
	frame, err := id3v2.NewPicture(id3v2.EncodingUTF8, art.MIMEType, art.Type, art.Description, art.Data)
	if err != nil {
		return err
	}
	return f.Tags.Add(frame)
}

// RemoveArtwork deletes all attached pictures.
func (f *File) RemoveArtwork() {
	f.Tags.DeleteAll("APIC")
}
