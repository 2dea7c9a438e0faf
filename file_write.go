package id3kit

import (
	"bytes"
	"os"

	"github.com/simonhull/id3kit/id3v1"
	"github.com/simonhull/id3kit/id3v2"
	"github.com/simonhull/id3kit/internal/fileio"
)

// Save writes the current frames back to the file in place.
//
// The tag is rewritten at the start of the file. When the new tag fits
// in the space of the old one, only the tag region is touched and
// trailing content stays byte-identical; otherwise the content is
// shifted once to make room, and padding is added so the next save
// likely fits without shifting.
//
//	err := file.Save(
//	    id3kit.WithV2Version(id3v2.V23),
//	    id3kit.WithV1Policy(id3kit.V1Create),
//	)
func (f *File) Save(opts ...SaveOption) error {
	options := defaultSaveOptions()
	for _, opt := range opts {
		opt(options)
	}

	if options.version.Major == 3 {
		f.Tags.UpdateToV23()
	}

	fh, err := os.OpenFile(f.Path, os.O_RDWR, 0)
	if err != nil {
		return &Error{Op: "save", Path: f.Path, Err: err}
	}
	defer fh.Close()

	if err := f.save(fh, options); err != nil {
		return &Error{Op: "save", Path: f.Path, Err: err}
	}
	return nil
}

func (f *File) save(fh *os.File, options *saveOptions) error {
	size, err := fileio.Size(fh)
	if err != nil {
		return err
	}
	available := v2TagExtent(fh)
	if available > size {
		available = size
	}

	cfg := &id3v2.SaveConfig{
		Version:  options.version,
		V23Sep:   options.v23Sep,
		Compress: options.compress,
	}
	data, err := f.Tags.Render(cfg, int(available), size-available, options.padding)
	if err != nil {
		return err
	}

	// Resize the tag region, then overwrite it.
	if delta := int64(len(data)) - available; delta > 0 {
		if err := fileio.InsertBytes(fh, delta, available); err != nil {
			return err
		}
	} else if delta < 0 {
		if err := fileio.DeleteBytes(fh, -delta, int64(len(data))); err != nil {
			return err
		}
	}
	if _, err := fh.WriteAt(data, 0); err != nil {
		return err
	}

	if err := f.saveV1(fh, options.v1); err != nil {
		return err
	}

	size, err = fileio.Size(fh)
	if err != nil {
		return err
	}
	f.Size = size
	f.Version = options.version
	return nil
}

func (f *File) saveV1(fh *os.File, policy V1Policy) error {
	size, err := fileio.Size(fh)
	if err != nil {
		return err
	}
	_, offset, present := id3v1.Find(fh, size)

	switch policy {
	case V1Remove:
		if present {
			f.V1 = nil
			return fh.Truncate(offset)
		}
		return nil
	case V1Update:
		if !present {
			return nil
		}
	case V1Create:
		if !present {
			offset = size
		}
	}

	v1 := v1FromTags(f.Tags)
	f.V1 = v1
	_, err = fh.WriteAt(v1.Render(), offset)
	return err
}

// Delete removes tags from the file. By default both the ID3v2 tag and
// the ID3v1 trailer are removed; KeepID3v1 and KeepID3v2 restrict that.
// The in-memory frames are cleared along with the v2 tag.
func (f *File) Delete(opts ...DeleteOption) error {
	options := &deleteOptions{}
	for _, opt := range opts {
		opt(options)
	}

	fh, err := os.OpenFile(f.Path, os.O_RDWR, 0)
	if err != nil {
		return &Error{Op: "delete", Path: f.Path, Err: err}
	}
	defer fh.Close()

	if !options.keepV1 {
		size, err := fileio.Size(fh)
		if err != nil {
			return &Error{Op: "delete", Path: f.Path, Err: err}
		}
		var trailer [id3v1.TagSize]byte
		if size >= id3v1.TagSize {
			if _, err := fh.ReadAt(trailer[:], size-id3v1.TagSize); err == nil &&
				bytes.HasPrefix(trailer[:], []byte("TAG")) {
				if err := fh.Truncate(size - id3v1.TagSize); err != nil {
					return &Error{Op: "delete", Path: f.Path, Err: err}
				}
				f.V1 = nil
			}
		}
	}

	if !options.keepV2 {
		if extent := v2TagExtent(fh); extent > 0 {
			size, err := fileio.Size(fh)
			if err != nil {
				return &Error{Op: "delete", Path: f.Path, Err: err}
			}
			if extent > size {
				extent = size
			}
			if err := fileio.DeleteBytes(fh, extent, 0); err != nil {
				return &Error{Op: "delete", Path: f.Path, Err: err}
			}
		}
		f.Tags.Clear()
		f.Header = nil
		f.Padding = 0
	}

	size, err := fileio.Size(fh)
	if err != nil {
		return &Error{Op: "delete", Path: f.Path, Err: err}
	}
	f.Size = size
	return nil
}
