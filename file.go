package id3kit

import (
	"context"
	"errors"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/id3kit/id3v1"
	"github.com/simonhull/id3kit/id3v2"
)

// File represents an opened file with parsed ID3 tags.
//
// Frames live in Tags; Version reports what was found on disk, not what
// will be written. A file without an ID3v2 tag but with an ID3v1 trailer
// gets its fields exposed as frames, with Version set to V11.
//
// Always call Close when done:
//
//	file, err := id3kit.Open("song.mp3")
//	if err != nil {
//		return err
//	}
//	defer file.Close()
type File struct {
	// Path to the file.
	Path string

	// File size in bytes.
	Size int64

	// Version of the tag found on disk. The zero value means the file
	// carried no tag at all.
	Version id3v2.Version

	// Tags holds the parsed frames.
	Tags *id3v2.Tags

	// Header is the raw ID3v2 header, nil when no v2 tag was present.
	Header *id3v2.Header

	// V1 is the raw ID3v1 trailer, nil when none was present.
	V1 *id3v1.Tag

	// Padding is the number of padding bytes inside the v2 tag.
	Padding int

	// Warnings encountered during parsing (non-fatal issues).
	Warnings []Warning

	reader io.ReaderAt
	opts   *openOptions
}

// Open opens a file and reads its ID3 tags.
//
// Parsing is forgiving: junk frames are dropped, frames with unknown but
// valid IDs are preserved raw, and structural oddities are reported in
// File.Warnings instead of failing. Use WithStrictParsing to fail on
// them instead.
//
// A file with no tag at all opens successfully with empty Tags, so
// frames can be added and saved.
func Open(path string, opts ...Option) (*File, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Op: "open", Path: path, Err: err}
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &Error{Op: "open", Path: path, Err: err}
	}

	file, err := openReader(f, stat.Size(), path, options)
	if err != nil {
		f.Close()
		return nil, err
	}
	file.reader = f
	return file, nil
}

// openReader parses tags from an io.ReaderAt.
func openReader(r io.ReaderAt, size int64, path string, options *openOptions) (*File, error) {
	file := &File{
		Path: path,
		Size: size,
		Tags: id3v2.NewTags(),
		opts: options,
	}

	sr := io.NewSectionReader(r, 0, size)
	h, tags, padding, err := id3v2.ParseWithRegistry(sr, options.strictParsing, options.registry)
	switch {
	case err == nil:
		file.Header = h
		file.Version = h.Version
		file.Tags = tags
		file.Padding = padding
	case errors.Is(err, id3v2.ErrNoHeader):
		// No v2 tag; fall through to the v1 trailer.
	default:
		return nil, &Error{Op: "open", Path: path, Err: err}
	}

	if !options.skipID3v1 {
		if v1, _, ok := id3v1.Find(r, size); ok {
			file.V1 = v1
			if file.Header == nil {
				file.Tags = framesFromV1(v1)
				file.Version = id3v2.V11
				file.Warnings = append(file.Warnings, Warning{
					Stage:   "id3v1",
					Message: "no ID3v2 tag; fields read from the ID3v1 trailer",
				})
			}
		}
	}

	switch options.translate {
	case translateV24:
		file.Tags.UpdateToV24()
	case translateV23:
		file.Tags.UpdateToV23()
	}
	return file, nil
}

// Close releases the file handle.
//
// After Close is called, the File can still be inspected but not saved.
func (f *File) Close() error {
	if closer, ok := f.reader.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// HasTag reports whether the file carried any tag on disk.
func (f *File) HasTag() bool {
	return f.Header != nil || f.V1 != nil
}

// OpenContext opens a file with context support for cancellation.
//
// The context is checked before parsing starts; a single file parses
// quickly enough that finer-grained cancellation is not worthwhile.
func OpenContext(ctx context.Context, path string, opts ...Option) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Open(path, opts...)
}

// OpenMany opens multiple files concurrently, up to runtime.NumCPU() at
// a time. Results are returned in input order. If any file fails, all
// successfully opened files are closed and an error is returned.
func OpenMany(ctx context.Context, paths ...string) ([]*File, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*File, len(paths))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			file, err := Open(path)
			if err != nil {
				return err
			}
			results[i] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, file := range results {
			if file != nil {
				file.Close()
			}
		}
		return nil, err
	}
	return results, nil
}

// v2TagExtent returns the on-disk size of the ID3v2 tag at the start of
// the file, header included, or 0 when there is none. The declared size
// is trusted without validating the version so a stale or foreign tag can
// still be replaced or removed.
func v2TagExtent(r io.ReaderAt) int64 {
	var head [10]byte
	if _, err := r.ReadAt(head[:], 0); err != nil {
		return 0
	}
	if head[0] != 'I' || head[1] != 'D' || head[2] != '3' {
		return 0
	}
	return 10 + int64(id3v2.Syncsafe(head[6:10]))
}
