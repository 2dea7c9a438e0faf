// Package fileio provides bounds-checked reads and in-place byte splicing
// for files holding tag data.
package fileio

import (
	"fmt"
	"io"
)

// bufferSize is the chunk size used when shifting file content.
const bufferSize = 1 << 16

// File is the subset of *os.File needed to resize a tag region in place.
type File interface {
	io.ReaderAt
	io.WriterAt
	io.Seeker
	Truncate(size int64) error
}

// Size returns the current size of f.
func Size(f File) (int64, error) {
	return f.Seek(0, io.SeekEnd)
}

// InsertBytes grows f by size bytes at offset. Bytes from offset onward are
// shifted toward the end of the file; the content of the new region is
// unspecified and must be overwritten by the caller.
//
// The operation is best-effort safe: it never touches bytes before offset,
// but it is not crash-atomic.
func InsertBytes(f File, size, offset int64) error {
	if size < 0 || offset < 0 {
		return fmt.Errorf("insert %d bytes at %d: negative argument", size, offset)
	}
	fileSize, err := Size(f)
	if err != nil {
		return fmt.Errorf("insert bytes: %w", err)
	}
	if offset > fileSize {
		return fmt.Errorf("insert at %d: beyond end of file (size %d)", offset, fileSize)
	}
	if err := f.Truncate(fileSize + size); err != nil {
		return fmt.Errorf("insert bytes: grow file: %w", err)
	}

	// Move the tail in chunks, back to front, so chunks never overlap
	// their own destination.
	buf := make([]byte, bufferSize)
	remaining := fileSize - offset
	for remaining > 0 {
		n := int64(len(buf))
		if n > remaining {
			n = remaining
		}
		readAt := offset + remaining - n
		if _, err := f.ReadAt(buf[:n], readAt); err != nil {
			return fmt.Errorf("insert bytes: read at %d: %w", readAt, err)
		}
		if _, err := f.WriteAt(buf[:n], readAt+size); err != nil {
			return fmt.Errorf("insert bytes: write at %d: %w", readAt+size, err)
		}
		remaining -= n
	}
	return nil
}

// DeleteBytes removes size bytes at offset, shifting the remainder of the
// file toward the front and truncating it.
func DeleteBytes(f File, size, offset int64) error {
	if size < 0 || offset < 0 {
		return fmt.Errorf("delete %d bytes at %d: negative argument", size, offset)
	}
	fileSize, err := Size(f)
	if err != nil {
		return fmt.Errorf("delete bytes: %w", err)
	}
	if offset+size > fileSize {
		return fmt.Errorf("delete %d bytes at %d: beyond end of file (size %d)",
			size, offset, fileSize)
	}

	buf := make([]byte, bufferSize)
	src := offset + size
	dst := offset
	for src < fileSize {
		n := int64(len(buf))
		if n > fileSize-src {
			n = fileSize - src
		}
		if _, err := f.ReadAt(buf[:n], src); err != nil {
			return fmt.Errorf("delete bytes: read at %d: %w", src, err)
		}
		if _, err := f.WriteAt(buf[:n], dst); err != nil {
			return fmt.Errorf("delete bytes: write at %d: %w", dst, err)
		}
		src += n
		dst += n
	}
	if err := f.Truncate(fileSize - size); err != nil {
		return fmt.Errorf("delete bytes: shrink file: %w", err)
	}
	return nil
}

// SafeReader wraps io.ReaderAt with bounds checking and contextual errors.
type SafeReader struct {
	r    io.ReaderAt
	path string
	size int64
}

// NewSafeReader creates a new SafeReader.
func NewSafeReader(r io.ReaderAt, size int64, path string) *SafeReader {
	return &SafeReader{r: r, size: size, path: path}
}

// Path returns the file path associated with this reader.
func (sr *SafeReader) Path() string { return sr.path }

// Size returns the total size of the underlying data.
func (sr *SafeReader) Size() int64 { return sr.size }

// ReadAt reads len(b) bytes at the given offset with context for error
// messages.
func (sr *SafeReader) ReadAt(b []byte, off int64, what string) error {
	if off < 0 || off >= sr.size {
		return fmt.Errorf("%s: offset %d out of bounds (size %d) while reading %s",
			sr.path, off, sr.size, what)
	}
	if off+int64(len(b)) > sr.size {
		return fmt.Errorf("%s: read of %d bytes at offset %d would exceed size %d while reading %s",
			sr.path, len(b), off, sr.size, what)
	}
	n, err := sr.r.ReadAt(b, off)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%s: failed to read %s at offset %d: %w", sr.path, what, off, err)
	}
	if n < len(b) {
		return fmt.Errorf("%s: short read for %s at offset %d: got %d bytes, expected %d",
			sr.path, what, off, n, len(b))
	}
	return nil
}
