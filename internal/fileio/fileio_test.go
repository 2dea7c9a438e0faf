package fileio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func tempFile(t *testing.T, content []byte) *os.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "splice.bin")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		t.Fatalf("open temp file: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func readAll(t *testing.T, f *os.File) []byte {
	t.Helper()
	data, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	return data
}

func TestInsertBytes(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		size    int64
		offset  int64
		// wantTail is the expected content after the inserted gap.
		wantHead []byte
		wantTail []byte
		wantLen  int
	}{
		{
			name:     "insert in middle",
			content:  []byte("headtail"),
			size:     4,
			offset:   4,
			wantHead: []byte("head"),
			wantTail: []byte("tail"),
			wantLen:  12,
		},
		{
			name:     "insert at start",
			content:  []byte("abcdef"),
			size:     2,
			offset:   0,
			wantHead: nil,
			wantTail: []byte("abcdef"),
			wantLen:  8,
		},
		{
			name:     "insert at end",
			content:  []byte("abcdef"),
			size:     3,
			offset:   6,
			wantHead: []byte("abcdef"),
			wantTail: nil,
			wantLen:  9,
		},
		{
			name:     "zero size is a no-op",
			content:  []byte("abcdef"),
			size:     0,
			offset:   3,
			wantHead: []byte("abcdef"),
			wantTail: nil,
			wantLen:  6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tempFile(t, tt.content)
			if err := InsertBytes(f, tt.size, tt.offset); err != nil {
				t.Fatalf("InsertBytes failed: %v", err)
			}
			got := readAll(t, f)
			if len(got) != tt.wantLen {
				t.Fatalf("length = %d, want %d", len(got), tt.wantLen)
			}
			if !bytes.HasPrefix(got, tt.wantHead) {
				t.Errorf("head = %q, want prefix %q", got[:tt.offset], tt.wantHead)
			}
			if !bytes.HasSuffix(got[tt.offset+tt.size:], tt.wantTail) {
				t.Errorf("tail = %q, want %q", got[tt.offset+tt.size:], tt.wantTail)
			}
		})
	}
}

func TestInsertBytes_LargerThanBuffer(t *testing.T) {
	content := bytes.Repeat([]byte("0123456789abcdef"), 3*bufferSize/16)
	f := tempFile(t, content)

	if err := InsertBytes(f, 7, 100); err != nil {
		t.Fatalf("InsertBytes failed: %v", err)
	}
	got := readAll(t, f)
	if len(got) != len(content)+7 {
		t.Fatalf("length = %d, want %d", len(got), len(content)+7)
	}
	if !bytes.Equal(got[:100], content[:100]) {
		t.Error("bytes before the insertion point changed")
	}
	if !bytes.Equal(got[107:], content[100:]) {
		t.Error("bytes after the insertion point were not shifted intact")
	}
}

func TestInsertBytes_BeyondEnd(t *testing.T) {
	f := tempFile(t, []byte("short"))
	if err := InsertBytes(f, 4, 100); err == nil {
		t.Fatal("expected error inserting beyond end of file")
	}
}

func TestDeleteBytes(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		size    int64
		offset  int64
		want    []byte
	}{
		{
			name:    "delete in middle",
			content: []byte("headXXXXtail"),
			size:    4,
			offset:  4,
			want:    []byte("headtail"),
		},
		{
			name:    "delete at start",
			content: []byte("XXabcdef"),
			size:    2,
			offset:  0,
			want:    []byte("abcdef"),
		},
		{
			name:    "delete at end",
			content: []byte("abcdefXXX"),
			size:    3,
			offset:  6,
			want:    []byte("abcdef"),
		},
		{
			name:    "delete everything",
			content: []byte("abcdef"),
			size:    6,
			offset:  0,
			want:    []byte{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tempFile(t, tt.content)
			if err := DeleteBytes(f, tt.size, tt.offset); err != nil {
				t.Fatalf("DeleteBytes failed: %v", err)
			}
			if got := readAll(t, f); !bytes.Equal(got, tt.want) {
				t.Errorf("content = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDeleteBytes_LargerThanBuffer(t *testing.T) {
	content := bytes.Repeat([]byte("0123456789abcdef"), 3*bufferSize/16)
	f := tempFile(t, content)

	if err := DeleteBytes(f, 1000, 50); err != nil {
		t.Fatalf("DeleteBytes failed: %v", err)
	}
	got := readAll(t, f)
	want := append(append([]byte{}, content[:50]...), content[1050:]...)
	if !bytes.Equal(got, want) {
		t.Error("spliced content does not match expected")
	}
}

func TestDeleteBytes_BeyondEnd(t *testing.T) {
	f := tempFile(t, []byte("short"))
	if err := DeleteBytes(f, 10, 2); err == nil {
		t.Fatal("expected error deleting beyond end of file")
	}
}

func TestInsertThenDeleteRoundTrip(t *testing.T) {
	content := []byte("the quick brown fox jumps over the lazy dog")
	f := tempFile(t, content)

	if err := InsertBytes(f, 13, 10); err != nil {
		t.Fatalf("InsertBytes failed: %v", err)
	}
	if err := DeleteBytes(f, 13, 10); err != nil {
		t.Fatalf("DeleteBytes failed: %v", err)
	}
	if got := readAll(t, f); !bytes.Equal(got, content) {
		t.Errorf("round trip changed content: %q", got)
	}
}

func TestSafeReader_ReadAt(t *testing.T) {
	data := []byte("0123456789")
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.mp3")

	t.Run("in bounds", func(t *testing.T) {
		buf := make([]byte, 4)
		if err := sr.ReadAt(buf, 3, "frame header"); err != nil {
			t.Fatalf("ReadAt failed: %v", err)
		}
		if string(buf) != "3456" {
			t.Errorf("ReadAt = %q, want %q", buf, "3456")
		}
	})

	t.Run("offset out of bounds", func(t *testing.T) {
		buf := make([]byte, 1)
		if err := sr.ReadAt(buf, 10, "trailer"); err == nil {
			t.Fatal("expected out of bounds error")
		}
	})

	t.Run("read past end", func(t *testing.T) {
		buf := make([]byte, 8)
		if err := sr.ReadAt(buf, 5, "tag data"); err == nil {
			t.Fatal("expected read past end error")
		}
	})
}
