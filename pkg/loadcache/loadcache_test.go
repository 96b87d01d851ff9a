package loadcache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestReadReturnsContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.lisp")
	if err := os.WriteFile(path, []byte("(+ 1 2)"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c := New()
	got, err := c.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != "(+ 1 2)" {
		t.Fatalf("got %q, want %q", got, "(+ 1 2)")
	}
}

func TestReadReusesCacheUntilModified(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.lisp")
	if err := os.WriteFile(path, []byte("(+ 1 2)"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c := New()
	if _, err := c.Read(path); err != nil {
		t.Fatalf("Read: %v", err)
	}

	k := key(path)
	if c.entries[k].content != "(+ 1 2)" {
		t.Fatalf("entry not populated")
	}

	// A future modification time must invalidate the cached entry.
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if err := os.WriteFile(path, []byte("(+ 3 4)"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	got, err := c.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != "(+ 3 4)" {
		t.Fatalf("got %q, want refreshed content", got)
	}
}

func TestReadMissingFileErrors(t *testing.T) {
	c := New()
	if _, err := c.Read("/nonexistent/path/does/not/exist.lisp"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
