package local

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"candidate-backend/internal/shared/util"
)

func TestSaveAndOpenRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := New(dir, "http://localhost:8080")
	content := []byte("%PDF-1.4 sample")

	key, size, checksum, err := store.Save(context.Background(), "resumes", "cv.pdf", bytes.NewReader(content))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if size != int64(len(content)) {
		t.Fatalf("expected size %d, got %d", len(content), size)
	}
	if checksum != util.ChecksumHex(content) {
		t.Fatalf("checksum mismatch: %s", checksum)
	}
	if !strings.HasPrefix(key, "resumes/") || !strings.HasSuffix(key, "_cv.pdf") {
		t.Fatalf("unexpected storage key %q", key)
	}

	f, err := store.Open(context.Background(), key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	got, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Fatalf("stored content mismatch")
	}
}

func TestSaveSanitizesFileName(t *testing.T) {
	dir := t.TempDir()
	store := New(dir, "http://localhost:8080")

	key, _, _, err := store.Save(context.Background(), "resumes", "a/b\\c.pdf", bytes.NewReader([]byte("x")))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if strings.Contains(filepath.Base(key), "/") {
		t.Fatalf("separators must be stripped from stored name, got %q", key)
	}

	if _, _, _, err := store.Save(context.Background(), "resumes", "../escape.pdf", bytes.NewReader([]byte("x"))); err == nil {
		t.Fatalf("expected traversal name to be rejected")
	}
}

func TestDeleteToleratesMissing(t *testing.T) {
	store := New(t.TempDir(), "http://localhost:8080")

	if err := store.Delete(context.Background(), "resumes/never-written.pdf"); err != nil {
		t.Fatalf("Delete missing: %v", err)
	}
}

func TestDeleteRemovesFile(t *testing.T) {
	dir := t.TempDir()
	store := New(dir, "http://localhost:8080")

	key, _, _, err := store.Save(context.Background(), "resumes", "cv.pdf", bytes.NewReader([]byte("x")))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(context.Background(), key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(key))); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, stat err = %v", err)
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	store := New(t.TempDir(), "http://localhost:8080")

	if _, err := store.Open(context.Background(), "../outside"); err == nil {
		t.Fatalf("expected traversal key to be rejected")
	}
}

func TestPublicURL(t *testing.T) {
	store := New(t.TempDir(), "http://localhost:8080/")

	got := store.PublicURL("resumes/abc_cv.pdf")
	want := "http://localhost:8080/media/resumes/abc_cv.pdf"
	if got != want {
		t.Fatalf("PublicURL = %q, want %q", got, want)
	}
}
