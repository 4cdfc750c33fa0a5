package pdfio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

type stubRunner struct {
	stdout string
	err    error
	calls  int
}

func (s *stubRunner) Run(_ context.Context, _ string, _ ...string) ([]byte, []byte, error) {
	s.calls++
	return []byte(s.stdout), nil, s.err
}

func writeGarbageFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "not-a.pdf")
	if err := os.WriteFile(path, []byte("not a pdf at all"), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestPageTexts_PdftotextFallback(t *testing.T) {
	runner := &stubRunner{stdout: "page one text\fpage two text"}
	r := NewReader(Config{}, nil).WithRunner(runner)

	pages, err := r.PageTexts(context.Background(), writeGarbageFile(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"page one text", "page two text"}
	if !reflect.DeepEqual(pages, want) {
		t.Fatalf("pages = %v, want %v", pages, want)
	}
	if runner.calls != 1 {
		t.Fatalf("expected one pdftotext call, got %d", runner.calls)
	}
}

func TestPageTexts_BothPathsFail(t *testing.T) {
	runner := &stubRunner{err: errors.New("pdftotext: not found")}
	r := NewReader(Config{}, nil).WithRunner(runner)

	if _, err := r.PageTexts(context.Background(), writeGarbageFile(t)); err == nil {
		t.Fatalf("expected error when both text paths fail")
	}
}

func TestRenderFirstPage_MissingBinary(t *testing.T) {
	runner := &stubRunner{err: errors.New("pdftoppm: not found")}
	r := NewReader(Config{}, nil).WithRunner(runner)

	if _, err := r.RenderFirstPage(context.Background(), "whatever.pdf"); err == nil {
		t.Fatalf("expected error from missing renderer")
	}
}

func TestJoinPages(t *testing.T) {
	got := JoinPages([]string{"a", "", "b"})
	if got != "a\n\n\n\nb" {
		t.Fatalf("JoinPages = %q", got)
	}
	if JoinPages(nil) != "" {
		t.Fatalf("JoinPages(nil) should be empty")
	}
}
