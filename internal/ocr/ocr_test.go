package ocr

import (
	"context"
	"errors"
	"testing"
)

type stubNative struct {
	text string
	err  error
}

func (s stubNative) Text(_ context.Context, _ []byte) (string, error) {
	return s.text, s.err
}

type stubRunner struct {
	stdout string
	stderr string
	err    error
	calls  int
}

func (s *stubRunner) Run(_ context.Context, _ string, _ ...string) ([]byte, []byte, error) {
	s.calls++
	return []byte(s.stdout), []byte(s.stderr), s.err
}

func TestImageText_NativeWins(t *testing.T) {
	runner := &stubRunner{stdout: "binary text"}
	e := NewExtractor(Config{}, nil).
		WithNative(stubNative{text: "native text\n"}).
		WithRunner(runner)

	got, err := e.ImageText(context.Background(), []byte("png"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "native text" {
		t.Fatalf("got %q, want native text", got)
	}
	if runner.calls != 0 {
		t.Fatalf("binary fallback invoked despite native success")
	}
}

func TestImageText_BinaryFallback(t *testing.T) {
	runner := &stubRunner{stdout: "  Monday 8:00-9:00 Maths  \n"}
	e := NewExtractor(Config{}, nil).
		WithNative(stubNative{err: errors.New("no native engine")}).
		WithRunner(runner)

	got, err := e.ImageText(context.Background(), []byte("png"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Monday 8:00-9:00 Maths" {
		t.Fatalf("got %q", got)
	}
	if runner.calls != 1 {
		t.Fatalf("expected one binary call, got %d", runner.calls)
	}
}

func TestImageText_EmptyNativeFallsThrough(t *testing.T) {
	runner := &stubRunner{stdout: "from binary"}
	e := NewExtractor(Config{}, nil).
		WithNative(stubNative{text: "   "}).
		WithRunner(runner)

	got, err := e.ImageText(context.Background(), []byte("png"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "from binary" {
		t.Fatalf("got %q", got)
	}
}

func TestImageText_AllUnproductiveIsNotAnError(t *testing.T) {
	runner := &stubRunner{err: errors.New("tesseract: not found")}
	e := NewExtractor(Config{}, nil).
		WithNative(stubNative{err: errors.New("native broken")}).
		WithRunner(runner)

	got, err := e.ImageText(context.Background(), []byte("png"))
	if err != nil {
		t.Fatalf("unproductive chain must not error, got %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestTextConfidence(t *testing.T) {
	low := TextConfidence("abc")
	high := TextConfidence("Monday 8:00-9:00 Maths\nTuesday 9:00-10:00 Biology\nWednesday 10:00-11:00 Chemistry\nThursday 11:00-12:00 English\nFriday 12:00-13:00 Social\nSaturday revision\n")
	if low >= high {
		t.Fatalf("expected timetable-like text to score higher: low=%v high=%v", low, high)
	}
	if high > 1.0 {
		t.Fatalf("score above cap: %v", high)
	}
}
