// Package pdfio reads timetable PDFs: selectable text per page for the
// text-model strategies, and a first-page raster for the vision strategy.
package pdfio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/schedulely/timetable-extractor/internal/ocr"
)

// ErrNoPages marks a structurally valid PDF with zero pages; fatal for the
// whole extraction call.
var ErrNoPages = errors.New("pdf has no pages")

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	RenderDPI int    // first-page rasterization DPI, default 200
}

type Reader struct {
	cfg    Config
	runner ocr.Runner
	logger *slog.Logger
}

func NewReader(cfg Config, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.RenderDPI <= 0 {
		cfg.RenderDPI = 200
	}
	return &Reader{cfg: cfg, runner: ocr.ExecRunner{}, logger: logger}
}

// WithRunner swaps the command runner; used by tests.
func (r *Reader) WithRunner(run ocr.Runner) *Reader { r.runner = run; return r }

// PageTexts extracts the selectable text layer per page. An unreadable file
// or a zero-page document is an error; pages without text come back as empty
// strings so the caller can tell "no text layer" from "no document".
func (r *Reader) PageTexts(ctx context.Context, path string) ([]string, error) {
	pages, err := r.textLayer(path)
	if err == nil && joined(pages) != "" {
		return pages, nil
	}
	if errors.Is(err, ErrNoPages) {
		return nil, err
	}
	if err != nil {
		r.logger.Warn("pdf.text_layer.failed", "path", path, "error", err)
	}

	// pdftotext -layout keeps column alignment, which the grid parser needs.
	out, _, perr := r.runner.Run(ctx, r.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if perr != nil {
		if err != nil {
			return nil, fmt.Errorf("read pdf %q: %w", path, err)
		}
		return pages, nil
	}
	return strings.Split(string(out), "\f"), nil
}

func (r *Reader) textLayer(path string) ([]string, error) {
	f, doc, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	total := doc.NumPage()
	if total == 0 {
		return nil, ErrNoPages
	}

	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		page := doc.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}

func joined(pages []string) string {
	return strings.TrimSpace(strings.Join(pages, ""))
}

// JoinPages flattens per-page text with blank-line separators for parsers
// and model prompts.
func JoinPages(pages []string) string {
	return strings.TrimSpace(strings.Join(pages, "\n\n"))
}
