// Package ocr turns timetable images into raw text. Recognition is a
// fallback chain: the embedded tesseract bindings run first, the standalone
// tesseract binary second, and when neither yields output the result is an
// empty string rather than an error, and downstream text strategies are
// simply skipped for that input.
package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// NativeEngine is the in-process recognition path, stubbed in tests.
type NativeEngine interface {
	Text(ctx context.Context, png []byte) (string, error)
}

type Config struct {
	Tesseract     string // binary name or absolute path; if empty -> "tesseract"
	TesseractLang string // default "eng"
	TessdataDir   string
	PSM           int // 6 (uniform block) suits boxed timetable grids
}

type Extractor struct {
	cfg    Config
	runner Runner
	native NativeEngine
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.PSM <= 0 {
		cfg.PSM = 6
	}
	return &Extractor{cfg: cfg, runner: ExecRunner{}, native: newGosseractEngine(cfg), logger: logger}
}

// WithRunner swaps the command runner; used by tests.
func (e *Extractor) WithRunner(r Runner) *Extractor { e.runner = r; return e }

// WithNative swaps or disables (nil) the in-process engine; used by tests.
func (e *Extractor) WithNative(n NativeEngine) *Extractor { e.native = n; return e }

// ImageText runs the OCR chain over preprocessed PNG bytes. A fully
// unproductive chain returns ("", nil): the absence of text is a capability
// signal, not an error.
func (e *Extractor) ImageText(ctx context.Context, png []byte) (string, error) {
	if e.native != nil {
		text, err := e.native.Text(ctx, png)
		if err != nil {
			e.logger.Warn("ocr.native.failed", "error", err)
		} else if strings.TrimSpace(text) != "" {
			e.logger.Debug("ocr.native.ok", "bytes", len(text))
			return strings.TrimSpace(text), nil
		}
	}

	text, err := e.tesseractBinary(ctx, png)
	if err != nil {
		e.logger.Warn("ocr.binary.failed", "error", err)
		return "", nil
	}
	return strings.TrimSpace(text), nil
}

// tesseractBinary spills the image to a temp file and shells out:
// tesseract <img> stdout -l <lang> --psm <n>.
func (e *Extractor) tesseractBinary(ctx context.Context, png []byte) (string, error) {
	path, cleanup, err := writeTempPNG(png)
	if err != nil {
		return "", fmt.Errorf("stage image: %w", err)
	}
	defer cleanup()

	args := []string{path, "stdout", "-l", e.cfg.TesseractLang}
	if e.cfg.PSM > 0 {
		args = append(args, "--psm", fmt.Sprintf("%d", e.cfg.PSM))
	}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}

	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w (%s)", err, truncate(string(errb), 256))
	}
	return string(out), nil
}
