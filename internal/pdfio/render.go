package pdfio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// RenderFirstPage rasterizes page one to PNG bytes at the configured DPI for
// the vision strategy. Rendering needs poppler's pdftoppm; a missing binary
// surfaces as an error the pipeline treats as "vision input unavailable",
// not as a fatal failure.
func (r *Reader) RenderFirstPage(ctx context.Context, path string) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "tte-pp-*")
	if err != nil {
		return nil, err
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			r.logger.Warn("pdf.render.cleanup_failed", "dir", tmpDir, "error", rmErr)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -f 1 -l 1 -r 200 -png <in.pdf> <tmp/page>
	_, errb, err := r.runner.Run(ctx, r.cfg.Pdftoppm,
		"-f", "1", "-l", "1",
		"-r", fmt.Sprintf("%d", r.cfg.RenderDPI),
		"-png", path, prefix)
	if err != nil {
		return nil, fmt.Errorf("pdftoppm: %w (%s)", err, string(errb))
	}

	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no image for %q", path)
	}
	return os.ReadFile(matches[0])
}
