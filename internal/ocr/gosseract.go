//go:build cgo

package ocr

import (
	"context"

	"github.com/otiai10/gosseract/v2"
)

// gosseractEngine recognizes text through the libtesseract bindings, saving
// a process spawn per page compared to the binary path.
type gosseractEngine struct {
	lang string
	psm  gosseract.PageSegMode
}

func newGosseractEngine(cfg Config) *gosseractEngine {
	return &gosseractEngine{
		lang: cfg.TesseractLang,
		psm:  gosseract.PageSegMode(cfg.PSM),
	}
}

func (g *gosseractEngine) Text(ctx context.Context, png []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer func() { _ = client.Close() }()

	if err := client.SetLanguage(g.lang); err != nil {
		return "", err
	}
	if err := client.SetPageSegMode(g.psm); err != nil {
		return "", err
	}
	if err := client.SetImageFromBytes(png); err != nil {
		return "", err
	}
	return client.Text()
}
