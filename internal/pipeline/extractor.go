// Package pipeline orchestrates an extraction call end to end: input
// validation, OCR and PDF preparation, concurrent strategy fanout, and
// arbitration to a single result.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/schedulely/timetable-extractor/constants"
	"github.com/schedulely/timetable-extractor/internal/cache"
	"github.com/schedulely/timetable-extractor/internal/common"
	"github.com/schedulely/timetable-extractor/internal/llm"
	"github.com/schedulely/timetable-extractor/internal/normalize"
	"github.com/schedulely/timetable-extractor/internal/ocr"
	"github.com/schedulely/timetable-extractor/internal/pdfio"
	"github.com/schedulely/timetable-extractor/internal/strategy"
	"github.com/schedulely/timetable-extractor/internal/timetable"
)

type Config struct {
	// Model names preferred over capability discovery when present in the
	// served model list.
	VisionModel string
	TextModel   string
}

type Extractor struct {
	cfg      Config
	registry llm.Registry
	gen      llm.Generator
	ocr      *ocr.Extractor
	pdf      *pdfio.Reader
	store    *cache.Store // nil disables caching
	logger   *slog.Logger
}

func NewExtractor(cfg Config, registry llm.Registry, gen llm.Generator, ocrx *ocr.Extractor, pdf *pdfio.Reader, store *cache.Store, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		cfg:      cfg,
		registry: registry,
		gen:      gen,
		ocr:      ocrx,
		pdf:      pdf,
		store:    store,
		logger:   logger,
	}
}

// ExtractFile runs the full pipeline for one input file. Input problems
// (unknown extension, unreadable file, pageless PDF) come back as errors;
// extraction coming up empty comes back as a failed Result with a diagnostic.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (timetable.Result, error) {
	reqID := uuid.New().String()
	start := time.Now()
	logger := e.logger.With("req_id", reqID, "path", path)

	ext := constants.NormalizeExt(filepath.Ext(path))
	format := constants.MapExtToFormat(ext)
	if format == "" {
		return timetable.Result{}, common.NewAppError("INPUT_ERROR",
			fmt.Sprintf("extension %q is not supported", ext), common.ErrUnsupportedFormat)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return timetable.Result{}, common.NewAppError("INPUT_ERROR",
			fmt.Sprintf("cannot read %s", path), common.ErrUnreadableInput)
	}

	key := cache.Key(content)
	if e.store != nil {
		if cached, err := e.store.Get(ctx, key); err != nil {
			logger.Warn("pipeline.cache.lookup_error", "error", err)
		} else if cached != nil {
			logger.Info("pipeline.cache.hit", "entries", len(cached.Entries))
			return *cached, nil
		}
	}

	in, err := e.prepare(ctx, logger, format, path, content)
	if err != nil {
		return timetable.Result{}, err
	}

	models := e.listModels(ctx, logger)
	in.VisionModel = e.chooseModel(models, e.cfg.VisionModel, llm.PickVision)
	in.TextModel = e.chooseModel(models, e.cfg.TextModel, llm.PickText)

	result := e.runStrategies(ctx, logger, in, models)
	logger.Info("pipeline.extract.done",
		"status", result.Status,
		"entries", len(result.Entries),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if e.store != nil && !result.Failed() {
		if err := e.store.Put(ctx, key, result); err != nil {
			logger.Warn("pipeline.cache.store_error", "error", err)
		}
	}
	return result, nil
}

// ExtractBytes runs the pipeline over an in-memory document. The hint is
// either a file extension (with or without dot) or a MIME type and decides
// the format. PDF tooling works on paths, so the bytes are staged to a temp
// file for the duration of the call.
func (e *Extractor) ExtractBytes(ctx context.Context, data []byte, hint string) (timetable.Result, error) {
	format, ext := constants.ResolveHint(hint)
	if format == "" {
		return timetable.Result{}, common.NewAppError("INPUT_ERROR",
			fmt.Sprintf("format hint %q is not supported", hint), common.ErrUnsupportedFormat)
	}

	f, err := os.CreateTemp("", "tte-in-*."+ext)
	if err != nil {
		return timetable.Result{}, common.WrapError(err, "stage input")
	}
	path := f.Name()
	defer func() {
		if rmErr := os.Remove(path); rmErr != nil {
			e.logger.Warn("pipeline.stage.cleanup_failed", "path", path, "error", rmErr)
		}
	}()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return timetable.Result{}, common.WrapError(err, "stage input")
	}
	if err := f.Close(); err != nil {
		return timetable.Result{}, common.WrapError(err, "stage input")
	}

	return e.ExtractFile(ctx, path)
}

// prepare builds the strategy input for the file's format. Images get
// preprocessed and OCRed; PDFs get their text layer and a first-page render
// for the vision path.
func (e *Extractor) prepare(ctx context.Context, logger *slog.Logger, format constants.FileFormat, path string, content []byte) (strategy.Input, error) {
	in := strategy.Input{Format: format, Path: path}

	switch format {
	case constants.IMAGE:
		png, err := ocr.PrepareImageBytes(content)
		if err != nil {
			return in, common.NewAppError("INPUT_ERROR",
				fmt.Sprintf("cannot decode image %s", path), common.ErrUnreadableInput)
		}
		in.ImagePNG = png

		text, err := e.ocr.ImageText(ctx, png)
		if err != nil {
			logger.Warn("pipeline.ocr.failed", "error", err)
		} else {
			logger.Info("pipeline.ocr.done",
				"chars", len(text),
				"confidence", ocr.TextConfidence(text),
			)
			in.OCRText = text
		}

	case constants.PDF:
		pages, err := e.pdf.PageTexts(ctx, path)
		if errors.Is(err, pdfio.ErrNoPages) {
			return in, common.NewAppError("INPUT_ERROR",
				fmt.Sprintf("%s has no pages", path), common.ErrEmptyPDF)
		}
		if err != nil {
			logger.Warn("pipeline.pdf.text_failed", "error", err)
		} else {
			in.PDFText = pdfio.JoinPages(pages)
		}

		if png, err := e.pdf.RenderFirstPage(ctx, path); err != nil {
			logger.Warn("pipeline.pdf.render_failed", "error", err)
		} else if prepared, err := ocr.PrepareImageBytes(png); err == nil {
			in.ImagePNG = prepared
		}
	}
	return in, nil
}

func (e *Extractor) listModels(ctx context.Context, logger *slog.Logger) []string {
	models, err := e.registry.List(ctx)
	if err != nil {
		logger.Warn("pipeline.models.unreachable", "error", err)
		return nil
	}
	logger.Debug("pipeline.models.listed", "count", len(models))
	return models
}

// chooseModel honors a configured override only when it is actually served;
// otherwise falls back to prefix-based capability discovery.
func (e *Extractor) chooseModel(models []string, override string, pick func([]string) string) string {
	if override != "" {
		for _, m := range models {
			if strings.EqualFold(m, override) {
				return m
			}
		}
	}
	return pick(models)
}

// runStrategies fans every applicable strategy out concurrently and keeps
// the candidate whose canonical entry count is strictly highest. Ties go to
// the earlier slot, which encodes strategy priority.
func (e *Extractor) runStrategies(ctx context.Context, logger *slog.Logger, in strategy.Input, models []string) timetable.Result {
	strategies := []strategy.Strategy{
		&strategy.Vision{Gen: e.gen, Logger: logger},
		&strategy.OCRTextModel{Gen: e.gen, Logger: logger},
		&strategy.OCRRegex{Logger: logger},
		&strategy.PDFTextModel{Gen: e.gen, Logger: logger},
		&strategy.PDFRegex{Logger: logger},
	}

	type scored struct {
		cand    *strategy.Candidate
		entries []timetable.Entry
	}
	slots := make([]scored, len(strategies))

	g, gctx := errgroup.WithContext(ctx)
	for i, s := range strategies {
		if !s.Applicable(in) {
			continue
		}
		i, s := i, s
		g.Go(func() error {
			cand, err := s.Attempt(gctx, in)
			if err != nil {
				logger.Warn("pipeline.strategy.failed", "strategy", s.Name(), "error", err)
				return nil
			}
			if cand == nil {
				return nil
			}
			slots[i] = scored{cand: cand, entries: normalize.Canonicalize(cand.Raw)}
			return nil
		})
	}
	_ = g.Wait()

	best := -1
	for i := range slots {
		if slots[i].cand == nil || len(slots[i].entries) == 0 {
			continue
		}
		if best < 0 || len(slots[i].entries) > len(slots[best].entries) {
			best = i
		}
	}

	if best < 0 {
		return timetable.Result{
			Status:     constants.StatusFailed,
			Entries:    []timetable.Entry{},
			Error:      diagnoseFailure(in, models),
			Confidence: 0,
		}
	}

	win := slots[best]
	logger.Info("pipeline.arbitration.winner",
		"strategy", strategies[best].Name(), "entries", len(win.entries))
	return timetable.Result{
		Status:     constants.StatusSuccess,
		LayoutType: win.cand.LayoutType,
		Entries:    win.entries,
		Confidence: win.cand.Confidence,
		Notes:      win.cand.Notes,
	}
}
