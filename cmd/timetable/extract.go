package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/schedulely/timetable-extractor/internal/cache"
	"github.com/schedulely/timetable-extractor/internal/common"
	"github.com/schedulely/timetable-extractor/internal/llm"
	"github.com/schedulely/timetable-extractor/internal/ocr"
	"github.com/schedulely/timetable-extractor/internal/pdfio"
	"github.com/schedulely/timetable-extractor/internal/pipeline"
	"github.com/schedulely/timetable-extractor/internal/timetable"
)

func extractCmd(logger *slog.Logger) *cobra.Command {
	var timeout time.Duration
	var noCache bool

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract a timetable and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			res, err := runExtraction(ctx, logger, args[0], noCache)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall extraction deadline")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "skip the result cache")
	return cmd
}

func runExtraction(ctx context.Context, logger *slog.Logger, path string, noCache bool) (timetable.Result, error) {
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return timetable.Result{}, err
	}

	var store *cache.Store
	if !noCache {
		s, err := cache.Open(ctx, cache.Config{
			Path:       cfg.Cache.Path,
			TTL:        cfg.Cache.TTL,
			MaxEntries: cfg.Cache.MaxEntries,
		}, logger)
		if err != nil {
			logger.Warn("cache unavailable, continuing without it", "error", err)
		} else {
			store = s
			defer func() {
				if cerr := store.Close(); cerr != nil {
					logger.Error("close cache", "error", cerr)
				}
			}()
		}
	}

	registry := llm.NewOllamaRegistry(cfg.Ollama.BaseURL, logger)
	client := llm.NewClient(llm.Config{
		BaseURL:        cfg.Ollama.BaseURL,
		ConnectTimeout: cfg.Ollama.ConnectTimeout,
		TextTimeout:    cfg.Ollama.TextTimeout,
		VisionTimeout:  cfg.Ollama.VisionTimeout,
	}, logger)

	ocrx := ocr.NewExtractor(ocr.Config{
		Tesseract:     cfg.OCR.Tesseract,
		TesseractLang: cfg.OCR.Language,
		TessdataDir:   cfg.OCR.TessdataDir,
		PSM:           cfg.OCR.PSM,
	}, logger)

	pdf := pdfio.NewReader(pdfio.Config{
		Pdftotext: cfg.PDF.Pdftotext,
		Pdftoppm:  cfg.PDF.Pdftoppm,
		RenderDPI: cfg.PDF.RenderDPI,
	}, logger)

	ext := pipeline.NewExtractor(pipeline.Config{
		VisionModel: cfg.Ollama.VisionModel,
		TextModel:   cfg.Ollama.TextModel,
	}, registry, client, ocrx, pdf, store, logger)

	res, err := ext.ExtractFile(ctx, path)
	if err != nil {
		return timetable.Result{}, fmt.Errorf("extract %s: %w", path, err)
	}
	return res, nil
}
