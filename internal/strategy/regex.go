package strategy

import (
	"context"
	"log/slog"
	"strings"

	"github.com/schedulely/timetable-extractor/constants"
	"github.com/schedulely/timetable-extractor/internal/parser"
)

// OCRRegex runs the heuristic line parsers over OCR text. Needs no model at
// all, so it still works when the serving endpoint is down.
type OCRRegex struct {
	Logger *slog.Logger
}

func (s *OCRRegex) Name() string { return "ocr+regex" }

func (s *OCRRegex) Applicable(in Input) bool {
	return strings.TrimSpace(in.OCRText) != ""
}

func (s *OCRRegex) Attempt(_ context.Context, in Input) (*Candidate, error) {
	entries := parser.ParseAny(in.OCRText)
	if len(entries) == 0 {
		return nil, nil
	}
	logOrDefault(s.Logger).Info("strategy.ocr_regex.extracted", "entries", len(entries))
	return &Candidate{
		Raw:        entries,
		LayoutType: constants.LayoutText,
		Confidence: 0.55,
		Notes:      "Extracted via OCR + regex heuristic",
	}, nil
}

// PDFRegex runs the same heuristics over the PDF text layer.
type PDFRegex struct {
	Logger *slog.Logger
}

func (s *PDFRegex) Name() string { return "pdf-text+regex" }

func (s *PDFRegex) Applicable(in Input) bool {
	return strings.TrimSpace(in.PDFText) != ""
}

func (s *PDFRegex) Attempt(_ context.Context, in Input) (*Candidate, error) {
	entries := parser.ParseAny(in.PDFText)
	if len(entries) == 0 {
		return nil, nil
	}
	logOrDefault(s.Logger).Info("strategy.pdf_regex.extracted", "entries", len(entries))
	return &Candidate{
		Raw:        entries,
		LayoutType: constants.LayoutText,
		Confidence: 0.55,
		Notes:      "Parsed via PDF regex heuristic",
	}, nil
}
