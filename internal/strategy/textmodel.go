package strategy

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/schedulely/timetable-extractor/constants"
	"github.com/schedulely/timetable-extractor/internal/llm"
)

// OCRTextModel asks a text model to reconstruct the grid from OCR output.
// Runs for images even when the vision path succeeded, to catch cells the
// vision model skipped.
type OCRTextModel struct {
	Gen    llm.Generator
	Logger *slog.Logger
}

func (s *OCRTextModel) Name() string { return "ocr+text-model" }

func (s *OCRTextModel) Applicable(in Input) bool {
	return in.TextModel != "" && strings.TrimSpace(in.OCRText) != ""
}

func (s *OCRTextModel) Attempt(ctx context.Context, in Input) (*Candidate, error) {
	c, err := generateFromText(ctx, s.Gen, in.TextModel, in.OCRText, 0.5)
	if err != nil || c == nil {
		return c, err
	}
	c.Notes = "Extracted via OCR + AI text model"
	logOrDefault(s.Logger).Info("strategy.ocr_text_model.extracted", "entries", len(c.Raw), "model", in.TextModel)
	return c, nil
}

// PDFTextModel feeds the PDF's selectable text layer to a text model.
type PDFTextModel struct {
	Gen    llm.Generator
	Logger *slog.Logger
}

func (s *PDFTextModel) Name() string { return "pdf-text+text-model" }

func (s *PDFTextModel) Applicable(in Input) bool {
	return in.TextModel != "" && strings.TrimSpace(in.PDFText) != ""
}

func (s *PDFTextModel) Attempt(ctx context.Context, in Input) (*Candidate, error) {
	c, err := generateFromText(ctx, s.Gen, in.TextModel, in.PDFText, 0.7)
	if err != nil || c == nil {
		return c, err
	}
	c.Notes = "Extracted via PDF text + AI"
	logOrDefault(s.Logger).Info("strategy.pdf_text_model.extracted", "entries", len(c.Raw), "model", in.TextModel)
	return c, nil
}

func generateFromText(ctx context.Context, gen llm.Generator, model, text string, defaultConfidence float64) (*Candidate, error) {
	reply, err := gen.Generate(ctx, model, llm.BuildTextPrompt(text))
	if err != nil {
		return nil, err
	}
	payload, err := llm.DecodePayload(reply)
	if err != nil {
		return nil, err
	}
	if payload.Error != "" {
		return nil, fmt.Errorf("text model rejected input: %s", payload.Error)
	}
	if len(payload.Entries) == 0 {
		return nil, nil
	}
	conf := payload.Confidence
	if conf == 0 {
		conf = defaultConfidence
	}
	return &Candidate{
		Raw:        payload.Entries,
		LayoutType: constants.LayoutText,
		Confidence: conf,
	}, nil
}

func logOrDefault(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.Default()
}
