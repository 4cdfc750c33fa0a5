package strategy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/schedulely/timetable-extractor/constants"
	"github.com/schedulely/timetable-extractor/internal/llm"
)

// Vision sends the prepared PNG to a multimodal model. Highest-priority path
// for both images and rendered PDF pages.
type Vision struct {
	Gen    llm.Generator
	Logger *slog.Logger
}

func (s *Vision) Name() string { return "vision" }

func (s *Vision) Applicable(in Input) bool {
	return in.VisionModel != "" && len(in.ImagePNG) > 0
}

func (s *Vision) Attempt(ctx context.Context, in Input) (*Candidate, error) {
	reply, err := s.Gen.GenerateVision(ctx, in.VisionModel, llm.VisionPrompt, in.ImagePNG)
	if err != nil {
		return nil, err
	}
	payload, err := llm.DecodePayload(reply)
	if err != nil {
		return nil, err
	}
	if payload.Error != "" {
		return nil, fmt.Errorf("vision model rejected input: %s", payload.Error)
	}
	if len(payload.Entries) == 0 {
		return nil, nil
	}
	layout := normalizeLayout(payload.LayoutType)
	s.logger().Info("strategy.vision.extracted", "entries", len(payload.Entries), "model", in.VisionModel)
	return &Candidate{
		Raw:        payload.Entries,
		LayoutType: layout,
		Confidence: payload.Confidence,
		Notes:      "Extracted via vision model",
	}, nil
}

// normalizeLayout keeps a model-reported layout only when it is one of the
// published values; anything else collapses to horizontal, the common case
// for school grids.
func normalizeLayout(layout string) string {
	switch layout {
	case constants.LayoutVertical, constants.LayoutText, constants.LayoutUnknown:
		return layout
	default:
		return constants.LayoutHorizontal
	}
}

func (s *Vision) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
