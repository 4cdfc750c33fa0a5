// Package strategy holds the extraction paths that compete per input.
// Every applicable path runs; the caller keeps the candidate with the most
// entries, breaking ties by the order the strategies are registered in.
package strategy

import (
	"context"

	"github.com/schedulely/timetable-extractor/constants"
	"github.com/schedulely/timetable-extractor/internal/timetable"
)

// Input carries everything prepared up front for an extraction call. Fields
// irrelevant to the input format stay zero (PDFText for images, ImagePNG for
// text-only PDFs).
type Input struct {
	Format      constants.FileFormat
	Path        string
	ImagePNG    []byte
	OCRText     string
	PDFText     string
	VisionModel string
	TextModel   string
}

// Candidate is one strategy's proposal before normalization.
type Candidate struct {
	Raw        []timetable.RawEntry
	LayoutType string
	Confidence float64
	Notes      string
}

// Strategy is a single extraction path. Attempt returns (nil, nil) when the
// path ran but produced nothing usable; errors mean the path itself broke.
type Strategy interface {
	Name() string
	Applicable(in Input) bool
	Attempt(ctx context.Context, in Input) (*Candidate, error)
}
