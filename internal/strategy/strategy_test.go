package strategy

import (
	"context"
	"errors"
	"testing"

	"github.com/schedulely/timetable-extractor/constants"
)

type fakeGen struct {
	reply string
	err   error
}

func (f fakeGen) Generate(_ context.Context, _, _ string) (string, error) {
	return f.reply, f.err
}

func (f fakeGen) GenerateVision(_ context.Context, _, _ string, _ []byte) (string, error) {
	return f.reply, f.err
}

const oneEntryReply = `{"entries":[{"subject":"Maths","day":"Monday","start_time":"08:00","end_time":"09:00","room":""}],"confidence":0.0}`

func TestVision_Applicable(t *testing.T) {
	s := &Vision{Gen: fakeGen{}}
	if s.Applicable(Input{VisionModel: "llava:7b"}) {
		t.Fatalf("applicable without image bytes")
	}
	if s.Applicable(Input{ImagePNG: []byte("x")}) {
		t.Fatalf("applicable without a vision model")
	}
	if !s.Applicable(Input{VisionModel: "llava:7b", ImagePNG: []byte("x")}) {
		t.Fatalf("not applicable with model and image")
	}
}

func TestVision_DefaultsLayoutToHorizontal(t *testing.T) {
	s := &Vision{Gen: fakeGen{reply: oneEntryReply}}
	c, err := s.Attempt(context.Background(), Input{VisionModel: "llava:7b", ImagePNG: []byte("x")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.LayoutType != constants.LayoutHorizontal {
		t.Fatalf("layout = %q, want horizontal default", c.LayoutType)
	}
}

func TestNormalizeLayout(t *testing.T) {
	cases := []struct{ in, want string }{
		{constants.LayoutVertical, constants.LayoutVertical},
		{constants.LayoutText, constants.LayoutText},
		{constants.LayoutUnknown, constants.LayoutUnknown},
		{constants.LayoutHorizontal, constants.LayoutHorizontal},
		{"", constants.LayoutHorizontal},
		{"diagonal", constants.LayoutHorizontal},
	}
	for _, c := range cases {
		if got := normalizeLayout(c.in); got != c.want {
			t.Fatalf("normalizeLayout(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestVision_KeepsReportedVerticalLayout(t *testing.T) {
	reply := `{"entries":[{"subject":"Maths","day":"Monday","start_time":"08:00","end_time":"09:00"}],"layout_type":"vertical","confidence":0.9}`
	s := &Vision{Gen: fakeGen{reply: reply}}
	c, err := s.Attempt(context.Background(), Input{VisionModel: "llava:7b", ImagePNG: []byte("x")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.LayoutType != constants.LayoutVertical {
		t.Fatalf("layout = %q, want vertical", c.LayoutType)
	}
}

func TestVision_ModelErrorFieldIsAnError(t *testing.T) {
	s := &Vision{Gen: fakeGen{reply: `{"error":"not a timetable","confidence":0.0}`}}
	if _, err := s.Attempt(context.Background(), Input{VisionModel: "llava:7b", ImagePNG: []byte("x")}); err == nil {
		t.Fatalf("expected error when the model reports one")
	}
}

func TestVision_EmptyEntriesIsNilCandidate(t *testing.T) {
	s := &Vision{Gen: fakeGen{reply: `{"entries":[],"confidence":0.3}`}}
	c, err := s.Attempt(context.Background(), Input{VisionModel: "llava:7b", ImagePNG: []byte("x")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != nil {
		t.Fatalf("expected nil candidate for empty entries, got %+v", c)
	}
}

func TestOCRTextModel_DefaultConfidence(t *testing.T) {
	s := &OCRTextModel{Gen: fakeGen{reply: oneEntryReply}}
	c, err := s.Attempt(context.Background(), Input{TextModel: "qwen2.5:7b", OCRText: "text"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Confidence != 0.5 {
		t.Fatalf("confidence = %v, want default 0.5", c.Confidence)
	}
	if c.Notes != "Extracted via OCR + AI text model" {
		t.Fatalf("unexpected notes: %q", c.Notes)
	}
	if c.LayoutType != constants.LayoutText {
		t.Fatalf("layout = %q, want text", c.LayoutType)
	}
}

func TestPDFTextModel_DefaultConfidence(t *testing.T) {
	s := &PDFTextModel{Gen: fakeGen{reply: oneEntryReply}}
	c, err := s.Attempt(context.Background(), Input{TextModel: "qwen2.5:7b", PDFText: "text"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Confidence != 0.7 {
		t.Fatalf("confidence = %v, want default 0.7", c.Confidence)
	}
	if c.Notes != "Extracted via PDF text + AI" {
		t.Fatalf("unexpected notes: %q", c.Notes)
	}
}

func TestTextModel_PayloadConfidenceKept(t *testing.T) {
	withConf := `{"entries":[{"subject":"Maths","day":"Monday","start_time":"08:00","end_time":"09:00"}],"confidence":0.82}`
	s := &OCRTextModel{Gen: fakeGen{reply: withConf}}
	c, err := s.Attempt(context.Background(), Input{TextModel: "qwen2.5:7b", OCRText: "text"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Confidence != 0.82 {
		t.Fatalf("payload confidence overridden: %v", c.Confidence)
	}
}

func TestTextModel_GeneratorErrorPropagates(t *testing.T) {
	s := &OCRTextModel{Gen: fakeGen{err: errors.New("connection refused")}}
	if _, err := s.Attempt(context.Background(), Input{TextModel: "qwen2.5:7b", OCRText: "text"}); err == nil {
		t.Fatalf("expected propagated error")
	}
}

func TestRegexStrategies(t *testing.T) {
	text := "Mon 9:00 - 10:00 Physics\nTue 10:00 - 11:00 Biology\n"

	ocrS := &OCRRegex{}
	if !ocrS.Applicable(Input{OCRText: text}) || ocrS.Applicable(Input{}) {
		t.Fatalf("OCR regex applicability wrong")
	}
	c, err := ocrS.Attempt(context.Background(), Input{OCRText: text})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Raw) != 2 || c.Confidence != 0.55 {
		t.Fatalf("unexpected candidate: %+v", c)
	}
	if c.Notes != "Extracted via OCR + regex heuristic" {
		t.Fatalf("unexpected notes: %q", c.Notes)
	}

	pdfS := &PDFRegex{}
	c, err = pdfS.Attempt(context.Background(), Input{PDFText: text})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Notes != "Parsed via PDF regex heuristic" {
		t.Fatalf("unexpected notes: %q", c.Notes)
	}

	c, err = pdfS.Attempt(context.Background(), Input{PDFText: "unparseable"})
	if err != nil || c != nil {
		t.Fatalf("expected nil candidate for unparseable text, got %+v err %v", c, err)
	}
}
