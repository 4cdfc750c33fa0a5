// Package llm talks to a local model-serving endpoint (Ollama wire format):
// capability discovery by model-name prefix, JSON-forced generation for the
// vision and text strategies, and recovery of JSON payloads from unstructured
// replies.
package llm

import (
	"context"

	"github.com/schedulely/timetable-extractor/internal/timetable"
)

// Registry reports which model names are currently served. Fetched once per
// extraction call and read-only afterwards.
type Registry interface {
	List(ctx context.Context) ([]string, error)
}

// Generator issues generation calls. Both methods run with "force JSON
// output" enabled and return the model's raw textual reply.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
	GenerateVision(ctx context.Context, model, prompt string, imagePNG []byte) (string, error)
}

// Payload is the JSON document the extraction prompts demand. Error is set
// when the model judged the input unreadable or not a timetable.
type Payload struct {
	Entries    []timetable.RawEntry `json:"entries"`
	Confidence float64              `json:"confidence"`
	LayoutType string               `json:"layout_type,omitempty"`
	Notes      string               `json:"notes,omitempty"`
	Error      string               `json:"error,omitempty"`
}
