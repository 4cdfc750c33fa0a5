package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// visionModelPrefixes are the known multimodal model families (expand as the
// serving ecosystem adds new ones).
var visionModelPrefixes = []string{
	"llava", "bakllava", "moondream", "llava-phi3", "llava-llama3",
	"minicpm-v", "qwen2.5-vl", "qwen-vl", "cogvlm", "internlm-xcomposer",
	"phi4-multimodal", "gemma3", "gemma-3", "mistral-small3", "llama4",
}

// textModelPrefixes are families good enough for grid reconstruction from
// raw text.
var textModelPrefixes = []string{
	"qwen", "llama", "mistral", "phi", "gemma", "deepseek",
}

// OllamaRegistry lists loaded models via GET /api/tags.
type OllamaRegistry struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewOllamaRegistry(baseURL string, logger *slog.Logger) *OllamaRegistry {
	if logger == nil {
		logger = slog.Default()
	}
	return &OllamaRegistry{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

func (r *OllamaRegistry) List(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("build tags request: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("list models: status %d: %s", resp.StatusCode, string(body))
	}

	var tags struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// PickVision returns the first vision-capable model name, or "".
func PickVision(models []string) string {
	return pickByPrefix(models, visionModelPrefixes)
}

// PickText returns the first text-capable model name, or "".
func PickText(models []string) string {
	return pickByPrefix(models, textModelPrefixes)
}

func pickByPrefix(models, prefixes []string) string {
	for _, m := range models {
		ml := strings.ToLower(m)
		for _, p := range prefixes {
			if strings.HasPrefix(ml, p) {
				return m
			}
		}
	}
	return ""
}
