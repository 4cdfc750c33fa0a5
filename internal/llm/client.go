package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Config struct {
	BaseURL        string        // default http://localhost:11434
	ConnectTimeout time.Duration // default 5s
	TextTimeout    time.Duration // read deadline for text generation, default 120s
	VisionTimeout  time.Duration // read deadline for vision generation, default 180s
}

// Client calls the Ollama /api/generate endpoint with stream off and JSON
// format forced.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:11434"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 5 * time.Second
	}
	if cfg.TextTimeout <= 0 {
		cfg.TextTimeout = 120 * time.Second
	}
	if cfg.VisionTimeout <= 0 {
		cfg.VisionTimeout = 180 * time.Second
	}
	transport := &http.Transport{
		DialContext: (&net.Dialer{Timeout: cfg.ConnectTimeout}).DialContext,
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Transport: transport},
		logger: logger,
	}
}

type generateRequest struct {
	Model  string   `json:"model"`
	Prompt string   `json:"prompt"`
	Images []string `json:"images,omitempty"`
	Stream bool     `json:"stream"`
	Format string   `json:"format"`
}

type generateResponse struct {
	Response string `json:"response"`
}

func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	return c.generate(ctx, generateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: false,
		Format: "json",
	}, c.cfg.TextTimeout)
}

func (c *Client) GenerateVision(ctx context.Context, model, prompt string, imagePNG []byte) (string, error) {
	return c.generate(ctx, generateRequest{
		Model:  model,
		Prompt: prompt,
		Images: []string{base64.StdEncoding.EncodeToString(imagePNG)},
		Stream: false,
		Format: "json",
	}, c.cfg.VisionTimeout)
}

func (c *Client) generate(ctx context.Context, body generateRequest, readTimeout time.Duration) (string, error) {
	reqID := uuid.New().String()
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	bs, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/api/generate", bytes.NewReader(bs))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Info("llm.generate.request",
		"req_id", reqID,
		"model", body.Model,
		"prompt_len", len(body.Prompt),
		"has_image", len(body.Images) > 0,
	)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("llm.generate.send_error",
			"req_id", reqID, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("llm.generate.status_error",
			"req_id", reqID, "status", resp.StatusCode, "elapsed_ms", time.Since(start).Milliseconds())
		return "", fmt.Errorf("generate: status %d: %s", resp.StatusCode, truncate(string(raw), 512))
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}
	if strings.TrimSpace(out.Response) == "" {
		return "", fmt.Errorf("empty response from model %q", body.Model)
	}

	c.logger.Info("llm.generate.ok",
		"req_id", reqID,
		"model", body.Model,
		"response_len", len(out.Response),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out.Response, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
