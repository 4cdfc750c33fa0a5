package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Ollama OllamaConfig
	OCR    OCRConfig
	PDF    PDFConfig
	Cache  CacheConfig
}

// OllamaConfig holds model-endpoint configuration
type OllamaConfig struct {
	BaseURL        string
	VisionModel    string
	TextModel      string
	ConnectTimeout time.Duration
	TextTimeout    time.Duration
	VisionTimeout  time.Duration
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Tesseract   string
	Language    string
	TessdataDir string
	PSM         int
}

// PDFConfig holds PDF tooling configuration
type PDFConfig struct {
	Pdftotext string
	Pdftoppm  string
	RenderDPI int
}

// CacheConfig holds result-cache configuration
type CacheConfig struct {
	Path       string
	TTL        time.Duration
	MaxEntries int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Ollama: OllamaConfig{
			BaseURL:        getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			VisionModel:    getEnv("OLLAMA_VISION_MODEL", ""),
			TextModel:      getEnv("OLLAMA_TEXT_MODEL", ""),
			ConnectTimeout: getEnvAsDuration("OLLAMA_CONNECT_TIMEOUT", 5*time.Second),
			TextTimeout:    getEnvAsDuration("OLLAMA_TEXT_TIMEOUT", 120*time.Second),
			VisionTimeout:  getEnvAsDuration("OLLAMA_VISION_TIMEOUT", 180*time.Second),
		},
		OCR: OCRConfig{
			Tesseract:   getEnv("TESSERACT_BIN", "tesseract"),
			Language:    getEnv("TESSERACT_LANG", "eng"),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
			PSM:         getEnvAsInt("TESSERACT_PSM", 6),
		},
		PDF: PDFConfig{
			Pdftotext: getEnv("PDFTOTEXT_BIN", "pdftotext"),
			Pdftoppm:  getEnv("PDFTOPPM_BIN", "pdftoppm"),
			RenderDPI: getEnvAsInt("PDF_RENDER_DPI", 200),
		},
		Cache: CacheConfig{
			Path:       getEnv("RESULT_CACHE_PATH", "./timetable-cache.db"),
			TTL:        getEnvAsDuration("RESULT_CACHE_TTL", 24*time.Hour),
			MaxEntries: getEnvAsInt("RESULT_CACHE_MAX_ENTRIES", 256),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Ollama.BaseURL == "" {
		return NewAppError("CONFIG_ERROR", "OLLAMA_BASE_URL is required", ErrInvalidInput)
	}
	if c.PDF.RenderDPI <= 0 {
		return NewAppError("CONFIG_ERROR", "PDF_RENDER_DPI must be positive", ErrInvalidInput)
	}
	if c.Cache.TTL <= 0 {
		return NewAppError("CONFIG_ERROR", "RESULT_CACHE_TTL must be positive", ErrInvalidInput)
	}
	return nil
}
