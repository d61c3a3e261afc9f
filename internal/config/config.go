package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/kupendrav/K-Pdf-s/internal/logger"
)

// DefaultMaxInputBytes bounds the size of one fetched input file
const DefaultMaxInputBytes int64 = 100 << 20

// DefaultOCRModel is used when K_PDF_OCR_MODEL is not set
const DefaultOCRModel = "gpt-5-mini"

// Config is the process configuration, read once at startup
type Config struct {
	Log logger.LogConfig

	// OpenAI settings for the OCR tool; an empty key disables it
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OCRModel      string

	// Zotero settings for fetching attachments by item key
	ZoteroAPIKey    string
	ZoteroLibraryID string

	MaxInputBytes int64
}

// Load reads the configuration from the environment
func Load() (Config, error) {
	cfg := Config{
		Log: logger.LogConfig{
			Output:   os.Getenv("LOG_OUTPUT"),
			Level:    os.Getenv("LOG_LEVEL"),
			FilePath: os.Getenv("LOG_FILE_PATH"),
		},
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:   os.Getenv("OPENAI_BASE_URL"),
		OCRModel:        os.Getenv("K_PDF_OCR_MODEL"),
		ZoteroAPIKey:    os.Getenv("ZOTERO_API_KEY"),
		ZoteroLibraryID: os.Getenv("ZOTERO_LIBRARY_ID"),
		MaxInputBytes:   DefaultMaxInputBytes,
	}
	if cfg.OCRModel == "" {
		cfg.OCRModel = DefaultOCRModel
	}
	if v := os.Getenv("K_PDF_MAX_INPUT_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid K_PDF_MAX_INPUT_BYTES %q: must be a positive integer", v)
		}
		cfg.MaxInputBytes = n
	}
	return cfg, nil
}
