// Package ocr extracts text from document images with a hosted vision model.
package ocr

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"github.com/openai/openai-go/v3/shared"
	"golang.org/x/time/rate"

	"github.com/kupendrav/K-Pdf-s/internal/logger"
)

// Prompt is sent with every image
const Prompt = "Analyze this document image. Perform OCR to extract all visible text. If it is a form or structured document, summarize the key fields. Format the output cleanly with Markdown."

// NoTextFound is returned when the model produced no text
const NoTextFound = "No text could be extracted."

// ErrMissingAPIKey is returned by NewClient when no API key is configured
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is not set")

// UnsupportedMediaTypeError is returned for inputs the vision model cannot read
type UnsupportedMediaTypeError struct {
	MIMEType string
}

func (e *UnsupportedMediaTypeError) Error() string {
	return fmt.Sprintf("unsupported media type %q: expected image/jpeg, image/png, image/webp, image/gif or application/pdf", e.MIMEType)
}

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// Config selects the model endpoint
type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint; empty uses the default
	BaseURL string
}

// Client sends OCR requests. It is safe for concurrent use.
type Client struct {
	api     openai.Client
	model   string
	limiter *rate.Limiter
	log     logger.Logger
}

// NewClient builds a client from cfg
func NewClient(cfg Config, log logger.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	// retries are handled by RateLimitedCall
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey), option.WithMaxRetries(0)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	model := cfg.Model
	if model == "" {
		model = shared.ChatModelGPT5Mini
	}
	return &Client{
		api:     openai.NewClient(opts...),
		model:   model,
		limiter: newLimiter(),
		log:     log,
	}, nil
}

// AnalyzeImage extracts the text of a document image or PDF. mimeType must be one
// of the image types the model accepts or application/pdf.
func (c *Client) AnalyzeImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	content, err := inputContent(data, mimeType)
	if err != nil {
		return "", err
	}

	c.log.Debug("Calling OpenAI API for OCR (%s, %d bytes)", mimeType, len(data))
	response, err := RateLimitedCall(ctx, c.limiter, estimatedTokensPerImage, c.log, func(ctx context.Context) (*responses.Response, error) {
		return c.api.Responses.New(ctx, responses.ResponseNewParams{
			Model: c.model,
			Input: responses.ResponseNewParamsInputUnion{
				OfInputItemList: responses.ResponseInputParam{
					responses.ResponseInputItemParamOfMessage(
						responses.ResponseInputMessageContentListParam{
							content,
							responses.ResponseInputContentParamOfInputText(Prompt),
						},
						"user",
					),
				},
			},
		})
	})
	if err != nil {
		c.log.Error("OCR request failed: %v", err)
		return "", fmt.Errorf("failed to analyze image: %w", err)
	}

	text := strings.TrimSpace(response.OutputText())
	if text == "" {
		return NoTextFound, nil
	}
	return text, nil
}

// inputContent encodes data as an input_image or input_file data URL
func inputContent(data []byte, mimeType string) (responses.ResponseInputContentUnionParam, error) {
	encoded := base64.StdEncoding.EncodeToString(data)
	switch {
	case imageTypes[mimeType]:
		return responses.ResponseInputContentUnionParam{
			OfInputImage: &responses.ResponseInputImageParam{
				ImageURL: openai.String("data:" + mimeType + ";base64," + encoded),
				Detail:   responses.ResponseInputImageDetailAuto,
			},
		}, nil
	case mimeType == "application/pdf":
		return responses.ResponseInputContentUnionParam{
			OfInputFile: &responses.ResponseInputFileParam{
				FileData: openai.String("data:application/pdf;base64," + encoded),
				Filename: openai.String("document.pdf"),
			},
		}, nil
	}
	return responses.ResponseInputContentUnionParam{}, &UnsupportedMediaTypeError{MIMEType: mimeType}
}
