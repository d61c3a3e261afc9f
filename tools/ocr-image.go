package tools

import (
	"context"
	"mime"
	"path/filepath"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kupendrav/K-Pdf-s/internal/documents"
	"github.com/kupendrav/K-Pdf-s/internal/logger"
	"github.com/kupendrav/K-Pdf-s/internal/ocr"
	"github.com/kupendrav/K-Pdf-s/models"
)

type OCRImageQuery struct {
	File     models.SourceInfo `json:"file" jsonschema:"a document image (JPEG, PNG, WebP, GIF) or a PDF"`
	MIMEType string            `json:"mime_type,omitempty" jsonschema:"media type of the file; detected from its content or name when omitted"`
}

type OCRImageResponse struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

func OCRImageTool() *mcp.Tool {
	inputschema, err := jsonschema.For[OCRImageQuery](schemaOptions)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        "ocr-image",
		Description: "Extract all visible text from a scanned page or photo of a document using a hosted vision model. Forms and structured documents are summarized field by field. Output is Markdown.",
		InputSchema: inputschema,
	}
}

// OCRImageToolHandler runs OCR on one file. client is nil when no OpenAI key
// is configured.
func OCRImageToolHandler(ctx context.Context, req *mcp.CallToolRequest, query OCRImageQuery, client *ocr.Client, fetch documents.Config, log logger.Logger) (*mcp.CallToolResult, *OCRImageResponse, error) {
	log.Info("ocr-image tool called")
	if client == nil {
		return nil, nil, ocr.ErrMissingAPIKey
	}

	doc, err := documents.GetData(ctx, query.File, fetch)
	if err != nil {
		log.Error("Failed to fetch input: %v", err)
		return nil, nil, err
	}

	mimeType := query.MIMEType
	if mimeType == "" {
		mimeType = detectMIMEType(doc)
	}

	text, err := client.AnalyzeImage(ctx, doc.Data, mimeType)
	if err != nil {
		return nil, nil, err
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, &OCRImageResponse{Name: doc.Name, Text: text}, nil
}

func detectMIMEType(doc models.DocumentData) string {
	switch doc.Type {
	case "pdf":
		return "application/pdf"
	case "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	}
	if t := mime.TypeByExtension(filepath.Ext(doc.Name)); t != "" {
		return t
	}
	return "application/octet-stream"
}
