package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kupendrav/K-Pdf-s/internal/logger"
	"github.com/kupendrav/K-Pdf-s/internal/operations"
	"github.com/kupendrav/K-Pdf-s/models"
)

// JPGToPDFQuery takes images in page order
type JPGToPDFQuery struct {
	Files []models.SourceInfo `json:"files" jsonschema:"images, one page each; only .jpg, .jpeg and .png names are used"`
}

func JPGToPDFTool() *mcp.Tool {
	inputschema, err := jsonschema.For[JPGToPDFQuery](schemaOptions)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        "jpg-to-pdf",
		Description: "Convert JPG and PNG images into one PDF with a page per image, sized to the image. Files with other extensions are skipped.",
		InputSchema: inputschema,
	}
}

func JPGToPDFToolHandler(ctx context.Context, req *mcp.CallToolRequest, query JPGToPDFQuery, deps Deps, log logger.Logger) (*mcp.CallToolResult, *ToolResponse, error) {
	log.Info("jpg-to-pdf tool called with %d files", len(query.Files))
	return runTool(ctx, operations.ToolInvocation{Tool: operations.ToolJPGToPDF}, query.Files, deps, log)
}
