package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kupendrav/K-Pdf-s/internal/logger"
	"github.com/kupendrav/K-Pdf-s/internal/operations"
	"github.com/kupendrav/K-Pdf-s/models"
)

type CompressPDFQuery struct {
	File     models.SourceInfo `json:"file" jsonschema:"the PDF to compress"`
	Password string            `json:"password,omitempty" jsonschema:"password that opens a protected input"`
}

func CompressPDFTool() *mcp.Tool {
	inputschema, err := jsonschema.For[CompressPDFQuery](schemaOptions)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        "compress-pdf",
		Description: "Best-effort size reduction: rewrites the PDF with object streams and maximum compression and removes duplicate fonts and images. Images are not resampled and no ratio is guaranteed.",
		InputSchema: inputschema,
	}
}

func CompressPDFToolHandler(ctx context.Context, req *mcp.CallToolRequest, query CompressPDFQuery, deps Deps, log logger.Logger) (*mcp.CallToolResult, *ToolResponse, error) {
	log.Info("compress-pdf tool called")
	return runTool(ctx, operations.ToolInvocation{Tool: operations.ToolCompress, Password: query.Password}, one(query.File), deps, log)
}
