package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kupendrav/K-Pdf-s/internal/logger"
	"github.com/kupendrav/K-Pdf-s/internal/operations"
	"github.com/kupendrav/K-Pdf-s/models"
)

type WatermarkQuery struct {
	File     models.SourceInfo `json:"file" jsonschema:"the PDF to stamp"`
	Text     string            `json:"text,omitempty" jsonschema:"watermark text (default CONFIDENTIAL)"`
	Password string            `json:"password,omitempty" jsonschema:"password that opens a protected input"`
}

func WatermarkTool() *mcp.Tool {
	inputschema, err := jsonschema.For[WatermarkQuery](schemaOptions)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        "watermark",
		Description: "Stamp large translucent gray text diagonally across the middle of every page.",
		InputSchema: inputschema,
	}
}

func WatermarkToolHandler(ctx context.Context, req *mcp.CallToolRequest, query WatermarkQuery, deps Deps, log logger.Logger) (*mcp.CallToolResult, *ToolResponse, error) {
	log.Info("watermark tool called")
	return runTool(ctx, operations.ToolInvocation{Tool: operations.ToolWatermark, WatermarkText: query.Text, Password: query.Password}, one(query.File), deps, log)
}
