package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kupendrav/K-Pdf-s/internal/logger"
	"github.com/kupendrav/K-Pdf-s/internal/operations"
	"github.com/kupendrav/K-Pdf-s/models"
)

type RotatePDFQuery struct {
	File     models.SourceInfo `json:"file" jsonschema:"the PDF to rotate"`
	Rotation int               `json:"rotation,omitempty" jsonschema:"clockwise degrees: 90, 180 or 270 (default 90)"`
	Password string            `json:"password,omitempty" jsonschema:"password that opens a protected input"`
}

func RotatePDFTool() *mcp.Tool {
	inputschema, err := jsonschema.For[RotatePDFQuery](schemaOptions)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        "rotate-pdf",
		Description: "Rotate every page of a PDF clockwise by 90, 180 or 270 degrees.",
		InputSchema: inputschema,
	}
}

func RotatePDFToolHandler(ctx context.Context, req *mcp.CallToolRequest, query RotatePDFQuery, deps Deps, log logger.Logger) (*mcp.CallToolResult, *ToolResponse, error) {
	log.Info("rotate-pdf tool called with rotation %d", query.Rotation)
	return runTool(ctx, operations.ToolInvocation{Tool: operations.ToolRotate, Rotation: query.Rotation, Password: query.Password}, one(query.File), deps, log)
}
