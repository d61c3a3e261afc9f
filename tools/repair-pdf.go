package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kupendrav/K-Pdf-s/internal/logger"
	"github.com/kupendrav/K-Pdf-s/internal/operations"
	"github.com/kupendrav/K-Pdf-s/models"
)

type RepairPDFQuery struct {
	File     models.SourceInfo `json:"file" jsonschema:"the damaged PDF"`
	Password string            `json:"password,omitempty" jsonschema:"password that opens a protected input"`
}

func RepairPDFTool() *mcp.Tool {
	inputschema, err := jsonschema.For[RepairPDFQuery](schemaOptions)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        "repair-pdf",
		Description: "Rebuild a PDF whose cross-reference table is damaged by scanning the file for its objects.",
		InputSchema: inputschema,
	}
}

func RepairPDFToolHandler(ctx context.Context, req *mcp.CallToolRequest, query RepairPDFQuery, deps Deps, log logger.Logger) (*mcp.CallToolResult, *ToolResponse, error) {
	log.Info("repair-pdf tool called")
	return runTool(ctx, operations.ToolInvocation{Tool: operations.ToolRepair, Password: query.Password}, one(query.File), deps, log)
}
