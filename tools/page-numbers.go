package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kupendrav/K-Pdf-s/internal/logger"
	"github.com/kupendrav/K-Pdf-s/internal/operations"
	"github.com/kupendrav/K-Pdf-s/models"
)

type PageNumbersQuery struct {
	File     models.SourceInfo `json:"file" jsonschema:"the PDF to number"`
	Password string            `json:"password,omitempty" jsonschema:"password that opens a protected input"`
}

func PageNumbersTool() *mcp.Tool {
	inputschema, err := jsonschema.For[PageNumbersQuery](schemaOptions)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        "page-numbers",
		Description: "Add \"n / total\" page numbers to the bottom right corner of every page.",
		InputSchema: inputschema,
	}
}

func PageNumbersToolHandler(ctx context.Context, req *mcp.CallToolRequest, query PageNumbersQuery, deps Deps, log logger.Logger) (*mcp.CallToolResult, *ToolResponse, error) {
	log.Info("page-numbers tool called")
	return runTool(ctx, operations.ToolInvocation{Tool: operations.ToolPageNumbers, Password: query.Password}, one(query.File), deps, log)
}
