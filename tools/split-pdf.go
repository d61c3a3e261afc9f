package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kupendrav/K-Pdf-s/internal/logger"
	"github.com/kupendrav/K-Pdf-s/internal/operations"
	"github.com/kupendrav/K-Pdf-s/models"
)

type SplitPDFQuery struct {
	File     models.SourceInfo `json:"file" jsonschema:"the PDF to split"`
	Password string            `json:"password,omitempty" jsonschema:"password that opens a protected input"`
}

func SplitPDFTool() *mcp.Tool {
	inputschema, err := jsonschema.For[SplitPDFQuery](schemaOptions)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        "split-pdf",
		Description: "Separate every page of a PDF into its own file, named <name>_page_<n>.pdf.",
		InputSchema: inputschema,
	}
}

func SplitPDFToolHandler(ctx context.Context, req *mcp.CallToolRequest, query SplitPDFQuery, deps Deps, log logger.Logger) (*mcp.CallToolResult, *ToolResponse, error) {
	log.Info("split-pdf tool called")
	return runTool(ctx, operations.ToolInvocation{Tool: operations.ToolSplit, Password: query.Password}, one(query.File), deps, log)
}
