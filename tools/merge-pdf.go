package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kupendrav/K-Pdf-s/internal/logger"
	"github.com/kupendrav/K-Pdf-s/internal/operations"
	"github.com/kupendrav/K-Pdf-s/models"
)

type MergePDFQuery struct {
	Files    []models.SourceInfo `json:"files" jsonschema:"PDF files to merge, in output order (at least two)"`
	Password string              `json:"password,omitempty" jsonschema:"password that opens protected inputs"`
}

func MergePDFTool() *mcp.Tool {
	inputschema, err := jsonschema.For[MergePDFQuery](schemaOptions)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        "merge-pdf",
		Description: "Combine PDFs in the order given into one document named merged_document.pdf. Inputs are not modified.",
		InputSchema: inputschema,
	}
}

func MergePDFToolHandler(ctx context.Context, req *mcp.CallToolRequest, query MergePDFQuery, deps Deps, log logger.Logger) (*mcp.CallToolResult, *ToolResponse, error) {
	log.Info("merge-pdf tool called with %d files", len(query.Files))
	return runTool(ctx, operations.ToolInvocation{Tool: operations.ToolMerge, Password: query.Password}, query.Files, deps, log)
}
