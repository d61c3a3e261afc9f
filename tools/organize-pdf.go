package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kupendrav/K-Pdf-s/internal/logger"
	"github.com/kupendrav/K-Pdf-s/internal/operations"
	"github.com/kupendrav/K-Pdf-s/models"
)

type OrganizePDFQuery struct {
	File     models.SourceInfo `json:"file" jsonschema:"the PDF to rearrange"`
	Pages    []int             `json:"pages" jsonschema:"1-based page numbers in output order; repeat a number to duplicate a page, leave it out to delete it"`
	Password string            `json:"password,omitempty" jsonschema:"password that opens a protected input"`
}

func OrganizePDFTool() *mcp.Tool {
	inputschema, err := jsonschema.For[OrganizePDFQuery](schemaOptions)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        "organize-pdf",
		Description: "Sort, repeat or delete pages of a PDF. The output organized_document.pdf contains the listed pages in the listed order.",
		InputSchema: inputschema,
	}
}

// OrganizePDFToolHandler builds a new document from the listed pages
func OrganizePDFToolHandler(ctx context.Context, req *mcp.CallToolRequest, query OrganizePDFQuery, deps Deps, log logger.Logger) (*mcp.CallToolResult, *ToolResponse, error) {
	log.Info("organize-pdf tool called with %d pages", len(query.Pages))
	return runTool(ctx, operations.ToolInvocation{Tool: operations.ToolOrganize, Pages: query.Pages, Password: query.Password}, one(query.File), deps, log)
}
