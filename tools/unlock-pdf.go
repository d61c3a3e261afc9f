package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kupendrav/K-Pdf-s/internal/logger"
	"github.com/kupendrav/K-Pdf-s/internal/operations"
	"github.com/kupendrav/K-Pdf-s/models"
)

type UnlockPDFQuery struct {
	File     models.SourceInfo `json:"file" jsonschema:"the protected PDF"`
	Password string            `json:"password" jsonschema:"the password of the PDF"`
}

func UnlockPDFTool() *mcp.Tool {
	inputschema, err := jsonschema.For[UnlockPDFQuery](schemaOptions)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        "unlock-pdf",
		Description: "Remove password protection from a PDF, given its password.",
		InputSchema: inputschema,
	}
}

// UnlockPDFToolHandler writes the document back without encryption. A wrong
// password comes back as an error result so the caller can ask again.
func UnlockPDFToolHandler(ctx context.Context, req *mcp.CallToolRequest, query UnlockPDFQuery, deps Deps, log logger.Logger) (*mcp.CallToolResult, *ToolResponse, error) {
	log.Info("unlock-pdf tool called")
	return runTool(ctx, operations.ToolInvocation{Tool: operations.ToolUnlock, Password: query.Password}, one(query.File), deps, log)
}
