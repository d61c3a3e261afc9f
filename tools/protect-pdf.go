package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kupendrav/K-Pdf-s/internal/logger"
	"github.com/kupendrav/K-Pdf-s/internal/operations"
	"github.com/kupendrav/K-Pdf-s/models"
)

type ProtectPDFQuery struct {
	File     models.SourceInfo `json:"file" jsonschema:"the PDF to protect"`
	Password string            `json:"password" jsonschema:"password required to open the output"`
}

func ProtectPDFTool() *mcp.Tool {
	inputschema, err := jsonschema.For[ProtectPDFQuery](schemaOptions)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        "protect-pdf",
		Description: "Encrypt a PDF with AES-256 so it opens only with the given password.",
		InputSchema: inputschema,
	}
}

func ProtectPDFToolHandler(ctx context.Context, req *mcp.CallToolRequest, query ProtectPDFQuery, deps Deps, log logger.Logger) (*mcp.CallToolResult, *ToolResponse, error) {
	log.Info("protect-pdf tool called")
	return runTool(ctx, operations.ToolInvocation{Tool: operations.ToolProtect, Password: query.Password}, one(query.File), deps, log)
}
