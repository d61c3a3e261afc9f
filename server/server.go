package server

import (
	"context"
	"errors"

	"github.com/kupendrav/K-Pdf-s/internal/config"
	"github.com/kupendrav/K-Pdf-s/internal/documents"
	"github.com/kupendrav/K-Pdf-s/internal/logger"
	"github.com/kupendrav/K-Pdf-s/internal/ocr"
	"github.com/kupendrav/K-Pdf-s/internal/operations"
	"github.com/kupendrav/K-Pdf-s/models"
	"github.com/kupendrav/K-Pdf-s/resources"
	"github.com/kupendrav/K-Pdf-s/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func CreateServer(log logger.Logger, cfg config.Config) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "k-pdf", Version: "v0.0.1"}, nil)

	deps := tools.Deps{
		Runner: operations.NewRunner(log),
		Fetch: documents.Config{
			ZoteroAPIKey:    cfg.ZoteroAPIKey,
			ZoteroLibraryID: cfg.ZoteroLibraryID,
			MaxBytes:        cfg.MaxInputBytes,
		},
	}

	ocrClient, err := ocr.NewClient(ocr.Config{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OCRModel,
		BaseURL: cfg.OpenAIBaseURL,
	}, log.With("ocr"))
	if errors.Is(err, ocr.ErrMissingAPIKey) {
		log.Warn("OPENAI_API_KEY not set, ocr-image will report an error when called")
	}

	mcp.AddTool(server, tools.MergePDFTool(), func(ctx context.Context, req *mcp.CallToolRequest, query tools.MergePDFQuery) (*mcp.CallToolResult, *tools.ToolResponse, error) {
		return tools.MergePDFToolHandler(ctx, req, query, deps, log.With("tools/merge-pdf"))
	})

	mcp.AddTool(server, tools.SplitPDFTool(), func(ctx context.Context, req *mcp.CallToolRequest, query tools.SplitPDFQuery) (*mcp.CallToolResult, *tools.ToolResponse, error) {
		return tools.SplitPDFToolHandler(ctx, req, query, deps, log.With("tools/split-pdf"))
	})

	mcp.AddTool(server, tools.OrganizePDFTool(), func(ctx context.Context, req *mcp.CallToolRequest, query tools.OrganizePDFQuery) (*mcp.CallToolResult, *tools.ToolResponse, error) {
		return tools.OrganizePDFToolHandler(ctx, req, query, deps, log.With("tools/organize-pdf"))
	})

	mcp.AddTool(server, tools.CompressPDFTool(), func(ctx context.Context, req *mcp.CallToolRequest, query tools.CompressPDFQuery) (*mcp.CallToolResult, *tools.ToolResponse, error) {
		return tools.CompressPDFToolHandler(ctx, req, query, deps, log.With("tools/compress-pdf"))
	})

	mcp.AddTool(server, tools.RepairPDFTool(), func(ctx context.Context, req *mcp.CallToolRequest, query tools.RepairPDFQuery) (*mcp.CallToolResult, *tools.ToolResponse, error) {
		return tools.RepairPDFToolHandler(ctx, req, query, deps, log.With("tools/repair-pdf"))
	})

	mcp.AddTool(server, tools.JPGToPDFTool(), func(ctx context.Context, req *mcp.CallToolRequest, query tools.JPGToPDFQuery) (*mcp.CallToolResult, *tools.ToolResponse, error) {
		return tools.JPGToPDFToolHandler(ctx, req, query, deps, log.With("tools/jpg-to-pdf"))
	})

	mcp.AddTool(server, tools.RotatePDFTool(), func(ctx context.Context, req *mcp.CallToolRequest, query tools.RotatePDFQuery) (*mcp.CallToolResult, *tools.ToolResponse, error) {
		return tools.RotatePDFToolHandler(ctx, req, query, deps, log.With("tools/rotate-pdf"))
	})

	mcp.AddTool(server, tools.PageNumbersTool(), func(ctx context.Context, req *mcp.CallToolRequest, query tools.PageNumbersQuery) (*mcp.CallToolResult, *tools.ToolResponse, error) {
		return tools.PageNumbersToolHandler(ctx, req, query, deps, log.With("tools/page-numbers"))
	})

	mcp.AddTool(server, tools.WatermarkTool(), func(ctx context.Context, req *mcp.CallToolRequest, query tools.WatermarkQuery) (*mcp.CallToolResult, *tools.ToolResponse, error) {
		return tools.WatermarkToolHandler(ctx, req, query, deps, log.With("tools/watermark"))
	})

	mcp.AddTool(server, tools.UnlockPDFTool(), func(ctx context.Context, req *mcp.CallToolRequest, query tools.UnlockPDFQuery) (*mcp.CallToolResult, *tools.ToolResponse, error) {
		return tools.UnlockPDFToolHandler(ctx, req, query, deps, log.With("tools/unlock-pdf"))
	})

	mcp.AddTool(server, tools.ProtectPDFTool(), func(ctx context.Context, req *mcp.CallToolRequest, query tools.ProtectPDFQuery) (*mcp.CallToolResult, *tools.ToolResponse, error) {
		return tools.ProtectPDFToolHandler(ctx, req, query, deps, log.With("tools/protect-pdf"))
	})

	mcp.AddTool(server, tools.OCRImageTool(), func(ctx context.Context, req *mcp.CallToolRequest, query tools.OCRImageQuery) (*mcp.CallToolResult, *tools.OCRImageResponse, error) {
		return tools.OCRImageToolHandler(ctx, req, query, ocrClient, deps.Fetch, log.With("tools/ocr-image"))
	})

	catalogHandler := resources.NewCatalogResourceHandler(models.Catalog)

	server.AddResource(&mcp.Resource{
		URI:         resources.CatalogURI,
		Name:        "tool-catalog",
		Description: "Every tool grouped by category, with a flag for the ones this server implements",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return catalogHandler.ReadResource(ctx, req.Params.URI)
	})

	// Template for a single catalog entry
	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: resources.CatalogToolTemplate,
		Name:        "tool-catalog-entry",
		Description: "One catalog entry by tool id, e.g. merge-pdf",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return catalogHandler.ReadResource(ctx, req.Params.URI)
	})

	return server
}
