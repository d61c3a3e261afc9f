package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kupendrav/K-Pdf-s/internal/documents"
	"github.com/kupendrav/K-Pdf-s/internal/logger"
	"github.com/kupendrav/K-Pdf-s/internal/operations"
	"github.com/kupendrav/K-Pdf-s/models"
)

// Deps are shared by every PDF tool handler
type Deps struct {
	Runner *operations.Runner
	Fetch  documents.Config
}

// ToolResponse is the structured output of every PDF tool
type ToolResponse struct {
	Files     []models.OutputFile  `json:"files,omitempty"`
	Skipped   int                  `json:"skipped,omitempty"`
	Summary   string               `json:"summary,omitempty"`
	ErrorKind operations.ErrorKind `json:"error_kind,omitempty"`
	Error     string               `json:"error,omitempty"`
}

// fetchFiles resolves every source to its bytes, in order
func fetchFiles(ctx context.Context, sources []models.SourceInfo, cfg documents.Config) ([]operations.InputFile, error) {
	files := make([]operations.InputFile, 0, len(sources))
	for i, src := range sources {
		doc, err := documents.GetData(ctx, src, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch file %d: %w", i+1, err)
		}
		files = append(files, operations.InputFile{Name: doc.Name, Data: doc.Data})
	}
	return files, nil
}

// runTool fetches the inputs, runs inv and packs the outputs as embedded
// resources. Failures are reported as tool errors, not protocol errors.
func runTool(ctx context.Context, inv operations.ToolInvocation, sources []models.SourceInfo, deps Deps, log logger.Logger) (*mcp.CallToolResult, *ToolResponse, error) {
	files, err := fetchFiles(ctx, sources, deps.Fetch)
	if err != nil {
		log.Error("Failed to fetch inputs: %v", err)
		return errorResult(err)
	}
	inv.Files = files

	res, err := deps.Runner.Run(ctx, inv)
	if err != nil {
		return errorResult(err)
	}

	content := []mcp.Content{&mcp.TextContent{Text: res.Summary}}
	for _, f := range res.Files {
		content = append(content, &mcp.EmbeddedResource{
			Resource: &mcp.ResourceContents{
				URI:      "file:///" + f.Name,
				MIMEType: f.MIMEType,
				Blob:     f.Data,
			},
		})
	}
	log.Info("Returning %d file(s)", len(res.Files))

	return &mcp.CallToolResult{Content: content}, &ToolResponse{
		Files:   res.Files,
		Skipped: res.Skipped,
		Summary: res.Summary,
	}, nil
}

func errorResult(err error) (*mcp.CallToolResult, *ToolResponse, error) {
	kind, msg := operations.Describe(err)
	if kind == operations.KindInternal {
		// fetch failures carry more useful detail than the generic message
		msg = err.Error()
	}
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}, &ToolResponse{ErrorKind: kind, Error: msg}, nil
}

// one wraps a single source for tools that take one file
func one(src models.SourceInfo) []models.SourceInfo {
	return []models.SourceInfo{src}
}
