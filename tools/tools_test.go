package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kupendrav/K-Pdf-s/internal/documents"
	"github.com/kupendrav/K-Pdf-s/internal/logger"
	"github.com/kupendrav/K-Pdf-s/internal/ocr"
	"github.com/kupendrav/K-Pdf-s/internal/operations"
	"github.com/kupendrav/K-Pdf-s/internal/pdf"
	"github.com/kupendrav/K-Pdf-s/models"
)

func testDeps() Deps {
	return Deps{Runner: operations.NewRunner(logger.NewNoOpLogger())}
}

func pdfSource(t *testing.T, name string, pages int) models.SourceInfo {
	t.Helper()
	doc := pdf.Create()
	for i := 0; i < pages; i++ {
		doc.AddPage(100+float64(i), 100)
	}
	data, err := pdf.Save(doc, nil)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	return models.SourceInfo{Name: name, RawData: data}
}

// embedded returns the embedded resources of a tool result
func embedded(t *testing.T, result *mcp.CallToolResult) []*mcp.ResourceContents {
	t.Helper()
	var out []*mcp.ResourceContents
	for _, c := range result.Content {
		if r, ok := c.(*mcp.EmbeddedResource); ok {
			out = append(out, r.Resource)
		}
	}
	return out
}

func errorText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if !result.IsError {
		t.Fatal("Expected an error result")
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("Expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestMergePDFToolHandler(t *testing.T) {
	ctx := context.Background()
	query := MergePDFQuery{Files: []models.SourceInfo{pdfSource(t, "a.pdf", 2), pdfSource(t, "b.pdf", 1)}}

	result, resp, err := MergePDFToolHandler(ctx, nil, query, testDeps(), logger.NewNoOpLogger())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.IsError {
		t.Fatalf("Unexpected error result: %v", result.Content)
	}

	files := embedded(t, result)
	if len(files) != 1 {
		t.Fatalf("Expected 1 embedded file, got %d", len(files))
	}
	if files[0].URI != "file:///merged_document.pdf" || files[0].MIMEType != "application/pdf" {
		t.Errorf("Unexpected resource %s (%s)", files[0].URI, files[0].MIMEType)
	}
	doc, err := pdf.Load(files[0].Blob, "")
	if err != nil {
		t.Fatalf("Load of merged output failed: %v", err)
	}
	if doc.NumPages() != 3 {
		t.Errorf("Expected 3 pages, got %d", doc.NumPages())
	}

	if len(resp.Files) != 1 || resp.Files[0].Size != len(files[0].Blob) {
		t.Errorf("Structured response does not match the embedded file: %+v", resp.Files)
	}
	if !strings.Contains(resp.Summary, "3 pages") {
		t.Errorf("Unexpected summary %q", resp.Summary)
	}
}

func TestSplitPDFToolHandler(t *testing.T) {
	result, _, err := SplitPDFToolHandler(context.Background(), nil, SplitPDFQuery{File: pdfSource(t, "scan.pdf", 3)}, testDeps(), logger.NewNoOpLogger())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	var uris []string
	for _, f := range embedded(t, result) {
		uris = append(uris, f.URI)
	}
	want := []string{"file:///scan_page_1.pdf", "file:///scan_page_2.pdf", "file:///scan_page_3.pdf"}
	if diff := cmp.Diff(want, uris); diff != "" {
		t.Errorf("outputs mismatch (-want +got):\n%s", diff)
	}
}

func TestToolHandler_CoreErrors(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNoOpLogger()

	tests := []struct {
		name     string
		call     func() (*mcp.CallToolResult, *ToolResponse, error)
		kind     operations.ErrorKind
		expected string
	}{
		{
			name: "merge with one file",
			call: func() (*mcp.CallToolResult, *ToolResponse, error) {
				return MergePDFToolHandler(ctx, nil, MergePDFQuery{Files: []models.SourceInfo{pdfSource(t, "a.pdf", 1)}}, testDeps(), log)
			},
			kind:     operations.KindInsufficientInput,
			expected: "Please select at least 2 files.",
		},
		{
			name: "protect without password",
			call: func() (*mcp.CallToolResult, *ToolResponse, error) {
				return ProtectPDFToolHandler(ctx, nil, ProtectPDFQuery{File: pdfSource(t, "a.pdf", 1)}, testDeps(), log)
			},
			kind:     operations.KindMissingParameter,
			expected: "Please enter a password",
		},
		{
			name: "unlock an unreadable file",
			call: func() (*mcp.CallToolResult, *ToolResponse, error) {
				return UnlockPDFToolHandler(ctx, nil, UnlockPDFQuery{File: models.SourceInfo{Name: "x.pdf", RawData: []byte("junk")}, Password: "pw"}, testDeps(), log)
			},
			kind:     operations.KindMalformed,
			expected: "The file is not a valid PDF or is too damaged to read.",
		},
		{
			name: "rotate by an invalid angle",
			call: func() (*mcp.CallToolResult, *ToolResponse, error) {
				return RotatePDFToolHandler(ctx, nil, RotatePDFQuery{File: pdfSource(t, "a.pdf", 1), Rotation: 45}, testDeps(), log)
			},
			kind:     operations.KindInvalidParameter,
			expected: "Invalid rotation: must be 90, 180 or 270 degrees.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, resp, err := tt.call()
			if err != nil {
				t.Fatalf("Expected failures as tool results, got protocol error: %v", err)
			}
			if got := errorText(t, result); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
			if resp.ErrorKind != tt.kind {
				t.Errorf("Expected kind %q, got %q", tt.kind, resp.ErrorKind)
			}
			if len(embedded(t, result)) != 0 {
				t.Error("Expected no output files on error")
			}
		})
	}
}

func TestToolHandler_FetchError(t *testing.T) {
	result, _, err := WatermarkToolHandler(context.Background(), nil, WatermarkQuery{}, testDeps(), logger.NewNoOpLogger())
	if err != nil {
		t.Fatalf("Expected no protocol error, got: %v", err)
	}
	if got := errorText(t, result); !strings.Contains(got, "no data provided") {
		t.Errorf("Unexpected message %q", got)
	}
}

func TestToolHandler_InputLimit(t *testing.T) {
	deps := testDeps()
	deps.Fetch = documents.Config{MaxBytes: 10}
	result, resp, err := CompressPDFToolHandler(context.Background(), nil, CompressPDFQuery{File: pdfSource(t, "a.pdf", 1)}, deps, logger.NewNoOpLogger())
	if err != nil {
		t.Fatalf("Expected no protocol error, got: %v", err)
	}
	errorText(t, result)
	if resp.ErrorKind != operations.KindInvalidParameter {
		t.Errorf("Expected invalid_parameter, got %q", resp.ErrorKind)
	}
}

func TestOCRImageToolHandler_NoClient(t *testing.T) {
	_, _, err := OCRImageToolHandler(context.Background(), nil, OCRImageQuery{File: models.SourceInfo{RawData: []byte{0xFF, 0xD8, 0xFF}}}, nil, documents.Config{}, logger.NewNoOpLogger())
	if !errors.Is(err, ocr.ErrMissingAPIKey) {
		t.Errorf("Expected ErrMissingAPIKey, got: %v", err)
	}
}

func TestDetectMIMEType(t *testing.T) {
	tests := []struct {
		doc      models.DocumentData
		expected string
	}{
		{models.DocumentData{Name: "a", Type: "pdf"}, "application/pdf"},
		{models.DocumentData{Name: "a", Type: "jpeg"}, "image/jpeg"},
		{models.DocumentData{Name: "a", Type: "png"}, "image/png"},
		{models.DocumentData{Name: "photo.gif", Type: "unknown"}, "image/gif"},
		{models.DocumentData{Name: "blob", Type: "unknown"}, "application/octet-stream"},
	}
	for _, tt := range tests {
		if got := detectMIMEType(tt.doc); got != tt.expected {
			t.Errorf("detectMIMEType(%+v) = %q, want %q", tt.doc, got, tt.expected)
		}
	}
}

func TestToolSchemas(t *testing.T) {
	for _, tool := range []*mcp.Tool{
		MergePDFTool(), SplitPDFTool(), OrganizePDFTool(), RotatePDFTool(), JPGToPDFTool(),
		ProtectPDFTool(), UnlockPDFTool(), WatermarkTool(), PageNumbersTool(), CompressPDFTool(),
		RepairPDFTool(), OCRImageTool(),
	} {
		if tool.InputSchema == nil {
			t.Errorf("%s has no input schema", tool.Name)
		}
		if _, ok := models.FindTool(tool.Name); !ok && tool.Name != "ocr-image" {
			t.Errorf("%s is not in the catalog", tool.Name)
		}
	}
}

func TestToolSchemas_RawDataIsBase64(t *testing.T) {
	tests := []struct {
		tool     *mcp.Tool
		instance map[string]any
	}{
		{MergePDFTool(), map[string]any{"files": []any{
			map[string]any{"name": "a.pdf", "raw_data": "JVBERi0xLjcK"},
			map[string]any{"raw_data": "JVBERi0xLjcK"},
		}}},
		{PageNumbersTool(), map[string]any{"file": map[string]any{"raw_data": "JVBERi0xLjcK"}}},
		{OCRImageTool(), map[string]any{"file": map[string]any{"raw_data": "/9j/"}}},
	}
	for _, tt := range tests {
		t.Run(tt.tool.Name, func(t *testing.T) {
			schema, ok := tt.tool.InputSchema.(*jsonschema.Schema)
			if !ok {
				t.Fatalf("Expected *jsonschema.Schema, got %T", tt.tool.InputSchema)
			}
			resolved, err := schema.Resolve(nil)
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if err := resolved.Validate(tt.instance); err != nil {
				t.Errorf("Expected base64 raw_data to validate, got: %v", err)
			}
		})
	}
}
