package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kupendrav/K-Pdf-s/models"
)

const (
	// CatalogURI lists every tool
	CatalogURI = "k-pdf://catalog"
	// CatalogToolTemplate addresses one catalog entry
	CatalogToolTemplate = CatalogURI + "/{toolId}"
)

// CatalogResourceHandler serves the tool catalog as JSON
type CatalogResourceHandler struct {
	catalog []models.ToolInfo
}

// NewCatalogResourceHandler creates a handler over the given catalog
func NewCatalogResourceHandler(catalog []models.ToolInfo) *CatalogResourceHandler {
	return &CatalogResourceHandler{catalog: catalog}
}

type categoryGroup struct {
	Category models.ToolCategory `json:"category"`
	Tools    []models.ToolInfo   `json:"tools"`
}

// ReadResource reads a specific resource by URI
func (h *CatalogResourceHandler) ReadResource(ctx context.Context, uri string) (*mcp.ReadResourceResult, error) {
	if !strings.HasPrefix(uri, CatalogURI) {
		return nil, fmt.Errorf("invalid URI scheme, expected %s", CatalogURI)
	}

	var payload any
	switch rest := strings.TrimPrefix(uri, CatalogURI); {
	case rest == "" || rest == "/":
		payload = h.grouped()
	case strings.HasPrefix(rest, "/"):
		id := strings.TrimPrefix(rest, "/")
		tool, ok := h.find(id)
		if !ok {
			return nil, mcp.ResourceNotFoundError(uri)
		}
		payload = tool
	default:
		return nil, mcp.ResourceNotFoundError(uri)
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal catalog: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}

// grouped returns the catalog grouped by category, in first-seen order
func (h *CatalogResourceHandler) grouped() []categoryGroup {
	var groups []categoryGroup
	index := map[models.ToolCategory]int{}
	for _, t := range h.catalog {
		i, ok := index[t.Category]
		if !ok {
			i = len(groups)
			index[t.Category] = i
			groups = append(groups, categoryGroup{Category: t.Category})
		}
		groups[i].Tools = append(groups[i].Tools, t)
	}
	return groups
}

func (h *CatalogResourceHandler) find(id string) (models.ToolInfo, bool) {
	for _, t := range h.catalog {
		if t.ID == id {
			return t, true
		}
	}
	return models.ToolInfo{}, false
}
