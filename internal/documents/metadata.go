package documents

import (
	"context"
	"fmt"
	"path"

	"github.com/Epistemic-Technology/zotero/zotero"
)

// FetchZoteroFilename looks up the stored file name of a Zotero attachment.
// Falls back to the item title when the attachment has no filename field.
func FetchZoteroFilename(ctx context.Context, zoteroID string, cfg Config) (string, error) {
	client, err := zoteroClient(cfg)
	if err != nil {
		return "", err
	}

	item, err := client.Item(ctx, zoteroID, nil)
	if err != nil {
		return "", fmt.Errorf("failed to fetch Zotero item %s: %w", zoteroID, err)
	}
	return attachmentFilename(item), nil
}

// attachmentFilename picks a file name from the item fields
func attachmentFilename(item *zotero.Item) string {
	if item == nil {
		return ""
	}
	// The zotero library populates Extra with every field it has no struct member for
	if item.Data.Extra != nil {
		if val, ok := item.Data.Extra["filename"].(string); ok && val != "" {
			return path.Base(val)
		}
	}
	return item.Data.Title
}
