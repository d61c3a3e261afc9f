package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"

	"github.com/Epistemic-Technology/zotero/zotero"
	"github.com/kupendrav/K-Pdf-s/models"
)

// ErrNoSource is returned when a SourceInfo carries no data, URL or Zotero key
var ErrNoSource = errors.New("no data provided")

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

// Config controls how remote inputs are fetched
type Config struct {
	ZoteroAPIKey    string
	ZoteroLibraryID string
	// MaxBytes bounds a downloaded body; zero means no limit
	MaxBytes   int64
	HTTPClient *http.Client
}

// TooLargeError is returned when a fetched input exceeds Config.MaxBytes
type TooLargeError struct {
	Source string
	Limit  int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("%s exceeds the input limit of %d bytes", e.Source, e.Limit)
}

// DetectDocumentType determines the type of document from the raw data
// by checking magic bytes
func DetectDocumentType(data []byte) string {
	switch {
	case bytes.HasPrefix(data, pngSignature):
		return "png"
	case len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return "jpeg"
	case bytes.Contains(data[:min(len(data), 1024)], []byte("%PDF-")):
		// the header may follow leading junk
		return "pdf"
	}
	return "unknown"
}

// Extension returns the conventional file extension for a detected type
func Extension(docType string) string {
	switch docType {
	case "pdf":
		return ".pdf"
	case "jpeg":
		return ".jpg"
	case "png":
		return ".png"
	}
	return ".bin"
}

// GetData retrieves document data from a source and detects its type
func GetData(ctx context.Context, sourceInfo models.SourceInfo, cfg Config) (models.DocumentData, error) {
	var data []byte
	var err error
	name := sourceInfo.Name

	switch {
	case sourceInfo.RawData != nil:
		data = sourceInfo.RawData
		if cfg.MaxBytes > 0 && int64(len(data)) > cfg.MaxBytes {
			return models.DocumentData{}, &TooLargeError{Source: "raw data", Limit: cfg.MaxBytes}
		}
	case sourceInfo.URL != "":
		data, err = GetFromURL(ctx, sourceInfo.URL, cfg)
		if err != nil {
			return models.DocumentData{}, err
		}
		if name == "" {
			name = nameFromURL(sourceInfo.URL)
		}
	case sourceInfo.ZoteroID != "":
		data, err = GetFromZotero(ctx, sourceInfo.ZoteroID, cfg)
		if err != nil {
			return models.DocumentData{}, err
		}
		if cfg.MaxBytes > 0 && int64(len(data)) > cfg.MaxBytes {
			return models.DocumentData{}, &TooLargeError{Source: "Zotero item " + sourceInfo.ZoteroID, Limit: cfg.MaxBytes}
		}
		if name == "" {
			name, _ = FetchZoteroFilename(ctx, sourceInfo.ZoteroID, cfg)
		}
	default:
		return models.DocumentData{}, ErrNoSource
	}

	docType := DetectDocumentType(data)
	if name == "" {
		name = "document" + Extension(docType)
	}

	return models.DocumentData{
		Name: name,
		Data: data,
		Type: docType,
	}, nil
}

func nameFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" {
		return ""
	}
	return base
}

// GetFromURL fetches document data from a URL
func GetFromURL(ctx context.Context, rawURL string, cfg Config) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch %s: %s", rawURL, resp.Status)
	}

	if cfg.MaxBytes <= 0 {
		return io.ReadAll(resp.Body)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, cfg.MaxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > cfg.MaxBytes {
		return nil, &TooLargeError{Source: rawURL, Limit: cfg.MaxBytes}
	}
	return data, nil
}

func zoteroClient(cfg Config) (*zotero.Client, error) {
	if cfg.ZoteroAPIKey == "" || cfg.ZoteroLibraryID == "" {
		return nil, errors.New("ZOTERO_API_KEY and ZOTERO_LIBRARY_ID are required for Zotero sources")
	}
	return zotero.NewClient(cfg.ZoteroLibraryID, zotero.LibraryTypeUser, zotero.WithAPIKey(cfg.ZoteroAPIKey)), nil
}

// GetFromZotero fetches an attachment file from a Zotero library
func GetFromZotero(ctx context.Context, zoteroID string, cfg Config) ([]byte, error) {
	client, err := zoteroClient(cfg)
	if err != nil {
		return nil, err
	}
	data, err := client.File(ctx, zoteroID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Zotero file %s: %w", zoteroID, err)
	}
	return data, nil
}
