package models

// SourceInfo describes where an input file comes from. Exactly one of
// RawData, URL and ZoteroID is expected to be set.
type SourceInfo struct {
	Name     string `json:"name,omitempty" jsonschema:"file name, used to pick the image format and to name outputs"`
	RawData  []byte `json:"raw_data,omitempty" jsonschema:"file contents, base64 encoded"`
	URL      string `json:"url,omitempty" jsonschema:"HTTP(S) URL to fetch the file from"`
	ZoteroID string `json:"zotero_id,omitempty" jsonschema:"key of a Zotero attachment item"`
}

// DocumentData is a fetched input file
type DocumentData struct {
	Name string
	Data []byte
	// Type is the sniffed content type: pdf, jpeg, png or unknown
	Type string
}

// OutputFile is one file produced by a tool
type OutputFile struct {
	Name     string `json:"name"`
	MIMEType string `json:"mime_type"`
	Size     int    `json:"size"`
	Data     []byte `json:"-"`
}

type ToolCategory string

const (
	CategoryOrganize       ToolCategory = "organize"
	CategoryOptimize       ToolCategory = "optimize"
	CategoryConvertToPDF   ToolCategory = "convert-to-pdf"
	CategoryConvertFromPDF ToolCategory = "convert-from-pdf"
	CategoryEditSecurity   ToolCategory = "edit-security"
)

// ToolInfo is one entry of the tool catalog
type ToolInfo struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    ToolCategory `json:"category"`
	IsNew       bool         `json:"is_new,omitempty"`
	// Implemented is false for catalog entries that have no back-end
	Implemented bool `json:"implemented"`
}

// Catalog lists every tool in display order
var Catalog = []ToolInfo{
	{ID: "merge-pdf", Title: "Merge PDF", Description: "Combine PDFs in the order you want.", Category: CategoryOrganize, Implemented: true},
	{ID: "split-pdf", Title: "Split PDF", Description: "Separate every page into an independent PDF file.", Category: CategoryOrganize, Implemented: true},
	{ID: "organize-pdf", Title: "Organize PDF", Description: "Sort, repeat or delete the pages of a PDF file.", Category: CategoryOrganize, Implemented: true},
	{ID: "scan-pdf", Title: "Scan to PDF", Description: "Capture document scans from a mobile device.", Category: CategoryOrganize},

	{ID: "compress-pdf", Title: "Compress PDF", Description: "Best-effort size reduction by rewriting the file in its most compact layout. Images are not resampled.", Category: CategoryOptimize, Implemented: true},
	{ID: "repair-pdf", Title: "Repair PDF", Description: "Rebuild a PDF whose cross-reference data is damaged.", Category: CategoryOptimize, Implemented: true},
	{ID: "ocr-pdf", Title: "OCR PDF", Description: "Convert scanned PDF into searchable and selectable documents.", Category: CategoryOptimize},

	{ID: "jpg-to-pdf", Title: "JPG to PDF", Description: "Convert JPG and PNG images to PDF, one page per image.", Category: CategoryConvertToPDF, Implemented: true},
	{ID: "word-to-pdf", Title: "Word to PDF", Description: "Convert DOC and DOCX files to PDF.", Category: CategoryConvertToPDF},
	{ID: "powerpoint-to-pdf", Title: "PowerPoint to PDF", Description: "Convert PPT and PPTX slideshows to PDF.", Category: CategoryConvertToPDF},
	{ID: "excel-to-pdf", Title: "Excel to PDF", Description: "Convert Excel spreadsheets to PDF.", Category: CategoryConvertToPDF},
	{ID: "html-to-pdf", Title: "HTML to PDF", Description: "Convert webpages in HTML to PDF.", Category: CategoryConvertToPDF},

	{ID: "pdf-to-jpg", Title: "PDF to JPG", Description: "Convert each PDF page into a JPG.", Category: CategoryConvertFromPDF},
	{ID: "pdf-to-word", Title: "PDF to Word", Description: "Convert PDF files into DOC and DOCX documents.", Category: CategoryConvertFromPDF},
	{ID: "pdf-to-powerpoint", Title: "PDF to PowerPoint", Description: "Turn PDF files into PPT and PPTX slideshows.", Category: CategoryConvertFromPDF},
	{ID: "pdf-to-excel", Title: "PDF to Excel", Description: "Pull data from PDFs into Excel spreadsheets.", Category: CategoryConvertFromPDF},
	{ID: "pdf-to-pdfa", Title: "PDF to PDF/A", Description: "Transform a PDF to PDF/A for long-term archiving.", Category: CategoryConvertFromPDF},

	{ID: "edit-pdf", Title: "Edit PDF", Description: "Add text, images, shapes or freehand annotations.", Category: CategoryEditSecurity, IsNew: true},
	{ID: "rotate-pdf", Title: "Rotate PDF", Description: "Rotate every page by 90, 180 or 270 degrees.", Category: CategoryEditSecurity, Implemented: true},
	{ID: "page-numbers", Title: "Page numbers", Description: "Add \"n / total\" page numbers to every page.", Category: CategoryEditSecurity, Implemented: true},
	{ID: "watermark", Title: "Watermark", Description: "Stamp translucent text diagonally across every page.", Category: CategoryEditSecurity, Implemented: true},
	{ID: "crop-pdf", Title: "Crop PDF", Description: "Crop margins of PDF documents.", Category: CategoryEditSecurity, IsNew: true},
	{ID: "unlock-pdf", Title: "Unlock PDF", Description: "Remove PDF password security using the password.", Category: CategoryEditSecurity, Implemented: true},
	{ID: "protect-pdf", Title: "Protect PDF", Description: "Encrypt a PDF with a password (AES-256).", Category: CategoryEditSecurity, Implemented: true},
	{ID: "sign-pdf", Title: "Sign PDF", Description: "Sign or request electronic signatures.", Category: CategoryEditSecurity},
	{ID: "redact-pdf", Title: "Redact PDF", Description: "Permanently remove sensitive information.", Category: CategoryEditSecurity, IsNew: true},
	{ID: "compare-pdf", Title: "Compare PDF", Description: "Show a side-by-side comparison of two versions.", Category: CategoryEditSecurity, IsNew: true},
}

// FindTool looks up a catalog entry by id
func FindTool(id string) (ToolInfo, bool) {
	for _, t := range Catalog {
		if t.ID == id {
			return t, true
		}
	}
	return ToolInfo{}, false
}
