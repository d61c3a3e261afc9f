package overlay

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kupendrav/K-Pdf-s/internal/pdf"
)

// ImageFile is one input of ImagesToDocument
type ImageFile struct {
	Name string
	Data []byte
}

// UnsupportedAssetError reports an image whose bytes do not decode as the
// format its extension declares, or whose pixel count exceeds
// pdf.MaxImagePixels
type UnsupportedAssetError struct {
	Name string
	Err  error
}

func (e *UnsupportedAssetError) Error() string {
	return fmt.Sprintf("unsupported image %q: %v", e.Name, e.Err)
}

func (e *UnsupportedAssetError) Unwrap() error {
	return e.Err
}

// ImagesToDocument creates one page per JPEG or PNG file, sized to the
// image's pixel dimensions with the image drawn at the origin. Files with
// any other extension are skipped; their number is returned alongside the
// document.
func ImagesToDocument(files []ImageFile) (*pdf.Document, int, error) {
	doc := pdf.Create()
	skipped := 0
	for _, f := range files {
		var img *pdf.Image
		var err error
		switch strings.ToLower(strings.TrimPrefix(filepath.Ext(f.Name), ".")) {
		case "jpg", "jpeg":
			img, err = doc.EmbedJPEG(f.Data)
		case "png":
			img, err = doc.EmbedPNG(f.Data)
		default:
			skipped++
			continue
		}
		if err != nil {
			return nil, skipped, &UnsupportedAssetError{Name: f.Name, Err: err}
		}

		w, h := float64(img.Width), float64(img.Height)
		page, err := doc.AddPage(w, h)
		if err != nil {
			return nil, skipped, err
		}
		name, err := page.UseImage(img)
		if err != nil {
			return nil, skipped, err
		}
		var c pdf.Content
		c.DrawImage(name, 0, 0, w, h)
		if err := page.AppendContent(c.Bytes()); err != nil {
			return nil, skipped, err
		}
	}
	return doc, skipped, nil
}
