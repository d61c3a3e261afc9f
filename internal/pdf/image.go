package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// MaxImagePixels caps the decoded size of an embedded image. A PNG is fully
// decoded before it is stored, so the header is checked first.
const MaxImagePixels = 25_000_000

// Image is an image XObject owned by one Document
type Image struct {
	ref    types.IndirectRef
	Width  int
	Height int
}

// EmbedJPEG stores JPEG data as an image XObject. Colour JPEGs are kept
// DCT encoded.
func (d *Document) EmbedJPEG(data []byte) (*Image, error) {
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode JPEG header: %w", err)
	}
	return d.embed(data, "JPEG", cfg)
}

// EmbedPNG decodes PNG data and stores it as a Flate image. Transparency is
// kept in a separate soft mask.
func (d *Document) EmbedPNG(data []byte) (*Image, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode PNG header: %w", err)
	}
	return d.embed(data, "PNG", cfg)
}

func (d *Document) embed(data []byte, format string, cfg image.Config) (img *Image, err error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid %s dimensions %dx%d", format, cfg.Width, cfg.Height)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return nil, fmt.Errorf("%s of %dx%d pixels exceeds the limit of %d pixels", format, cfg.Width, cfg.Height, MaxImagePixels)
	}

	defer func() {
		if r := recover(); r != nil {
			img, err = nil, fmt.Errorf("failed to embed %s: %v", format, r)
		}
	}()
	ref, w, h, err := model.CreateImageResource(d.ctx.XRefTable, io.Reader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to embed %s: %w", format, err)
	}
	return &Image{ref: *ref, Width: w, Height: h}, nil
}
