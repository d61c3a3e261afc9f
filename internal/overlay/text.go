package overlay

import (
	"fmt"
	"unicode/utf8"

	"github.com/kupendrav/K-Pdf-s/internal/pages"
	"github.com/kupendrav/K-Pdf-s/internal/pdf"
)

const (
	watermarkSize    = 50
	watermarkGray    = 0.75
	watermarkOpacity = 0.5
	watermarkAngle   = 45
	// approximate half-advance per character used to centre the text
	watermarkCharOffset = 15

	pageNumberSize    = 12
	pageNumberXOffset = 50
	pageNumberY       = 20
)

// DefaultWatermarkText is drawn when no text is given
const DefaultWatermarkText = "CONFIDENTIAL"

// DrawWatermark draws text diagonally across the middle of every page in
// translucent grey Helvetica-Bold. Text the standard fonts cannot encode is
// rejected before any page is changed.
func DrawWatermark(doc *pdf.Document, text string) error {
	if _, err := pdf.EncodeWinAnsi(text); err != nil {
		return &pages.InvalidParameterError{Name: "watermark text", Value: text, Reason: err.Error()}
	}
	n := utf8.RuneCountInString(text)
	for i, page := range doc.Pages() {
		font, err := page.UseFont(pdf.HelveticaBold)
		if err != nil {
			return fmt.Errorf("failed to watermark page %d: %w", i+1, err)
		}
		gs, err := page.UseOpacity(watermarkOpacity)
		if err != nil {
			return fmt.Errorf("failed to watermark page %d: %w", i+1, err)
		}

		var c pdf.Content
		c.SaveState()
		c.SetGraphicsState(gs)
		c.SetFillRGB(watermarkGray, watermarkGray, watermarkGray)
		c.BeginText()
		c.SetFont(font, watermarkSize)
		c.SetTextMatrix(page.Width()/2-float64(n*watermarkCharOffset), page.Height()/2, watermarkAngle)
		if err := c.ShowText(text); err != nil {
			return err
		}
		c.EndText()
		c.RestoreState()
		if err := page.AppendContent(c.Bytes()); err != nil {
			return fmt.Errorf("failed to watermark page %d: %w", i+1, err)
		}
	}
	return nil
}

// DrawPageNumbers writes "n / total" near the bottom right corner of every
// page
func DrawPageNumbers(doc *pdf.Document) error {
	total := doc.NumPages()
	for i, page := range doc.Pages() {
		font, err := page.UseFont(pdf.Helvetica)
		if err != nil {
			return fmt.Errorf("failed to number page %d: %w", i+1, err)
		}

		var c pdf.Content
		c.SaveState()
		c.SetFillGray(0)
		c.BeginText()
		c.SetFont(font, pageNumberSize)
		c.SetTextMatrix(page.Width()-pageNumberXOffset, pageNumberY, 0)
		if err := c.ShowText(fmt.Sprintf("%d / %d", i+1, total)); err != nil {
			return err
		}
		c.EndText()
		c.RestoreState()
		if err := page.AppendContent(c.Bytes()); err != nil {
			return fmt.Errorf("failed to number page %d: %w", i+1, err)
		}
	}
	return nil
}
