package protection

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/kupendrav/K-Pdf-s/internal/logger"
	"github.com/kupendrav/K-Pdf-s/internal/pdf"
)

// ErrEmptyPassword is returned by Protect when no password is given
var ErrEmptyPassword = errors.New("password must not be empty")

// Protect serializes doc encrypted with AES-256, using password as both
// the user and the owner password
func Protect(doc *pdf.Document, password string) ([]byte, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}
	return pdf.Save(doc, &pdf.AccessControl{UserPassword: password, OwnerPassword: password})
}

// Unlock opens protected bytes with password and writes them back without
// access control. A wrong password yields the codec's authentication error
// unchanged.
func Unlock(data []byte, password string) ([]byte, error) {
	doc, err := pdf.Load(data, password)
	if err != nil {
		return nil, err
	}
	return pdf.Save(doc, nil)
}

// Compress rewrites doc in the most compact layout available: object
// streams and a cross-reference stream, followed by pdfcpu's optimizer
// which removes duplicate fonts and images. This is a
// best-effort size reduction; embedded images are not resampled and no
// ratio is promised. When the optimizer fails the codec's output is used.
func Compress(doc *pdf.Document, log logger.Logger) ([]byte, error) {
	compact, err := pdf.SaveWithOptions(doc, pdf.SaveOptions{Compact: true})
	if err != nil {
		return nil, err
	}

	optimized, err := optimize(compact)
	if err != nil {
		log.Warn("pdfcpu optimizer rejected the document, keeping codec output: %v", err)
		return compact, nil
	}
	if len(optimized) >= len(compact) {
		log.Debug("optimizer output not smaller (%d >= %d bytes)", len(optimized), len(compact))
		return compact, nil
	}
	log.Debug("optimizer reduced output from %d to %d bytes", len(compact), len(optimized))
	return optimized, nil
}

func optimize(data []byte) ([]byte, error) {
	conf := pdf.Configuration()
	conf.WriteObjectStream = true
	conf.WriteXRefStream = true

	var out bytes.Buffer
	if err := api.Optimize(bytes.NewReader(data), &out, conf); err != nil {
		return nil, fmt.Errorf("failed to optimize PDF: %w", err)
	}
	return out.Bytes(), nil
}
