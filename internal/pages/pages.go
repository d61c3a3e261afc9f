package pages

import (
	"fmt"
	"strings"

	"github.com/kupendrav/K-Pdf-s/internal/pdf"
)

// InsufficientInputError reports that an operation received fewer inputs
// than it needs
type InsufficientInputError struct {
	Need int
	Got  int
}

func (e *InsufficientInputError) Error() string {
	return fmt.Sprintf("need at least %d input files, got %d", e.Need, e.Got)
}

// InvalidParameterError reports a parameter outside its accepted range
type InvalidParameterError struct {
	Name   string
	Value  any
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Name, e.Value, e.Reason)
}

// NamedDocument is a document together with the file name it is saved under
type NamedDocument struct {
	Name     string
	Document *pdf.Document
}

// Merge concatenates the pages of docs in input order into a new document.
// The inputs are not modified.
func Merge(docs []*pdf.Document) (*pdf.Document, error) {
	if len(docs) < 2 {
		return nil, &InsufficientInputError{Need: 2, Got: len(docs)}
	}
	out := pdf.Create()
	for i, doc := range docs {
		if err := appendAll(out, doc); err != nil {
			return nil, fmt.Errorf("failed to merge document %d: %w", i+1, err)
		}
	}
	return out, nil
}

func appendAll(dst, src *pdf.Document) error {
	indices := make([]int, src.NumPages())
	for i := range indices {
		indices[i] = i
	}
	return appendPages(dst, src, indices)
}

func appendPages(dst, src *pdf.Document, indices []int) error {
	return pdf.CopyPages(dst, src, indices)
}

// Split returns one single-page document per page of doc, in page order.
// Outputs are named <base>_page_<n>.pdf where base is name without a
// trailing .pdf extension.
func Split(doc *pdf.Document, name string) ([]NamedDocument, error) {
	base := BaseName(name)
	out := make([]NamedDocument, 0, doc.NumPages())
	for i := 0; i < doc.NumPages(); i++ {
		single := pdf.Create()
		if err := appendPages(single, doc, []int{i}); err != nil {
			return nil, fmt.Errorf("failed to split page %d: %w", i+1, err)
		}
		out = append(out, NamedDocument{
			Name:     fmt.Sprintf("%s_page_%d.pdf", base, i+1),
			Document: single,
		})
	}
	return out, nil
}

// BaseName strips one trailing ".pdf", matched case-insensitively
func BaseName(name string) string {
	if len(name) >= 4 && strings.EqualFold(name[len(name)-4:], ".pdf") {
		return name[:len(name)-4]
	}
	return name
}

// Rotate adds delta degrees to the rotation of every page. delta must be a
// non-zero multiple of 90.
func Rotate(doc *pdf.Document, delta int) error {
	if delta%90 != 0 || delta%360 == 0 {
		return &InvalidParameterError{Name: "rotation", Value: delta, Reason: "must be 90, 180 or 270 degrees"}
	}
	for i, p := range doc.Pages() {
		if err := p.Rotate(delta); err != nil {
			return fmt.Errorf("failed to rotate page %d: %w", i+1, err)
		}
	}
	return nil
}

// Extract builds a new document from the pages at indices, in the given
// order. Indices may repeat; leaving one out deletes that page.
func Extract(doc *pdf.Document, indices []int) (*pdf.Document, error) {
	if len(indices) == 0 {
		return nil, &InvalidParameterError{Name: "pages", Value: indices, Reason: "select at least one page"}
	}
	out := pdf.Create()
	if err := appendPages(out, doc, indices); err != nil {
		return nil, err
	}
	return out, nil
}
