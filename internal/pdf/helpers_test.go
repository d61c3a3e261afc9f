package pdf

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// rawPDF assembles a classic PDF from object bodies numbered from 1
func rawPDF(objects []string, trailer string) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects)+1)
	for i, body := range objects {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d %s >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, trailer, xref)
	return buf.Bytes()
}

// threePagePDF has a two-level page tree with inherited attributes
func threePagePDF() []byte {
	return rawPDF([]string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R 4 0 R] /Count 3 /MediaBox [0 0 200 300] /Resources << /Font << /F1 7 0 R >> >> >>",
		"<< /Type /Page /Parent 2 0 R /Contents 6 0 R >>",
		"<< /Type /Pages /Parent 2 0 R /Kids [5 0 R 8 0 R] /Count 2 /Rotate 90 >>",
		"<< /Type /Page /Parent 4 0 R /MediaBox [0 0 400 500] >>",
		"<< /Length 24 >>\nstream\nBT /F1 12 Tf (one) Tj ET\nendstream",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
		"<< /Type /Page /Parent 4 0 R /Rotate 180 >>",
	}, "/Root 1 0 R")
}

// sizedDocument builds a document whose page widths identify the pages
func sizedDocument(t *testing.T, widths ...float64) *Document {
	t.Helper()
	doc := Create()
	for _, w := range widths {
		if _, err := doc.AddPage(w, 100); err != nil {
			t.Fatalf("AddPage failed: %v", err)
		}
	}
	return doc
}

func pageWidths(doc *Document) []float64 {
	var out []float64
	for _, p := range doc.Pages() {
		out = append(out, p.Width())
	}
	return out
}

func reload(t *testing.T, doc *Document) *Document {
	t.Helper()
	data, err := Save(doc, nil)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(data, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return loaded
}

// encryptWith protects data the way other PDF producers do, independent of
// Save
func encryptWith(t *testing.T, data []byte, aes bool, keyLength int, user, owner string) []byte {
	t.Helper()
	conf := Configuration()
	conf.UserPW = user
	conf.OwnerPW = owner
	conf.EncryptUsingAES = aes
	conf.EncryptKeyLength = keyLength

	var out bytes.Buffer
	if err := api.Encrypt(bytes.NewReader(data), &out, conf); err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	return out.Bytes()
}
