package pdf

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

func TestSave_RoundTrip(t *testing.T) {
	doc := sizedDocument(t, 100, 200, 300)
	if err := doc.Pages()[1].SetRotation(270); err != nil {
		t.Fatalf("SetRotation failed: %v", err)
	}
	data, err := Save(doc, nil)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("Expected a PDF header, got %q", data[:min(len(data), 8)])
	}

	count, err := api.PageCount(bytes.NewReader(data), Configuration())
	if err != nil || count != 3 {
		t.Errorf("Expected pdfcpu to count 3 pages, got %d (err=%v)", count, err)
	}

	loaded, err := Load(data, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff([]float64{100, 200, 300}, pageWidths(loaded)); diff != "" {
		t.Errorf("page widths mismatch (-want +got):\n%s", diff)
	}
	if got := loaded.Pages()[1].Rotation(); got != 270 {
		t.Errorf("Expected rotation 270, got %d", got)
	}
}

func TestSave_Compact(t *testing.T) {
	doc := sizedDocument(t, 100, 100)
	plain, err := Save(doc, nil)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	compact, err := SaveWithOptions(doc, SaveOptions{Compact: true})
	if err != nil {
		t.Fatalf("SaveWithOptions failed: %v", err)
	}
	if !bytes.Contains(plain, []byte("\nxref")) {
		t.Error("Expected a cross-reference table in plain output")
	}
	if !bytes.Contains(compact, []byte("/XRef")) {
		t.Error("Expected a cross-reference stream in compact output")
	}

	loaded, err := Load(compact, "")
	if err != nil {
		t.Fatalf("Load of compact output failed: %v", err)
	}
	if loaded.NumPages() != 2 {
		t.Errorf("Expected 2 pages, got %d", loaded.NumPages())
	}
}

func TestSave_Protected(t *testing.T) {
	data, err := Save(sizedDocument(t, 100, 200), &AccessControl{UserPassword: "user", OwnerPassword: "owner"})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	for _, password := range []string{"", "wrong"} {
		if _, err := Load(data, password); !errors.Is(err, ErrAuthenticationRequired) {
			t.Errorf("password %q: expected ErrAuthenticationRequired, got %v", password, err)
		}
	}
	for _, password := range []string{"user", "owner"} {
		doc, err := Load(data, password)
		if err != nil {
			t.Fatalf("password %q: Load failed: %v", password, err)
		}
		if !doc.Encrypted() {
			t.Errorf("password %q: expected an encrypted document", password)
		}
		if diff := cmp.Diff([]float64{100, 200}, pageWidths(doc)); diff != "" {
			t.Errorf("password %q: page widths mismatch (-want +got):\n%s", password, diff)
		}
	}
}

func TestSave_ProtectedUsesAES256(t *testing.T) {
	data, err := Save(sizedDocument(t, 100), &AccessControl{UserPassword: "pw"})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	conf := Configuration()
	conf.UserPW = "pw"
	conf.OwnerPW = "pw"
	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		t.Fatalf("ReadContext failed: %v", err)
	}
	if ctx.E == nil || ctx.E.V != 5 || ctx.E.R != 5 {
		t.Errorf("Expected V5 AES-256 encryption, got %+v", ctx.E)
	}
}

func TestSave_DropsProtectionOfLoadedDocument(t *testing.T) {
	protected, err := Save(sizedDocument(t, 100), &AccessControl{UserPassword: "pw"})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	doc, err := Load(protected, "pw")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	plain, err := Save(doc, nil)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(plain, "")
	if err != nil {
		t.Fatalf("Expected unprotected output, got: %v", err)
	}
	if loaded.Encrypted() || loaded.NumPages() != 1 {
		t.Errorf("Expected 1 unencrypted page, got encrypted=%v pages=%d", loaded.Encrypted(), loaded.NumPages())
	}
}

func TestSave_EmptyAccessControl(t *testing.T) {
	_, err := Save(sizedDocument(t, 100), &AccessControl{})
	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Errorf("Expected *EncodingError, got: %v", err)
	}
}

func TestLoad_AES256Revision5(t *testing.T) {
	plain, err := Save(sizedDocument(t, 100, 200), nil)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data := encryptWith(t, plain, true, 256, "user", "owner")

	conf := Configuration()
	conf.UserPW = "user"
	conf.OwnerPW = "user"
	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		t.Fatalf("ReadContext failed: %v", err)
	}
	if ctx.E == nil || ctx.E.R != 5 {
		t.Fatalf("Expected a revision 5 security handler, got %+v", ctx.E)
	}

	for _, password := range []string{"user", "owner"} {
		doc, err := Load(data, password)
		if err != nil {
			t.Fatalf("password %q: Load failed: %v", password, err)
		}
		if diff := cmp.Diff([]float64{100, 200}, pageWidths(doc)); diff != "" {
			t.Errorf("password %q: page widths mismatch (-want +got):\n%s", password, diff)
		}
	}

	for _, password := range []string{"", "wrong"} {
		_, err := Load(data, password)
		var loadErr *LoadError
		if !errors.As(err, &loadErr) || loadErr.Kind != AuthenticationRequired {
			t.Errorf("password %q: expected AuthenticationRequired, got %v", password, err)
		}
	}
}

func TestLoad_LegacyEncryption(t *testing.T) {
	plain, err := Save(sizedDocument(t, 150), nil)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	tests := []struct {
		name      string
		aes       bool
		keyLength int
	}{
		{"RC4 40", false, 40},
		{"RC4 128", false, 128},
		{"AES 128", true, 128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := encryptWith(t, plain, tt.aes, tt.keyLength, "secret", "secret")
			if _, err := Load(data, "nope"); !errors.Is(err, ErrAuthenticationRequired) {
				t.Errorf("Expected ErrAuthenticationRequired, got %v", err)
			}
			doc, err := Load(data, "secret")
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if doc.NumPages() != 1 || doc.Pages()[0].Width() != 150 {
				t.Errorf("Expected one 150pt wide page, got %v", pageWidths(doc))
			}
		})
	}
}

func TestLoad_EmptyUserPassword(t *testing.T) {
	// files with only an owner password open without prompting
	plain, err := Save(sizedDocument(t, 100), nil)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data := encryptWith(t, plain, true, 128, "", "owner")
	doc, err := Load(data, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if doc.NumPages() != 1 {
		t.Errorf("Expected 1 page, got %d", doc.NumPages())
	}
}
