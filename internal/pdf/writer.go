package pdf

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// AccessControl protects a saved document. The user password is required
// to open it; the owner password unlocks it as well.
type AccessControl struct {
	UserPassword  string
	OwnerPassword string
}

// SaveOptions controls serialization
type SaveOptions struct {
	// Access encrypts the output with AES-256 when set
	Access *AccessControl
	// Compact stores objects in compressed object streams with a
	// cross-reference stream. This is a best-effort size reduction with no
	// guaranteed ratio.
	Compact bool
}

// Save serializes doc. Without access control the output is unprotected,
// even if doc was loaded from protected bytes.
func Save(doc *Document, ac *AccessControl) ([]byte, error) {
	return SaveWithOptions(doc, SaveOptions{Access: ac})
}

// SaveWithOptions serializes doc
func SaveWithOptions(doc *Document, opts SaveOptions) ([]byte, error) {
	out, err := doc.write(opts.Compact)
	if err != nil {
		return nil, &EncodingError{Err: err}
	}
	if opts.Access == nil {
		return out, nil
	}
	if out, err = encrypt(out, *opts.Access, opts.Compact); err != nil {
		return nil, &EncodingError{Err: err}
	}
	return out, nil
}

func (d *Document) write(compact bool) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("pdfcpu: %v", r)
		}
	}()

	ctx := d.ctx
	ctx.WriteObjectStream = compact
	ctx.WriteXRefStream = compact
	if d.encrypted {
		ctx.Cmd = model.DECRYPT
	}
	ctx.Write = model.NewWriteContext(ctx.Configuration.Eol)

	var buf bytes.Buffer
	if err := api.WriteContext(ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encrypt protects plain output with AES-256 and every permission granted.
// The owner password defaults to the user password.
func encrypt(plain []byte, ac AccessControl, compact bool) ([]byte, error) {
	if ac.UserPassword == "" && ac.OwnerPassword == "" {
		return nil, errors.New("access control needs a password")
	}
	owner := ac.OwnerPassword
	if owner == "" {
		owner = ac.UserPassword
	}

	conf := Configuration()
	conf.UserPW = ac.UserPassword
	conf.OwnerPW = owner
	conf.EncryptUsingAES = true
	conf.EncryptKeyLength = 256
	conf.Permissions = model.PermissionsAll
	conf.WriteObjectStream = compact
	conf.WriteXRefStream = compact

	var out bytes.Buffer
	if err := api.Encrypt(bytes.NewReader(plain), &out, conf); err != nil {
		return nil, fmt.Errorf("failed to encrypt: %w", err)
	}
	return out.Bytes(), nil
}
