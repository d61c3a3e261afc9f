package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// maxTreeDepth bounds page tree recursion
const maxTreeDepth = 64

var disableConfigDir sync.Once

// Configuration returns the pdfcpu configuration every document of this
// package is read and written with. pdfcpu's config directory is never
// consulted.
func Configuration() *model.Configuration {
	disableConfigDir.Do(api.DisableConfigDir)
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	conf.CreateBookmarks = false
	conf.Offline = true
	return conf
}

// Document is one PDF held as a pdfcpu context. Pages are addressed by
// 0-based index here and translated to pdfcpu's 1-based page numbers.
type Document struct {
	ctx       *model.Context
	encrypted bool

	fonts   map[StandardFont]types.IndirectRef
	gstates map[float64]types.IndirectRef
}

// Page is one page of a Document
type Page struct {
	doc *Document
	nr  int
}

// Create returns an empty Document: no pages, no resources and no access
// control.
func Create() *Document {
	ctx, err := pdfcpu.CreateContextWithXRefTable(Configuration(), types.PaperSize["A4"])
	if err != nil {
		// only fails when the fresh catalog cannot be dereferenced
		panic(fmt.Sprintf("failed to create PDF context: %v", err))
	}
	return &Document{ctx: ctx}
}

// Load parses data into a Document. For protected files password is tried
// as owner password and then as user password.
func Load(data []byte, password string) (*Document, error) {
	ctx, err := read(data, password)
	if errors.Is(err, ErrMalformed) {
		// The cross-reference offset may be stale; point it at the last
		// section in the file and try once more.
		if repaired, ok := repairStartXRef(data); ok {
			if rctx, rerr := read(repaired, password); rerr == nil || errors.Is(rerr, ErrAuthenticationRequired) {
				ctx, err = rctx, rerr
			}
		}
	}
	if err != nil {
		return nil, err
	}

	doc := &Document{ctx: ctx, encrypted: ctx.Encrypt != nil}
	if err := splitSharedPages(ctx); err != nil {
		return nil, malformed("failed to walk page tree: %w", err)
	}
	return doc, nil
}

func read(data []byte, password string) (ctx *model.Context, err error) {
	if !bytes.Contains(data[:min(len(data), 1024)], []byte("%PDF-")) {
		return nil, malformed("missing %%PDF header")
	}

	defer func() {
		if r := recover(); r != nil {
			ctx, err = nil, malformed("pdfcpu: %v", r)
		}
	}()

	conf := Configuration()
	conf.UserPW = password
	conf.OwnerPW = password

	ctx, err = api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		if errors.Is(err, pdfcpu.ErrWrongPassword) {
			return nil, &LoadError{Kind: AuthenticationRequired, Err: err}
		}
		return nil, &LoadError{Kind: Malformed, Err: err}
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, &LoadError{Kind: Malformed, Err: err}
	}
	return ctx, nil
}

var objectHeader = regexp.MustCompile(`(?m)^\d+[ \t]+\d+[ \t]+obj\b`)

// repairStartXRef rewrites the trailing startxref offset to point at the
// last cross-reference table, or failing that the last cross-reference
// stream. It reports false when no better offset is found.
func repairStartXRef(data []byte) ([]byte, bool) {
	off := lastXRefSection(data)
	if off < 0 {
		return nil, false
	}
	end := bytes.LastIndex(data, []byte("startxref"))
	if end < off {
		end = len(data)
	}
	repaired := append(bytes.Clone(data[:end]), fmt.Sprintf("startxref\n%d\n%%%%EOF\n", off)...)
	if bytes.Equal(repaired, data) {
		return nil, false
	}
	return repaired, true
}

func lastXRefSection(data []byte) int {
	for i := len(data); i > 0; {
		j := bytes.LastIndex(data[:i], []byte("xref"))
		if j < 0 {
			break
		}
		if j == 0 || data[j-1] == '\n' || data[j-1] == '\r' {
			return j
		}
		i = j
	}

	k := bytes.LastIndex(data, []byte("/XRef"))
	if k < 0 {
		return -1
	}
	headers := objectHeader.FindAllIndex(data[:k], -1)
	if len(headers) == 0 {
		return -1
	}
	return headers[len(headers)-1][0]
}

// splitSharedPages gives every repeated occurrence of a page object in the
// page tree its own copy, so that changing one page never changes another
func splitSharedPages(ctx *model.Context) error {
	root, err := ctx.Pages()
	if err != nil {
		return err
	}
	return splitSharedKids(ctx, *root, map[int]bool{}, 0)
}

func splitSharedKids(ctx *model.Context, node types.IndirectRef, seen map[int]bool, depth int) error {
	if depth > maxTreeDepth {
		return fmt.Errorf("page tree deeper than %d levels", maxTreeDepth)
	}
	d, err := ctx.DereferenceDict(node)
	if err != nil || d == nil {
		return err
	}
	kids := d.ArrayEntry("Kids")
	for i, o := range kids {
		ref, ok := o.(types.IndirectRef)
		if !ok {
			continue
		}
		kid, err := ctx.DereferenceDict(ref)
		if err != nil {
			return err
		}
		if kid == nil {
			continue
		}
		if t := kid.Type(); t != nil && *t == "Pages" {
			if err := splitSharedKids(ctx, ref, seen, depth+1); err != nil {
				return err
			}
			continue
		}

		nr := ref.ObjectNumber.Value()
		if !seen[nr] {
			seen[nr] = true
			continue
		}
		copied, err := ctx.IndRefForNewObject(kid.Clone())
		if err != nil {
			return err
		}
		kids[i] = *copied
	}
	return nil
}

// DereferenceDict resolves o to a dictionary of the document. A nil object
// yields a nil dictionary.
func (d *Document) DereferenceDict(o types.Object) (types.Dict, error) {
	return d.ctx.DereferenceDict(o)
}

// NumPages returns the number of pages
func (d *Document) NumPages() int {
	return d.ctx.PageCount
}

// Pages returns the pages in order
func (d *Document) Pages() []*Page {
	out := make([]*Page, d.ctx.PageCount)
	for i := range out {
		out[i] = &Page{doc: d, nr: i + 1}
	}
	return out
}

// Page returns the page at index i (0-based)
func (d *Document) Page(i int) (*Page, error) {
	if i < 0 || i >= d.ctx.PageCount {
		return nil, &IndexError{Index: i, Count: d.ctx.PageCount}
	}
	return &Page{doc: d, nr: i + 1}, nil
}

// Encrypted reports whether the document was loaded from protected bytes
func (d *Document) Encrypted() bool {
	return d.encrypted
}

// AddPage appends a new empty page of the given size in points
func (d *Document) AddPage(width, height float64) (*Page, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid page size %gx%g", width, height)
	}
	root, err := d.ctx.Pages()
	if err != nil {
		return nil, err
	}
	tree, err := d.ctx.DereferenceDict(*root)
	if err != nil {
		return nil, err
	}

	ref, err := d.ctx.IndRefForNewObject(types.Dict{
		"Type":      types.Name("Page"),
		"Parent":    *root,
		"MediaBox":  types.RectForDim(width, height).Array(),
		"Resources": types.Dict{},
	})
	if err != nil {
		return nil, err
	}
	if err := model.AppendPageTree(ref, 1, tree); err != nil {
		return nil, err
	}
	d.ctx.PageCount++
	return &Page{doc: d, nr: d.ctx.PageCount}, nil
}

// CopyPages appends copies of the pages of src at indices (0-based) to dst,
// in the given order. Indices may repeat. Resources the pages use are
// copied with them; src is left unchanged.
func CopyPages(dst, src *Document, indices []int) (err error) {
	nrs := make([]int, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= src.ctx.PageCount {
			return &IndexError{Index: idx, Count: src.ctx.PageCount}
		}
		nrs[i] = idx + 1
	}
	if len(nrs) == 0 {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to copy pages: %v", r)
		}
	}()
	if err := pdfcpu.AddPages(src.ctx, dst.ctx, nrs, false); err != nil {
		return fmt.Errorf("failed to copy pages: %w", err)
	}
	dst.ctx.PageCount += len(nrs)
	return nil
}

// Document returns the document the page belongs to
func (p *Page) Document() *Document {
	return p.doc
}

// Number returns the page's 1-based position
func (p *Page) Number() int {
	return p.nr
}

func (p *Page) dict() (types.Dict, *model.InheritedPageAttrs, error) {
	d, _, inh, err := p.doc.ctx.PageDict(p.nr, false)
	if err != nil {
		return nil, nil, err
	}
	if d == nil {
		return nil, nil, fmt.Errorf("page %d not found", p.nr)
	}
	return d, inh, nil
}

// MediaBox returns llx, lly, urx, ury. Pages without a valid box are US
// Letter sized.
func (p *Page) MediaBox() [4]float64 {
	_, inh, err := p.dict()
	if err != nil || inh.MediaBox == nil {
		return [4]float64{0, 0, 612, 792}
	}
	r := inh.MediaBox
	return [4]float64{
		min(r.LL.X, r.UR.X), min(r.LL.Y, r.UR.Y),
		max(r.LL.X, r.UR.X), max(r.LL.Y, r.UR.Y),
	}
}

// Width of the media box in points
func (p *Page) Width() float64 {
	box := p.MediaBox()
	return box[2] - box[0]
}

// Height of the media box in points
func (p *Page) Height() float64 {
	box := p.MediaBox()
	return box[3] - box[1]
}

// Rotation returns the page rotation normalized to [0, 360)
func (p *Page) Rotation() int {
	_, inh, err := p.dict()
	if err != nil {
		return 0
	}
	return normalizeAngle(inh.Rotate)
}

// SetRotation stores angle normalized mod 360. The value is written on the
// page itself so an inherited rotation no longer applies.
func (p *Page) SetRotation(angle int) error {
	d, _, err := p.dict()
	if err != nil {
		return err
	}
	d.Update("Rotate", types.Integer(normalizeAngle(angle)))
	return nil
}

// Rotate adds delta to the existing rotation
func (p *Page) Rotate(delta int) error {
	return p.SetRotation(p.Rotation() + delta)
}

// Content returns the page's decoded content streams, concatenated. A page
// without content yields nil.
func (p *Page) Content() ([]byte, error) {
	d, _, err := p.dict()
	if err != nil {
		return nil, err
	}
	data, err := p.doc.ctx.PageContent(d, p.nr)
	if errors.Is(err, model.ErrNoContent) {
		return nil, nil
	}
	return data, err
}

// Resources returns the resource dictionary in effect for the page,
// including inherited entries.
func (p *Page) Resources() (types.Dict, error) {
	_, inh, err := p.dict()
	if err != nil {
		return nil, err
	}
	return inh.Resources, nil
}

func normalizeAngle(a int) int {
	return ((a % 360) + 360) % 360
}
