package pdf

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"golang.org/x/text/encoding/charmap"
)

// StandardFont names one of the base 14 fonts. Only the Helvetica family
// is used.
type StandardFont string

const (
	Helvetica     StandardFont = "Helvetica"
	HelveticaBold StandardFont = "Helvetica-Bold"
)

// font returns the document-wide font object for f, creating it on first use
func (d *Document) font(f StandardFont) (types.IndirectRef, error) {
	if ref, ok := d.fonts[f]; ok {
		return ref, nil
	}
	ref, err := d.ctx.IndRefForNewObject(types.Dict{
		"Type":     types.Name("Font"),
		"Subtype":  types.Name("Type1"),
		"BaseFont": types.Name(f),
		"Encoding": types.Name("WinAnsiEncoding"),
	})
	if err != nil {
		return types.IndirectRef{}, err
	}
	if d.fonts == nil {
		d.fonts = map[StandardFont]types.IndirectRef{}
	}
	d.fonts[f] = *ref
	return *ref, nil
}

// opacityState returns a graphics state object setting fill and stroke alpha
func (d *Document) opacityState(alpha float64) (types.IndirectRef, error) {
	if ref, ok := d.gstates[alpha]; ok {
		return ref, nil
	}
	ref, err := d.ctx.IndRefForNewObject(types.Dict{
		"Type": types.Name("ExtGState"),
		"ca":   types.Float(alpha),
		"CA":   types.Float(alpha),
	})
	if err != nil {
		return types.IndirectRef{}, err
	}
	if d.gstates == nil {
		d.gstates = map[float64]types.IndirectRef{}
	}
	d.gstates[alpha] = *ref
	return *ref, nil
}

// ownResources gives the page a private resource dictionary, so that adding
// entries never changes what other pages sharing the original see.
func (p *Page) ownResources(category string) (types.Dict, error) {
	d, inh, err := p.dict()
	if err != nil {
		return nil, err
	}
	res := types.Dict{}
	for k, v := range inh.Resources {
		res[k] = v
	}
	sub := types.Dict{}
	if existing, err := p.doc.ctx.DereferenceDict(res[category]); err == nil {
		for k, v := range existing {
			sub[k] = v
		}
	}
	res[category] = sub
	d.Update("Resources", res)
	return sub, nil
}

// addResource registers ref under category and returns its resource name
func (p *Page) addResource(category, prefix string, ref types.IndirectRef) (string, error) {
	sub, err := p.ownResources(category)
	if err != nil {
		return "", err
	}
	for name, v := range sub {
		if r, ok := v.(types.IndirectRef); ok && r.ObjectNumber == ref.ObjectNumber {
			return name, nil
		}
	}
	for i := 1; ; i++ {
		name := prefix + strconv.Itoa(i)
		if _, taken := sub[name]; !taken {
			sub[name] = ref
			return name, nil
		}
	}
}

// UseFont makes f available to the page's content and returns its name
func (p *Page) UseFont(f StandardFont) (string, error) {
	ref, err := p.doc.font(f)
	if err != nil {
		return "", err
	}
	return p.addResource("Font", "KF", ref)
}

// UseOpacity returns the name of a graphics state with the given alpha
func (p *Page) UseOpacity(alpha float64) (string, error) {
	ref, err := p.doc.opacityState(alpha)
	if err != nil {
		return "", err
	}
	return p.addResource("ExtGState", "KGS", ref)
}

// UseImage makes img available to the page's content and returns its name
func (p *Page) UseImage(img *Image) (string, error) {
	return p.addResource("XObject", "KIm", img.ref)
}

// AppendContent draws ops on top of the page. Existing content is wrapped
// in q/Q so its graphics state cannot leak into ops.
func (p *Page) AppendContent(ops []byte) error {
	d, _, err := p.dict()
	if err != nil {
		return err
	}

	var existing types.Array
	switch v := d["Contents"].(type) {
	case types.IndirectRef:
		obj, err := p.doc.ctx.Dereference(v)
		if err != nil {
			return err
		}
		switch obj := obj.(type) {
		case types.Array:
			existing = append(existing, obj...)
		case types.StreamDict:
			existing = types.Array{v}
		}
	case types.Array:
		existing = append(existing, v...)
	}

	if len(existing) == 0 {
		ref, err := p.doc.addContentStream(ops)
		if err != nil {
			return err
		}
		d.Update("Contents", ref)
		return nil
	}

	save, err := p.doc.addContentStream([]byte("q\n"))
	if err != nil {
		return err
	}
	ref, err := p.doc.addContentStream(append([]byte("\nQ\n"), ops...))
	if err != nil {
		return err
	}
	contents := make(types.Array, 0, len(existing)+2)
	contents = append(contents, save)
	contents = append(contents, existing...)
	contents = append(contents, ref)
	d.Update("Contents", contents)
	return nil
}

func (d *Document) addContentStream(ops []byte) (types.IndirectRef, error) {
	sd, err := d.ctx.NewStreamDictForBuf(ops)
	if err != nil {
		return types.IndirectRef{}, err
	}
	if err := sd.Encode(); err != nil {
		return types.IndirectRef{}, fmt.Errorf("failed to compress content stream: %w", err)
	}
	ref, err := d.ctx.IndRefForNewObject(*sd)
	if err != nil {
		return types.IndirectRef{}, err
	}
	return *ref, nil
}

// Content accumulates content stream operators
type Content struct {
	buf bytes.Buffer
}

func (c *Content) op(operator string, operands ...float64) {
	for _, v := range operands {
		c.buf.WriteString(formatReal(v))
		c.buf.WriteByte(' ')
	}
	c.buf.WriteString(operator)
	c.buf.WriteByte('\n')
}

// SaveState writes q
func (c *Content) SaveState() { c.op("q") }

// RestoreState writes Q
func (c *Content) RestoreState() { c.op("Q") }

// SetGraphicsState selects a named ExtGState resource
func (c *Content) SetGraphicsState(name string) {
	writeName(&c.buf, name)
	c.buf.WriteString(" gs\n")
}

// SetFillGray sets the nonstroking colour to a gray level in [0, 1]
func (c *Content) SetFillGray(g float64) { c.op("g", g) }

// SetFillRGB sets the nonstroking colour
func (c *Content) SetFillRGB(r, g, b float64) { c.op("rg", r, g, b) }

// Transform concatenates a matrix to the CTM
func (c *Content) Transform(a, b, cc, d, e, f float64) { c.op("cm", a, b, cc, d, e, f) }

// BeginText writes BT
func (c *Content) BeginText() { c.op("BT") }

// EndText writes ET
func (c *Content) EndText() { c.op("ET") }

// SetFont selects a font resource and size
func (c *Content) SetFont(name string, size float64) {
	writeName(&c.buf, name)
	c.buf.WriteByte(' ')
	c.op("Tf", size)
}

// SetTextMatrix sets the text matrix to translate(x, y) rotated by degrees
func (c *Content) SetTextMatrix(x, y, degrees float64) {
	rad := degrees * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	c.op("Tm", cos, sin, -sin, cos, x, y)
}

// ShowText draws s encoded as WinAnsi. Nothing is written when s contains
// a rune outside the encoding.
func (c *Content) ShowText(s string) error {
	encoded, err := EncodeWinAnsi(s)
	if err != nil {
		return err
	}
	writeString(&c.buf, encoded)
	c.buf.WriteString(" Tj\n")
	return nil
}

// DrawImage paints an image XObject into the rectangle x, y, w, h
func (c *Content) DrawImage(name string, x, y, w, h float64) {
	c.SaveState()
	c.Transform(w, 0, 0, h, x, y)
	writeName(&c.buf, name)
	c.buf.WriteString(" Do\n")
	c.RestoreState()
}

// Bytes returns the operators written so far
func (c *Content) Bytes() []byte {
	return c.buf.Bytes()
}

// UnencodableError reports a rune the standard fonts cannot draw
type UnencodableError struct {
	Rune   rune
	Offset int
}

func (e *UnencodableError) Error() string {
	return fmt.Sprintf("character %q at byte %d is not in WinAnsiEncoding", e.Rune, e.Offset)
}

// EncodeWinAnsi converts s to WinAnsiEncoding, the encoding of the standard
// fonts
func EncodeWinAnsi(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for i, r := range s {
		b, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			return nil, &UnencodableError{Rune: r, Offset: i}
		}
		out = append(out, b)
	}
	return out, nil
}

func formatReal(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	s := strconv.FormatFloat(f, 'f', 4, 64)
	for s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

func writeString(buf *bytes.Buffer, s []byte) {
	buf.WriteByte('(')
	for _, b := range s {
		switch b {
		case '(', ')', '\\':
			buf.WriteByte('\\')
			buf.WriteByte(b)
		case '\r':
			buf.WriteString(`\r`)
		case '\n':
			buf.WriteString(`\n`)
		default:
			if b < 0x20 || b > 0x7E {
				fmt.Fprintf(buf, "\\%03o", b)
			} else {
				buf.WriteByte(b)
			}
		}
	}
	buf.WriteByte(')')
}

func writeName(buf *bytes.Buffer, n string) {
	buf.WriteByte('/')
	for i := 0; i < len(n); i++ {
		b := n[i]
		switch {
		case b < 0x21 || b > 0x7E, bytes.IndexByte([]byte("#()<>[]{}/%"), b) >= 0:
			fmt.Fprintf(buf, "#%02X", b)
		default:
			buf.WriteByte(b)
		}
	}
}
