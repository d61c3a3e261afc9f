// Package operations dispatches one tool invocation to the PDF packages and
// collects its output files.
package operations

import (
	"context"
	"fmt"

	"github.com/kupendrav/K-Pdf-s/internal/logger"
	"github.com/kupendrav/K-Pdf-s/internal/overlay"
	"github.com/kupendrav/K-Pdf-s/internal/pages"
	"github.com/kupendrav/K-Pdf-s/internal/pdf"
	"github.com/kupendrav/K-Pdf-s/internal/protection"
	"github.com/kupendrav/K-Pdf-s/models"
)

// ToolID names an implemented tool
type ToolID string

const (
	ToolMerge       ToolID = "merge-pdf"
	ToolSplit       ToolID = "split-pdf"
	ToolOrganize    ToolID = "organize-pdf"
	ToolRotate      ToolID = "rotate-pdf"
	ToolJPGToPDF    ToolID = "jpg-to-pdf"
	ToolProtect     ToolID = "protect-pdf"
	ToolUnlock      ToolID = "unlock-pdf"
	ToolWatermark   ToolID = "watermark"
	ToolPageNumbers ToolID = "page-numbers"
	ToolCompress    ToolID = "compress-pdf"
	ToolRepair      ToolID = "repair-pdf"
)

// Tools lists every ToolID in catalog order
var Tools = []ToolID{
	ToolMerge, ToolSplit, ToolOrganize, ToolCompress, ToolRepair, ToolJPGToPDF,
	ToolRotate, ToolPageNumbers, ToolWatermark, ToolUnlock, ToolProtect,
}

// ParseToolID maps a catalog id to a ToolID
func ParseToolID(id string) (ToolID, error) {
	for _, t := range Tools {
		if string(t) == id {
			return t, nil
		}
	}
	return "", &UnknownToolError{ID: id}
}

const (
	// DefaultRotation is used when ToolInvocation.Rotation is zero
	DefaultRotation = 90

	mimePDF = "application/pdf"
)

// InputFile is one file handed to a tool
type InputFile struct {
	Name string
	Data []byte
}

// ToolInvocation is one request to run a tool
type ToolInvocation struct {
	Tool  ToolID
	Files []InputFile
	// Password protects the output for protect-pdf and opens the inputs for
	// every other tool
	Password      string
	WatermarkText string
	// Rotation in degrees; zero means DefaultRotation
	Rotation int
	// Pages are 1-based page numbers for organize-pdf
	Pages []int
}

// Result holds every output file of one invocation
type Result struct {
	Files   []models.OutputFile
	Skipped int
	Summary string
}

// Runner executes tool invocations. It holds no per-invocation state and is
// safe for concurrent use.
type Runner struct {
	log logger.Logger
}

func NewRunner(log logger.Logger) *Runner {
	return &Runner{log: log}
}

// Run executes inv. Either every output is returned or none is.
func (r *Runner) Run(ctx context.Context, inv ToolInvocation) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := r.log.With("operations/" + string(inv.Tool))
	log.Info("Running on %d file(s)", len(inv.Files))

	var res *Result
	var err error
	switch inv.Tool {
	case ToolMerge:
		res, err = r.merge(ctx, inv)
	case ToolSplit:
		res, err = r.split(inv)
	case ToolOrganize:
		res, err = r.organize(inv)
	case ToolRotate:
		res, err = r.rotate(inv)
	case ToolJPGToPDF:
		res, err = r.imagesToPDF(ctx, inv)
	case ToolProtect:
		res, err = r.protect(inv)
	case ToolUnlock:
		res, err = r.unlock(inv)
	case ToolWatermark:
		res, err = r.watermark(inv)
	case ToolPageNumbers:
		res, err = r.pageNumbers(inv)
	case ToolCompress:
		res, err = r.compress(inv, log)
	case ToolRepair:
		res, err = r.repair(inv)
	default:
		return nil, &UnknownToolError{ID: string(inv.Tool)}
	}
	if err != nil {
		log.Error("Failed: %v", err)
		return nil, err
	}
	log.Info("Produced %d file(s)", len(res.Files))
	return res, nil
}

func output(name string, data []byte) models.OutputFile {
	return models.OutputFile{Name: name, MIMEType: mimePDF, Size: len(data), Data: data}
}

// single returns the one output file result of a single-file tool
func single(name string, data []byte, summary string) *Result {
	return &Result{Files: []models.OutputFile{output(name, data)}, Summary: summary}
}

// first returns the input of a single-file tool; extra files are ignored
func first(inv ToolInvocation) (InputFile, error) {
	if len(inv.Files) == 0 {
		return InputFile{}, &pages.InsufficientInputError{Need: 1, Got: 0}
	}
	return inv.Files[0], nil
}

func load(f InputFile, password string) (*pdf.Document, error) {
	doc, err := pdf.Load(f.Data, password)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", f.Name, err)
	}
	return doc, nil
}

func loadFirst(inv ToolInvocation) (InputFile, *pdf.Document, error) {
	f, err := first(inv)
	if err != nil {
		return InputFile{}, nil, err
	}
	doc, err := load(f, inv.Password)
	return f, doc, err
}

func (r *Runner) merge(ctx context.Context, inv ToolInvocation) (*Result, error) {
	if len(inv.Files) < 2 {
		return nil, &pages.InsufficientInputError{Need: 2, Got: len(inv.Files)}
	}
	docs := make([]*pdf.Document, 0, len(inv.Files))
	for _, f := range inv.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := load(f, inv.Password)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	merged, err := pages.Merge(docs)
	if err != nil {
		return nil, err
	}
	data, err := pdf.Save(merged, nil)
	if err != nil {
		return nil, err
	}
	return single("merged_document.pdf", data,
		fmt.Sprintf("Merged %d files into one document of %d pages.", len(docs), merged.NumPages())), nil
}

func (r *Runner) split(inv ToolInvocation) (*Result, error) {
	f, doc, err := loadFirst(inv)
	if err != nil {
		return nil, err
	}
	parts, err := pages.Split(doc, f.Name)
	if err != nil {
		return nil, err
	}
	res := &Result{Summary: fmt.Sprintf("Split %s into %d single-page files.", f.Name, len(parts))}
	for _, part := range parts {
		data, err := pdf.Save(part.Document, nil)
		if err != nil {
			return nil, err
		}
		res.Files = append(res.Files, output(part.Name, data))
	}
	return res, nil
}

func (r *Runner) organize(inv ToolInvocation) (*Result, error) {
	_, doc, err := loadFirst(inv)
	if err != nil {
		return nil, err
	}
	indices := make([]int, len(inv.Pages))
	for i, n := range inv.Pages {
		indices[i] = n - 1
	}
	out, err := pages.Extract(doc, indices)
	if err != nil {
		return nil, err
	}
	data, err := pdf.Save(out, nil)
	if err != nil {
		return nil, err
	}
	return single("organized_document.pdf", data,
		fmt.Sprintf("Arranged %d of %d pages.", out.NumPages(), doc.NumPages())), nil
}

func (r *Runner) rotate(inv ToolInvocation) (*Result, error) {
	_, doc, err := loadFirst(inv)
	if err != nil {
		return nil, err
	}
	delta := inv.Rotation
	if delta == 0 {
		delta = DefaultRotation
	}
	if err := pages.Rotate(doc, delta); err != nil {
		return nil, err
	}
	data, err := pdf.Save(doc, nil)
	if err != nil {
		return nil, err
	}
	return single("rotated_document.pdf", data,
		fmt.Sprintf("Rotated %d pages by %d degrees.", doc.NumPages(), delta)), nil
}

func (r *Runner) imagesToPDF(ctx context.Context, inv ToolInvocation) (*Result, error) {
	if len(inv.Files) == 0 {
		return nil, &pages.InsufficientInputError{Need: 1, Got: 0}
	}
	images := make([]overlay.ImageFile, len(inv.Files))
	for i, f := range inv.Files {
		images[i] = overlay.ImageFile{Name: f.Name, Data: f.Data}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, skipped, err := overlay.ImagesToDocument(images)
	if err != nil {
		return nil, err
	}
	data, err := pdf.Save(doc, nil)
	if err != nil {
		return nil, err
	}
	res := single("images_combined.pdf", data,
		fmt.Sprintf("Converted %d images into one document.", doc.NumPages()))
	res.Skipped = skipped
	if skipped > 0 {
		res.Summary += fmt.Sprintf(" Skipped %d files that are not JPG or PNG.", skipped)
	}
	return res, nil
}

func (r *Runner) protect(inv ToolInvocation) (*Result, error) {
	f, err := first(inv)
	if err != nil {
		return nil, err
	}
	if inv.Password == "" {
		return nil, &MissingParameterError{Name: "password", Message: "Please enter a password"}
	}
	doc, err := load(f, "")
	if err != nil {
		return nil, err
	}
	data, err := protection.Protect(doc, inv.Password)
	if err != nil {
		return nil, err
	}
	return single("protected_document.pdf", data, "Encrypted the document with AES-256."), nil
}

func (r *Runner) unlock(inv ToolInvocation) (*Result, error) {
	f, err := first(inv)
	if err != nil {
		return nil, err
	}
	if inv.Password == "" {
		return nil, &MissingParameterError{Name: "password", Message: "Please enter the password to unlock"}
	}
	data, err := protection.Unlock(f.Data, inv.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to unlock %s: %w", f.Name, err)
	}
	return single("unlocked_document.pdf", data, "Removed the password from the document."), nil
}

func (r *Runner) watermark(inv ToolInvocation) (*Result, error) {
	_, doc, err := loadFirst(inv)
	if err != nil {
		return nil, err
	}
	text := inv.WatermarkText
	if text == "" {
		text = overlay.DefaultWatermarkText
	}
	if err := overlay.DrawWatermark(doc, text); err != nil {
		return nil, err
	}
	data, err := pdf.Save(doc, nil)
	if err != nil {
		return nil, err
	}
	return single("watermarked.pdf", data,
		fmt.Sprintf("Stamped %q on %d pages.", text, doc.NumPages())), nil
}

func (r *Runner) pageNumbers(inv ToolInvocation) (*Result, error) {
	_, doc, err := loadFirst(inv)
	if err != nil {
		return nil, err
	}
	if err := overlay.DrawPageNumbers(doc); err != nil {
		return nil, err
	}
	data, err := pdf.Save(doc, nil)
	if err != nil {
		return nil, err
	}
	return single("numbered_document.pdf", data,
		fmt.Sprintf("Numbered %d pages.", doc.NumPages())), nil
}

func (r *Runner) compress(inv ToolInvocation, log logger.Logger) (*Result, error) {
	f, doc, err := loadFirst(inv)
	if err != nil {
		return nil, err
	}
	data, err := protection.Compress(doc, log)
	if err != nil {
		return nil, err
	}
	return single("compressed_document.pdf", data,
		fmt.Sprintf("Rewrote the document in compact form: %d bytes to %d bytes (best effort, images are not resampled).", len(f.Data), len(data))), nil
}

func (r *Runner) repair(inv ToolInvocation) (*Result, error) {
	_, doc, err := loadFirst(inv)
	if err != nil {
		return nil, err
	}
	data, err := pdf.Save(doc, nil)
	if err != nil {
		return nil, err
	}
	return single("repaired_document.pdf", data,
		fmt.Sprintf("Rebuilt the document structure (%d pages).", doc.NumPages())), nil
}
