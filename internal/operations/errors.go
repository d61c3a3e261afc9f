package operations

import (
	"context"
	"errors"
	"fmt"

	"github.com/kupendrav/K-Pdf-s/internal/documents"
	"github.com/kupendrav/K-Pdf-s/internal/overlay"
	"github.com/kupendrav/K-Pdf-s/internal/pages"
	"github.com/kupendrav/K-Pdf-s/internal/pdf"
	"github.com/kupendrav/K-Pdf-s/internal/protection"
)

// UnknownToolError reports a tool id with no implementation
type UnknownToolError struct {
	ID string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool %q", e.ID)
}

// MissingParameterError reports a required parameter left empty. Message
// is shown to the user as is.
type MissingParameterError struct {
	Name    string
	Message string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing %s: %s", e.Name, e.Message)
}

// ErrorKind classifies an invocation failure
type ErrorKind string

const (
	KindMalformed              ErrorKind = "malformed"
	KindAuthenticationRequired ErrorKind = "authentication_required"
	KindIndex                  ErrorKind = "index"
	KindInsufficientInput      ErrorKind = "insufficient_input"
	KindUnsupportedAsset       ErrorKind = "unsupported_asset"
	KindEncoding               ErrorKind = "encoding"
	KindInvalidParameter       ErrorKind = "invalid_parameter"
	KindMissingParameter       ErrorKind = "missing_parameter"
	KindUnknownTool            ErrorKind = "unknown_tool"
	KindCanceled               ErrorKind = "canceled"
	KindInternal               ErrorKind = "internal"
)

// Describe maps err to its kind and a message fit for the end user
func Describe(err error) (ErrorKind, string) {
	var (
		indexErr    *pdf.IndexError
		inputErr    *pages.InsufficientInputError
		paramErr    *pages.InvalidParameterError
		assetErr    *overlay.UnsupportedAssetError
		encodingErr *pdf.EncodingError
		missingErr  *MissingParameterError
		toolErr     *UnknownToolError
		sizeErr     *documents.TooLargeError
	)

	switch {
	case err == nil:
		return "", ""
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled, "The operation was canceled."
	case errors.Is(err, pdf.ErrAuthenticationRequired):
		return KindAuthenticationRequired, "Incorrect password or damaged file."
	case errors.Is(err, pdf.ErrMalformed):
		return KindMalformed, "The file is not a valid PDF or is too damaged to read."
	case errors.As(err, &missingErr):
		return KindMissingParameter, missingErr.Message
	case errors.Is(err, protection.ErrEmptyPassword):
		return KindMissingParameter, "Please enter a password"
	case errors.As(err, &inputErr):
		if inputErr.Need == 1 {
			return KindInsufficientInput, "Please select a file."
		}
		return KindInsufficientInput, fmt.Sprintf("Please select at least %d files.", inputErr.Need)
	case errors.As(err, &indexErr):
		return KindIndex, fmt.Sprintf("Page %d does not exist; the document has %d pages.", indexErr.Index+1, indexErr.Count)
	case errors.As(err, &assetErr):
		return KindUnsupportedAsset, fmt.Sprintf("Could not read image %q.", assetErr.Name)
	case errors.As(err, &paramErr):
		return KindInvalidParameter, fmt.Sprintf("Invalid %s: %s.", paramErr.Name, paramErr.Reason)
	case errors.As(err, &sizeErr):
		return KindInvalidParameter, fmt.Sprintf("The file is larger than the limit of %d bytes.", sizeErr.Limit)
	case errors.As(err, &encodingErr):
		return KindEncoding, "The document could not be saved."
	case errors.As(err, &toolErr):
		return KindUnknownTool, fmt.Sprintf("Unknown tool %q.", toolErr.ID)
	}
	return KindInternal, "Something went wrong while processing the file."
}
