package resumes

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// FileValidator checks the structural integrity of an uploaded file.
type FileValidator interface {
	Validate(fileName string, data []byte) error
}

// PDFValidator validates PDF uploads with pdfcpu. Only structure is checked;
// no text is extracted.
type PDFValidator struct{}

// Validate returns ErrInvalidFile when data is not a well-formed PDF.
func (PDFValidator) Validate(fileName string, data []byte) error {
	if err := api.Validate(bytes.NewReader(data), nil); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	return nil
}

var _ FileValidator = PDFValidator{}
