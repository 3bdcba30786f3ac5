// Package ocr extracts text from images with the Tesseract engine.
//
// The default engine shells out to the tesseract CLI. Building with
// -tags gosseract links libtesseract through gosseract instead.
package ocr

import (
	"context"
	"errors"
	"fmt"
)

// ErrEngineMissing means Tesseract is not installed or could not be found.
var ErrEngineMissing = errors.New("tesseract OCR engine not found; install tesseract or set TESSERACT_CMD")

// Engine recognizes text in an encoded image. langs is a "+"-joined list of
// Tesseract language codes such as "eng+ind".
type Engine interface {
	RecognizeBytes(ctx context.Context, data []byte, langs string) (string, error)
	RecognizeFile(ctx context.Context, path, langs string) (string, error)
}

// RecognitionError wraps an engine failure other than ErrEngineMissing.
type RecognitionError struct {
	Err error
}

func (e *RecognitionError) Error() string {
	return fmt.Sprintf("OCR failed: %v", e.Err)
}

func (e *RecognitionError) Unwrap() error { return e.Err }

// NewEngine returns the engine compiled into this build. cmd is the
// tesseract binary for the CLI engine and ignored otherwise.
func NewEngine(cmd string) Engine {
	return defaultEngine(cmd)
}
