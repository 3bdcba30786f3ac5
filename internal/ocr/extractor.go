package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"deepl-desktop/internal/config"
	"deepl-desktop/internal/logger"
)

// Extractor turns images into text.
type Extractor struct {
	engine  Engine
	tempDir string
	log     *logger.Logger
}

// NewExtractor creates an extractor on top of engine.
func NewExtractor(engine Engine) *Extractor {
	return &Extractor{engine: engine, log: logger.Named("ocr")}
}

// Extract recognizes the text in img. langs defaults to config.DefaultOCRLanguages.
//
// Recognition is tried in memory first. If that fails the normalized image
// is written to a temporary PNG and recognized from disk; the file is
// removed whatever the outcome. An image without text yields "" and no error.
func (x *Extractor) Extract(ctx context.Context, img image.Image, langs string) (string, error) {
	if langs == "" {
		langs = config.DefaultOCRLanguages
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, Normalize(img)); err != nil {
		return "", &RecognitionError{Err: fmt.Errorf("encode image: %w", err)}
	}

	text, err := x.engine.RecognizeBytes(ctx, buf.Bytes(), langs)
	if err == nil {
		return strings.TrimSpace(text), nil
	}
	if errors.Is(err, ErrEngineMissing) {
		return "", err
	}
	x.log.Debug("in-memory recognition failed, retrying from file: %v", err)

	text, err = x.recognizeFromFile(ctx, buf.Bytes(), langs)
	if err != nil {
		if errors.Is(err, ErrEngineMissing) {
			return "", err
		}
		return "", &RecognitionError{Err: err}
	}
	return strings.TrimSpace(text), nil
}

func (x *Extractor) recognizeFromFile(ctx context.Context, data []byte, langs string) (string, error) {
	f, err := os.CreateTemp(x.tempDir, "ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return x.engine.RecognizeFile(ctx, path, langs)
}

// ExtractFile decodes an image file (PNG, JPEG, GIF, BMP, TIFF or WebP) and
// extracts its text.
func (x *Extractor) ExtractFile(ctx context.Context, path, langs string) (string, error) {
	img, err := DecodeFile(path)
	if err != nil {
		return "", err
	}
	x.log.Info("running OCR on %s (%s)", filepath.Base(path), langs)
	return x.Extract(ctx, img, langs)
}

// DecodeFile reads an image in any registered format.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}
