package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"deepl-desktop/internal/ocr"
	"deepl-desktop/internal/translation"
)

// OCRResult holds the recognized text and, when requested, its translation.
type OCRResult struct {
	Text       string
	Translated string
}

// CombinedText joins the extracted text and its translation for copying
// both at once.
func CombinedText(original, translated, targetLang string) string {
	return fmt.Sprintf("Original:\n%s\n\n%s\n\nTranslated (%s):\n%s",
		original, strings.Repeat("=", 50), targetLang, translated)
}

// OCRService extracts text from images and optionally translates it.
type OCRService struct {
	extractor  *ocr.Extractor
	translator translation.BatchTranslator
}

// NewOCRService creates the service. translator may be nil when only
// extraction is needed.
func NewOCRService(extractor *ocr.Extractor, translator translation.BatchTranslator) *OCRService {
	return &OCRService{extractor: extractor, translator: translator}
}

func (s *OCRService) ExtractText(ctx context.Context, imagePath, langs string) (string, error) {
	return s.extractor.ExtractFile(ctx, imagePath, langs)
}

// ExtractAndTranslate runs OCR on imagePath. If targetLang is set and text
// was found, the text is translated as a single unit.
func (s *OCRService) ExtractAndTranslate(ctx context.Context, imagePath, langs, targetLang string) (OCRResult, error) {
	text, err := s.ExtractText(ctx, imagePath, langs)
	if err != nil {
		return OCRResult{}, err
	}
	res := OCRResult{Text: text}
	if text == "" {
		log.Info("No text found in %s", filepath.Base(imagePath))
		return res, nil
	}
	log.Info("Extracted %d characters from %s", len(text), filepath.Base(imagePath))

	if strings.TrimSpace(targetLang) == "" {
		return res, nil
	}
	if s.translator == nil {
		return res, errors.New("translation requested but no API key is configured")
	}
	out, err := s.translator.TranslateTexts(ctx, []string{text}, targetLang)
	if err != nil {
		return res, err
	}
	res.Translated = out[0]
	return res, nil
}
