package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"deepl-desktop/internal/config"
	"deepl-desktop/internal/deepl"
	"deepl-desktop/internal/subtitle"
	"deepl-desktop/internal/translation"
	"deepl-desktop/models"
)

// Backend is what the file pipelines need from a translation service.
type Backend interface {
	translation.BatchTranslator
	translation.DocumentTranslator
	Usage(ctx context.Context) (*deepl.Usage, error)
}

// ProgressCallback receives stage updates; percent is 0-100.
type ProgressCallback func(stage string, percent int, message string)

// UnsupportedFormatError is returned for file extensions without a pipeline.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %s (supported: %s)", e.Ext, strings.Join(SupportedExtensions(), ", "))
}

type fileHandler func(t *TranslatorService, ctx context.Context, inputPath, targetLang, outputPath string) error

// handlers is the closed set of formats the translator accepts.
var handlers = map[string]fileHandler{
	".txt":  (*TranslatorService).TranslateTextFile,
	".srt":  (*TranslatorService).TranslateSubtitleFile,
	".docx": (*TranslatorService).TranslateDocumentFile,
	".pdf":  (*TranslatorService).TranslateDocumentFile,
}

// SupportedExtensions lists the accepted extensions in sorted order.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(handlers))
	for ext := range handlers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// IsSupported reports whether path has an extension the translator accepts.
func IsSupported(path string) bool {
	_, ok := handlers[strings.ToLower(filepath.Ext(path))]
	return ok
}

// OutputPath places the translation next to the input: dir/{name}_{lang}{ext}.
func OutputPath(inputPath, targetLang string) string {
	ext := filepath.Ext(inputPath)
	name := strings.TrimSuffix(filepath.Base(inputPath), ext)
	return filepath.Join(filepath.Dir(inputPath), name+"_"+targetLang+ext)
}

// TranslatorService translates files through a Backend.
type TranslatorService struct {
	backend    Backend
	onProgress ProgressCallback
}

func NewTranslatorService(backend Backend) *TranslatorService {
	return &TranslatorService{backend: backend}
}

// NewDeepLTranslator builds a DeepL-backed translator from user settings.
func NewDeepLTranslator(cfg *models.Config) (*TranslatorService, error) {
	client, err := deepl.NewClient(deepl.Config{
		APIKey:          cfg.APIKey,
		BaseURL:         cfg.BaseURL,
		MinPollInterval: cfg.MinPollInterval(),
	})
	if err != nil {
		return nil, err
	}
	return NewTranslatorService(client), nil
}

func (s *TranslatorService) SetProgressCallback(cb ProgressCallback) {
	s.onProgress = cb
}

func (s *TranslatorService) progress(stage string, percent int, message string) {
	if s.onProgress != nil {
		s.onProgress(stage, percent, message)
	}
}

// ValidateKey queries the account usage; a failure means the key is unusable.
func (s *TranslatorService) ValidateKey(ctx context.Context) (*deepl.Usage, error) {
	usage, err := s.backend.Usage(ctx)
	if err != nil {
		return nil, fmt.Errorf("invalid API key: %w", err)
	}
	return usage, nil
}

// TranslateFile validates the key, translates inputPath with the pipeline
// for its extension and returns the output path.
func (s *TranslatorService) TranslateFile(ctx context.Context, inputPath, targetLang string) (string, error) {
	ext := strings.ToLower(filepath.Ext(inputPath))
	handle, ok := handlers[ext]
	if !ok {
		return "", &UnsupportedFormatError{Ext: filepath.Ext(inputPath)}
	}

	s.progress("Validating", 0, "Checking API key...")
	usage, err := s.ValidateKey(ctx)
	if err != nil {
		return "", err
	}
	log.Info("Key OK: %d of %d characters used", usage.CharacterCount, usage.CharacterLimit)

	outputPath := OutputPath(inputPath, targetLang)
	log.Info("Translating %s -> %s", filepath.Base(inputPath), targetLang)
	s.progress("Translating", 5, "Output will be saved to "+filepath.Base(outputPath))

	if err := handle(s, ctx, inputPath, targetLang, outputPath); err != nil {
		return "", err
	}

	s.progress("Done", 100, "Saved to "+outputPath)
	return outputPath, nil
}

// TranslateTextFile sends the whole file as a single text.
func (s *TranslatorService) TranslateTextFile(ctx context.Context, inputPath, targetLang, outputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}
	out, err := s.backend.TranslateTexts(ctx, []string{string(data)}, targetLang)
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, []byte(out[0]), 0644)
}

// TranslateSubtitleFile translates caption texts in batches and writes an SRT
// with the original indices and timings. Nothing is written if any batch fails.
func (s *TranslatorService) TranslateSubtitleFile(ctx context.Context, inputPath, targetLang, outputPath string) error {
	subs, err := subtitle.ParseSRTFile(inputPath)
	if err != nil {
		return err
	}
	empty := 0
	for _, sub := range subs {
		if sub.IsEmpty() {
			empty++
		}
	}
	log.Info("Parsed %d captions (%d empty, %s) from %s",
		len(subs), empty, subtitle.FormatTimestamp(subs.TotalDuration()), filepath.Base(inputPath))

	texts := subs.Texts()
	translated, err := translation.TranslateChunked(ctx, s.backend, texts, targetLang, config.SubtitleChunkSize,
		func(done, total int) {
			percent := 5 + done*90/total
			s.progress("Translating", percent, fmt.Sprintf("Translated %d/%d captions", done, total))
		})
	if err != nil {
		return err
	}

	result, err := subs.WithTexts(translated)
	if err != nil {
		return err
	}
	return subtitle.WriteSRTFile(outputPath, result)
}

// TranslateDocumentFile hands .docx and .pdf files to the document API.
func (s *TranslatorService) TranslateDocumentFile(ctx context.Context, inputPath, targetLang, outputPath string) error {
	s.progress("Uploading", 10, "Uploading document...")
	return s.backend.TranslateDocument(ctx, inputPath, targetLang, outputPath)
}
