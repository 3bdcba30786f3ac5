package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"deepl-desktop/internal/deepl"
	"deepl-desktop/internal/ocr"
	"deepl-desktop/models"
)

// Pipeline runs user tasks against the configured translator and OCR engine.
type Pipeline struct {
	config     *models.Config
	translator *TranslatorService
	ocr        *OCRService
	onProgress ProgressCallback
}

// NewPipeline wires services from settings. A missing API key is not an
// error here: OCR without translation still works, and translate tasks
// fail with deepl.ErrCredentialMissing.
func NewPipeline(cfg *models.Config) (*Pipeline, error) {
	p := &Pipeline{config: cfg}

	if cfg.HasAPIKey() {
		t, err := NewDeepLTranslator(cfg)
		if err != nil {
			return nil, err
		}
		p.translator = t
	}

	extractor := ocr.NewExtractor(ocr.NewEngine(cfg.TesseractPath))
	if p.translator != nil {
		p.ocr = NewOCRService(extractor, p.translator.backend)
	} else {
		p.ocr = NewOCRService(extractor, nil)
	}
	return p, nil
}

// NewPipelineWith assembles a pipeline from ready-made services.
func NewPipelineWith(cfg *models.Config, translator *TranslatorService, ocrService *OCRService) *Pipeline {
	return &Pipeline{config: cfg, translator: translator, ocr: ocrService}
}

func (p *Pipeline) SetProgressCallback(cb ProgressCallback) {
	p.onProgress = cb
	if p.translator != nil {
		p.translator.SetProgressCallback(cb)
	}
}

func (p *Pipeline) progress(stage string, percent int, message string) {
	if p.onProgress != nil {
		p.onProgress(stage, percent, message)
	}
}

// Translator returns the file translator, or nil without an API key.
func (p *Pipeline) Translator() *TranslatorService { return p.translator }

// Run executes task and records the outcome on it.
func (p *Pipeline) Run(ctx context.Context, task *models.Task) error {
	if task.TargetLang == "" && task.Kind == models.KindTranslateFile {
		task.TargetLang = p.config.DefaultTargetLang
	}
	task.Start()
	log.Info("Task %s: %s %s", task.ID, task.Kind, task.FileName)

	var err error
	switch task.Kind {
	case models.KindTranslateFile:
		err = p.runTranslate(ctx, task)
	case models.KindOCR:
		err = p.runOCR(ctx, task)
	default:
		err = fmt.Errorf("unknown task kind %q", task.Kind)
	}

	if err != nil {
		log.Error("Task %s failed: %v", task.ID, err)
		task.Fail(err)
		return err
	}
	log.Info("Task %s completed in %s", task.ID, task.Elapsed().Round(time.Millisecond))
	return nil
}

func (p *Pipeline) runTranslate(ctx context.Context, task *models.Task) error {
	if p.translator == nil {
		return deepl.ErrCredentialMissing
	}
	out, err := p.translator.TranslateFile(ctx, task.InputPath, task.TargetLang)
	if err != nil {
		return err
	}
	task.Complete(out)
	return nil
}

func (p *Pipeline) runOCR(ctx context.Context, task *models.Task) error {
	p.progress("OCR", 10, "Recognizing text in "+filepath.Base(task.InputPath))
	res, err := p.ocr.ExtractAndTranslate(ctx, task.InputPath, p.config.OCRLanguages, task.TargetLang)
	if err != nil {
		return err
	}
	task.Text = res.Text
	task.Translated = res.Translated
	task.Complete("")
	p.progress("Done", 100, "Text extracted")
	return nil
}
