package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"deepl-desktop/internal/logger"
	"deepl-desktop/internal/worker"
	"deepl-desktop/models"
	"deepl-desktop/services"
)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// MainUI is the main application UI
type MainUI struct {
	window fyne.Window
	config *models.Config
	runner worker.Runner
	log    *logger.Logger

	// UI Components
	settingsPanel *SettingsPanel
	progressPanel *ProgressPanel

	fileEntry      *widget.Entry
	translateBtn   *widget.Button
	imageEntry     *widget.Entry
	ocrLangEntry   *widget.Entry
	ocrTranslate   *widget.Check
	extractTextBtn *widget.Button
}

// NewMainUI creates the main application UI
func NewMainUI(w fyne.Window) *MainUI {
	log := logger.Named("ui")
	config, err := models.LoadConfig()
	if err != nil {
		log.Warn("Could not load settings, using defaults: %v", err)
		config = models.DefaultConfig()
	}
	logger.SetLevel(logger.ParseLevel(config.LogLevel))

	return &MainUI{
		window: w,
		config: config,
		log:    log,
	}
}

// Build creates the complete UI layout
func (ui *MainUI) Build() fyne.CanvasObject {
	ui.progressPanel = NewProgressPanel()
	logger.SetOutput(io.MultiWriter(os.Stderr, ui.progressPanel))

	ui.settingsPanel = NewSettingsPanel(ui.config, ui.saveSettings)

	ui.fileEntry = widget.NewEntry()
	ui.fileEntry.SetPlaceHolder("Select a .txt, .srt, .docx or .pdf file")
	ui.translateBtn = widget.NewButton("Translate Now", ui.onTranslate)
	ui.translateBtn.Importance = widget.HighImportance

	fileCard := widget.NewCard("Translate File", "", container.NewVBox(
		container.NewBorder(nil, nil, nil,
			widget.NewButton("Browse...", func() { ui.pickFile(ui.fileEntry, services.SupportedExtensions()) }),
			ui.fileEntry),
		ui.translateBtn,
	))

	ui.imageEntry = widget.NewEntry()
	ui.imageEntry.SetPlaceHolder("Select an image")
	ui.ocrLangEntry = widget.NewEntry()
	ui.ocrLangEntry.SetText(ui.config.OCRLanguages)
	ui.ocrTranslate = widget.NewCheck("Translate extracted text", nil)
	ui.extractTextBtn = widget.NewButton("Extract Text", ui.onExtractText)

	ocrCard := widget.NewCard("Image to Text (OCR)", "", container.NewVBox(
		container.NewBorder(nil, nil, nil,
			widget.NewButton("Browse...", func() { ui.pickFile(ui.imageEntry, imageExtensions) }),
			ui.imageEntry),
		widget.NewForm(widget.NewFormItem("Languages", ui.ocrLangEntry)),
		ui.ocrTranslate,
		ui.extractTextBtn,
	))

	controls := container.NewVBox(
		widget.NewCard("Settings", "", ui.settingsPanel.Build()),
		fileCard,
		ocrCard,
	)

	split := container.NewHSplit(container.NewVScroll(controls), ui.progressPanel.Build())
	split.SetOffset(0.45)
	return split
}

func (ui *MainUI) pickFile(target *widget.Entry, exts []string) {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if r == nil {
			return
		}
		defer r.Close()
		target.SetText(r.URI().Path())
		ui.log.Info("Selected file: %s", r.URI().Path())
	}, ui.window)
	d.SetFilter(storage.NewExtensionFileFilter(exts))
	d.Show()
}

func (ui *MainUI) saveSettings() {
	ui.settingsPanel.Apply(ui.config)
	ui.config.OCRLanguages = ui.ocrLangEntry.Text
	if err := ui.config.Save(); err != nil {
		dialog.ShowError(fmt.Errorf("save settings: %w", err), ui.window)
		return
	}
	ui.log.Info("Settings saved to %s", ui.config.ConfigPath())
}

// newPipeline builds services from the settings currently shown.
func (ui *MainUI) newPipeline() (*services.Pipeline, error) {
	ui.settingsPanel.Apply(ui.config)
	if ui.ocrLangEntry.Text != "" {
		ui.config.OCRLanguages = ui.ocrLangEntry.Text
	}
	p, err := services.NewPipeline(ui.config)
	if err != nil {
		return nil, err
	}
	p.SetProgressCallback(func(stage string, percent int, message string) {
		ui.progressPanel.SetProgress(stage, percent)
		ui.progressPanel.SetStatus(message)
	})
	return p, nil
}

func (ui *MainUI) onTranslate() {
	path := ui.fileEntry.Text
	if ui.settingsPanel.GetAPIKey() == "" {
		ui.log.Error("API Key is missing.")
		dialog.ShowInformation("API Key", "Enter your DeepL API key first.", ui.window)
		return
	}
	if path == "" {
		ui.log.Error("No file selected.")
		dialog.ShowInformation("No File", "Please select a file to translate.", ui.window)
		return
	}

	task := models.NewTask(models.KindTranslateFile, path, ui.settingsPanel.GetTargetLang())
	ui.runTask(task, ui.translateBtn, "Translating...", func() {
		dialog.ShowInformation("Success", "File translated successfully!\nSaved to: "+task.OutputPath, ui.window)
	})
}

func (ui *MainUI) onExtractText() {
	path := ui.imageEntry.Text
	if path == "" {
		dialog.ShowInformation("No Image", "Please select an image.", ui.window)
		return
	}

	target := ""
	if ui.ocrTranslate.Checked {
		target = ui.settingsPanel.GetTargetLang()
	}
	task := models.NewTask(models.KindOCR, path, target)
	ui.runTask(task, ui.extractTextBtn, "Extracting...", func() {
		ShowTextResult(ui.window, filepath.Base(path), task.Text, task.Translated, task.TargetLang)
	})
}

// runTask runs task in the background with btn disabled, then calls
// onSuccess or shows the error on the UI goroutine.
func (ui *MainUI) runTask(task *models.Task, btn *widget.Button, busyLabel string, onSuccess func()) {
	pipeline, err := ui.newPipeline()
	if err != nil {
		ui.log.Error("%v", err)
		dialog.ShowError(err, ui.window)
		return
	}

	idleLabel := btn.Text
	btn.SetText(busyLabel)
	btn.Disable()
	ui.log.Info("------------------------------")
	ui.log.Info("Starting %s for %s", task.Kind, task.FileName)

	ui.progressPanel.SetTask(task)

	ui.runner.Run(context.Background(), func(ctx context.Context) error {
		return pipeline.Run(ctx, task)
	}, func(err error) {
		fyne.Do(func() {
			btn.SetText(idleLabel)
			btn.Enable()
			if err != nil && !task.Done() {
				task.Fail(err)
			}
			ui.progressPanel.SetTask(task)
			if err != nil {
				dialog.ShowError(err, ui.window)
				return
			}
			ui.log.Info("SUCCESS! %s completed.", task.Kind)
			onSuccess()
		})
	})
}

// GetWindow returns the main window
func (ui *MainUI) GetWindow() fyne.Window {
	return ui.window
}
