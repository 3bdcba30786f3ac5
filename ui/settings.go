package ui

import (
	"strings"

	"deepl-desktop/internal/config"
	"deepl-desktop/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// SettingsPanel holds the API key and target language controls.
type SettingsPanel struct {
	apiKeyEntry      *widget.Entry
	targetLangSelect *widget.Select
	endpointLabel    *widget.Label

	onSave func()
}

func NewSettingsPanel(cfg *models.Config, onSave func()) *SettingsPanel {
	sp := &SettingsPanel{onSave: onSave}

	sp.apiKeyEntry = widget.NewPasswordEntry()
	sp.apiKeyEntry.SetPlaceHolder("DeepL API key (free keys end in :fx)")
	sp.apiKeyEntry.SetText(cfg.APIKey)

	sp.endpointLabel = widget.NewLabel("")
	sp.apiKeyEntry.OnChanged = func(string) { sp.refreshEndpoint() }
	sp.refreshEndpoint()

	sp.targetLangSelect = widget.NewSelect(config.TargetLanguages, nil)
	target := cfg.DefaultTargetLang
	if target == "" {
		target = config.DefaultTargetLang
	}
	sp.targetLangSelect.SetSelected(target)

	return sp
}

func (sp *SettingsPanel) Build() fyne.CanvasObject {
	saveBtn := widget.NewButton("Save", func() {
		if sp.onSave != nil {
			sp.onSave()
		}
	})

	form := widget.NewForm(
		widget.NewFormItem("API Key", sp.apiKeyEntry),
		widget.NewFormItem("Target", sp.targetLangSelect),
	)

	return container.NewVBox(
		form,
		container.NewHBox(sp.endpointLabel, layout.NewSpacer(), saveBtn),
	)
}

func (sp *SettingsPanel) refreshEndpoint() {
	key := sp.GetAPIKey()
	switch {
	case key == "":
		sp.endpointLabel.SetText("No key set")
	case strings.HasSuffix(key, config.DeepLFreeKeySuffix):
		sp.endpointLabel.SetText("Free API")
	default:
		sp.endpointLabel.SetText("Pro API")
	}
}

func (sp *SettingsPanel) GetAPIKey() string {
	return strings.TrimSpace(sp.apiKeyEntry.Text)
}

func (sp *SettingsPanel) GetTargetLang() string {
	if sp.targetLangSelect.Selected == "" {
		return config.DefaultTargetLang
	}
	return sp.targetLangSelect.Selected
}

// Apply copies the panel values into cfg.
func (sp *SettingsPanel) Apply(cfg *models.Config) {
	cfg.APIKey = sp.GetAPIKey()
	cfg.DefaultTargetLang = sp.GetTargetLang()
}
