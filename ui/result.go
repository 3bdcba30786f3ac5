package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"deepl-desktop/internal/logger"
	"deepl-desktop/services"
)

// ShowTextResult opens a dialog with the extracted text and, when present,
// its translation, each with its own copy button.
func ShowTextResult(w fyne.Window, title, original, translated, targetLang string) {
	if original == "" {
		dialog.ShowInformation(title, "No text was found in the image.", w)
		return
	}

	originalBox := textSection("Extracted Text", original, "Copy Original")
	content := fyne.CanvasObject(originalBox)
	var buttons []fyne.CanvasObject

	if translated != "" {
		translatedBox := textSection("Translation ("+targetLang+")", translated, "Copy Translation")
		split := container.NewVSplit(originalBox, translatedBox)
		split.SetOffset(0.5)
		content = split

		buttons = append(buttons, widget.NewButton("Copy Both", func() {
			copyText(services.CombinedText(original, translated, targetLang), "Both texts")
		}))
	}

	var bottom fyne.CanvasObject
	if len(buttons) > 0 {
		bottom = container.NewHBox(buttons...)
	}
	d := dialog.NewCustom(title, "Close", container.NewBorder(nil, bottom, nil, nil, content), w)
	d.Resize(fyne.NewSize(700, 550))
	d.Show()
}

func textSection(heading, text, copyLabel string) fyne.CanvasObject {
	box := widget.NewMultiLineEntry()
	box.SetText(text)
	box.Wrapping = fyne.TextWrapWord

	copyBtn := widget.NewButton(copyLabel, func() { copyText(box.Text, heading) })
	header := container.NewBorder(nil, nil, widget.NewLabelWithStyle(heading, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}), copyBtn)
	return container.NewBorder(header, nil, nil, nil, box)
}

func copyText(text, label string) {
	fyne.CurrentApp().Clipboard().SetContent(text)
	logger.Named("ui").Info("%s copied to clipboard", label)
}
